package collab

import "github.com/prometheus/client_golang/prometheus"

var (
	collabConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "simplex_collab_connections",
			Help: "Current number of open editor websocket connections.",
		},
	)
	collabRooms = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "simplex_collab_rooms",
			Help: "Current number of projects with at least one live connection.",
		},
	)
	collabMessagesDelivered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "simplex_collab_messages_delivered_total",
			Help: "Total editor events delivered to clients.",
		},
	)
)

func init() {
	prometheus.MustRegister(collabConnections, collabRooms, collabMessagesDelivered)
}

func incConnections() {
	collabConnections.Inc()
}

func decConnections() {
	collabConnections.Dec()
}

func setRooms(count int) {
	collabRooms.Set(float64(count))
}

func addDelivered(count int) {
	collabMessagesDelivered.Add(float64(count))
}
