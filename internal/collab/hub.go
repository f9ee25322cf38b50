package collab

import "log"

// Hub is the process-wide collaboration registry: it groups connections by
// project, relays editor events between them and announces roster changes.
type Hub struct {
	registry    *Registry
	broadcaster *Broadcaster
	presence    *PresenceNotifier
	router      *Router
}

func NewHub(chats ChatStore) *Hub {
	registry := NewRegistry()
	broadcaster := &Broadcaster{registry: registry}
	presence := &PresenceNotifier{registry: registry, broadcaster: broadcaster}
	broadcaster.evicted = presence.Announce

	return &Hub{
		registry:    registry,
		broadcaster: broadcaster,
		presence:    presence,
		router:      &Router{broadcaster: broadcaster, chats: chats},
	}
}

// OnConnectionEstablished takes ownership of an already-upgraded connection
// and drives it until it closes: register, announce, read loop, deregister,
// re-announce. It blocks for the lifetime of the connection, matching the
// per-connection goroutine the transport handler runs it on.
func (h *Hub) OnConnectionEstablished(projectID string, conn Conn, userName string) {
	client := NewClient(conn, userName)
	h.registry.Join(projectID, client, userName)
	h.presence.Announce(projectID)
	log.Printf("collab: %q joined project %s", userName, projectID)

	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			log.Printf("collab: connection for %q in project %s closed: %v", userName, projectID, err)
			break
		}
		h.router.Route(projectID, client, frame)
	}

	// Every exit path releases the membership; a dead connection is never
	// left registered.
	client.Close()
	if h.registry.Leave(projectID, client) {
		h.presence.Announce(projectID)
	}
	log.Printf("collab: %q left project %s", userName, projectID)
}
