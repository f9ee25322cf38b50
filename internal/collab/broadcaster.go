package collab

import (
	"encoding/json"
	"log"
	"sync"
)

// Broadcaster fans an envelope out to every member of a project room. The
// envelope is serialized once so all recipients see byte-identical payloads.
type Broadcaster struct {
	registry *Registry

	// evicted is invoked (in its own goroutine) after a dead member has been
	// removed and the room still has members; the hub wires it to a presence
	// re-announcement.
	evicted func(projectID string)
}

// Broadcast sends env to every open connection in the project except exclude.
// It returns once every send has finished. A failed send only affects that
// recipient: the connection is closed and deregistered.
func (b *Broadcaster) Broadcast(projectID string, env Envelope, exclude *Client) {
	payload, err := json.Marshal(env)
	if err != nil {
		log.Printf("collab: marshal %s envelope for project %s: %v", env.Action, projectID, err)
		return
	}

	var wg sync.WaitGroup
	for _, c := range b.registry.Clients(projectID) {
		if c == exclude {
			continue
		}
		wg.Add(1)
		go func(c *Client) {
			defer wg.Done()
			if err := c.Send(payload); err != nil {
				log.Printf("collab: send to %q in project %s failed: %v", c.UserName(), projectID, err)
				b.evict(projectID, c)
				return
			}
			addDelivered(1)
		}(c)
	}
	wg.Wait()
}

// evict treats an outbound failure as a disconnect: the recipient's own read
// loop may not have noticed yet, but there is no point keeping it registered.
func (b *Broadcaster) evict(projectID string, c *Client) {
	c.Close()
	if b.registry.Leave(projectID, c) && b.evicted != nil {
		// Async so an announce whose own fan-out detected the failure does
		// not deadlock on the per-room announce lock.
		go b.evicted(projectID)
	}
}
