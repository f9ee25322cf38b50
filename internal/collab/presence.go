package collab

import (
	"encoding/json"
	"log"
)

// PresenceNotifier pushes the current roster to every member of a room
// whenever membership changes.
type PresenceNotifier struct {
	registry    *Registry
	broadcaster *Broadcaster
}

// Announce broadcasts an updateCollaborators envelope carrying the project's
// roster to all members, the joiner included. Announcements for one room are
// serialized so a later membership state cannot be overtaken by an earlier
// one. No-op for empty or unknown rooms.
func (p *PresenceNotifier) Announce(projectID string) {
	p.registry.withAnnounceLock(projectID, func() {
		names := p.registry.Snapshot(projectID)
		if len(names) == 0 {
			return
		}

		entries := make([]collaboratorEntry, 0, len(names))
		for _, name := range names {
			entries = append(entries, collaboratorEntry{UserName: name})
		}
		data, err := json.Marshal(entries)
		if err != nil {
			log.Printf("collab: marshal roster for project %s: %v", projectID, err)
			return
		}
		p.broadcaster.Broadcast(projectID, Envelope{Action: ActionUpdateCollaborators, Data: data}, nil)
	})
}
