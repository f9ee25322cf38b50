package collab

import "sync"

// Registry maps project ids to the set of live memberships. Each room carries
// its own lock so activity in one project never contends with another; the
// outer RWMutex only guards the rooms map itself.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*room
}

type room struct {
	mu      sync.Mutex
	members map[*Client]string
	order   []*Client // join order, drives the roster

	// removed marks a room that lost its last member and was dropped from
	// the registry; a Join that raced the removal retries on a fresh room.
	removed bool

	// announceMu serializes presence announcements so a stale roster can
	// never overtake a fresh one.
	announceMu sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*room)}
}

// Join registers the client in the project's room, creating the room on first
// join. Re-joining the same connection only refreshes the display name.
func (r *Registry) Join(projectID string, c *Client, userName string) {
	for {
		r.mu.Lock()
		rm, ok := r.rooms[projectID]
		if !ok {
			rm = &room{members: make(map[*Client]string)}
			r.rooms[projectID] = rm
			setRooms(len(r.rooms))
		}
		r.mu.Unlock()

		rm.mu.Lock()
		if rm.removed {
			rm.mu.Unlock()
			continue
		}
		if _, exists := rm.members[c]; !exists {
			rm.order = append(rm.order, c)
			incConnections()
		}
		rm.members[c] = userName
		rm.mu.Unlock()
		return
	}
}

// Leave removes the membership and reports whether the room still has members.
// The last leave removes the room entry itself, so the registry never
// accumulates empty rooms.
func (r *Registry) Leave(projectID string, c *Client) bool {
	r.mu.RLock()
	rm, ok := r.rooms[projectID]
	r.mu.RUnlock()
	if !ok {
		return false
	}

	rm.mu.Lock()
	if _, exists := rm.members[c]; !exists {
		still := len(rm.members) > 0
		rm.mu.Unlock()
		return still
	}
	delete(rm.members, c)
	for i, m := range rm.order {
		if m == c {
			rm.order = append(rm.order[:i], rm.order[i+1:]...)
			break
		}
	}
	decConnections()

	if len(rm.members) > 0 {
		rm.mu.Unlock()
		return true
	}
	rm.removed = true
	rm.mu.Unlock()

	r.mu.Lock()
	if r.rooms[projectID] == rm {
		delete(r.rooms, projectID)
		setRooms(len(r.rooms))
	}
	r.mu.Unlock()
	return false
}

// Snapshot returns the display names currently in the project, in join order.
// The slice is a copy; callers never see the live set.
func (r *Registry) Snapshot(projectID string) []string {
	r.mu.RLock()
	rm, ok := r.rooms[projectID]
	r.mu.RUnlock()
	if !ok {
		return nil
	}

	rm.mu.Lock()
	defer rm.mu.Unlock()
	names := make([]string, 0, len(rm.order))
	for _, c := range rm.order {
		names = append(names, rm.members[c])
	}
	return names
}

// Clients returns a copy of the project's member list for fan-out, so a
// broadcast never iterates a set a concurrent Join or Leave is mutating.
func (r *Registry) Clients(projectID string) []*Client {
	r.mu.RLock()
	rm, ok := r.rooms[projectID]
	r.mu.RUnlock()
	if !ok {
		return nil
	}

	rm.mu.Lock()
	defer rm.mu.Unlock()
	clients := make([]*Client, len(rm.order))
	copy(clients, rm.order)
	return clients
}

// withAnnounceLock runs fn while holding the project's announce lock. A no-op
// when the room no longer exists.
func (r *Registry) withAnnounceLock(projectID string, fn func()) {
	r.mu.RLock()
	rm, ok := r.rooms[projectID]
	r.mu.RUnlock()
	if !ok {
		return
	}

	rm.announceMu.Lock()
	defer rm.announceMu.Unlock()
	fn()
}
