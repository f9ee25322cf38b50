package collab

import (
	"context"
	"encoding/json"
	"log"
	"time"
)

// ChatStore persists chat messages as a side effect of the realtime path.
// Implemented by services.ChatService.
type ChatStore interface {
	Append(ctx context.Context, projectID, userID, userName, content string, ts time.Time) error
}

// Router decodes inbound frames and dispatches on the action tag. A bad frame
// never terminates the connection; it is logged and dropped.
type Router struct {
	broadcaster *Broadcaster
	chats       ChatStore
}

func (rt *Router) Route(projectID string, sender *Client, frame []byte) {
	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		log.Printf("collab: dropping malformed frame in project %s: %v", projectID, err)
		return
	}

	switch env.Action {
	case ActionCursorMove, ActionBlocklyUpdate, ActionBlocklyUpdateImportant:
		// Opaque pass-through; everyone but the sender gets the payload as-is.
		rt.broadcaster.Broadcast(projectID, env, sender)
	case ActionNewChat:
		rt.handleChat(projectID, sender, env)
	default:
		// Unknown action, drop.
	}
}

// handleChat validates the chat payload, persists it, then relays it. A
// validation failure suppresses both effects; a persistence failure is logged
// but never blocks the realtime path.
func (rt *Router) handleChat(projectID string, sender *Client, env Envelope) {
	var msg chatPayload
	if err := json.Unmarshal(env.Data, &msg); err != nil {
		log.Printf("collab: dropping chat with bad payload in project %s: %v", projectID, err)
		return
	}
	if msg.UserID == "" || msg.Content == "" {
		log.Printf("collab: dropping chat with empty sender or content in project %s", projectID)
		return
	}
	ts, err := time.Parse(time.RFC3339, msg.Timestamp)
	if err != nil {
		log.Printf("collab: dropping chat with bad timestamp %q in project %s", msg.Timestamp, projectID)
		return
	}

	if err := rt.chats.Append(context.Background(), projectID, msg.UserID, msg.UserName, msg.Content, ts); err != nil {
		log.Printf("collab: persist chat for project %s: %v", projectID, err)
	}
	rt.broadcaster.Broadcast(projectID, env, sender)
}
