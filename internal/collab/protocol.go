package collab

import "encoding/json"

// Actions a client may send over the editor websocket. The hub relays the
// payloads verbatim; only newChat is inspected (for persistence).
const (
	ActionCursorMove             = "cursorMove"
	ActionBlocklyUpdate          = "blocklyUpdate"
	ActionBlocklyUpdateImportant = "blocklyUpdateImportant"
	ActionNewChat                = "newChat"

	// ActionUpdateCollaborators is outbound-only: the current roster of a
	// project, pushed on every join and leave.
	ActionUpdateCollaborators = "updateCollaborators"
)

// Envelope is the wire unit exchanged with editor clients. Data stays a raw
// blob so pass-through actions are re-emitted byte for byte.
type Envelope struct {
	Action string          `json:"Action"`
	Data   json.RawMessage `json:"Data"`
}

// chatPayload is the Data shape of a newChat envelope.
type chatPayload struct {
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

type collaboratorEntry struct {
	UserName string `json:"userName"`
}
