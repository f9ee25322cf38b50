package services

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/simplexhq/simplex-backend/internal/cache"
)

type ChatMessage struct {
	MessageID string    `json:"messageId"`
	ProjectID string    `json:"projectId"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatService persists chat messages and serves project chat history. It
// implements collab.ChatStore for the realtime path.
type ChatService struct {
	db    *sql.DB
	cache *cache.Cache
}

func NewChatService(db *sql.DB, c *cache.Cache) *ChatService {
	return &ChatService{db: db, cache: c}
}

func chatCacheKey(projectID string) string {
	return "chat:" + projectID
}

func (s *ChatService) Append(ctx context.Context, projectID, userID, userName, content string, ts time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chat_messages (message_id, project_id, user_id, user_name, content, "timestamp")
         VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.NewString(), projectID, userID, userName, content, ts,
	)
	if err != nil {
		return err
	}

	// Invalidate cached history so the next fetch sees the new message.
	if s.cache != nil {
		if err := s.cache.Del(chatCacheKey(projectID)); err != nil {
			log.Printf("chat: invalidate history cache for project %s: %v", projectID, err)
		}
	}
	return nil
}

func (s *ChatService) ListByProject(ctx context.Context, projectID string) ([]ChatMessage, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT message_id, project_id, user_id, user_name, content, "timestamp"
         FROM chat_messages
         WHERE project_id = $1
         ORDER BY "timestamp" ASC`,
		projectID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []ChatMessage
	for rows.Next() {
		var m ChatMessage
		if err := rows.Scan(&m.MessageID, &m.ProjectID, &m.UserID, &m.UserName, &m.Content, &m.Timestamp); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
