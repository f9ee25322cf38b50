package api

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/simplexhq/simplex-backend/internal/cache"
	"github.com/simplexhq/simplex-backend/internal/services"
)

type ChatHandler struct {
	chatService    *services.ChatService
	projectService *services.ProjectService
	cache          *cache.Cache
}

func NewChatHandler(chatService *services.ChatService, projectService *services.ProjectService, c *cache.Cache) *ChatHandler {
	return &ChatHandler{chatService: chatService, projectService: projectService, cache: c}
}

// ListMessages serves a project's chat history, ascending by timestamp.
// Cached with a short TTL; the cache entry is invalidated whenever the hub
// persists a new message.
func (h *ChatHandler) ListMessages(ctx *fiber.Ctx) error {
	projectID := ctx.Params("projectId")
	if projectID == "" {
		return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "projectId required"})
	}

	currentUserID, ok := ctx.Locals("userID").(string)
	if !ok || currentUserID == "" {
		return ctx.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	okIn, err := h.projectService.IsMember(context.Background(), projectID, currentUserID)
	if err != nil {
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "could not verify access"})
	}
	if !okIn {
		return ctx.Status(http.StatusForbidden).JSON(fiber.Map{"error": "access denied"})
	}

	return cachedJSON(ctx, h.cache, "chat:"+projectID, func() (interface{}, error) {
		msgs, err := h.chatService.ListByProject(context.Background(), projectID)
		if err != nil {
			return nil, err
		}
		if msgs == nil {
			msgs = []services.ChatMessage{}
		}
		return msgs, nil
	})
}
