package collab

import (
	"net/http"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/simplexhq/simplex-backend/internal/auth"
)

// NewHandler returns the fiber handler for GET /ws/:projectId. The token and
// userName query params are checked before the upgrade; the hub only ever
// sees an open, authenticated connection.
func NewHandler(hub *Hub, jwtSecret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		projectID := ctx.Params("projectId")
		if projectID == "" {
			return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "projectId required"})
		}

		userName := ctx.Query("userName")
		if userName == "" {
			return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "userName query param required"})
		}

		// Browsers cannot set headers on websocket requests, so the token
		// rides in the query string.
		token := ctx.Query("token")
		if token == "" {
			return ctx.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "missing authentication token"})
		}
		if _, err := auth.ParseToken(token, jwtSecret); err != nil {
			return ctx.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
		}

		ctx.Locals("projectID", projectID)
		ctx.Locals("userName", userName)

		if websocket.IsWebSocketUpgrade(ctx) {
			return websocket.New(func(conn *websocket.Conn) {
				projectID, _ := conn.Locals("projectID").(string)
				userName, _ := conn.Locals("userName").(string)
				hub.OnConnectionEstablished(projectID, conn, userName)
			})(ctx)
		}
		return fiber.ErrUpgradeRequired
	}
}
