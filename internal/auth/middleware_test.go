package auth

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

func newProtectedApp(secret string) *fiber.App {
	app := fiber.New()
	app.Get("/whoami", Middleware(secret), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("userID").(string))
	})
	return app
}

func TestMiddlewareRejectsMissingToken(t *testing.T) {
	app := newProtectedApp("secret")

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestMiddlewareRejectsMalformedHeader(t *testing.T) {
	app := newProtectedApp("secret")

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Basic abc123")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestMiddlewarePassesUserID(t *testing.T) {
	app := newProtectedApp("secret")

	token, err := GenerateToken("user-42", "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "user-42" {
		t.Fatalf("body = %q, want user-42", body)
	}
}
