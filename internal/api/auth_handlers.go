package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/simplexhq/simplex-backend/internal/auth"
	"github.com/simplexhq/simplex-backend/internal/services"
)

type AuthHandler struct {
	authService  *services.AuthService
	jwtSecret    string
	jwtExpiresIn string
}

func NewAuthHandler(authService *services.AuthService, jwtSecret, jwtExpiresIn string) *AuthHandler {
	return &AuthHandler{authService: authService, jwtSecret: jwtSecret, jwtExpiresIn: jwtExpiresIn}
}

type registerRequest struct {
	UserName        string `json:"userName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if req.UserName == "" || req.Email == "" || req.Password == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "userName, email and password required"})
	}
	if req.Password != req.ConfirmPassword {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "passwords do not match"})
	}

	inUse, err := h.authService.EmailInUse(context.Background(), req.Email)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "could not check email"})
	}
	if inUse {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "email is already in use"})
	}

	u, err := h.authService.CreateUser(context.Background(), req.UserName, req.Email, req.Password)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "could not create user"})
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"user": fiber.Map{
			"id":       u.ID,
			"userName": u.UserName,
			"email":    u.Email,
		},
	})
}

type loginRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	u, err := h.authService.GetByUserName(context.Background(), req.UserName)
	if err != nil {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
	}
	if err := h.authService.CheckPassword(u, req.Password); err != nil {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
	}

	duration, err := time.ParseDuration(h.jwtExpiresIn)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "invalid token duration"})
	}

	token, err := auth.GenerateToken(u.ID, h.jwtSecret, duration)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "token error"})
	}

	return c.JSON(fiber.Map{
		"accessToken": token,
		"user": fiber.Map{
			"id":       u.ID,
			"userName": u.UserName,
			"email":    u.Email,
		},
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	// JWT-only logout: client just drops the token
	return c.SendStatus(http.StatusNoContent)
}
