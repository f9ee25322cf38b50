package main

import (
	"database/sql"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/simplexhq/simplex-backend/internal/api"
	"github.com/simplexhq/simplex-backend/internal/auth"
	"github.com/simplexhq/simplex-backend/internal/cache"
	"github.com/simplexhq/simplex-backend/internal/collab"
	"github.com/simplexhq/simplex-backend/internal/config"
	"github.com/simplexhq/simplex-backend/internal/services"
)

func main() {
	cfg := config.Load()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal("open db:", err)
	}
	defer db.Close()

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.CacheTTL)
	defer cacheClient.Close()

	authService := services.NewAuthService(db)
	projectService := services.NewProjectService(db)
	chatService := services.NewChatService(db, cacheClient)

	hub := collab.NewHub(chatService)

	authHandler := api.NewAuthHandler(authService, cfg.JWTSecret, cfg.JWTExpiresIn)
	projectHandler := api.NewProjectHandler(projectService)
	chatHandler := api.NewChatHandler(chatService, projectService, cacheClient)

	app := fiber.New()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// public auth routes
	app.Post("/api/auth/register", authHandler.Register)
	app.Post("/api/auth/login", authHandler.Login)
	app.Post("/api/auth/logout", authHandler.Logout)

	// protected routes
	apiGroup := app.Group("/api", auth.Middleware(cfg.JWTSecret))
	apiGroup.Get("/projects", projectHandler.ListProjects)
	apiGroup.Post("/projects", projectHandler.CreateProject)
	apiGroup.Get("/projects/:projectId", projectHandler.GetProject)
	apiGroup.Put("/projects/:projectId/workspace", projectHandler.SaveWorkspace)
	apiGroup.Delete("/projects/:projectId", projectHandler.DeleteProject)
	apiGroup.Get("/chat/:projectId/messages", chatHandler.ListMessages)

	// editor websocket; token checked in the handler before the upgrade
	app.Get("/ws/:projectId", collab.NewHandler(hub, cfg.JWTSecret))

	log.Fatal(app.Listen(":" + cfg.Port))
}
