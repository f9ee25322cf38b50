package api

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/simplexhq/simplex-backend/internal/services"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

type createProjectRequest struct {
	Title string `json:"title"`
	Owner string `json:"owner"`
}

func (h *ProjectHandler) ListProjects(ctx *fiber.Ctx) error {
	currentUserID, ok := ctx.Locals("userID").(string)
	if !ok || currentUserID == "" {
		return ctx.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	projects, err := h.projectService.ListByUser(context.Background(), currentUserID)
	if err != nil {
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "could not list projects"})
	}
	return ctx.JSON(projects)
}

func (h *ProjectHandler) CreateProject(ctx *fiber.Ctx) error {
	currentUserID, ok := ctx.Locals("userID").(string)
	if !ok || currentUserID == "" {
		return ctx.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var req createProjectRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if req.Title == "" {
		return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "title required"})
	}

	p, err := h.projectService.Create(context.Background(), currentUserID, req.Owner, req.Title)
	if err != nil {
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "could not create project"})
	}
	return ctx.Status(http.StatusCreated).JSON(p)
}

func (h *ProjectHandler) GetProject(ctx *fiber.Ctx) error {
	projectID := ctx.Params("projectId")
	if projectID == "" {
		return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "projectId required"})
	}

	currentUserID, ok := ctx.Locals("userID").(string)
	if !ok || currentUserID == "" {
		return ctx.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	p, err := h.projectService.Get(context.Background(), projectID)
	if err == sql.ErrNoRows {
		return ctx.Status(http.StatusNotFound).JSON(fiber.Map{"error": "project not found"})
	}
	if err != nil {
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "could not load project"})
	}
	if p.UserID != currentUserID {
		return ctx.Status(http.StatusForbidden).JSON(fiber.Map{"error": "access denied"})
	}
	return ctx.JSON(p)
}

type saveWorkspaceRequest struct {
	WorkspaceState string `json:"workspaceState"`
	LatexCode      string `json:"latexCode"`
}

func (h *ProjectHandler) SaveWorkspace(ctx *fiber.Ctx) error {
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

	var req saveWorkspaceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	if err := h.projectService.SaveWorkspace(context.Background(), projectID, req.WorkspaceState, req.LatexCode); err != nil {
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "could not save workspace"})
	}
	return ctx.SendStatus(http.StatusNoContent)
}

func (h *ProjectHandler) DeleteProject(ctx *fiber.Ctx) error {
	projectID := ctx.Params("projectId")
	if projectID == "" {
		return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "projectId required"})
	}

	currentUserID, ok := ctx.Locals("userID").(string)
	if !ok || currentUserID == "" {
		return ctx.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	if err := h.projectService.Delete(context.Background(), projectID, currentUserID); err != nil {
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "could not delete project"})
	}
	return ctx.SendStatus(http.StatusNoContent)
}
