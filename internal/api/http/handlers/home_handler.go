package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/project-board/internal/api/dto"
)

var features = []string{
	"User management",
	"Project tracking",
	"Task overview",
	"Board statistics",
	"Concurrent-safe in-memory store",
}

var endpoints = []string{
	"GET / - API information",
	"GET /users - List all users",
	"POST /users - Create a user",
	"GET /projects - List all projects",
	"POST /projects - Create a project",
	"GET /tasks - List all tasks",
	"GET /stats - Board statistics",
}

// HomeHandler describes the API.
type HomeHandler struct {
	version string
}

// NewHomeHandler constructs handler.
func NewHomeHandler(version string) *HomeHandler {
	return &HomeHandler{version: version}
}

// Welcome handles GET /.
func (h *HomeHandler) Welcome(c *fiber.Ctx) error {
	return c.JSON(dto.ItemResponse("Welcome to the Project Board API", dto.WelcomeResponse{
		Version:   h.version,
		Features:  features,
		Endpoints: endpoints,
	}))
}
