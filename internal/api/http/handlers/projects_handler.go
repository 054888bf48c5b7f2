package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/project-board/internal/api/dto"
	"github.com/spec-kit/project-board/internal/domain"
	"github.com/spec-kit/project-board/internal/service"
)

// ProjectsHandler exposes the project collection.
type ProjectsHandler struct {
	board *service.BoardService
}

// NewProjectsHandler constructs handler.
func NewProjectsHandler(board *service.BoardService) *ProjectsHandler {
	return &ProjectsHandler{board: board}
}

// List handles GET /projects.
func (h *ProjectsHandler) List(c *fiber.Ctx) error {
	projects := h.board.ListProjects(c.UserContext())
	items := make([]dto.ProjectResponse, 0, len(projects))
	for i := range projects {
		items = append(items, projectResponse(&projects[i]))
	}
	return c.JSON(dto.ListResponse("Projects retrieved successfully", items))
}

// Create handles POST /projects. Any status or progress in the body is ignored.
func (h *ProjectsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateProjectRequest
	if err := parseJSONBody(c, &req); err != nil {
		return err
	}
	if missing := req.MissingFields(); len(missing) > 0 {
		return missingFieldsError(missing)
	}

	project := h.board.CreateProject(c.UserContext(), service.ProjectCreateInput{
		Title:        *req.Title,
		Description:  *req.Description,
		Technologies: req.Technologies,
		OwnerID:      *req.OwnerID,
	})
	return c.Status(http.StatusCreated).JSON(dto.ItemResponse("Project created successfully", projectResponse(&project)))
}

func projectResponse(project *domain.Project) dto.ProjectResponse {
	return dto.ProjectResponse{
		ID:           project.ID,
		Title:        project.Title,
		Description:  project.Description,
		Status:       project.Status,
		OwnerID:      project.OwnerID,
		CreatedAt:    project.CreatedAt,
		Technologies: project.Technologies,
		Progress:     project.Progress,
	}
}
