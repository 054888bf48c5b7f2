package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/project-board/internal/api/dto"
	"github.com/spec-kit/project-board/internal/domain"
	"github.com/spec-kit/project-board/internal/service"
)

// TasksHandler exposes the task collection. Tasks are read-only over HTTP.
type TasksHandler struct {
	board *service.BoardService
}

// NewTasksHandler constructs handler.
func NewTasksHandler(board *service.BoardService) *TasksHandler {
	return &TasksHandler{board: board}
}

// List handles GET /tasks.
func (h *TasksHandler) List(c *fiber.Ctx) error {
	tasks := h.board.ListTasks(c.UserContext())
	items := make([]dto.TaskResponse, 0, len(tasks))
	for i := range tasks {
		items = append(items, taskResponse(&tasks[i]))
	}
	return c.JSON(dto.ListResponse("Tasks retrieved successfully", items))
}

func taskResponse(task *domain.Task) dto.TaskResponse {
	return dto.TaskResponse{
		ID:          task.ID,
		ProjectID:   task.ProjectID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		AssignedTo:  task.AssignedTo,
		CreatedAt:   task.CreatedAt,
		DueDate:     task.DueDate,
	}
}
