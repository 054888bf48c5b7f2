package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/project-board/internal/api/dto"
	"github.com/spec-kit/project-board/internal/service"
)

// StatsHandler serves board statistics.
type StatsHandler struct {
	board *service.BoardService
}

// NewStatsHandler constructs handler.
func NewStatsHandler(board *service.BoardService) *StatsHandler {
	return &StatsHandler{board: board}
}

// Get handles GET /stats.
func (h *StatsHandler) Get(c *fiber.Ctx) error {
	summary := h.board.Stats(c.UserContext())
	return c.JSON(dto.ItemResponse("Statistics retrieved successfully", summary))
}
