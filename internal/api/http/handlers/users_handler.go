package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/project-board/internal/api/dto"
	"github.com/spec-kit/project-board/internal/domain"
	"github.com/spec-kit/project-board/internal/service"
	apperrors "github.com/spec-kit/project-board/pkg/util"
)

// UsersHandler exposes the user collection.
type UsersHandler struct {
	board *service.BoardService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(board *service.BoardService) *UsersHandler {
	return &UsersHandler{board: board}
}

// List handles GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users := h.board.ListUsers(c.UserContext())
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, userResponse(&users[i]))
	}
	return c.JSON(dto.ListResponse("Users retrieved successfully", items))
}

// Create handles POST /users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := parseJSONBody(c, &req); err != nil {
		return err
	}
	if missing := req.MissingFields(); len(missing) > 0 {
		return missingFieldsError(missing)
	}

	user := h.board.CreateUser(c.UserContext(), service.UserCreateInput{
		Name:  *req.Name,
		Email: *req.Email,
		Role:  *req.Role,
	})
	return c.Status(http.StatusCreated).JSON(dto.ItemResponse("User created successfully", userResponse(&user)))
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		IsActive:  user.IsActive,
	}
}

// parseJSONBody decodes a JSON request body into out. Other content types are
// rejected before decoding; fiber's form decoder hands back strings that alias
// the reused request buffer.
func parseJSONBody(c *fiber.Ctx, out any) error {
	if !c.Is("json") {
		return apperrors.NewValidationError("invalid payload", map[string]any{
			"reason": "content type must be application/json",
		})
	}
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError("invalid payload", map[string]any{"reason": err.Error()})
	}
	return nil
}

func missingFieldsError(missing []string) error {
	return apperrors.NewValidationError(
		"missing required fields: "+strings.Join(missing, ", "),
		map[string]any{"missing": missing},
	)
}
