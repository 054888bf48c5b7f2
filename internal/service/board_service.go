package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/project-board/internal/domain"
	"github.com/spec-kit/project-board/internal/events"
	"github.com/spec-kit/project-board/internal/stats"
)

// BoardStore is the in-memory board the service reads and writes.
type BoardStore interface {
	ListUsers() []domain.User
	CreateUser(name, email, role string) domain.User
	ListProjects() []domain.Project
	CreateProject(title, description string, technologies []string, ownerID string) domain.Project
	ListTasks() []domain.Task
	Stats() stats.Summary
}

// BoardService coordinates board reads and writes.
type BoardService struct {
	store      BoardStore
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// BoardDependencies bundles collaborators for the board service.
type BoardDependencies struct {
	Store      BoardStore
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// UserCreateInput describes user creation payload.
type UserCreateInput struct {
	Name  string
	Email string
	Role  string
}

// ProjectCreateInput describes project creation payload.
type ProjectCreateInput struct {
	Title        string
	Description  string
	Technologies []string
	OwnerID      string
}

// NewBoardService constructs the service.
func NewBoardService(deps BoardDependencies) *BoardService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BoardService{
		store:      deps.Store,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// ListUsers returns every user.
func (s *BoardService) ListUsers(ctx context.Context) []domain.User {
	return s.store.ListUsers()
}

// CreateUser adds a user and announces it.
func (s *BoardService) CreateUser(ctx context.Context, input UserCreateInput) domain.User {
	user := s.store.CreateUser(input.Name, input.Email, input.Role)
	s.publishEvent(ctx, events.Event{
		Type:     events.EventUserCreated,
		EntityID: user.ID,
		Payload: events.UserCreatedPayload{
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		},
	})
	return user
}

// ListProjects returns every project.
func (s *BoardService) ListProjects(ctx context.Context) []domain.Project {
	return s.store.ListProjects()
}

// CreateProject adds a project in Planning and announces it.
func (s *BoardService) CreateProject(ctx context.Context, input ProjectCreateInput) domain.Project {
	project := s.store.CreateProject(input.Title, input.Description, input.Technologies, input.OwnerID)
	s.publishEvent(ctx, events.Event{
		Type:     events.EventProjectCreated,
		EntityID: project.ID,
		Payload: events.ProjectCreatedPayload{
			Title:        project.Title,
			OwnerID:      project.OwnerID,
			Technologies: project.Technologies,
		},
	})
	return project
}

// ListTasks returns every task.
func (s *BoardService) ListTasks(ctx context.Context) []domain.Task {
	return s.store.ListTasks()
}

// Stats returns board-wide counters from one consistent state.
func (s *BoardService) Stats(ctx context.Context) stats.Summary {
	return s.store.Stats()
}

func (s *BoardService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handlers failed",
			zap.String("event_type", string(event.Type)),
			zap.String("entity_id", event.EntityID),
			zap.Error(err))
	}
}
