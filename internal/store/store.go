// Package store holds the board's users, projects and tasks in memory.
//
// A single mutex guards all three collections, so every operation observes
// and produces one consistent state of the whole board. Values handed out
// are copies; callers may keep or serialize them after the lock is released.
package store

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/project-board/internal/domain"
	"github.com/spec-kit/project-board/internal/seed"
	"github.com/spec-kit/project-board/internal/stats"
)

// Store is the authoritative in-memory holder of all board entities.
type Store struct {
	mu       sync.Mutex
	users    map[string]domain.User
	projects map[string]domain.Project
	tasks    map[string]domain.Task

	now   func() time.Time
	newID func() string
}

// Option customizes a Store.
type Option func(*Store)

// WithClock sets the time source for created_at values.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator sets the id source for created entities.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// New builds a Store pre-populated with ds. Seed records keep their ids and timestamps.
func New(ds seed.Dataset, opts ...Option) *Store {
	s := &Store{
		users:    make(map[string]domain.User, len(ds.Users)),
		projects: make(map[string]domain.Project, len(ds.Projects)),
		tasks:    make(map[string]domain.Task, len(ds.Tasks)),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, u := range ds.Users {
		s.users[u.ID] = u
	}
	for _, p := range ds.Projects {
		s.projects[p.ID] = p.Clone()
	}
	for _, t := range ds.Tasks {
		s.tasks[t.ID] = t.Clone()
	}
	return s
}

// ListUsers returns a copy of every user in unspecified order.
func (s *Store) ListUsers() []domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		result = append(result, u)
	}
	return result
}

// CreateUser inserts an active user with a fresh id and returns it.
func (s *Store) CreateUser(name, email, role string) domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := domain.User{
		ID:        freshID(s.newID, s.users),
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: s.timestamp(),
		IsActive:  true,
	}
	s.users[user.ID] = user
	return user
}

// ListProjects returns a copy of every project in unspecified order.
func (s *Store) ListProjects() []domain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]domain.Project, 0, len(s.projects))
	for _, p := range s.projects {
		result = append(result, p.Clone())
	}
	return result
}

// CreateProject inserts a project in Planning with zero progress and returns it.
func (s *Store) CreateProject(title, description string, technologies []string, ownerID string) domain.Project {
	technologies = slices.Clone(technologies)
	if technologies == nil {
		technologies = []string{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	project := domain.Project{
		ID:           freshID(s.newID, s.projects),
		Title:        title,
		Description:  description,
		Status:       domain.ProjectStatusPlanning,
		OwnerID:      ownerID,
		CreatedAt:    s.timestamp(),
		Technologies: technologies,
		Progress:     0,
	}
	s.projects[project.ID] = project
	return project.Clone()
}

// ListTasks returns a copy of every task in unspecified order.
func (s *Store) ListTasks() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]domain.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		result = append(result, t.Clone())
	}
	return result
}

// Stats counts users, projects and tasks in one pass under the lock.
func (s *Store) Stats() stats.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	var agg stats.Aggregator
	for _, u := range s.users {
		agg.AddUser(&u)
	}
	for _, p := range s.projects {
		agg.AddProject(&p)
	}
	for _, t := range s.tasks {
		agg.AddTask(&t)
	}
	return agg.Summary()
}

func (s *Store) timestamp() time.Time {
	return s.now().UTC()
}

// maxIDDraws bounds how often an injected generator is consulted per insert.
const maxIDDraws = 8

// freshID returns an id unused in taken. After maxIDDraws empty or taken ids
// from newID it switches to random UUIDs. Callers hold the lock.
func freshID[V any](newID func() string, taken map[string]V) string {
	for i := 0; i < maxIDDraws; i++ {
		if id := newID(); isFree(id, taken) {
			return id
		}
	}
	for {
		if id := uuid.NewString(); isFree(id, taken) {
			return id
		}
	}
}

func isFree[V any](id string, taken map[string]V) bool {
	if id == "" {
		return false
	}
	_, exists := taken[id]
	return !exists
}
