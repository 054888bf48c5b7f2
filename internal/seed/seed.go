// Package seed loads the dataset the board starts with.
package seed

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/spec-kit/project-board/internal/domain"
)

//go:embed default.yaml
var defaultDocument []byte

// Dataset is the initial content of the board.
type Dataset struct {
	Users    []domain.User
	Projects []domain.Project
	Tasks    []domain.Task
}

type document struct {
	Users    []userRecord    `yaml:"users"`
	Projects []projectRecord `yaml:"projects"`
	Tasks    []taskRecord    `yaml:"tasks"`
}

type userRecord struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Email     string `yaml:"email"`
	Role      string `yaml:"role"`
	CreatedAt string `yaml:"created_at"`
	IsActive  *bool  `yaml:"is_active,omitempty"`
}

type projectRecord struct {
	ID           string   `yaml:"id"`
	Title        string   `yaml:"title"`
	Description  string   `yaml:"description"`
	Status       string   `yaml:"status"`
	OwnerID      string   `yaml:"owner_id"`
	CreatedAt    string   `yaml:"created_at"`
	Technologies []string `yaml:"technologies,flow"`
	Progress     int      `yaml:"progress"`
}

type taskRecord struct {
	ID          string  `yaml:"id"`
	ProjectID   string  `yaml:"project_id"`
	Title       string  `yaml:"title"`
	Description string  `yaml:"description"`
	Status      string  `yaml:"status"`
	Priority    string  `yaml:"priority"`
	AssignedTo  *string `yaml:"assigned_to,omitempty"`
	CreatedAt   string  `yaml:"created_at"`
	DueDate     *string `yaml:"due_date,omitempty"`
}

// Default returns the embedded dataset: 5 users, 3 projects and 3 tasks.
func Default() (Dataset, error) {
	return Parse(defaultDocument)
}

// Load reads the dataset from path, or the embedded one when path is empty.
func Load(path string) (Dataset, error) {
	if path == "" {
		return Default()
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("read seed file: %w", err)
	}
	ds, err := Parse(content)
	if err != nil {
		return Dataset{}, fmt.Errorf("seed file %s: %w", path, err)
	}
	return ds, nil
}

// Parse decodes a YAML seed document. Ids must be non-empty and unique per collection.
func Parse(content []byte) (Dataset, error) {
	var doc document
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return Dataset{}, fmt.Errorf("decode seed: %w", err)
	}

	ds := Dataset{
		Users:    make([]domain.User, 0, len(doc.Users)),
		Projects: make([]domain.Project, 0, len(doc.Projects)),
		Tasks:    make([]domain.Task, 0, len(doc.Tasks)),
	}

	seen := make(map[string]struct{}, len(doc.Users))
	for _, rec := range doc.Users {
		if err := checkID("user", rec.ID, seen); err != nil {
			return Dataset{}, err
		}
		createdAt, err := parseTime(rec.CreatedAt)
		if err != nil {
			return Dataset{}, fmt.Errorf("user %s created_at: %w", rec.ID, err)
		}
		active := true
		if rec.IsActive != nil {
			active = *rec.IsActive
		}
		ds.Users = append(ds.Users, domain.User{
			ID:        rec.ID,
			Name:      rec.Name,
			Email:     rec.Email,
			Role:      rec.Role,
			CreatedAt: createdAt,
			IsActive:  active,
		})
	}

	seen = make(map[string]struct{}, len(doc.Projects))
	for _, rec := range doc.Projects {
		if err := checkID("project", rec.ID, seen); err != nil {
			return Dataset{}, err
		}
		createdAt, err := parseTime(rec.CreatedAt)
		if err != nil {
			return Dataset{}, fmt.Errorf("project %s created_at: %w", rec.ID, err)
		}
		technologies := rec.Technologies
		if technologies == nil {
			technologies = []string{}
		}
		ds.Projects = append(ds.Projects, domain.Project{
			ID:           rec.ID,
			Title:        rec.Title,
			Description:  rec.Description,
			Status:       rec.Status,
			OwnerID:      rec.OwnerID,
			CreatedAt:    createdAt,
			Technologies: technologies,
			Progress:     rec.Progress,
		})
	}

	seen = make(map[string]struct{}, len(doc.Tasks))
	for _, rec := range doc.Tasks {
		if err := checkID("task", rec.ID, seen); err != nil {
			return Dataset{}, err
		}
		createdAt, err := parseTime(rec.CreatedAt)
		if err != nil {
			return Dataset{}, fmt.Errorf("task %s created_at: %w", rec.ID, err)
		}
		task := domain.Task{
			ID:          rec.ID,
			ProjectID:   rec.ProjectID,
			Title:       rec.Title,
			Description: rec.Description,
			Status:      rec.Status,
			Priority:    rec.Priority,
			AssignedTo:  rec.AssignedTo,
			CreatedAt:   createdAt,
		}
		if rec.DueDate != nil {
			due, err := parseTime(*rec.DueDate)
			if err != nil {
				return Dataset{}, fmt.Errorf("task %s due_date: %w", rec.ID, err)
			}
			task.DueDate = &due
		}
		ds.Tasks = append(ds.Tasks, task)
	}

	return ds, nil
}

// Marshal renders ds as a YAML seed document that Parse accepts.
func Marshal(ds Dataset) ([]byte, error) {
	doc := document{
		Users:    make([]userRecord, 0, len(ds.Users)),
		Projects: make([]projectRecord, 0, len(ds.Projects)),
		Tasks:    make([]taskRecord, 0, len(ds.Tasks)),
	}
	for _, u := range ds.Users {
		active := u.IsActive
		doc.Users = append(doc.Users, userRecord{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			Role:      u.Role,
			CreatedAt: formatTime(u.CreatedAt),
			IsActive:  &active,
		})
	}
	for _, p := range ds.Projects {
		doc.Projects = append(doc.Projects, projectRecord{
			ID:           p.ID,
			Title:        p.Title,
			Description:  p.Description,
			Status:       p.Status,
			OwnerID:      p.OwnerID,
			CreatedAt:    formatTime(p.CreatedAt),
			Technologies: p.Technologies,
			Progress:     p.Progress,
		})
	}
	for _, t := range ds.Tasks {
		rec := taskRecord{
			ID:          t.ID,
			ProjectID:   t.ProjectID,
			Title:       t.Title,
			Description: t.Description,
			Status:      t.Status,
			Priority:    t.Priority,
			AssignedTo:  t.AssignedTo,
			CreatedAt:   formatTime(t.CreatedAt),
		}
		if t.DueDate != nil {
			due := formatTime(*t.DueDate)
			rec.DueDate = &due
		}
		doc.Tasks = append(doc.Tasks, rec)
	}
	return yaml.Marshal(doc)
}

func checkID(kind, id string, seen map[string]struct{}) error {
	if id == "" {
		return fmt.Errorf("%s without id", kind)
	}
	if _, dup := seen[id]; dup {
		return fmt.Errorf("duplicate %s id %q", kind, id)
	}
	seen[id] = struct{}{}
	return nil
}

func parseTime(val string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
