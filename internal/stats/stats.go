// Package stats derives board-wide counters from users, projects and tasks.
package stats

import (
	"strings"

	"github.com/spec-kit/project-board/internal/domain"
)

// Role keywords are matched as case-sensitive substrings of User.Role.
const (
	roleDeveloper = "Developer"
	roleDesigner  = "Designer"
	roleManager   = "Manager"
)

// Summary is the nested statistics document.
type Summary struct {
	Users    UserStats    `json:"users"`
	Projects ProjectStats `json:"projects"`
	Tasks    TaskStats    `json:"tasks"`
}

// UserStats counts users by activity and role keyword.
type UserStats struct {
	Total  int       `json:"total"`
	Active int       `json:"active"`
	Roles  RoleStats `json:"roles"`
}

// RoleStats buckets are neither exclusive nor exhaustive.
type RoleStats struct {
	Developers int `json:"developers"`
	Designers  int `json:"designers"`
	Managers   int `json:"managers"`
}

// ProjectStats counts projects by exact status.
type ProjectStats struct {
	Total      int `json:"total"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Planning   int `json:"planning"`
}

// TaskStats counts tasks by exact status.
type TaskStats struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	InProgress int `json:"in_progress"`
	Todo       int `json:"todo"`
}

// Aggregator accumulates a Summary one record at a time. The zero value is ready to use.
type Aggregator struct {
	summary Summary
}

// AddUser counts u.
func (a *Aggregator) AddUser(u *domain.User) {
	s := &a.summary.Users
	s.Total++
	if u.IsActive {
		s.Active++
	}
	if strings.Contains(u.Role, roleDeveloper) {
		s.Roles.Developers++
	}
	if strings.Contains(u.Role, roleDesigner) {
		s.Roles.Designers++
	}
	if strings.Contains(u.Role, roleManager) {
		s.Roles.Managers++
	}
}

// AddProject counts p.
func (a *Aggregator) AddProject(p *domain.Project) {
	s := &a.summary.Projects
	s.Total++
	switch p.Status {
	case domain.ProjectStatusInProgress:
		s.InProgress++
	case domain.ProjectStatusCompleted:
		s.Completed++
	case domain.ProjectStatusPlanning:
		s.Planning++
	}
}

// AddTask counts t.
func (a *Aggregator) AddTask(t *domain.Task) {
	s := &a.summary.Tasks
	s.Total++
	switch t.Status {
	case domain.TaskStatusCompleted:
		s.Completed++
	case domain.TaskStatusInProgress:
		s.InProgress++
	case domain.TaskStatusTodo:
		s.Todo++
	}
}

// Summary returns the counters accumulated so far.
func (a *Aggregator) Summary() Summary {
	return a.summary
}

// Compute builds a Summary over the given slices.
func Compute(users []domain.User, projects []domain.Project, tasks []domain.Task) Summary {
	var agg Aggregator
	for i := range users {
		agg.AddUser(&users[i])
	}
	for i := range projects {
		agg.AddProject(&projects[i])
	}
	for i := range tasks {
		agg.AddTask(&tasks[i])
	}
	return agg.Summary()
}
