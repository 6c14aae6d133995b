package service

import (
	"context"
	"strings"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/validate"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxPage      = 1000000
	MaxLimit     = 100
)

// TaskStore is the persistence surface TaskService needs. Every method is
// owner-scoped: a task belonging to another user behaves as if it does not
// exist. Implemented by repository.TaskRepository.
type TaskStore interface {
	List(ctx context.Context, ownerID int64, f domain.TaskFilter) ([]domain.Task, int64, error)
	Create(ctx context.Context, t *domain.Task) error
	Update(ctx context.Context, ownerID, id int64, p domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, ownerID, id int64) error
	DeleteDone(ctx context.Context, ownerID int64) (int64, error)
}

type TaskService struct {
	tasks TaskStore
}

func NewTaskService(tasks TaskStore) *TaskService {
	return &TaskService{tasks: tasks}
}

// ListParams are the raw query inputs before clamping.
type ListParams struct {
	Status string
	Sort   string
	Page   int
	Limit  int
}

// TaskPage is one page of a caller's tasks.
type TaskPage struct {
	Items []domain.Task `json:"items"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
	Total int64         `json:"total"`
	Pages int64         `json:"pages"`
}

func clamp(v, min, max, def int) int {
	if v == 0 {
		return def
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// List returns the caller's tasks ordered by created_at (ties broken by id,
// so the order is stable). Page and limit are clamped rather than rejected;
// status and sort are rejected when present but invalid.
func (s *TaskService) List(ctx context.Context, ownerID int64, p ListParams) (*TaskPage, error) {
	if err := validate.ListQuery(p.Status, p.Sort).Err(); err != nil {
		return nil, err
	}

	page := clamp(p.Page, 1, MaxPage, DefaultPage)
	limit := clamp(p.Limit, 1, MaxLimit, DefaultLimit)
	sort := p.Sort
	if sort == "" {
		sort = "desc"
	}

	items, total, err := s.tasks.List(ctx, ownerID, domain.TaskFilter{
		Status: p.Status,
		Sort:   sort,
		Offset: (page - 1) * limit,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Task{}
	}

	pages := (total + int64(limit) - 1) / int64(limit)
	if pages < 1 {
		pages = 1
	}

	return &TaskPage{Items: items, Page: page, Limit: limit, Total: total, Pages: pages}, nil
}

// CreateTaskInput is the create payload after JSON binding.
type CreateTaskInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	DueAt       *time.Time `json:"dueAt"`
}

// Create validates the input and stores a new active task for the caller.
func (s *TaskService) Create(ctx context.Context, ownerID int64, in CreateTaskInput) (*domain.Task, error) {
	if err := validate.CreateTask(in.Title, in.Description, in.Category).Err(); err != nil {
		return nil, err
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = domain.DefaultCategory
	}

	t := &domain.Task{
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Category:    category,
		Status:      domain.StatusActive,
	}
	if in.DueAt != nil {
		due := *in.DueAt
		t.DueAt = &due
	}

	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Update applies a partial patch to one of the caller's tasks. Only fields
// present in the request are touched; the owner never changes.
func (s *TaskService) Update(ctx context.Context, ownerID, id int64, p domain.TaskPatch) (*domain.Task, error) {
	if err := validate.UpdateTask(p).Err(); err != nil {
		return nil, err
	}

	if p.Title != nil {
		t := strings.TrimSpace(*p.Title)
		p.Title = &t
	}
	if p.Description != nil {
		d := strings.TrimSpace(*p.Description)
		p.Description = &d
	}
	if p.Category != nil {
		c := strings.TrimSpace(*p.Category)
		p.Category = &c
	}

	return s.tasks.Update(ctx, ownerID, id, p)
}

// Delete removes one of the caller's tasks.
func (s *TaskService) Delete(ctx context.Context, ownerID, id int64) error {
	return s.tasks.Delete(ctx, ownerID, id)
}

// ClearHistory deletes every done task owned by the caller and returns how
// many went away. Calling it with an empty history is a no-op success.
func (s *TaskService) ClearHistory(ctx context.Context, ownerID int64) (int64, error) {
	return s.tasks.DeleteDone(ctx, ownerID)
}
