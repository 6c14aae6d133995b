package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/validate"
)

// memTaskStore mirrors the repository contract in memory: owner-scoped
// everywhere, created_at ordering with id as tiebreaker.
type memTaskStore struct {
	nextID int64
	tasks  []domain.Task
}

func newMemTaskStore() *memTaskStore {
	return &memTaskStore{nextID: 1}
}

func (m *memTaskStore) List(_ context.Context, ownerID int64, f domain.TaskFilter) ([]domain.Task, int64, error) {
	var matched []domain.Task
	for _, t := range m.tasks {
		if t.OwnerID != ownerID {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		matched = append(matched, t)
	}

	asc := f.Sort == "asc"
	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			if asc {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.CreatedAt.After(b.CreatedAt)
		}
		if asc {
			return a.ID < b.ID
		}
		return a.ID > b.ID
	})

	total := int64(len(matched))
	if f.Offset >= len(matched) {
		return nil, total, nil
	}
	end := f.Offset + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[f.Offset:end], total, nil
}

func (m *memTaskStore) Create(_ context.Context, t *domain.Task) error {
	t.ID = m.nextID
	m.nextID++
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	m.tasks = append(m.tasks, *t)
	return nil
}

func (m *memTaskStore) Update(_ context.Context, ownerID, id int64, p domain.TaskPatch) (*domain.Task, error) {
	for i := range m.tasks {
		t := &m.tasks[i]
		if t.ID != id || t.OwnerID != ownerID {
			continue
		}
		if p.Title != nil {
			t.Title = *p.Title
		}
		if p.Description != nil {
			t.Description = *p.Description
		}
		if p.Category != nil {
			t.Category = *p.Category
		}
		if p.Status != nil {
			t.Status = *p.Status
		}
		if p.Archived != nil {
			t.Archived = *p.Archived
		}
		if p.DueAt.Set {
			if p.DueAt.Valid {
				due := p.DueAt.Time
				t.DueAt = &due
			} else {
				t.DueAt = nil
			}
		}
		t.UpdatedAt = time.Now()
		cp := *t
		return &cp, nil
	}
	return nil, domain.ErrTaskNotFound
}

func (m *memTaskStore) Delete(_ context.Context, ownerID, id int64) error {
	for i, t := range m.tasks {
		if t.ID == id && t.OwnerID == ownerID {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return nil
		}
	}
	return domain.ErrTaskNotFound
}

func (m *memTaskStore) DeleteDone(_ context.Context, ownerID int64) (int64, error) {
	var kept []domain.Task
	var deleted int64
	for _, t := range m.tasks {
		if t.OwnerID == ownerID && t.Status == domain.StatusDone {
			deleted++
			continue
		}
		kept = append(kept, t)
	}
	m.tasks = kept
	return deleted, nil
}

func mustCreate(t *testing.T, s *TaskService, ownerID int64, in CreateTaskInput) *domain.Task {
	t.Helper()
	task, err := s.Create(context.Background(), ownerID, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return task
}

func TestCreateDefaults(t *testing.T) {
	s := NewTaskService(newMemTaskStore())

	task := mustCreate(t, s, 1, CreateTaskInput{Title: "  buy milk  "})
	if task.Title != "buy milk" {
		t.Fatalf("title = %q; want trimmed", task.Title)
	}
	if task.Category != domain.DefaultCategory {
		t.Fatalf("category = %q; want %q", task.Category, domain.DefaultCategory)
	}
	if task.Status != domain.StatusActive {
		t.Fatalf("status = %q; want active", task.Status)
	}
	if task.OwnerID != 1 {
		t.Fatalf("ownerID = %d; want 1", task.OwnerID)
	}
}

func TestCreateInvalid(t *testing.T) {
	s := NewTaskService(newMemTaskStore())

	_, err := s.Create(context.Background(), 1, CreateTaskInput{Title: "   "})
	var vErr *validate.Error
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, ok := vErr.Fields["title"]; !ok {
		t.Fatalf("expected title error, got %v", vErr.Fields)
	}
}

func TestListClampsAndPages(t *testing.T) {
	store := newMemTaskStore()
	s := NewTaskService(store)
	ctx := context.Background()

	for i := 0; i < 45; i++ {
		mustCreate(t, s, 1, CreateTaskInput{Title: "t"})
	}

	page, err := s.List(ctx, 1, ListParams{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Page != 1 || page.Limit != 20 {
		t.Fatalf("defaults: page=%d limit=%d", page.Page, page.Limit)
	}
	if page.Total != 45 || page.Pages != 3 {
		t.Fatalf("total=%d pages=%d; want 45/3", page.Total, page.Pages)
	}
	if len(page.Items) != 20 {
		t.Fatalf("len(items) = %d; want 20", len(page.Items))
	}

	page, err = s.List(ctx, 1, ListParams{Page: -5, Limit: 1000})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Page != 1 || page.Limit != 100 {
		t.Fatalf("clamped: page=%d limit=%d; want 1/100", page.Page, page.Limit)
	}
	if len(page.Items) != 45 {
		t.Fatalf("len(items) = %d; want 45", len(page.Items))
	}
}

func TestListEmptyHasOnePage(t *testing.T) {
	s := NewTaskService(newMemTaskStore())

	page, err := s.List(context.Background(), 1, ListParams{Status: "done"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 0 || page.Pages != 1 {
		t.Fatalf("total=%d pages=%d; want 0/1", page.Total, page.Pages)
	}
	if page.Items == nil || len(page.Items) != 0 {
		t.Fatalf("items = %#v; want empty non-nil slice", page.Items)
	}
}

func TestListRejectsBadFilter(t *testing.T) {
	s := NewTaskService(newMemTaskStore())

	var vErr *validate.Error
	if _, err := s.List(context.Background(), 1, ListParams{Status: "archived"}); !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := s.List(context.Background(), 1, ListParams{Sort: "sideways"}); !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListScopedToOwner(t *testing.T) {
	s := NewTaskService(newMemTaskStore())
	ctx := context.Background()

	mustCreate(t, s, 1, CreateTaskInput{Title: "mine"})
	mustCreate(t, s, 2, CreateTaskInput{Title: "theirs"})

	page, err := s.List(ctx, 1, ListParams{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 1 || page.Items[0].Title != "mine" {
		t.Fatalf("owner 1 sees %v", page.Items)
	}
}

func TestUpdatePartialPatch(t *testing.T) {
	s := NewTaskService(newMemTaskStore())
	ctx := context.Background()

	task := mustCreate(t, s, 1, CreateTaskInput{Title: "t", Description: "keep me"})

	done := domain.StatusDone
	got, err := s.Update(ctx, 1, task.ID, domain.TaskPatch{Status: &done})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Status != domain.StatusDone {
		t.Fatalf("status = %q; want done", got.Status)
	}
	if got.Description != "keep me" {
		t.Fatalf("description changed: %q", got.Description)
	}
	if got.OwnerID != 1 {
		t.Fatalf("owner changed: %d", got.OwnerID)
	}

	// reopening a done task is allowed
	active := domain.StatusActive
	got, err = s.Update(ctx, 1, task.ID, domain.TaskPatch{Status: &active})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got.Status != domain.StatusActive {
		t.Fatalf("status = %q; want active", got.Status)
	}
}

func TestUpdateDueAtNullClears(t *testing.T) {
	s := NewTaskService(newMemTaskStore())
	ctx := context.Background()

	due := time.Now().Add(24 * time.Hour)
	task := mustCreate(t, s, 1, CreateTaskInput{Title: "t", DueAt: &due})
	if task.DueAt == nil {
		t.Fatal("dueAt should be set")
	}

	got, err := s.Update(ctx, 1, task.ID, domain.TaskPatch{DueAt: domain.NullTime{Set: true, Valid: false}})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.DueAt != nil {
		t.Fatalf("dueAt = %v; want cleared", got.DueAt)
	}
}

func TestCrossOwnerLooksMissing(t *testing.T) {
	s := NewTaskService(newMemTaskStore())
	ctx := context.Background()

	task := mustCreate(t, s, 1, CreateTaskInput{Title: "t"})

	done := domain.StatusDone
	if _, err := s.Update(ctx, 2, task.ID, domain.TaskPatch{Status: &done}); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("update as other owner: %v; want ErrTaskNotFound", err)
	}
	if err := s.Delete(ctx, 2, task.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("delete as other owner: %v; want ErrTaskNotFound", err)
	}

	// the task survives the failed attempts
	page, err := s.List(ctx, 1, ListParams{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 1 {
		t.Fatalf("total = %d; want 1", page.Total)
	}
}

func TestClearHistory(t *testing.T) {
	s := NewTaskService(newMemTaskStore())
	ctx := context.Background()

	done := domain.StatusDone
	for i := 0; i < 3; i++ {
		task := mustCreate(t, s, 1, CreateTaskInput{Title: "done one"})
		if _, err := s.Update(ctx, 1, task.ID, domain.TaskPatch{Status: &done}); err != nil {
			t.Fatalf("update: %v", err)
		}
	}
	mustCreate(t, s, 1, CreateTaskInput{Title: "still active"})
	otherDone := mustCreate(t, s, 2, CreateTaskInput{Title: "other owner"})
	if _, err := s.Update(ctx, 2, otherDone.ID, domain.TaskPatch{Status: &done}); err != nil {
		t.Fatalf("update: %v", err)
	}

	deleted, err := s.ClearHistory(ctx, 1)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if deleted != 3 {
		t.Fatalf("deleted = %d; want 3", deleted)
	}

	page, _ := s.List(ctx, 1, ListParams{})
	if page.Total != 1 || page.Items[0].Title != "still active" {
		t.Fatalf("remaining tasks wrong: %v", page.Items)
	}

	// other owner's history untouched
	otherPage, _ := s.List(ctx, 2, ListParams{Status: "done"})
	if otherPage.Total != 1 {
		t.Fatalf("other owner total = %d; want 1", otherPage.Total)
	}

	// idempotent: clearing again removes nothing and still succeeds
	deleted, err = s.ClearHistory(ctx, 1)
	if err != nil {
		t.Fatalf("second clear: %v", err)
	}
	if deleted != 0 {
		t.Fatalf("second clear deleted = %d; want 0", deleted)
	}
}
