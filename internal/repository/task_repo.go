package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"taskboard/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `id, owner_id, title, description, category, status, due_at, archived, created_at, updated_at`

// List returns one page of the owner's tasks plus the total count for the
// same filter. Ordering is created_at with id as tiebreaker so pagination
// stays stable across identical timestamps.
func (r *TaskRepository) List(ctx context.Context, ownerID int64, f domain.TaskFilter) ([]domain.Task, int64, error) {
	where := `WHERE owner_id = $1`
	args := []any{ownerID}
	if f.Status != "" {
		where += ` AND status = $2`
		args = append(args, f.Status)
	}

	dir := "DESC"
	if f.Sort == "asc" {
		dir = "ASC"
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tasks `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		`SELECT %s FROM tasks %s ORDER BY created_at %s, id %s LIMIT %d OFFSET %d`,
		taskColumns, where, dir, dir, f.Limit, f.Offset,
	)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var res []domain.Task
	for rows.Next() {
		var t domain.Task
		if err := scanTask(rows, &t); err != nil {
			return nil, 0, err
		}
		res = append(res, t)
	}
	return res, total, rows.Err()
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO tasks (owner_id, title, description, category, status, due_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, archived, created_at, updated_at`,
		t.OwnerID, t.Title, t.Description, t.Category, t.Status, t.DueAt,
	).Scan(&t.ID, &t.Archived, &t.CreatedAt, &t.UpdatedAt)
}

// Update applies only the fields present in the patch. The owner_id in the
// WHERE clause makes another user's task look nonexistent.
func (r *TaskRepository) Update(ctx context.Context, ownerID, id int64, p domain.TaskPatch) (*domain.Task, error) {
	sets := []string{"updated_at = now()"}
	args := []any{ownerID, id}

	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if p.Title != nil {
		add("title", *p.Title)
	}
	if p.Description != nil {
		add("description", *p.Description)
	}
	if p.Category != nil {
		add("category", *p.Category)
	}
	if p.Status != nil {
		add("status", *p.Status)
	}
	if p.Archived != nil {
		add("archived", *p.Archived)
	}
	if p.DueAt.Set {
		if p.DueAt.Valid {
			add("due_at", p.DueAt.Time)
		} else {
			add("due_at", nil)
		}
	}

	query := fmt.Sprintf(
		`UPDATE tasks SET %s WHERE owner_id = $1 AND id = $2 RETURNING %s`,
		strings.Join(sets, ", "), taskColumns,
	)

	var t domain.Task
	err := scanTask(r.db.QueryRow(ctx, query, args...), &t)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepository) Delete(ctx context.Context, ownerID, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// DeleteDone removes every done task for the owner and reports how many.
func (r *TaskRepository) DeleteDone(ctx context.Context, ownerID int64) (int64, error) {
	res, err := r.db.Exec(ctx,
		`DELETE FROM tasks WHERE owner_id = $1 AND status = $2`,
		ownerID, domain.StatusDone,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected(), nil
}

func scanTask(row pgx.Row, t *domain.Task) error {
	return row.Scan(
		&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.Category,
		&t.Status, &t.DueAt, &t.Archived, &t.CreatedAt, &t.UpdatedAt,
	)
}
