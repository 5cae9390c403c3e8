package listrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"task-manager/internal/adapters/postgres"
	"task-manager/internal/domain"
	"task-manager/internal/ports/out/listrepo"
)

// Repo is a Postgres implementation of listrepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Create(ctx context.Context, name string) (listrepo.List, error) {
	out := listrepo.List{Name: name}
	err := postgres.Conn(ctx, r.pool).
		QueryRow(ctx, `INSERT INTO task_list (name) VALUES ($1) RETURNING id`, name).
		Scan(&out.ID)
	if err != nil {
		return listrepo.List{}, fmt.Errorf("postgres: create list: %w", err)
	}
	return out, nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.ListID) (listrepo.List, error) {
	var out listrepo.List
	err := postgres.Conn(ctx, r.pool).
		QueryRow(ctx, `SELECT id, name FROM task_list WHERE id = $1`, id).
		Scan(&out.ID, &out.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return listrepo.List{}, listrepo.ErrNotFound
		}
		return listrepo.List{}, fmt.Errorf("postgres: get list %d: %w", id, err)
	}
	return out, nil
}

// Delete relies on ON DELETE CASCADE to remove the list's tasks.
func (r *Repo) Delete(ctx context.Context, id domain.ListID) error {
	tag, err := postgres.Conn(ctx, r.pool).Exec(ctx, `DELETE FROM task_list WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("postgres: delete list %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return listrepo.ErrNotFound
	}
	return nil
}

const listWithTasksSQL = `
SELECT l.id, l.name, t.id, t.task_list_id, t.name, t.description
FROM task_list l
LEFT JOIN task t ON t.task_list_id = l.id
ORDER BY l.id, t.id`

func (r *Repo) ListWithTasks(ctx context.Context) ([]domain.TaskList, error) {
	rows, err := postgres.Conn(ctx, r.pool).Query(ctx, listWithTasksSQL)
	if err != nil {
		return nil, fmt.Errorf("postgres: list with tasks: %w", err)
	}
	defer rows.Close()

	out := make([]domain.TaskList, 0)
	for rows.Next() {
		var (
			listID   domain.ListID
			listName string
			taskID   *int64
			ownerID  *int64
			taskName *string
			taskDesc *string
		)
		if err := rows.Scan(&listID, &listName, &taskID, &ownerID, &taskName, &taskDesc); err != nil {
			return nil, fmt.Errorf("postgres: scan list with tasks: %w", err)
		}
		// Rows arrive grouped by list id.
		if n := len(out); n == 0 || out[n-1].ID != listID {
			out = append(out, domain.TaskList{ID: listID, Name: listName, Tasks: []domain.Task{}})
		}
		if taskID == nil {
			continue
		}
		cur := &out[len(out)-1]
		cur.Tasks = append(cur.Tasks, domain.Task{
			ID:          domain.TaskID(*taskID),
			ListID:      domain.ListID(*ownerID),
			Name:        deref(taskName),
			Description: deref(taskDesc),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: list with tasks: %w", err)
	}
	return out, nil
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
