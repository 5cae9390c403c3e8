package taskrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"task-manager/internal/adapters/postgres"
	"task-manager/internal/domain"
	"task-manager/internal/ports/out/taskrepo"
)

const fkTaskList = "fk_task_task_list"

// Repo is a Postgres implementation of taskrepo.Repository.
// Inside a transaction GetByID locks the row (SELECT ... FOR UPDATE) so the
// ownership check and the following write see the same owner.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Create(ctx context.Context, t taskrepo.Task) (taskrepo.Task, error) {
	out := t
	err := postgres.Conn(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO task (name, description, task_list_id) VALUES ($1, $2, $3) RETURNING id`,
		t.Name, t.Description, t.ListID,
	).Scan(&out.ID)
	if err != nil {
		if postgres.IsForeignKeyViolation(err, fkTaskList) {
			return taskrepo.Task{}, taskrepo.ErrListNotFound
		}
		return taskrepo.Task{}, fmt.Errorf("postgres: create task: %w", err)
	}
	return out, nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.TaskID) (taskrepo.Task, error) {
	q := `SELECT id, task_list_id, name, description FROM task WHERE id = $1`
	if postgres.InTx(ctx) {
		q += ` FOR UPDATE`
	}
	var out taskrepo.Task
	err := postgres.Conn(ctx, r.pool).QueryRow(ctx, q, id).
		Scan(&out.ID, &out.ListID, &out.Name, &out.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return taskrepo.Task{}, taskrepo.ErrNotFound
		}
		return taskrepo.Task{}, fmt.Errorf("postgres: get task %d: %w", id, err)
	}
	return out, nil
}

func (r *Repo) Save(ctx context.Context, t taskrepo.Task) error {
	tag, err := postgres.Conn(ctx, r.pool).Exec(ctx,
		`UPDATE task SET name = $2, description = $3, task_list_id = $4 WHERE id = $1`,
		t.ID, t.Name, t.Description, t.ListID,
	)
	if err != nil {
		if postgres.IsForeignKeyViolation(err, fkTaskList) {
			return taskrepo.ErrListNotFound
		}
		return fmt.Errorf("postgres: save task %d: %w", t.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return taskrepo.ErrNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id domain.TaskID) error {
	tag, err := postgres.Conn(ctx, r.pool).Exec(ctx, `DELETE FROM task WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("postgres: delete task %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return taskrepo.ErrNotFound
	}
	return nil
}
