package taskrepo

import (
	"context"

	"task-manager/internal/adapters/memory/store"
	"task-manager/internal/domain"
	"task-manager/internal/ports/out/taskrepo"
)

// Repo is an in-memory implementation of taskrepo.Repository backed by a shared store.DB.
// It enforces the owning-list reference the way a foreign key would.
type Repo struct {
	db *store.DB
}

func NewRepo(db *store.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Create(ctx context.Context, in taskrepo.Task) (taskrepo.Task, error) {
	var out taskrepo.Task
	err := r.db.Do(ctx, func(t *store.Tables) error {
		if _, ok := t.Lists[in.ListID]; !ok {
			return taskrepo.ErrListNotFound
		}
		out = in
		out.ID = t.NextTaskID()
		t.Tasks[out.ID] = out
		return nil
	})
	return out, err
}

func (r *Repo) GetByID(ctx context.Context, id domain.TaskID) (taskrepo.Task, error) {
	var out taskrepo.Task
	err := r.db.Do(ctx, func(t *store.Tables) error {
		task, ok := t.Tasks[id]
		if !ok {
			return taskrepo.ErrNotFound
		}
		out = task
		return nil
	})
	return out, err
}

func (r *Repo) Save(ctx context.Context, in taskrepo.Task) error {
	return r.db.Do(ctx, func(t *store.Tables) error {
		if _, ok := t.Tasks[in.ID]; !ok {
			return taskrepo.ErrNotFound
		}
		if _, ok := t.Lists[in.ListID]; !ok {
			return taskrepo.ErrListNotFound
		}
		t.Tasks[in.ID] = in
		return nil
	})
}

func (r *Repo) Delete(ctx context.Context, id domain.TaskID) error {
	return r.db.Do(ctx, func(t *store.Tables) error {
		if _, ok := t.Tasks[id]; !ok {
			return taskrepo.ErrNotFound
		}
		delete(t.Tasks, id)
		return nil
	})
}
