package listrepo

import (
	"context"
	"sort"

	"task-manager/internal/adapters/memory/store"
	"task-manager/internal/domain"
	"task-manager/internal/ports/out/listrepo"
)

// Repo is an in-memory implementation of listrepo.Repository backed by a shared store.DB.
// It is safe for concurrent use.
type Repo struct {
	db *store.DB
}

func NewRepo(db *store.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Create(ctx context.Context, name string) (listrepo.List, error) {
	var out listrepo.List
	err := r.db.Do(ctx, func(t *store.Tables) error {
		out = listrepo.List{ID: t.NextListID(), Name: name}
		t.Lists[out.ID] = out
		return nil
	})
	return out, err
}

func (r *Repo) GetByID(ctx context.Context, id domain.ListID) (listrepo.List, error) {
	var out listrepo.List
	err := r.db.Do(ctx, func(t *store.Tables) error {
		l, ok := t.Lists[id]
		if !ok {
			return listrepo.ErrNotFound
		}
		out = l
		return nil
	})
	return out, err
}

func (r *Repo) Delete(ctx context.Context, id domain.ListID) error {
	return r.db.Do(ctx, func(t *store.Tables) error {
		if _, ok := t.Lists[id]; !ok {
			return listrepo.ErrNotFound
		}
		delete(t.Lists, id)
		for tid, task := range t.Tasks {
			if task.ListID == id {
				delete(t.Tasks, tid)
			}
		}
		return nil
	})
}

func (r *Repo) ListWithTasks(ctx context.Context) ([]domain.TaskList, error) {
	var out []domain.TaskList
	err := r.db.Do(ctx, func(t *store.Tables) error {
		byList := make(map[domain.ListID][]domain.Task, len(t.Lists))
		for _, task := range t.Tasks {
			byList[task.ListID] = append(byList[task.ListID], domain.Task{
				ID:          task.ID,
				ListID:      task.ListID,
				Name:        task.Name,
				Description: task.Description,
			})
		}

		out = make([]domain.TaskList, 0, len(t.Lists))
		for _, l := range t.Lists {
			tasks := byList[l.ID]
			if tasks == nil {
				tasks = []domain.Task{}
			}
			sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
			out = append(out, domain.TaskList{ID: l.ID, Name: l.Name, Tasks: tasks})
		}
		sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
