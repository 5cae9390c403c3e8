// Package tasklists is the application service for task lists and their tasks.
// It owns the referential rules: a task always belongs to exactly one existing list,
// and delete/move only act on a task through the list that currently owns it.
package tasklists

import (
	"context"
	"errors"

	"task-manager/internal/domain"
	"task-manager/internal/ports/out/listrepo"
	"task-manager/internal/ports/out/taskrepo"
	"task-manager/internal/ports/out/txmanager"
)

type Service struct {
	lists listrepo.Repository
	tasks taskrepo.Repository
	tx    txmanager.Manager
}

func NewService(listsRepo listrepo.Repository, tasksRepo taskrepo.Repository, tx txmanager.Manager) *Service {
	return &Service{
		lists: listsRepo,
		tasks: tasksRepo,
		tx:    tx,
	}
}

func (s *Service) ListAll(ctx context.Context) ([]domain.TaskList, error) {
	return s.lists.ListWithTasks(ctx)
}

func (s *Service) CreateList(ctx context.Context, name string) (domain.TaskList, error) {
	if err := ValidateListInput(name); err != nil {
		return domain.TaskList{}, err
	}

	var out domain.TaskList
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		l, err := s.lists.Create(ctx, name)
		if err != nil {
			return err
		}
		out = domain.TaskList{ID: l.ID, Name: l.Name, Tasks: []domain.Task{}}
		return nil
	})
	if err != nil {
		return domain.TaskList{}, err
	}
	return out, nil
}

func (s *Service) DeleteList(ctx context.Context, id domain.ListID) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.findList(ctx, id); err != nil {
			return err
		}
		if err := s.lists.Delete(ctx, id); err != nil {
			if errors.Is(err, listrepo.ErrNotFound) {
				return listNotFound(id)
			}
			return err
		}
		return nil
	})
}

func (s *Service) AddTask(ctx context.Context, listID domain.ListID, name, description string) (domain.Task, error) {
	if err := ValidateTaskInput(name, description); err != nil {
		return domain.Task{}, err
	}

	var out domain.Task
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.findList(ctx, listID); err != nil {
			return err
		}
		t, err := s.tasks.Create(ctx, taskrepo.Task{
			ListID:      listID,
			Name:        name,
			Description: description,
		})
		if err != nil {
			if errors.Is(err, taskrepo.ErrListNotFound) {
				return listNotFound(listID)
			}
			return err
		}
		out = toDomainTask(t)
		return nil
	})
	if err != nil {
		return domain.Task{}, err
	}
	return out, nil
}

func (s *Service) UpdateTask(ctx context.Context, taskID domain.TaskID, name, description string) (domain.Task, error) {
	if err := ValidateTaskInput(name, description); err != nil {
		return domain.Task{}, err
	}

	var out domain.Task
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		t, err := s.findTask(ctx, taskID)
		if err != nil {
			return err
		}
		t.Name = name
		t.Description = description
		if err := s.saveTask(ctx, t); err != nil {
			return err
		}
		out = toDomainTask(t)
		return nil
	})
	if err != nil {
		return domain.Task{}, err
	}
	return out, nil
}

func (s *Service) DeleteTask(ctx context.Context, listID domain.ListID, taskID domain.TaskID) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.findList(ctx, listID); err != nil {
			return err
		}
		t, err := s.findTask(ctx, taskID)
		if err != nil {
			return err
		}
		if t.ListID != listID {
			return taskNotInList("Task does not belong to the specified list", taskID, listID)
		}
		if err := s.tasks.Delete(ctx, taskID); err != nil {
			if errors.Is(err, taskrepo.ErrNotFound) {
				return taskNotFound(taskID)
			}
			return err
		}
		return nil
	})
}

// MoveTask reassigns a task owned by fromListID to toListID. The task keeps its ID.
// Moving a task to the list that already owns it succeeds without a write.
func (s *Service) MoveTask(ctx context.Context, fromListID domain.ListID, taskID domain.TaskID, toListID domain.ListID) (domain.Task, error) {
	var out domain.Task
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.findList(ctx, fromListID); err != nil {
			return err
		}
		if _, err := s.findList(ctx, toListID); err != nil {
			return err
		}
		t, err := s.findTask(ctx, taskID)
		if err != nil {
			return err
		}
		if t.ListID != fromListID {
			return taskNotInList("Task does not belong to the source list", taskID, fromListID)
		}
		if fromListID != toListID {
			t.ListID = toListID
			if err := s.saveTask(ctx, t); err != nil {
				return err
			}
		}
		out = toDomainTask(t)
		return nil
	})
	if err != nil {
		return domain.Task{}, err
	}
	return out, nil
}

func (s *Service) findList(ctx context.Context, id domain.ListID) (listrepo.List, error) {
	l, err := s.lists.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, listrepo.ErrNotFound) {
			return listrepo.List{}, listNotFound(id)
		}
		return listrepo.List{}, err
	}
	return l, nil
}

func (s *Service) findTask(ctx context.Context, id domain.TaskID) (taskrepo.Task, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, taskrepo.ErrNotFound) {
			return taskrepo.Task{}, taskNotFound(id)
		}
		return taskrepo.Task{}, err
	}
	return t, nil
}

func (s *Service) saveTask(ctx context.Context, t taskrepo.Task) error {
	err := s.tasks.Save(ctx, t)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, taskrepo.ErrNotFound):
		return taskNotFound(t.ID)
	case errors.Is(err, taskrepo.ErrListNotFound):
		return listNotFound(t.ListID)
	default:
		return err
	}
}

func toDomainTask(t taskrepo.Task) domain.Task {
	return domain.Task{
		ID:          t.ID,
		ListID:      t.ListID,
		Name:        t.Name,
		Description: t.Description,
	}
}
