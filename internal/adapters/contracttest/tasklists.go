// Package contracttest holds repository contract suites shared by every adapter.
package contracttest

import (
	"context"
	"errors"
	"testing"

	"task-manager/internal/domain"
	"task-manager/internal/ports/out/listrepo"
	"task-manager/internal/ports/out/taskrepo"
	"task-manager/internal/ports/out/txmanager"
)

// Stores bundles the ports of one persistence adapter. All three must share a backing store.
type Stores struct {
	Lists listrepo.Repository
	Tasks taskrepo.Repository
	Tx    txmanager.Manager
}

// StoresFactory returns fresh, empty stores and an optional cleanup func.
type StoresFactory func(t *testing.T) (Stores, func())

// RunTaskListStores runs the list/task repository contract against newStores.
// Subtests are sequential so adapters backed by a shared database can reset between them.
func RunTaskListStores(t *testing.T, newStores StoresFactory) {
	t.Helper()

	open := func(t *testing.T) Stores {
		t.Helper()
		s, cleanup := newStores(t)
		if cleanup != nil {
			t.Cleanup(cleanup)
		}
		return s
	}

	t.Run("CreateAndGetList", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		l, err := s.Lists.Create(ctx, "Groceries")
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if l.ID <= 0 || l.Name != "Groceries" {
			t.Fatalf("created=%+v", l)
		}
		got, err := s.Lists.GetByID(ctx, l.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got != l {
			t.Fatalf("got=%+v want=%+v", got, l)
		}

		l2, err := s.Lists.Create(ctx, "Work")
		if err != nil {
			t.Fatalf("Create second: %v", err)
		}
		if l2.ID == l.ID {
			t.Fatalf("ids not unique: %d", l2.ID)
		}
	})

	t.Run("GetMissingList", func(t *testing.T) {
		s := open(t)
		if _, err := s.Lists.GetByID(context.Background(), 424242); !errors.Is(err, listrepo.ErrNotFound) {
			t.Fatalf("err=%v want=%v", err, listrepo.ErrNotFound)
		}
		if err := s.Lists.Delete(context.Background(), 424242); !errors.Is(err, listrepo.ErrNotFound) {
			t.Fatalf("Delete err=%v want=%v", err, listrepo.ErrNotFound)
		}
	})

	t.Run("TaskLifecycle", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		l := mustCreateList(t, s, "Groceries")
		task, err := s.Tasks.Create(ctx, taskrepo.Task{ListID: l.ID, Name: "Milk", Description: "2%"})
		if err != nil {
			t.Fatalf("Create task: %v", err)
		}
		if task.ID <= 0 || task.ListID != l.ID || task.Name != "Milk" || task.Description != "2%" {
			t.Fatalf("created=%+v", task)
		}

		task.Name = "Oat milk"
		task.Description = "barista"
		if err := s.Tasks.Save(ctx, task); err != nil {
			t.Fatalf("Save: %v", err)
		}
		got, err := s.Tasks.GetByID(ctx, task.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got != task {
			t.Fatalf("got=%+v want=%+v", got, task)
		}

		if err := s.Tasks.Delete(ctx, task.ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, err := s.Tasks.GetByID(ctx, task.ID); !errors.Is(err, taskrepo.ErrNotFound) {
			t.Fatalf("GetByID after delete err=%v", err)
		}
		if err := s.Tasks.Delete(ctx, task.ID); !errors.Is(err, taskrepo.ErrNotFound) {
			t.Fatalf("second Delete err=%v", err)
		}
	})

	t.Run("TaskRequiresExistingList", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		if _, err := s.Tasks.Create(ctx, taskrepo.Task{ListID: 424242, Name: "Milk", Description: "2%"}); !errors.Is(err, taskrepo.ErrListNotFound) {
			t.Fatalf("Create err=%v want=%v", err, taskrepo.ErrListNotFound)
		}

		l := mustCreateList(t, s, "Groceries")
		task := mustCreateTask(t, s, l.ID, "Milk")
		task.ListID = 424242
		if err := s.Tasks.Save(ctx, task); !errors.Is(err, taskrepo.ErrListNotFound) {
			t.Fatalf("Save err=%v want=%v", err, taskrepo.ErrListNotFound)
		}
		if err := s.Tasks.Save(ctx, taskrepo.Task{ID: 424242, ListID: l.ID, Name: "x", Description: "y"}); !errors.Is(err, taskrepo.ErrNotFound) {
			t.Fatalf("Save missing err=%v want=%v", err, taskrepo.ErrNotFound)
		}
	})

	t.Run("MoveBySave", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		from := mustCreateList(t, s, "Groceries")
		to := mustCreateList(t, s, "Pantry")
		task := mustCreateTask(t, s, from.ID, "Flour")

		task.ListID = to.ID
		if err := s.Tasks.Save(ctx, task); err != nil {
			t.Fatalf("Save: %v", err)
		}

		ls, err := s.Lists.ListWithTasks(ctx)
		if err != nil {
			t.Fatalf("ListWithTasks: %v", err)
		}
		byID := indexLists(ls)
		if n := len(byID[from.ID].Tasks); n != 0 {
			t.Fatalf("from tasks=%d want=0", n)
		}
		if got := byID[to.ID].Tasks; len(got) != 1 || got[0].ID != task.ID || got[0].ListID != to.ID {
			t.Fatalf("to tasks=%+v", got)
		}
	})

	t.Run("DeleteListCascades", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		doomed := mustCreateList(t, s, "Doomed")
		kept := mustCreateList(t, s, "Kept")
		t1 := mustCreateTask(t, s, doomed.ID, "a")
		t2 := mustCreateTask(t, s, doomed.ID, "b")
		t3 := mustCreateTask(t, s, kept.ID, "c")

		if err := s.Lists.Delete(ctx, doomed.ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, err := s.Lists.GetByID(ctx, doomed.ID); !errors.Is(err, listrepo.ErrNotFound) {
			t.Fatalf("GetByID after delete err=%v", err)
		}
		for _, id := range []domain.TaskID{t1.ID, t2.ID} {
			if _, err := s.Tasks.GetByID(ctx, id); !errors.Is(err, taskrepo.ErrNotFound) {
				t.Fatalf("task %d survived cascade: err=%v", id, err)
			}
		}
		if _, err := s.Tasks.GetByID(ctx, t3.ID); err != nil {
			t.Fatalf("unrelated task deleted: %v", err)
		}
	})

	t.Run("ListWithTasksOrdering", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		a := mustCreateList(t, s, "A")
		b := mustCreateList(t, s, "B")
		empty := mustCreateList(t, s, "Empty")
		a1 := mustCreateTask(t, s, a.ID, "a1")
		b1 := mustCreateTask(t, s, b.ID, "b1")
		a2 := mustCreateTask(t, s, a.ID, "a2")

		ls, err := s.Lists.ListWithTasks(ctx)
		if err != nil {
			t.Fatalf("ListWithTasks: %v", err)
		}
		if len(ls) != 3 {
			t.Fatalf("len=%d want=3", len(ls))
		}
		if ls[0].ID != a.ID || ls[1].ID != b.ID || ls[2].ID != empty.ID {
			t.Fatalf("order=[%d %d %d]", ls[0].ID, ls[1].ID, ls[2].ID)
		}
		if got := ls[0].Tasks; len(got) != 2 || got[0].ID != a1.ID || got[1].ID != a2.ID {
			t.Fatalf("list A tasks=%+v", got)
		}
		if got := ls[1].Tasks; len(got) != 1 || got[0].ID != b1.ID || got[0].Description != "desc" {
			t.Fatalf("list B tasks=%+v", got)
		}
		if ls[2].Tasks == nil || len(ls[2].Tasks) != 0 {
			t.Fatalf("empty list tasks=%#v want empty non-nil", ls[2].Tasks)
		}
	})

	t.Run("TxCommitAndRollback", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()
		boom := errors.New("boom")

		var committed listrepo.List
		err := s.Tx.WithinTx(ctx, func(ctx context.Context) error {
			var err error
			committed, err = s.Lists.Create(ctx, "Committed")
			if err != nil {
				return err
			}
			_, err = s.Tasks.Create(ctx, taskrepo.Task{ListID: committed.ID, Name: "t", Description: "d"})
			return err
		})
		if err != nil {
			t.Fatalf("commit tx: %v", err)
		}

		var rolledBack listrepo.List
		err = s.Tx.WithinTx(ctx, func(ctx context.Context) error {
			var err error
			rolledBack, err = s.Lists.Create(ctx, "RolledBack")
			if err != nil {
				return err
			}
			if err := s.Lists.Delete(ctx, committed.ID); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("rollback tx err=%v want=%v", err, boom)
		}

		if _, err := s.Lists.GetByID(ctx, rolledBack.ID); !errors.Is(err, listrepo.ErrNotFound) {
			t.Fatalf("rolled back list visible: err=%v", err)
		}
		ls, err := s.Lists.ListWithTasks(ctx)
		if err != nil {
			t.Fatalf("ListWithTasks: %v", err)
		}
		if len(ls) != 1 || ls[0].ID != committed.ID || len(ls[0].Tasks) != 1 {
			t.Fatalf("after rollback lists=%+v", ls)
		}
	})
}

func mustCreateList(t *testing.T, s Stores, name string) listrepo.List {
	t.Helper()
	l, err := s.Lists.Create(context.Background(), name)
	if err != nil {
		t.Fatalf("create list %q: %v", name, err)
	}
	return l
}

func mustCreateTask(t *testing.T, s Stores, listID domain.ListID, name string) taskrepo.Task {
	t.Helper()
	task, err := s.Tasks.Create(context.Background(), taskrepo.Task{ListID: listID, Name: name, Description: "desc"})
	if err != nil {
		t.Fatalf("create task %q: %v", name, err)
	}
	return task
}

func indexLists(ls []domain.TaskList) map[domain.ListID]domain.TaskList {
	out := make(map[domain.ListID]domain.TaskList, len(ls))
	for _, l := range ls {
		out[l.ID] = l
	}
	return out
}
