// Package store is the shared in-memory database behind the memory list and task repos.
package store

import (
	"context"
	"sync"

	"task-manager/internal/domain"
	"task-manager/internal/ports/out/listrepo"
	"task-manager/internal/ports/out/taskrepo"
)

// Tables is the mutable state of a DB. It is only handed out while the DB lock is held.
type Tables struct {
	Lists map[domain.ListID]listrepo.List
	Tasks map[domain.TaskID]taskrepo.Task

	nextListID domain.ListID
	nextTaskID domain.TaskID
}

func (t *Tables) NextListID() domain.ListID {
	t.nextListID++
	return t.nextListID
}

func (t *Tables) NextTaskID() domain.TaskID {
	t.nextTaskID++
	return t.nextTaskID
}

func (t *Tables) clone() *Tables {
	cp := &Tables{
		Lists:      make(map[domain.ListID]listrepo.List, len(t.Lists)),
		Tasks:      make(map[domain.TaskID]taskrepo.Task, len(t.Tasks)),
		nextListID: t.nextListID,
		nextTaskID: t.nextTaskID,
	}
	for k, v := range t.Lists {
		cp.Lists[k] = v
	}
	for k, v := range t.Tasks {
		cp.Tasks[k] = v
	}
	return cp
}

// DB is safe for concurrent use. Transactions are serialized: WithinTx holds the
// lock for the whole callback and restores a snapshot if the callback fails.
// It implements txmanager.Manager.
type DB struct {
	mu sync.Mutex
	t  *Tables
}

type txKey struct{}

func New() *DB {
	return &DB{
		t: &Tables{
			Lists: make(map[domain.ListID]listrepo.List),
			Tasks: make(map[domain.TaskID]taskrepo.Task),
		},
	}
}

func (db *DB) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if db.inTx(ctx) {
		return fn(ctx)
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	snapshot := db.t.clone()
	defer func() {
		if p := recover(); p != nil {
			db.t = snapshot
			panic(p)
		}
		if err != nil {
			db.t = snapshot
		}
	}()

	return fn(context.WithValue(ctx, txKey{}, db))
}

// Do runs fn against the tables. Inside a transaction the lock is already held;
// outside one, Do takes it for the duration of fn.
func (db *DB) Do(ctx context.Context, fn func(t *Tables) error) error {
	if db.inTx(ctx) {
		return fn(db.t)
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	return fn(db.t)
}

func (db *DB) inTx(ctx context.Context) bool {
	owner, ok := ctx.Value(txKey{}).(*DB)
	return ok && owner == db
}
