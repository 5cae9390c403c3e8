package taskrepo

import (
	"testing"

	"task-manager/internal/adapters/contracttest"
	memlistrepo "task-manager/internal/adapters/memory/listrepo"
	"task-manager/internal/adapters/memory/store"
)

func TestContract_MemoryTaskListStores(t *testing.T) {
	contracttest.RunTaskListStores(t, func(t *testing.T) (contracttest.Stores, func()) {
		t.Helper()
		db := store.New()
		return contracttest.Stores{
			Lists: memlistrepo.NewRepo(db),
			Tasks: NewRepo(db),
			Tx:    db,
		}, nil
	})
}
