package taskrepo

import (
	"testing"

	"task-manager/internal/adapters/contracttest"
	"task-manager/internal/adapters/postgres"
	pglistrepo "task-manager/internal/adapters/postgres/listrepo"
	"task-manager/internal/adapters/postgres/testutil"
)

func TestContract_PostgresTaskListStores(t *testing.T) {
	contracttest.RunTaskListStores(t, func(t *testing.T) (contracttest.Stores, func()) {
		t.Helper()
		pool := testutil.OpenMigratedPool(t)
		return contracttest.Stores{
			Lists: pglistrepo.NewRepo(pool),
			Tasks: NewRepo(pool),
			Tx:    postgres.NewTxManager(pool),
		}, nil
	})
}
