// Package testutil opens disposable Postgres databases for adapter tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OpenMigratedPool opens a pool against PG_DSN, drops and recreates the public schema
// and applies migrations/*.up.sql in name order. Tests are skipped when PG_DSN is unset.
//
// It is destructive. Callers must not run Postgres tests in parallel.
func OpenMigratedPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("PG_DSN")
	if dsn == "" {
		t.Skip("PG_DSN not set; skipping Postgres tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect postgres: %v", err)
	}
	t.Cleanup(pool.Close)

	ac, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("acquire conn: %v", err)
	}
	defer ac.Release()

	conn := ac.Conn()
	if err := execScript(ctx, conn, "DROP SCHEMA IF EXISTS public CASCADE; CREATE SCHEMA public;"); err != nil {
		t.Fatalf("reset schema: %v", err)
	}
	if err := applyMigrations(ctx, conn, filepath.Join(repoRoot(t), "migrations")); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return pool
}

func repoRoot(t *testing.T) string {
	t.Helper()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	for dir := cwd; ; {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("no go.mod above %s", cwd)
		}
		dir = parent
	}
}

func applyMigrations(ctx context.Context, conn *pgx.Conn, dir string) error {
	ups, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		return err
	}
	if len(ups) == 0 {
		return fmt.Errorf("no migrations in %s", dir)
	}
	sort.Strings(ups)
	for _, path := range ups {
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := execScript(ctx, conn, string(b)); err != nil {
			return fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
	}
	return nil
}

// execScript runs a multi-statement script over the simple protocol.
func execScript(ctx context.Context, conn *pgx.Conn, sql string) error {
	if strings.TrimSpace(sql) == "" {
		return nil
	}
	results, err := conn.PgConn().Exec(ctx, sql).ReadAll()
	if err != nil {
		return err
	}
	for _, r := range results {
		if r.Err == nil {
			continue
		}
		if pe, ok := r.Err.(*pgconn.PgError); ok {
			return fmt.Errorf("postgres error: %s (%s)", pe.Message, pe.Code)
		}
		return r.Err
	}
	return nil
}
