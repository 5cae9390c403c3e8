package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"task-manager/internal/platform/config"
	"task-manager/internal/platform/logging"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, k := range []string{config.EnvPort, config.EnvStore, config.EnvPostgresDSN, config.EnvPostgresMaxConn, config.EnvLogLevel, config.EnvShutdownTimeout} {
		t.Setenv(k, "")
	}
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	Version = "1.2.3"
	t.Cleanup(func() { Version = "dev" })

	out, err := runRoot(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if out != "taskmanager 1.2.3\n" {
		t.Fatalf("out=%q", out)
	}
}

func TestServe_RejectsInvalidConfig(t *testing.T) {
	cases := []struct {
		args []string
		want string
	}{
		{[]string{"serve", "--store", "bogus"}, "unknown store"},
		{[]string{"serve", "--store", "postgres"}, "requires a dsn"},
		{[]string{"serve", "--port", "eighty"}, "invalid port"},
		{[]string{"serve", "--config", "/nonexistent/taskmanager.yaml"}, "read config"},
	}
	for _, tc := range cases {
		_, err := runRoot(t, tc.args...)
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%v: err=%v want contains %q", tc.args, err, tc.want)
		}
	}
}

func TestOpenService_PostgresBadDSN(t *testing.T) {
	cfg := config.Default()
	cfg.Store = config.StorePostgres
	cfg.Postgres.DSN = "postgres://u@localhost:notaport/db"

	if _, _, err := openService(context.Background(), cfg); err == nil || !strings.Contains(err.Error(), "parse postgres dsn") {
		t.Fatalf("err=%v", err)
	}
}

func TestServe_StopsWhenContextCancelled(t *testing.T) {
	cfg := config.Default()
	cfg.Port = "0"
	cfg.ShutdownTimeout = "2s"

	var logs bytes.Buffer
	log, err := logging.New(&logs, "info")
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, cfg, log) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("serve did not return after cancel")
	}
}
