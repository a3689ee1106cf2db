package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/store"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/store/storetest"
)

// makePGStore uses CONTENT_ENGINE_POSTGRES_DSN when set, otherwise starts a
// pgvector container when CONTENT_ENGINE_PG_CONTAINER=1, otherwise skips.
func makePGStore(t *testing.T) store.Store {
	t.Helper()
	ctx := context.Background()

	dsn := os.Getenv("CONTENT_ENGINE_POSTGRES_DSN")
	if dsn == "" {
		if os.Getenv("CONTENT_ENGINE_PG_CONTAINER") != "1" {
			t.Skip("CONTENT_ENGINE_POSTGRES_DSN not set and CONTENT_ENGINE_PG_CONTAINER!=1; skipping postgres store integration test")
		}
		dsn = startPGVector(ctx, t)
	}

	db, err := Open(dsn)
	if err != nil {
		t.Fatalf("postgres open: %v", err)
	}
	if err := Migrate(ctx, db); err != nil {
		t.Fatalf("postgres migrate: %v", err)
	}
	return NewWithDB(db)
}

func startPGVector(ctx context.Context, t *testing.T) string {
	t.Helper()
	req := testcontainers.ContainerRequest{
		Image:        "pgvector/pgvector:pg16",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "engine",
			"POSTGRES_PASSWORD": "engine",
			"POSTGRES_DB":       "engine",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(2 * time.Minute),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("failed to start container: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}
	return fmt.Sprintf("postgres://engine:engine@%s:%s/engine?sslmode=disable", host, port.Port())
}

func TestPostgresStore_Compliance(t *testing.T) {
	storetest.Run(t, makePGStore)
}
