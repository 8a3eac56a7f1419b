package integration

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"daggys-menu/internal/kvstore"
)

// TestDB represents a test database instance backing a document store.
type TestDB struct {
	Container *postgres.PostgresContainer
	Store     kvstore.Store
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and opens a document store
// on it. The container and store are cleaned up when the test finishes.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	store, err := kvstore.NewPostgresStore(ctx, connStr, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to open postgres document store: %v", err)
	}

	t.Cleanup(func() {
		store.Close()
		if err := postgresContainer.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Store:     store,
		ConnStr:   connStr,
	}
}
