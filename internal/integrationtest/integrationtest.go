// Package integrationtest provides db helpers used in integration tests.
//
// A disposable PostgreSQL container is started per package with testcontainers,
// migrated with the schema under configs/db/migration and flushed between tests.
package integrationtest

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/go-petr/pet-ledger/cmd/httpserver"
	"github.com/go-petr/pet-ledger/internal/middleware"
	"github.com/go-petr/pet-ledger/pkg/configpkg"
	"github.com/go-petr/pet-ledger/pkg/dbpkg"

	_ "github.com/lib/pq"
)

// MigrationURL returns the file:// url of the schema migrations.
func MigrationURL() string {
	_, file, _, _ := runtime.Caller(0)
	dir := filepath.Join(filepath.Dir(file), "..", "..", "configs", "db", "migration")

	return "file://" + filepath.ToSlash(dir)
}

// SetupDB starts a PostgreSQL container, applies every migration and returns a connection to it.
//
// The test is skipped under -short or when no container runtime is reachable.
func SetupDB(t *testing.T) *sql.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("integration test skipped in short mode")
	}

	ctx := context.Background()

	container, err := startContainer(ctx)
	if err != nil {
		t.Skipf("cannot start postgres container: %v", err)
	}

	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("container.Terminate() failed: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("container.ConnectionString() returned error: %v", err)
	}

	db, err := dbpkg.Setup("postgres", dsn)
	if err != nil {
		t.Fatalf("db initialization failed. err: %v", err)
	}

	if err := dbpkg.Migrate(db, MigrationURL(), dbpkg.Up); err != nil {
		t.Fatalf("dbpkg.Migrate(db, %q, up) returned error: %v", MigrationURL(), err)
	}

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("db.Close() failed: %v", err)
		}
	})

	return db
}

// startContainer runs the container and turns a panic of a missing docker runtime into an error.
func startContainer(ctx context.Context) (c *tcpostgres.PostgresContainer, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("container runtime: %v", r)
		}
	}()

	return tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("ledger_test"),
		tcpostgres.WithUsername("root"),
		tcpostgres.WithPassword("secret"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
}

// Flush flushes all db tables without droping.
func Flush(t *testing.T, db *sql.DB) {
	t.Helper()

	var tables string

	const query = `
	SELECT string_agg(table_name, ', ')
	FROM information_schema.tables
	WHERE table_schema='public' AND table_name <> 'schema_migrations';`

	row := db.QueryRow(query)

	err := row.Scan(&tables)
	if err != nil {
		t.Fatalf("db cleanup failed. err: %v", err)
	}

	if _, err := db.Exec(`TRUNCATE TABLE ` + tables + " RESTART IDENTITY CASCADE"); err != nil {
		t.Fatalf("db cleanup failed. err: %v", err)
	}
}

// SetupServer returns a server backed by db that flushes the tables after the test.
func SetupServer(t *testing.T, db *sql.DB) *httpserver.Server {
	t.Helper()

	zerolog.SetGlobalLevel(zerolog.FatalLevel)

	config := configpkg.Config{DBDriver: "postgres", Environment: "test"}
	logger := middleware.CreateLogger(config)

	gin.SetMode(gin.ReleaseMode)

	server, err := httpserver.New(httpserver.NewPGSBackend(db), logger, config)
	if err != nil {
		t.Fatalf(`httpserver.New(backend, logger, config) returned error: %v`, err)
	}

	t.Cleanup(func() { Flush(t, db) })

	return server
}
