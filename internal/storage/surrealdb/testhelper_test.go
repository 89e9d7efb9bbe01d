package surrealdb

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	surreal "github.com/surrealdb/surrealdb.go"

	"github.com/gabrielmazz/finances-app-sub000/internal/common"
)

var (
	surrealOnce      sync.Once
	surrealContainer *surrealDBContainer
	surrealError     error
	databaseSeq      atomic.Int64
)

type surrealDBContainer struct {
	container testcontainers.Container
	host      string
	port      string
}

func (c *surrealDBContainer) address() string {
	return fmt.Sprintf("ws://%s:%s/rpc", c.host, c.port)
}

// startSurrealDB starts a shared SurrealDB container for the test run.
// Uses sync.Once so only one container is created per process.
func startSurrealDB(t *testing.T) *surrealDBContainer {
	t.Helper()

	surrealOnce.Do(func() {
		ctx := context.Background()

		req := testcontainers.ContainerRequest{
			Image:        "surrealdb/surrealdb:v3.0.0",
			ExposedPorts: []string{"8000/tcp"},
			Cmd:          []string{"start", "--user", "root", "--pass", "root"},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("8000/tcp"),
				wait.ForLog("Started web server"),
			).WithDeadline(60 * time.Second),
		}

		container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		})
		if err != nil {
			surrealError = fmt.Errorf("start SurrealDB container: %w", err)
			return
		}

		host, err := container.Host(ctx)
		if err != nil {
			container.Terminate(ctx)
			surrealError = fmt.Errorf("get SurrealDB host: %w", err)
			return
		}

		mappedPort, err := container.MappedPort(ctx, "8000/tcp")
		if err != nil {
			container.Terminate(ctx)
			surrealError = fmt.Errorf("get SurrealDB port: %w", err)
			return
		}

		surrealContainer = &surrealDBContainer{
			container: container,
			host:      host,
			port:      mappedPort.Port(),
		}
	})

	if surrealError != nil {
		t.Fatalf("SurrealDB container failed: %v", surrealError)
	}

	return surrealContainer
}

// testManager connects to the shared container and selects a fresh database
// per test, so tests never see each other's records.
func testManager(t *testing.T) *Manager {
	t.Helper()

	c := startSurrealDB(t)
	ctx := context.Background()

	db, err := surreal.New(c.address())
	if err != nil {
		t.Fatalf("connect to SurrealDB: %v", err)
	}

	if _, err := db.SignIn(ctx, map[string]interface{}{
		"user": "root",
		"pass": "root",
	}); err != nil {
		t.Fatalf("sign in to SurrealDB: %v", err)
	}

	database := fmt.Sprintf("test_%d_%d", time.Now().UnixNano(), databaseSeq.Add(1))
	if err := db.Use(ctx, "finances_test", database); err != nil {
		t.Fatalf("select test database: %v", err)
	}

	logger := common.NewSilentLogger()
	m, err := newManagerWithDB(db, logger)
	if err != nil {
		t.Fatalf("initialize storage manager: %v", err)
	}

	t.Cleanup(func() {
		m.Close()
	})

	return m
}
