package rbac_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/goliatone/go-rbac"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func setupDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, "file::memory:?cache=shared")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	rbac.RegisterModels(db)

	ctx := context.Background()
	for _, model := range rbac.Models() {
		require.NoError(t, db.ResetModel(ctx, model))
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func setupManager(t *testing.T) rbac.RepositoryManager {
	t.Helper()
	return rbac.NewRepositoryManager(setupDB(t))
}

// setupManagerDB returns the manager plus the raw handle for tests that
// drive the Tx-variant repository methods directly.
func setupManagerDB(t *testing.T) (rbac.RepositoryManager, *bun.DB) {
	t.Helper()
	db := setupDB(t)
	return rbac.NewRepositoryManager(db), db
}

func testConfig() rbac.SimpleConfig {
	return rbac.SimpleConfig{
		SigningKey:      "test-signing-key",
		TokenExpiration: 1,
		Issuer:          "rbac-test",
		Audience:        []string{"rbac-test"},
		FrontendURL:     "https://app.example.com",
		BcryptCost:      4,
	}
}

// capturingNotifier records every send request
type capturingNotifier struct {
	sent []rbac.Notification
	err  error
}

func (c *capturingNotifier) Send(ctx context.Context, notification rbac.Notification) error {
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, notification)
	return nil
}

var errDeliveryDown = errors.New("smtp connection refused")

func newWorkflow(t *testing.T) (*rbac.Workflow, rbac.RepositoryManager, *capturingNotifier) {
	t.Helper()

	repo := setupManager(t)
	notifier := &capturingNotifier{}
	workflow := rbac.NewWorkflow(repo, testConfig()).WithNotifier(notifier)

	return workflow, repo, notifier
}
