package testutil

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/clubhouse-hq/clubhouse-api/internal/db"
	"github.com/clubhouse-hq/clubhouse-api/internal/repository/dao"
)

// IntegrationEnv gates tests that need a docker daemon.
const IntegrationEnv = "INTEGRATION_TESTS"

// NewPostgres starts a disposable postgres container and returns a migrated
// connection to it. The test is skipped unless INTEGRATION_TESTS=1.
func NewPostgres(t *testing.T) *gorm.DB {
	t.Helper()

	if os.Getenv(IntegrationEnv) != "1" {
		t.Skipf("set %s=1 to run against postgres", IntegrationEnv)
	}

	pool, err := dockertest.NewPool("")
	require.NoError(t, err)
	pool.MaxWait = 90 * time.Second
	require.NoError(t, pool.Client.Ping())

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=clubhouse",
			"POSTGRES_PASSWORD=clubhouse",
			"POSTGRES_DB=clubhouse",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)
	_ = resource.Expire(300)

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("pool.Purge: %v", err)
		}
	})

	dsn := fmt.Sprintf("postgres://clubhouse:clubhouse@%s/clubhouse?sslmode=disable",
		resource.GetHostPort("5432/tcp"))

	var gdb *gorm.DB
	err = pool.Retry(func() error {
		gdb, err = db.OpenPostgresWithURL(dsn)
		if err != nil {
			return err
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return err
		}
		return sqlDB.Ping()
	})
	require.NoError(t, err)
	require.NoError(t, dao.InitTables(gdb))

	return gdb
}
