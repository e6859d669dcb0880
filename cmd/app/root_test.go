package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "clubhouse", cmd.Use)
	assert.NotNil(t, cmd.RunE)

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "c", configFlag.Shorthand)
	assert.Equal(t, defaultConfigPath, configFlag.DefValue)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()

	for _, name := range []string{"serve", "migrate", "promote"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}

	migrate, _, err := cmd.Find([]string{"migrate"})
	require.NoError(t, err)
	reset := migrate.Flags().Lookup("reset")
	require.NotNil(t, reset)
	assert.Equal(t, "false", reset.DefValue)
}

func TestPromoteCommand_Args(t *testing.T) {
	cmd := NewRootCommand()

	cmd.SetArgs([]string{"promote", "only@one.arg"})
	assert.Error(t, cmd.Execute())

	cmd = NewRootCommand()
	cmd.SetArgs([]string{"promote", "a@b.io", "owner"})
	assert.ErrorIs(t, cmd.Execute(), errUnknownRole)
}

func TestMigrateCommand_SQLite(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_SQLITE_PATH", dir+"/clubhouse.db")
	t.Setenv("API_ACCESS_TOKEN_SECRET", "access-secret")
	t.Setenv("API_REFRESH_TOKEN_SECRET", "refresh-secret")
	t.Setenv("API_ENVIRONMENT", "test")

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"migrate", "--config", dir + "/missing.yml", "--reset"})
	require.NoError(t, cmd.Execute())

	cmd = NewRootCommand()
	cmd.SetArgs([]string{"promote", "--config", dir + "/missing.yml", "nobody@club.io", "admin"})
	assert.Error(t, cmd.Execute())
}
