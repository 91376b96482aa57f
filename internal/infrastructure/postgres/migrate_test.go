package postgres

import (
	"fmt"
	"testing"

	"github.com/golang-migrate/migrate/v4/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasktracker/backend/internal/config"
)

func TestFileSourceDriverRegistered(t *testing.T) {
	src, err := source.Open(fmt.Sprintf("file://%s", t.TempDir()))
	require.NoError(t, err)
	src.Close()
}

func TestRunMigrationsDisabledIsNoop(t *testing.T) {
	cfg := &config.Config{}
	cfg.Migrations.Enabled = false

	assert.NoError(t, RunMigrations(cfg, nil))
	assert.NoError(t, RunMigrations(nil, nil))
}
