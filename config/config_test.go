package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATABASE_URL", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME"} {
		// Setenv registers the restore, Unsetenv makes the default apply.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "./uploads", cfg.UploadDir)
	assert.Equal(t, 2, cfg.BackupHour)
	assert.Equal(t, 4, cfg.BackupRetentionDays)
}

func TestDSNFromDiscreteVars(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "shop")
	t.Setenv("DB_PASSWORD", "hunter2")
	t.Setenv("DB_NAME", "carvercraft_test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t,
		"host=db.internal user=shop password=hunter2 dbname=carvercraft_test port=5433 sslmode=disable",
		cfg.DSN(),
	)
}

func TestDatabaseURLTakesPrecedence(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://shop:pw@db/carvercraft")
	t.Setenv("DB_HOST", "ignored")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://shop:pw@db/carvercraft", cfg.DSN())
}
