package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "3306", cfg.Database.Port)
	assert.Equal(t, "careconnect", cfg.Database.Name)
	assert.Contains(t, cfg.Database.DSN, "tcp(localhost:3306)/careconnect")
	assert.Equal(t, 60, cfg.JWTExpirationMinutes)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxUploadBytes)
	assert.Equal(t, "uploads/medical-documents", cfg.UploadDir)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	os.Clearenv()
	t.Setenv("PORT", "8080")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "care_test")
	t.Setenv("MAX_UPLOAD_MB", "25")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Contains(t, cfg.Database.DSN, "tcp(db.internal:3306)/care_test")
	assert.Equal(t, int64(25*1024*1024), cfg.MaxUploadBytes)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadConfig_InvalidNumbersRejected(t *testing.T) {
	os.Clearenv()
	t.Setenv("MAX_UPLOAD_MB", "lots")

	_, err := LoadConfig()
	assert.Error(t, err)
}
