package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/careerflow")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, int64(32<<20), cfg.Import.MaxUploadBytes)
	assert.Equal(t, 5, cfg.Import.MaxFiles)
	assert.Equal(t, 500, cfg.Import.ListLimit)
	assert.Equal(t, "", cfg.Letter.ApplicantName)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/careerflow")
	t.Setenv("PORT", "9000")
	t.Setenv("MAX_UPLOAD_MB", "8")
	t.Setenv("MAX_UPLOAD_FILES", "3")
	t.Setenv("JOB_LIST_LIMIT", "50")
	t.Setenv("APPLICANT_NAME", "Jordan Smith")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, int64(8<<20), cfg.Import.MaxUploadBytes)
	assert.Equal(t, 3, cfg.Import.MaxFiles)
	assert.Equal(t, 50, cfg.Import.ListLimit)
	assert.Equal(t, "Jordan Smith", cfg.Letter.ApplicantName)
}

func TestLoadRejectsNonPositiveLimits(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/careerflow")
	t.Setenv("MAX_UPLOAD_FILES", "0")

	_, err := Load()
	assert.Error(t, err)
}
