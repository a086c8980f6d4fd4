package common

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv(ConfigPathEnv, "")
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, []string{"gopdf", "pdftotext"}, cfg.Extract.Backends)
	assert.Equal(t, 3, cfg.Extract.MaxPages)
	assert.Equal(t, 100, cfg.Fields.NameWindow)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_YAMLThenEnv(t *testing.T) {
	path := writeConfig(t, `
database:
  driver: pgx
  dsn: postgres://localhost/resumes
extract:
  backends: [pdftotext, docconv]
  timeout: 10s
fields:
  name_window: 200
  extra_cities: [德阳]
workers:
  count: 8
log:
  level: debug
`)
	t.Setenv("WORKERS", "2")
	t.Setenv("EXTRA_TITLE_WORDS", "运维, 测试 ,")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "pgx", cfg.Database.Driver)
	assert.Equal(t, "postgres://localhost/resumes", cfg.Database.DSN)
	assert.Equal(t, []string{"pdftotext", "docconv"}, cfg.Extract.Backends)
	assert.Equal(t, 10*time.Second, cfg.Extract.Timeout)
	assert.Equal(t, 200, cfg.Fields.NameWindow)
	assert.Equal(t, []string{"德阳"}, cfg.Fields.ExtraCities)
	assert.Equal(t, []string{"运维", "测试"}, cfg.Fields.ExtraTitleWords)
	assert.Equal(t, 2, cfg.Workers.Count, "env overrides file")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 64, cfg.Workers.QueueSize, "untouched keys keep defaults")
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_PathFromEnv(t *testing.T) {
	t.Setenv(ConfigPathEnv, writeConfig(t, "ingest:\n  dir: /srv/resumes\n"))
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "/srv/resumes", cfg.Ingest.Dir)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, CodeConfig, appErr.Code)
}

func TestValidateConfigFile(t *testing.T) {
	cases := []struct {
		name string
		body string
		ok   bool
	}{
		{"empty", "", true},
		{"valid", "extract:\n  backends: [gopdf]\n  max_pages: 2\n", true},
		{"unknown backend", "extract:\n  backends: [tesseract]\n", false},
		{"unknown key", "extract:\n  ocr: true\n", false},
		{"bad duration", "workers:\n  process_timeout: soon\n", false},
		{"wrong type", "workers:\n  count: many\n", false},
		{"zero window", "fields:\n  name_window: 0\n", false},
		{"not yaml", "extract: [\n", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := ValidateConfigFile([]byte(c.body))
			if c.ok {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Database.Driver = "mysql"
	cfg.Extract.Backends = []string{"gopdf", "ocr"}
	cfg.Workers.Count = 0
	cfg.Export.FailuresSheet = cfg.Export.Sheet

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, ErrValidation)
	for _, field := range []string{"database.driver", "extract.backends", "workers.count", "export.failures_sheet"} {
		assert.Contains(t, err.Error(), field)
	}
}
