package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load("")
		assert.NoError(err)
		assert.Equal("ballotbox", cfg.ServiceName)
		assert.Equal("info", cfg.LogLevel)
		assert.Equal("text", cfg.LogFormat)
		assert.Equal("table", cfg.OutputFormat)
		assert.True(cfg.OutputColor)
		assert.True(cfg.RequireResetConfirmation)
	})

	t.Run("file_then_env", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ballotbox.yaml")
		content := []byte("service_name: town-hall\nlog:\n  level: debug\n  format: json\noutput:\n  format: json\n")
		assert.NoError(os.WriteFile(path, content, 0o600))
		t.Setenv("BALLOTBOX_LOG_LEVEL", "warn")
		t.Setenv("BALLOTBOX_OUTPUT_COLOR", "off")
		t.Setenv("BALLOTBOX_SESSION_REQUIRE_RESET_CONFIRMATION", "no")

		cfg, err := Load(path)
		assert.NoError(err)
		assert.Equal("town-hall", cfg.ServiceName)
		assert.Equal("warn", cfg.LogLevel)
		assert.Equal("json", cfg.LogFormat)
		assert.Equal("json", cfg.OutputFormat)
		assert.False(cfg.OutputColor)
		assert.False(cfg.RequireResetConfirmation)
	})

	t.Run("missing_file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(err)
		assert.Contains(err.Error(), "failed to read config file")
	})

	t.Run("invalid_output_format", func(t *testing.T) {
		t.Setenv("BALLOTBOX_OUTPUT_FORMAT", "xml")
		_, err := Load("")
		assert.Error(err)
	})
}

func TestEnvBool(t *testing.T) {
	assert := assert.New(t)
	t.Setenv("BALLOTBOX_TEST_FLAG", "yes")
	assert.True(envBool("BALLOTBOX_TEST_FLAG", false))
	t.Setenv("BALLOTBOX_TEST_FLAG", "0")
	assert.False(envBool("BALLOTBOX_TEST_FLAG", true))
	t.Setenv("BALLOTBOX_TEST_FLAG", "maybe")
	assert.True(envBool("BALLOTBOX_TEST_FLAG", true))
	assert.False(envBool("BALLOTBOX_TEST_UNSET", false))
}
