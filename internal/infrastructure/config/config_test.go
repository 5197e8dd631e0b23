package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("EASTIE_SHIPPING", "shr_eastie")
	t.Setenv("OUTSIDE_SHIPPING", "shr_outside")
	t.Setenv("REPORT_DB_PATH", "test.db")
	t.Setenv("REPORT_END_OF_DAY", "true")

	cfg := LoadFromEnv()
	assert.NotNil(t, cfg)
	assert.Equal(t, "sk_test_123", cfg.Stripe.SecretKey)
	assert.Equal(t, "shr_eastie", cfg.Shipping.EastieRateID)
	assert.Equal(t, "shr_outside", cfg.Shipping.OutsideRateID)
	assert.Equal(t, "test.db", cfg.Storage.DatabasePath)
	assert.True(t, cfg.Report.EndOfDay)
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	t.Setenv("REPORT_START_DATE", "")
	t.Setenv("REPORT_END_DATE", "")
	t.Setenv("REPORT_OUTPUT_DIR", "")
	t.Setenv("API_PORT", "")
	t.Setenv("API_ALLOWED_ORIGINS", "")

	cfg := LoadFromEnv()
	assert.Equal(t, DefaultStartDate, cfg.Report.StartDate)
	assert.Equal(t, DefaultEndDate, cfg.Report.EndDate)
	assert.Equal(t, ".", cfg.Report.OutputDir)
	assert.False(t, cfg.Report.EndOfDay)
	assert.Equal(t, 8080, cfg.API.Port)
	assert.Len(t, cfg.API.AllowedOrigins, 2)
}

func TestLoadFromEnv_OriginList(t *testing.T) {
	t.Setenv("API_ALLOWED_ORIGINS", "http://a.test, http://b.test,")

	cfg := LoadFromEnv()
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.API.AllowedOrigins)
}

func TestLoadOrEnv_FallbackToEnv(t *testing.T) {
	t.Setenv("REPORT_DB_PATH", "fallback.db")

	// Try to load from non-existent file
	cfg, err := LoadOrEnvWithPath(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "fallback.db", cfg.Storage.DatabasePath)
}

func TestLoadOrEnv_PrefersFile(t *testing.T) {
	t.Setenv("REPORT_DB_PATH", "env.db")
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("storage:\n  database_path: file.db\n"), 0o644))

	cfg, err := LoadOrEnvWithPath(configPath)
	require.NoError(t, err)
	assert.Equal(t, "file.db", cfg.Storage.DatabasePath)
}

func TestLoadOrEnv_MalformedFileErrors(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("storage: [unclosed\n"), 0o644))

	cfg, err := LoadOrEnvWithPath(configPath)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), configPath)
}

func TestLoadOrEnv_WorkingDirectory(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("REPORT_DB_PATH", "cwd-env.db")

	cfg, err := LoadOrEnv()
	require.NoError(t, err)
	assert.Equal(t, "cwd-env.db", cfg.Storage.DatabasePath)

	require.NoError(t, os.WriteFile("config.yaml", []byte("storage:\n  database_path: cwd-file.db\n"), 0o644))
	cfg, err = LoadOrEnv()
	require.NoError(t, err)
	assert.Equal(t, "cwd-file.db", cfg.Storage.DatabasePath)
}

func TestEnvVarExpansion(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
stripe:
  secret_key: "${TEST_STRIPE_KEY}"
shipping:
  eastie_rate_id: shr_yaml_eastie
storage:
  database_path: "${TEST_DB_PATH}"
report:
  start_date: "01/01/2024"
  end_date: "01/31/2024"
  end_of_day: true
`

	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	t.Setenv("TEST_STRIPE_KEY", "sk_expanded")
	t.Setenv("TEST_DB_PATH", "expanded.db")
	t.Setenv("OUTSIDE_SHIPPING", "shr_env_outside")

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "sk_expanded", cfg.Stripe.SecretKey)
	assert.Equal(t, "expanded.db", cfg.Storage.DatabasePath)
	assert.Equal(t, "shr_yaml_eastie", cfg.Shipping.EastieRateID)
	assert.Equal(t, "shr_env_outside", cfg.Shipping.OutsideRateID)
	assert.Equal(t, "01/01/2024", cfg.Report.StartDate)
	assert.True(t, cfg.Report.EndOfDay)
	assert.Equal(t, ".", cfg.Report.OutputDir)
	assert.Equal(t, 8080, cfg.API.Port)
}

func TestLoad_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("stripe: [unclosed"), 0644))

	_, err := Load(configPath)
	assert.Error(t, err)
}

func TestGetAPIKey(t *testing.T) {
	cfg := &Config{}
	t.Setenv("SECOND_KEY", "from-env")

	assert.Equal(t, "from-config", cfg.GetAPIKey("from-config", "SECOND_KEY"))
	assert.Equal(t, "from-env", cfg.GetAPIKey("", "MISSING_KEY", "SECOND_KEY"))
}
