package configs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wavilikhin/capacities-mcp/internal/domain"
)

const testSpaceID = "123e4567-e89b-42d3-a456-426614174000"

// clearEnv blanks every CAPACITIES_ variable the loader reads so tests are
// isolated from the outer environment.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CAPACITIES_CONFIG_FILE",
		"CAPACITIES_API_TOKEN",
		"CAPACITIES_API_HOST",
		"CAPACITIES_DEFAULT_SPACE_ID",
		"CAPACITIES_LOG_LEVEL",
		"CAPACITIES_LOG_FILE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_RequiresAPIToken(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, domain.KindConfig, domain.Classify(err).Kind)
}

func TestLoad_WhitespaceTokenRejected(t *testing.T) {
	clearEnv(t)
	t.Setenv("CAPACITIES_API_TOKEN", "   ")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, domain.KindConfig, domain.Classify(err).Kind)
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("CAPACITIES_API_TOKEN", "  token-123  ")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "token-123", cfg.APIToken)
	assert.Equal(t, DefaultAPIHost, cfg.APIHost)
	assert.Empty(t, cfg.DefaultSpaceID)
	assert.Equal(t, ":8080", cfg.ListenAddr)
}

func TestLoad_DefaultSpaceIDValidatedEagerly(t *testing.T) {
	clearEnv(t)
	t.Setenv("CAPACITIES_API_TOKEN", "token")
	t.Setenv("CAPACITIES_DEFAULT_SPACE_ID", "not-a-uuid")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.Classify(err).Kind)
}

func TestLoad_ValidDefaultSpaceID(t *testing.T) {
	clearEnv(t)
	t.Setenv("CAPACITIES_API_TOKEN", "token")
	t.Setenv("CAPACITIES_DEFAULT_SPACE_ID", testSpaceID)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, testSpaceID, cfg.DefaultSpaceID)
}

func TestLoad_ConfigFileMerge(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	file := filepath.Join(dir, "capacities-mcp.yaml")
	yaml := "api_host: https://proxy.internal\ndefault_space_id: " + testSpaceID + "\n"
	require.NoError(t, os.WriteFile(file, []byte(yaml), 0o644))

	t.Setenv("CAPACITIES_API_TOKEN", "token")
	t.Setenv("CAPACITIES_CONFIG_FILE", file)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://proxy.internal", cfg.APIHost)
	assert.Equal(t, testSpaceID, cfg.DefaultSpaceID)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	file := filepath.Join(dir, "capacities-mcp.yaml")
	require.NoError(t, os.WriteFile(file, []byte("api_host: https://proxy.internal\n"), 0o644))

	t.Setenv("CAPACITIES_API_TOKEN", "token")
	t.Setenv("CAPACITIES_CONFIG_FILE", file)
	t.Setenv("CAPACITIES_API_HOST", "https://override.example")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://override.example", cfg.APIHost)
}

func TestLoad_MissingConfigFileFails(t *testing.T) {
	clearEnv(t)
	t.Setenv("CAPACITIES_API_TOKEN", "token")
	t.Setenv("CAPACITIES_CONFIG_FILE", "/nonexistent/capacities-mcp.yaml")

	_, err := Load()
	require.Error(t, err)
}

func TestParsedLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "debug", want: "DEBUG"},
		{in: "info", want: "INFO"},
		{in: "WARN", want: "WARN"},
		{in: "warning", want: "WARN"},
		{in: "error", want: "ERROR"},
		{in: "unknown", want: "INFO"},
	}
	for _, tt := range tests {
		cfg := Config{LogLevel: tt.in}
		assert.Equal(t, tt.want, cfg.ParsedLogLevel().String(), "level %q", tt.in)
	}
}
