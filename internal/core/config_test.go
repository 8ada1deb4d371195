package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("/Users/dev")
	assert.Equal(t, "/Users/dev/Library/Developer/Xcode/DerivedData", cfg.DerivedDataPath)
	assert.Equal(t, "xcrun", cfg.Xcrun)
	assert.False(t, cfg.Legacy)
	assert.False(t, cfg.Verbose)
}

func TestConfigApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvDerivedData: " /ci/DerivedData ",
		EnvLegacy:      "true",
		EnvVerbose:     "1",
		EnvXcrun:       "/opt/xcrun",
	}
	cfg := DefaultConfig("/home/ci")
	cfg.applyEnv(func(k string) string { return env[k] })

	assert.Equal(t, "/ci/DerivedData", cfg.DerivedDataPath)
	assert.Equal(t, "/opt/xcrun", cfg.Xcrun)
	assert.True(t, cfg.Legacy)
	assert.True(t, cfg.Verbose)
}

func TestConfigApplyEnvIgnoresGarbageBools(t *testing.T) {
	cfg := DefaultConfig("/home/ci")
	cfg.applyEnv(func(k string) string {
		if k == EnvLegacy {
			return "sometimes"
		}
		return ""
	})
	assert.False(t, cfg.Legacy)
	assert.Equal(t, "/home/ci/Library/Developer/Xcode/DerivedData", cfg.DerivedDataPath)
}

func TestLoadConfigReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(EnvDerivedData+"=/from/dotenv\n"), 0o644))
	chdir(t, dir)
	t.Setenv("HOME", dir)
	t.Setenv(EnvDerivedData, "")
	// godotenv never overrides a variable that is already set, even if empty.
	require.NoError(t, os.Unsetenv(EnvDerivedData))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/from/dotenv", cfg.DerivedDataPath)
}

func TestLoadConfigWithoutDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", dir)
	t.Setenv(EnvDerivedData, "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultDerivedDataPath(dir), cfg.DerivedDataPath)
}
