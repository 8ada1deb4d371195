package core

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvDerivedData = "XCRESULT_LOGS_DERIVED_DATA"
	EnvLegacy      = "XCRESULT_LOGS_LEGACY"
	EnvVerbose     = "XCRESULT_LOGS_VERBOSE"
	EnvXcrun       = "XCRESULT_LOGS_XCRUN"
)

type Config struct {
	DerivedDataPath string `json:"derivedDataPath"`
	Legacy          bool   `json:"legacy"`
	Verbose         bool   `json:"verbose"`
	Xcrun           string `json:"xcrun"`
}

func DefaultConfig(home string) Config {
	return Config{
		DerivedDataPath: DefaultDerivedDataPath(home),
		Xcrun:           "xcrun",
	}
}

// LoadConfig reads an optional .env from the working directory, then applies
// XCRESULT_LOGS_* overrides on top of the defaults. Variables already set in
// the environment win over .env.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, err
	}
	cfg := DefaultConfig(home)
	cfg.applyEnv(os.Getenv)
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvDerivedData)); v != "" {
		c.DerivedDataPath = v
	}
	if v := strings.TrimSpace(getenv(EnvXcrun)); v != "" {
		c.Xcrun = v
	}
	c.Legacy = envBool(getenv(EnvLegacy))
	c.Verbose = envBool(getenv(EnvVerbose))
}

func envBool(v string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	return err == nil && b
}

// Tool returns the xcresulttool adapter configured by c.
func (c Config) Tool() XCResultTool {
	return XCResultTool{Xcrun: c.Xcrun, Legacy: c.Legacy}
}
