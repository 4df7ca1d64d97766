// Package env resolves the host configuration consumed by the CLI: the
// generator executable, the test-sharding switch, logging options and the
// work directory. Values come from RULES_APPLE_* environment variables; a
// .env file is loaded by the CLI main before anything here runs.
package env

import (
	"os"
	"path/filepath"

	"github.com/FuegoFro/rules-apple/internal/rules/testmatrix"
)

// DefaultGenerator is the generator executable looked up on PATH when
// RULES_APPLE_GENERATOR is not set.
const DefaultGenerator = "mkframework"

// Generator returns the framework generator executable.
func Generator() string {
	if exe := os.Getenv("RULES_APPLE_GENERATOR"); exe != "" {
		return exe
	}
	return DefaultGenerator
}

// ShardingMode reads the tri-state test-sharding switch from
// RULES_APPLE_TEST_SHARDING. Unset or unrecognized values mean default.
func ShardingMode() testmatrix.Sharding {
	switch os.Getenv("RULES_APPLE_TEST_SHARDING") {
	case "disabled":
		return testmatrix.ShardingDisabled
	case "enabled":
		return testmatrix.ShardingEnabled
	}
	return testmatrix.ShardingDefault
}

// LogLevel returns the configured log level from the environment.
func LogLevel() string {
	level := os.Getenv("RULES_APPLE_LOG_LEVEL")
	if level == "" {
		level = "warn"
	}
	return level
}

// JSONLog reports whether log output should be JSON formatted.
func JSONLog() bool {
	return os.Getenv("RULES_APPLE_JSON_LOG") == "1"
}

// WorkDir returns the directory for generated bundles and run caches,
// creating it with 0700 permissions if needed. It is located at
// <UserCacheDir>/.rules-apple.
func WorkDir() (string, error) {
	userCacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	workDir := filepath.Join(userCacheDir, ".rules-apple")

	if err := os.MkdirAll(workDir, 0700); err != nil {
		return "", err
	}
	return workDir, nil
}
