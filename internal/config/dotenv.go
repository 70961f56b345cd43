package config

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/rshade/fleetkpi/internal/logging"
)

// dotEnvFile is the name of the env file read before env overrides apply.
const dotEnvFile = ".env"

// dotEnvPaths lists the env files Load reads, highest precedence first: the
// working directory, then the project root holding projectDir.
func dotEnvPaths(projectDir string) []string {
	paths := []string{dotEnvFile}
	if projectDir != "" {
		paths = append(paths, filepath.Join(filepath.Dir(projectDir), dotEnvFile))
	}
	return paths
}

// loadDotEnv seeds the process environment from the files of dotEnvPaths.
// Variables already set win, so earlier files take precedence over later
// ones. Missing files are skipped.
func loadDotEnv(projectDir string) {
	for _, path := range dotEnvPaths(projectDir) {
		err := godotenv.Load(path)
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			continue
		}
		l := logging.ComponentLogger(logging.Default(), "config")
		l.Warn().
			Str("operation", "dotenv").
			Str("file", path).
			Err(err).
			Msg("ignoring unreadable .env file")
	}
}
