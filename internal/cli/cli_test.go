package cli_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rshade/fleetkpi/internal/cli"
)

// setupCLITest isolates the command from the user's home, project and
// environment, and keeps logs quiet.
func setupCLITest(t *testing.T) {
	t.Helper()
	t.Setenv("FLEETKPI_HOME", t.TempDir())
	t.Setenv("FLEETKPI_PROJECT_DIR", t.TempDir())
	t.Setenv("FLEETKPI_LOG_LEVEL", "error")
	t.Setenv("FLEETKPI_CONFIG", "")
	t.Setenv("FLEETKPI_DATA_DIR", "")
	t.Setenv("FLEETKPI_OUTPUT_FORMAT", "")
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// sampleDataDir writes a small sample dataset and returns its directory.
func sampleDataDir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "data")
	_, _, err := execute(t, "datasets", "sample", "--out", dir,
		"--trips", "200", "--vehicles", "60", "--fuel", "80")
	require.NoError(t, err)
	return dir
}
