package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/fleetkpi/internal/config"
)

// makeProject creates a .fleetkpi marker directory under dir.
func makeProject(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".fleetkpi"), 0o755))
}

// isolateHome points FLEETKPI_HOME somewhere that never matches a test project.
func isolateHome(t *testing.T) {
	t.Helper()
	t.Setenv("FLEETKPI_HOME", filepath.Join(t.TempDir(), "home", ".fleetkpi"))
	t.Setenv("FLEETKPI_PROJECT_DIR", "")
}

func TestResolveProjectDir_FlagOverride(t *testing.T) {
	isolateHome(t)
	flagDir := t.TempDir()

	got := config.ResolveProjectDir(context.Background(), flagDir, "/does/not/matter")

	assert.Equal(t, filepath.Join(flagDir, ".fleetkpi"), got)
	assert.True(t, filepath.IsAbs(got), "returned path must be absolute")
}

func TestResolveProjectDir_FlagOverridesEnv(t *testing.T) {
	isolateHome(t)
	envDir := t.TempDir()
	flagDir := t.TempDir()
	t.Setenv("FLEETKPI_PROJECT_DIR", envDir)

	got := config.ResolveProjectDir(context.Background(), flagDir, "/does/not/matter")

	assert.Equal(t, filepath.Join(flagDir, ".fleetkpi"), got)
}

func TestResolveProjectDir_EnvVarOverride(t *testing.T) {
	isolateHome(t)
	envDir := t.TempDir()
	t.Setenv("FLEETKPI_PROJECT_DIR", envDir)

	got := config.ResolveProjectDir(context.Background(), "", "/does/not/matter")

	assert.Equal(t, filepath.Join(envDir, ".fleetkpi"), got)
}

func TestResolveProjectDir_WalkUp(t *testing.T) {
	isolateHome(t)
	root := t.TempDir()
	makeProject(t, root)

	subDir := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(subDir, 0o755))

	got := config.ResolveProjectDir(context.Background(), "", subDir)

	assert.Equal(t, filepath.Join(root, ".fleetkpi"), got)
}

func TestResolveProjectDir_NestedProjects(t *testing.T) {
	isolateHome(t)
	root := t.TempDir()
	dirA := filepath.Join(root, "a")
	dirB := filepath.Join(dirA, "b")
	dirC := filepath.Join(dirB, "c")
	require.NoError(t, os.MkdirAll(dirC, 0o755))
	makeProject(t, dirA)
	makeProject(t, dirB)

	got := config.ResolveProjectDir(context.Background(), "", dirC)

	assert.Equal(t, filepath.Join(dirB, ".fleetkpi"), got, "nearest ancestor wins")
}

func TestResolveProjectDir_SuffixNotDoubled(t *testing.T) {
	isolateHome(t)

	got := config.ResolveProjectDir(context.Background(), "/my/project/.fleetkpi", "")

	assert.Equal(t, "/my/project/.fleetkpi", got)
}

func TestResolveProjectDir_RelativeFlagValue(t *testing.T) {
	isolateHome(t)

	got := config.ResolveProjectDir(context.Background(), "relative/path", "/does/not/matter")

	assert.True(t, filepath.IsAbs(got))
	assert.Equal(t, ".fleetkpi", filepath.Base(got))
}

func TestResolveProjectDir_HomeDirIsNotProject(t *testing.T) {
	root := t.TempDir()
	makeProject(t, root)
	t.Setenv("FLEETKPI_HOME", filepath.Join(root, ".fleetkpi"))
	t.Setenv("FLEETKPI_PROJECT_DIR", "")

	got := config.ResolveProjectDir(context.Background(), "", root)

	assert.Empty(t, got)
}

func TestFindProject_NoProject(t *testing.T) {
	_, err := config.FindProject("/")
	require.ErrorIs(t, err, config.ErrNoProject)
}

func TestSetResolvedProjectDir_RoundTrip(t *testing.T) {
	orig := config.GetResolvedProjectDir()
	t.Cleanup(func() { config.SetResolvedProjectDir(orig) })

	config.SetResolvedProjectDir("/some/project/.fleetkpi")
	assert.Equal(t, "/some/project/.fleetkpi", config.GetResolvedProjectDir())

	config.SetResolvedProjectDir("")
	assert.Empty(t, config.GetResolvedProjectDir())
}
