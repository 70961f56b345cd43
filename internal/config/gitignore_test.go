package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/fleetkpi/internal/config"
)

func TestEnsureGitignore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		subdir      string
		existing    string
		wantCreated bool
		wantContent string
	}{
		{
			name:        "creates file in empty project dir",
			wantCreated: true,
			wantContent: config.GitignoreContent(),
		},
		{
			name:        "creates missing parent directories",
			subdir:      filepath.Join("sub", "deep", ".fleetkpi"),
			wantCreated: true,
			wantContent: config.GitignoreContent(),
		},
		{
			name:        "keeps a user's gitignore",
			existing:    "# mine\n*.parquet\n",
			wantCreated: false,
			wantContent: "# mine\n*.parquet\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := filepath.Join(t.TempDir(), tt.subdir)
			path := filepath.Join(dir, ".gitignore")
			if tt.existing != "" {
				require.NoError(t, os.WriteFile(path, []byte(tt.existing), 0o600))
			}

			created, err := config.EnsureGitignore(dir)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCreated, created)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.wantContent, string(data))
		})
	}
}

func TestEnsureGitignore_SecondCallIsNoop(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	created, err := config.EnsureGitignore(dir)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = config.EnsureGitignore(dir)
	require.NoError(t, err)
	assert.False(t, created)
}

func TestGitignoreContent_IgnoresRenderedOutput(t *testing.T) {
	content := config.GitignoreContent()
	for _, pattern := range []string{"charts/", "reports/", "*.xlsx", "*.log"} {
		assert.Contains(t, content, pattern)
	}
}

func TestEnsureGitignore_PathIsAFile(t *testing.T) {
	t.Parallel()
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	created, err := config.EnsureGitignore(file)
	require.Error(t, err)
	assert.False(t, created)
}
