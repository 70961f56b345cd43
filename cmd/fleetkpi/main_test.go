package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/fleetkpi/internal/cli"
	"github.com/rshade/fleetkpi/pkg/version"
)

func TestMainComponents(t *testing.T) {
	t.Run("version available", func(t *testing.T) {
		assert.NotEmpty(t, version.GetVersion())
		assert.NotEmpty(t, displayVersion())
	})

	t.Run("cli root command", func(t *testing.T) {
		root := cli.NewRootCmd(displayVersion())
		require.NotNil(t, root)
		assert.Equal(t, "fleetkpi", root.Use)
	})
}

func TestRun(t *testing.T) {
	t.Setenv("FLEETKPI_HOME", t.TempDir())
	t.Setenv("FLEETKPI_LOG_LEVEL", "error")

	t.Run("help", func(t *testing.T) {
		require.NoError(t, run(context.Background(), []string{"--help"}))
	})

	t.Run("unknown command", func(t *testing.T) {
		require.Error(t, run(context.Background(), []string{"no-such-command"}))
	})
}
