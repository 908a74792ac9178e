package launcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rate-JP/metal-rookie-bot/internal/logging"
	"github.com/Rate-JP/metal-rookie-bot/internal/model"
)

// TestResolve_DefaultIsOwnRunCommand verifies the empty entry point maps
// to this binary's run subcommand.
func TestResolve_DefaultIsOwnRunCommand(t *testing.T) {
	argv, err := Resolve("")
	require.NoError(t, err)
	require.Len(t, argv, 2)

	self, err := os.Executable()
	require.NoError(t, err)
	assert.Equal(t, self, argv[0])
	assert.Equal(t, "run", argv[1])
}

func TestResolve_SplitsOnWhitespace(t *testing.T) {
	argv, err := Resolve("python3  legacy_bot.py --flag")
	require.NoError(t, err)
	assert.Equal(t, []string{"python3", "legacy_bot.py", "--flag"}, argv)
}

func TestResolve_BlankIsAnError(t *testing.T) {
	_, err := Resolve("   ")
	var cliErr *model.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, model.ExitLaunchFailed, cliErr.Code)
}

// writeScript drops an executable shell script into a temp dir.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "entry.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

// TestRun_PropagatesExitCode runs a child that exits 7 and expects 7
// back with no error.
func TestRun_PropagatesExitCode(t *testing.T) {
	script := writeScript(t, "exit 7")

	code, err := Run(context.Background(), []string{script}, logging.NewNop())
	assert.NoError(t, err)
	assert.Equal(t, 7, code)
}

func TestRun_ZeroExit(t *testing.T) {
	script := writeScript(t, "exit 0")

	code, err := Run(context.Background(), []string{script}, logging.NewNop())
	assert.NoError(t, err)
	assert.Zero(t, code)
}

// TestRun_MissingBinary verifies the start failure maps to the launch
// error code instead of a zero exit.
func TestRun_MissingBinary(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-entry")

	_, err := Run(context.Background(), []string{missing}, logging.NewNop())
	var cliErr *model.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, model.ExitLaunchFailed, cliErr.Code)
}

// TestRun_ContextTerminatesChild cancels the context while the child
// sleeps and expects the run to end promptly.
func TestRun_ContextTerminatesChild(t *testing.T) {
	script := writeScript(t, "sleep 30")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := Run(ctx, []string{script}, logging.NewNop())
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(10 * time.Second):
		t.Fatal("run did not return after cancellation")
	}
}
