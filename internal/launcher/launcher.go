// Package launcher starts the container's foreground process.
//
// The entry point comes from the BOT_SCRIPT environment variable; when it
// is unset the launcher runs the bot built into this binary. The child
// owns the container's lifecycle: its exit code becomes the launcher's
// exit code, and termination signals sent to the launcher are forwarded
// to it.
package launcher

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/Rate-JP/metal-rookie-bot/internal/model"
)

// Resolve turns the configured entry point into an argv. An empty entry
// point selects the built-in default: this binary's `run` subcommand.
// A non-empty entry point is split on whitespace, so values like
// "python3 legacy_bot.py" keep working.
func Resolve(entryPoint string) ([]string, error) {
	if entryPoint == "" {
		self, err := os.Executable()
		if err != nil {
			return nil, model.WrapCLIError(model.ExitLaunchFailed,
				"failed to locate own binary for the default entry point", err)
		}
		return []string{self, "run"}, nil
	}

	argv := strings.Fields(entryPoint)
	if len(argv) == 0 {
		return nil, model.NewCLIError(model.ExitLaunchFailed,
			"BOT_SCRIPT is set but blank")
	}
	return argv, nil
}

// Run starts argv as the foreground process and blocks until it exits.
// It returns the child's exit code. SIGINT and SIGTERM arriving while the
// child runs are passed through; the launcher itself never restarts the
// child (restart policy belongs to the orchestrator).
func Run(ctx context.Context, argv []string, log *zap.Logger) (int, error) {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()

	log.Info("エントリポイントを起動します", zap.Strings("argv", argv))

	if err := cmd.Start(); err != nil {
		return 0, model.WrapCLIError(model.ExitLaunchFailed,
			"failed to start entry point "+argv[0], err)
	}

	signals := make(chan os.Signal, 2)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	for {
		select {
		case sig := <-signals:
			// Forward and keep waiting: the child decides when to exit.
			_ = cmd.Process.Signal(sig)

		case <-ctx.Done():
			_ = cmd.Process.Signal(syscall.SIGTERM)
			err := <-done
			return exitCode(err), ctx.Err()

		case err := <-done:
			code := exitCode(err)
			if err != nil && code == 0 {
				return 0, model.WrapCLIError(model.ExitLaunchFailed,
					"entry point failed", err)
			}
			log.Info("エントリポイントが終了しました", zap.Int("exit_code", code))
			return code, nil
		}
	}
}

// exitCode extracts the child's exit status from cmd.Wait's error.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 0
}
