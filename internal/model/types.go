// Package model defines the shared domain types for the metal-rookie-bot CLI.
//
// The types here are deliberately small: process exit codes, the error type
// that carries them across package boundaries, and the container labels used
// to identify bot containers started by the `up` command.
package model

import "fmt"

// ExitCode defines the process exit codes reported to the orchestrator.
// Exit codes other than 0 surface as crash/restart events; the restart
// policy itself belongs to the orchestrator, not to this binary.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitConfigError indicates required configuration (token, channel)
	// is missing or malformed.
	ExitConfigError ExitCode = 2

	// ExitDockerNotRunning indicates the Docker daemon is not accessible.
	ExitDockerNotRunning ExitCode = 3

	// ExitPortConflict indicates the health port is already bound on the
	// host, so the container cannot publish it.
	ExitPortConflict ExitCode = 4

	// ExitLaunchFailed indicates the configured entry point does not exist
	// or could not be started.
	ExitLaunchFailed ExitCode = 5

	// ExitUnhealthy indicates the liveness probe exhausted its attempts
	// without reaching the health endpoint.
	ExitUnhealthy ExitCode = 6
)

// Container labels applied by the `up` command. Discovery of bot containers
// is label-based; no state file is kept on the host.
const (
	// LabelManagedBy marks containers created by this tool.
	LabelManagedBy = "metal-rookie-bot.managed-by"

	// ManagedByValue is the value stored under LabelManagedBy.
	ManagedByValue = "metal-rookie-bot"

	// LabelHealthPort records the health port the container publishes.
	LabelHealthPort = "metal-rookie-bot.health-port"
)

// CLIError is an error that carries an exit code. The CLI layer translates
// it into the process exit status in cli.Execute.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error returns the formatted error string.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is / errors.As chains.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
