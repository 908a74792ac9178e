// Package docker wraps the Docker Engine SDK for the `up` command, which
// deploys the bot as a managed container with the health-check contract
// baked into the container config.
package docker

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/docker/docker/client"

	"github.com/Rate-JP/metal-rookie-bot/internal/model"
)

// pingTimeout bounds the daemon reachability check.
const pingTimeout = 5 * time.Second

// Client wraps the Docker SDK client with socket auto-detection.
type Client struct {
	inner *client.Client
}

// NewClient connects to the Docker daemon. DOCKER_HOST wins when set;
// otherwise the platform's default socket paths are probed.
func NewClient() (*Client, error) {
	host := os.Getenv("DOCKER_HOST")
	if host == "" {
		detected, err := detectDockerHost()
		if err != nil {
			return nil, model.WrapCLIError(model.ExitDockerNotRunning,
				"Docker socket not found", err)
		}
		host = detected
	}

	inner, err := client.NewClientWithOpts(
		client.WithHost(host),
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitDockerNotRunning,
			fmt.Sprintf("failed to create Docker client for host %q", host), err)
	}
	return &Client{inner: inner}, nil
}

// detectDockerHost probes the known socket locations for the platform.
// Existence is checked, not connectivity; Ping covers the latter.
func detectDockerHost() (string, error) {
	var paths []string
	switch runtime.GOOS {
	case "linux":
		paths = []string{"/var/run/docker.sock"}
	case "darwin":
		paths = []string{"/var/run/docker.sock"}
		if home, err := os.UserHomeDir(); err == nil {
			paths = append(paths, home+"/.docker/run/docker.sock")
		}
	default:
		return "", fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return "unix://" + path, nil
		}
	}
	return "", fmt.Errorf("Docker socket not found at any of %v (is Docker running?)", paths)
}

// Ping verifies the daemon is responsive.
func (c *Client) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if _, err := c.inner.Ping(pingCtx); err != nil {
		return model.WrapCLIError(model.ExitDockerNotRunning,
			"Docker daemon is not responding (is Docker running?)", err)
	}
	return nil
}

// Close releases the SDK client. Safe to call more than once.
func (c *Client) Close() error {
	if c.inner != nil {
		return c.inner.Close()
	}
	return nil
}

// Inner exposes the SDK client for operations not wrapped here.
func (c *Client) Inner() *client.Client {
	return c.inner
}
