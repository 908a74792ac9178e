package docker

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/go-connections/nat"

	"github.com/Rate-JP/metal-rookie-bot/internal/model"
)

// Health-check contract of the deployed container. These mirror the
// HEALTHCHECK directive in the image recipe: a probe every 30 seconds
// with a 5 second timeout, unhealthy after 3 consecutive failures.
const (
	HealthInterval = 30 * time.Second
	HealthTimeout  = 5 * time.Second
	HealthRetries  = 3
)

// DeployOptions describes the bot container the `up` command creates.
type DeployOptions struct {
	// Image is the bot image reference.
	Image string

	// Name is the container name.
	Name string

	// Env is the raw KEY=VALUE environment passed into the container
	// (DISCORD_TOKEN, CHANNEL_ID, BOT_SCRIPT, ...).
	Env []string

	// HealthPort is the published health port (container and host side).
	HealthPort int

	// DataDir, when set, is bind-mounted over /app/data so the sqlite
	// settings survive container replacement.
	DataDir string
}

// buildConfigs assembles the container and host configuration for one
// bot container.
func buildConfigs(opts DeployOptions) (*container.Config, *container.HostConfig, error) {
	port, err := nat.NewPort("tcp", strconv.Itoa(opts.HealthPort))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid health port %d: %w", opts.HealthPort, err)
	}

	cfg := &container.Config{
		Image: opts.Image,
		Env:   append(opts.Env, fmt.Sprintf("PORT=%d", opts.HealthPort)),
		Labels: map[string]string{
			model.LabelManagedBy:  model.ManagedByValue,
			model.LabelHealthPort: strconv.Itoa(opts.HealthPort),
		},
		ExposedPorts: nat.PortSet{port: struct{}{}},
		Healthcheck: &container.HealthConfig{
			Test:     []string{"CMD", "/app/metal-rookie-bot", "healthcheck"},
			Interval: HealthInterval,
			Timeout:  HealthTimeout,
			Retries:  HealthRetries,
		},
	}

	hostCfg := &container.HostConfig{
		PortBindings: nat.PortMap{
			port: []nat.PortBinding{{
				HostIP:   "127.0.0.1",
				HostPort: strconv.Itoa(opts.HealthPort),
			}},
		},
		RestartPolicy: container.RestartPolicy{
			Name: container.RestartPolicyUnlessStopped,
		},
	}
	if opts.DataDir != "" {
		hostCfg.Binds = []string{opts.DataDir + ":/app/data"}
	}
	return cfg, hostCfg, nil
}

// Deploy creates and starts the bot container. The returned string is
// the container ID.
func Deploy(ctx context.Context, cli *Client, opts DeployOptions) (string, error) {
	cfg, hostCfg, err := buildConfigs(opts)
	if err != nil {
		return "", err
	}

	created, err := cli.Inner().ContainerCreate(ctx, cfg, hostCfg, nil, nil, opts.Name)
	if err != nil {
		return "", model.WrapCLIError(model.ExitDockerNotRunning,
			"failed to create bot container", err)
	}

	if err := cli.Inner().ContainerStart(ctx, created.ID, container.StartOptions{}); err != nil {
		return "", model.WrapCLIError(model.ExitDockerNotRunning,
			"failed to start bot container", err)
	}
	return created.ID, nil
}

// ManagedContainer is one bot container found by label.
type ManagedContainer struct {
	ID         string
	Name       string
	State      string
	HealthPort string
}

// ListManaged returns every container (running or not) carrying the
// managed-by label.
func ListManaged(ctx context.Context, cli *Client) ([]ManagedContainer, error) {
	containers, err := cli.Inner().ContainerList(ctx, container.ListOptions{
		All: true,
		Filters: filters.NewArgs(
			filters.Arg("label", model.LabelManagedBy+"="+model.ManagedByValue),
		),
	})
	if err != nil {
		return nil, model.WrapCLIError(model.ExitDockerNotRunning,
			"failed to list bot containers", err)
	}

	result := make([]ManagedContainer, 0, len(containers))
	for _, c := range containers {
		name := ""
		if len(c.Names) > 0 {
			// The API prefixes names with "/".
			name = c.Names[0]
			if len(name) > 0 && name[0] == '/' {
				name = name[1:]
			}
		}
		result = append(result, ManagedContainer{
			ID:         c.ID,
			Name:       name,
			State:      c.State,
			HealthPort: c.Labels[model.LabelHealthPort],
		})
	}
	return result, nil
}
