package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rate-JP/metal-rookie-bot/internal/docker"
)

func TestFormatManaged_Empty(t *testing.T) {
	assert.Equal(t, "No bot containers found.\n", formatManaged(nil))
}

// TestFormatManaged verifies the table output: shortened IDs, the health
// port from the label, and a dash when the label is missing.
func TestFormatManaged(t *testing.T) {
	out := formatManaged([]docker.ManagedContainer{
		{
			ID:         "0123456789abcdef0123456789abcdef",
			Name:       "metal-rookie-bot",
			State:      "running",
			HealthPort: "8080",
		},
		{
			ID:    "fedcba9876543210",
			Name:  "metal-rookie-bot-old",
			State: "exited",
		},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3, "header plus one row per container")

	assert.Contains(t, lines[0], "NAME")
	assert.Contains(t, lines[0], "HEALTH PORT")

	assert.Contains(t, lines[1], "metal-rookie-bot")
	assert.Contains(t, lines[1], "0123456789ab")
	assert.NotContains(t, lines[1], "0123456789abc", "ID must be shortened to 12 characters")
	assert.Contains(t, lines[1], "running")
	assert.Contains(t, lines[1], "8080")

	assert.Contains(t, lines[2], "exited")
	assert.Contains(t, lines[2], "-", "missing health-port label renders as a dash")
}
