package health

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Probe defaults: a 5 second timeout per attempt and 3 attempts before
// the process is declared unhealthy.
//
// The in-process retry budget serves the standalone CLI invocation. Inside
// the container the HEALTHCHECK directive bounds one invocation at its own
// --timeout and counts failures across invocations via --retries, so a
// hung listener there fails on the first attempt and the orchestrator's
// counters govern. Do not tune one side to match the other.
const (
	DefaultTimeout  = 5 * time.Second
	DefaultAttempts = 3

	// retryDelay spaces consecutive attempts within one probe run.
	retryDelay = 1 * time.Second
)

// Probe issues plain GETs against the loopback health endpoint.
type Probe struct {
	// Port is the target port on 127.0.0.1.
	Port int

	// Timeout bounds a single attempt. Zero means DefaultTimeout.
	Timeout time.Duration

	// Attempts is the failure budget. Zero means DefaultAttempts.
	Attempts int
}

// Check runs the probe: attempts are made in order, and the first 2xx
// answer means healthy. Connection refused, timeout, and non-2xx status
// each consume one attempt. The returned error describes the last
// failure once the budget is exhausted.
func (p *Probe) Check(ctx context.Context) error {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	attempts := p.Attempts
	if attempts <= 0 {
		attempts = DefaultAttempts
	}

	client := &http.Client{Timeout: timeout}
	url := fmt.Sprintf("http://127.0.0.1:%d/healthz", p.Port)

	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryDelay):
			}
		}

		lastErr = p.attempt(ctx, client, url)
		if lastErr == nil {
			return nil
		}
	}
	return fmt.Errorf("health probe failed after %d attempts: %w", attempts, lastErr)
}

func (p *Probe) attempt(ctx context.Context, client *http.Client, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
