// SPDX-License-Identifier: Apache-2.0

// Package health implements the gateway liveness probe backing the
// container HEALTHCHECK directive.
//
// The gateway's health path answers 401 without a valid bearer token, so
// the probe authenticates with the token persisted in the state directory
// and treats any non-2xx answer as unhealthy.
package health

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sethvargo/go-retry"
)

// Probe checks the gateway health endpoint.
type Probe struct {
	client *resty.Client

	// attempts bounds how many times a failing check is retried before the
	// probe reports unhealthy.
	attempts uint64
	interval time.Duration
}

// NewProbe constructs a Probe with a short per-request timeout; a hung
// gateway must read as unhealthy, not block the orchestrator's checker.
func NewProbe() *Probe {
	return &Probe{
		client:   resty.New().SetTimeout(3 * time.Second),
		attempts: 3,
		interval: time.Second,
	}
}

// Check probes baseURL's health path with the given bearer token, retrying
// transient failures a few times. Returns nil when the gateway answered
// with a 2xx status.
func (p *Probe) Check(ctx context.Context, baseURL, token string) error {
	backoff := retry.WithMaxRetries(p.attempts, retry.NewConstant(p.interval))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		resp, err := p.client.R().
			SetContext(ctx).
			SetAuthToken(token).
			Get(baseURL + "/health")
		if err != nil {
			return retry.RetryableError(fmt.Errorf("health request: %w", err))
		}
		if resp.IsError() {
			return retry.RetryableError(fmt.Errorf("health endpoint returned %d", resp.StatusCode()))
		}
		return nil
	})
}
