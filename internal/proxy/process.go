// SPDX-License-Identifier: Apache-2.0

package proxy

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sethvargo/go-retry"

	"github.com/angelorc/dokploy-openclaw/internal/config"
	"github.com/angelorc/dokploy-openclaw/internal/logger"
)

// readyTimeout bounds the proxy readiness poll. The proxy normally answers
// on its admin endpoint within a second of starting.
const readyTimeout = 15 * time.Second

// Process starts the reverse proxy as a background process and waits for it
// to come up. The proxy owns the externally exposed port, so a gateway
// behind a proxy that never started is unreachable: start failure is fatal
// to the boot.
type Process struct {
	binary     string
	configFile string
	adminAddr  string

	log    *logger.Logger
	client *resty.Client
}

// NewProcess constructs a Process from the proxy settings.
func NewProcess(cfg config.Proxy, log *logger.Logger) *Process {
	return &Process{
		binary:     cfg.Binary,
		configFile: cfg.ConfigFile,
		adminAddr:  cfg.AdminAddr,
		log:        log,
		client:     resty.New().SetTimeout(2 * time.Second),
	}
}

// Start launches the proxy in the background, inheriting stdout/stderr so
// its logs interleave with the boot log, then polls the admin endpoint
// until the proxy answers. The started process is deliberately not waited
// on: it runs independently until the container stops.
func (p *Process) Start(ctx context.Context) error {
	cmd := exec.Command(p.binary, "run", "--config", p.configFile)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting proxy %s: %w", p.binary, err)
	}

	p.log.Info().Int("pid", cmd.Process.Pid).Str("binary", p.binary).Msg("proxy started")

	// Orphan the child on purpose; the proxy must outlive this process
	// after the gateway hand-off.
	if err := cmd.Process.Release(); err != nil {
		return fmt.Errorf("releasing proxy process: %w", err)
	}

	if err := p.waitReady(ctx); err != nil {
		return fmt.Errorf("proxy did not become ready: %w", err)
	}

	p.log.Info().Str("admin", p.adminAddr).Msg("proxy ready")
	return nil
}

// waitReady polls the proxy admin endpoint until it responds or the
// readiness timeout elapses.
func (p *Process) waitReady(ctx context.Context) error {
	url := "http://" + p.adminAddr + "/config/"
	backoff := retry.WithMaxDuration(readyTimeout, retry.NewConstant(250*time.Millisecond))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		resp, err := p.client.R().SetContext(ctx).Get(url)
		if err != nil {
			return retry.RetryableError(err)
		}
		if resp.StatusCode() >= 500 {
			return retry.RetryableError(fmt.Errorf("admin endpoint returned %d", resp.StatusCode()))
		}
		return nil
	})
}
