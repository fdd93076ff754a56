// SPDX-License-Identifier: Apache-2.0

// Command openclaw-healthcheck probes the local gateway health endpoint
// with the persisted bearer token. It is intended as a container
// healthcheck entrypoint: exit code 0 means healthy, 1 means not.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/angelorc/dokploy-openclaw/internal/config"
	"github.com/angelorc/dokploy-openclaw/internal/health"
)

func main() {
	cfg, err := config.GetSettings(os.Environ(), os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "healthcheck: settings: %v\n", err)
		os.Exit(1)
	}

	tok := cfg.Gateway.Token
	if tok == "" {
		data, err := os.ReadFile(cfg.TokenPath())
		if err != nil {
			fmt.Fprintf(os.Stderr, "healthcheck: token: %v\n", err)
			os.Exit(1)
		}
		tok = strings.TrimSpace(string(data))
	}

	baseURL := fmt.Sprintf("http://localhost:%d", cfg.Gateway.Port)
	if err := health.NewProbe().Check(context.Background(), baseURL, tok); err != nil {
		fmt.Fprintf(os.Stderr, "healthcheck: %v\n", err)
		os.Exit(1)
	}
}
