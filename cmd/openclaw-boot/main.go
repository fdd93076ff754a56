// SPDX-License-Identifier: Apache-2.0

// Command openclaw-boot prepares the container runtime and hands control
// to the gateway process. It resolves the bearer token, synthesizes the
// configuration document from the environment, generates the proxy
// snippets, starts the proxy, and finally replaces itself with the
// gateway so signals reach it directly.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/angelorc/dokploy-openclaw/internal/boot"
	"github.com/angelorc/dokploy-openclaw/internal/config"
	"github.com/angelorc/dokploy-openclaw/internal/logger"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("openclaw-boot")

	cfg, err := config.GetSettings(os.Environ(), os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting settings")
	}
	log = log.WithVerbose(cfg.Gateway.Verbose)

	log.Debug().
		Str("state_dir", cfg.Paths.StateDir).
		Str("config_path", cfg.Paths.ConfigPath).
		Int("port", cfg.Gateway.Port).
		Msg("settings resolved")

	if err := boot.New(cfg, log).Run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("boot sequence failed")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
