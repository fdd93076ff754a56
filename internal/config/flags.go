package config

import (
	"flag"
	"fmt"
)

// parseFlags parses all bootstrap configuration flags from args.
//
// Flags:
//
//	-state-dir persistent state directory
//	-workspace-dir agent workspace directory
//	-config configuration document path
//	-template shipped configuration template path
//	-snippet-dir proxy snippet directory
//	-port gateway listening port
//	-gateway-bin gateway executable
//	-proxy-bin proxy executable
//	-caddyfile static proxy configuration path
//	-lan bind the gateway network-wide instead of loopback-only
//	-v verbose logging
//	-env-file optional dotenv file path
func parseFlags(args []string) (*Settings, error) {
	fs := flag.NewFlagSet("openclaw-boot", flag.ContinueOnError)

	var stateDir string
	var workspaceDir string
	var configPath string
	var templatePath string
	var snippetDir string
	var port int
	var gatewayBin string
	var proxyBin string
	var caddyfile string
	var lanBind bool
	var verbose bool
	var envFile string

	fs.StringVar(&stateDir, "state-dir", "", "Persistent state directory")
	fs.StringVar(&workspaceDir, "workspace-dir", "", "Agent workspace directory")
	fs.StringVar(&configPath, "config", "", "Configuration document path")
	fs.StringVar(&templatePath, "template", "", "Shipped configuration template path")
	fs.StringVar(&snippetDir, "snippet-dir", "", "Proxy snippet directory")
	fs.IntVar(&port, "port", 0, "Gateway listening port")
	fs.StringVar(&gatewayBin, "gateway-bin", "", "Gateway executable")
	fs.StringVar(&proxyBin, "proxy-bin", "", "Proxy executable")
	fs.StringVar(&caddyfile, "caddyfile", "", "Static proxy configuration path")
	fs.BoolVar(&lanBind, "lan", false, "Bind the gateway network-wide instead of loopback-only")
	fs.BoolVar(&verbose, "v", false, "Verbose logging")
	fs.StringVar(&envFile, "env-file", "", "Optional dotenv file path")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &Settings{
		Paths: Paths{
			StateDir:     stateDir,
			WorkspaceDir: workspaceDir,
			ConfigPath:   configPath,
			TemplatePath: templatePath,
			SnippetDir:   snippetDir,
		},
		Gateway: Gateway{
			Port:    port,
			Binary:  gatewayBin,
			LanBind: lanBind,
			Verbose: verbose,
		},
		Proxy: Proxy{
			Binary:     proxyBin,
			ConfigFile: caddyfile,
		},
		EnvFile: envFile,
	}, nil
}
