// SPDX-License-Identifier: Apache-2.0

// Package boot implements the startup sequencing state machine.
//
// The sequencer runs a fixed, linear list of named steps: resolve the
// bearer token, warn about missing provider credentials, prepare
// directories, synthesize and persist the configuration document, generate
// proxy snippets, run the gateway's own best-effort self-check, start the
// proxy in the background, discard stale lock markers, and finally replace
// this process image with the gateway so the container's lifecycle belongs
// to it. Fatal step failures abort before the hand-off with a non-zero
// exit; warn and best-effort failures are logged and the boot continues.
package boot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/angelorc/dokploy-openclaw/internal/config"
	"github.com/angelorc/dokploy-openclaw/internal/document"
	"github.com/angelorc/dokploy-openclaw/internal/logger"
	"github.com/angelorc/dokploy-openclaw/internal/proxy"
	"github.com/angelorc/dokploy-openclaw/internal/synth"
	"github.com/angelorc/dokploy-openclaw/internal/token"
)

// selfHealTimeout bounds the gateway's doctor run. The step is best-effort
// normalization and must never stall the boot indefinitely.
const selfHealTimeout = 2 * time.Minute

// Sequencer orchestrates the boot. The process-touching collaborators
// (exec replacement, proxy start, doctor run) are function fields so tests
// can run the full sequence without spawning anything.
type Sequencer struct {
	cfg      *config.Settings
	log      *logger.Logger
	synth    *synth.Synthesizer
	snippets *proxy.Generator

	execFunc   func(argv0 string, argv []string, envv []string) error
	startProxy func(ctx context.Context) error
	selfHeal   func(ctx context.Context) error

	// State threaded between steps.
	token             string
	allowUnconfigured bool
	doc               document.Document
}

// New constructs a Sequencer with real collaborators.
func New(cfg *config.Settings, log *logger.Logger) *Sequencer {
	s := &Sequencer{
		cfg:      cfg,
		log:      log,
		synth:    synth.New(log.GetChildLogger()),
		snippets: proxy.NewGenerator(log.GetChildLogger()),
		execFunc: syscall.Exec,
	}
	s.startProxy = proxy.NewProcess(cfg.Proxy, log.GetChildLogger()).Start
	s.selfHeal = s.runDoctor
	return s
}

// Run executes the boot sequence. On success it does not return: the final
// step replaces the process image with the gateway. A returned nil is only
// observable in tests with an injected exec function.
func (s *Sequencer) Run(ctx context.Context) error {
	for _, step := range s.steps() {
		s.log.Info().Str("step", step.Name).Msg("boot step")

		err := step.Run(ctx)
		if err == nil {
			continue
		}

		switch step.Mode {
		case Fatal:
			return fmt.Errorf("boot step %s: %w", step.Name, err)
		case Warn:
			s.log.Warn().Err(err).Str("step", step.Name).Msg("boot step failed, continuing degraded")
		case BestEffort:
			s.log.Warn().Err(err).Str("step", step.Name).Msg("boot step failed, ignoring")
		}
	}
	return nil
}

func (s *Sequencer) steps() []Step {
	return []Step{
		{Name: "resolve-token", Mode: Fatal, Run: s.resolveToken},
		{Name: "validate-providers", Mode: Warn, Run: s.validateProviders},
		{Name: "ensure-directories", Mode: Fatal, Run: s.ensureDirectories},
		{Name: "synthesize-config", Mode: Fatal, Run: s.synthesizeConfig},
		{Name: "generate-snippets", Mode: Fatal, Run: s.generateSnippets},
		{Name: "self-heal", Mode: BestEffort, Run: s.selfHealStep},
		{Name: "start-proxy", Mode: Fatal, Run: s.startProxyStep},
		{Name: "clear-stale-locks", Mode: Warn, Run: s.clearStaleLocks},
		{Name: "hand-off", Mode: Fatal, Run: s.handOff},
	}
}

func (s *Sequencer) resolveToken(context.Context) error {
	tok, err := token.Resolve(s.cfg.Gateway.Token, s.cfg.TokenPath())
	if err != nil {
		return err
	}
	s.token = tok
	return nil
}

// validateProviders checks the recognized credential variables. Absence is
// never fatal: the gateway is started with --allow-unconfigured so it can
// be configured later through its own UI.
func (s *Sequencer) validateProviders(context.Context) error {
	if synth.HasProvider(s.cfg.Environ) {
		return nil
	}
	s.allowUnconfigured = true
	return fmt.Errorf("no provider credentials found; set one of: %s",
		strings.Join(synth.ProviderHint(), ", "))
}

func (s *Sequencer) ensureDirectories(context.Context) error {
	if err := os.MkdirAll(s.cfg.Paths.StateDir, 0o700); err != nil {
		return fmt.Errorf("creating state dir: %w", err)
	}
	if err := os.MkdirAll(s.cfg.Paths.WorkspaceDir, 0o755); err != nil {
		return fmt.Errorf("creating workspace dir: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.cfg.Paths.ConfigPath), 0o700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	return nil
}

func (s *Sequencer) synthesizeConfig(context.Context) error {
	template, err := loadOptional(s.cfg.Paths.TemplatePath)
	if err != nil {
		return fmt.Errorf("shipped template: %w", err)
	}

	persisted, err := loadOptional(s.cfg.Paths.ConfigPath)
	if err != nil {
		// A malformed persisted document is fatal: silently discarding it
		// would corrupt every setting the user made through the UI.
		return fmt.Errorf("persisted document: %w", err)
	}

	in := synth.Inputs{
		Env:          s.cfg.Environ,
		Template:     template,
		Persisted:    persisted,
		DefaultPort:  config.DefaultGatewayPort,
		Token:        s.token,
		WorkspaceDir: s.cfg.Paths.WorkspaceDir,
	}
	if s.cfg.PortExplicit() {
		in.ExplicitPort = s.cfg.Gateway.Port
	}

	doc, err := s.synth.Synthesize(in)
	if err != nil {
		return err
	}

	if err := document.Save(s.cfg.Paths.ConfigPath, doc); err != nil {
		return err
	}

	s.doc = doc
	s.log.Info().Str("path", s.cfg.Paths.ConfigPath).Msg("configuration document written")
	return nil
}

func (s *Sequencer) generateSnippets(context.Context) error {
	return s.snippets.Generate(s.cfg.Paths.SnippetDir, proxy.SnippetInput{
		Username:     s.cfg.Auth.Username,
		Password:     s.cfg.Auth.Password,
		HooksEnabled: document.GetBool(s.doc, "hooks.enabled"),
		HooksPath:    document.GetString(s.doc, "hooks.path", "/hooks"),
		GatewayPort:  s.gatewayPort(),
		Token:        s.token,
	})
}

func (s *Sequencer) selfHealStep(ctx context.Context) error {
	return s.selfHeal(ctx)
}

// runDoctor invokes the gateway's own self-check/fix routine. Its output
// goes to the boot log; its failure is ignored by the sequencer.
func (s *Sequencer) runDoctor(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, selfHealTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, s.cfg.Gateway.Binary, "doctor", "--fix")
	cmd.Env = s.cfg.EnvironSlice()
	out, err := cmd.CombinedOutput()
	if len(out) > 0 {
		s.log.Debug().Str("output", string(out)).Msg("doctor output")
	}
	if err != nil {
		return fmt.Errorf("doctor run: %w", err)
	}
	return nil
}

func (s *Sequencer) startProxyStep(ctx context.Context) error {
	return s.startProxy(ctx)
}

// clearStaleLocks removes every lock marker under the state directory. A
// lock surviving a container restart cannot belong to a live process and
// is never honored.
func (s *Sequencer) clearStaleLocks(context.Context) error {
	matches, err := filepath.Glob(s.cfg.LockGlob())
	if err != nil {
		return fmt.Errorf("scanning lock markers: %w", err)
	}

	var errs error
	for _, path := range matches {
		s.log.Info().Str("path", path).Msg("discarding stale lock")
		if err := os.Remove(path); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	return errs
}

// handOff replaces this process image with the gateway. On success the
// gateway becomes the container's sole signal-receiving process and this
// function never returns.
func (s *Sequencer) handOff(context.Context) error {
	binPath, err := exec.LookPath(s.cfg.Gateway.Binary)
	if err != nil {
		return fmt.Errorf("locating gateway binary: %w", err)
	}

	argv := s.gatewayArgv()
	s.log.Info().Strs("argv", argv).Msg("handing off to gateway")

	if err := s.execFunc(binPath, argv, s.cfg.EnvironSlice()); err != nil {
		return fmt.Errorf("exec gateway: %w", err)
	}
	return nil
}

// gatewayArgv assembles the gateway command line: port, verbosity, the
// unconfigured-mode flag, bind scope, and the bearer token.
func (s *Sequencer) gatewayArgv() []string {
	argv := []string{
		s.cfg.Gateway.Binary,
		"gateway",
		"--port", strconv.Itoa(s.gatewayPort()),
	}
	if s.cfg.Gateway.Verbose {
		argv = append(argv, "--verbose")
	}
	if s.allowUnconfigured {
		argv = append(argv, "--allow-unconfigured")
	}
	bind := "loopback"
	if s.cfg.Gateway.LanBind {
		bind = "lan"
	}
	argv = append(argv, "--bind", bind, "--token", s.token)
	return argv
}

// gatewayPort reads the effective port from the synthesized document,
// falling back to the settings value before synthesis has run.
func (s *Sequencer) gatewayPort() int {
	if port, ok := document.GetPath(s.doc, "gateway.port").(float64); ok && port > 0 {
		return int(port)
	}
	return s.cfg.Gateway.Port
}

// loadOptional loads a document, mapping a missing file to (nil, nil) and
// keeping every other failure, including a malformed file, as an error.
func loadOptional(path string) (document.Document, error) {
	doc, err := document.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return doc, nil
}
