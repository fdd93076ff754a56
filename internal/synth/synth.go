// SPDX-License-Identifier: Apache-2.0

// Package synth implements the environment-driven configuration synthesis
// engine.
//
// Synthesize is pure with respect to the process: it consumes an
// environment snapshot and in-memory documents and produces a new document,
// never touching the filesystem or ambient environment itself. The engine
// is schema-driven (see schema.go); the convention bindings
// (OPENCLAW_JSON__path__to__key=value) cover everything the schema does
// not.
package synth

import (
	"fmt"
	"sort"
	"strings"

	"github.com/angelorc/dokploy-openclaw/internal/document"
	"github.com/angelorc/dokploy-openclaw/internal/logger"
)

// ConventionPrefix marks environment variables carrying configuration-path
// bindings. The remainder of the name is split on the double-underscore
// delimiter into document path segments.
const ConventionPrefix = "OPENCLAW_JSON__"

// pathDelimiter separates path segments in a convention binding name.
// Segments are literal object keys; no escaping is defined, so keys
// containing the delimiter cannot be addressed this way.
const pathDelimiter = "__"

// Synthesizer builds the configuration document from an environment
// snapshot, a shipped template, and the previously persisted document.
type Synthesizer struct {
	log *logger.Logger
}

// New constructs a Synthesizer logging through log.
func New(log *logger.Logger) *Synthesizer {
	return &Synthesizer{log: log}
}

// Inputs carries everything a synthesis run consumes. All values come from
// the one-time boot snapshot; the synthesizer itself reads no ambient
// state.
type Inputs struct {
	// Env is the captured environment snapshot.
	Env map[string]string

	// Template is the shipped configuration template, nil when the image
	// carries none. Its presence suppresses stale-provider cleanup, since
	// template-declared providers are deliberate.
	Template document.Document

	// Persisted is the document from the previous boot, nil on first boot.
	Persisted document.Document

	// ExplicitPort is the gateway port when it was set explicitly (env or
	// flag); zero otherwise. An explicit port always wins over the
	// persisted document.
	ExplicitPort int

	// DefaultPort seeds gateway.port when neither an explicit value nor a
	// persisted one exists.
	DefaultPort int

	// Token is the resolved gateway bearer token.
	Token string

	// WorkspaceDir seeds agents.defaults.workspace on first boot.
	WorkspaceDir string
}

// Synthesize produces the new configuration document. The inputs are not
// modified; the result starts from a deep copy of the template with the
// persisted document merged on top, then applies every schema section and
// finally the convention bindings.
func (s *Synthesizer) Synthesize(in Inputs) (document.Document, error) {
	hasTemplate := in.Template != nil

	doc, err := document.Merge(document.Clone(in.Template), document.Clone(in.Persisted))
	if err != nil {
		return nil, fmt.Errorf("seeding document: %w", err)
	}

	s.applyGateway(doc, in)
	s.applyAgentDefaults(doc, in)
	s.applyCustomProviders(doc, in.Env, hasTemplate)
	s.applyBedrock(doc, in.Env, hasTemplate)
	s.applyOllama(doc, in.Env, hasTemplate)
	s.cleanBuiltinProviders(doc, in.Env, hasTemplate)
	s.applyPrimaryModel(doc, in.Env)
	s.applyDeepgram(doc, in.Env)

	if err := s.applyChannels(doc, in.Env); err != nil {
		return nil, err
	}
	if err := s.applyBrowser(doc, in.Env); err != nil {
		return nil, err
	}
	if err := s.applyHooks(doc, in.Env); err != nil {
		return nil, err
	}
	if err := s.applyBindings(doc, in.Env); err != nil {
		return nil, err
	}

	return doc, nil
}

// applyGateway fills the gateway section: port, mode, token auth, and the
// control-UI defaults the container relies on for first-run setup.
func (s *Synthesizer) applyGateway(doc document.Document, in Inputs) {
	gateway := document.Ensure(doc, "gateway")

	switch {
	case in.ExplicitPort != 0:
		gateway["port"] = float64(in.ExplicitPort)
	case !hasValue(gateway["port"]):
		gateway["port"] = float64(in.DefaultPort)
	}

	if !hasValue(gateway["mode"]) {
		gateway["mode"] = "local"
	}

	if tok := strings.TrimSpace(in.Token); tok != "" {
		auth := document.Ensure(doc, "gateway", "auth")
		auth["mode"] = "token"
		auth["token"] = tok
	}

	controlUI := document.Ensure(doc, "gateway", "controlUi")
	if _, ok := controlUI["allowInsecureAuth"]; !ok {
		controlUI["allowInsecureAuth"] = true
	}
	if _, ok := controlUI["enabled"]; !ok {
		controlUI["enabled"] = true
	}
}

func (s *Synthesizer) applyAgentDefaults(doc document.Document, in Inputs) {
	defaults := document.Ensure(doc, "agents", "defaults")
	if !hasValue(defaults["workspace"]) {
		defaults["workspace"] = in.WorkspaceDir
	}
	document.Ensure(doc, "agents", "defaults", "model")
}

func (s *Synthesizer) applyDeepgram(doc document.Document, env map[string]string) {
	if env["DEEPGRAM_API_KEY"] != "" {
		s.log.Info().Msg("configuring deepgram transcription from env")
		audio := document.Ensure(doc, "tools", "media", "audio")
		audio["enabled"] = true
		audio["models"] = []any{
			map[string]any{"provider": "deepgram", "model": "nova-3"},
		}
	} else if document.GetPath(doc, "tools.media.audio") != nil {
		s.log.Debug().Msg("deepgram transcription configured from template")
	}
}

func (s *Synthesizer) applyBrowser(doc document.Document, env map[string]string) error {
	if env["BROWSER_CDP_URL"] == "" {
		if document.GetPath(doc, "browser") != nil {
			s.log.Debug().Msg("browser configured from template")
		}
		return nil
	}

	s.log.Info().Msg("configuring browser tool (remote CDP)")
	browser := document.Ensure(doc, "browser")
	return s.applyFields(browser, env, browserFields)
}

func (s *Synthesizer) applyHooks(doc document.Document, env map[string]string) error {
	if !boolToggle(env["HOOKS_ENABLED"]) {
		if document.GetPath(doc, "hooks") != nil {
			s.log.Debug().Msg("hooks configured from template")
		}
		return nil
	}

	s.log.Info().Msg("configuring hooks from env")
	hooks := document.Ensure(doc, "hooks")
	hooks["enabled"] = true
	return s.applyFields(hooks, env, hooksFields)
}

// applyBindings applies the convention overrides, lexically sorted by
// variable name so overlapping same-path bindings resolve reproducibly.
func (s *Synthesizer) applyBindings(doc document.Document, env map[string]string) error {
	names := make([]string, 0)
	for name := range env {
		if strings.HasPrefix(name, ConventionPrefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		rest := strings.TrimPrefix(name, ConventionPrefix)
		segments := strings.Split(rest, pathDelimiter)
		for _, seg := range segments {
			if seg == "" {
				return fmt.Errorf("convention binding %s: empty path segment", name)
			}
		}

		dotpath := strings.Join(segments, ".")
		value := autoType(env[name])
		document.SetPath(doc, dotpath, value)
		s.log.Info().Str("path", dotpath).Any("value", value).Msg("convention override")
	}

	return nil
}

// applyFields copies every declared field present in env into obj at its
// dot path, coerced per the field kind.
func (s *Synthesizer) applyFields(obj map[string]any, env map[string]string, fields []fieldSpec) error {
	for _, f := range fields {
		raw, ok := env[f.Env]
		if !ok {
			continue
		}
		val, err := parseValue(raw, f.Kind)
		if err != nil {
			return fmt.Errorf("field %s: %w", f.Env, err)
		}
		document.SetPath(obj, f.Path, val)
	}
	return nil
}

// boolToggle reports whether raw is a case-insensitive "true" or "1".
func boolToggle(raw string) bool {
	return strings.EqualFold(raw, "true") || raw == "1"
}

// hasValue mirrors Python truthiness for the "only default when unset or
// empty" checks inherited from the original configure script.
func hasValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case float64:
		return val != 0
	case bool:
		return val
	default:
		return true
	}
}
