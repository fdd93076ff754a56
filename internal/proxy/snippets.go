// SPDX-License-Identifier: Apache-2.0

// Package proxy generates the reverse-proxy configuration snippets and
// manages the proxy background process.
//
// The proxy's static configuration carries include directives pointing at
// the snippet directory, so both snippet files must exist after every boot.
// An empty snippet is a valid, inert include: no password means no auth
// requirement (never a blocked route), and a disabled hooks toggle means no
// extra route.
package proxy

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/bcrypt"

	"github.com/angelorc/dokploy-openclaw/internal/logger"
)

// Snippet file names, matched by the include directives in the shipped
// Caddyfile.
const (
	authSnippetFile  = "auth.caddyfile"
	hooksSnippetFile = "hooks.caddyfile"
)

// SnippetInput carries everything snippet generation consumes.
type SnippetInput struct {
	// Username and Password for the basic-auth block. An empty password
	// produces an explicitly permissive auth snippet.
	Username string
	Password string

	// HooksEnabled gates the webhook route; when false the hooks snippet
	// is written empty, not omitted.
	HooksEnabled bool

	// HooksPath is the URL path prefix proxied to the gateway.
	HooksPath string

	// GatewayPort is the local port the hooks route proxies to.
	GatewayPort int

	// Token is the bearer token injected into proxied hook requests so
	// downstream callers never need to know it.
	Token string
}

// Generator writes proxy snippets. The password hasher is a field so tests
// can swap the (salted, deliberately slow) bcrypt call for a fast stub.
type Generator struct {
	log  *logger.Logger
	hash func(password []byte) ([]byte, error)
}

// NewGenerator constructs a Generator hashing credentials with bcrypt at
// the default cost, the same primitive the proxy's own hash-password
// command uses.
func NewGenerator(log *logger.Logger) *Generator {
	return &Generator{
		log: log,
		hash: func(password []byte) ([]byte, error) {
			return bcrypt.GenerateFromPassword(password, bcrypt.DefaultCost)
		},
	}
}

// Generate writes both snippets into dir, creating it if needed. Every boot
// fully regenerates the snippets; with identical inputs and no password the
// output is byte-identical (a configured password hashes with a fresh salt
// each run, which is invisible to the proxy).
func (g *Generator) Generate(dir string, in SnippetInput) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating snippet directory %s: %w", dir, err)
	}

	auth, err := g.authSnippet(in)
	if err != nil {
		return err
	}
	if err := writeSnippet(filepath.Join(dir, authSnippetFile), auth); err != nil {
		return err
	}

	if err := writeSnippet(filepath.Join(dir, hooksSnippetFile), g.hooksSnippet(in)); err != nil {
		return err
	}

	return nil
}

func (g *Generator) authSnippet(in SnippetInput) (string, error) {
	if in.Password == "" {
		g.log.Info().Msg("auth snippet: no password configured, access is open")
		return "(auth_block) {}\n", nil
	}

	hashed, err := g.hash([]byte(in.Password))
	if err != nil {
		return "", fmt.Errorf("hashing auth password: %w", err)
	}

	g.log.Info().Str("username", in.Username).Msg("auth snippet: basicauth enabled")
	return "(auth_block) {\n" +
		"    basicauth {\n" +
		"        " + in.Username + " " + string(hashed) + "\n" +
		"    }\n" +
		"}\n", nil
}

func (g *Generator) hooksSnippet(in SnippetInput) string {
	if !in.HooksEnabled {
		g.log.Debug().Msg("hooks snippet: disabled, writing inert file")
		return ""
	}

	g.log.Info().Str("path", in.HooksPath).Msg("hooks snippet: routing to gateway")
	return fmt.Sprintf(
		"handle %s* {\n"+
			"    reverse_proxy localhost:%d {\n"+
			"        header_up Authorization \"Bearer %s\"\n"+
			"    }\n"+
			"}\n",
		in.HooksPath, in.GatewayPort, in.Token,
	)
}

func writeSnippet(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing snippet %s: %w", path, err)
	}
	return nil
}
