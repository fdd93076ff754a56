// SPDX-License-Identifier: Apache-2.0

package synth

import (
	"strings"

	"github.com/angelorc/dokploy-openclaw/internal/document"
)

// applyCustomProviders writes models.providers entries for every custom
// provider whose API-key variable is set, and removes stale entries for the
// rest. Stale removal is suppressed when a shipped template was loaded:
// template-declared providers are deliberate.
func (s *Synthesizer) applyCustomProviders(doc document.Document, env map[string]string, hasTemplate bool) {
	for _, prov := range customProviders {
		apiKey := env[prov.EnvKey]
		if apiKey == "" {
			s.removeStaleProvider(doc, hasTemplate, prov.Key, prov.EnvKey)
			continue
		}

		s.log.Info().Str("provider", prov.Key).Msg("configuring provider")

		entry := map[string]any{
			"api":    prov.API,
			"apiKey": apiKey,
			"models": modelsAsDocument(prov.Models),
		}
		switch {
		case prov.BaseURL != "":
			entry["baseUrl"] = prov.BaseURL
		case prov.BaseURLEnv != "":
			url := env[prov.BaseURLEnv]
			if url == "" {
				url = prov.BaseURLDefault
			}
			entry["baseUrl"] = strings.TrimRight(url, "/")
		}

		document.Ensure(doc, "models", "providers")[prov.Key] = entry
	}
}

// applyBedrock configures the Amazon Bedrock provider when the AWS
// credential pair is present. Bedrock carries extra structure (region
// resolution, model discovery) that does not fit the generic table.
func (s *Synthesizer) applyBedrock(doc document.Document, env map[string]string, hasTemplate bool) {
	if env["AWS_ACCESS_KEY_ID"] == "" || env["AWS_SECRET_ACCESS_KEY"] == "" {
		if !hasTemplate {
			s.removeStaleProvider(doc, hasTemplate, "amazon-bedrock", "AWS credentials")
			if models, ok := doc["models"].(map[string]any); ok {
				delete(models, "bedrockDiscovery")
			}
		}
		return
	}

	s.log.Info().Msg("configuring amazon bedrock provider")

	region := env["AWS_REGION"]
	if region == "" {
		region = env["AWS_DEFAULT_REGION"]
	}
	if region == "" {
		region = "us-east-1"
	}

	document.Ensure(doc, "models", "providers")["amazon-bedrock"] = map[string]any{
		"api":     "bedrock-converse-stream",
		"baseUrl": "https://bedrock-runtime." + region + ".amazonaws.com",
		"models": []any{
			map[string]any{
				"id":            "anthropic.claude-opus-4-5-20251101-v1:0",
				"name":          "Claude Opus 4.5 (Bedrock)",
				"contextWindow": float64(200000),
			},
			map[string]any{
				"id":            "anthropic.claude-sonnet-4-5-20250929-v1:0",
				"name":          "Claude Sonnet 4.5 (Bedrock)",
				"contextWindow": float64(200000),
			},
		},
	}

	providerFilter := env["BEDROCK_PROVIDER_FILTER"]
	if providerFilter == "" {
		providerFilter = "anthropic"
	}
	document.Ensure(doc, "models")["bedrockDiscovery"] = map[string]any{
		"enabled":         true,
		"region":          region,
		"providerFilter":  providerFilter,
		"refreshInterval": float64(3600),
	}
}

// applyOllama configures the local Ollama provider from OLLAMA_BASE_URL.
func (s *Synthesizer) applyOllama(doc document.Document, env map[string]string, hasTemplate bool) {
	url := ollamaURL(env)
	if url == "" {
		s.removeStaleProvider(doc, hasTemplate, "ollama", "OLLAMA_BASE_URL")
		return
	}

	s.log.Info().Msg("configuring ollama provider")

	base := url
	if !strings.HasSuffix(base, "/v1") {
		base += "/v1"
	}
	document.Ensure(doc, "models", "providers")["ollama"] = map[string]any{
		"api":     "openai-completions",
		"baseUrl": base,
		"models": []any{
			map[string]any{"id": "llama3.3", "name": "Llama 3.3", "contextWindow": float64(128000)},
		},
	}
}

// cleanBuiltinProviders logs which built-in providers are enabled and
// removes stale models.providers entries for them: built-in providers are
// auto-detected by the gateway and must not carry explicit entries.
func (s *Synthesizer) cleanBuiltinProviders(doc document.Document, env map[string]string, hasTemplate bool) {
	for _, prov := range builtinProviders {
		if env[prov.EnvKey] != "" {
			s.log.Info().Str("provider", prov.Label).Str("env", prov.EnvKey).Msg("built-in provider enabled")
		}
		s.removeStaleProvider(doc, hasTemplate, prov.Key, "built-in, not needed")
	}

	if opencodeKey(env) != "" {
		s.log.Info().Msg("opencode provider enabled")
	}
	s.removeStaleProvider(doc, hasTemplate, "opencode", "built-in, not needed")
}

// applyPrimaryModel selects agents.defaults.model.primary: explicit
// override first, then a value already in the document, then the first
// priority-table entry whose variable is set.
func (s *Synthesizer) applyPrimaryModel(doc document.Document, env map[string]string) {
	model := document.Ensure(doc, "agents", "defaults", "model")

	if override := env["OPENCLAW_PRIMARY_MODEL"]; override != "" {
		model["primary"] = override
		s.log.Info().Str("model", override).Msg("primary model (override)")
		return
	}
	if existing, ok := model["primary"].(string); ok && existing != "" {
		s.log.Info().Str("model", existing).Msg("primary model (from config)")
		return
	}

	resolved := resolvedProviderEnv(env)
	for _, entry := range primaryModelPriority {
		if resolved[entry.EnvKey] != "" {
			model["primary"] = entry.Model
			s.log.Info().Str("model", entry.Model).Msg("primary model (auto)")
			return
		}
	}
}

func (s *Synthesizer) removeStaleProvider(doc document.Document, hasTemplate bool, key, hint string) {
	if hasTemplate {
		return
	}
	providers, ok := document.GetPath(doc, "models.providers").(map[string]any)
	if !ok {
		return
	}
	if _, present := providers[key]; present {
		s.log.Info().Str("provider", key).Str("reason", hint).Msg("removing stale provider entry")
		delete(providers, key)
	}
}

// HasProvider reports whether any recognized credential variable is set: a
// built-in or custom provider key, the OpenCode pair, the AWS access/secret
// pair, or an Ollama base URL.
func HasProvider(env map[string]string) bool {
	for _, prov := range builtinProviders {
		if env[prov.EnvKey] != "" {
			return true
		}
	}
	for _, prov := range customProviders {
		if env[prov.EnvKey] != "" {
			return true
		}
	}
	if opencodeKey(env) != "" {
		return true
	}
	if env["AWS_ACCESS_KEY_ID"] != "" && env["AWS_SECRET_ACCESS_KEY"] != "" {
		return true
	}
	return ollamaURL(env) != ""
}

// ProviderHint lists the variable names that satisfy the provider check,
// for the degraded-mode warning.
func ProviderHint() []string {
	hint := make([]string, 0, len(builtinProviders)+len(customProviders)+3)
	for _, prov := range builtinProviders {
		hint = append(hint, prov.EnvKey)
	}
	for _, prov := range customProviders {
		hint = append(hint, prov.EnvKey)
	}
	hint = append(hint,
		"OPENCODE_API_KEY",
		"AWS_ACCESS_KEY_ID+AWS_SECRET_ACCESS_KEY",
		"OLLAMA_BASE_URL",
	)
	return hint
}

// resolvedProviderEnv copies env with the pseudo keys used by the priority
// table filled in.
func resolvedProviderEnv(env map[string]string) map[string]string {
	resolved := make(map[string]string, len(env)+2)
	for k, v := range env {
		resolved[k] = v
	}
	resolved["_OPENCODE_KEY"] = opencodeKey(env)
	resolved["_OLLAMA_URL"] = ollamaURL(env)
	return resolved
}

func opencodeKey(env map[string]string) string {
	if key := env["OPENCODE_API_KEY"]; key != "" {
		return key
	}
	return env["OPENCODE_ZEN_API_KEY"]
}

func ollamaURL(env map[string]string) string {
	return strings.TrimRight(env["OLLAMA_BASE_URL"], "/")
}

func modelsAsDocument(models []providerModel) []any {
	out := make([]any, len(models))
	for i, m := range models {
		out[i] = m.asDocument()
	}
	return out
}
