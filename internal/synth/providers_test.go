// SPDX-License-Identifier: Apache-2.0

package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelorc/dokploy-openclaw/internal/document"
)

func TestSynthesize_CustomProvider(t *testing.T) {
	env := map[string]string{"VENICE_API_KEY": "venice-key"}

	doc, err := newTestSynthesizer().Synthesize(baseInputs(env))

	require.NoError(t, err)
	entry, ok := document.GetPath(doc, "models.providers.venice").(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "openai-completions", entry["api"])
	assert.Equal(t, "venice-key", entry["apiKey"])
	assert.Equal(t, "https://api.venice.ai/api/v1", entry["baseUrl"])
	models, ok := entry["models"].([]any)
	require.True(t, ok)
	require.Len(t, models, 1)
}

func TestSynthesize_CustomProviderBaseURLFromEnv(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		env := map[string]string{"MOONSHOT_API_KEY": "ms-key"}

		doc, err := newTestSynthesizer().Synthesize(baseInputs(env))

		require.NoError(t, err)
		assert.Equal(t, "https://api.moonshot.ai/v1",
			document.GetPath(doc, "models.providers.moonshot.baseUrl"))
	})

	t.Run("override with trailing slash trimmed", func(t *testing.T) {
		env := map[string]string{
			"MOONSHOT_API_KEY":  "ms-key",
			"MOONSHOT_BASE_URL": "https://mirror.example/v1/",
		}

		doc, err := newTestSynthesizer().Synthesize(baseInputs(env))

		require.NoError(t, err)
		assert.Equal(t, "https://mirror.example/v1",
			document.GetPath(doc, "models.providers.moonshot.baseUrl"))
	})
}

func TestSynthesize_StaleProviderRemoval(t *testing.T) {
	persisted := document.Document{
		"models": map[string]any{
			"providers": map[string]any{
				"venice":    map[string]any{"api": "openai-completions"},
				"anthropic": map[string]any{"api": "anthropic-messages"},
			},
		},
	}

	t.Run("removed without template", func(t *testing.T) {
		in := baseInputs(nil)
		in.Persisted = persisted

		doc, err := newTestSynthesizer().Synthesize(in)

		require.NoError(t, err)
		assert.Nil(t, document.GetPath(doc, "models.providers.venice"),
			"custom provider without its key is stale")
		assert.Nil(t, document.GetPath(doc, "models.providers.anthropic"),
			"built-in providers never carry explicit entries")
	})

	t.Run("kept with template", func(t *testing.T) {
		in := baseInputs(nil)
		in.Persisted = persisted
		in.Template = document.Document{"fromTemplate": true}

		doc, err := newTestSynthesizer().Synthesize(in)

		require.NoError(t, err)
		assert.NotNil(t, document.GetPath(doc, "models.providers.venice"),
			"template-declared providers are deliberate")
	})
}

func TestSynthesize_Bedrock(t *testing.T) {
	env := map[string]string{
		"AWS_ACCESS_KEY_ID":     "AKIA...",
		"AWS_SECRET_ACCESS_KEY": "secret",
		"AWS_DEFAULT_REGION":    "eu-west-1",
	}

	doc, err := newTestSynthesizer().Synthesize(baseInputs(env))

	require.NoError(t, err)
	assert.Equal(t, "https://bedrock-runtime.eu-west-1.amazonaws.com",
		document.GetPath(doc, "models.providers.amazon-bedrock.baseUrl"))
	assert.Equal(t, true, document.GetPath(doc, "models.bedrockDiscovery.enabled"))
	assert.Equal(t, "eu-west-1", document.GetPath(doc, "models.bedrockDiscovery.region"))
	assert.Equal(t, "anthropic", document.GetPath(doc, "models.bedrockDiscovery.providerFilter"))
}

func TestSynthesize_BedrockRequiresKeyPair(t *testing.T) {
	env := map[string]string{"AWS_ACCESS_KEY_ID": "AKIA..."}

	doc, err := newTestSynthesizer().Synthesize(baseInputs(env))

	require.NoError(t, err)
	assert.Nil(t, document.GetPath(doc, "models.providers.amazon-bedrock"))
}

func TestSynthesize_BedrockStaleDiscoveryRemoved(t *testing.T) {
	in := baseInputs(nil)
	in.Persisted = document.Document{
		"models": map[string]any{
			"bedrockDiscovery": map[string]any{"enabled": true},
		},
	}

	doc, err := newTestSynthesizer().Synthesize(in)

	require.NoError(t, err)
	assert.Nil(t, document.GetPath(doc, "models.bedrockDiscovery"))
}

func TestSynthesize_Ollama(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "bare url", url: "http://ollama:11434", want: "http://ollama:11434/v1"},
		{name: "trailing slash", url: "http://ollama:11434/", want: "http://ollama:11434/v1"},
		{name: "already versioned", url: "http://ollama:11434/v1", want: "http://ollama:11434/v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := map[string]string{"OLLAMA_BASE_URL": tt.url}

			doc, err := newTestSynthesizer().Synthesize(baseInputs(env))

			require.NoError(t, err)
			assert.Equal(t, tt.want, document.GetPath(doc, "models.providers.ollama.baseUrl"))
		})
	}
}

func TestSynthesize_PrimaryModel(t *testing.T) {
	t.Run("explicit override wins", func(t *testing.T) {
		env := map[string]string{
			"OPENCLAW_PRIMARY_MODEL": "custom/model",
			"ANTHROPIC_API_KEY":      "sk-test",
		}

		doc, err := newTestSynthesizer().Synthesize(baseInputs(env))

		require.NoError(t, err)
		assert.Equal(t, "custom/model", document.GetPath(doc, "agents.defaults.model.primary"))
	})

	t.Run("existing config value kept", func(t *testing.T) {
		in := baseInputs(map[string]string{"ANTHROPIC_API_KEY": "sk-test"})
		in.Persisted = document.Document{
			"agents": map[string]any{
				"defaults": map[string]any{
					"model": map[string]any{"primary": "kept/model"},
				},
			},
		}

		doc, err := newTestSynthesizer().Synthesize(in)

		require.NoError(t, err)
		assert.Equal(t, "kept/model", document.GetPath(doc, "agents.defaults.model.primary"))
	})

	t.Run("priority order", func(t *testing.T) {
		env := map[string]string{
			"GROQ_API_KEY":   "gq",
			"OPENAI_API_KEY": "oa",
		}

		doc, err := newTestSynthesizer().Synthesize(baseInputs(env))

		require.NoError(t, err)
		assert.Equal(t, "openai/gpt-5.2", document.GetPath(doc, "agents.defaults.model.primary"),
			"openai outranks groq in the priority table")
	})

	t.Run("pseudo key ollama", func(t *testing.T) {
		env := map[string]string{"OLLAMA_BASE_URL": "http://ollama:11434"}

		doc, err := newTestSynthesizer().Synthesize(baseInputs(env))

		require.NoError(t, err)
		assert.Equal(t, "ollama/llama3.3", document.GetPath(doc, "agents.defaults.model.primary"))
	})

	t.Run("no provider leaves primary unset", func(t *testing.T) {
		doc, err := newTestSynthesizer().Synthesize(baseInputs(nil))

		require.NoError(t, err)
		assert.Nil(t, document.GetPath(doc, "agents.defaults.model.primary"))
	})
}

func TestHasProvider(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want bool
	}{
		{name: "empty", env: nil, want: false},
		{name: "builtin", env: map[string]string{"ANTHROPIC_API_KEY": "sk"}, want: true},
		{name: "custom", env: map[string]string{"KIMI_API_KEY": "k"}, want: true},
		{name: "opencode", env: map[string]string{"OPENCODE_ZEN_API_KEY": "oc"}, want: true},
		{
			name: "aws pair",
			env:  map[string]string{"AWS_ACCESS_KEY_ID": "a", "AWS_SECRET_ACCESS_KEY": "s"},
			want: true,
		},
		{
			name: "aws half pair",
			env:  map[string]string{"AWS_ACCESS_KEY_ID": "a"},
			want: false,
		},
		{name: "ollama", env: map[string]string{"OLLAMA_BASE_URL": "http://o"}, want: true},
		{name: "unrelated vars", env: map[string]string{"PATH": "/usr/bin"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasProvider(tt.env))
		})
	}
}

func TestProviderHint(t *testing.T) {
	hint := ProviderHint()

	assert.Contains(t, hint, "ANTHROPIC_API_KEY")
	assert.Contains(t, hint, "VENICE_API_KEY")
	assert.Contains(t, hint, "OLLAMA_BASE_URL")
}
