// SPDX-License-Identifier: Apache-2.0

package synth

// The tables in this file are the declarative heart of the synthesizer:
// adding a provider, channel, or field is a table edit, the engine applies
// them generically.

// fieldSpec maps one environment variable to a dot path inside a document
// section.
type fieldSpec struct {
	Env  string
	Path string
	Kind fieldKind
}

// builtinProvider is a provider the gateway detects on its own from the
// environment variable. The synthesizer never writes models.providers
// entries for these, and removes stale ones.
type builtinProvider struct {
	EnvKey string
	Label  string
	Key    string
}

var builtinProviders = []builtinProvider{
	{EnvKey: "ANTHROPIC_API_KEY", Label: "Anthropic", Key: "anthropic"},
	{EnvKey: "OPENAI_API_KEY", Label: "OpenAI", Key: "openai"},
	{EnvKey: "OPENROUTER_API_KEY", Label: "OpenRouter", Key: "openrouter"},
	{EnvKey: "GEMINI_API_KEY", Label: "Google Gemini", Key: "google"},
	{EnvKey: "XAI_API_KEY", Label: "xAI", Key: "xai"},
	{EnvKey: "GROQ_API_KEY", Label: "Groq", Key: "groq"},
	{EnvKey: "MISTRAL_API_KEY", Label: "Mistral", Key: "mistral"},
	{EnvKey: "CEREBRAS_API_KEY", Label: "Cerebras", Key: "cerebras"},
	{EnvKey: "ZAI_API_KEY", Label: "ZAI", Key: "zai"},
	{EnvKey: "AI_GATEWAY_API_KEY", Label: "Vercel AI Gateway", Key: "vercel-ai-gateway"},
	{EnvKey: "COPILOT_GITHUB_TOKEN", Label: "GitHub Copilot", Key: "github-copilot"},
}

// providerModel is one model entry advertised for a custom provider.
type providerModel struct {
	ID            string
	Name          string
	ContextWindow int
}

func (m providerModel) asDocument() map[string]any {
	return map[string]any{
		"id":            m.ID,
		"name":          m.Name,
		"contextWindow": float64(m.ContextWindow),
	}
}

// customProvider needs an explicit models.providers entry because it is not
// in the gateway's built-in catalog. BaseURL is either static or resolved
// from BaseURLEnv with BaseURLDefault as fallback.
type customProvider struct {
	Key            string
	EnvKey         string
	API            string
	BaseURL        string
	BaseURLEnv     string
	BaseURLDefault string
	Models         []providerModel
}

var customProviders = []customProvider{
	{
		Key: "venice", EnvKey: "VENICE_API_KEY", API: "openai-completions",
		BaseURL: "https://api.venice.ai/api/v1",
		Models:  []providerModel{{ID: "llama-3.3-70b", Name: "Llama 3.3 70B", ContextWindow: 128000}},
	},
	{
		Key: "minimax", EnvKey: "MINIMAX_API_KEY", API: "anthropic-messages",
		BaseURL: "https://api.minimax.io/anthropic",
		Models:  []providerModel{{ID: "MiniMax-M2.1", Name: "MiniMax M2.1", ContextWindow: 200000}},
	},
	{
		Key: "moonshot", EnvKey: "MOONSHOT_API_KEY", API: "openai-completions",
		BaseURLEnv: "MOONSHOT_BASE_URL", BaseURLDefault: "https://api.moonshot.ai/v1",
		Models: []providerModel{{ID: "kimi-k2.5", Name: "Kimi K2.5", ContextWindow: 128000}},
	},
	{
		Key: "kimi-coding", EnvKey: "KIMI_API_KEY", API: "anthropic-messages",
		BaseURLEnv: "KIMI_BASE_URL", BaseURLDefault: "https://api.moonshot.ai/anthropic",
		Models: []providerModel{{ID: "k2p5", Name: "Kimi K2P5", ContextWindow: 128000}},
	},
	{
		Key: "synthetic", EnvKey: "SYNTHETIC_API_KEY", API: "anthropic-messages",
		BaseURL: "https://api.synthetic.new/anthropic",
		Models:  []providerModel{{ID: "hf:MiniMaxAI/MiniMax-M2.1", Name: "MiniMax M2.1", ContextWindow: 192000}},
	},
	{
		Key: "xiaomi", EnvKey: "XIAOMI_API_KEY", API: "anthropic-messages",
		BaseURL: "https://api.xiaomimimo.com/anthropic",
		Models:  []providerModel{{ID: "mimo-v2-flash", Name: "MiMo v2 Flash", ContextWindow: 262144}},
	},
}

// Bedrock and Ollama are handled separately (special config structure).

// primaryModelPriority drives automatic primary-model selection: the first
// entry whose variable is set wins. The pseudo keys _OPENCODE_KEY and
// _OLLAMA_URL are resolved before iteration.
type modelPriority struct {
	EnvKey string
	Model  string
}

var primaryModelPriority = []modelPriority{
	{EnvKey: "ANTHROPIC_API_KEY", Model: "anthropic/claude-opus-4-5-20251101"},
	{EnvKey: "OPENAI_API_KEY", Model: "openai/gpt-5.2"},
	{EnvKey: "OPENROUTER_API_KEY", Model: "openrouter/anthropic/claude-opus-4-5"},
	{EnvKey: "GEMINI_API_KEY", Model: "google/gemini-2.5-pro"},
	{EnvKey: "_OPENCODE_KEY", Model: "opencode/claude-opus-4-5"},
	{EnvKey: "COPILOT_GITHUB_TOKEN", Model: "github-copilot/claude-opus-4-5"},
	{EnvKey: "XAI_API_KEY", Model: "xai/grok-3"},
	{EnvKey: "GROQ_API_KEY", Model: "groq/llama-3.3-70b-versatile"},
	{EnvKey: "MISTRAL_API_KEY", Model: "mistral/mistral-large-latest"},
	{EnvKey: "CEREBRAS_API_KEY", Model: "cerebras/llama-3.3-70b"},
	{EnvKey: "VENICE_API_KEY", Model: "venice/llama-3.3-70b"},
	{EnvKey: "MOONSHOT_API_KEY", Model: "moonshot/kimi-k2.5"},
	{EnvKey: "KIMI_API_KEY", Model: "kimi-coding/k2p5"},
	{EnvKey: "MINIMAX_API_KEY", Model: "minimax/MiniMax-M2.1"},
	{EnvKey: "SYNTHETIC_API_KEY", Model: "synthetic/hf:MiniMaxAI/MiniMax-M2.1"},
	{EnvKey: "ZAI_API_KEY", Model: "zai/glm-4.7"},
	{EnvKey: "AI_GATEWAY_API_KEY", Model: "vercel-ai-gateway/anthropic/claude-opus-4.5"},
	{EnvKey: "XIAOMI_API_KEY", Model: "xiaomi/mimo-v2-flash"},
	{EnvKey: "AWS_ACCESS_KEY_ID", Model: "amazon-bedrock/anthropic.claude-opus-4-5-20251101-v1:0"},
	{EnvKey: "_OLLAMA_URL", Model: "ollama/llama3.3"},
}

// channelSpec declares one messaging channel. Gates lists the variables
// that must all be set for the channel to be configured from the
// environment; TokenFields names the document fields the gate values are
// copied into, parallel to Gates. When GateIsBool is set the single gate is
// read as a boolean toggle instead of a secret.
type channelSpec struct {
	Key         string
	Gates       []string
	GateIsBool  bool
	Merge       bool
	TokenFields []string
	Fields      []fieldSpec
}

var channelSpecs = []channelSpec{
	{
		Key:         "telegram",
		Gates:       []string{"TELEGRAM_BOT_TOKEN"},
		Merge:       true,
		TokenFields: []string{"botToken"},
		Fields: []fieldSpec{
			{Env: "TELEGRAM_DM_POLICY", Path: "dmPolicy", Kind: kindString},
			{Env: "TELEGRAM_GROUP_POLICY", Path: "groupPolicy", Kind: kindString},
			{Env: "TELEGRAM_REPLY_TO_MODE", Path: "replyToMode", Kind: kindString},
			{Env: "TELEGRAM_CHUNK_MODE", Path: "chunkMode", Kind: kindString},
			{Env: "TELEGRAM_STREAM_MODE", Path: "streamMode", Kind: kindString},
			{Env: "TELEGRAM_REACTION_NOTIFICATIONS", Path: "reactionNotifications", Kind: kindString},
			{Env: "TELEGRAM_REACTION_LEVEL", Path: "reactionLevel", Kind: kindString},
			{Env: "TELEGRAM_PROXY", Path: "proxy", Kind: kindString},
			{Env: "TELEGRAM_WEBHOOK_URL", Path: "webhookUrl", Kind: kindString},
			{Env: "TELEGRAM_WEBHOOK_SECRET", Path: "webhookSecret", Kind: kindString},
			{Env: "TELEGRAM_WEBHOOK_PATH", Path: "webhookPath", Kind: kindString},
			{Env: "TELEGRAM_MESSAGE_PREFIX", Path: "messagePrefix", Kind: kindString},
			{Env: "TELEGRAM_LINK_PREVIEW", Path: "linkPreview", Kind: kindBoolTrue},
			{Env: "TELEGRAM_ACTIONS_REACTIONS", Path: "actions.reactions", Kind: kindBoolTrue},
			{Env: "TELEGRAM_ACTIONS_STICKER", Path: "actions.sticker", Kind: kindBoolFalse},
			{Env: "TELEGRAM_TEXT_CHUNK_LIMIT", Path: "textChunkLimit", Kind: kindInt},
			{Env: "TELEGRAM_MEDIA_MAX_MB", Path: "mediaMaxMb", Kind: kindInt},
			{Env: "TELEGRAM_ALLOW_FROM", Path: "allowFrom", Kind: kindCSVSmart},
			{Env: "TELEGRAM_GROUP_ALLOW_FROM", Path: "groupAllowFrom", Kind: kindCSVSmart},
			{Env: "TELEGRAM_INLINE_BUTTONS", Path: "capabilities.inlineButtons", Kind: kindString},
		},
	},
	{
		Key:         "discord",
		Gates:       []string{"DISCORD_BOT_TOKEN"},
		Merge:       true,
		TokenFields: []string{"token"},
		Fields: []fieldSpec{
			{Env: "DISCORD_DM_POLICY", Path: "dm.policy", Kind: kindString},
			{Env: "DISCORD_GROUP_POLICY", Path: "groupPolicy", Kind: kindString},
			{Env: "DISCORD_REPLY_TO_MODE", Path: "replyToMode", Kind: kindString},
			{Env: "DISCORD_CHUNK_MODE", Path: "chunkMode", Kind: kindString},
			{Env: "DISCORD_REACTION_NOTIFICATIONS", Path: "reactionNotifications", Kind: kindString},
			{Env: "DISCORD_MESSAGE_PREFIX", Path: "messagePrefix", Kind: kindString},
			{Env: "DISCORD_ALLOW_BOTS", Path: "allowBots", Kind: kindBoolFalse},
			{Env: "DISCORD_ACTIONS_REACTIONS", Path: "actions.reactions", Kind: kindBoolTrue},
			{Env: "DISCORD_ACTIONS_STICKERS", Path: "actions.stickers", Kind: kindBoolTrue},
			{Env: "DISCORD_ACTIONS_EMOJI_UPLOADS", Path: "actions.emojiUploads", Kind: kindBoolTrue},
			{Env: "DISCORD_ACTIONS_STICKER_UPLOADS", Path: "actions.stickerUploads", Kind: kindBoolTrue},
			{Env: "DISCORD_ACTIONS_POLLS", Path: "actions.polls", Kind: kindBoolTrue},
			{Env: "DISCORD_ACTIONS_PERMISSIONS", Path: "actions.permissions", Kind: kindBoolTrue},
			{Env: "DISCORD_ACTIONS_MESSAGES", Path: "actions.messages", Kind: kindBoolTrue},
			{Env: "DISCORD_ACTIONS_THREADS", Path: "actions.threads", Kind: kindBoolTrue},
			{Env: "DISCORD_ACTIONS_PINS", Path: "actions.pins", Kind: kindBoolTrue},
			{Env: "DISCORD_ACTIONS_SEARCH", Path: "actions.search", Kind: kindBoolTrue},
			{Env: "DISCORD_ACTIONS_MEMBER_INFO", Path: "actions.memberInfo", Kind: kindBoolTrue},
			{Env: "DISCORD_ACTIONS_ROLE_INFO", Path: "actions.roleInfo", Kind: kindBoolTrue},
			{Env: "DISCORD_ACTIONS_CHANNEL_INFO", Path: "actions.channelInfo", Kind: kindBoolTrue},
			{Env: "DISCORD_ACTIONS_CHANNELS", Path: "actions.channels", Kind: kindBoolTrue},
			{Env: "DISCORD_ACTIONS_VOICE_STATUS", Path: "actions.voiceStatus", Kind: kindBoolTrue},
			{Env: "DISCORD_ACTIONS_EVENTS", Path: "actions.events", Kind: kindBoolTrue},
			{Env: "DISCORD_ACTIONS_ROLES", Path: "actions.roles", Kind: kindBoolFalse},
			{Env: "DISCORD_ACTIONS_MODERATION", Path: "actions.moderation", Kind: kindBoolFalse},
			{Env: "DISCORD_TEXT_CHUNK_LIMIT", Path: "textChunkLimit", Kind: kindInt},
			{Env: "DISCORD_MAX_LINES_PER_MESSAGE", Path: "maxLinesPerMessage", Kind: kindInt},
			{Env: "DISCORD_MEDIA_MAX_MB", Path: "mediaMaxMb", Kind: kindInt},
			{Env: "DISCORD_HISTORY_LIMIT", Path: "historyLimit", Kind: kindInt},
			{Env: "DISCORD_DM_HISTORY_LIMIT", Path: "dmHistoryLimit", Kind: kindInt},
			{Env: "DISCORD_DM_ALLOW_FROM", Path: "dm.allowFrom", Kind: kindCSV},
		},
	},
	{
		Key:         "slack",
		Gates:       []string{"SLACK_BOT_TOKEN", "SLACK_APP_TOKEN"},
		Merge:       true,
		TokenFields: []string{"botToken", "appToken"},
		Fields: []fieldSpec{
			{Env: "SLACK_USER_TOKEN", Path: "userToken", Kind: kindString},
			{Env: "SLACK_SIGNING_SECRET", Path: "signingSecret", Kind: kindString},
			{Env: "SLACK_MODE", Path: "mode", Kind: kindString},
			{Env: "SLACK_WEBHOOK_PATH", Path: "webhookPath", Kind: kindString},
			{Env: "SLACK_DM_POLICY", Path: "dm.policy", Kind: kindString},
			{Env: "SLACK_GROUP_POLICY", Path: "groupPolicy", Kind: kindString},
			{Env: "SLACK_REPLY_TO_MODE", Path: "replyToMode", Kind: kindString},
			{Env: "SLACK_REACTION_NOTIFICATIONS", Path: "reactionNotifications", Kind: kindString},
			{Env: "SLACK_CHUNK_MODE", Path: "chunkMode", Kind: kindString},
			{Env: "SLACK_MESSAGE_PREFIX", Path: "messagePrefix", Kind: kindString},
			{Env: "SLACK_ALLOW_BOTS", Path: "allowBots", Kind: kindBoolFalse},
			{Env: "SLACK_ACTIONS_REACTIONS", Path: "actions.reactions", Kind: kindBoolTrue},
			{Env: "SLACK_ACTIONS_MESSAGES", Path: "actions.messages", Kind: kindBoolTrue},
			{Env: "SLACK_ACTIONS_PINS", Path: "actions.pins", Kind: kindBoolTrue},
			{Env: "SLACK_ACTIONS_MEMBER_INFO", Path: "actions.memberInfo", Kind: kindBoolTrue},
			{Env: "SLACK_ACTIONS_EMOJI_LIST", Path: "actions.emojiList", Kind: kindBoolTrue},
			{Env: "SLACK_HISTORY_LIMIT", Path: "historyLimit", Kind: kindInt},
			{Env: "SLACK_TEXT_CHUNK_LIMIT", Path: "textChunkLimit", Kind: kindInt},
			{Env: "SLACK_MEDIA_MAX_MB", Path: "mediaMaxMb", Kind: kindInt},
			{Env: "SLACK_DM_ALLOW_FROM", Path: "dm.allowFrom", Kind: kindCSV},
		},
	},
	{
		Key:        "whatsapp",
		Gates:      []string{"WHATSAPP_ENABLED"},
		GateIsBool: true,
		Merge:      false,
		Fields: []fieldSpec{
			{Env: "WHATSAPP_DM_POLICY", Path: "dmPolicy", Kind: kindString},
			{Env: "WHATSAPP_GROUP_POLICY", Path: "groupPolicy", Kind: kindString},
			{Env: "WHATSAPP_MESSAGE_PREFIX", Path: "messagePrefix", Kind: kindString},
			{Env: "WHATSAPP_SELF_CHAT_MODE", Path: "selfChatMode", Kind: kindBoolFalse},
			{Env: "WHATSAPP_SEND_READ_RECEIPTS", Path: "sendReadReceipts", Kind: kindBoolTrue},
			{Env: "WHATSAPP_ACTIONS_REACTIONS", Path: "actions.reactions", Kind: kindBoolTrue},
			{Env: "WHATSAPP_MEDIA_MAX_MB", Path: "mediaMaxMb", Kind: kindInt},
			{Env: "WHATSAPP_HISTORY_LIMIT", Path: "historyLimit", Kind: kindInt},
			{Env: "WHATSAPP_DM_HISTORY_LIMIT", Path: "dmHistoryLimit", Kind: kindInt},
			{Env: "WHATSAPP_ALLOW_FROM", Path: "allowFrom", Kind: kindCSV},
			{Env: "WHATSAPP_GROUP_ALLOW_FROM", Path: "groupAllowFrom", Kind: kindCSV},
			{Env: "WHATSAPP_ACK_REACTION_EMOJI", Path: "ackReaction.emoji", Kind: kindString},
			{Env: "WHATSAPP_ACK_REACTION_DIRECT", Path: "ackReaction.direct", Kind: kindBoolTrue},
			{Env: "WHATSAPP_ACK_REACTION_GROUP", Path: "ackReaction.group", Kind: kindString},
		},
	},
}

var browserFields = []fieldSpec{
	{Env: "BROWSER_CDP_URL", Path: "cdpUrl", Kind: kindString},
	{Env: "BROWSER_EVALUATE_ENABLED", Path: "evaluateEnabled", Kind: kindBoolFalse},
	{Env: "BROWSER_SNAPSHOT_MODE", Path: "snapshotDefaults.mode", Kind: kindString},
	{Env: "BROWSER_REMOTE_TIMEOUT_MS", Path: "remoteCdpTimeoutMs", Kind: kindInt},
	{Env: "BROWSER_REMOTE_HANDSHAKE_TIMEOUT_MS", Path: "remoteCdpHandshakeTimeoutMs", Kind: kindInt},
	{Env: "BROWSER_DEFAULT_PROFILE", Path: "defaultProfile", Kind: kindString},
}

var hooksFields = []fieldSpec{
	{Env: "HOOKS_TOKEN", Path: "token", Kind: kindString},
	{Env: "HOOKS_PATH", Path: "path", Kind: kindString},
}
