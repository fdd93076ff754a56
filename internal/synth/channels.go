// SPDX-License-Identifier: Apache-2.0

package synth

import (
	"fmt"

	"github.com/angelorc/dokploy-openclaw/internal/document"
)

// applyChannels configures every messaging channel whose gate is open. A
// multi-variable gate requires all variables; a boolean gate reads its
// single variable as a toggle; otherwise the gate is open when the variable
// is set and non-empty.
func (s *Synthesizer) applyChannels(doc document.Document, env map[string]string) error {
	for _, ch := range channelSpecs {
		if !gateOpen(ch, env) {
			if document.GetPath(doc, "channels."+ch.Key) != nil {
				s.log.Debug().Str("channel", ch.Key).Msg("channel configured from template")
			}
			continue
		}

		s.log.Info().Str("channel", ch.Key).Msg("configuring channel from env")
		channels := document.Ensure(doc, "channels")

		var channel map[string]any
		if existing, ok := channels[ch.Key].(map[string]any); ok && ch.Merge {
			channel = existing
		} else {
			channel = map[string]any{}
			channels[ch.Key] = channel
		}

		channel["enabled"] = true

		for i, field := range ch.TokenFields {
			channel[field] = env[ch.Gates[i]]
		}

		if err := s.applyFields(channel, env, ch.Fields); err != nil {
			return fmt.Errorf("channel %s: %w", ch.Key, err)
		}
	}

	// An empty channels object carries no information; drop it.
	if channels, ok := doc["channels"].(map[string]any); ok && len(channels) == 0 {
		delete(doc, "channels")
	}

	return nil
}

func gateOpen(ch channelSpec, env map[string]string) bool {
	if ch.GateIsBool {
		return boolToggle(env[ch.Gates[0]])
	}
	for _, gate := range ch.Gates {
		if env[gate] == "" {
			return false
		}
	}
	return true
}
