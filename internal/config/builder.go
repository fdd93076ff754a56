package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"dario.cat/mergo"
)

type settingsBuilder struct {
	environ map[string]string
	args    []string

	configs []*Settings
	err     error
}

// newSettingsBuilder captures the raw environment slice and command-line
// arguments. This is the single point where ambient process state enters
// the configuration; every later stage works off the captured copies.
func newSettingsBuilder(environ []string, args []string) *settingsBuilder {
	return &settingsBuilder{
		environ: Snapshot(environ),
		args:    args,
		configs: make([]*Settings, 0, 4),
	}
}

func (b *settingsBuilder) build() (*Settings, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building settings: %w", b.err)
	}

	settings := new(Settings)
	for _, cfg := range b.configs {
		if err := mergo.Merge(settings, cfg); err != nil {
			return nil, fmt.Errorf("error merging settings: %w", err)
		}
	}

	// ConfigPath defaults relative to the resolved state directory, so it
	// cannot live in defaultSettings.
	if settings.Paths.ConfigPath == "" {
		settings.Paths.ConfigPath = filepath.Join(settings.Paths.StateDir, "openclaw.json")
	}

	settings.Environ = b.environ

	return settings, settings.validate()
}

func (b *settingsBuilder) withEnv() *settingsBuilder {
	envCfg := &Settings{}
	if err := parseEnv(envCfg, b.environ); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *settingsBuilder) withFlags() *settingsBuilder {
	flags, err := parseFlags(b.args)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, flags)
	return b
}

// withEnvFile layers an optional dotenv file underneath the sources already
// collected. The file path itself is resolved from those earlier sources,
// and dotenv values never shadow variables from the real environment.
func (b *settingsBuilder) withEnvFile() *settingsBuilder {
	var envFilePath string
	for _, cfg := range b.configs {
		if cfg.EnvFile != "" {
			envFilePath = cfg.EnvFile
			break
		}
	}

	if envFilePath == "" {
		return b
	}

	fileCfg, vals, err := parseEnvFile(envFilePath)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	b.configs = append(b.configs, fileCfg)

	// Convention bindings may also come from the dotenv file; fold them
	// into the snapshot the synthesizer will consume.
	for k, v := range vals {
		if _, ok := b.environ[k]; !ok {
			b.environ[k] = v
		}
	}

	return b
}

func (b *settingsBuilder) withDefaults() *settingsBuilder {
	b.configs = append(b.configs, defaultSettings())
	return b
}
