package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// parseEnvFile reads a dotenv file and returns both a *Settings populated
// from its values and the raw name → value map, so convention bindings
// declared in the file can be folded into the environment snapshot.
//
// A missing file is not an error: dokploy deployments usually pass all
// variables directly and the env-file layer is opt-in convenience.
func parseEnvFile(path string) (*Settings, map[string]string, error) {
	vals, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Settings{}, nil, nil
		}
		return nil, nil, fmt.Errorf("error reading env file %s: %w", path, err)
	}

	cfg := &Settings{}
	if err := parseEnv(cfg, vals); err != nil {
		return nil, nil, fmt.Errorf("error parsing env file %s: %w", path, err)
	}

	return cfg, vals, nil
}
