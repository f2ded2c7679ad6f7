package responsive

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Decompressor modes.
const (
	DecompressorExternal = "external"
	DecompressorBuiltin  = "builtin"
	DecompressorNone     = "none"
)

// EnvConfig holds settings read from the environment.
type EnvConfig struct {
	LogLevel     string `env:"RESPONSIVE_LOG_LEVEL"`
	JSONLog      bool   `env:"RESPONSIVE_JSON_LOG"`
	LogPath      string `env:"RESPONSIVE_LOG_PATH"`
	Decompressor string `env:"RESPONSIVE_DECOMPRESSOR" envDefault:"external"`
	Tool         string `env:"RESPONSIVE_TOOL"`
	ConfigPath   string `env:"RESPONSIVE_CONFIG"`
}

// LoadEnv reads envFiles (missing files are ignored, existing variables win)
// and parses the environment into an EnvConfig.
func LoadEnv(envFiles ...string) (EnvConfig, error) {
	for _, path := range envFiles {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return EnvConfig{}, fmt.Errorf("loading %s: %w", path, err)
		}
	}

	var cfg EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return EnvConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
