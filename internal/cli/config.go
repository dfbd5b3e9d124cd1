package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/opcpack/pkg/errors"
)

// Config holds the settings read from the config file. Command-line flags
// take precedence over every value here.
type Config struct {
	Verbose bool        `toml:"verbose"`
	Graph   GraphConfig `toml:"graph"`
	Save    SaveConfig  `toml:"save"`
}

// GraphConfig holds defaults for the graph command.
type GraphConfig struct {
	Format          string `toml:"format"`
	Detailed        bool   `toml:"detailed"`
	IncludeExternal bool   `toml:"include_external"`
}

// SaveConfig holds defaults for commands that write packages.
type SaveConfig struct {
	// Format is "zip", "dir" or empty to infer from the destination path.
	Format string `toml:"format"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Graph: GraphConfig{Format: graphDOT},
	}
}

// LoadConfig reads the config file at path, or at the default location if
// path is empty. A missing default file yields [DefaultConfig]; a missing
// explicit file is an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return DefaultConfig(), nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidInput, "unknown config key %q in %s", undecoded[0].String(), path)
	}

	switch cfg.Graph.Format {
	case graphDOT, graphSVG:
	default:
		return cfg, errors.New(errors.ErrCodeInvalidInput, "graph.format must be %s or %s, got %q", graphDOT, graphSVG, cfg.Graph.Format)
	}
	switch cfg.Save.Format {
	case "", formatZip, formatDir:
	default:
		return cfg, errors.New(errors.ErrCodeInvalidInput, "save.format must be %s or %s, got %q", formatZip, formatDir, cfg.Save.Format)
	}
	return cfg, nil
}

// configDir returns the config directory using XDG standard (~/.config/opcpack/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
