package config

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-will/will/pkg/errors"
)

// FileName is the name of the optional project configuration file.
const FileName = "will.yaml"

// Config represents the optional will.yaml configuration.
type Config struct {
	App    AppConfig    `yaml:"app"`
	Engine EngineConfig `yaml:"engine"`
	Log    LogConfig    `yaml:"log"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty"`
	Demo string `yaml:"demo,omitempty"`
}

// EngineConfig contains render engine settings.
type EngineConfig struct {
	RootID     string `yaml:"root_id,omitempty"`
	PruneHooks *bool  `yaml:"prune_hooks,omitempty"`
}

// LogConfig contains file logging settings.
type LogConfig struct {
	Enabled bool   `yaml:"enabled,omitempty"`
	Dir     string `yaml:"dir,omitempty"`
	Level   string `yaml:"level,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root       string
	ModulePath string
	AppName    string
	Demo       string
	RootID     string
	PruneHooks bool
	LogEnabled bool
	LogDir     string
	LogLevel   slog.Level
}

// LoadOptional reads will.yaml from dir if present.
func LoadOptional(dir string) (*Config, error) {
	cfg, err := Load(filepath.Join(dir, FileName))
	if stderrors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	return cfg, err
}

// Load reads the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.New("config.Load", errors.KindConfig,
			fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err))
	}
	return &cfg, nil
}

// Resolve loads will.yaml from dir (if present) and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	return cfg.Resolve(dir)
}

// Resolve fills in defaults for cfg as found in dir and validates the
// result. A go.mod in dir is optional; without one the app name falls back
// to the directory name.
func (cfg *Config) Resolve(dir string) (*Resolved, error) {
	modulePath, _ := modulePath(dir)

	appName := strings.TrimSpace(cfg.App.Name)
	if appName == "" {
		appName = defaultAppName(modulePath, dir)
	}

	rootID := strings.TrimSpace(cfg.Engine.RootID)
	if rootID == "" {
		rootID = DefaultRootID
	}
	if err := validateRootID(rootID); err != nil {
		return nil, errors.New("config.Resolve", errors.KindConfig, err)
	}

	prune := true
	if cfg.Engine.PruneHooks != nil {
		prune = *cfg.Engine.PruneHooks
	}

	level := slog.LevelInfo
	if s := strings.TrimSpace(cfg.Log.Level); s != "" {
		if err := level.UnmarshalText([]byte(s)); err != nil {
			return nil, errors.New("config.Resolve", errors.KindConfig,
				fmt.Errorf("log.level: %w", err))
		}
	}

	return &Resolved{
		Root:       dir,
		ModulePath: modulePath,
		AppName:    appName,
		Demo:       strings.TrimSpace(cfg.App.Demo),
		RootID:     rootID,
		PruneHooks: prune,
		LogEnabled: cfg.Log.Enabled,
		LogDir:     strings.TrimSpace(cfg.Log.Dir),
		LogLevel:   level,
	}, nil
}

// DefaultRootID is the container id used when engine.root_id is unset.
const DefaultRootID = "root"

// FindProjectRoot walks up from the current directory to find will.yaml or
// go.mod. It returns the current directory when neither is found.
func FindProjectRoot() (string, error) {
	start, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for dir := start; ; {
		for _, marker := range []string{FileName, "go.mod"} {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start, nil
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultAppName(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modulePath != "" {
		if modName, _, ok := module.SplitPathVersion(modulePath); ok {
			parts := strings.Split(modName, "/")
			base = parts[len(parts)-1]
		}
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "will_app"
	}
	return base
}

// validateRootID accepts ids made of letters, digits, '-' and '_' that start
// with a letter.
func validateRootID(id string) error {
	for i, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '-' || r == '_'):
		default:
			return fmt.Errorf("engine.root_id contains invalid character %q at %d (%q)", r, i, id)
		}
	}
	return nil
}
