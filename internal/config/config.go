package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-cardeditor/internal/logging"
	"github.com/goliatone/go-cardeditor/pkg/model"
)

const (
	// DefaultFileName is the settings file looked up when no path is given.
	DefaultFileName = "cardeditor.yaml"
	// DefaultListen is the address the serve command binds to.
	DefaultListen = "127.0.0.1:8090"
)

// Environment overrides.
const (
	EnvDescriptor   = "CARDEDITOR_DESCRIPTOR"
	EnvEditor       = "CARDEDITOR_EDITOR"
	EnvConfig       = "CARDEDITOR_CONFIG"
	EnvStates       = "CARDEDITOR_STATES"
	EnvListen       = "CARDEDITOR_LISTEN"
	EnvLogLevel     = logging.LogLevelEnvVar
	EnvTheme        = "CARDEDITOR_THEME"
	EnvThemeVariant = "CARDEDITOR_THEME_VARIANT"
)

// ErrNoDescriptor is returned by Validate when no descriptor source is set.
var ErrNoDescriptor = errors.New("config: descriptor path is required")

// Settings is the application configuration.
type Settings struct {
	// Descriptor is a descriptor file or a directory of them.
	Descriptor string `yaml:"descriptor"`
	// Editor selects an editor id from the descriptor store. Empty picks the
	// only editor when the store has exactly one.
	Editor string `yaml:"editor"`
	// Config is the card configuration document to edit.
	Config string `yaml:"config"`
	// States is a Home Assistant states dump used for entity lookups.
	States   string `yaml:"states"`
	Listen   string `yaml:"listen"`
	LogLevel string `yaml:"logLevel"`
	Theme    Theme  `yaml:"theme"`
}

// Theme selects the look of the HTML editor.
type Theme struct {
	Name    string            `yaml:"name"`
	Variant string            `yaml:"variant"`
	CSSVars map[string]string `yaml:"cssVars"`
}

// RendererConfig converts the theme selection for the renderers. It returns
// nil when no theme is configured.
func (t Theme) RendererConfig() *theme.RendererConfig {
	if t.Name == "" && t.Variant == "" && len(t.CSSVars) == 0 {
		return nil
	}
	vars := make(map[string]string, len(t.CSSVars))
	for key, value := range t.CSSVars {
		vars[key] = value
	}
	return &theme.RendererConfig{
		Theme:   t.Name,
		Variant: t.Variant,
		CSSVars: vars,
	}
}

// Default returns the settings used when nothing is configured.
func Default() Settings {
	return Settings{Listen: DefaultListen}
}

// Load reads path (DefaultFileName when empty) over the defaults and applies
// environment overrides.
func Load(path string) (Settings, error) {
	settings := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultFileName
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &settings); err != nil {
			return Settings{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
		logging.Debug("configuration loaded", zap.String("path", path))
	case errors.Is(err, os.ErrNotExist) && !explicit:
		logging.Debug("no configuration file, using defaults", zap.String("path", path))
	default:
		return Settings{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	settings.applyEnv(os.LookupEnv)
	if settings.Listen == "" {
		settings.Listen = DefaultListen
	}
	return settings, nil
}

func (s *Settings) applyEnv(lookup func(string) (string, bool)) {
	set := func(key string, dst *string) {
		if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
			*dst = strings.TrimSpace(value)
		}
	}
	set(EnvDescriptor, &s.Descriptor)
	set(EnvEditor, &s.Editor)
	set(EnvConfig, &s.Config)
	set(EnvStates, &s.States)
	set(EnvListen, &s.Listen)
	set(EnvLogLevel, &s.LogLevel)
	set(EnvTheme, &s.Theme.Name)
	set(EnvThemeVariant, &s.Theme.Variant)
}

// Validate checks the settings needed to open an editor.
func (s Settings) Validate() error {
	if strings.TrimSpace(s.Descriptor) == "" {
		return ErrNoDescriptor
	}
	return nil
}

// LoadCardConfig reads a card configuration document. JSON documents parse
// as YAML. A missing path yields an empty configuration.
func LoadCardConfig(path string) (model.Config, error) {
	if strings.TrimSpace(path) == "" {
		return model.Config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read card config %s: %w", path, err)
	}
	cfg := model.Config{}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse card config %s: %w", path, err)
	}
	if cfg == nil {
		cfg = model.Config{}
	}
	return cfg, nil
}
