// Package config loads service configuration from a YAML or JSON file with
// environment overrides, composing the per-package config sections.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arossel/planboard/core/normalize"
	"github.com/arossel/planboard/core/openings"
	"github.com/arossel/planboard/core/timeline"
	"github.com/arossel/planboard/infra/metrics"
	"github.com/arossel/planboard/infra/mqtt"
)

type Config struct {
	Pipeline normalize.Config `json:"pipeline"`
	Timeline timeline.Config  `json:"timeline"`
	Openings openings.Config  `json:"openings"`
	Server   ServerConfig     `json:"server"`
	Metrics  metrics.Config   `json:"metrics"`
	MQTT     mqtt.Config      `json:"mqtt"`
	Logging  LoggingConfig    `json:"logging"`
}

// ServerConfig defines the API listen address.
type ServerConfig struct {
	Addr string `json:"addr"`
}

// SetDefaults applies sane defaults.
func (c *ServerConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8052"
	}
}

// Load reads the configuration file, applies PB_ environment overrides, fills
// defaults and validates.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("PB_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "pb_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	if err := cfg.Pipeline.Validate(); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	if err := cfg.Logging.Validate(); err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	return &cfg, nil
}

// Default returns a configuration with every default applied, for callers
// that run without a config file (the analyze CLI).
func Default() *Config {
	var cfg Config
	cfg.setDefaults()
	return &cfg
}

func (c *Config) setDefaults() {
	c.Pipeline.SetDefaults()
	c.Timeline.SetDefaults()
	c.Openings.SetDefaults()
	c.Server.SetDefaults()
	c.Metrics.SetDefaults()
	c.MQTT.SetDefaults()
	c.Logging.SetDefaults()
}
