// Package config loads and validates the sectorscan runtime configuration
// from YAML, with struct-tag defaults applied before validation.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/rkotak/sectorscan/internal/gates"
	"github.com/rkotak/sectorscan/internal/scan"
	"github.com/rkotak/sectorscan/internal/scoring"
)

// Config is the root configuration document.
type Config struct {
	Logging LoggingConfig `yaml:"logging" json:"logging"`
	Server  ServerConfig  `yaml:"server" json:"server"`
	Scan    ScanConfig    `yaml:"scan" json:"scan"`
}

// LoggingConfig controls the zerolog output.
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level" default:"info" validate:"oneof=trace debug info warn error"`
	Format string `yaml:"format" json:"format" default:"auto" validate:"oneof=auto json console"`
}

// ServerConfig controls the read-only HTTP surface.
type ServerConfig struct {
	Host         string        `yaml:"host" json:"host" default:"127.0.0.1"`
	Port         int           `yaml:"port" json:"port" default:"8087" validate:"min=1,max=65535"`
	ReadTimeout  time.Duration `yaml:"read_timeout" json:"read_timeout" default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" json:"write_timeout" default:"15s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" json:"idle_timeout" default:"60s"`
}

// UnmarshalYAML decodes duration fields from "10s"-style strings. Fields
// absent from the document keep whatever value they already hold, so
// defaults applied before parsing survive.
func (s *ServerConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Host         string `yaml:"host"`
		Port         int    `yaml:"port"`
		ReadTimeout  string `yaml:"read_timeout"`
		WriteTimeout string `yaml:"write_timeout"`
		IdleTimeout  string `yaml:"idle_timeout"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw.Host != "" {
		s.Host = raw.Host
	}
	if raw.Port != 0 {
		s.Port = raw.Port
	}
	for _, f := range []struct {
		raw string
		dst *time.Duration
	}{
		{raw.ReadTimeout, &s.ReadTimeout},
		{raw.WriteTimeout, &s.WriteTimeout},
		{raw.IdleTimeout, &s.IdleTimeout},
	} {
		if f.raw == "" {
			continue
		}
		d, err := time.ParseDuration(f.raw)
		if err != nil {
			return fmt.Errorf("parse timeout %q: %w", f.raw, err)
		}
		*f.dst = d
	}
	return nil
}

// ScanConfig is the tunable part of the ranking pipeline. Weight maps and
// gate thresholds left empty fall back to the built-in defaults.
type ScanConfig struct {
	TopN             int                `yaml:"top_n" json:"top_n" default:"2" validate:"min=1"`
	LeaderPercentile float64            `yaml:"leader_percentile" json:"leader_percentile" default:"70" validate:"min=0,max=100"`
	MomentumWeights  map[string]float64 `yaml:"momentum_weights" json:"momentum_weights"`
	ReversalWeights  map[string]float64 `yaml:"reversal_weights" json:"reversal_weights"`
	ReversalGate     []GateRule         `yaml:"reversal_gate" json:"reversal_gate" validate:"omitempty,dive"`
	ConfirmRules     []GateRule         `yaml:"confirm_rules" json:"confirm_rules" validate:"omitempty,dive"`
}

// GateRule is the YAML shape of one eligibility rule.
type GateRule struct {
	Indicator  string  `yaml:"indicator" json:"indicator" validate:"required"`
	Comparator string  `yaml:"comparator" json:"comparator" validate:"oneof=below above"`
	Threshold  float64 `yaml:"threshold" json:"threshold"`
}

// Default returns a configuration with every field at its default value.
func Default() *Config {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		panic(fmt.Sprintf("config defaults: %v", err))
	}
	return cfg
}

// Load reads a YAML config file, applies defaults to unset fields, and
// validates the result.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints and that the weight and gate sections
// translate into a usable pipeline configuration.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	if _, err := c.ScanConfig(); err != nil {
		return err
	}
	return nil
}

// ScanConfig translates the document into the analyzer configuration.
// Empty sections yield zero values, which the analyzer replaces with its
// built-in defaults.
func (c *Config) ScanConfig() (scan.Config, error) {
	out := scan.Config{LeaderPercentile: c.Scan.LeaderPercentile}

	if len(c.Scan.MomentumWeights) > 0 {
		w, err := scoring.NewWeightMap(indicatorWeights(c.Scan.MomentumWeights))
		if err != nil {
			return scan.Config{}, fmt.Errorf("momentum weights: %w", err)
		}
		out.MomentumWeights = w
	}
	if len(c.Scan.ReversalWeights) > 0 {
		w, err := scoring.NewWeightMap(indicatorWeights(c.Scan.ReversalWeights))
		if err != nil {
			return scan.Config{}, fmt.Errorf("reversal weights: %w", err)
		}
		out.ReversalWeights = w
	}

	var err error
	if out.ReversalGate, err = gateRules(c.Scan.ReversalGate); err != nil {
		return scan.Config{}, fmt.Errorf("reversal gate: %w", err)
	}
	if out.ConfirmRules, err = gateRules(c.Scan.ConfirmRules); err != nil {
		return scan.Config{}, fmt.Errorf("confirm rules: %w", err)
	}
	return out, nil
}

func indicatorWeights(m map[string]float64) map[scoring.Indicator]float64 {
	out := make(map[scoring.Indicator]float64, len(m))
	for k, v := range m {
		out[scoring.Indicator(k)] = v
	}
	return out
}

func gateRules(rules []GateRule) (gates.RuleSet, error) {
	if len(rules) == 0 {
		return nil, nil
	}
	out := make(gates.RuleSet, 0, len(rules))
	for _, r := range rules {
		var cmp gates.Comparator
		switch r.Comparator {
		case "below":
			cmp = gates.Below
		case "above":
			cmp = gates.Above
		default:
			return nil, fmt.Errorf("unknown comparator %q", r.Comparator)
		}
		out = append(out, gates.Rule{
			Indicator:  scoring.Indicator(r.Indicator),
			Comparator: cmp,
			Threshold:  r.Threshold,
		})
	}
	return out, nil
}
