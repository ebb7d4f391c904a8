package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/danielpatrickdp/rps-oracle/internal/blend"
	"github.com/danielpatrickdp/rps-oracle/internal/engine"
	"github.com/danielpatrickdp/rps-oracle/internal/policy"
)

// #region file

// File is the yaml configuration consumed by the cmds. Zero values
// fall back to the package defaults, so a partial file is fine.
type File struct {
	DBPath string `yaml:"db_path"`

	RealtimeEta float64 `yaml:"realtime_eta"`
	TopK        int     `yaml:"top_experts"`
	DebounceMs  int     `yaml:"save_debounce_ms"`

	Policy struct {
		MinRounds       int     `yaml:"min_rounds"`
		EarlyRounds     int     `yaml:"early_rounds"`
		ConfidenceFloor float64 `yaml:"confidence_floor"`
	} `yaml:"policy"`

	Blend struct {
		RealtimeBoost float64 `yaml:"realtime_boost"`
		HistoryCap    int     `yaml:"history_cap"`
	} `yaml:"blend"`
}

// Default returns the built-in configuration.
func Default() File {
	var f File
	f.DBPath = "rps_oracle.db"
	return f
}

// Load reads a yaml config file. An empty path returns defaults; a
// missing or unreadable file is an error so typos don't silently run
// with defaults.
func Load(path string) (File, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read config: %w", err)
	}
	f := Default()
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse config: %w", err)
	}
	return f, nil
}

// #endregion file

// #region engine-config

// EngineConfig converts the file into an engine.Config, filling
// unset fields from the defaults.
func (f File) EngineConfig() engine.Config {
	cfg := engine.DefaultConfig()
	if f.RealtimeEta > 0 {
		cfg.RealtimeEta = f.RealtimeEta
	}
	if f.TopK > 0 {
		cfg.TopK = f.TopK
	}
	if f.DebounceMs > 0 {
		cfg.Debounce = time.Duration(f.DebounceMs) * time.Millisecond
	}

	pol := policy.DefaultConfig()
	if f.Policy.MinRounds > 0 {
		pol.MinRounds = f.Policy.MinRounds
	}
	if f.Policy.EarlyRounds > 0 {
		pol.EarlyRounds = f.Policy.EarlyRounds
	}
	if f.Policy.ConfidenceFloor > 0 {
		pol.ConfidenceFloor = f.Policy.ConfidenceFloor
	}
	cfg.Policy = pol

	bp := blend.DefaultPolicy()
	if f.Blend.RealtimeBoost > 0 {
		bp.RealtimeBoost = f.Blend.RealtimeBoost
	}
	if f.Blend.HistoryCap > 0 {
		bp.HistoryCap = f.Blend.HistoryCap
	}
	cfg.Blend = bp

	return cfg
}

// #endregion engine-config
