package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// LinkCfg tunes the address to network link step.
type LinkCfg struct {
	Workers   int     `yaml:"workers" json:"workers"`
	Window    int64   `yaml:"window" json:"window"`
	RadiusDeg float64 `yaml:"radius_deg" json:"radius_deg"`
	TopK      int     `yaml:"top_k" json:"top_k"`
}

// ConflateCfg tunes persistent-store conflation.
type ConflateCfg struct {
	RadiusDeg float64 `yaml:"radius_deg" json:"radius_deg"`
	Generated bool    `yaml:"generated" json:"generated"`
}

// ConsensusCfg tunes provider agreement scoring.
type ConsensusCfg struct {
	ThresholdMeters float64 `yaml:"threshold_meters" json:"threshold_meters"`
	RadiusDeg       float64 `yaml:"radius_deg" json:"radius_deg"`
}

// ContextCfg is the default pipeline context.
type ContextCfg struct {
	Country   string   `yaml:"country" json:"country"`
	Region    string   `yaml:"region" json:"region"`
	Languages []string `yaml:"languages" json:"languages"`
}

// PipelineCfg is the worker configuration file.
type PipelineCfg struct {
	DB        string       `yaml:"db" json:"db"`
	Context   ContextCfg   `yaml:"context" json:"context"`
	Link      LinkCfg      `yaml:"link" json:"link"`
	Conflate  ConflateCfg  `yaml:"conflate" json:"conflate"`
	Consensus ConsensusCfg `yaml:"consensus" json:"consensus"`
}

var C PipelineCfg

// Load reads the pipeline configuration with env overrides.
func Load(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, &C); err != nil {
		return err
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		C.DB = v
	}
	if C.Context.Country == "" {
		C.Context.Country = "US"
	}
	if len(C.Context.Languages) == 0 {
		C.Context.Languages = []string{"en"}
	}
	return nil
}

// RequestTimeout returns the time budget for a single API normalization
// call; the API handlers do not apply it.
func RequestTimeout() time.Duration { return 1500 * time.Millisecond }
