// Package config loads process-wide settings from the config file in the
// data directory, with environment-variable overrides.
//
// Precedence (highest to lowest):
//  1. Environment variables (SPACED_DEFAULT_RETENTION, ...)
//  2. YAML config file (~/.spaced-rep/config.yaml)
//  3. Defaults
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	koanfyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"
)

// envPrefix namespaces the override variables: SPACED_COMPANY_PREP_MODE etc.
const envPrefix = "SPACED_"

// ErrMissingRetention means default_retention was set nowhere. The scheduler
// cannot pick intervals without a retention target, so startup must fail.
var ErrMissingRetention = errors.New("config: default_retention is required")

// Settings are the recognized options.
type Settings struct {
	DefaultRetention           float64 `koanf:"default_retention" yaml:"default_retention"`
	CompanyPrepMode            bool    `koanf:"company_prep_mode" yaml:"company_prep_mode"`
	CompanyPrepTarget          string  `koanf:"company_prep_target" yaml:"company_prep_target"`
	CompanyPrepRetentionFactor float64 `koanf:"company_prep_retention_factor" yaml:"company_prep_retention_factor"`
	AutoSnapshot               bool    `koanf:"auto_snapshot" yaml:"auto_snapshot"`
}

// Dir returns the data directory (~/.spaced-rep), creating it if needed.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	dir := filepath.Join(home, ".spaced-rep")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create data directory: %w", err)
	}
	return dir, nil
}

// Path returns the config file location inside the data directory.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads settings from the given YAML file (if it exists) and applies
// environment overrides.
func Load(configPath string) (Settings, error) {
	var content []byte
	if configPath != "" {
		b, err := os.ReadFile(configPath)
		if err != nil && !os.IsNotExist(err) {
			return Settings{}, fmt.Errorf("cannot read config file: %w", err)
		}
		content = b
	}
	return parse(content)
}

// parse is the core of Load, split out for tests.
func parse(content []byte) (Settings, error) {
	k := koanf.New(".")

	if len(content) > 0 {
		if err := k.Load(rawbytes.Provider(content), koanfyaml.Parser()); err != nil {
			return Settings{}, fmt.Errorf("cannot parse config file: %w", err)
		}
	}

	// SPACED_DEFAULT_RETENTION -> default_retention
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return Settings{}, fmt.Errorf("cannot read environment: %w", err)
	}

	if !k.Exists("default_retention") {
		return Settings{}, ErrMissingRetention
	}

	s := Settings{CompanyPrepRetentionFactor: 1.0}
	if err := k.Unmarshal("", &s); err != nil {
		return Settings{}, fmt.Errorf("cannot decode config: %w", err)
	}
	if k.Exists("company_prep_retention_factor") && k.Float64("company_prep_retention_factor") == 0 {
		// An explicit zero factor would zero every off-target retention.
		return Settings{}, fmt.Errorf("config: company_prep_retention_factor must be > 0")
	}
	if s.CompanyPrepRetentionFactor == 0 {
		s.CompanyPrepRetentionFactor = 1.0
	}
	if s.DefaultRetention <= 0 || s.DefaultRetention >= 1 {
		return Settings{}, fmt.Errorf("config: default_retention %v out of range (0, 1)", s.DefaultRetention)
	}
	return s, nil
}

// Save writes the settings back to the config file. Used by the prep-mode
// toggle so the mode survives across sessions.
func Save(configPath string, s Settings) error {
	out, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("cannot encode config: %w", err)
	}
	if err := os.WriteFile(configPath, out, 0o644); err != nil {
		return fmt.Errorf("cannot write config file: %w", err)
	}
	return nil
}
