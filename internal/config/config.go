// Package config loads rig tuning from YAML or TOML files with environment
// overrides on top.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/philipparndt/gocam/pkg/rig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override, e.g. GOCAM_ZOOM_FAR
const EnvPrefix = "GOCAM_"

// ErrUnsupportedFormat is returned for files that are neither YAML nor TOML
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Format is a config file encoding
type Format string

const (
	YAML Format = "yaml"
	TOML Format = "toml"
)

// FormatFromPath derives the format from the file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Load returns the default tuning overlaid with the file at path (if path is not
// empty) and then with environment overrides. The result is validated.
func Load(path string) (rig.Config, error) {
	cfg := rig.DefaultConfig()

	if path != "" {
		format, err := FormatFromPath(path)
		if err != nil {
			return cfg, err
		}
		f, err := os.Open(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to open config: %w", err)
		}
		defer f.Close()

		if err := Decode(f, format, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Decode reads r into cfg. Fields absent from the input keep their current value.
func Decode(r io.Reader, format Format, cfg *rig.Config) error {
	switch format {
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	case TOML:
		md, err := toml.NewDecoder(r).Decode(cfg)
		if err != nil {
			return err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("unknown keys: %v", undecoded)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Encode writes cfg to w
func Encode(w io.Writer, format Format, cfg rig.Config) error {
	switch format {
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	case TOML:
		return toml.NewEncoder(w).Encode(cfg)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// ApplyEnv overlays GOCAM_* environment variables onto cfg
func ApplyEnv(cfg *rig.Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
