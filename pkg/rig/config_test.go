package rig

import (
	"errors"
	"strings"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown projection", func(c *Config) { c.Projection = "isometric" }},
		{"inverted x bounds", func(c *Config) { c.Bounds.MinX = 60 }},
		{"inverted z bounds", func(c *Config) { c.Bounds.MaxZ = -60 }},
		{"inverted angles", func(c *Config) { c.Bounds.MinAngle = 45 }},
		{"near beyond far", func(c *Config) { c.Zoom.Near = 20 }},
		{"starting below near", func(c *Config) { c.Zoom.Starting = 1 }},
		{"starting beyond far", func(c *Config) { c.Zoom.Starting = 40 }},
		{"zero tolerance", func(c *Config) { c.Follow.Tolerance = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error does not wrap ErrInvalidConfig: %v", err)
			}
		})
	}
}

func TestConfigValidateJoinsErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Zoom.Near = 20
	cfg.Bounds.MinAngle = 45

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{"zoom near", "minAngle"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q does not mention %q", msg, want)
		}
	}
}

