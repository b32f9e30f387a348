package config

import (
	_ "embed"
	"fmt"
)

//go:embed scenarios/solar.gcfg
var solarScenario string

// Solar returns the built-in solar system scenario
func Solar() (*Config, error) {
	cfg, err := Parse(solarScenario)
	if err != nil {
		return nil, fmt.Errorf("built-in scenario: %w", err)
	}
	return cfg, nil
}
