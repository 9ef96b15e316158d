package config

import "sort"

// Presets are named variations of a scenario.
var Presets = map[string]map[string]*Config{
	"rigid-pendulum": {
		"small": {Scenario: "rigid-pendulum", Params: map[string]float64{"angle": 5}},
		"large": {Scenario: "rigid-pendulum", Params: map[string]float64{"angle": 45}},
		"near-top": {
			Scenario: "rigid-pendulum", Dt: 0.001, TMax: 30,
			Params: map[string]float64{"angle": 170},
		},
	},
	"oscillator": {
		"coarse": {Scenario: "oscillator", Dt: 0.1},
		"fine":   {Scenario: "oscillator", Dt: 0.01},
		"stiff":  {Scenario: "oscillator", Dt: 0.01, Params: map[string]float64{"k": 25}},
	},
	"dipole": {
		"euler":    {Scenario: "dipole", Dt: 0.01},
		"midpoint": {Scenario: "dipole", Dt: 0.01, Mode: "midpoint"},
	},
	"brachistochrone-force": {
		"sided":  {Scenario: "brachistochrone-force", Params: map[string]float64{"search": 0}},
		"search": {Scenario: "brachistochrone-force", Params: map[string]float64{"search": 1}},
	},
	"hanging-chain": {
		"loose": {Scenario: "hanging-chain", Params: map[string]float64{"k": 1000}},
		"undamped": {
			Scenario: "hanging-chain", TMax: 5,
			Params: map[string]float64{"friction": 0},
		},
	},
	"earth-orbit": {
		"circular": {Scenario: "earth-orbit", Params: map[string]float64{"planets": 1}},
	},
}

func GetPreset(scenario, preset string) *Config {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	cfg, ok := scenarioPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(scenario string) []string {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenarioPresets))
	for name := range scenarioPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply copies the preset's settings over c, keeping c's output and
// logging settings.
func (c *Config) Apply(p *Config) {
	c.Scenario = p.Scenario
	if p.Dt != 0 {
		c.Dt = p.Dt
	}
	if p.TMax != 0 {
		c.TMax = p.TMax
	}
	if p.Mode != "" {
		c.Mode = p.Mode
	}
	for k, v := range p.Params {
		c.SetParam(k, v)
	}
}
