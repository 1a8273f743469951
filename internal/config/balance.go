package config

import "github.com/cbosoft/greygoo/internal/trial"

// Balance holds the per-tau base rates before any modifier applies.
type Balance struct {
	InitialMass     float64 `yaml:"initial_mass" env:"INITIAL_MASS"`
	GrowthRate      float64 `yaml:"growth_rate" env:"GROWTH_RATE"`
	DeathRate       float64 `yaml:"death_rate" env:"DEATH_RATE"`
	UneaseGain      float64 `yaml:"unease_gain" env:"UNEASE_GAIN"`
	InspirationGain float64 `yaml:"inspiration_gain" env:"INSPIRATION_GAIN"`
}

// Default returns the default balance configuration
func Default() Balance {
	return Balance{
		InitialMass:     1,
		GrowthRate:      1,
		DeathRate:       1,
		UneaseGain:      0.01,
		InspirationGain: 0.01,
	}
}

// ApplyDefaults fills unset rates. Zero is never a sensible base rate.
func (b *Balance) ApplyDefaults() {
	d := Default()
	if b.InitialMass == 0 {
		b.InitialMass = d.InitialMass
	}
	if b.GrowthRate == 0 {
		b.GrowthRate = d.GrowthRate
	}
	if b.DeathRate == 0 {
		b.DeathRate = d.DeathRate
	}
	if b.UneaseGain == 0 {
		b.UneaseGain = d.UneaseGain
	}
	if b.InspirationGain == 0 {
		b.InspirationGain = d.InspirationGain
	}
}

func (b Balance) Stats() trial.Stats {
	return trial.Stats{
		InitialMass:     b.InitialMass,
		GrowthRate:      b.GrowthRate,
		DeathRate:       b.DeathRate,
		UneaseGain:      b.UneaseGain,
		InspirationGain: b.InspirationGain,
	}
}
