// Package config provides configuration loading and validation for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation parameters.
type Config struct {
	Population   PopulationConfig   `yaml:"population"`
	Demographics DemographicsConfig `yaml:"demographics"`
	Mortality    MortalityConfig    `yaml:"mortality"`
	Contact      ContactConfig      `yaml:"contact"`
	Influence    InfluenceConfig    `yaml:"influence"`
	Media        MediaConfig        `yaml:"media"`
	Settlement   SettlementConfig   `yaml:"settlement"`
	Baselines    BaselinesConfig    `yaml:"baselines"`
	Run          RunConfig          `yaml:"run"`
	Districts    []DistrictConfig   `yaml:"districts"`
}

// PopulationConfig holds initial population sizes and the yearly inflow.
type PopulationConfig struct {
	InitialResidents  int `yaml:"initial_residents"`
	InitialMigrants   int `yaml:"initial_migrants"`
	AnnualImmigration int `yaml:"annual_immigration"`
}

// DemographicsConfig holds birth rates and the immigrant age window.
type DemographicsConfig struct {
	ResidentBirthRate float64 `yaml:"resident_birth_rate"` // Expected births per resident per year
	MigrantBirthRate  float64 `yaml:"migrant_birth_rate"`
	ImmigrantAgeMin   float64 `yaml:"immigrant_age_min"` // New arrivals draw age uniformly from this window
	ImmigrantAgeMax   float64 `yaml:"immigrant_age_max"`
}

// MortalityConfig parameterizes the age-dependent death curve
// p(age) = base * e^(slope*age), clamped to 1.
type MortalityConfig struct {
	Base  float64 `yaml:"base"`
	Slope float64 `yaml:"slope"`
}

// ContactConfig holds per-context encounter intensities.
type ContactConfig struct {
	SchoolInteractions    float64 `yaml:"school_interactions"`    // Poisson mean per school-aged agent per month
	WorkplaceInteractions float64 `yaml:"workplace_interactions"` // Poisson mean per working-aged agent per month
	PublicProbability     float64 `yaml:"public_probability"`     // Chance of one public encounter per agent per month
	SchoolAgeMin          float64 `yaml:"school_age_min"`
	SchoolAgeMax          float64 `yaml:"school_age_max"`
	WorkingAgeMin         float64 `yaml:"working_age_min"`
	WorkingAgeMax         float64 `yaml:"working_age_max"`
}

// InfluenceConfig holds per-feature influence rates and reveal probabilities.
// Rates order features by resistance to change: vocabulary shifts easiest,
// phonetics hardest.
type InfluenceConfig struct {
	VocabularyRate float64 `yaml:"vocabulary_rate"`
	GrammarRate    float64 `yaml:"grammar_rate"`
	PronounRate    float64 `yaml:"pronoun_rate"`
	PhoneticRate   float64 `yaml:"phonetic_rate"`

	ResidentReveal float64 `yaml:"resident_reveal_probability"` // Chance a resident's heritage values are exposed in an encounter
	MigrantReveal  float64 `yaml:"migrant_reveal_probability"`
}

// MediaConfig holds the broadcast influence channel parameters.
type MediaConfig struct {
	Influence  float64 `yaml:"influence"`   // Monthly media strength applied to residents
	NormTarget float64 `yaml:"norm_target"` // Feature value broadcast media pulls residents toward
}

// SettlementConfig holds district selection parameters for new arrivals.
type SettlementConfig struct {
	// Share of arrivals that settle where a migrant community already
	// exists, weighted by community size. The rest settle weighted by
	// economic attractiveness.
	EthnicShare float64 `yaml:"ethnic_share"`
}

// FeatureRange is a [min, max] window for an initial feature draw.
type FeatureRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// BaselineConfig holds the initial feature windows for one population type.
type BaselineConfig struct {
	Vocabulary FeatureRange `yaml:"vocabulary"`
	Grammar    FeatureRange `yaml:"grammar"`
	Phonetics  FeatureRange `yaml:"phonetics"`
	Pronouns   FeatureRange `yaml:"pronouns"`
}

// Ranges returns the windows indexed by feature.
// Order matches components.FeatureVocabulary..FeaturePronouns.
func (b BaselineConfig) Ranges() [4]FeatureRange {
	return [4]FeatureRange{b.Vocabulary, b.Grammar, b.Phonetics, b.Pronouns}
}

// BaselinesConfig holds initial feature windows for both population types.
type BaselinesConfig struct {
	Resident BaselineConfig `yaml:"resident"`
	Migrant  BaselineConfig `yaml:"migrant"`
}

// RunConfig holds clock and reproducibility settings.
type RunConfig struct {
	Years       int    `yaml:"years"`
	Seed        uint64 `yaml:"seed"`
	RecordEvery int    `yaml:"record_every"` // Months between time series records
}

// DistrictConfig describes one geographic district.
type DistrictConfig struct {
	ID             int     `yaml:"id"`
	Name           string  `yaml:"name"`
	Attractiveness float64 `yaml:"attractiveness"` // Economic pull weight for settlement, 0..1
	Urban          bool    `yaml:"urban"`
	MediaReach     float64 `yaml:"media_reach"` // Scales the media channel in this district, 0..1
}

// FeatureRates returns the influence rates indexed by feature.
func (c *Config) FeatureRates() [4]float64 {
	return [4]float64{
		c.Influence.VocabularyRate,
		c.Influence.GrammarRate,
		c.Influence.PhoneticRate,
		c.Influence.PronounRate,
	}
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyDefaults()

	return cfg, nil
}

// applyDefaults fills values the YAML layer leaves at zero.
func (c *Config) applyDefaults() {
	if c.Run.RecordEvery == 0 {
		c.Run.RecordEvery = 1
	}
	if c.Run.Seed == 0 {
		c.Run.Seed = 42
	}
	if len(c.Districts) == 0 {
		c.Districts = DefaultDistricts()
	}
	for i := range c.Districts {
		d := &c.Districts[i]
		if d.MediaReach == 0 {
			if d.Urban {
				d.MediaReach = 0.85
			} else {
				d.MediaReach = 0.45
			}
		}
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
