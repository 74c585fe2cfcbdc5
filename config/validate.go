package config

import (
	"errors"
	"fmt"
)

// ValidationError reports a configuration parameter outside its declared range.
type ValidationError struct {
	Param  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s %s", e.Param, e.Reason)
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func paramErr(param, reason string) error {
	return &ValidationError{Param: param, Reason: reason}
}

// Validate checks every parameter against its declared range.
// It returns the first violation found; a nil return means the full
// snapshot is usable and no partial application can occur.
func (c *Config) Validate() error {
	if c.Population.InitialResidents <= 0 {
		return paramErr("population.initial_residents", "must be > 0")
	}
	if c.Population.InitialMigrants <= 0 {
		return paramErr("population.initial_migrants", "must be > 0")
	}
	if c.Population.AnnualImmigration < 0 {
		return paramErr("population.annual_immigration", "must be >= 0")
	}

	unit := []struct {
		name  string
		value float64
	}{
		{"demographics.resident_birth_rate", c.Demographics.ResidentBirthRate},
		{"demographics.migrant_birth_rate", c.Demographics.MigrantBirthRate},
		{"contact.public_probability", c.Contact.PublicProbability},
		{"influence.vocabulary_rate", c.Influence.VocabularyRate},
		{"influence.grammar_rate", c.Influence.GrammarRate},
		{"influence.pronoun_rate", c.Influence.PronounRate},
		{"influence.phonetic_rate", c.Influence.PhoneticRate},
		{"influence.resident_reveal_probability", c.Influence.ResidentReveal},
		{"influence.migrant_reveal_probability", c.Influence.MigrantReveal},
		{"media.influence", c.Media.Influence},
		{"media.norm_target", c.Media.NormTarget},
		{"settlement.ethnic_share", c.Settlement.EthnicShare},
	}
	for _, p := range unit {
		if p.value < 0 || p.value > 1 {
			return paramErr(p.name, "must be in [0,1]")
		}
	}

	if c.Contact.SchoolInteractions < 0 {
		return paramErr("contact.school_interactions", "must be >= 0")
	}
	if c.Contact.WorkplaceInteractions < 0 {
		return paramErr("contact.workplace_interactions", "must be >= 0")
	}
	if c.Contact.SchoolAgeMin < 0 || c.Contact.SchoolAgeMax <= c.Contact.SchoolAgeMin {
		return paramErr("contact.school_age", "window must be non-empty and non-negative")
	}
	if c.Contact.WorkingAgeMin < 0 || c.Contact.WorkingAgeMax <= c.Contact.WorkingAgeMin {
		return paramErr("contact.working_age", "window must be non-empty and non-negative")
	}

	if c.Demographics.ImmigrantAgeMin < 0 || c.Demographics.ImmigrantAgeMax <= c.Demographics.ImmigrantAgeMin {
		return paramErr("demographics.immigrant_age", "window must be non-empty and non-negative")
	}

	if c.Mortality.Base < 0 || c.Mortality.Base > 1 {
		return paramErr("mortality.base", "must be in [0,1]")
	}
	if c.Mortality.Slope < 0 {
		return paramErr("mortality.slope", "must be >= 0")
	}

	for _, b := range []struct {
		name string
		cfg  BaselineConfig
	}{
		{"baselines.resident", c.Baselines.Resident},
		{"baselines.migrant", c.Baselines.Migrant},
	} {
		for i, r := range b.cfg.Ranges() {
			if r.Min < 0 || r.Max > 1 || r.Max < r.Min {
				return paramErr(b.name, fmt.Sprintf("feature %d window must satisfy 0 <= min <= max <= 1", i))
			}
		}
	}

	if c.Run.Years <= 0 {
		return paramErr("run.years", "must be > 0")
	}
	if c.Run.RecordEvery < 1 {
		return paramErr("run.record_every", "must be >= 1")
	}

	if len(c.Districts) == 0 {
		return paramErr("districts", "at least one district required")
	}
	seen := make(map[int]bool, len(c.Districts))
	for _, d := range c.Districts {
		if d.Attractiveness < 0 || d.Attractiveness > 1 {
			return paramErr("districts", fmt.Sprintf("%s: attractiveness must be in [0,1]", d.Name))
		}
		if d.MediaReach < 0 || d.MediaReach > 1 {
			return paramErr("districts", fmt.Sprintf("%s: media_reach must be in [0,1]", d.Name))
		}
		if seen[d.ID] {
			return paramErr("districts", fmt.Sprintf("duplicate id %d", d.ID))
		}
		seen[d.ID] = true
	}

	return nil
}
