package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/stat"

	"github.com/contato-sim/contato/components"
)

// Record is one time series entry, produced at most once per simulated
// month. Records are append-only and read-only once produced; they are
// the only output the UI/export collaborators consume.
type Record struct {
	Step int     `csv:"step"`
	Year float64 `csv:"year"`

	// Population counts at record time
	Residents int `csv:"residents"`
	Migrants  int `csv:"migrants"`

	// Per-population feature means
	ResidentVocabulary float64 `csv:"resident_vocabulary"`
	ResidentGrammar    float64 `csv:"resident_grammar"`
	ResidentPhonetics  float64 `csv:"resident_phonetics"`
	ResidentPronouns   float64 `csv:"resident_pronouns"`
	MigrantVocabulary  float64 `csv:"migrant_vocabulary"`
	MigrantGrammar     float64 `csv:"migrant_grammar"`
	MigrantPhonetics   float64 `csv:"migrant_phonetics"`
	MigrantPronouns    float64 `csv:"migrant_pronouns"`

	// Demographic events since the previous record
	ResidentBirths int `csv:"resident_births"`
	MigrantBirths  int `csv:"migrant_births"`
	ResidentDeaths int `csv:"resident_deaths"`
	MigrantDeaths  int `csv:"migrant_deaths"`
	Arrivals       int `csv:"arrivals"`
}

// SetFeatureMeans fills the mean columns for one population type.
// The means array is indexed by the components feature constants.
func (r *Record) SetFeatureMeans(kind components.Kind, means [components.NumFeatures]float64) {
	if kind == components.KindResident {
		r.ResidentVocabulary = means[components.FeatureVocabulary]
		r.ResidentGrammar = means[components.FeatureGrammar]
		r.ResidentPhonetics = means[components.FeaturePhonetics]
		r.ResidentPronouns = means[components.FeaturePronouns]
	} else {
		r.MigrantVocabulary = means[components.FeatureVocabulary]
		r.MigrantGrammar = means[components.FeatureGrammar]
		r.MigrantPhonetics = means[components.FeaturePhonetics]
		r.MigrantPronouns = means[components.FeaturePronouns]
	}
}

// FeatureMeans returns the mean columns for one population type.
func (r *Record) FeatureMeans(kind components.Kind) [components.NumFeatures]float64 {
	if kind == components.KindResident {
		return [components.NumFeatures]float64{
			r.ResidentVocabulary, r.ResidentGrammar, r.ResidentPhonetics, r.ResidentPronouns,
		}
	}
	return [components.NumFeatures]float64{
		r.MigrantVocabulary, r.MigrantGrammar, r.MigrantPhonetics, r.MigrantPronouns,
	}
}

// Count returns the population count column for one type.
func (r *Record) Count(kind components.Kind) int {
	if kind == components.KindResident {
		return r.Residents
	}
	return r.Migrants
}

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
// An extinct population type reports zero means rather than NaN.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// LogValue implements slog.LogValuer for structured logging.
func (r Record) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("step", r.Step),
		slog.Float64("year", r.Year),
		slog.Int("residents", r.Residents),
		slog.Int("migrants", r.Migrants),
		slog.Float64("resident_vocabulary", r.ResidentVocabulary),
		slog.Float64("resident_grammar", r.ResidentGrammar),
		slog.Float64("resident_phonetics", r.ResidentPhonetics),
		slog.Float64("resident_pronouns", r.ResidentPronouns),
		slog.Float64("migrant_vocabulary", r.MigrantVocabulary),
		slog.Float64("migrant_grammar", r.MigrantGrammar),
		slog.Float64("migrant_phonetics", r.MigrantPhonetics),
		slog.Float64("migrant_pronouns", r.MigrantPronouns),
		slog.Int("resident_births", r.ResidentBirths),
		slog.Int("migrant_births", r.MigrantBirths),
		slog.Int("resident_deaths", r.ResidentDeaths),
		slog.Int("migrant_deaths", r.MigrantDeaths),
		slog.Int("arrivals", r.Arrivals),
	)
}
