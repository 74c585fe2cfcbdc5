// Package components defines ECS components for simulated agents.
package components

import "math"

// Kind is an agent's population type. It is fixed at creation: a
// resident never becomes a migrant and vice versa.
type Kind uint8

const (
	KindResident Kind = iota
	KindMigrant
)

// NumKinds is the number of population types.
const NumKinds = 2

// String returns the display name for a Kind.
func (k Kind) String() string {
	switch k {
	case KindResident:
		return "resident"
	case KindMigrant:
		return "migrant"
	}
	return "unknown"
}

// Opposite returns the other population type.
func (k Kind) Opposite() Kind {
	if k == KindResident {
		return KindMigrant
	}
	return KindResident
}

// Feature indices into a Linguistic feature vector.
const (
	FeatureVocabulary = iota
	FeatureGrammar
	FeaturePhonetics
	FeaturePronouns

	NumFeatures = 4
)

// FeatureNames returns the display names for all features.
// The order matches the Feature constants.
func FeatureNames() []string {
	return []string{"vocabulary", "grammar", "phonetics", "pronouns"}
}

// Demographics bundles identity, age, and location.
type Demographics struct {
	ID             uint64
	Kind           Kind    // Immutable after creation
	Age            float64 // Years
	District       int     // Registry index, set at creation or on arrival
	YearsInCountry int     // Migrants only; years since arrival
	MediaExposure  float64 // Per-agent media receptiveness, 0..1
}

// AgeBy advances the agent's age by delta years.
func (d *Demographics) AgeBy(delta float64) {
	d.Age += delta
}

// MortalityProbability returns the annual death probability for the
// given age: base * e^(slope*age), clamped to [0,1]. The curve is
// non-decreasing in age for any base >= 0 and slope >= 0.
func MortalityProbability(age, base, slope float64) float64 {
	p := base * math.Exp(slope*age)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
