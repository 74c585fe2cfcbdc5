package sim

import (
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/contato-sim/contato/components"
	"github.com/contato-sim/contato/config"
)

// spawnAgent creates one agent entity and updates the population
// bookkeeping. Kind and district are fixed here; features must already
// be clamped to [0,1].
func (m *Model) spawnAgent(kind components.Kind, age float64, district int, features [components.NumFeatures]float64) {
	id := m.nextID
	m.nextID++

	demo := components.Demographics{
		ID:            id,
		Kind:          kind,
		Age:           age,
		District:      district,
		MediaExposure: 0.3 + m.rng.Float64()*0.5,
	}
	ling := components.Linguistic{Features: features}

	m.agentMapper.NewEntity(&demo, &ling)
	m.counts[kind]++
	m.districtCounts[district][kind]++
}

// baselineFeatures draws an initial feature vector for the given type:
// low values with jitter for residents, near full heritage expression
// for migrants. Every new migrant cohort arrives at this baseline
// regardless of how far earlier cohorts have assimilated.
func (m *Model) baselineFeatures(kind components.Kind) [components.NumFeatures]float64 {
	var b config.BaselineConfig
	if kind == components.KindResident {
		b = m.cfg.Baselines.Resident
	} else {
		b = m.cfg.Baselines.Migrant
	}

	var features [components.NumFeatures]float64
	for i, r := range b.Ranges() {
		features[i] = r.Min + m.rng.Float64()*(r.Max-r.Min)
	}
	return features
}

// immigrantAge draws a young-adult-biased age for a new arrival.
func (m *Model) immigrantAge() float64 {
	u := distuv.Uniform{
		Min: m.cfg.Demographics.ImmigrantAgeMin,
		Max: m.cfg.Demographics.ImmigrantAgeMax,
		Src: m.src,
	}
	return u.Rand()
}

// residentAge draws an age from a simplified national age profile.
func (m *Model) residentAge() float64 {
	band := m.rng.Float64()
	var lo, hi float64
	switch {
	case band < 0.15:
		lo, hi = 0, 15
	case band < 0.25:
		lo, hi = 15, 25
	case band < 0.45:
		lo, hi = 25, 45
	case band < 0.65:
		lo, hi = 45, 65
	default:
		lo, hi = 65, 90
	}
	return lo + m.rng.Float64()*(hi-lo)
}

// settleDistrict selects a district for a new migrant: a configured
// share settles where a migrant community already exists (weighted by
// community size), the rest by economic attractiveness. Falls back to
// attractiveness when no community exists yet.
func (m *Model) settleDistrict() int {
	if m.rng.Float64() < m.cfg.Settlement.EthnicShare {
		weights := make([]float64, m.registry.Len())
		for i := range weights {
			weights[i] = float64(m.districtCounts[i][components.KindMigrant])
		}
		if idx := m.registry.SampleBy(weights, m.rng); idx >= 0 {
			return idx
		}
	}
	return m.registry.Sample(m.rng)
}

// spawnInitialPopulation creates the founding residents and migrants.
func (m *Model) spawnInitialPopulation() {
	for i := 0; i < m.cfg.Population.InitialResidents; i++ {
		district := m.registry.Sample(m.rng)
		m.spawnAgent(components.KindResident, m.residentAge(), district, m.baselineFeatures(components.KindResident))
	}
	for i := 0; i < m.cfg.Population.InitialMigrants; i++ {
		district := m.settleDistrict()
		m.spawnAgent(components.KindMigrant, m.immigrantAge(), district, m.baselineFeatures(components.KindMigrant))
	}
}
