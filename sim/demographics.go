package sim

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/contato-sim/contato/components"
)

// advanceYear applies one year of demographic change: aging, mortality,
// births, and the annual immigration inflow, in that order. A type
// whose count has reached zero produces no further births; immigration
// is the only way the migrant type can reappear.
func (m *Model) advanceYear() {
	m.ageAll()
	m.applyMortality()
	m.applyBirths()
	m.applyImmigration()
}

// ageAll advances every agent by one year.
func (m *Model) ageAll() {
	query := m.agentFilter.Query()
	for query.Next() {
		demo, _ := query.Get()
		demo.AgeBy(1)
		if demo.Kind == components.KindMigrant {
			demo.YearsInCountry++
		}
	}
}

// applyMortality removes each agent independently with its
// age-dependent death probability.
func (m *Model) applyMortality() {
	type doomed struct {
		entity   ecs.Entity
		kind     components.Kind
		district int
	}

	// First pass: collect (query iteration must complete before removal)
	var toRemove []doomed
	query := m.agentFilter.Query()
	for query.Next() {
		demo, _ := query.Get()
		p := components.MortalityProbability(demo.Age, m.cfg.Mortality.Base, m.cfg.Mortality.Slope)
		if m.rng.Float64() < p {
			toRemove = append(toRemove, doomed{entity: query.Entity(), kind: demo.Kind, district: demo.District})
		}
	}

	for _, d := range toRemove {
		m.world.RemoveEntity(d.entity)
		m.counts[d.kind]--
		m.districtCounts[d.district][d.kind]--
		m.collector.RecordDeath(d.kind)
	}
}

// applyBirths draws a Poisson birth count per population type
// proportional to its birth rate and current size. Newborns inherit the
// parent type, age zero, the district of a randomly chosen member of
// that type, and the type's current population-mean feature vector:
// they start at the prevailing norm of their group, not the founder
// values.
func (m *Model) applyBirths() {
	var sums [components.NumKinds][components.NumFeatures]float64
	var memberDistricts [components.NumKinds][]int

	query := m.agentFilter.Query()
	for query.Next() {
		demo, ling := query.Get()
		for f := 0; f < components.NumFeatures; f++ {
			sums[demo.Kind][f] += ling.Features[f]
		}
		memberDistricts[demo.Kind] = append(memberDistricts[demo.Kind], demo.District)
	}

	rates := [components.NumKinds]float64{
		components.KindResident: m.cfg.Demographics.ResidentBirthRate,
		components.KindMigrant:  m.cfg.Demographics.MigrantBirthRate,
	}

	for kind := components.Kind(0); kind < components.NumKinds; kind++ {
		count := len(memberDistricts[kind])
		if count == 0 {
			// Extinct type: terminal, no further births
			continue
		}

		var mean [components.NumFeatures]float64
		for f := 0; f < components.NumFeatures; f++ {
			mean[f] = sums[kind][f] / float64(count)
		}

		births := m.poisson(rates[kind] * float64(count))
		for i := 0; i < births; i++ {
			district := memberDistricts[kind][m.rng.IntN(count)]
			m.spawnAgent(kind, 0, district, mean)
			m.collector.RecordBirth(kind)
		}
	}
}

// applyImmigration creates exactly the configured number of new migrant
// agents, settled via the district registry.
func (m *Model) applyImmigration() {
	for i := 0; i < m.cfg.Population.AnnualImmigration; i++ {
		district := m.settleDistrict()
		m.spawnAgent(components.KindMigrant, m.immigrantAge(), district, m.baselineFeatures(components.KindMigrant))
		m.collector.RecordArrival()
	}
}
