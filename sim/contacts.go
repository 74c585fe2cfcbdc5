package sim

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/contato-sim/contato/components"
)

// contactIndex holds per-context partner pools, rebuilt each month.
// School and workplace pools are per district; the public pool is
// district-agnostic.
type contactIndex struct {
	school [][components.NumKinds][]ecs.Entity
	work   [][components.NumKinds][]ecs.Entity
	public [components.NumKinds][]ecs.Entity
}

// buildContactIndex partitions the live population into the partner
// pools the contact contexts sample from.
func (m *Model) buildContactIndex() *contactIndex {
	idx := &contactIndex{
		school: make([][components.NumKinds][]ecs.Entity, m.registry.Len()),
		work:   make([][components.NumKinds][]ecs.Entity, m.registry.Len()),
	}

	c := m.cfg.Contact
	query := m.agentFilter.Query()
	for query.Next() {
		entity := query.Entity()
		demo, _ := query.Get()

		if demo.Age >= c.SchoolAgeMin && demo.Age < c.SchoolAgeMax {
			idx.school[demo.District][demo.Kind] = append(idx.school[demo.District][demo.Kind], entity)
		}
		if demo.Age >= c.WorkingAgeMin && demo.Age < c.WorkingAgeMax {
			idx.work[demo.District][demo.Kind] = append(idx.work[demo.District][demo.Kind], entity)
		}
		idx.public[demo.Kind] = append(idx.public[demo.Kind], entity)
	}
	return idx
}

// advanceMonth runs one month of contact and influence over the whole
// population. Contexts apply in a fixed order - school, workplace,
// public, media - and each acts on the current, already-updated feature
// values, so effects within a month compose. The order is fixed for
// reproducibility.
func (m *Model) advanceMonth() {
	idx := m.buildContactIndex()
	rates := m.cfg.FeatureRates()
	c := m.cfg.Contact

	query := m.agentFilter.Query()
	for query.Next() {
		demo, ling := query.Get()
		partnerKind := demo.Kind.Opposite()

		// School: Poisson contacts among school-aged agents in district
		if demo.Age >= c.SchoolAgeMin && demo.Age < c.SchoolAgeMax {
			n := m.poisson(c.SchoolInteractions)
			m.applyContacts(ling, idx.school[demo.District][partnerKind], n, partnerKind, rates)
		}

		// Workplace: Poisson contacts among working-aged agents in district
		if demo.Age >= c.WorkingAgeMin && demo.Age < c.WorkingAgeMax {
			n := m.poisson(c.WorkplaceInteractions)
			m.applyContacts(ling, idx.work[demo.District][partnerKind], n, partnerKind, rates)
		}

		// Public: at most one district-agnostic encounter
		if m.rng.Float64() < c.PublicProbability {
			m.applyContacts(ling, idx.public[partnerKind], 1, partnerKind, rates)
		}

		// Media: constant exposure pulling residents toward the
		// broadcast migrant norm, scaled by district reach and the
		// agent's own receptiveness.
		if demo.Kind == components.KindResident {
			strength := m.cfg.Media.Influence * m.registry.Get(demo.District).MediaReach * demo.MediaExposure
			if strength > 0 {
				for f := 0; f < components.NumFeatures; f++ {
					ling.ApplyInfluence(f, m.cfg.Media.NormTarget, strength*rates[f])
				}
			}
		}
	}
}

// applyContacts realizes n encounters with partners drawn uniformly
// from pool. Each encounter is gated by the partner type's reveal
// probability: when the partner's heritage values stay hidden, the
// encounter has no linguistic effect at all.
func (m *Model) applyContacts(ling *components.Linguistic, pool []ecs.Entity, n int, partnerKind components.Kind, rates [components.NumFeatures]float64) {
	if n == 0 || len(pool) == 0 {
		return
	}

	reveal := m.cfg.Influence.MigrantReveal
	if partnerKind == components.KindResident {
		reveal = m.cfg.Influence.ResidentReveal
	}

	for i := 0; i < n; i++ {
		partner := pool[m.rng.IntN(len(pool))]
		if m.rng.Float64() >= reveal {
			continue
		}
		partnerLing := m.lingMap.Get(partner)
		for f := 0; f < components.NumFeatures; f++ {
			ling.ApplyInfluence(f, partnerLing.Features[f], rates[f])
		}
	}
}
