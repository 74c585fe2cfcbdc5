package sim

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/contato-sim/contato/components"
)

// entityOf finds the entity of the single agent of the given kind.
func entityOf(t *testing.T, m *Model, kind components.Kind) ecs.Entity {
	t.Helper()
	var found ecs.Entity
	var ok bool
	query := m.agentFilter.Query()
	for query.Next() {
		demo, _ := query.Get()
		if demo.Kind == kind && !ok {
			found = query.Entity()
			ok = true
		}
	}
	if !ok {
		t.Fatalf("no %s agent found", kind)
	}
	return found
}

func TestApplyContactsFullRateAdoptsPartnerValues(t *testing.T) {
	m := prepared(t)
	m.cfg.Influence.VocabularyRate = 1
	m.cfg.Influence.GrammarRate = 1
	m.cfg.Influence.PronounRate = 1
	m.cfg.Influence.PhoneticRate = 1
	m.cfg.Influence.MigrantReveal = 1

	m.spawnAgent(components.KindResident, 30, 0, uniformFeatures(0.25))
	m.spawnAgent(components.KindMigrant, 30, 0, uniformFeatures(0.75))

	resident := entityOf(t, m, components.KindResident)
	migrant := entityOf(t, m, components.KindMigrant)

	ling := m.lingMap.Get(resident)
	m.applyContacts(ling, []ecs.Entity{migrant}, 3, components.KindMigrant, m.cfg.FeatureRates())

	for f, v := range ling.Features {
		if v != 0.75 {
			t.Errorf("feature %d = %v, want partner value 0.75 at full rate", f, v)
		}
	}
}

func TestApplyContactsZeroRevealHasNoEffect(t *testing.T) {
	m := prepared(t)
	m.cfg.Influence.MigrantReveal = 0

	m.spawnAgent(components.KindResident, 30, 0, uniformFeatures(0.1))
	m.spawnAgent(components.KindMigrant, 30, 0, uniformFeatures(0.9))

	resident := entityOf(t, m, components.KindResident)
	migrant := entityOf(t, m, components.KindMigrant)

	ling := m.lingMap.Get(resident)
	m.applyContacts(ling, []ecs.Entity{migrant}, 50, components.KindMigrant, m.cfg.FeatureRates())

	for f, v := range ling.Features {
		if v != 0.1 {
			t.Errorf("feature %d = %v, want unchanged 0.1 when nothing is revealed", f, v)
		}
	}
}

func TestApplyContactsEmptyPool(t *testing.T) {
	m := prepared(t)
	m.spawnAgent(components.KindResident, 30, 0, uniformFeatures(0.1))
	resident := entityOf(t, m, components.KindResident)

	ling := m.lingMap.Get(resident)
	// Must not panic or consume influence with no partners available
	m.applyContacts(ling, nil, 5, components.KindMigrant, m.cfg.FeatureRates())

	if ling.Features[0] != 0.1 {
		t.Errorf("feature changed with empty partner pool: %v", ling.Features[0])
	}
}

func TestBuildContactIndexPartitions(t *testing.T) {
	m := prepared(t)
	m.spawnAgent(components.KindResident, 10, 0, uniformFeatures(0.1)) // school-aged
	m.spawnAgent(components.KindResident, 30, 0, uniformFeatures(0.1)) // working-aged
	m.spawnAgent(components.KindMigrant, 30, 1, uniformFeatures(0.9))  // other district
	m.spawnAgent(components.KindResident, 80, 0, uniformFeatures(0.1)) // past working age

	idx := m.buildContactIndex()

	if n := len(idx.school[0][components.KindResident]); n != 1 {
		t.Errorf("school pool district 0 = %d residents, want 1", n)
	}
	if n := len(idx.work[0][components.KindResident]); n != 1 {
		t.Errorf("work pool district 0 = %d residents, want 1", n)
	}
	if n := len(idx.work[1][components.KindMigrant]); n != 1 {
		t.Errorf("work pool district 1 = %d migrants, want 1", n)
	}
	if n := len(idx.public[components.KindResident]); n != 3 {
		t.Errorf("public pool = %d residents, want 3 (all ages, all districts)", n)
	}
	if n := len(idx.public[components.KindMigrant]); n != 1 {
		t.Errorf("public pool = %d migrants, want 1", n)
	}
}

func TestNoDiffusionWhenAllChannelsClosed(t *testing.T) {
	cfg := testConfig(t)
	cfg.Influence.ResidentReveal = 0
	cfg.Influence.MigrantReveal = 0
	cfg.Media.Influence = 0
	cfg.Demographics.ResidentBirthRate = 0
	cfg.Demographics.MigrantBirthRate = 0
	cfg.Population.AnnualImmigration = 0
	cfg.Mortality.Base = 0
	cfg.Run.Years = 4

	m := newTestModel(t, cfg)
	series, err := m.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	first := series[0]
	for _, rec := range series[1:] {
		if rec.FeatureMeans(components.KindResident) != first.FeatureMeans(components.KindResident) {
			t.Fatalf("step %d: resident means drifted with all diffusion channels closed:\n%v\n%v",
				rec.Step, rec.FeatureMeans(components.KindResident), first.FeatureMeans(components.KindResident))
		}
		if rec.FeatureMeans(components.KindMigrant) != first.FeatureMeans(components.KindMigrant) {
			t.Fatalf("step %d: migrant means drifted with all diffusion channels closed", rec.Step)
		}
	}
}

func TestMediaOnlyPullsResidentsTowardNorm(t *testing.T) {
	cfg := testConfig(t)
	cfg.Contact.SchoolInteractions = 0
	cfg.Contact.WorkplaceInteractions = 0
	cfg.Contact.PublicProbability = 0
	cfg.Influence.ResidentReveal = 0
	cfg.Influence.MigrantReveal = 0
	cfg.Media.Influence = 1
	cfg.Media.NormTarget = 1
	cfg.Demographics.ResidentBirthRate = 0
	cfg.Demographics.MigrantBirthRate = 0
	cfg.Population.AnnualImmigration = 0
	cfg.Mortality.Base = 0
	cfg.Run.Years = 2

	m := newTestModel(t, cfg)
	series, err := m.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	prev := series[0]
	for _, rec := range series[1:] {
		if rec.ResidentVocabulary <= prev.ResidentVocabulary {
			t.Fatalf("step %d: resident vocabulary %v did not increase under media influence (prev %v)",
				rec.Step, rec.ResidentVocabulary, prev.ResidentVocabulary)
		}
		if rec.MigrantVocabulary != prev.MigrantVocabulary {
			t.Fatalf("step %d: media moved migrant features", rec.Step)
		}
		prev = rec
	}
}
