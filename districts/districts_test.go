package districts

import (
	"math/rand/v2"
	"testing"

	"github.com/contato-sim/contato/config"
)

func testRegistry(t *testing.T, cfgs []config.DistrictConfig) *Registry {
	t.Helper()
	r, err := NewRegistry(cfgs)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return r
}

func TestNewRegistryValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfgs    []config.DistrictConfig
		wantErr bool
	}{
		{"empty catalog", nil, true},
		{"attractiveness above one", []config.DistrictConfig{{ID: 1, Name: "X", Attractiveness: 1.5}}, true},
		{"negative attractiveness", []config.DistrictConfig{{ID: 1, Name: "X", Attractiveness: -0.1}}, true},
		{"media reach above one", []config.DistrictConfig{{ID: 1, Name: "X", Attractiveness: 0.5, MediaReach: 1.2}}, true},
		{"single valid", []config.DistrictConfig{{ID: 1, Name: "X", Attractiveness: 0.5, MediaReach: 0.5}}, false},
		{"boundary weights", []config.DistrictConfig{
			{ID: 1, Name: "A", Attractiveness: 0},
			{ID: 2, Name: "B", Attractiveness: 1, MediaReach: 1},
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.cfgs)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewRegistry() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultCatalog(t *testing.T) {
	r := testRegistry(t, config.DefaultDistricts())
	if r.Len() != 18 {
		t.Fatalf("Len() = %d, want 18", r.Len())
	}
	if r.Get(0).Name != "Lisboa" || !r.Get(0).Urban {
		t.Errorf("first district = %+v, want urban Lisboa", r.Get(0))
	}
}

func TestSampleWeighting(t *testing.T) {
	r := testRegistry(t, []config.DistrictConfig{
		{ID: 1, Name: "heavy", Attractiveness: 0.9},
		{ID: 2, Name: "light", Attractiveness: 0.1},
	})

	rng := rand.New(rand.NewPCG(7, 7))
	counts := [2]int{}
	const draws = 10000
	for i := 0; i < draws; i++ {
		counts[r.Sample(rng)]++
	}

	// Expected 90/10 split; allow generous slack
	if counts[0] < draws*8/10 {
		t.Errorf("heavy district drawn %d of %d, expected about 90%%", counts[0], draws)
	}
	if counts[1] == 0 {
		t.Error("light district never drawn")
	}
}

func TestSampleAllZeroWeightsFallsBackToUniform(t *testing.T) {
	r := testRegistry(t, []config.DistrictConfig{
		{ID: 1, Name: "A", Attractiveness: 0},
		{ID: 2, Name: "B", Attractiveness: 0},
		{ID: 3, Name: "C", Attractiveness: 0},
	})

	rng := rand.New(rand.NewPCG(3, 3))
	seen := map[int]bool{}
	for i := 0; i < 300; i++ {
		idx := r.Sample(rng)
		if idx < 0 || idx >= 3 {
			t.Fatalf("Sample() = %d outside catalog", idx)
		}
		seen[idx] = true
	}
	if len(seen) != 3 {
		t.Errorf("uniform fallback hit %d of 3 districts", len(seen))
	}
}

func TestSampleBy(t *testing.T) {
	r := testRegistry(t, config.DefaultDistricts())
	rng := rand.New(rand.NewPCG(11, 11))

	weights := make([]float64, r.Len())
	if idx := r.SampleBy(weights, rng); idx != -1 {
		t.Errorf("SampleBy with all-zero weights = %d, want -1", idx)
	}

	weights[5] = 3
	for i := 0; i < 100; i++ {
		if idx := r.SampleBy(weights, rng); idx != 5 {
			t.Fatalf("SampleBy with single positive weight = %d, want 5", idx)
		}
	}
}

func TestSampleDeterministic(t *testing.T) {
	r := testRegistry(t, config.DefaultDistricts())

	a := rand.New(rand.NewPCG(42, 42))
	b := rand.New(rand.NewPCG(42, 42))
	for i := 0; i < 1000; i++ {
		if ia, ib := r.Sample(a), r.Sample(b); ia != ib {
			t.Fatalf("draw %d diverged: %d vs %d", i, ia, ib)
		}
	}
}
