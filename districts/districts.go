// Package districts provides the immutable geographic district registry
// and weighted settlement sampling.
package districts

import (
	"fmt"
	"math/rand/v2"

	"github.com/contato-sim/contato/config"
)

// District is one geographic unit. Immutable after registry construction.
type District struct {
	ID             int
	Name           string
	Attractiveness float64 // Settlement pull weight, 0..1
	Urban          bool
	MediaReach     float64 // Scales the media channel locally, 0..1
}

// Registry is the fixed catalog of districts. Agents reference entries
// by index; the registry itself is read-only after construction.
type Registry struct {
	districts []District
	cum       []float64 // Cumulative attractiveness for weighted draws
	total     float64
}

// NewRegistry builds a registry from configuration. It fails if the
// catalog is empty or any weight lies outside [0,1].
func NewRegistry(cfgs []config.DistrictConfig) (*Registry, error) {
	if len(cfgs) == 0 {
		return nil, fmt.Errorf("districts: at least one district required")
	}

	r := &Registry{
		districts: make([]District, len(cfgs)),
		cum:       make([]float64, len(cfgs)),
	}
	for i, dc := range cfgs {
		if dc.Attractiveness < 0 || dc.Attractiveness > 1 {
			return nil, fmt.Errorf("districts: %s: attractiveness %v outside [0,1]", dc.Name, dc.Attractiveness)
		}
		if dc.MediaReach < 0 || dc.MediaReach > 1 {
			return nil, fmt.Errorf("districts: %s: media_reach %v outside [0,1]", dc.Name, dc.MediaReach)
		}
		r.districts[i] = District{
			ID:             dc.ID,
			Name:           dc.Name,
			Attractiveness: dc.Attractiveness,
			Urban:          dc.Urban,
			MediaReach:     dc.MediaReach,
		}
		r.total += dc.Attractiveness
		r.cum[i] = r.total
	}
	return r, nil
}

// Len returns the number of districts.
func (r *Registry) Len() int {
	return len(r.districts)
}

// Get returns the district at the given index.
func (r *Registry) Get(i int) District {
	return r.districts[i]
}

// Sample draws a district index weighted by attractiveness. When every
// weight is zero it falls back to a uniform draw. Draws are independent;
// the registry holds no sampling state.
func (r *Registry) Sample(rng *rand.Rand) int {
	if r.total <= 0 {
		return rng.IntN(len(r.districts))
	}
	return searchCum(r.cum, rng.Float64()*r.total)
}

// SampleBy draws a district index weighted by the caller's weights,
// one per district. Returns -1 when all weights are zero.
func (r *Registry) SampleBy(weights []float64, rng *rand.Rand) int {
	var total float64
	cum := make([]float64, len(weights))
	for i, w := range weights {
		total += w
		cum[i] = total
	}
	if total <= 0 {
		return -1
	}
	return searchCum(cum, rng.Float64()*total)
}

// searchCum returns the first index whose cumulative weight exceeds x.
func searchCum(cum []float64, x float64) int {
	lo, hi := 0, len(cum)
	for lo < hi {
		mid := (lo + hi) / 2
		if cum[mid] <= x {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo >= len(cum) {
		lo = len(cum) - 1
	}
	return lo
}
