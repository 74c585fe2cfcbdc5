// Package sim implements the simulation model: the agent population,
// the monthly interaction loop, and annual demographic change.
package sim

import (
	"math/rand/v2"
	"sync/atomic"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/contato-sim/contato/components"
	"github.com/contato-sim/contato/config"
	"github.com/contato-sim/contato/districts"
	"github.com/contato-sim/contato/telemetry"
)

// Model owns the agent population and advances it through simulated
// time. It is single-threaded: each monthly step is fully computed
// before the next begins. Stop and Progress are safe to use from other
// goroutines; everything else is not.
type Model struct {
	cfg      *config.Config
	registry *districts.Registry

	world       *ecs.World
	agentMapper *ecs.Map2[components.Demographics, components.Linguistic]
	agentFilter *ecs.Filter2[components.Demographics, components.Linguistic]
	lingMap     *ecs.Map1[components.Linguistic]

	// Single seeded generator threaded through districts, demographics
	// and contacts. All randomness flows through it.
	rng *rand.Rand
	src rand.Source

	collector *telemetry.Collector
	series    []telemetry.Record
	onRecord  func(telemetry.Record)

	nextID uint64
	counts [components.NumKinds]int
	// Live counts per district per kind, kept in step with spawns and
	// removals; used for ethnic settlement weighting.
	districtCounts [][components.NumKinds]int

	progress atomic.Int64
	stop     atomic.Bool
}

// New validates the configuration and builds a model. The configuration
// is rejected as a whole before any simulation work begins.
func New(cfg *config.Config) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	reg, err := districts.NewRegistry(cfg.Districts)
	if err != nil {
		return nil, err
	}
	return &Model{cfg: cfg, registry: reg}, nil
}

// Config returns the configuration snapshot the model runs with.
func (m *Model) Config() *config.Config {
	return m.cfg
}

// Registry returns the district registry.
func (m *Model) Registry() *districts.Registry {
	return m.registry
}

// OnRecord sets a callback invoked for every produced time series
// record, from the simulation goroutine. Must be set before Run.
func (m *Model) OnRecord(fn func(telemetry.Record)) {
	m.onRecord = fn
}

// Progress returns the index of the last completed monthly step.
// Safe to poll from other goroutines while Run executes.
func (m *Model) Progress() int {
	return int(m.progress.Load())
}

// Stop requests cooperative cancellation of the in-flight run. The run
// terminates between monthly steps and returns the partial series.
func (m *Model) Stop() {
	m.stop.Store(true)
}

// reset rebuilds all run state from the configuration. Calling Run
// again replays the identical trajectory for the same seed.
func (m *Model) reset() {
	world := ecs.NewWorld()
	m.world = world
	m.agentMapper = ecs.NewMap2[components.Demographics, components.Linguistic](world)
	m.agentFilter = ecs.NewFilter2[components.Demographics, components.Linguistic](world)
	m.lingMap = ecs.NewMap1[components.Linguistic](world)

	m.src = rand.NewPCG(m.cfg.Run.Seed, m.cfg.Run.Seed^0x9e3779b97f4a7c15)
	m.rng = rand.New(m.src)

	m.collector = telemetry.NewCollector()
	m.series = nil
	m.nextID = 1
	m.counts = [components.NumKinds]int{}
	m.districtCounts = make([][components.NumKinds]int, m.registry.Len())

	m.progress.Store(0)
	m.stop.Store(false)
}

// Run executes years*12 monthly steps and returns the recorded time
// series. The interaction engine runs every month; population dynamics
// run at the start of every 12th step. A cancelled run returns the
// partial series with a nil error; an invariant violation aborts with
// the partial series and an InvariantError.
func (m *Model) Run() ([]telemetry.Record, error) {
	m.reset()
	m.spawnInitialPopulation()

	total := m.cfg.Run.Years * 12
	for step := 1; step <= total; step++ {
		if m.stop.Load() {
			break
		}

		if step%12 == 0 {
			m.advanceYear()
		}
		m.advanceMonth()

		if step%m.cfg.Run.RecordEvery == 0 {
			if err := m.record(step); err != nil {
				return m.series, err
			}
		}
		m.progress.Store(int64(step))
	}

	return m.series, nil
}

// record samples the population into one time series record and runs
// the invariant pass over every agent.
func (m *Model) record(step int) error {
	rec := telemetry.Record{Step: step, Year: float64(step) / 12}

	var values [components.NumKinds][components.NumFeatures][]float64
	var counts [components.NumKinds]int
	var violation *InvariantError

	query := m.agentFilter.Query()
	for query.Next() {
		demo, ling := query.Get()

		if violation == nil && !ling.InBounds() {
			// Must consume the entire query to release the world lock
			violation = &InvariantError{
				Step:     step,
				Quantity: "feature[" + components.FeatureNames()[outOfBoundsFeature(ling)] + "]",
				Value:    ling.Features[outOfBoundsFeature(ling)],
			}
			continue
		}

		counts[demo.Kind]++
		for f := 0; f < components.NumFeatures; f++ {
			values[demo.Kind][f] = append(values[demo.Kind][f], ling.Features[f])
		}
	}
	if violation != nil {
		return violation
	}

	for kind := components.Kind(0); kind < components.NumKinds; kind++ {
		if counts[kind] != m.counts[kind] || m.counts[kind] < 0 {
			return &InvariantError{Step: step, Quantity: kind.String() + "_count", Value: float64(m.counts[kind])}
		}
		var means [components.NumFeatures]float64
		for f := 0; f < components.NumFeatures; f++ {
			means[f] = telemetry.Mean(values[kind][f])
		}
		rec.SetFeatureMeans(kind, means)
	}
	rec.Residents = counts[components.KindResident]
	rec.Migrants = counts[components.KindMigrant]

	m.collector.Flush(&rec)
	m.series = append(m.series, rec)
	if m.onRecord != nil {
		m.onRecord(rec)
	}
	return nil
}

// outOfBoundsFeature returns the index of the first feature outside [0,1].
func outOfBoundsFeature(l *components.Linguistic) int {
	for f, v := range l.Features {
		if !(v >= 0 && v <= 1) {
			return f
		}
	}
	return 0
}

// poisson draws a Poisson-distributed count. Used wherever a fractional
// expected count needs stochastic rounding so small populations are not
// silently biased by truncation.
func (m *Model) poisson(lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	p := distuv.Poisson{Lambda: lambda, Src: m.src}
	return int(p.Rand())
}
