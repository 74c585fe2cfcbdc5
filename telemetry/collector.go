package telemetry

import "github.com/contato-sim/contato/components"

// Collector accumulates demographic events between time series records.
type Collector struct {
	births   [components.NumKinds]int
	deaths   [components.NumKinds]int
	arrivals int
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// RecordBirth records a birth event.
func (c *Collector) RecordBirth(kind components.Kind) {
	c.births[kind]++
}

// RecordDeath records a death event.
func (c *Collector) RecordDeath(kind components.Kind) {
	c.deaths[kind]++
}

// RecordArrival records a new immigrant arrival.
func (c *Collector) RecordArrival() {
	c.arrivals++
}

// Flush writes the accumulated event counts into rec and resets the
// counters for the next window.
func (c *Collector) Flush(rec *Record) {
	rec.ResidentBirths = c.births[components.KindResident]
	rec.MigrantBirths = c.births[components.KindMigrant]
	rec.ResidentDeaths = c.deaths[components.KindResident]
	rec.MigrantDeaths = c.deaths[components.KindMigrant]
	rec.Arrivals = c.arrivals

	c.births = [components.NumKinds]int{}
	c.deaths = [components.NumKinds]int{}
	c.arrivals = 0
}
