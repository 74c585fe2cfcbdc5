package components

// Linguistic holds the four feature intensities, each in [0,1].
// A value measures the degree of migrant-variant expression: residents
// start near 0, migrants near 1.
type Linguistic struct {
	Features [NumFeatures]float64
}

// ApplyInfluence moves one feature a fraction rate of the distance
// toward target and clamps the result to [0,1]. This is the single
// channel through which all diffusion happens; contexts differ only in
// the rate and target they supply.
func (l *Linguistic) ApplyInfluence(feature int, target, rate float64) {
	v := l.Features[feature]
	v += rate * (target - v)
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	l.Features[feature] = v
}

// InBounds reports whether every feature lies in [0,1]. NaN fails the
// check. Used by the run-time invariant pass.
func (l *Linguistic) InBounds() bool {
	for _, v := range l.Features {
		if !(v >= 0 && v <= 1) {
			return false
		}
	}
	return true
}
