package isv

import (
	"math"

	"github.com/iems-lab/isv-cli/internal/model"
)

// Summarize reduces a partition's qualifying events to the three counts
// the index is built from: event count, longest event, total event-days.
func Summarize(events []model.Event) (nver, dmax, dver int) {
	nver = len(events)
	for _, e := range events {
		dver += e.Length
		if e.Length > dmax {
			dmax = e.Length
		}
	}
	return nver, dmax, dver
}

// Index evaluates the severity formula for one partition:
//
//	ISV = nver + (1 / (1 + (0.0163·dmax²)^2.26))^0.17 − 0.001·dver
//
// The nesting order matters: dmax² and the 2.26 exponent apply before the
// outer 0.17 root. With no qualifying events the middle term is exactly 1,
// so a partition free of dry spells scores 1.0.
func Index(nver, dmax, dver int) float64 {
	d := float64(dmax)
	inner := math.Pow(0.0163*d*d, 2.26)
	return float64(nver) + math.Pow(1/(1+inner), 0.17) - 0.001*float64(dver)
}
