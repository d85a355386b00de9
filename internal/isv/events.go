package isv

import "github.com/iems-lab/isv-cli/internal/model"

// boolRun is one maximal stretch of equal below-threshold flags.
type boolRun struct {
	below  bool
	start  int
	length int
}

// encodeRuns run-length-encodes a boolean series: adjacent equal flags
// merge into one run, a flip starts a new run.
func encodeRuns(flags []bool) []boolRun {
	var runs []boolRun
	for i, f := range flags {
		if len(runs) > 0 && runs[len(runs)-1].below == f {
			runs[len(runs)-1].length++
			continue
		}
		runs = append(runs, boolRun{below: f, start: i, length: 1})
	}
	return runs
}

// DetectEvents flags each record of one partition against the threshold,
// run-length-encodes the flags, and keeps the below-threshold runs lasting
// at least minRun days. Records must already be in date order. Runs are
// positional: a calendar gap between adjacent records does not break a
// run, matching the reference behavior.
func DetectEvents(records []model.DailyRecord, threshold float64, minRun int) []model.Event {
	if len(records) == 0 {
		return nil
	}

	flags := make([]bool, len(records))
	for i, rec := range records {
		flags[i] = rec.Mean < threshold
	}

	var events []model.Event
	for _, run := range encodeRuns(flags) {
		if !run.below || run.length < minRun {
			continue
		}
		events = append(events, model.Event{
			Start:  records[run.start].Date,
			Length: run.length,
		})
	}
	return events
}
