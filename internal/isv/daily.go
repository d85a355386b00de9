package isv

import (
	"sort"
	"time"

	"github.com/iems-lab/isv-cli/internal/model"
)

// AggregateDaily collapses readings into one record per calendar date by
// arithmetic mean, classifies each record into its cycle-year and period,
// and returns the records in chronological order. Dates with no readings
// simply have no record; absence is not represented as zero.
func AggregateDaily(readings []model.Reading) []model.DailyRecord {
	type acc struct {
		sum   float64
		count int
	}
	byDate := make(map[time.Time]*acc, len(readings))
	for _, r := range readings {
		a, ok := byDate[r.Date]
		if !ok {
			a = &acc{}
			byDate[r.Date] = a
		}
		a.sum += r.Moisture
		a.count++
	}

	records := make([]model.DailyRecord, 0, len(byDate))
	for date, a := range byDate {
		records = append(records, model.DailyRecord{
			Date:            date,
			Mean:            a.sum / float64(a.count),
			CycleAssignment: Classify(date),
		})
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})

	return records
}
