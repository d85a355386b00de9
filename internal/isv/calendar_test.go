package isv

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/iems-lab/isv-cli/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestClassify_WetMonthsBeforeNewYear(t *testing.T) {
	for _, m := range []time.Month{time.October, time.November, time.December} {
		ca := Classify(date(2020, m, 15))
		assert.Equal(t, model.PeriodWet, ca.Period, "month %s", m)
		assert.Equal(t, 2020, ca.CycleYear, "month %s", m)
		assert.Equal(t, 2020, ca.CalendarYear, "month %s", m)
	}
}

func TestClassify_WetMonthsAfterNewYear(t *testing.T) {
	for _, m := range []time.Month{time.January, time.February, time.March} {
		ca := Classify(date(2021, m, 15))
		assert.Equal(t, model.PeriodWet, ca.Period, "month %s", m)
		assert.Equal(t, 2020, ca.CycleYear, "month %s", m)
		assert.Equal(t, 2021, ca.CalendarYear, "month %s", m)
	}
}

func TestClassify_DryMonths(t *testing.T) {
	for m := time.April; m <= time.September; m++ {
		ca := Classify(date(2021, m, 1))
		assert.Equal(t, model.PeriodDry, ca.Period, "month %s", m)
		assert.Equal(t, 2021, ca.CycleYear, "month %s", m)
	}
}

func TestClassify_Boundaries(t *testing.T) {
	tests := []struct {
		date      time.Time
		cycleYear int
		period    model.Period
	}{
		{date(2020, time.March, 31), 2019, model.PeriodWet},
		{date(2020, time.April, 1), 2020, model.PeriodDry},
		{date(2020, time.September, 30), 2020, model.PeriodDry},
		{date(2020, time.October, 1), 2020, model.PeriodWet},
		{date(2020, time.December, 31), 2020, model.PeriodWet},
		{date(2021, time.January, 1), 2020, model.PeriodWet},
	}
	for _, tt := range tests {
		ca := Classify(tt.date)
		assert.Equal(t, tt.cycleYear, ca.CycleYear, "date %s", tt.date)
		assert.Equal(t, tt.period, ca.Period, "date %s", tt.date)
	}
}

// Every day of a multi-year span maps to exactly one classification and
// the month/year echoes are consistent with the input.
func TestClassify_Total(t *testing.T) {
	d := date(2018, time.January, 1)
	end := date(2022, time.December, 31)
	for !d.After(end) {
		ca := Classify(d)
		assert.Equal(t, int(d.Month()), ca.Month)
		assert.Equal(t, d.Year(), ca.CalendarYear)
		if ca.Period == model.PeriodDry {
			assert.Equal(t, d.Year(), ca.CycleYear)
			assert.True(t, ca.Month >= 4 && ca.Month <= 9)
		} else {
			assert.True(t, ca.Month <= 3 || ca.Month >= 10)
		}
		d = d.AddDate(0, 0, 1)
	}
}
