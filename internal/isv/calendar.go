package isv

import (
	"time"

	"github.com/iems-lab/isv-cli/internal/model"
)

// Classify places a calendar date in the hydrological calendar. October
// through March form the wet period; because the wet season spans the
// calendar-year boundary, January through March count toward the previous
// year's cycle. April through September are the dry period of their own
// calendar year.
func Classify(date time.Time) model.CycleAssignment {
	month := int(date.Month())
	year := date.Year()

	ca := model.CycleAssignment{
		Month:        month,
		CalendarYear: year,
		CycleYear:    year,
		Period:       model.PeriodDry,
	}

	switch {
	case month <= 3:
		ca.CycleYear = year - 1
		ca.Period = model.PeriodWet
	case month >= 10:
		ca.Period = model.PeriodWet
	}

	return ca
}
