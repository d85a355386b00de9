package model

import "time"

// Period is the half of the hydrological cycle-year a day belongs to.
type Period string

const (
	// PeriodWet covers October through March: the rainy season, which
	// spans the calendar-year boundary in the Southern Hemisphere.
	PeriodWet Period = "wet"
	// PeriodDry covers April through September.
	PeriodDry Period = "dry"
)

// Reading is one normalized sensor sample for a single depth: the calendar
// date (time-of-day already stripped) and the moisture value. Zero and
// unparseable values never make it into a Reading; they are sensor
// artifacts, not data.
type Reading struct {
	Date     time.Time
	Moisture float64
}

// CycleAssignment places a calendar date in the hydrological calendar.
type CycleAssignment struct {
	Month        int
	CalendarYear int
	CycleYear    int
	Period       Period
}

// DailyRecord is the mean of all valid readings sharing one calendar date,
// tagged with its hydrological classification. A date with no valid
// readings has no DailyRecord at all.
type DailyRecord struct {
	Date time.Time
	Mean float64
	CycleAssignment
}

// Event is a maximal run of consecutive below-threshold daily records
// within one partition.
type Event struct {
	Start  time.Time
	Length int
}
