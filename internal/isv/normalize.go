package isv

import (
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/iems-lab/isv-cli/internal/model"
)

// dateLayouts are tried in order when parsing the date column. Day-first
// layouts come before month-first ones because the field data uses
// Brazilian date formatting.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02-01-2006",
	time.RFC3339,
}

// excelEpoch is day zero of the 1900 date system used by XLSX serial
// numbers (with the off-by-two for the fictitious 1900 leap day baked in).
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// Normalize extracts one depth column of a raw dataset as a sequence of
// usable readings. Rows whose date cell cannot be parsed are dropped
// without error; moisture cells that are empty, unparseable or exactly
// zero are treated as missing sensor data and contribute no reading.
// Time-of-day is stripped so same-day samples collapse in aggregation.
func Normalize(ds *model.Dataset, dateColumn, depthColumn string) []model.Reading {
	dateIdx := ds.ColumnIndex(dateColumn)
	if dateIdx < 0 && len(ds.Columns) > 0 {
		// Fall back to the leading column, which is the date column by
		// convention in the field spreadsheets.
		dateIdx = 0
	}
	depthIdx := ds.ColumnIndex(depthColumn)
	if dateIdx < 0 || depthIdx < 0 {
		return nil
	}

	readings := make([]model.Reading, 0, len(ds.Rows))
	dropped := 0
	for _, row := range ds.Rows {
		date, ok := parseDate(ds.Cell(row, dateIdx))
		if !ok {
			dropped++
			continue
		}
		moisture, ok := parseMoisture(ds.Cell(row, depthIdx))
		if !ok {
			continue
		}
		readings = append(readings, model.Reading{Date: date, Moisture: moisture})
	}

	if dropped > 0 {
		zap.L().Debug("normalize: dropped rows with unparseable dates",
			zap.String("site", ds.Site),
			zap.String("depth", depthColumn),
			zap.Int("dropped", dropped),
		)
	}

	return readings
}

// parseDate parses a date cell into a calendar date with the time-of-day
// stripped. Textual layouts are tried first, then XLSX serial numbers.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return truncateToDay(t), true
		}
	}

	// Spreadsheet cells sometimes surface as raw serial numbers when the
	// sheet lost its date formatting.
	if serial, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64); err == nil {
		if serial > 0 && serial < 300000 {
			t := excelEpoch.Add(time.Duration(serial * 24 * float64(time.Hour)))
			return truncateToDay(t), true
		}
	}

	return time.Time{}, false
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// parseMoisture parses a moisture cell. Decimal commas are accepted.
// A value of exactly zero is a sensor fault sentinel, not a reading.
func parseMoisture(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	if v == 0 {
		return 0, false
	}
	return v, true
}
