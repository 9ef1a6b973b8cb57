package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Spreadsheet serial dates count days from 1899-12-30. The offset bakes in
// the historical Lotus leap-year bug, so no special casing is needed here.
var serialEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// SerialToDate converts a raw date-serial cell into a UTC calendar date.
// Returns nil for empty or non-numeric input.
func SerialToDate(cell string) *time.Time {
	v, ok := parseNumeric(cell)
	if !ok {
		return nil
	}
	d := serialEpoch.AddDate(0, 0, int(math.Floor(v)))
	return &d
}

// SerialToClock converts a raw time cell (fraction of a 24-hour day, with or
// without a whole-day part) into a zero-padded HH:MM:SS string. Returns nil
// for empty or non-numeric input.
func SerialToClock(cell string) *string {
	v, ok := parseNumeric(cell)
	if !ok {
		return nil
	}
	frac := v - math.Floor(v)
	secs := int(math.Round(frac * 86400))
	if secs >= 86400 {
		secs = 0
	}
	s := fmt.Sprintf("%02d:%02d:%02d", secs/3600, secs/60%60, secs%60)
	return &s
}

// CellString trims a cell and returns nil for an empty result.
func CellString(cell string) *string {
	s := strings.TrimSpace(cell)
	if s == "" {
		return nil
	}
	return &s
}

// CellInt64 parses a numeric cell into an int64, nil when unparseable.
// Spreadsheets routinely store integers as floats ("1001" vs "1001.0").
func CellInt64(cell string) *int64 {
	v, ok := parseNumeric(cell)
	if !ok {
		return nil
	}
	n := int64(v)
	return &n
}

// CellFloat parses a numeric cell into a float64, nil when unparseable.
func CellFloat(cell string) *float64 {
	v, ok := parseNumeric(cell)
	if !ok {
		return nil
	}
	return &v
}

func parseNumeric(cell string) (float64, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
