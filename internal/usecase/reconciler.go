package usecase

import (
	"strings"
	"time"

	"cezatakip-service/pkg/spreadsheet"
	"cezatakip-service/pkg/utils"
)

// Daily-log annotations. The flag column header carries the şaibeli label;
// the free-text column immediately to its right may reclassify the entry as
// a taxi violation.
const (
	flaggedHeaderLabel = "şaibeli"
	flaggedAffirmative = "evet"
)

var taxiIndicators = []string{"taksi", "taxi"}

// FlagSets are the composite-key lookup sets built from one pass over the
// daily-log sheet. Lifetime is a single import run.
type FlagSets struct {
	Flagged map[string]struct{}
	Taxi    map[string]struct{}
}

// logSheet is the slice of the spreadsheet API the reconciler consumes.
type logSheet interface {
	HeaderRow() ([]string, error)
	ForEachRow(fn func(cells []string) error) error
}

// BuildFlagSets scans the daily-log sheet once and indexes its rows by
// `YYYY-MM-DD_driverName`. A log sheet without the flag header yields empty
// sets; rows missing date or name are skipped without error.
func BuildFlagSets(sheet logSheet) (*FlagSets, error) {
	headers, err := sheet.HeaderRow()
	if err != nil {
		return nil, err
	}

	dateIdx, nameIdx := 0, 1
	flagIdx, taxiIdx := -1, -1
	for i, h := range headers {
		lower := strings.ToLower(strings.TrimSpace(h))
		switch {
		case strings.Contains(lower, flaggedHeaderLabel):
			flagIdx = i
			taxiIdx = i + 1
		case strings.Contains(lower, "tarih"):
			dateIdx = i
		case strings.Contains(lower, "sürücü"):
			nameIdx = i
		}
	}

	sets := &FlagSets{
		Flagged: make(map[string]struct{}),
		Taxi:    make(map[string]struct{}),
	}

	err = sheet.ForEachRow(func(cells []string) error {
		date := utils.SerialToDate(spreadsheet.Cell(cells, dateIdx))
		name := utils.CellString(spreadsheet.Cell(cells, nameIdx))
		key, ok := compositeKey(date, name)
		if !ok {
			return nil
		}

		flag := strings.TrimSpace(spreadsheet.Cell(cells, flagIdx))
		if strings.EqualFold(flag, flaggedAffirmative) {
			sets.Flagged[key] = struct{}{}
		}

		taxi := strings.ToLower(spreadsheet.Cell(cells, taxiIdx))
		for _, indicator := range taxiIndicators {
			if strings.Contains(taxi, indicator) {
				sets.Taxi[key] = struct{}{}
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sets, nil
}

// Apply sets the derived flags on a mapped record. A record missing either
// key component keeps the default false flags.
func (fs *FlagSets) Apply(date *time.Time, driverName *string) (flagged, taxi bool) {
	key, ok := compositeKey(date, driverName)
	if !ok {
		return false, false
	}
	_, flagged = fs.Flagged[key]
	_, taxi = fs.Taxi[key]
	return flagged, taxi
}

// compositeKey joins the daily-log sheet to the primary list.
func compositeKey(date *time.Time, name *string) (string, bool) {
	if date == nil || name == nil {
		return "", false
	}
	n := strings.TrimSpace(*name)
	if n == "" {
		return "", false
	}
	return date.Format("2006-01-02") + "_" + n, true
}
