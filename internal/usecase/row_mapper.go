package usecase

import (
	"fmt"

	"cezatakip-service/internal/domain/entity"
	"cezatakip-service/pkg/spreadsheet"
	"cezatakip-service/pkg/utils"
)

// MapOutcome is the result kind of mapping one primary-sheet row.
type MapOutcome int

const (
	// MapSkipped means the row carries no parseable penalty number and is
	// dropped without touching any counter.
	MapSkipped MapOutcome = iota
	// MapMapped means the row produced a record.
	MapMapped
	// MapErrored means mapping failed; the row counts as an error and the
	// import continues.
	MapErrored
)

// MapResult is the tagged outcome of mapping one row, so the orchestrator's
// counting is exhaustive over the three cases.
type MapResult struct {
	Outcome MapOutcome
	Record  *entity.PenaltyRecord
	Err     error
}

// RowMapper translates raw primary-sheet rows into penalty records. Column
// positions are resolved from the header row once, at construction.
type RowMapper struct {
	cols map[string]int
}

// NewRowMapper resolves the column layout from the sheet's header row.
func NewRowMapper(headers []string) *RowMapper {
	return &RowMapper{cols: resolveColumns(headers)}
}

// Map converts one data row. It never sets isFlagged/isTaxiPenalty; those
// are derived from the daily-log sheet after mapping.
func (m *RowMapper) Map(cells []string) (result MapResult) {
	defer func() {
		if r := recover(); r != nil {
			result = MapResult{Outcome: MapErrored, Err: fmt.Errorf("map row: %v", r)}
		}
	}()

	number := utils.CellInt64(m.cell(cells, "penaltyNumber"))
	if number == nil {
		return MapResult{Outcome: MapSkipped}
	}

	rec := &entity.PenaltyRecord{
		PenaltyNumber: *number,
		EventDate:     utils.SerialToDate(m.cell(cells, "eventDate")),
		EventTime:     utils.SerialToClock(m.cell(cells, "eventTime")),
		ReceiptTime:   utils.SerialToClock(m.cell(cells, "receiptTime")),
		Place:         utils.CellString(m.cell(cells, "place")),
		Coordinates:   utils.CellString(m.cell(cells, "coordinates")),
		Address:       utils.CellString(m.cell(cells, "address")),
		District:      utils.CellString(m.cell(cells, "district")),
		City:          utils.CellString(m.cell(cells, "city")),
		Passenger:     m.party(cells, "passenger"),
		Driver:        m.party(cells, "driver"),
		Vehicle: entity.VehicleInfo{
			Make:       utils.CellString(m.cell(cells, "vehicleMake")),
			Model:      utils.CellString(m.cell(cells, "vehicleModel")),
			Plate:      utils.CellString(m.cell(cells, "vehiclePlate")),
			PriorCount: utils.CellInt64(m.cell(cells, "priorCount")),
			ImpoundLot: utils.CellString(m.cell(cells, "impoundLot")),
		},
	}

	return MapResult{Outcome: MapMapped, Record: rec}
}

func (m *RowMapper) party(cells []string, prefix string) entity.PartyInfo {
	return entity.PartyInfo{
		ID:            utils.CellString(m.cell(cells, prefix+"Id")),
		NationalID:    utils.CellString(m.cell(cells, prefix+"NationalId")),
		Name:          utils.CellString(m.cell(cells, prefix+"Name")),
		Phone:         utils.CellString(m.cell(cells, prefix+"Phone")),
		TripCount:     utils.CellInt64(m.cell(cells, prefix+"TripCount")),
		PenaltyAmount: utils.CellFloat(m.cell(cells, prefix+"PenaltyAmount")),
		PaidAmount:    utils.CellFloat(m.cell(cells, prefix+"PaidAmount")),
		PaymentStatus: utils.CellString(m.cell(cells, prefix+"PaymentStatus")),
		ReceiptStatus: utils.CellString(m.cell(cells, prefix+"ReceiptStatus")),
		ReceiptNumber: utils.CellString(m.cell(cells, prefix+"ReceiptNumber")),
		PaymentDate:   utils.SerialToDate(m.cell(cells, prefix+"PaymentDate")),
		AppealStatus:  utils.CellString(m.cell(cells, prefix+"AppealStatus")),
		Note:          utils.CellString(m.cell(cells, prefix+"Note")),
	}
}

func (m *RowMapper) cell(cells []string, field string) string {
	return spreadsheet.Cell(cells, m.cols[field])
}
