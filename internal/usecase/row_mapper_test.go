package usecase

import (
	"testing"
)

func TestRowMapperMapsFields(t *testing.T) {
	headers := []string{
		"Ceza No", "Tarih", "Saat", "Sürücü Adı", "Yolcu Adı",
		"Plaka", "Sürücü Ceza Tutarı", "Yolcu Sefer Sayısı",
	}
	mapper := NewRowMapper(headers)

	result := mapper.Map([]string{
		"1001", "45301", "0.4375", "Ahmet Yılmaz", "Ayşe Demir",
		"34 ABC 123", "1506.50", "12",
	})
	if result.Outcome != MapMapped {
		t.Fatalf("outcome = %v; want MapMapped", result.Outcome)
	}

	rec := result.Record
	if rec.PenaltyNumber != 1001 {
		t.Errorf("penaltyNumber = %d", rec.PenaltyNumber)
	}
	if rec.EventDate == nil || rec.EventDate.Format("2006-01-02") != "2024-01-10" {
		t.Errorf("eventDate = %v", rec.EventDate)
	}
	if rec.EventTime == nil || *rec.EventTime != "10:30:00" {
		t.Errorf("eventTime = %v", rec.EventTime)
	}
	if rec.Driver.Name == nil || *rec.Driver.Name != "Ahmet Yılmaz" {
		t.Errorf("driver name = %v", rec.Driver.Name)
	}
	if rec.Passenger.Name == nil || *rec.Passenger.Name != "Ayşe Demir" {
		t.Errorf("passenger name = %v", rec.Passenger.Name)
	}
	if rec.Vehicle.Plate == nil || *rec.Vehicle.Plate != "34 ABC 123" {
		t.Errorf("plate = %v", rec.Vehicle.Plate)
	}
	if rec.Driver.PenaltyAmount == nil || *rec.Driver.PenaltyAmount != 1506.5 {
		t.Errorf("driver amount = %v", rec.Driver.PenaltyAmount)
	}
	if rec.Passenger.TripCount == nil || *rec.Passenger.TripCount != 12 {
		t.Errorf("passenger trip count = %v", rec.Passenger.TripCount)
	}

	// The mapper never derives flags; that is the log sheet's job.
	if rec.IsFlagged || rec.IsTaxiPenalty {
		t.Error("mapper must not set derived flags")
	}
}

func TestRowMapperLegacyHeaders(t *testing.T) {
	mapper := NewRowMapper([]string{"Ceza Numarası", "Sürücü Ad Soyad"})

	result := mapper.Map([]string{"2002", "Mehmet Kaya"})
	if result.Outcome != MapMapped {
		t.Fatalf("outcome = %v; want MapMapped", result.Outcome)
	}
	if result.Record.PenaltyNumber != 2002 {
		t.Errorf("penaltyNumber via legacy header = %d", result.Record.PenaltyNumber)
	}
	if result.Record.Driver.Name == nil || *result.Record.Driver.Name != "Mehmet Kaya" {
		t.Errorf("driver name via legacy header = %v", result.Record.Driver.Name)
	}
}

func TestRowMapperPrefersModernHeader(t *testing.T) {
	// Both spellings present: the first synonym wins.
	mapper := NewRowMapper([]string{"Ceza No", "Ceza Numarası"})

	result := mapper.Map([]string{"1", "2"})
	if result.Record.PenaltyNumber != 1 {
		t.Errorf("penaltyNumber = %d; want 1 (modern header)", result.Record.PenaltyNumber)
	}
}

func TestRowMapperSkipsRowsWithoutKey(t *testing.T) {
	mapper := NewRowMapper([]string{"Ceza No", "Tarih"})

	for _, cells := range [][]string{
		{"", "45301"},
		{"iptal", "45301"},
		{},
	} {
		result := mapper.Map(cells)
		if result.Outcome != MapSkipped {
			t.Errorf("Map(%v) outcome = %v; want MapSkipped", cells, result.Outcome)
		}
		if result.Record != nil {
			t.Errorf("Map(%v) returned a record for a skipped row", cells)
		}
	}
}

func TestRowMapperNullDefaults(t *testing.T) {
	mapper := NewRowMapper([]string{"Ceza No", "Tarih", "Yer", "Adres"})

	result := mapper.Map([]string{"3003"})
	if result.Outcome != MapMapped {
		t.Fatalf("outcome = %v; want MapMapped", result.Outcome)
	}
	rec := result.Record
	if rec.EventDate != nil || rec.Place != nil || rec.Address != nil {
		t.Error("absent cells must map to nil")
	}
}
