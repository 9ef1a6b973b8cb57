// internal/domain/entity/penalty.go
package entity

import (
	"time"
)

// PenaltyRecord is one traffic-violation entry tied to a ride, with
// driver/passenger/vehicle sub-data. penaltyNumber is the natural key.
type PenaltyRecord struct {
	ID            string     `bson:"_id,omitempty" json:"id,omitempty"`
	PenaltyNumber int64      `bson:"penaltyNumber" json:"penaltyNumber"` // unique index
	EventDate     *time.Time `bson:"eventDate,omitempty" json:"eventDate,omitempty"`
	EventTime     *string    `bson:"eventTime,omitempty" json:"eventTime,omitempty"`     // HH:MM:SS
	ReceiptTime   *string    `bson:"receiptTime,omitempty" json:"receiptTime,omitempty"` // HH:MM:SS

	Place       *string `bson:"place,omitempty" json:"place,omitempty"`
	Coordinates *string `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
	Address     *string `bson:"address,omitempty" json:"address,omitempty"`
	District    *string `bson:"district,omitempty" json:"district,omitempty"`
	City        *string `bson:"city,omitempty" json:"city,omitempty"`

	Passenger PartyInfo   `bson:"passenger" json:"passenger"`
	Driver    PartyInfo   `bson:"driver" json:"driver"`
	Vehicle   VehicleInfo `bson:"vehicle" json:"vehicle"`

	// Derived from the daily-log sheet, never from the primary list.
	IsFlagged     bool `bson:"isFlagged" json:"isFlagged"`
	IsTaxiPenalty bool `bson:"isTaxiPenalty" json:"isTaxiPenalty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// PartyInfo holds the per-party block of an entry. The passenger and driver
// blocks share the same shape; every field is optional.
type PartyInfo struct {
	ID            *string    `bson:"id,omitempty" json:"id,omitempty"`
	NationalID    *string    `bson:"nationalId,omitempty" json:"nationalId,omitempty"`
	Name          *string    `bson:"name,omitempty" json:"name,omitempty"`
	Phone         *string    `bson:"phone,omitempty" json:"phone,omitempty"`
	TripCount     *int64     `bson:"tripCount,omitempty" json:"tripCount,omitempty"`
	PenaltyAmount *float64   `bson:"penaltyAmount,omitempty" json:"penaltyAmount,omitempty"`
	PaidAmount    *float64   `bson:"paidAmount,omitempty" json:"paidAmount,omitempty"`
	PaymentStatus *string    `bson:"paymentStatus,omitempty" json:"paymentStatus,omitempty"`
	ReceiptStatus *string    `bson:"receiptStatus,omitempty" json:"receiptStatus,omitempty"`
	ReceiptNumber *string    `bson:"receiptNumber,omitempty" json:"receiptNumber,omitempty"`
	PaymentDate   *time.Time `bson:"paymentDate,omitempty" json:"paymentDate,omitempty"`
	AppealStatus  *string    `bson:"appealStatus,omitempty" json:"appealStatus,omitempty"`
	Note          *string    `bson:"note,omitempty" json:"note,omitempty"`
}

// VehicleInfo holds the vehicle block of an entry.
type VehicleInfo struct {
	Make       *string `bson:"make,omitempty" json:"make,omitempty"`
	Model      *string `bson:"model,omitempty" json:"model,omitempty"`
	Plate      *string `bson:"plate,omitempty" json:"plate,omitempty"`
	PriorCount *int64  `bson:"priorCount,omitempty" json:"priorCount,omitempty"`
	ImpoundLot *string `bson:"impoundLot,omitempty" json:"impoundLot,omitempty"`
}

// ImportSummary is the aggregate result of one import run.
type ImportSummary struct {
	Imported int `json:"imported"`
	Updated  int `json:"updated"`
	Errors   int `json:"errors"`
	Total    int `json:"total"`
}

// PenaltyStats backs the stats/overview endpoint.
type PenaltyStats struct {
	Total   int64          `json:"total"`
	Flagged int64          `json:"flagged"`
	Taxi    int64          `json:"taxi"`
	Monthly []MonthlyCount `json:"monthly"`
}

// MonthlyCount is one month bucket of the stats aggregation.
type MonthlyCount struct {
	Month string `bson:"_id" json:"month"` // YYYY-MM
	Count int64  `bson:"count" json:"count"`
}
