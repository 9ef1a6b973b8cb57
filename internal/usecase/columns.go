package usecase

import (
	"strings"
)

// Canonical column names for the primary list sheet. Values are the header
// spellings accepted for each field, tried in order; a couple of columns
// kept their pre-2022 spelling in older workbooks.
var penaltyColumns = map[string][]string{
	"penaltyNumber": {"Ceza No", "Ceza Numarası"},
	"eventDate":     {"Tarih"},
	"eventTime":     {"Saat"},
	"receiptTime":   {"Makbuz Saati"},

	"place":       {"Yer"},
	"coordinates": {"Koordinat"},
	"address":     {"Adres"},
	"district":    {"İlçe"},
	"city":        {"İl"},

	"passengerId":            {"Yolcu ID"},
	"passengerNationalId":    {"Yolcu TC"},
	"passengerName":          {"Yolcu Adı"},
	"passengerPhone":         {"Yolcu Telefon"},
	"passengerTripCount":     {"Yolcu Sefer Sayısı"},
	"passengerPenaltyAmount": {"Yolcu Ceza Tutarı"},
	"passengerPaidAmount":    {"Yolcu Ödenen Tutar"},
	"passengerPaymentStatus": {"Yolcu Ödeme Durumu"},
	"passengerReceiptStatus": {"Yolcu Makbuz Durumu"},
	"passengerReceiptNumber": {"Yolcu Makbuz No"},
	"passengerPaymentDate":   {"Yolcu Ödeme Tarihi"},
	"passengerAppealStatus":  {"Yolcu İtiraz Durumu"},
	"passengerNote":          {"Yolcu Not"},

	"driverId":            {"Sürücü ID"},
	"driverNationalId":    {"Sürücü TC"},
	"driverName":          {"Sürücü Adı", "Sürücü Ad Soyad"},
	"driverPhone":         {"Sürücü Telefon"},
	"driverTripCount":     {"Sürücü Sefer Sayısı"},
	"driverPenaltyAmount": {"Sürücü Ceza Tutarı"},
	"driverPaidAmount":    {"Sürücü Ödenen Tutar"},
	"driverPaymentStatus": {"Sürücü Ödeme Durumu"},
	"driverReceiptStatus": {"Sürücü Makbuz Durumu"},
	"driverReceiptNumber": {"Sürücü Makbuz No"},
	"driverPaymentDate":   {"Sürücü Ödeme Tarihi"},
	"driverAppealStatus":  {"Sürücü İtiraz Durumu"},
	"driverNote":          {"Sürücü Not"},

	"vehicleMake":  {"Araç Marka"},
	"vehicleModel": {"Araç Model"},
	"vehiclePlate": {"Plaka"},
	"priorCount":   {"Önceki Ceza Sayısı"},
	"impoundLot":   {"Otopark"},
}

// resolveColumns turns a header row into a canonical-field -> column-index
// map. Resolution happens once per sheet; per-row access is by index only.
// Fields whose headers are absent resolve to -1.
func resolveColumns(headers []string) map[string]int {
	cols := make(map[string]int, len(penaltyColumns))
	for field, synonyms := range penaltyColumns {
		cols[field] = -1
		for _, syn := range synonyms {
			if idx := findHeader(headers, syn); idx >= 0 {
				cols[field] = idx
				break
			}
		}
	}
	return cols
}

func findHeader(headers []string, want string) int {
	for i, h := range headers {
		if strings.EqualFold(strings.TrimSpace(h), want) {
			return i
		}
	}
	return -1
}
