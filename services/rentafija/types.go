package rentafija

import "time"

// Bond is one listed security extracted from the pdf. Header, Type and
// Category are sticky: the pdf only states them on section markers, so a
// record inherits the last seen value until a new marker appears.
type Bond struct {
	Header      *string    `json:"header"`
	Type        *string    `json:"type"`
	Category    *string    `json:"category"`
	Name        *string    `json:"name"`
	Code        *string    `json:"code"`
	Maturity    *time.Time `json:"maturity"`
	AnnualYield *float64   `json:"annualYield"`
}

// SyncRecord is the persisted status document for this source. PdfUrl is
// the fingerprint of the last successfully processed pdf.
type SyncRecord struct {
	Data         []Bond     `json:"data"`
	DataDate     *time.Time `json:"datosFecha"`
	PdfUrl       *string    `json:"sincroPdfUrl"`
	SyncError    *bool      `json:"syncError"`
	SyncErrorMsg *string    `json:"syncErrorMsg"`
	SyncDate     *time.Time `json:"syncDate"`
}
