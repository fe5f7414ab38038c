package models

import (
	"time"
)

// DocumentKind selects which reprint variant a lookup produces.
type DocumentKind string

const (
	KindQuotation DocumentKind = "cotizacion"
	KindOrder     DocumentKind = "orden"
)

// FilenamePrefix is the leading token of the download filename.
func (k DocumentKind) FilenamePrefix() string {
	if k == KindOrder {
		return "Orden"
	}
	return "Cotizacion"
}

// Title is the document heading printed on the reprint.
func (k DocumentKind) Title() string {
	if k == KindOrder {
		return "Orden de Exámenes"
	}
	return "Exámenes de Laboratorio"
}

// PricedRow is one line of the priced view. Orders carry code and name
// only; the price columns stay zero and are never printed for them.
type PricedRow struct {
	Code              string `json:"code"`
	Name              string `json:"name"`
	BenefitValue      int64  `json:"benefit_value"`
	CopayValue        int64  `json:"copay_value"`
	GeneralPrice      int64  `json:"general_price"`
	PreferentialPrice int64  `json:"preferential_price"`
}

// RecordMetadata is the normalized patient block shared by both record
// shapes. Fields missing from one schema are filled with a placeholder
// at the gateway boundary, never during rendering.
type RecordMetadata struct {
	Identifier      string    `json:"identifier"`
	PatientName     string    `json:"patient_name"`
	DocumentIDLabel string    `json:"document_id_label"`
	DocumentID      string    `json:"document_id"`
	IssuedAt        time.Time `json:"issued_at"`
}

// Totals are the quotation master's precomputed totals.
type Totals struct {
	Benefit      int64 `json:"benefit"`
	Copay        int64 `json:"copay"`
	General      int64 `json:"general"`
	Preferential int64 `json:"preferential"`
}

// PricedView is the assembled reprint payload for one master record:
// line items joined against the arancel plus normalized metadata. Totals
// are nil for clinical orders.
type PricedView struct {
	Kind         DocumentKind   `json:"kind"`
	Metadata     RecordMetadata `json:"metadata"`
	Rows         []PricedRow    `json:"rows"`
	Totals       *Totals        `json:"totals,omitempty"`
	DroppedCodes int            `json:"dropped_codes"`
	ReprintCount int64          `json:"reprint_count"`
}
