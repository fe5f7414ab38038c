package models

import (
	"time"
)

// QuotationRecord mirrors one row of the externally owned cotizaciones
// table. The four totals were computed when the quotation was issued and
// are reprinted as-is; they are never recomputed here.
type QuotationRecord struct {
	Folio             string    `gorm:"primaryKey;column:folio" json:"folio"`
	PatientName       string    `gorm:"column:nombre_paciente" json:"patient_name"`
	DocumentID        string    `gorm:"column:documento_id" json:"document_id"`
	DocumentIDLabel   string    `gorm:"column:tipo_documento_label" json:"document_id_label"`
	IssuedAt          time.Time `gorm:"column:fecha_cotizacion" json:"issued_at"`
	TotalBenefit      int64     `gorm:"column:total_bono" json:"total_benefit"`
	TotalCopay        int64     `gorm:"column:total_copago" json:"total_copay"`
	TotalGeneral      int64     `gorm:"column:total_general" json:"total_general"`
	TotalPreferential int64     `gorm:"column:total_preferencial" json:"total_preferential"`
}

func (QuotationRecord) TableName() string {
	return "cotizaciones"
}

// QuotationLineItem associates a quotation with one procedure code. Name
// and copay are only populated by the newer issuing schema; older rows
// carry the code alone and resolve everything through the arancel.
type QuotationLineItem struct {
	QuotationFolio string  `gorm:"column:folio_cotizacion;index" json:"quotation_folio"`
	Code           string  `gorm:"column:codigo_examen" json:"code"`
	Name           *string `gorm:"column:nombre_examen" json:"name,omitempty"`
	CopayValue     *int64  `gorm:"column:valor_copago" json:"copay_value,omitempty"`
}

func (QuotationLineItem) TableName() string {
	return "detalle_cotizaciones"
}

// ClinicalOrderRecord mirrors one row of the ordenes_clinicas table.
type ClinicalOrderRecord struct {
	OrderFolio string    `gorm:"primaryKey;column:folio_orden" json:"order_folio"`
	PatientRut string    `gorm:"column:rut_paciente" json:"patient_rut"`
	CreatedAt  time.Time `gorm:"column:fecha_creacion" json:"created_at"`
}

func (ClinicalOrderRecord) TableName() string {
	return "ordenes_clinicas"
}

// OrderLineItem associates a clinical order with one procedure code.
type OrderLineItem struct {
	OrderFolio string  `gorm:"column:folio_orden;index" json:"order_folio"`
	Code       string  `gorm:"column:codigo_examen" json:"code"`
	Name       *string `gorm:"column:nombre_examen" json:"name,omitempty"`
}

func (OrderLineItem) TableName() string {
	return "ordenes_detalles"
}
