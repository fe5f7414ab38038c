package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CotizaLab/catalog"
	"CotizaLab/models"
)

func testArancel() *catalog.Catalog {
	return catalog.New([]models.PriceCatalogEntry{
		{Code: "100", Name: "Hemograma", BenefitValue: 500, CopayValue: 1000, GeneralPrice: 1500, PreferentialPrice: 1200},
		{Code: "200", Name: "Glicemia", BenefitValue: 300, CopayValue: 400, GeneralPrice: 900, PreferentialPrice: 700},
		{Code: "300", Name: "Perfil Lipídico", BenefitValue: 800, CopayValue: 1200, GeneralPrice: 2500, PreferentialPrice: 2000},
	})
}

func strPtr(s string) *string { return &s }

func TestAssembleQuotationJoinsInCatalogOrder(t *testing.T) {
	master := &models.QuotationRecord{
		Folio:             "A1B2C3D4",
		PatientName:       "María Pérez",
		DocumentID:        "12.345.678-9",
		DocumentIDLabel:   "RUT",
		IssuedAt:          time.Date(2026, 5, 12, 10, 30, 0, 0, time.UTC),
		TotalBenefit:      1300,
		TotalCopay:        2200,
		TotalGeneral:      4900,
		TotalPreferential: 3900,
	}
	// line items in reverse catalog order, with the ".0" export artifact
	items := []models.QuotationLineItem{
		{QuotationFolio: "A1B2C3D4", Code: "300.0"},
		{QuotationFolio: "A1B2C3D4", Code: "100"},
	}

	view := AssembleQuotation(master, items, testArancel())

	assert.Equal(t, models.KindQuotation, view.Kind)
	require.Len(t, view.Rows, 2)
	assert.Equal(t, "100", view.Rows[0].Code)
	assert.Equal(t, "300", view.Rows[1].Code)
	assert.Equal(t, int64(1500), view.Rows[0].GeneralPrice)
	assert.Zero(t, view.DroppedCodes)

	// totals are the master's precomputed values, not a re-accumulation
	require.NotNil(t, view.Totals)
	assert.Equal(t, int64(4900), view.Totals.General)

	assert.Equal(t, "A1B2C3D4", view.Metadata.Identifier)
	assert.Equal(t, "María Pérez", view.Metadata.PatientName)
	assert.Equal(t, "RUT", view.Metadata.DocumentIDLabel)
}

func TestAssembleQuotationDropsUnknownCodes(t *testing.T) {
	cat := catalog.New([]models.PriceCatalogEntry{
		{Code: "100", Name: "CBC", BenefitValue: 500, CopayValue: 1000, GeneralPrice: 1500, PreferentialPrice: 1200},
	})
	master := &models.QuotationRecord{Folio: "A1B2C3D4"}
	items := []models.QuotationLineItem{
		{Code: "100"},
		{Code: "999"},
	}

	view := AssembleQuotation(master, items, cat)

	require.Len(t, view.Rows, 1)
	assert.Equal(t, "100", view.Rows[0].Code)
	assert.Equal(t, "CBC", view.Rows[0].Name)
	assert.Equal(t, 1, view.DroppedCodes)
}

func TestAssembleQuotationWithNoItemsIsEmptyButValid(t *testing.T) {
	master := &models.QuotationRecord{Folio: "A1B2C3D4"}

	view := AssembleQuotation(master, nil, testArancel())

	assert.Empty(t, view.Rows)
	assert.Zero(t, view.DroppedCodes)
	require.NotNil(t, view.Totals)
}

func TestAssembleQuotationDeduplicatesCodes(t *testing.T) {
	master := &models.QuotationRecord{Folio: "A1B2C3D4"}
	items := []models.QuotationLineItem{
		{Code: "100"},
		{Code: "100.0"},
		{Code: "999"},
		{Code: "999"},
	}

	view := AssembleQuotation(master, items, testArancel())

	require.Len(t, view.Rows, 1)
	assert.Equal(t, 1, view.DroppedCodes)
}

func TestAssembleQuotationMetadataFallbacks(t *testing.T) {
	master := &models.QuotationRecord{Folio: "A1B2C3D4"}

	view := AssembleQuotation(master, nil, testArancel())

	assert.Equal(t, "No informado", view.Metadata.PatientName)
	assert.Equal(t, "Documento", view.Metadata.DocumentIDLabel)
	assert.Equal(t, "No informado", view.Metadata.DocumentID)
}

func TestAssembleOrderKeepsLineItemOrder(t *testing.T) {
	master := &models.ClinicalOrderRecord{
		OrderFolio: "120045",
		PatientRut: "12.345.678-9",
		CreatedAt:  time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
	}
	items := []models.OrderLineItem{
		{Code: "300", Name: strPtr("Perfil Lipídico Completo")},
		{Code: "100"},
	}

	view := AssembleOrder(master, items, testArancel())

	assert.Equal(t, models.KindOrder, view.Kind)
	require.Len(t, view.Rows, 2)
	// denormalized name wins over the catalog name
	assert.Equal(t, "Perfil Lipídico Completo", view.Rows[0].Name)
	// catalog name fills the older schema variant
	assert.Equal(t, "Hemograma", view.Rows[1].Name)
	// orders never price
	assert.Nil(t, view.Totals)
	assert.Zero(t, view.Rows[0].GeneralPrice)

	assert.Equal(t, "RUT", view.Metadata.DocumentIDLabel)
	assert.Equal(t, "12.345.678-9", view.Metadata.DocumentID)
}

func TestAssembleOrderDropsUnresolvableItems(t *testing.T) {
	master := &models.ClinicalOrderRecord{OrderFolio: "120045"}
	items := []models.OrderLineItem{
		{Code: "100"},
		{Code: "999"}, // no name, not in the arancel
	}

	view := AssembleOrder(master, items, testArancel())

	require.Len(t, view.Rows, 1)
	assert.Equal(t, 1, view.DroppedCodes)
}
