package services

import (
	"strings"

	"CotizaLab/catalog"
	"CotizaLab/models"
)

// missingField fills metadata slots a record's schema does not carry.
const missingField = "No informado"

// AssembleQuotation joins a quotation's line items against the arancel.
// The priced view is the inner join on code, in catalog order; codes
// absent from the arancel are dropped from the table and counted. Totals
// come from the master row, never re-accumulated. Pure function of its
// inputs.
func AssembleQuotation(master *models.QuotationRecord, items []models.QuotationLineItem, cat *catalog.Catalog) models.PricedView {
	codes := make([]string, 0, len(items))
	for _, item := range items {
		codes = append(codes, item.Code)
	}

	entries := cat.Select(codes)
	rows := make([]models.PricedRow, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, models.PricedRow{
			Code:              entry.Code,
			Name:              entry.Name,
			BenefitValue:      entry.BenefitValue,
			CopayValue:        entry.CopayValue,
			GeneralPrice:      entry.GeneralPrice,
			PreferentialPrice: entry.PreferentialPrice,
		})
	}

	return models.PricedView{
		Kind:     models.KindQuotation,
		Metadata: quotationMetadata(master),
		Rows:     rows,
		Totals: &models.Totals{
			Benefit:      master.TotalBenefit,
			Copay:        master.TotalCopay,
			General:      master.TotalGeneral,
			Preferential: master.TotalPreferential,
		},
		DroppedCodes: countDropped(codes, cat),
	}
}

// AssembleOrder builds the priced view for a clinical order. Orders are
// prescriptive, not billed: rows carry code and name only, in line-item
// order. The name comes from the denormalized line item when the newer
// schema wrote one, else from the arancel; items with neither are
// dropped and counted.
func AssembleOrder(master *models.ClinicalOrderRecord, items []models.OrderLineItem, cat *catalog.Catalog) models.PricedView {
	rows := make([]models.PricedRow, 0, len(items))
	dropped := 0
	for _, item := range items {
		code := catalog.NormalizeCode(item.Code)
		name := ""
		if item.Name != nil {
			name = strings.TrimSpace(*item.Name)
		}
		if name == "" {
			entry, ok := cat.Lookup(code)
			if !ok {
				dropped++
				continue
			}
			name = entry.Name
		}
		rows = append(rows, models.PricedRow{Code: code, Name: name})
	}

	return models.PricedView{
		Kind:         models.KindOrder,
		Metadata:     orderMetadata(master),
		Rows:         rows,
		DroppedCodes: dropped,
	}
}

// countDropped counts the distinct line-item codes the arancel does not
// know about.
func countDropped(codes []string, cat *catalog.Catalog) int {
	seen := make(map[string]struct{}, len(codes))
	dropped := 0
	for _, raw := range codes {
		code := catalog.NormalizeCode(raw)
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		if _, ok := cat.Lookup(code); !ok {
			dropped++
		}
	}
	return dropped
}

func quotationMetadata(master *models.QuotationRecord) models.RecordMetadata {
	return models.RecordMetadata{
		Identifier:      master.Folio,
		PatientName:     fallback(master.PatientName, missingField),
		DocumentIDLabel: fallback(master.DocumentIDLabel, "Documento"),
		DocumentID:      fallback(master.DocumentID, missingField),
		IssuedAt:        master.IssuedAt,
	}
}

// orderMetadata maps the narrower order schema onto the shared metadata
// shape: orders identify the patient by RUT alone.
func orderMetadata(master *models.ClinicalOrderRecord) models.RecordMetadata {
	return models.RecordMetadata{
		Identifier:      master.OrderFolio,
		PatientName:     missingField,
		DocumentIDLabel: "RUT",
		DocumentID:      fallback(master.PatientRut, missingField),
		IssuedAt:        master.CreatedAt,
	}
}

func fallback(value, placeholder string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}
	return value
}
