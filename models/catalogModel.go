package models

// PriceCatalogEntry is one row of the arancel price list. Amounts are
// integral pesos; the code is stored normalized (no trailing ".0", no
// surrounding whitespace).
type PriceCatalogEntry struct {
	Code              string `json:"code"`
	Name              string `json:"name"`
	BenefitValue      int64  `json:"benefit_value"`
	CopayValue        int64  `json:"copay_value"`
	GeneralPrice      int64  `json:"general_price"`
	PreferentialPrice int64  `json:"preferential_price"`
}
