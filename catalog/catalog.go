package catalog

import (
	"strings"

	"CotizaLab/models"
)

// Catalog is the in-memory arancel price list, keyed by normalized
// procedure code. It is immutable after construction and safe for
// concurrent readers.
type Catalog struct {
	entries []models.PriceCatalogEntry
	byCode  map[string]int
}

// NormalizeCode strips surrounding whitespace and the trailing ".0"
// artifact left by spreadsheet exports of numeric codes. Idempotent.
func NormalizeCode(code string) string {
	normalized := strings.TrimSpace(code)
	for strings.HasSuffix(normalized, ".0") {
		normalized = strings.TrimSuffix(normalized, ".0")
	}
	return normalized
}

// New builds a catalog from raw entries, normalizing codes and keeping
// the first occurrence of a duplicated code. Row order is preserved; it
// decides the display order of priced views.
func New(entries []models.PriceCatalogEntry) *Catalog {
	c := &Catalog{byCode: make(map[string]int, len(entries))}
	for _, entry := range entries {
		entry.Code = NormalizeCode(entry.Code)
		if entry.Code == "" {
			continue
		}
		if _, dup := c.byCode[entry.Code]; dup {
			continue
		}
		c.byCode[entry.Code] = len(c.entries)
		c.entries = append(c.entries, entry)
	}
	return c
}

// Lookup returns the entry for a code, normalizing it first.
func (c *Catalog) Lookup(code string) (models.PriceCatalogEntry, bool) {
	idx, ok := c.byCode[NormalizeCode(code)]
	if !ok {
		return models.PriceCatalogEntry{}, false
	}
	return c.entries[idx], true
}

// Select returns, in catalog order, every entry whose code appears in
// codes. Codes absent from the catalog are simply not represented.
func (c *Catalog) Select(codes []string) []models.PriceCatalogEntry {
	wanted := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		wanted[NormalizeCode(code)] = struct{}{}
	}
	selected := make([]models.PriceCatalogEntry, 0, len(wanted))
	for _, entry := range c.entries {
		if _, ok := wanted[entry.Code]; ok {
			selected = append(selected, entry)
		}
	}
	return selected
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns the catalog rows in file order.
func (c *Catalog) Entries() []models.PriceCatalogEntry {
	return c.entries
}
