package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"CotizaLab/cache"
	"CotizaLab/catalog"
	"CotizaLab/models"
	"CotizaLab/utils"
)

// QuotationFinder fetches a quotation master row and its line items.
type QuotationFinder interface {
	Lookup(ctx context.Context, folio string) (*models.QuotationRecord, []models.QuotationLineItem, error)
}

// OrderFinder fetches a clinical order master row and its line items.
type OrderFinder interface {
	Lookup(ctx context.Context, orderFolio string) (*models.ClinicalOrderRecord, []models.OrderLineItem, error)
}

// CatalogProvider resolves the process-lifetime price catalog.
type CatalogProvider interface {
	Get(ctx context.Context) (*catalog.Catalog, error)
}

// LookupService runs the classify -> query -> assemble pipeline for one
// raw search identifier.
type LookupService struct {
	quotations QuotationFinder
	orders     OrderFinder
	catalog    CatalogProvider
	cache      *cache.Cache
}

func NewLookupService(quotations QuotationFinder, orders OrderFinder, catalogProvider CatalogProvider, cache *cache.Cache) *LookupService {
	return &LookupService{quotations: quotations, orders: orders, catalog: catalogProvider, cache: cache}
}

// Lookup resolves one identifier to its priced view. The kind override,
// when non-nil, replaces the shape-based classification.
func (s *LookupService) Lookup(ctx context.Context, rawIdentifier string, override *models.DocumentKind) (*models.PricedView, error) {
	kind, identifier, err := utils.ClassifyIdentifier(rawIdentifier)
	if err != nil {
		return nil, err
	}
	if override != nil {
		kind = *override
		identifier = strings.TrimSpace(rawIdentifier)
		if kind == models.KindQuotation {
			identifier = strings.ToUpper(identifier)
		}
	}

	cat, err := s.catalog.Get(ctx)
	if err != nil {
		return nil, err
	}

	var view models.PricedView
	switch kind {
	case models.KindOrder:
		master, items, err := s.orders.Lookup(ctx, identifier)
		if err != nil {
			return nil, err
		}
		if master == nil {
			return nil, models.ErrNotFound
		}
		view = AssembleOrder(master, items, cat)
	default:
		master, items, err := s.quotations.Lookup(ctx, identifier)
		if err != nil {
			return nil, err
		}
		if master == nil {
			return nil, models.ErrNotFound
		}
		view = AssembleQuotation(master, items, cat)
	}

	if view.DroppedCodes > 0 {
		log.Printf("lookup %s: %d line item code(s) missing from the arancel, dropped from the priced view",
			view.Metadata.Identifier, view.DroppedCodes)
	}
	view.ReprintCount = s.reprintCount(ctx, view.Kind, view.Metadata.Identifier)
	return &view, nil
}

// reprintCount reads the redis counter bumped on every document render.
// Best effort: counting must never fail a lookup.
func (s *LookupService) reprintCount(ctx context.Context, kind models.DocumentKind, identifier string) int64 {
	if s.cache == nil {
		return 0
	}
	raw, err := s.cache.Get(ctx, reprintCounterKey(kind, identifier))
	if err != nil || raw == "" {
		return 0
	}
	count, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return count
}

func reprintCounterKey(kind models.DocumentKind, identifier string) string {
	return fmt.Sprintf("reprint_count:%s:%s", kind, identifier)
}
