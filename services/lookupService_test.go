package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CotizaLab/catalog"
	"CotizaLab/models"
	"CotizaLab/utils"
)

type stubQuotationFinder struct {
	gotFolio string
	master   *models.QuotationRecord
	items    []models.QuotationLineItem
	err      error
}

func (s *stubQuotationFinder) Lookup(ctx context.Context, folio string) (*models.QuotationRecord, []models.QuotationLineItem, error) {
	s.gotFolio = folio
	return s.master, s.items, s.err
}

type stubOrderFinder struct {
	gotFolio string
	master   *models.ClinicalOrderRecord
	items    []models.OrderLineItem
	err      error
}

func (s *stubOrderFinder) Lookup(ctx context.Context, orderFolio string) (*models.ClinicalOrderRecord, []models.OrderLineItem, error) {
	s.gotFolio = orderFolio
	return s.master, s.items, s.err
}

type stubCatalogProvider struct {
	catalog *catalog.Catalog
	err     error
}

func (s *stubCatalogProvider) Get(ctx context.Context) (*catalog.Catalog, error) {
	return s.catalog, s.err
}

func TestLookupRoutesDigitsToOrders(t *testing.T) {
	orders := &stubOrderFinder{
		master: &models.ClinicalOrderRecord{OrderFolio: "120045", PatientRut: "12.345.678-9"},
	}
	quotations := &stubQuotationFinder{}
	svc := NewLookupService(quotations, orders, &stubCatalogProvider{catalog: testArancel()}, nil)

	view, err := svc.Lookup(context.Background(), " 120045 ", nil)
	require.NoError(t, err)
	assert.Equal(t, models.KindOrder, view.Kind)
	assert.Equal(t, "120045", orders.gotFolio)
	assert.Empty(t, quotations.gotFolio)
}

func TestLookupUppercasesQuotationFolios(t *testing.T) {
	quotations := &stubQuotationFinder{
		master: &models.QuotationRecord{Folio: "A1B2C3D4"},
	}
	svc := NewLookupService(quotations, &stubOrderFinder{}, &stubCatalogProvider{catalog: testArancel()}, nil)

	view, err := svc.Lookup(context.Background(), "a1b2c3d4", nil)
	require.NoError(t, err)
	assert.Equal(t, models.KindQuotation, view.Kind)
	assert.Equal(t, "A1B2C3D4", quotations.gotFolio)
}

func TestLookupKindOverrideBeatsClassification(t *testing.T) {
	quotations := &stubQuotationFinder{
		master: &models.QuotationRecord{Folio: "12345678"},
	}
	svc := NewLookupService(quotations, &stubOrderFinder{}, &stubCatalogProvider{catalog: testArancel()}, nil)

	kind := models.KindQuotation
	view, err := svc.Lookup(context.Background(), "12345678", &kind)
	require.NoError(t, err)
	assert.Equal(t, models.KindQuotation, view.Kind)
	assert.Equal(t, "12345678", quotations.gotFolio)
}

func TestLookupMissingMasterIsNotFound(t *testing.T) {
	svc := NewLookupService(&stubQuotationFinder{}, &stubOrderFinder{}, &stubCatalogProvider{catalog: testArancel()}, nil)

	_, err := svc.Lookup(context.Background(), "A1B2C3D4", nil)
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = svc.Lookup(context.Background(), "120045", nil)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestLookupBlankIdentifierQueriesNothing(t *testing.T) {
	quotations := &stubQuotationFinder{}
	orders := &stubOrderFinder{}
	svc := NewLookupService(quotations, orders, &stubCatalogProvider{catalog: testArancel()}, nil)

	_, err := svc.Lookup(context.Background(), "   ", nil)
	assert.ErrorIs(t, err, utils.ErrEmptyIdentifier)
	assert.Empty(t, quotations.gotFolio)
	assert.Empty(t, orders.gotFolio)
}

func TestLookupSurfacesCatalogUnavailable(t *testing.T) {
	svc := NewLookupService(&stubQuotationFinder{}, &stubOrderFinder{},
		&stubCatalogProvider{err: models.ErrCatalogUnavailable}, nil)

	_, err := svc.Lookup(context.Background(), "A1B2C3D4", nil)
	assert.ErrorIs(t, err, models.ErrCatalogUnavailable)
}

func TestLookupPropagatesStoreErrors(t *testing.T) {
	svc := NewLookupService(&stubQuotationFinder{err: models.ErrConnectivity}, &stubOrderFinder{},
		&stubCatalogProvider{catalog: testArancel()}, nil)

	_, err := svc.Lookup(context.Background(), "A1B2C3D4", nil)
	assert.ErrorIs(t, err, models.ErrConnectivity)
}
