package repositories

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"CotizaLab/models"
)

const lookupTimeout = 5 * time.Second

// ConnProvider resolves the shared database handle for one lookup.
type ConnProvider func(ctx context.Context) (*gorm.DB, error)

type QuotationRepository struct {
	provider ConnProvider
}

func NewQuotationRepository(provider ConnProvider) *QuotationRepository {
	return &QuotationRepository{provider: provider}
}

// Lookup fetches a quotation master row and its line items. Both queries
// run on one dedicated connection that is released when the callback
// returns, on the failure path included. A missing master row is not an
// error: it returns (nil, nil, nil).
func (r *QuotationRepository) Lookup(ctx context.Context, folio string) (*models.QuotationRecord, []models.QuotationLineItem, error) {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	db, err := r.provider(ctx)
	if err != nil {
		return nil, nil, err
	}

	var master *models.QuotationRecord
	var items []models.QuotationLineItem
	err = db.WithContext(ctx).Connection(func(tx *gorm.DB) error {
		var record models.QuotationRecord
		if err := tx.First(&record, "folio = ?", folio).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		master = &record
		return tx.Find(&items, "folio_cotizacion = ?", folio).Error
	})
	if err != nil {
		return nil, nil, storeFailure("cotizaciones", err)
	}
	return master, items, nil
}

// storeFailure logs the raw driver error and surfaces the connectivity
// kind to the caller.
func storeFailure(table string, err error) error {
	log.Printf("record store failure on %s: %v", table, err)
	return models.ErrConnectivity
}
