package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"CotizaLab/models"
)

type OrderRepository struct {
	provider ConnProvider
}

func NewOrderRepository(provider ConnProvider) *OrderRepository {
	return &OrderRepository{provider: provider}
}

// Lookup fetches a clinical order master row and its line items on one
// request-scoped connection. Line items come back in table order, which
// is the order the issuing process wrote them.
func (r *OrderRepository) Lookup(ctx context.Context, orderFolio string) (*models.ClinicalOrderRecord, []models.OrderLineItem, error) {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	db, err := r.provider(ctx)
	if err != nil {
		return nil, nil, err
	}

	var master *models.ClinicalOrderRecord
	var items []models.OrderLineItem
	err = db.WithContext(ctx).Connection(func(tx *gorm.DB) error {
		var record models.ClinicalOrderRecord
		if err := tx.First(&record, "folio_orden = ?", orderFolio).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		master = &record
		return tx.Find(&items, "folio_orden = ?", orderFolio).Error
	})
	if err != nil {
		return nil, nil, storeFailure("ordenes_clinicas", err)
	}
	return master, items, nil
}
