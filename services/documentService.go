package services

import (
	"context"
	"log"

	"CotizaLab/cache"
	"CotizaLab/models"
)

// DocumentRenderer serializes a priced view into a PDF byte buffer.
type DocumentRenderer interface {
	Render(view *models.PricedView) ([]byte, error)
}

// DocumentService produces the downloadable reprint for one identifier.
type DocumentService struct {
	lookups  *LookupService
	renderer DocumentRenderer
	cache    *cache.Cache
}

func NewDocumentService(lookups *LookupService, renderer DocumentRenderer, cache *cache.Cache) *DocumentService {
	return &DocumentService{lookups: lookups, renderer: renderer, cache: cache}
}

// Document runs the lookup pipeline and renders the result. A successful
// render bumps the identifier's reprint counter.
func (s *DocumentService) Document(ctx context.Context, rawIdentifier string, override *models.DocumentKind) (*models.PricedView, []byte, error) {
	view, err := s.lookups.Lookup(ctx, rawIdentifier, override)
	if err != nil {
		return nil, nil, err
	}

	document, err := s.renderer.Render(view)
	if err != nil {
		return nil, nil, err
	}

	s.bumpReprintCounter(ctx, view)
	return view, document, nil
}

func (s *DocumentService) bumpReprintCounter(ctx context.Context, view *models.PricedView) {
	if s.cache == nil {
		return
	}
	key := reprintCounterKey(view.Kind, view.Metadata.Identifier)
	count, err := s.cache.Incr(ctx, key)
	if err != nil {
		log.Printf("failed to bump reprint counter %s: %v", key, err)
		return
	}
	view.ReprintCount = count
}
