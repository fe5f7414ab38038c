package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"CotizaLab/middlewares"
	"CotizaLab/models"
	"CotizaLab/utils"
)

// LookupPerformer resolves one raw identifier to its priced view.
type LookupPerformer interface {
	Lookup(ctx context.Context, rawIdentifier string, override *models.DocumentKind) (*models.PricedView, error)
}

// DocumentProducer resolves an identifier and renders its reprint PDF.
type DocumentProducer interface {
	Document(ctx context.Context, rawIdentifier string, override *models.DocumentKind) (*models.PricedView, []byte, error)
}

type LookupHandler struct {
	lookups   LookupPerformer
	documents DocumentProducer
}

func NewLookupHandler(lookups LookupPerformer, documents DocumentProducer) *LookupHandler {
	return &LookupHandler{lookups: lookups, documents: documents}
}

// GetLookup handles GET /lookups/:identifier and returns the on-screen
// summary: metadata, the priced table and the totals.
func (h *LookupHandler) GetLookup(c *gin.Context) {
	view, err := h.lookups.Lookup(c, c.Param("identifier"), kindOverride(c))
	if err != nil {
		respondLookupError(c, err)
		return
	}
	middlewares.RespondJSON(c, view, http.StatusOK)
}

// DownloadDocument handles GET /lookups/:identifier/document and streams
// the reprint PDF as a download attachment.
func (h *LookupHandler) DownloadDocument(c *gin.Context) {
	view, document, err := h.documents.Document(c, c.Param("identifier"), kindOverride(c))
	if err != nil {
		respondLookupError(c, err)
		return
	}

	filename := fmt.Sprintf("%s_%s.pdf", view.Kind.FilenamePrefix(), view.Metadata.Identifier)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", document)
}

func kindOverride(c *gin.Context) *models.DocumentKind {
	if kind, ok := utils.ParseKindOverride(c.Query("kind")); ok {
		return &kind
	}
	return nil
}

// respondLookupError maps the pipeline's error kinds to HTTP statuses
// with user-facing messages; no store or catalog failure crashes the
// request flow.
func respondLookupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, utils.ErrEmptyIdentifier):
		middlewares.HttpError(c, "Ingrese un folio o número de orden", http.StatusBadRequest, err)
	case errors.Is(err, models.ErrNotFound):
		middlewares.HttpError(c, "Folio no encontrado en la base de datos", http.StatusNotFound, err)
	case errors.Is(err, models.ErrConfiguration):
		middlewares.HttpError(c, "Credenciales de base de datos no configuradas", http.StatusServiceUnavailable, err)
	case errors.Is(err, models.ErrCatalogUnavailable):
		middlewares.HttpError(c, "Arancel de precios no disponible", http.StatusServiceUnavailable, err)
	case errors.Is(err, models.ErrConnectivity):
		middlewares.HttpError(c, "Error de conexión con la base de datos", http.StatusBadGateway, err)
	default:
		middlewares.HttpError(c, "Error interno al procesar la búsqueda", http.StatusInternalServerError, err)
	}
}
