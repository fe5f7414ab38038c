package controllers

import (
	"CotizaLab/handlers"

	"github.com/gin-gonic/gin"
)

// SetupLookupRoutes registers the reprint lookup surface: one search
// endpoint and one document download endpoint.
func SetupLookupRoutes(router *gin.Engine, lookupHandler *handlers.LookupHandler) {
	router.GET("/lookups/:identifier", lookupHandler.GetLookup)
	router.GET("/lookups/:identifier/document", lookupHandler.DownloadDocument)
}
