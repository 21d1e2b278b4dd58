package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetCatalog handles GET /api/booking/catalog.
func (h *BookingHandler) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"packages": h.Catalog.Packages(),
		"addOns":   h.Catalog.AddOns(),
	})
}
