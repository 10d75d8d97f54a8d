package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"marketplace_webapp/internal/catalog"

	"github.com/gin-gonic/gin"
)

// Genus returns catalog metadata for a genus: types, species, mutation
// options and description defaults.
func (h *Handler) Genus(c *gin.Context) {
	name := c.Param("name")

	data, err := h.Catalog.GenusData(c.Request.Context(), name)
	if errors.Is(err, catalog.ErrGenusNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "genus not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
		return
	}

	c.JSON(http.StatusOK, data)
}

// RecentActivity returns the latest marketplace feed events.
func (h *Handler) RecentActivity(c *gin.Context) {
	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	items, err := h.Activities.GetRecent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load activity"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"activity": items})
}
