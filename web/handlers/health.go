package handlers

import (
	"net/http"

	"fal-engine/guard"
	"fal-engine/web/types"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	history        *guard.HistoryStore
	cooldown       *guard.TemplateCooldown
	catalogSymbols int
}

func NewHealthHandler(history *guard.HistoryStore, cooldown *guard.TemplateCooldown, catalogSymbols int) *HealthHandler {
	return &HealthHandler{
		history:        history,
		cooldown:       cooldown,
		catalogSymbols: catalogSymbols,
	}
}

// Health handles GET /healthz.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Stats handles GET /v1/stats.
func (h *HealthHandler) Stats(c *gin.Context) {
	users, readings := h.history.Stats()
	c.JSON(http.StatusOK, types.StatsResponse{
		Users:           users,
		Readings:        readings,
		TemplateRecords: h.cooldown.Len(),
		CatalogSymbols:  h.catalogSymbols,
	})
}
