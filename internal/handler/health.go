package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	hasAPIKey bool
}

func NewHealthHandler(hasAPIKey bool) *HealthHandler {
	return &HealthHandler{hasAPIKey: hasAPIKey}
}

func (h *HealthHandler) Register(r gin.IRouter) {
	r.GET("/", h.root)
}

func (h *HealthHandler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "hasYTApiKey": h.hasAPIKey})
}
