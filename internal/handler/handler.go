// Package handler holds the HTTP route handlers.
package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/artur/videohub/internal/apperr"
)

// writeError renders err as {"error": message}. fallback is the status used
// when err carries none of its own.
func writeError(c *gin.Context, err error, fallback int) {
	status := apperr.StatusOf(err, fallback)
	log.Printf("[HTTP] %s %s failed with %d (%s): %v", c.Request.Method, c.Request.URL.Path, status, apperr.KindOf(err), err)
	c.JSON(status, gin.H{"error": err.Error()})
}

func requireQuery(c *gin.Context, name string) (string, bool) {
	value := c.Query(name)
	if value == "" {
		writeError(c, apperr.Input("Missing required query parameter: "+name), http.StatusBadRequest)
		return "", false
	}
	return value, true
}
