package handlers

import (
	"context"
	"net/http"
	"time"

	intconfig "github.com/dedekindkali/FFF/internal/config"
	"github.com/gin-gonic/gin"
)

// GET /api/health
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GET /api/db-check
func DBCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if intconfig.DB == nil {
		RespondError(c, http.StatusServiceUnavailable, "database not connected", nil)
		return
	}
	if err := intconfig.DB.PingContext(ctx); err != nil {
		RespondError(c, http.StatusServiceUnavailable, "database unreachable", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
