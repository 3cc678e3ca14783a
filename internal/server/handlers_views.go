package server

import (
	"context"
	"net/http"
	"time"

	"maxclack/internal/db"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleHello(c *gin.Context) {
	c.String(http.StatusOK, "Hello, World!")
}

func (s *Server) handleHealth(c *gin.Context) {
	if !s.requireDB(c) {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := db.Ping(ctx, s.db); err != nil {
		s.log.Warn("health check failed", "error", err)
		writeError(c, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
