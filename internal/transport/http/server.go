package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/peerlink-relay/internal/config"
	"github.com/vovakirdan/peerlink-relay/internal/core"
)

// NewServer builds the HTTP server carrying the websocket endpoint and the
// introspection routes.
func NewServer(router *core.Router, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.GET("/health", handleHealth)
	engine.GET("/stats", handleStats(router))
	engine.GET("/ws", gin.WrapH(NewWSHandler(router, cfg.EventBuffer, logger)))

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           engine,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func handleHealth(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}

func handleStats(router *core.Router) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := router.Snapshot(c.Request.Context())
		if err != nil {
			c.JSON(stdhttp.StatusServiceUnavailable, gin.H{"error": "router unavailable"})
			return
		}
		c.JSON(stdhttp.StatusOK, stats)
	}
}
