package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dkeye/Roulette/internal/adapters/rtc"
	"github.com/dkeye/Roulette/internal/app"
	"github.com/dkeye/Roulette/internal/config"
)

func handlerHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handlerStats serves the same counters the coordinator pushes over
// the socket, for dashboards and probes that only speak HTTP.
func handlerStats(coord *app.Coordinator) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, coord.Stats())
	}
}

func handlerICE(cfg *config.Config) gin.HandlerFunc {
	servers := rtc.ICEServers(cfg.StunServers)
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"iceServers": servers})
	}
}
