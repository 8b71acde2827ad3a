// Command oracle-server exposes the parser and executor behind a small gin
// REST API, the demo HTTP surface for manually exercising the core.
package main

import (
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cardforge/oracle-engine/internal/httpapi"
	"github.com/cardforge/oracle-engine/internal/httpmw"
	"github.com/cardforge/oracle-engine/internal/obslog"
	"github.com/cardforge/oracle-engine/internal/oracleerr"
)

func main() {
	logLevel := os.Getenv("ORACLE_LOG_LEVEL")
	if err := obslog.Init(&logLevel); err != nil {
		panic(err)
	}
	defer obslog.Sync()

	r := gin.New()
	r.Use(httpmw.RequestID(), httpmw.ZapLogger(), httpmw.ZapRecovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/v1")
	{
		api.POST("/parse", handleParse)
		api.POST("/context", handleContext)
		api.POST("/apply", handleApply)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8090"
	}

	obslog.Get().Info("oracle-server starting", zap.String("port", port))
	if err := r.Run(":" + port); err != nil && err != http.ErrServerClosed {
		obslog.Get().Fatal("server failed to start", zap.Error(err))
	}
}

func handleParse(c *gin.Context) {
	var req httpapi.ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, httpapi.RunParse(req))
}

func handleContext(c *gin.Context) {
	var req httpapi.ContextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, httpapi.RunBuildContext(req))
}

func handleApply(c *gin.Context) {
	var req httpapi.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	resp, err := httpapi.RunApply(req)
	if err != nil {
		var invalidHint *oracleerr.InvalidHintError
		var unknownPlayer *oracleerr.UnknownPlayerError
		switch {
		case errors.As(err, &invalidHint), errors.As(err, &unknownPlayer):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	status := http.StatusOK
	if len(resp.Skipped) > 0 && len(resp.Applied) > 0 {
		status = http.StatusMultiStatus
	}
	c.JSON(status, resp)
}
