package routes

import (
	"crypto/subtle"
	"net/http"

	"thesis-hand/config"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	aiGenerationsCounter *prometheus.CounterVec
	documentsCounter     *prometheus.CounterVec
	// SessionsPurgedCounter wird vom Aufräumjob erhöht.
	SessionsPurgedCounter prometheus.Counter
)

func init() {
	aiGenerationsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thesis_ai_generations_total",
			Help: "Total number of AI generation requests by action, provider and outcome.",
		},
		[]string{"action", "provider", "outcome"},
	)
	documentsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thesis_documents_ingested_total",
			Help: "Total number of uploaded documents stored, by MIME type.",
		},
		[]string{"mime"},
	)
	SessionsPurgedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "thesis_sessions_purged_total",
			Help: "Total number of expired sessions removed by the cleanup job.",
		},
	)
	prometheus.MustRegister(aiGenerationsCounter, documentsCounter, SessionsPurgedCounter)
}

// metricsAuthMiddleware schützt /metrics per X-API-KEY, sofern METRICS_API_KEY gesetzt ist.
func metricsAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.MetricsAPIKey == "" {
			c.Next()
			return
		}
		apiKey := c.GetHeader("X-API-KEY")
		if subtle.ConstantTimeCompare([]byte(apiKey), []byte(cfg.MetricsAPIKey)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Invalid API Key"})
			return
		}
		c.Next()
	}
}
