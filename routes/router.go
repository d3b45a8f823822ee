package routes

import (
	"context"
	"net/http"
	"time"

	"thesis-hand/config"
	"thesis-hand/models"
	"thesis-hand/services"
	"thesis-hand/storage"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Deps bündelt alles, was die Handler brauchen.
type Deps struct {
	Config    *config.Config
	Store     *storage.Store
	Auth      *services.AuthService
	Assistant *services.Assistant
	Extractor *services.DocumentExtractor
	// Optional, nil ohne konfiguriertes Objekt-Storage
	Objects storage.ObjectStore
	// Optional, nil wenn die Literatursuche abgeschaltet ist
	Literature LiteratureSearcher
	Logger     *zap.Logger
}

// LiteratureSearcher liefert ungespeicherte Literatureinträge zu einem Suchbegriff.
type LiteratureSearcher interface {
	Name() string
	Search(ctx context.Context, term string, limit int) ([]models.Reference, error)
}

// NewRouter registriert alle Routen unter /api, /metrics und optional die SPA.
func NewRouter(d *Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(d.Logger))

	router.GET("/metrics", metricsAuthMiddleware(d.Config), gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	setupAuthRoutes(api, d)
	setupSharedRoutes(api, d)

	protected := api.Group("")
	protected.Use(sessionMiddleware(d))
	setupAccountRoutes(protected, d)
	setupAggregateRoutes(protected, d)
	setupChapterRoutes(protected, d)
	setupPlannerRoutes(protected, d)
	setupReferenceRoutes(protected, d)
	setupMatrixRoutes(protected, d)
	setupSettingsRoutes(protected, d)
	setupDocumentRoutes(protected, d)
	setupStudyRoutes(protected, d)
	setupAIRoutes(protected, d)

	setupStatic(router, d.Config.StaticDir)
	return router
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
		}
		switch {
		case status >= http.StatusInternalServerError:
			log.Warn("Request failed", fields...)
		case c.FullPath() == "/api/health" || c.FullPath() == "/metrics":
		default:
			log.Debug("Request handled", fields...)
		}
	}
}
