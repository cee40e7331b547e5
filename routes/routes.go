// Package routes builds the HTTP router.
package routes

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/doughreme/bakery-api/config"
	"github.com/doughreme/bakery-api/database"
	"github.com/doughreme/bakery-api/metrics"
	"github.com/doughreme/bakery-api/middleware"
	"github.com/doughreme/bakery-api/schemas"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	ordercontroller "github.com/doughreme/bakery-api/controllers/order"
)

const (
	APIPrefix    = "/api/v1"
	pingTimeout  = 2 * time.Second
	maxUploadMem = 32 << 20
)

// NewRouter wires middleware, static assets, the landing page, health,
// metrics and the API groups onto a fresh engine.
func NewRouter(cfg *config.Settings, db *gorm.DB, hub *ordercontroller.Hub) *gin.Engine {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	schemas.RegisterValidators()

	r := gin.New()
	r.MaxMultipartMemory = maxUploadMem

	r.Use(
		gin.Recovery(),
		middleware.RequestLogger(),
		metrics.PrometheusMiddleware(),
		cors.New(corsConfig(cfg.CORSOrigins)),
		middleware.ErrorHandler(),
	)

	setupStatic(r, cfg)

	r.GET("/health", healthHandler(db, cfg.DBDriver))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group(APIPrefix)
	SetupProductRoutes(api, db)
	SetupOrderRoutes(api, db, hub)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"*"},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		// "*" cannot be combined with credentials; echo the origin instead.
		cfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// setupStatic serves the asset directory and the landing page when they exist.
func setupStatic(r *gin.Engine, cfg *config.Settings) {
	info, err := os.Stat(cfg.StaticDir)
	if err != nil || !info.IsDir() {
		log.WithField("dir", cfg.StaticDir).Warn("⚠️ static directory not found, assets disabled")
		r.GET("/", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "Welcome to " + cfg.AppName})
		})
		return
	}

	r.Static(cfg.StaticPrefix, cfg.StaticDir)

	index := filepath.Join(cfg.StaticDir, cfg.IndexFile)
	r.GET("/", func(c *gin.Context) {
		if _, err := os.Stat(index); err != nil {
			c.JSON(http.StatusOK, gin.H{"message": "Welcome to " + cfg.AppName})
			return
		}
		c.File(index)
	})
}

func healthHandler(db *gorm.DB, driver string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
		defer cancel()

		if err := database.Ping(ctx, db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": driver,
				"error":    err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "database": driver})
	}
}
