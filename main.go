// main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/ariebrainware/percepta/anomaly"
	"github.com/ariebrainware/percepta/config"
	"github.com/ariebrainware/percepta/endpoint"
	"github.com/ariebrainware/percepta/middleware"
	"github.com/ariebrainware/percepta/model"
	"github.com/ariebrainware/percepta/util"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load the configuration
	cfg := config.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	db.AutoMigrate(&model.Settings{}, &model.AuditLog{})
	util.SetAuditLoggerDB(db)

	if _, err := config.ConnectRedis(); err != nil {
		log.Printf("Redis unavailable, continuing without it: %v", err)
	}
	if err := util.InitGeoIP(""); err != nil {
		log.Printf("GeoIP unavailable, continuing without enrichment: %v", err)
	}
	util.InitExportCache(0)

	settings, err := model.LoadSettings(db)
	if err != nil {
		log.Printf("Falling back to default settings: %v", err)
	}

	apiURL := settings.APIURL
	if apiURL == "" {
		apiURL = cfg.APIBaseURL
	}

	store := anomaly.NewStore()
	// Seed from the last good dataset so a restart serves data before the
	// first poll completes.
	if records, fetchedAt, ok := util.LoadSnapshot(); ok {
		store.Commit(store.Begin(), records, false, fetchedAt)
	}

	client := anomaly.NewClient(apiURL)
	poller := anomaly.NewPoller(client, store, time.Duration(settings.RefreshInterval)*time.Minute)
	// Enrichment runs pre-commit; the committed slice is read concurrently
	// by handlers and must stay immutable.
	poller.Enrich = func(records []anomaly.Record) int {
		n := util.EnrichLocations(records)
		if n > 0 {
			log.Printf("GeoIP enriched %d records", n)
		}
		return n
	}
	poller.OnResult = func(records []anomaly.Record, degraded bool, applied bool, err error) {
		if err != nil {
			util.LogFetchFailure(apiURL, err)
		} else {
			util.LogFetchSuccess(len(records), applied)
		}
		if !applied {
			return
		}
		util.ExportCacheFlush()
		if !degraded {
			if err := util.SaveSnapshot(records, time.Now()); err != nil {
				log.Printf("Failed to persist snapshot: %v", err)
			}
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if settings.EnableAutoRefresh {
		go poller.Run(ctx)
	} else {
		// No recurring timer; load once so the dashboard is populated.
		go func() { _ = poller.Refresh(ctx) }()
	}

	// Set Gin mode from config
	gin.SetMode(cfg.GinMode)

	// Create a Gin router with default middleware
	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DatabaseMiddleware(db))
	router.Use(middleware.AnomalyMiddleware(store, poller))
	router.Use(middleware.EndpointCallLogger())

	// Basic HTTP handler for root path
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Welcome to %s!", cfg.AppName),
		})
	})

	router.GET("/anomalies", endpoint.ListAnomalies)
	router.GET("/anomalies/stats", endpoint.GetStats)
	router.GET("/anomalies/timeline", endpoint.GetTimeline)
	router.GET("/anomalies/analytics", endpoint.GetAnalytics)
	router.GET("/anomalies/export", middleware.RateLimiter(middleware.RateLimitConfig{}), endpoint.ExportAnomalies)
	router.POST("/anomalies/refresh", endpoint.RefreshAnomalies)
	router.GET("/settings", endpoint.GetSettings)
	router.PUT("/settings", endpoint.UpdateSettings)
	router.POST("/settings/reset", endpoint.ResetSettings)

	// Start server on specified port
	address := fmt.Sprintf(":%d", cfg.AppPort)
	if err := router.Run(address); err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
