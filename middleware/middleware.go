package middleware

import (
	"net/http"

	"github.com/ariebrainware/percepta/anomaly"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	ctxKeyDB     = "db"
	ctxKeyStore  = "anomalyStore"
	ctxKeyPoller = "anomalyPoller"
)

// CORSMiddleware configures CORS headers for incoming requests.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, DELETE, PATCH")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "X-Requested-With, Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Content-Type", "application/json")

		// For preflight requests, respond with 204 and abort further processing.
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// DatabaseMiddleware injects the gorm DB into the request context.
func DatabaseMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ctxKeyDB, db)
		c.Next()
	}
}

// GetDB returns the request-scoped gorm DB, or nil when not injected.
func GetDB(c *gin.Context) *gorm.DB {
	if v, ok := c.Get(ctxKeyDB); ok {
		if db, ok := v.(*gorm.DB); ok {
			return db
		}
	}
	return nil
}

// AnomalyMiddleware injects the snapshot store and poller into the request
// context so handlers stay plain package-level functions.
func AnomalyMiddleware(store *anomaly.Store, poller *anomaly.Poller) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ctxKeyStore, store)
		c.Set(ctxKeyPoller, poller)
		c.Next()
	}
}

// GetStore returns the request-scoped anomaly store, or nil when not injected.
func GetStore(c *gin.Context) *anomaly.Store {
	if v, ok := c.Get(ctxKeyStore); ok {
		if s, ok := v.(*anomaly.Store); ok {
			return s
		}
	}
	return nil
}

// GetPoller returns the request-scoped poller, or nil when not injected.
func GetPoller(c *gin.Context) *anomaly.Poller {
	if v, ok := c.Get(ctxKeyPoller); ok {
		if p, ok := v.(*anomaly.Poller); ok {
			return p
		}
	}
	return nil
}
