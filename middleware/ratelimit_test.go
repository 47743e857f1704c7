package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ariebrainware/percepta/config"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
)

func newRateLimitedRouter(cfg RateLimitConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/export", RateLimiter(cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func TestRateLimiterWithoutRedis(t *testing.T) {
	config.SetRedisClientForTest(nil)

	router := newRateLimitedRouter(RateLimitConfig{Limit: 2, Window: time.Minute})

	// Without Redis, all requests should be allowed.
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/export", nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("request %d: expected 200 without redis, got %d", i+1, w.Code)
		}
	}
}

func TestRateLimiterWithinLimit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()
	config.SetRedisClientForTest(db)
	defer config.SetRedisClientForTest(nil)

	key := fmt.Sprintf("ratelimit:%s:%s", "/export", "192.0.2.1")
	mock.ExpectIncr(key).SetVal(1)
	mock.ExpectExpire(key, time.Minute).SetVal(true)

	router := newRateLimitedRouter(RateLimitConfig{Limit: 10, Window: time.Minute})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200 within limit, got %d", w.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestRateLimiterExceeded(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()
	config.SetRedisClientForTest(db)
	defer config.SetRedisClientForTest(nil)

	key := fmt.Sprintf("ratelimit:%s:%s", "/export", "192.0.2.1")
	mock.ExpectIncr(key).SetVal(11)
	mock.ExpectExpire(key, time.Minute).SetVal(true)

	router := newRateLimitedRouter(RateLimitConfig{Limit: 10, Window: time.Minute})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 when limit exceeded, got %d", w.Code)
	}
}

func TestRateLimiterDefaults(t *testing.T) {
	config.SetRedisClientForTest(nil)

	// Zero-valued config should fall back to defaults rather than block everything.
	router := newRateLimitedRouter(RateLimitConfig{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200 with default config, got %d", w.Code)
	}
}

func TestResetRateLimitWithoutRedis(t *testing.T) {
	config.SetRedisClientForTest(nil)

	if err := ResetRateLimit("192.0.2.1", "/export"); err == nil {
		t.Error("expected error when redis is unavailable")
	}
}

func TestResetRateLimit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()
	config.SetRedisClientForTest(db)
	defer config.SetRedisClientForTest(nil)

	key := fmt.Sprintf("ratelimit:%s:%s", "/export", "192.0.2.1")
	mock.ExpectDel(key).SetVal(1)

	if err := ResetRateLimit("192.0.2.1", "/export"); err != nil {
		t.Errorf("ResetRateLimit failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}
