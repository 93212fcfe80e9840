package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/pestbooking/api"
	"github.com/Domenick1991/pestbooking/config"
	"github.com/Domenick1991/pestbooking/internal/catalog"
	"github.com/Domenick1991/pestbooking/internal/metrics"
	"github.com/Domenick1991/pestbooking/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Default()
	packs, err := catalog.New(cfg.Packs, cfg.Booking.DefaultPack)
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	m := metrics.NewBookingMetrics(reg)
	m.SessionOpened()

	return NewRouter(cfg.HTTP, Handlers{Packs: api.NewPackHandler(packs)}, reg, zap.NewNop())
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRouter_Metrics(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pestbooking_session_opened_total 1")
}

func TestRouter_Packs(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/packs/punaises-de-lit", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "punaises-de-lit")
}

func TestRouter_CORS(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest("OPTIONS", "/api/v1/packs", nil)
	req.Header.Set("Origin", "https://www.nuisibook.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "https://www.nuisibook.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest("GET", "/api/v1/packs", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RateLimit(NewLimiterStore(1, 2), zap.NewNop()))
	router.POST("/sessions", func(c *gin.Context) { c.Status(http.StatusCreated) })
	router.GET("/sessions", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("POST", "/sessions", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusCreated, http.StatusCreated, http.StatusTooManyRequests}, codes)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/sessions", nil))
	assert.Equal(t, http.StatusOK, w.Code, "reads are not limited")
}

func TestLimiterStore_Evict(t *testing.T) {
	now := time.Date(2025, time.October, 13, 9, 0, 0, 0, time.UTC)
	store := NewLimiterStore(1, 1)
	store.now = func() time.Time { return now }

	assert.True(t, store.get("10.0.0.1").Allow())
	assert.False(t, store.get("10.0.0.1").Allow())
	now = now.Add(30 * time.Minute)
	store.get("10.0.0.2")
	require.Equal(t, 2, store.Len())

	now = now.Add(31 * time.Minute)
	assert.Equal(t, 1, store.Evict(time.Hour), "only the client idle for over an hour goes")
	assert.Equal(t, 1, store.Len())

	assert.True(t, store.get("10.0.0.1").Allow(), "an evicted client starts with a full bucket")
	assert.Equal(t, 0, store.Evict(time.Hour))
}

func TestRouter_UsesProvidedLimiters(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := config.Default()
	packs, err := catalog.New(cfg.Packs, cfg.Booking.DefaultPack)
	require.NoError(t, err)
	manager := session.NewManager(packs, session.Env{TimeSlots: cfg.Booking.TimeSlots}, time.Hour)
	limiters := NewLimiterStore(1, 1)
	router := NewRouter(cfg.HTTP, Handlers{
		Sessions: api.NewSessionHandler(manager),
		Limiters: limiters,
	}, nil, zap.NewNop())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/api/v1/sessions?slug=rongeur", nil))
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, limiters.Len())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/api/v1/sessions?slug=rongeur", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRun_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, "127.0.0.1:0", http.NotFoundHandler(), nil) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
