package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/pestbooking/api"
	"github.com/Domenick1991/pestbooking/config"
	"github.com/Domenick1991/pestbooking/internal/logging"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Handlers groups the HTTP handlers served under /api/v1. Nil handlers are
// not mounted. Limiters throttles session writes; when nil a store is built
// from the HTTP config.
type Handlers struct {
	Packs        *api.PackHandler
	Availability *api.AvailabilityHandler
	Sessions     *api.SessionHandler
	Bookings     *api.BookingHandler
	Limiters     *LimiterStore
}

func NewRouter(cfg config.HTTPConfig, h Handlers, gatherer prometheus.Gatherer, log *zap.Logger) *gin.Engine {
	log = logging.OrNop(log)

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(log))
	router.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.AllowedOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	v1 := router.Group("/api/v1")
	if h.Packs != nil {
		h.Packs.Register(v1.Group("/packs"))
	}
	if h.Availability != nil {
		h.Availability.Register(v1.Group("/availability"))
	}
	if h.Sessions != nil {
		sessions := v1.Group("/sessions")
		limiters := h.Limiters
		if limiters == nil {
			limiters = NewLimiterStore(cfg.RateLimitPerMinute, cfg.RateLimitBurst)
		}
		sessions.Use(RateLimit(limiters, log))
		h.Sessions.Register(sessions)
	}
	if h.Bookings != nil {
		h.Bookings.Register(v1.Group("/bookings"))
	}
	return router
}

// Run serves handler on addr and blocks until ctx is canceled or the
// server fails.
func Run(ctx context.Context, addr string, handler http.Handler, log *zap.Logger) error {
	log = logging.OrNop(log)
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", addr))
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		log.Info("http server stopped")
		return nil
	}
}
