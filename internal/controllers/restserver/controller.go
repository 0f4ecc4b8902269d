package restserver

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/chrissnell/skychart/internal/metrics"
	"github.com/chrissnell/skychart/pkg/config"
	"github.com/chrissnell/skychart/pkg/ephemeris"
	"github.com/chrissnell/skychart/pkg/houses"
)

const (
	// limiterIdle is how long a client's token bucket survives without traffic
	limiterIdle = 10 * time.Minute

	shutdownTimeout = 5 * time.Second
)

// Controller represents the chart REST server
type Controller struct {
	ctx             context.Context
	wg              *sync.WaitGroup
	configProvider  config.ConfigProvider
	Server          http.Server
	calculator      *ephemeris.Calculator
	engine          *houses.Engine
	defaultSystem   houses.System
	defaultLocation houses.Location
	metrics         *metrics.Collector
	limiter         *ipRateLimiter
	logger          *zap.SugaredLogger
	handlers        *Handlers
}

// NewController creates a new REST server controller from the provider's
// engine, server and location sections.
func NewController(ctx context.Context, wg *sync.WaitGroup, configProvider config.ConfigProvider, logger *zap.SugaredLogger) (*Controller, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	cfgData, err := configProvider.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading configuration: %v", err)
	}

	system, err := cfgData.Engine.System()
	if err != nil {
		return nil, fmt.Errorf("error loading house system: %v", err)
	}

	ctrl := &Controller{
		ctx:             ctx,
		wg:              wg,
		configProvider:  configProvider,
		defaultSystem:   system,
		defaultLocation: cfgData.Location.Location(),
		metrics:         metrics.NewCollector(),
		logger:          logger,
	}

	ctrl.calculator = ephemeris.NewCalculator(ephemeris.Options{
		Aberration: cfgData.Engine.Aberration,
		Nutation:   cfgData.Engine.Nutation,
	})
	ctrl.engine = houses.NewEngine(cfgData.Engine.HouseOptions(), logger).OnFallback(ctrl.metrics.HouseFallback)
	ctrl.limiter = newIPRateLimiter(rate.Limit(cfgData.Server.RateLimit), cfgData.Server.RateBurst)

	ctrl.handlers = NewHandlers(ctrl)

	router := ctrl.setupRouter()
	ctrl.Server.Addr = fmt.Sprintf("%v:%v", cfgData.Server.ListenAddr, cfgData.Server.HTTPPort)
	ctrl.Server.Handler = handlers.RecoveryHandler()(handlers.CompressHandler(router))
	ctrl.Server.ReadHeaderTimeout = 10 * time.Second

	return ctrl, nil
}

// StartController starts the REST server and stops it when the context ends
func (c *Controller) StartController() error {
	c.logger.Infof("Starting chart REST server on %s...", c.Server.Addr)
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		if err := c.Server.ListenAndServe(); err != http.ErrServerClosed {
			c.logger.Errorf("REST server error: %v", err)
		}
	}()

	go func() {
		ticker := time.NewTicker(limiterIdle)
		defer ticker.Stop()

		for {
			select {
			case <-c.ctx.Done():
				c.logger.Info("Shutting down the REST server...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := c.Server.Shutdown(shutdownCtx); err != nil {
					c.logger.Errorf("REST server shutdown: %v", err)
				}
				return
			case now := <-ticker.C:
				if n := c.limiter.prune(now.Add(-limiterIdle)); n > 0 {
					c.logger.Debugf("pruned %d idle rate limiters", n)
				}
			}
		}
	}()

	return nil
}

// setupRouter configures the HTTP router with all endpoints
func (c *Controller) setupRouter() *mux.Router {
	router := mux.NewRouter()

	router.Use(c.requestIDMiddleware)
	router.Use(c.instrumentMiddleware)
	router.Use(c.rateLimitMiddleware)

	router.HandleFunc("/positions", c.handlers.GetPositions).Methods(http.MethodGet)
	router.HandleFunc("/positions/{body}", c.handlers.GetPosition).Methods(http.MethodGet)
	router.HandleFunc("/houses", c.handlers.GetHouses).Methods(http.MethodGet)
	router.HandleFunc("/moon", c.handlers.GetMoonPhase).Methods(http.MethodGet)
	router.HandleFunc("/systems", c.handlers.GetSystems).Methods(http.MethodGet)
	router.Handle("/metrics", c.metrics.Handler()).Methods(http.MethodGet)

	router.NotFoundHandler = http.HandlerFunc(c.handlers.NotFound)

	return router
}
