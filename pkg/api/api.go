package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/telekom/job-container-naming/pkg/apiresponses"
	"github.com/telekom/job-container-naming/pkg/config"
	"github.com/telekom/job-container-naming/pkg/metrics"
	"github.com/telekom/job-container-naming/pkg/ratelimit"
	"github.com/telekom/job-container-naming/pkg/system"
	"github.com/telekom/job-container-naming/pkg/version"
)

type APIController interface {
	BasePath() string
	Register(rg *gin.RouterGroup) error
	Handlers() []gin.HandlerFunc
}

type Server struct {
	gin     *gin.Engine
	config  config.Config
	log     *zap.SugaredLogger
	limiter *ratelimit.ClientLimiter
}

func NewServer(log *zap.Logger, cfg config.Config, debug bool) *Server {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		ginzap.Ginzap(log, time.RFC3339, true),
		ginzap.CustomRecoveryWithZap(log, true, func(c *gin.Context, recovered any) {
			// ginzap has already logged the panic with its stack
			apiresponses.RespondInternalError(c, "handle request", recovered, nil)
		}),
		system.RequestLogger(log.Sugar()),
		observeDuration(),
	)

	origins := cfg.Server.AllowedOrigins
	if debug && len(origins) == 0 {
		origins = []string{"http://localhost:5173", "http://127.0.0.1:8080"}
	}
	if len(origins) > 0 {
		engine.Use(
			cors.New(cors.Config{
				AllowOrigins:  origins,
				AllowMethods:  []string{"GET", "POST", "OPTIONS"},
				AllowHeaders:  []string{"Origin", "Content-Type", system.RequestIDHeader},
				ExposeHeaders: []string{system.RequestIDHeader},
				MaxAge:        12 * time.Hour,
			}),
		)
	}

	s := &Server{
		gin:    engine,
		config: cfg,
		log:    log.Sugar(),
	}

	rlCfg := ratelimit.Config{
		Rate:  cfg.Server.RateLimit.RequestsPerSecond,
		Burst: cfg.Server.RateLimit.Burst,
	}
	if !cfg.Server.RateLimit.Disabled && rlCfg.Enabled() {
		s.limiter = ratelimit.New(rlCfg)
	}

	engine.NoRoute(func(c *gin.Context) {
		apiresponses.RespondNotFoundSimple(c, fmt.Sprintf("no route for %s %s", c.Request.Method, c.Request.URL.Path))
	})
	engine.GET("healthz", func(c *gin.Context) {
		apiresponses.RespondOK(c, gin.H{"status": "ok"})
	})
	engine.GET("metrics", gin.WrapH(metrics.MetricsHandler()))
	engine.GET("api/version", func(c *gin.Context) {
		apiresponses.RespondOK(c, version.GetBuildInfo())
	})

	return s
}

func (s *Server) RegisterAll(controllers []APIController) error {
	r := s.gin.Group("api")
	if s.limiter != nil {
		r.Use(s.limiter.Middleware())
	}
	for _, c := range controllers {
		if err := c.Register(r.Group(c.BasePath(), c.Handlers()...)); err != nil {
			return err
		}
	}
	return nil
}

// Close releases background resources held by the server.
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}

// Handler returns the underlying HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.gin
}

// Listen serves until ctx is cancelled and then shuts down gracefully,
// waiting at most the configured shutdown timeout for in-flight requests.
func (s *Server) Listen(ctx context.Context) error {
	timeout, err := time.ParseDuration(s.config.Server.ShutdownTimeout)
	if err != nil || timeout <= 0 {
		timeout = 10 * time.Second
	}

	srv := &http.Server{
		Addr:              s.config.Server.ListenAddress,
		Handler:           s.gin,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infow("Starting HTTP server", "address", srv.Addr, "tls", s.config.Server.TLSCertFile != "")
		if s.config.Server.TLSCertFile != "" && s.config.Server.TLSKeyFile != "" {
			errCh <- srv.ListenAndServeTLS(s.config.Server.TLSCertFile, s.config.Server.TLSKeyFile)
			return
		}
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Infow("Shutting down HTTP server", "timeout", timeout.String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

func observeDuration() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.APIRequestDuration.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
