// Package api serves the assessment over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/lifecompass/internal/bank"
	"github.com/abhisek/lifecompass/internal/insight"
	"github.com/abhisek/lifecompass/internal/publish"
	"github.com/abhisek/lifecompass/internal/store"
)

// Options configures a Server. Only Bank is required.
type Options struct {
	Bank      *bank.Bank
	Reports   store.ReportRepo
	Insight   *insight.Service
	Publisher publish.Publisher
	Logger    *zap.Logger

	// TopK is the number of highlighted categories; k <= 0 highlights none.
	TopK int

	// AllowOrigins lists CORS origins; empty allows any origin.
	AllowOrigins []string
}

// Server wires the HTTP handlers to a gin engine.
type Server struct {
	opts   Options
	logger *zap.Logger
	engine *gin.Engine
}

// New builds the server and registers its routes.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Publisher == nil {
		opts.Publisher = publish.Nop{}
	}

	s := &Server{opts: opts, logger: opts.Logger.Named("api")}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	r.Use(cors.New(corsConfig(opts.AllowOrigins)))

	r.GET("/healthz", s.healthz)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/bank", s.getBank)
		v1.POST("/assessments", s.createAssessment)

		reports := v1.Group("/reports")
		reports.GET("", s.listReports)
		reports.GET("/:id", s.getReport)
		reports.DELETE("/:id", s.deleteReport)
	}

	s.engine = r
	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: len(origins) > 0,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
