package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/hirewiz/hirewiz/internal/model"
)

// Copilot is the LLM-backed task surface the handlers depend on.
type Copilot interface {
	MatchCandidate(ctx context.Context, query, profile string) (model.MatchResult, error)
	ExtractSkills(ctx context.Context, resume string) (string, error)
	ExtractLocation(ctx context.Context, query string, countries []string) (string, error)
	EstimateExperience(ctx context.Context, resume string) (int, error)
	DraftOutreach(ctx context.Context, name, resume, message string) (string, error)
}

// Searcher runs the ranked candidate search pipeline.
type Searcher interface {
	Search(ctx context.Context, query string) ([]model.RankedCandidate, error)
}

// Server hosts the HireWiz HTTP API.
type Server struct {
	copilot Copilot
	ranker  Searcher
	store   model.CandidateStore
	timeout time.Duration // per-request budget for LLM-backed handlers
	logger  *slog.Logger
	engine  *gin.Engine
}

// Options configures a Server.
type Options struct {
	CORSOrigins []string // empty allows all origins (dev mode)
	AITimeout   time.Duration
}

// New creates a Server with all routes registered.
func New(copilot Copilot, ranker Searcher, store model.CandidateStore, opts Options, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.AITimeout <= 0 {
		opts.AITimeout = 30 * time.Second
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(opts.CORSOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = opts.CORSOrigins
	}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	engine.Use(cors.New(corsConfig))

	s := &Server{
		copilot: copilot,
		ranker:  ranker,
		store:   store,
		timeout: opts.AITimeout,
		logger:  logger,
		engine:  engine,
	}
	s.engine.Use(s.requestLogger())
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")
	{
		api.GET("/health", s.handleHealth)
		api.POST("/match", s.handleMatch)
		api.GET("/skills", s.handleSkills)
		api.GET("/location", s.handleLocation)
		api.GET("/experience", s.handleExperience)
		api.GET("/candidates", s.handleListCandidates)
		api.POST("/candidates", s.handleCreateCandidate)
		api.POST("/candidates/resume", s.handleResumeUpload)
		api.POST("/outreach", s.handleOutreach)
	}

	// Kept at the root for compatibility with the original frontend.
	s.engine.POST("/search", s.handleSearch)
}

// Handler exposes the underlying http.Handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves the API on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
