package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/promptpilot/promptpilot/internal/adapters/http/handlers"
	"github.com/promptpilot/promptpilot/internal/adapters/http/middleware"
	"github.com/promptpilot/promptpilot/internal/cache"
	"github.com/promptpilot/promptpilot/internal/config"
	"github.com/promptpilot/promptpilot/internal/enhancer"
	"github.com/promptpilot/promptpilot/internal/llm"
	"github.com/promptpilot/promptpilot/internal/ports"
	"github.com/promptpilot/promptpilot/internal/scoring"
)

type Server struct {
	config        *config.Config
	router        *chi.Mux
	httpServer    *http.Server
	enhancer      *enhancer.Service
	scorer        *scoring.Scorer
	resultCache   *cache.Cache
	promptRepo    ports.PromptRepository
	analyticsRepo ports.AnalyticsRepository
	usageMetrics  ports.UsageMetricsProvider
	txManager     ports.TransactionManager
	idGen         ports.IDGenerator
	db            *pgxpool.Pool
	llmClient     *llm.Client
}

func NewServer(
	cfg *config.Config,
	enhancerService *enhancer.Service,
	scorer *scoring.Scorer,
	resultCache *cache.Cache,
	promptRepo ports.PromptRepository,
	analyticsRepo ports.AnalyticsRepository,
	usageMetrics ports.UsageMetricsProvider,
	txManager ports.TransactionManager,
	idGen ports.IDGenerator,
	db *pgxpool.Pool,
	llmClient *llm.Client,
) *Server {
	s := &Server{
		config:        cfg,
		enhancer:      enhancerService,
		scorer:        scorer,
		resultCache:   resultCache,
		promptRepo:    promptRepo,
		analyticsRepo: analyticsRepo,
		usageMetrics:  usageMetrics,
		txManager:     txManager,
		idGen:         idGen,
		db:            db,
		llmClient:     llmClient,
	}

	s.setupRouter()
	return s
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recovery)
	r.Use(middleware.CORS(s.config.Server.CORSOrigins))
	r.Use(middleware.Metrics)

	healthHandler := handlers.NewHealthHandler()
	detailedHealthHandler := handlers.NewHealthHandlerWithDeps(s.db, s.llmClient)
	r.Get("/health", healthHandler.Handle)
	r.Get("/health/detailed", detailedHealthHandler.HandleDetailed)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth)

		enhanceHandler := handlers.NewEnhanceHandler(s.enhancer)
		r.Post("/enhance", enhanceHandler.Enhance)

		techniquesHandler := handlers.NewTechniquesHandler()
		r.Get("/techniques", techniquesHandler.List)

		performanceHandler := handlers.NewPerformanceHandler(s.resultCache, s.scorer)
		r.Get("/performance", performanceHandler.Stats)
		r.Get("/suggestions", performanceHandler.Suggestions)

		if s.promptRepo != nil {
			promptsHandler := handlers.NewPromptsHandler(s.promptRepo, s.idGen, s.scorer, s.usageMetrics, s.txManager)
			r.Get("/prompts", promptsHandler.List)
			r.Post("/prompts", promptsHandler.Create)
			r.Get("/prompts/{id}", promptsHandler.Get)
			r.Delete("/prompts/{id}", promptsHandler.Delete)
			r.Get("/prompts/{id}/score", promptsHandler.Score)
			r.Post("/prompts/{id}/favorite", promptsHandler.ToggleFavorite)
			r.Post("/prompts/{id}/use", promptsHandler.RecordUse)
		}

		if s.analyticsRepo != nil && s.promptRepo != nil {
			analyticsHandler := handlers.NewAnalyticsHandler(s.analyticsRepo, s.promptRepo)
			r.Get("/analytics", analyticsHandler.Get)
		}
	})

	s.router = r
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Starting HTTP server on %s", addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	log.Println("Shutting down HTTP server...")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) Router() *chi.Mux {
	return s.router
}
