package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	config "github.com/xilidan/echotube/config/api"
	"github.com/xilidan/echotube/gateways/api/clients/youtube"
	"github.com/xilidan/echotube/gateways/api/contract"
	"github.com/xilidan/echotube/gateways/api/handler"
	"github.com/xilidan/echotube/gateways/api/openapi"
	"github.com/xilidan/echotube/pkg/gen"
)

const (
	title        = "EchoTube API"
	docsPath     = "/api/docs"
	specJSONPath = "/api/swagger.json"
	specYAMLPath = "/api/swagger.yaml"
)

type Server struct {
	cfg      *config.Config
	log      *slog.Logger
	registry *contract.Registry
	handler  *handler.Handler
	ids      gen.UUIDGenerator

	specJSON []byte
	specYAML []byte
	docsPage []byte
}

type Option func(*options)

type options struct {
	newService handler.ServiceFactory
	ids        gen.UUIDGenerator
}

// WithServiceFactory replaces the YouTube backend.
func WithServiceFactory(f handler.ServiceFactory) Option {
	return func(o *options) { o.newService = f }
}

func WithRequestIDs(g gen.UUIDGenerator) Option {
	return func(o *options) { o.ids = g }
}

func New(cfg *config.Config, log *slog.Logger, opts ...Option) (*Server, error) {
	log.Info("creating new api server")
	log.Debug("server config",
		slog.Int("port", cfg.Port),
		slog.String("base_url", cfg.BaseURL),
		slog.Int("api_version", cfg.APIVersion),
		slog.String("default_language", cfg.DefaultLanguage),
		slog.String("youtube_base_url", cfg.YouTube.BaseURL))

	languageName, hl, err := handler.LanguageName(cfg.DefaultLanguage)
	if err != nil {
		return nil, err
	}

	o := options{ids: gen.UUID()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.newService == nil {
		log.Debug("using youtube service", slog.String("hl", hl), slog.String("gl", cfg.YouTube.GL))
		o.newService = handler.YouTube(youtube.Config{
			BaseURL:    cfg.YouTube.BaseURL,
			HL:         hl,
			GL:         cfg.YouTube.GL,
			HTTPClient: &http.Client{Timeout: cfg.YouTube.Timeout},
			Log:        log,
		})
	}

	registry := contract.API().ForVersion(cfg.APIVersion)
	log.Info("contract loaded",
		slog.Int("api_version", cfg.APIVersion),
		slog.Int("operations", len(registry.Endpoints())))

	doc := openapi.Generate(registry, openapi.Info{
		Title:   title,
		Version: fmt.Sprintf("%d.0.0", cfg.APIVersion),
	}, cfg.BaseURL)
	specJSON, err := doc.JSON()
	if err != nil {
		return nil, err
	}
	specYAML, err := doc.YAML()
	if err != nil {
		return nil, err
	}
	page, err := openapi.DocsPage(title, specJSONPath)
	if err != nil {
		return nil, err
	}

	return &Server{
		cfg:      cfg,
		log:      log,
		registry: registry,
		handler:  handler.New(registry, o.newService, languageName, log),
		ids:      o.ids,
		specJSON: specJSON,
		specYAML: specYAML,
		docsPage: page,
	}, nil
}

// Router builds the HTTP handler serving the API and its documentation.
func (s *Server) Router() (http.Handler, error) {
	router := chi.NewRouter()
	router.Use(middleware.RealIP)
	router.Use(requestID(s.ids))
	router.Use(requestLogger(s.log))
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))

	router.Get("/health", s.handler.HealthCheck)
	router.Get(docsPath, s.serveStatic("text/html; charset=utf-8", s.docsPage))
	router.Get(docsPath+"/", s.serveStatic("text/html; charset=utf-8", s.docsPage))
	router.Get(specJSONPath, s.serveStatic("application/json", s.specJSON))
	router.Get(specYAMLPath, s.serveStatic("application/yaml", s.specYAML))

	if err := s.handler.Mount(router); err != nil {
		return nil, err
	}
	return router, nil
}

func (s *Server) serveStatic(contentType string, body []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	}
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.log.Info("starting api server")
	router, err := s.Router()
	if err != nil {
		return fmt.Errorf("failed to build router: %w", err)
	}

	addr := fmt.Sprintf(":%d", s.cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	s.log.Debug("HTTP server configured", slog.String("addr", addr))

	serverErrors := make(chan error, 1)
	go func() {
		s.log.Info("api gateway started",
			slog.String("address", addr),
			slog.String("docs", s.cfg.BaseURL+"api/docs"))
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		s.log.Error("server error received", slog.String("error", err.Error()))
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		s.log.Info("closing server due to context cancellation")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.log.Info("shutting down HTTP server gracefully", slog.Duration("timeout", s.cfg.ShutdownTimeout))
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.log.Error("graceful shutdown failed", slog.String("error", err.Error()))
		s.log.Warn("forcing server close")
		srv.Close()
		return fmt.Errorf("failed to gracefully shutdown server: %w", err)
	}
	s.log.Info("server stopped cleanly")
	return nil
}
