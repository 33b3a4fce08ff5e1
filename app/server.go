package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/htol/bookshop/api"
	"github.com/htol/bookshop/config"
	"github.com/htol/bookshop/logger"
	"github.com/htol/bookshop/recommend"
	"github.com/htol/bookshop/repo"
	"github.com/htol/bookshop/service"
	"github.com/htol/bookshop/session"
)

const shutdownTimeout = 30 * time.Second

// Server owns the store, the recommendation gateway and the HTTP handler
type Server struct {
	storage  *repo.Repo
	service  *service.Service
	sessions *session.Registry
	config   *config.Config
}

// openStore opens the in-memory store seeded from cfg
func openStore(ctx context.Context, cfg *config.Config) (*repo.Repo, error) {
	seed, err := repo.LoadSeedFile(cfg.Store.SeedPath)
	if err != nil {
		return nil, fmt.Errorf("load seed: %w", err)
	}
	return repo.Open(ctx, seed)
}

// newRecommender builds the Gemini-backed gateway. Without an API key the
// storefront runs with recommendations disabled
func newRecommender(ctx context.Context, cfg config.RecommendConfig) (recommend.Recommender, error) {
	if cfg.APIKey == "" {
		logger.Warn("No Gemini API key configured, recommendations disabled")
		return nil, nil
	}
	gen, err := recommend.NewGeminiGenerator(ctx, cfg.APIKey, cfg.Model)
	if err != nil {
		return nil, err
	}
	logger.Info("Recommendations enabled", "model", gen.Name())
	return recommend.NewGateway(gen, recommend.Options{
		Timeout: time.Duration(cfg.Timeout) * time.Second,
		RPS:     cfg.RPS,
		Burst:   cfg.Burst,
	}), nil
}

// NewServer opens the seeded store and builds the HTTP handler from cfg
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	storage, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	rec, err := newRecommender(ctx, cfg.Recommend)
	if err != nil {
		_ = storage.Close()
		return nil, err
	}

	svc, err := service.New(storage, rec, service.Credentials{
		Username: cfg.Admin.Username,
		Password: cfg.Admin.Password,
	})
	if err != nil {
		_ = storage.Close()
		return nil, err
	}

	return &Server{
		storage:  storage,
		service:  svc,
		sessions: session.NewRegistry(cfg.Session.TTL),
		config:   cfg,
	}, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.config.Server.Port))
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return s.serve(ctx, ln)
}

func (s *Server) serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler: api.NewHandler(ctx, s.service, s.sessions, api.Options{CORSOrigins: s.config.Server.CORSOrigins}),

		ReadTimeout:  time.Duration(s.config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.config.Server.IdleTimeout) * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	err := g.Wait()
	logger.Info("Server stopped")
	return err
}

// Close releases the store
func (s *Server) Close() error {
	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			return err
		}
	}
	return nil
}
