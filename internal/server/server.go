package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/santoshgudeti/skillmatrix-offers/internal/config"
	"github.com/santoshgudeti/skillmatrix-offers/internal/db"
	"github.com/santoshgudeti/skillmatrix-offers/internal/letterhead"
	"github.com/santoshgudeti/skillmatrix-offers/internal/notify"
	"github.com/santoshgudeti/skillmatrix-offers/internal/pipeline"
	"github.com/santoshgudeti/skillmatrix-offers/internal/server/ratelimit"
	"github.com/santoshgudeti/skillmatrix-offers/internal/storage"
	"github.com/santoshgudeti/skillmatrix-offers/internal/types"
)

// OfferStore is the offer persistence surface the handlers use.
type OfferStore interface {
	GetOffer(ctx context.Context, id uuid.UUID, companyID string) (*db.Offer, error)
	ListOffers(ctx context.Context, companyID, status string, page, limit int) ([]db.Offer, int, error)
	UpdateOfferStatus(ctx context.Context, id uuid.UUID, companyID, status string) (*db.Offer, error)
	SoftDeleteOffer(ctx context.Context, id uuid.UUID, companyID string) (bool, error)
}

// Generator runs the offer generation pipeline.
type Generator interface {
	Generate(ctx context.Context, facts *types.OfferFacts, opts pipeline.Options) (*pipeline.Result, error)
}

// LetterheadManager is the letterhead service surface the handlers use.
type LetterheadManager interface {
	Activate(ctx context.Context, companyID, filename string, data []byte) (*db.Letterhead, error)
	GetActive(ctx context.Context, companyID string) (*db.Letterhead, []byte, error)
	PreviewURL(ctx context.Context, companyID string) (string, error)
	Deactivate(ctx context.Context, companyID string) (bool, error)
	Cleanup(ctx context.Context, companyID string, retention time.Duration) (int, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	store       storage.Store
	offers      OfferStore
	generator   Generator
	letterheads LetterheadManager
	notifier    notify.Notifier
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
	signTTL     time.Duration
	lhRetention time.Duration
}

// New creates a new server instance wired to PostgreSQL and MinIO.
func New(cfg *config.Config) (*Server, error) {
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store, err := storage.NewMinioStore(cfg.Storage)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create object store: %w", err)
	}

	var notifier notify.Notifier = notify.LogNotifier{}
	if cfg.MailConfigured() {
		notifier, err = notify.NewSMTPNotifier(cfg.SMTP)
		if err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to create mail notifier: %w", err)
		}
	}

	letterheads := letterhead.NewService(database, store, cfg.SignedURLTTL)
	gen := pipeline.New(letterheads, store, database).WithBands(cfg.Bands())

	s := &Server{
		db:          database,
		store:       store,
		offers:      database,
		generator:   gen,
		letterheads: letterheads,
		notifier:    notifier,
		signTTL:     cfg.SignedURLTTL,
		lhRetention: cfg.LetterheadRetention,
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(database, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the router. Everything except /health and /auth/* sits
// behind JWT authentication.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /auth/register", s.authHandler.handleRegister)
	mux.HandleFunc("POST /auth/login", s.authHandler.handleLogin)

	authed := http.NewServeMux()
	authed.HandleFunc("GET /auth/me", s.handleMe)

	authed.HandleFunc("POST /offers", s.handleCreateOffer)
	authed.HandleFunc("GET /offers", s.handleListOffers)
	authed.HandleFunc("GET /offers/{id}", s.handleGetOffer)
	authed.HandleFunc("PATCH /offers/{id}/status", s.handleUpdateOfferStatus)
	authed.HandleFunc("DELETE /offers/{id}", s.handleDeleteOffer)
	authed.HandleFunc("GET /offers/{id}/download", s.handleDownloadOffer)
	authed.HandleFunc("POST /offers/{id}/send", s.handleSendOffer)

	authed.HandleFunc("POST /letterheads", s.handleUploadLetterhead)
	authed.HandleFunc("GET /letterheads/active", s.handleGetLetterhead)
	authed.HandleFunc("DELETE /letterheads/active", s.handleDeleteLetterhead)

	mux.Handle("/", s.withAuth(authed))
	return mux
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	s.db.Close()
	log.Println("Server stopped")
	return nil
}
