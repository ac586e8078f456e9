package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"rentreceipt/internal/auth"
	"rentreceipt/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

var decoder = form.NewDecoder()

type ReceiptBuilder interface {
	Build(ctx context.Context, id int64) (*types.ReceiptData, error)
}

type ReceiptRenderer interface {
	Render(data *types.ReceiptData) ([]byte, error)
}

type DocumentStore interface {
	Bucket() string
	Place(ctx context.Context, userID, leaseID int64, filename string, body []byte) (*types.StoredDocument, error)
	List(ctx context.Context, userID int64) ([]*types.StoredDocument, error)
	Delete(ctx context.Context, userID int64, filename string) error
}

type Service struct {
	logger   *logrus.Logger
	config   *types.Config
	verifier auth.Verifier
	validate *validator.Validate
	metrics  *Metrics

	receipts  ReceiptBuilder
	renderer  ReceiptRenderer
	documents DocumentStore

	handler http.Handler
	server  *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	registry *prometheus.Registry,
	verifier auth.Verifier,
	receipts ReceiptBuilder,
	renderer ReceiptRenderer,
	documents DocumentStore,
) *Service {
	mux := flow.New()

	s := &Service{
		logger:   logger,
		config:   config,
		verifier: verifier,
		validate: newValidator(),
		metrics:  NewMetrics(registry),

		receipts:  receipts,
		renderer:  renderer,
		documents: documents,

		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	s.buildRouter(mux, registry)

	// Preflight requests never match a route, so CORS wraps the whole mux.
	s.handler = s.CORSMiddleware()(mux)
	s.server.Handler = s.handler

	return s
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Service) Handler() http.Handler {
	return s.handler
}

func (s *Service) buildRouter(r *flow.Mux, registry *prometheus.Registry) {
	r.Use(s.RecoverMiddleware)
	r.Use(s.RequestIDMiddleware)
	r.Use(s.LoggingMiddleware)
	r.Use(s.SecureHeadersMiddleware())

	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}), http.MethodGet)

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireBearer)

		r.HandleFunc("/api/rent-receipt", s.handlePostRentReceipt, http.MethodPost)
		r.HandleFunc("/api/documents", s.handleGetDocuments, http.MethodGet)
		r.HandleFunc("/api/documents/:filename", s.handleDeleteDocument, http.MethodDelete)
	})
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func identityFromContext(ctx context.Context) (*types.Identity, error) {
	identity, ok := ctx.Value(contextKeyIdentity).(*types.Identity)
	if !ok || identity == nil {
		return nil, fmt.Errorf("identity not found in context: %w", types.ErrUnauthorized)
	}
	return identity, nil
}
