// Package http exposes the ledger over a JSON API:
//
//	POST   /api/transactions                  create a transaction
//	GET    /api/transactions/{userID}         list a user's transactions, newest first
//	DELETE /api/transactions/{id}             delete a transaction by id
//	GET    /api/transactions/summary/{userID} balance/income/expense summary
package http

import (
	"context"
	"net/http"
	"time"

	"wallet/internal/core"
	applog "wallet/internal/log"
	"wallet/internal/middleware/cors"
	"wallet/internal/middleware/ratelimit"
	"wallet/internal/middleware/trace"
)

// Ledger is the port the HTTP layer drives.
type Ledger interface {
	Create(ctx context.Context, t core.Transaction) (core.Transaction, error)
	ListByUser(ctx context.Context, userID string) ([]core.Transaction, error)
	Delete(ctx context.Context, id string) error
	Summarize(ctx context.Context, userID string) (core.Summary, error)
	Ready(ctx context.Context) error
}

// Options configures the server's middleware stack.
type Options struct {
	Logger        *applog.Logger
	AllowedOrigin string
	RateLimit     ratelimit.Config
}

type Server struct {
	http.Server
	ledger  Ledger
	limiter *ratelimit.Limiter
}

func NewServer(addr string, ledger Ledger, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentHTTP)
	}

	s := &Server{
		ledger:  ledger,
		limiter: ratelimit.NewLimiter(opts.RateLimit),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	mux.HandleFunc("GET /api/transactions/{userID}", s.handleListTransactions)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)
	mux.HandleFunc("GET /api/transactions/summary/{userID}", s.handleGetSummary)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	// CORS sits outside the limiter so rejected requests still carry the
	// allow-origin header and browser clients can read the 429.
	var handler http.Handler = mux
	handler = s.limiter.Middleware(applog.ClientIP)(handler)
	handler = cors.Middleware(cors.Config{AllowedOrigin: opts.AllowedOrigin})(handler)
	handler = applog.Middleware(logger, trace.GetRequestID)(handler)
	handler = trace.Middleware(handler)

	s.Server = http.Server{
		Addr:           addr,
		Handler:        handler,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16, // 64KB
	}

	return s
}

// Shutdown stops the listener and the rate limiter's cleanup goroutine.
func (s *Server) Shutdown(ctx context.Context) error {
	s.limiter.Shutdown()
	return s.Server.Shutdown(ctx)
}
