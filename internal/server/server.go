// Package server wires the ledger's Connect services, the CSV download
// route and the metrics endpoint into one HTTP server.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/splitledger/internal/auth"
	"github.com/mmynk/splitledger/internal/balance"
	"github.com/mmynk/splitledger/internal/config"
	"github.com/mmynk/splitledger/internal/metrics"
	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/service"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/pkg/api/apiconnect"
)

// Options holds the HTTP server settings.
type Options struct {
	// Addr is the TCP address the server listens on, e.g. ":8080".
	Addr string
	// ReadTimeout is the maximum duration for reading the entire request, including the body.
	ReadTimeout time.Duration
	// ReadHeaderTimeout is the amount of time allowed to read request headers.
	ReadHeaderTimeout time.Duration
	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration
	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration
	// RequestTimeout is applied to every request via http.TimeoutHandler.
	RequestTimeout time.Duration
	// MetricsPath is the HTTP path at which Prometheus metrics are served.
	MetricsPath string
	// AllowedOrigin is the CORS origin allowed to call the API.
	AllowedOrigin string
}

// NewOptions maps the HTTP section of the configuration to Options.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Addr:              cfg.HTTP.Addr,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		RequestTimeout:    cfg.HTTP.RequestTimeout,
		MetricsPath:       cfg.HTTP.MetricsPath,
		AllowedOrigin:     cfg.HTTP.AllowedOrigin,
	}
}

// Deps are the collaborators the server routes to.
type Deps struct {
	Store      storage.Store
	JWTManager *auth.JWTManager
	// Authenticator defaults to a bcrypt PasswordAuthenticator over Store.
	Authenticator auth.Authenticator
	Metrics       *metrics.Metrics
	// Gatherer is scraped at Options.MetricsPath.
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// Handler builds the routed handler without the http.Server around it.
func Handler(deps Deps, opts Options) http.Handler {
	authenticator := deps.Authenticator
	if authenticator == nil {
		authenticator = auth.NewPasswordAuthenticator(deps.Store)
	}
	aggregator := balance.New(deps.Store, deps.Logger)

	// Metrics sees every call, auth rejections included; logging runs after
	// auth so it can report the caller.
	interceptors := connect.WithInterceptors(
		middleware.MetricsInterceptor(deps.Metrics),
		middleware.RequireAuth(deps.JWTManager, apiconnect.PublicProcedures),
		middleware.LoggingInterceptor(deps.Logger),
	)

	mux := http.NewServeMux()

	// prometheus metrics
	mux.Handle(opts.MetricsPath, promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))

	// connect services
	mux.Handle(apiconnect.NewUserServiceHandler(
		service.NewUserService(authenticator, deps.JWTManager, deps.Store, deps.Logger), interceptors))
	mux.Handle(apiconnect.NewLedgerServiceHandler(
		service.NewLedgerService(deps.Store, deps.Metrics, deps.Logger), interceptors))
	mux.Handle(apiconnect.NewBalanceServiceHandler(
		service.NewBalanceService(aggregator, deps.Logger), interceptors))

	// csv export
	mux.Handle(service.DownloadPattern,
		middleware.RequireAuthHTTP(deps.JWTManager)(service.DownloadHandler(aggregator, deps.Logger)))

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	handler := middleware.CORS(opts.AllowedOrigin)(mux)
	handler = middleware.RequestLogger(deps.Logger)(handler)
	if opts.RequestTimeout > 0 {
		handler = http.TimeoutHandler(handler, opts.RequestTimeout, `{"code":"deadline_exceeded","message":"request timed out"}`)
	}

	// h2c serves HTTP/2 without TLS, which gRPC-style Connect clients need.
	return h2c.NewHandler(handler, &http2.Server{})
}

// New returns a configured *http.Server for the ledger.
func New(deps Deps, opts Options) *http.Server {
	return &http.Server{
		Addr:              opts.Addr,
		Handler:           Handler(deps, opts),
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
	}
}
