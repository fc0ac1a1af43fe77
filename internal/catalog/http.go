package catalog

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"ProductCatalog/pkg/kit"
)

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string

	// WriteRateLimit is requests per client IP per minute on mutating routes.
	WriteRateLimit int
}

const writeLimitWindow = time.Minute

func NewHandler(s *Server, deps HTTPDeps) http.Handler {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}

	r := chi.NewRouter()

	setupMiddleware(r, deps)
	setupMetrics(r, s, deps)
	setupDocs(r)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		kit.WriteError(w, r, http.StatusNotFound, "Not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		kit.WriteError(w, r, http.StatusMethodNotAllowed, "Method not allowed", nil)
	})

	r.Mount("/", s.Routes(writeLimits(deps)...))
	return r
}

func setupMiddleware(r *chi.Mux, deps HTTPDeps) {
	r.Use(kit.RequestID)
	r.Use(kit.Tracing(deps.Service))
	r.Use(kit.Logging(deps.Log))
	r.Use(kit.Recoverer)
	r.Use(kit.CORS())
}

func setupMetrics(r *chi.Mux, s *Server, deps HTTPDeps) {
	if deps.Registry == nil {
		return
	}

	metrics := kit.NewMetrics(deps.Registry)
	r.Use(metrics.Middleware(deps.Service, kit.RouteLabel))
	deps.Registry.MustRegister(productsGauge(s.Store))

	if !deps.MetricsEnabled {
		return
	}

	r.With(kit.MetricsAuth(deps.MetricsToken)).
		Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
}

func productsGauge(st Store) prometheus.GaugeFunc {
	return prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "catalog_products",
			Help: "Products currently held by the catalog",
		},
		func() float64 {
			ps, err := st.ListAll(context.Background())
			if err != nil {
				return 0
			}
			return float64(len(ps))
		},
	)
}

func writeLimits(deps HTTPDeps) []func(http.Handler) http.Handler {
	if deps.WriteRateLimit <= 0 {
		return nil
	}
	l := kit.NewIPRateLimiter(deps.WriteRateLimit, writeLimitWindow)
	return []func(http.Handler) http.Handler{l.Middleware}
}
