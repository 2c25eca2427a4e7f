package bootstrap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Domenick1991/resortbooking/api"
	"github.com/Domenick1991/resortbooking/config"
	wizardapi "github.com/Domenick1991/resortbooking/internal/api/wizard_service_api"
	"github.com/Domenick1991/resortbooking/internal/service/catalog"
	"github.com/Domenick1991/resortbooking/internal/session"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
)

type Servers struct {
	grpcServer *grpc.Server
	httpServer *http.Server
}

// Deps are the services both transports expose.
type Deps struct {
	Sessions session.SessionUseCase
	Catalog  catalog.CatalogUseCase
	// Gatherer backs /metrics; nil means the default registry.
	Gatherer prometheus.Gatherer
	// Ready reports whether backing stores are reachable for /healthz.
	Ready func(ctx context.Context) error
}

// Run starts the gRPC and HTTP servers and blocks until ctx is canceled or a
// server fails.
func Run(ctx context.Context, cfg *config.Config, deps Deps) error {
	s, err := newServers(cfg, deps)
	if err != nil {
		return err
	}

	errCh := make(chan error, 2)

	lis, err := net.Listen("tcp", cfg.GRPC.Address)
	if err != nil {
		return fmt.Errorf("listen gRPC %s: %w", cfg.GRPC.Address, err)
	}
	go func() { errCh <- s.grpcServer.Serve(lis) }()

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.grpcServer.GracefulStop()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newServers(cfg *config.Config, deps Deps) (*Servers, error) {
	wizardSrv := wizardapi.NewServer(deps.Sessions)
	grpcSrv := grpc.NewServer()
	wizardapi.RegisterWizardServiceServer(grpcSrv, wizardSrv)

	gateway, err := newGatewayMux(wizardSrv, deps.Catalog)
	if err != nil {
		return nil, err
	}

	handler := http.NewServeMux()
	handler.Handle("/v1/", gateway)
	handler.Handle("/", NewRouter(cfg, deps))

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Servers{
		grpcServer: grpcSrv,
		httpServer: httpSrv,
	}, nil
}

// NewRouter builds the gin engine serving the session API, the catalog,
// health and metrics.
func NewRouter(cfg *config.Config, deps Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if len(cfg.HTTP.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins: cfg.HTTP.AllowedOrigins,
			AllowMethods: []string{"GET", "POST", "DELETE"},
			AllowHeaders: []string{"Origin", "Content-Type"},
			MaxAge:       12 * time.Hour,
		}))
	}

	apiGroup := router.Group("/api")
	api.NewSessionHandler(deps.Sessions).Register(apiGroup.Group("/sessions"))
	api.NewCatalogHandler(deps.Catalog).Register(apiGroup.Group("/catalog"))

	router.GET("/healthz", func(c *gin.Context) {
		if deps.Ready != nil {
			if err := deps.Ready(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	return router
}

// newGatewayMux is the REST face of the gRPC API under /v1: WizardService
// routes with gRPC status codes mapped to HTTP, plus the read-only catalog
// that the gRPC service does not carry.
func newGatewayMux(wizardSrv wizardapi.WizardServiceServer, svc catalog.CatalogUseCase) (*runtime.ServeMux, error) {
	mux := runtime.NewServeMux()

	if err := wizardapi.RegisterWizardServiceHandlerServer(mux, wizardSrv); err != nil {
		return nil, fmt.Errorf("register wizard gateway: %w", err)
	}

	if err := mux.HandlePath(http.MethodGet, "/v1/catalog", func(w http.ResponseWriter, r *http.Request, _ map[string]string) {
		snapshot, err := svc.Snapshot(r.Context())
		writeJSON(w, snapshot, err)
	}); err != nil {
		return nil, fmt.Errorf("register catalog gateway: %w", err)
	}

	if err := mux.HandlePath(http.MethodGet, "/v1/catalog/addons/{id}", func(w http.ResponseWriter, r *http.Request, params map[string]string) {
		addOn, err := svc.AddOnByID(r.Context(), params["id"])
		writeJSON(w, addOn, err)
	}); err != nil {
		return nil, fmt.Errorf("register add-on gateway: %w", err)
	}

	if err := mux.HandlePath(http.MethodGet, "/v1/resort", func(w http.ResponseWriter, r *http.Request, _ map[string]string) {
		resort, err := svc.Resort(r.Context())
		writeJSON(w, resort, err)
	}); err != nil {
		return nil, fmt.Errorf("register resort gateway: %w", err)
	}

	return mux, nil
}

func writeJSON(w http.ResponseWriter, v any, err error) {
	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, catalog.ErrAddOnNotFound) {
			status = http.StatusNotFound
		}
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}
