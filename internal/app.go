package internal

import (
	"blueghost/internal/controllers"
	"blueghost/internal/providers"
	"blueghost/internal/services"
	"blueghost/internal/storage"
	"blueghost/internal/structures"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type App struct {
	WebServer   *http.Server
	logger      providers.Logger
	fileManager *storage.FileManager
}

func NewApp(conf *structures.Config, logger providers.Logger, router providers.RouterProviderInterface, healthController *controllers.HealthController, verifier providers.SessionVerifier, store services.StoryStoreInterface, fileManager *storage.FileManager, metrics providers.MetricsProviderInterface) (*App, error) {
	logger.Infof(providers.TypeApp, "Starting %s", conf.AppName)

	if err := store.Load(); err != nil {
		return nil, fmt.Errorf("failed to load story store: %w", err)
	}

	// Inner mux: everything behind the login gate
	gated := http.NewServeMux()
	// Outer mux: infrastructure, public routes and the gate
	mux := http.NewServeMux()
	endpoints := []string{"/health", "/metrics"}
	for _, route := range router.GetRoutes() {
		endpoints = append(endpoints, strings.TrimSuffix(route.Url, "{$}"))
		if route.Public {
			mux.Handle(route.Url, route.Handler)
		} else {
			gated.Handle(route.Url, route.Handler)
		}
	}
	mux.HandleFunc("/health", healthController.Health)
	if conf.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Handle("/", providers.SessionMiddleware(verifier, conf.Cookie.Name, logger, gated))

	handler := providers.AccessLogMiddleware(logger, providers.MetricsMiddleware(metrics, endpoints, mux))

	return &App{
		WebServer: &http.Server{
			Addr:         conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:      handler,
			ReadTimeout:  conf.WebServer.ReadTimeout,
			WriteTimeout: conf.WebServer.WriteTimeout,
			IdleTimeout:  60 * time.Second,
		},
		logger:      logger,
		fileManager: fileManager,
	}, nil
}

// Run serves until SIGINT/SIGTERM or a listener error. Every append is
// already durable, so shutdown only drains in-flight requests.
func (a *App) Run() error {
	serverErr := make(chan error, 1)
	go func() {
		a.logger.Infof(providers.TypeApp, "Listening HTTP clients on %s", a.WebServer.Addr)
		if err := a.WebServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case <-stop:
		a.logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.WebServer.Shutdown(ctx); err != nil {
		return err
	}
	a.fileManager.Close()
	a.logger.Infof(providers.TypeApp, "gracefully stopped")
	return nil
}
