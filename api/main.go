package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/storefront/internal/auth"
	"github.com/rogerio-castellano/storefront/internal/catalog"
	"github.com/rogerio-castellano/storefront/internal/config"
	"github.com/rogerio-castellano/storefront/internal/db"
	"github.com/rogerio-castellano/storefront/internal/http/handlers"
	rl "github.com/rogerio-castellano/storefront/internal/http/rate_limiter"
	"github.com/rogerio-castellano/storefront/internal/http/router"
	"github.com/rogerio-castellano/storefront/internal/metrics"
	"github.com/rogerio-castellano/storefront/internal/notify"
	"github.com/rogerio-castellano/storefront/internal/obs"
	"github.com/rogerio-castellano/storefront/internal/productapi"
	"github.com/rogerio-castellano/storefront/internal/productapi/mockapi"
	"github.com/rogerio-castellano/storefront/internal/redissvc"
	"github.com/rogerio-castellano/storefront/internal/repo"
	"github.com/rogerio-castellano/storefront/internal/visitor"
	"github.com/spf13/cobra"
)

// @title Storefront API
// @version 1.0
// @description Backend for the storefront: catalog, cart, checkout and theme.
// @host localhost:3000
// @BasePath /
// @securityDefinitions.basic BasicAuth
func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "storefront",
		Short:        "Storefront backend",
		SilenceUsage: true,
	}
	cmd.AddCommand(serveCmd(), mockAPICmd())
	return cmd
}

func serveCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the storefront HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			obs.InitLogger(cfg.LogLevel)
			return serve(cfg)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path")
	return cmd
}

func mockAPICmd() *cobra.Command {
	var (
		addr string
		seed bool
	)
	cmd := &cobra.Command{
		Use:   "mock-api",
		Short: "Run an in-memory product service for local development",
		RunE: func(cmd *cobra.Command, args []string) error {
			products := mockapi.NewInMemoryProductRepository()
			if seed {
				mockapi.Seed(products)
			}
			r := chi.NewRouter()
			r.Use(obs.RequestLogger)
			r.Mount("/api", mockapi.NewServer(products).NewRouter())

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return listen(ctx, &http.Server{Addr: addr, Handler: r}, 5*time.Second)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	cmd.Flags().BoolVar(&seed, "seed", true, "Load demo products")
	return cmd
}

type noopCloser struct{}

func (noopCloser) Close() error { return nil }

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// openRepository builds the configured persistence backend. The returned
// closer releases its connections.
func openRepository(ctx context.Context, cfg config.Config) (repo.KeyValueRepository, io.Closer, error) {
	switch cfg.PersistenceDriver {
	case config.DriverMemory:
		return repo.NewInMemoryKeyValueRepository(), noopCloser{}, nil
	case config.DriverFile:
		r := repo.NewFileKeyValueRepository(cfg.PersistenceFile)
		return r, r, nil
	case config.DriverRedis:
		rdb, err := redissvc.Connect(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		r := repo.NewRedisKeyValueRepository(rdb, cfg.RedisChannel)
		return r, closerFunc(func() error {
			return errors.Join(r.Close(), rdb.Close())
		}), nil
	case config.DriverPostgres:
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		r := repo.NewPostgresKeyValueRepository(database)
		if err := r.EnsureSchema(ctx); err != nil {
			database.Close()
			return nil, nil, err
		}
		return r, database, nil
	}
	return nil, nil, fmt.Errorf("unknown persistence driver %q", cfg.PersistenceDriver)
}

func serve(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closer, err := openRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	var publisher notify.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		kp := notify.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kp.Close()
		publisher = kp
	}

	client := productapi.NewClient(cfg.RemoteBaseURL, cfg.RemoteTimeout)
	visitors := visitor.NewRegistry(store, client, notify.NewHub(publisher))
	defer visitors.Close()
	collector := metrics.New(visitors.Len)

	images := catalog.NewImageCache()
	cat := catalog.New(client, images, cfg.ImageConcurrency)
	cat.OnImageFailure(collector.ImageFetchFailed)

	handlers.SetCatalog(cat)
	handlers.SetProductManager(catalog.NewManager(client, images))
	handlers.SetVisitorRegistry(visitors)
	handlers.SetMetrics(collector)

	limiter := rl.New(cfg.RateLimitRPS, cfg.RateLimitBurst)
	limiter.OnReject = collector.RateLimited
	go limiter.StartVisitorCleanupLoop(ctx)
	go visitors.StartCleanupLoop(ctx, time.Minute, 30*time.Minute)

	admin := auth.NewAdmin(cfg.AdminUsername, cfg.AdminPasswordHash)
	if !admin.Enabled() {
		obs.Logger.Warn("admin credentials not configured, product management is closed")
	}

	r := router.NewRouter(router.Config{
		Sessions: auth.NewSessions(cfg.SessionSecret, cfg.SessionTTL),
		Admin:    admin,
		Limiter:  limiter,
		Metrics:  collector,
	})

	obs.Logger.Info("storefront starting",
		"addr", cfg.HTTPAddr,
		"remote", cfg.RemoteBaseURL,
		"persistence", cfg.PersistenceDriver,
	)
	return listen(ctx, &http.Server{Addr: cfg.HTTPAddr, Handler: r, ReadHeaderTimeout: 10 * time.Second}, cfg.ShutdownTimeout)
}

// listen serves until ctx is cancelled, then shuts down gracefully.
func listen(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		obs.Logger.Info("server running", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	obs.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
