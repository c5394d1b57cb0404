// Package app wires the service together: storage, checkout, HTTP server,
// probes and graceful shutdown.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/xenking/cafepos/internal/checkout"
	"github.com/xenking/cafepos/internal/domain/catalog"
	"github.com/xenking/cafepos/internal/domain/giftcode"
	"github.com/xenking/cafepos/internal/domain/money"
	"github.com/xenking/cafepos/internal/domain/order"
	"github.com/xenking/cafepos/internal/handler"
	"github.com/xenking/cafepos/internal/storage/memory"
	"github.com/xenking/cafepos/internal/storage/postgres"
	"github.com/xenking/cafepos/pkg/health"
	"github.com/xenking/cafepos/pkg/httpmiddleware"
)

// Run creates all dependencies, starts the HTTP server, and handles graceful
// shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing", zap.String("addr", cfg.Addr))

	healthSvc := health.New()
	healthSvc.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))

	var (
		orderRepo order.Repository
		codeRepo  giftcode.Repository
	)
	if cfg.DatabaseURL != "" {
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return errors.Wrap(err, "create db pool")
		}
		defer pool.Close()

		if err := postgres.RunMigrations(ctx, pool); err != nil {
			return errors.Wrap(err, "run migrations")
		}

		healthSvc.AddReadinessCheck("postgres", 5*time.Second, func(ctx context.Context) error {
			return pool.Ping(ctx)
		})

		orderRepo = postgres.NewOrderRepository(pool)
		codeRepo = postgres.NewGiftCodeRepository(pool)
	} else {
		lg.Warn("No database configured, using in-memory storage")
		orderRepo = memory.NewOrderRepository()
		codeRepo = seedDemoCodes(ctx, lg)
	}

	factory := catalog.NewFactory()
	checkoutSvc, err := checkout.NewService(
		factory,
		orderRepo,
		giftcode.NewResolver(codeRepo),
		cfg.TaxPercent,
		order.NewKitchenDisplay(lg.Named("kitchen")),
		order.NewCustomerNotifier(lg.Named("customer")),
	)
	if err != nil {
		return errors.Wrap(err, "create checkout service")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", healthSvc.LiveEndpoint)
	mux.HandleFunc("/readyz", healthSvc.ReadyEndpoint)
	handler.NewHandler(checkoutSvc, factory).Routes(mux)

	instrumented := otelhttp.NewHandler(mux, "cafepos",
		otelhttp.WithTracerProvider(m.TracerProvider()),
		otelhttp.WithMeterProvider(m.MeterProvider()),
	)

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler: httpmiddleware.Wrap(instrumented,
			httpmiddleware.Recovery(),
			httpmiddleware.CORS(httpmiddleware.CORSConfig{
				AllowOrigins:     cfg.CORS.Origins,
				AllowHeaders:     []string{"Content-Type", "Authorization"},
				AllowCredentials: cfg.CORS.AllowCredentials,
				MaxAge:           86400,
			}),
			httpmiddleware.RateLimitWithCleanup(ctx, httpmiddleware.RateLimitConfig{
				Max:    cfg.RateLimit.Max,
				Window: cfg.RateLimit.Window,
			}),
			httpmiddleware.RequestID(),
			httpmiddleware.InjectLogger(zctx.From(ctx)),
			httpmiddleware.LogRequests(),
		),
	}

	healthSvc.SetReady(true)

	// Graceful shutdown: wait for context cancellation, drain, then stop.
	shutdownDone := make(chan struct{})
	go func() {
		<-ctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		close(shutdownDone)
	}()

	lg.Info("Server listening", zap.String("addr", cfg.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server")
	}
	<-shutdownDone
	return nil
}

// seedDemoCodes fills the in-memory gift code store so local runs have
// something to redeem.
func seedDemoCodes(ctx context.Context, lg *zap.Logger) *memory.GiftCodeRepository {
	repo := memory.NewGiftCodeRepository()
	for _, c := range []giftcode.Code{
		{Code: "WELCOME5", Amount: money.MustParse("5.00"), Description: "Welcome gift"},
		{Code: "COFFEE10", Amount: money.MustParse("10.00"), Description: "Ten off"},
	} {
		if err := repo.Upsert(ctx, c); err != nil {
			lg.Warn("Seed gift code failed", zap.String("code", c.Code), zap.Error(err))
			continue
		}
		lg.Info("Seeded demo gift code", zap.String("code", c.Code), zap.String("amount", c.Amount.String()))
	}
	return repo
}
