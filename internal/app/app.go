package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/alimikegami/storefront-service/config"
	"github.com/alimikegami/storefront-service/internal/auth"
	"github.com/alimikegami/storefront-service/internal/controller"
	"github.com/alimikegami/storefront-service/internal/infrastructure/cache/redis"
	"github.com/alimikegami/storefront-service/internal/infrastructure/database/mongodb"
	"github.com/alimikegami/storefront-service/internal/infrastructure/imagehost"
	"github.com/alimikegami/storefront-service/internal/infrastructure/message-queue/kafka"
	"github.com/alimikegami/storefront-service/internal/infrastructure/tracing"
	localmiddleware "github.com/alimikegami/storefront-service/internal/middleware"
	"github.com/alimikegami/storefront-service/internal/repository"
	"github.com/alimikegami/storefront-service/internal/service"
	"github.com/alimikegami/storefront-service/pkg/response"
	"github.com/alimikegami/storefront-service/pkg/validation"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type App struct {
	DB     *mongo.Database
	Config *config.Config
	Server *echo.Echo

	// Repository and Views replace the mongo and redis backed defaults when set.
	Repository repository.MongoDBProductRepository
	Views      repository.ViewCache
	Images     service.ImageStore

	traceProvider *sdktrace.TracerProvider
	metrics       *echo.Echo
	closers       []func(context.Context) error
	cancel        context.CancelFunc
}

// Start wires the server and blocks until it stops.
func (app *App) Start() {
	setupLogger(app.Config)

	ctx, cancel := context.WithCancel(context.Background())
	app.cancel = cancel

	if err := app.Build(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to build server")
	}

	go func() {
		if err := app.metrics.Start(fmt.Sprintf(":%s", app.Config.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start metrics server")
		}
	}()

	if err := app.Server.Start(fmt.Sprintf(":%s", app.Config.ServicePort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}

func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsProduction() {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Str("service", tracing.ServiceName).Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout}).With().Logger()
}

// Build creates the echo server and every collaborator behind it without listening.
func (app *App) Build(ctx context.Context) error {
	cfg := app.Config

	traceProvider, err := tracing.InitTracing(ctx, cfg.TracingConfig.CollectorHost)
	if err != nil {
		return err
	}
	app.traceProvider = traceProvider
	app.closers = append(app.closers, traceProvider.Shutdown)

	repo := app.Repository
	if repo == nil {
		if app.DB == nil {
			return errors.New("no database configured")
		}
		repo = repository.CreateNewMongoDBRepository(app.DB)
	}
	if err := repo.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensuring indexes: %w", err)
	}

	views := app.Views
	if views == nil {
		views = app.viewCache(ctx)
	}

	images := app.Images
	if images == nil {
		images = imagehost.NewImageKit(cfg.ImageKitConfig)
	}

	invalidator := app.invalidator(ctx, views)

	sessions := auth.NewSessions(cfg.JWTConfig, cfg.IsProduction())
	admin := auth.NewAdmin(cfg.AdminConfig)
	authorizer := auth.NewAuthorizer(sessions, admin)
	requireAdmin := localmiddleware.RequireAdmin(authorizer)

	productService := service.CreateProductService(repo, views, images, invalidator, *cfg)
	catalogService := service.CreateCatalogService(repo, views)
	adminService := service.CreateAdminService(admin, sessions, invalidator)

	e := echo.New()
	e.HideBanner = true
	e.Validator = validation.New()

	tracer := traceProvider.Tracer(tracing.ServiceName)
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, span := tracer.Start(c.Request().Context(), fmt.Sprintf("[%s] %s", c.Request().Method, c.Path()))
			defer span.End()

			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	})

	// Used empty string so that metrics are not prefixed with the service name making it easier to aggregate across services
	e.Use(echoprometheus.NewMiddleware(""))
	e.Use(middleware.Recover())
	e.Use(localmiddleware.Logger)
	e.Use(localmiddleware.PageGate(authorizer))

	g := e.Group("/api")
	controller.CreateProductController(g, productService, requireAdmin)
	controller.CreateCatalogController(g, catalogService)
	controller.CreateAdminController(g, adminService, sessions, authorizer, requireAdmin)
	controller.RegisterDashboard(e, catalogService)

	g.GET("/ping", func(c echo.Context) error {
		return response.WriteSuccessResponse(c, "pong", nil)
	})

	metrics := echo.New()
	metrics.HideBanner = true
	metrics.GET("/metrics", echoprometheus.NewHandler())

	app.Server = e
	app.metrics = metrics
	return nil
}

// viewCache uses redis when configured and reachable, and no cache otherwise.
func (app *App) viewCache(ctx context.Context) repository.ViewCache {
	cfg := app.Config.RedisConfig
	if cfg.URL == "" {
		return repository.NoopViewCache{}
	}

	client, err := redis.NewClient(ctx, cfg)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, serving without view cache")
		return repository.NoopViewCache{}
	}
	app.closers = append(app.closers, func(context.Context) error { return client.Close() })

	return repository.CreateNewRedisViewCache(client, cfg.ViewCacheTTL)
}

// invalidator publishes through kafka when a broker is configured. The consumer applies
// invalidations from every instance to this instance's view cache.
func (app *App) invalidator(ctx context.Context, views repository.ViewCache) service.Invalidator {
	cfg := app.Config.KafkaConfig
	if cfg.BrokerAddress == "" {
		return service.CreateCacheInvalidator(views)
	}

	writer := kafka.CreateKafkaWriter(cfg)
	reader := kafka.CreateKafkaReader(cfg)
	app.closers = append(app.closers,
		func(context.Context) error { return writer.Close() },
		func(context.Context) error { return reader.Close() },
	)

	go service.ConsumeEvent(ctx, reader, views)

	return service.CreateKafkaInvalidator(writer)
}

func (app *App) StopServer() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var errs []error
	if app.Server != nil {
		errs = append(errs, app.Server.Shutdown(ctx))
	}
	if app.metrics != nil {
		errs = append(errs, app.metrics.Shutdown(ctx))
	}
	if app.cancel != nil {
		app.cancel()
	}
	for i := len(app.closers) - 1; i >= 0; i-- {
		errs = append(errs, app.closers[i](ctx))
	}
	if app.DB != nil {
		errs = append(errs, mongodb.Disconnect(ctx))
	}

	return errors.Join(errs...)
}
