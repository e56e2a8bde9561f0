// Package server wires the Bookshelf server together: configuration, storage,
// the users service, both API bindings and the heartbeat job. It owns startup
// order and graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/graphql-go/graphql"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sieke13/bookshelf/internal/logging"
	"github.com/sieke13/bookshelf/internal/server/auth"
	"github.com/sieke13/bookshelf/internal/server/config"
	"github.com/sieke13/bookshelf/internal/server/graph"
	"github.com/sieke13/bookshelf/internal/server/rest"
	"github.com/sieke13/bookshelf/internal/server/users"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config      *config.Config
	logger      logging.Logger
	mongoClient *mongo.Client
	userService *users.Service
	echo        *echo.Echo
	cron        *cron.Cron
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect error: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping error: %w", err)
	}

	repo, err := users.NewMongoRepository(ctx, client.Database(cfg.MongoDatabase))
	if err != nil {
		return nil, fmt.Errorf("repository init error: %w", err)
	}

	svc := users.NewService(repo, cfg)

	schema, err := graph.NewSchema(svc)
	if err != nil {
		return nil, fmt.Errorf("schema init error: %w", err)
	}

	app := &App{
		config:      cfg,
		logger:      logger,
		mongoClient: client,
		userService: svc,
		cron:        cron.New(),
	}

	app.echo = app.newEcho(schema)
	return app, nil
}

func (app *App) newEcho(schema graphql.Schema) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogMethod: true,
		LogStatus: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			args := []any{"method", v.Method, "uri", v.URI, "status", v.Status}
			if v.Error != nil {
				args = append(args, "error", v.Error.Error())
			}
			app.logger.Info(c.Request().Context(), "request", args...)
			return nil
		},
	}))
	e.Use(auth.Middleware([]byte(app.config.SecretKey), app.logger))

	gh := graph.NewHandler(schema, app.logger)
	e.POST("/graphql", gh.Serve)

	rest.NewHandler(app.userService).RegisterRoutes(e.Group("/api"))

	return e
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// heartbeat pings the database and logs the user count. It runs on the
// configured cron schedule and serves as a cheap liveness probe in the logs.
func (app *App) heartbeat() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.mongoClient.Ping(ctx, nil); err != nil {
		app.logger.Warn(ctx, "heartbeat: mongo ping failed", "error", err.Error())
		return
	}

	count, err := app.userService.CountUsers(ctx)
	if err != nil {
		app.logger.Warn(ctx, "heartbeat: user count failed", "error", err.Error())
		return
	}

	app.logger.Info(ctx, "heartbeat", "users", count)
}

func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app", "addr", app.config.Addr)

	app.initSignalHandler(cancelFunc)

	if _, err := app.cron.AddFunc(app.config.HeartbeatSchedule, app.heartbeat); err != nil {
		return fmt.Errorf("invalid heartbeat schedule: %w", err)
	}
	app.cron.Start()

	errCh := make(chan error, 1)
	go func() {
		if err := app.echo.Start(app.config.Addr); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
		app.logger.Error(ctx, "server error", "error", runErr.Error())
	}

	app.logger.Info(ctx, "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	<-app.cron.Stop().Done()

	if err := app.echo.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "server shutdown error", "error", err.Error())
	}

	if err := app.mongoClient.Disconnect(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "mongo disconnect error", "error", err.Error())
	}

	return runErr
}
