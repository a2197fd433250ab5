// Package server initializes and runs the gophauth server: it opens the user
// store, seeds demo accounts, and runs the HTTP API and the gRPC health
// endpoint until a termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophauth/internal/server/rest"
	"github.com/dmitrijs2005/gophauth/internal/server/services"

	gs "github.com/dmitrijs2005/gophauth/internal/server/grpc"
)

// runner is implemented by both servers.
type runner interface {
	Run(ctx context.Context) error
}

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	userService *services.UserService
	servers     []runner
}

// logOutput is a seam for tests.
var logOutput io.Writer = os.Stdout

func newLogger(c *config.Config) logging.Logger {
	level := slog.LevelInfo
	if c.GinMode == gin.DebugMode {
		level = slog.LevelDebug
	}
	return logging.NewJSONLogger(logOutput, level)
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := newLogger(c)
	gin.SetMode(c.GinMode)

	if c.SecretKey == "" {
		secret, err := common.MakeRandHexString(32)
		if err != nil {
			return nil, fmt.Errorf("secret generation error: %w", err)
		}
		c.SecretKey = secret
		logger.Warn(ctx, "JWT secret not configured, using a random one; tokens will not survive a restart")
	}

	db, rm, err := repomanager.Open(ctx, c.DatabaseDriver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	us := services.NewUserService(db, rm,
		auth.NewBcryptHasher(c.BcryptCost),
		auth.NewTokenService([]byte(c.SecretKey), c.TokenValidityDuration))

	if c.SeedDemoUsers {
		if err := us.SeedUsers(ctx, services.DemoUsers); err != nil {
			if db != nil {
				_ = db.Close()
			}
			return nil, fmt.Errorf("seed error: %w", err)
		}
		logger.Info(ctx, "Demo users seeded", "count", len(services.DemoUsers))
	}

	app := &App{config: c, logger: logger, db: db, userService: us}
	app.servers = []runner{
		rest.NewServer(c.EndpointAddrHTTP, logger, us, c.CORSAllowedOrigins),
		gs.NewGRPCServer(c.EndpointAddrGRPC, logger, us, c.HealthCheckInterval),
	}

	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run starts every server and blocks until ctx is cancelled, a signal
// arrives or one of the servers fails. The store is closed on return.
// The error is the first server failure, nil after a clean shutdown.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "driver", app.config.DatabaseDriver)

	app.initSignalHandler(cancelFunc)

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)

	for _, s := range app.servers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.Run(ctx); err != nil {
				app.logger.Error(ctx, err.Error())
				errOnce.Do(func() { firstErr = err })
				cancelFunc()
			}
		}()
	}

	wg.Wait()

	app.closeDB(context.Background())
	app.logger.Info(context.Background(), "App stopped")
	return firstErr
}

func (app *App) closeDB(ctx context.Context) {
	if app.db == nil {
		return
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
