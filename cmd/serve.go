package cmd

import (
	"context"
	"errors"

	"steam-ledger/core/loader"
	"steam-ledger/core/logger"
	"steam-ledger/core/middleware/auth"
	"steam-ledger/core/middleware/rayid"
	"steam-ledger/core/scheduler"
	"steam-ledger/feature/games"
	"steam-ledger/feature/status"
	steamsync "steam-ledger/feature/sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "steam-ledger/docs/swagger"
)

// @title Steam Ledger API
// @version 1.0
// @description Status and control API of the game library sync.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// serveCmd runs the scheduler and the status API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run scheduled sync passes and the status API",
	Long: `Starts the HTTP status API and runs a sync pass on the configured cron schedule.
Scheduled and manually triggered passes never overlap.`,
	RunE: runServe,
}

func init() {
	RootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.cfg.Server.ValidateSchedule(); err != nil {
		return err
	}
	orch, err := a.orchestrator()
	if err != nil {
		return err
	}

	archiver, err := a.archiver()
	if err != nil {
		a.logger.Warn("Report archive unavailable", zap.Error(err))
	}

	svc := status.NewService(orch, a.store, 0, a.logger.Named("status"),
		func(ctx context.Context, res *steamsync.Result) {
			archiveReport(ctx, archiver, a.logger, res)
		},
	)
	defer svc.Close()
	if archiver != nil {
		if last, err := archiver.Latest(ctx); err != nil {
			a.logger.Warn("Failed to load the last report", zap.Error(err))
		} else if last != nil {
			svc.Seed(last)
		}
	}

	sched := scheduler.New(a.logger.Named("scheduler"))
	if a.cfg.Server.Schedule != "" {
		err := sched.Add("sync", a.cfg.Server.Schedule, func(ctx context.Context) error {
			_, err := svc.RunNow(ctx)
			if errors.Is(err, status.ErrBusy) {
				a.logger.Info("Scheduled pass skipped, a pass is already running")
				return nil
			}
			return err
		})
		if err != nil {
			return err
		}
	}
	sched.Start()
	defer sched.Stop()

	if a.cfg.Server.RunOnStart {
		svc.Trigger()
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	// RayID first so every later entry carries it.
	app.Use(rayid.New())
	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(a.logger, c)
		l.Debug("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Use(auth.New(auth.Config{ApiKey: a.cfg.Server.ApiKey}))

	mgr := loader.NewManager(a.logger.Named("loader"))
	mgr.Register(status.NewFeature(svc))
	mgr.Register(games.NewFeature(a.store, a.cfg.Sync.BlacklistThreshold, a.logger.Named("games")))
	if err := mgr.LoadAll(app); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Starting server", zap.String("port", a.cfg.Server.Port))
		errCh <- app.Listen(":" + a.cfg.Server.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down server...")
	return app.Shutdown()
}
