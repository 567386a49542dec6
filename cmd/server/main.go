package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/sahuAhmadzafar/PMT/internal/config"
	"github.com/sahuAhmadzafar/PMT/internal/serverapp"
	"github.com/sahuAhmadzafar/PMT/internal/timetrack"
)

var (
	configPath string
	addr       string
	dev        bool
)

var rootCmd = &cobra.Command{
	Use:   "pmt",
	Short: "Project management dashboard and portfolio site",
	Long: `pmt serves the project dashboard (kanban, gantt, chat, time tracking,
team, settings) and the portfolio site under /site/.

All data is in-memory mock data and resets on restart.`,
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print every registered route",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		app, err := serverapp.New(serverapp.Options{
			Config: cfg,
			Ticker: timetrack.NewManualTicker(),
		})
		if err != nil {
			return err
		}
		defer app.Close()
		return app.Routes.WriteTable(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "pmt.yml", "config file (optional)")
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides config")
	serveCmd.Flags().BoolVar(&dev, "dev", false, "development logging and on-disk static files")
	rootCmd.AddCommand(serveCmd, routesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig layers the yaml file, .env and PMT_* variables.
func loadConfig() (*config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	cfg, err := config.LoadOptional(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.ApplyEnv()
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if dev {
		cfg.Log.Development = true
		cfg.Server.DevStatic = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ticker := timetrack.NewCronTicker(time.Local)
	app, err := serverapp.New(serverapp.Options{
		Config: cfg,
		Logger: logger,
		Ticker: ticker,
	})
	if err != nil {
		return fmt.Errorf("build server: %w", err)
	}

	stopSweep, err := ticker.Every(cfg.Session.SweepInterval(), func() { app.ExpireSessions() })
	if err != nil {
		return fmt.Errorf("schedule session sweep: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           app.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.Hub.Run(gctx)
	})
	g.Go(func() error {
		ticker.Start()
		<-gctx.Done()
		stopSweep()
		app.Close()
		ticker.Stop()
		return nil
	})
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.Server.Addr), zap.Bool("dev_static", cfg.Server.DevStatic))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
		defer cancel()
		logger.Info("shutting_down")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server_stopped", zap.Error(err))
		return err
	}
	return nil
}
