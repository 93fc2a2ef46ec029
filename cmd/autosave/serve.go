package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rgehrsitz/autosave/internal/amqp"
	"github.com/rgehrsitz/autosave/internal/calculation"
	"github.com/rgehrsitz/autosave/internal/compare"
	"github.com/rgehrsitz/autosave/internal/config"
	internalhttp "github.com/rgehrsitz/autosave/internal/http"
	applog "github.com/rgehrsitz/autosave/internal/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// loadServiceConfig reads the environment and applies command line overrides
func loadServiceConfig(cmd *cobra.Command) (*config.Config, *applog.Logger, error) {
	cfg := config.Load()
	if port, _ := cmd.Flags().GetString("port"); port != "" {
		cfg.Port = port
	}
	if path, _ := cmd.Flags().GetString("assumptions"); path != "" {
		cfg.AssumptionsFile = path
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	level, _ := applog.ParseLevel(cfg.LogLevel)
	logger := applog.New(applog.Config{
		Level:     level,
		Component: applog.ComponentApp,
		Format:    cfg.LogFormat,
		Output:    os.Stderr,
	})
	applog.SetDefault(logger)
	return cfg, logger, nil
}

func newServiceEngine(cfg *config.Config, logger *applog.Logger) (*calculation.Engine, error) {
	assumptions, err := config.NewInputParser().LoadAssumptions(cfg.AssumptionsFile)
	if err != nil {
		return nil, err
	}
	engine := calculation.NewEngineWithAssumptions(assumptions)
	engine.SetLogger(applog.Printf{L: logger.WithComponent(applog.ComponentEngine)})
	return engine, nil
}

func newWorker(cfg *config.Config, engine *calculation.Engine, logger *applog.Logger) (*amqp.Worker, amqp.Options) {
	input := config.NewInputParser()
	worker := amqp.NewWorker(compare.NewCompareEngine(engine), input.ValidateRequest, cfg.AMQPResultQueue, logger)
	return worker, amqp.Options{
		URL:         cfg.AMQPURL,
		Exchange:    cfg.AMQPExchange,
		Queue:       cfg.AMQPQueue,
		ResultQueue: cfg.AMQPResultQueue,
	}
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculator over HTTP",
	Long: `Starts the HTTP API under /blackrock/challenge/v1. Configuration comes from the
environment and an optional .env file. With WORKER_ENABLED=true the AMQP compare
worker runs in the same process.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadServiceConfig(cmd)
		if err != nil {
			return err
		}
		engine, err := newServiceEngine(cfg, logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := internalhttp.NewServer(cfg, internalhttp.NewServices(engine), logger, version)
		g, gctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			logger.Info("server starting",
				applog.FieldOperation, applog.OpStartup,
				"addr", srv.Addr,
				"version", version,
				"rate_limit", cfg.RateLimit,
				"worker", cfg.WorkerEnabled)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		})

		g.Go(func() error {
			<-gctx.Done()
			logger.Info("shutting down", applog.FieldOperation, applog.OpShutdown)
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})

		if cfg.WorkerEnabled {
			worker, opts := newWorker(cfg, engine, logger)
			g.Go(func() error {
				return worker.Run(gctx, opts)
			})
		}

		if err := g.Wait(); err != nil {
			return err
		}
		logger.Info("server stopped")
		return nil
	},
}

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Answer compare requests from an AMQP queue",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadServiceConfig(cmd)
		if err != nil {
			return err
		}
		cfg.WorkerEnabled = true
		if err := cfg.Validate(); err != nil {
			return err
		}
		engine, err := newServiceEngine(cfg, logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		worker, opts := newWorker(cfg, engine, logger)
		logger.Info("worker starting",
			applog.FieldOperation, applog.OpStartup,
			"queue", opts.Queue,
			"result_queue", opts.ResultQueue)
		if err := worker.Run(ctx, opts); err != nil {
			return err
		}
		logger.Info("worker stopped", applog.FieldOperation, applog.OpShutdown)
		return nil
	},
}

var enqueueCmd = &cobra.Command{
	Use:   "enqueue [request-file]",
	Short: "Publish a request file as a compare request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := config.NewInputParser().LoadRequest(args[0])
		if err != nil {
			return err
		}

		cfg, logger, err := loadServiceConfig(cmd)
		if err != nil {
			return err
		}
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
		if err != nil {
			return err
		}
		defer client.Close()

		msg := amqp.NewCompareRequestMessage(*req)
		if err := client.PublishCompareRequest(cmd.Context(), msg); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg.ID)
		return nil
	},
}

func init() {
	serveCmd.Flags().StringP("port", "p", "", "Listen port (overrides PORT)")
}
