package serve

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Lorak9904/RhetorAI/cmd/rhetor/cmd/cmdutil"
	"github.com/Lorak9904/RhetorAI/internal/app"
)

var (
	port            string
	shutdownTimeout time.Duration
)

func init() {
	Cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides config and PORT)")
	Cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 15*time.Second, "grace period for in-flight requests")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the feedback HTTP API",
	Long: `Run the feedback HTTP API.

Endpoints live under /api/v1: POST /audio, POST /chat, POST /speech,
GET /providers and GET /stats. /health and /metrics are served at the root.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := cmdutil.Setup(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync()

		if port != "" {
			cfg.Server.Port = port
		}

		srv, err := app.InitializeServer(cfg, logger)
		if err != nil {
			logger.Error("Failed to initialize server", zap.Error(err))
			return err
		}

		errCh := srv.Start()
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case err, ok := <-errCh:
			if ok && err != nil {
				return err
			}
			return nil
		case sig := <-quit:
			logger.Info("Received signal", zap.String("signal", sig.String()))
		}

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(ctx)
	},
}
