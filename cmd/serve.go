package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/robinmackenzie/uk-election-map/internal/dashboard"
	"github.com/robinmackenzie/uk-election-map/internal/interaction"
	"github.com/robinmackenzie/uk-election-map/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the live map server",
	Long:  `Loads the boundary and result documents and serves the interactive map, its JSON API and the live session socket.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		state, err := loadState(ctx, cfg, logger)
		if err != nil {
			return err
		}

		port := cfg.Server.Port
		if cmd.Flags().Changed("port") {
			port = servePort
		}

		srv := server.New(server.Config{Port: port, AllowAll: cfg.Server.AllowAll}, logger)
		dash := dashboard.New(state, newRenderer(cfg, state), interaction.Options{
			HidePanelOnLeave: cfg.HidePanelOnLeave,
		}, logger)
		dash.RegisterRoutes(srv.Router())

		// Graceful shutdown.
		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("shutdown", zap.Error(err))
			}
		}()

		fmt.Fprintf(os.Stderr, "electionmap %s serving on http://localhost:%d\n", Version, port)
		fmt.Fprintf(os.Stderr, "  Years: %v (default %s)\n", state.Years, state.DefaultYear)
		fmt.Fprintf(os.Stderr, "  Constituencies: %d\n", state.Features.Len())

		return srv.Start()
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}
