// cmd/serve.go
package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/yataco/dashboard/backend/config"
	"github.com/yataco/dashboard/backend/database"
	"github.com/yataco/dashboard/backend/handlers"
	"github.com/yataco/dashboard/backend/services"
	"github.com/yataco/dashboard/backend/utils"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if bind, _ := cmd.Flags().GetString("port"); bind != "" {
			config.AppConfig.Server.Port = bind
		}

		if err := database.InitDB(config.AppConfig.Database); err != nil {
			return err
		}
		defer database.CloseDB()

		services.InitSessions()

		srv := &http.Server{
			Addr:         ":" + config.AppConfig.Server.Port,
			Handler:      handlers.NewRouter(),
			ReadTimeout:  config.AppConfig.Server.ReadTimeout,
			WriteTimeout: config.AppConfig.Server.WriteTimeout,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			utils.Log.Infof("Server starting on http://localhost%s", srv.Addr)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		utils.Log.Info("Server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (overrides config)")
}
