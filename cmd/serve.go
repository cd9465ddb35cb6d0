package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/4GeeksAcademy/Place-Between-Daniel/db"
	"github.com/4GeeksAcademy/Place-Between-Daniel/handlers"
	"github.com/4GeeksAcademy/Place-Between-Daniel/routes"
	"github.com/4GeeksAcademy/Place-Between-Daniel/utils"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	serveMigrate   bool
	serveReminders bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		if serveMigrate {
			if err := db.Migrate(a.svc.DB); err != nil {
				return err
			}
		}
		if serveReminders {
			if _, err := a.svc.StartReminderScheduler(ctx); err != nil {
				return err
			}
		}

		if !a.cfg.AppDebug {
			gin.SetMode(gin.ReleaseMode)
		}
		router := routes.SetupRouter(handlers.New(a.svc, a.cfg), a.cfg)
		return startServer(ctx, router, a.cfg.Port)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", true, "run schema migrations before serving")
	serveCmd.Flags().BoolVar(&serveReminders, "reminders", true, "run the reminder dispatcher in-process")
}

func startServer(ctx context.Context, router http.Handler, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		utils.Logger.Info("starting_http_server", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	utils.Logger.Info("shutting_down_server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced shutdown: %w", err)
	}
	utils.Logger.Info("server_stopped")
	return nil
}
