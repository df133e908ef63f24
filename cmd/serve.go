package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/rsvpbridge/internal/rsvp"
	"github.com/ziadkadry99/rsvpbridge/internal/server"
	"github.com/ziadkadry99/rsvpbridge/internal/webhook"
)

var serveAllowAllOrigins bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the webhook server",
	Long: `Starts the HTTP server that answers the WhatsApp webhook handshake on
GET and processes message deliveries on POST.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		classifier := rsvp.NewClassifier(cfg.TriggerPhrase)
		dispatcher := newDispatcherFromConfig(cfg)
		gateway := webhook.NewGateway(classifier, dispatcher, verbose)

		srv := server.New(server.Config{
			Port:     cfg.Port,
			AllowAll: serveAllowAllOrigins,
		})
		webhook.RegisterRoutes(srv.Router(), webhook.NewHandler(cfg.VerifyToken, gateway), cfg.WebhookPath)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Start()
		}()

		fmt.Fprintf(os.Stderr, "rsvpbridge v%s starting on port %d\n", Version, cfg.Port)
		fmt.Fprintf(os.Stderr, "  Webhook: %s\n", cfg.WebhookPath)
		fmt.Fprintf(os.Stderr, "  Graph API: %s/%s\n", cfg.APIBaseURL, cfg.APIVersion)

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
		}

		fmt.Fprintln(os.Stderr, "\nShutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: server shutdown: %v\n", err)
		}
		if !waitWithTimeout(shutdownCtx, gateway.Wait) {
			fmt.Fprintln(os.Stderr, "Warning: in-flight replies abandoned at shutdown")
		}
		return nil
	},
}

// waitWithTimeout runs wait and reports whether it returned before ctx ended.
func waitWithTimeout(ctx context.Context, wait func()) bool {
	done := make(chan struct{})
	go func() {
		wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-ctx.Done():
		return false
	}
}

func init() {
	serveCmd.Flags().BoolVar(&serveAllowAllOrigins, "cors-allow-all", false, "allow all CORS origins")
	rootCmd.AddCommand(serveCmd)
}
