package cli

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.open()
			if err != nil {
				return err
			}
			defer a.Close()

			router := a.Router()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			serveErr := make(chan error, 1)
			go func() {
				log.Printf("Starting server on port %s", opts.cfg.AppPort)
				serveErr <- router.Listen(opts.cfg.AppPort)
			}()

			select {
			case err := <-serveErr:
				return err
			case <-quit:
			}

			log.Println("Shutting down server...")
			if err := router.Shutdown(); err != nil {
				log.Printf("Error during Fiber shutdown: %v", err)
			}
			log.Println("Server gracefully stopped")
			return nil
		},
	}
}
