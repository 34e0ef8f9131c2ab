package cmd

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

	"gitjrnl/config"
	"gitjrnl/web"
)

var (
	servePort int
	serveFile string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local JSON API for a project",
	Long: `Start a local HTTP server exposing the journal and override operations.

Mutations are saved back to the project file with a debounce; pending writes
are flushed before the server exits.`,
	Example: `
  # Start local server on default port
  gitjrnl serve --file ./widgets.gitj

  # Custom port
  gitjrnl serve --file ./widgets.gitj --port 9090
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		saver, err := openSaver(serveFile, cfg)
		if err != nil {
			return err
		}

		client, err := newGitHubClient(cfg)
		if err != nil {
			return err
		}

		addr := fmt.Sprintf(":%d", servePort)
		server := &http.Server{
			Addr:    addr,
			Handler: web.NewServer(saver, client),
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.ListenAndServe()
		}()

		fmt.Printf("Listening on http://localhost:%d\n", servePort)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
		case <-sigCh:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutdown server: %w", err)
			}
			err := <-errCh
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
		}

		// Pending debounced writes must land before exit.
		if err := saver.Flush(); err != nil {
			return fmt.Errorf("flush project file: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&servePort, "port", 8080, "HTTP port for the local server")
	serveCmd.Flags().StringVarP(&serveFile, "file", "F", "", "Path to the project file (.gitj)")
	_ = serveCmd.MarkFlagRequired("file")
}
