package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/MisakSofoyan1/product-app/internal/domain"
	"github.com/MisakSofoyan1/product-app/internal/engine/memory"
	handler "github.com/MisakSofoyan1/product-app/internal/handler/http"
)

func newMockAPICmd() *cobra.Command {
	var (
		port     string
		products string
	)

	cmd := &cobra.Command{
		Use:   "mock-api",
		Short: "Serve an in-memory reference catalog API",
		Long: `Serves GET /products and GET /filters from an in-memory catalog.

Without --products the catalog holds a small built-in sample. With it, the
file must contain a JSON array of products.`,
		Example: `  # Serve the sample catalog on the default port 8030
  catalogctl mock-api

  # Serve your own products
  catalogctl mock-api --port 9000 --products ./products.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			items := memory.SeedProducts()
			if products != "" {
				var err error
				if items, err = readProducts(products); err != nil {
					return err
				}
			}
			engine := memory.New()
			if err := engine.BulkIndex(cmd.Context(), items); err != nil {
				return fmt.Errorf("index products: %w", err)
			}

			ln, err := net.Listen("tcp", ":"+port)
			if err != nil {
				return fmt.Errorf("listen: %w", err)
			}
			return serveCatalog(cmd.Context(), ln, handler.NewCatalogRouter(engine, slog.Default()))
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8030", "Port to listen on")
	cmd.Flags().StringVar(&products, "products", "", "JSON file with the products to serve")

	return cmd
}

// serveCatalog serves h on ln until ctx is canceled.
func serveCatalog(ctx context.Context, ln net.Listener, h http.Handler) error {
	server := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("catalog api available", "addr", ln.Addr().String())
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		slog.Info("catalog api stopped")
		return nil
	case err := <-serverErr:
		return err
	}
}

func readProducts(path string) ([]domain.Product, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read products: %w", err)
	}
	var items []domain.Product
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("parse products %s: %w", path, err)
	}
	return items, nil
}
