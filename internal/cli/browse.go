package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/MisakSofoyan1/product-app/internal/catalogapi"
	"github.com/MisakSofoyan1/product-app/internal/controller"
	"github.com/MisakSofoyan1/product-app/internal/domain"
	"github.com/MisakSofoyan1/product-app/internal/filter"
	"github.com/MisakSofoyan1/product-app/pkg/httpclient"
)

type browseOptions struct {
	api      string
	timeout  time.Duration
	category string
	brand    string
	limit    int
	page     int
	asJSON   bool

	// Range bounds; nil when the flag was not given.
	minPrice, maxPrice   *float64
	minRating, maxRating *float64
}

func newBrowseCmd() *cobra.Command {
	var (
		opts                                     browseOptions
		minPrice, maxPrice, minRating, maxRating float64
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Fetch one page of products with filters applied",
		Long: `Opens a browsing session against the catalog API, applies the filters,
then the page size, then the page, and prints the resulting page.`,
		Example: `  # First page of the default API
  catalogctl browse

  # Shoes under 100, 20 per page, second page
  catalogctl browse --category Shoes --max-price 100 --limit 20 --page 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("api") {
				opts.api = envOr("CATALOG_API_URL", opts.api)
			}
			flags := cmd.Flags()
			if flags.Changed("min-price") {
				opts.minPrice = &minPrice
			}
			if flags.Changed("max-price") {
				opts.maxPrice = &maxPrice
			}
			if flags.Changed("min-rating") {
				opts.minRating = &minRating
			}
			if flags.Changed("max-rating") {
				opts.maxRating = &maxRating
			}
			if err := opts.validate(); err != nil {
				return err
			}

			transport := httpclient.DefaultConfig()
			transport.Timeout = opts.timeout
			client := catalogapi.New(opts.api, httpclient.New(transport), slog.Default())

			return runBrowse(cmd.Context(), cmd.OutOrStdout(), client, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.api, "api", "http://localhost:8030", "Catalog API base URL (env CATALOG_API_URL)")
	f.DurationVar(&opts.timeout, "timeout", 10*time.Second, "Per-request timeout")
	f.StringVar(&opts.category, "category", "", "Only products in this category")
	f.StringVar(&opts.brand, "brand", "", "Only products of this brand")
	f.Float64Var(&minPrice, "min-price", 0, "Lowest price, kept within the catalog price range")
	f.Float64Var(&maxPrice, "max-price", 0, "Highest price, kept within the catalog price range")
	f.Float64Var(&minRating, "min-rating", 0, "Lowest rating, kept within the catalog rating range")
	f.Float64Var(&maxRating, "max-rating", 0, "Highest rating, kept within the catalog rating range")
	f.IntVar(&opts.limit, "limit", domain.DefaultPageLimit, fmt.Sprintf("Products per page, one of %v", domain.PageSizeOptions()))
	f.IntVar(&opts.page, "page", 1, "Page number")
	f.BoolVar(&opts.asJSON, "json", false, "Print the page view as JSON")

	return cmd
}

func (o browseOptions) validate() error {
	if !domain.IsValidLimit(o.limit) {
		return fmt.Errorf("--limit must be one of %v", domain.PageSizeOptions())
	}
	if o.page < 1 {
		return fmt.Errorf("--page must be at least 1")
	}
	if err := checkGap("price", domain.DimensionPrice, o.minPrice, o.maxPrice); err != nil {
		return err
	}
	return checkGap("rating", domain.DimensionRating, o.minRating, o.maxRating)
}

// checkGap rejects bounds closer than one slider step, which the handles
// could not represent without moving the low bound.
func checkGap(flag string, dim domain.Dimension, low, high *float64) error {
	if low == nil || high == nil {
		return nil
	}
	spec, _ := filter.SpecFor(dim)
	if *high-*low < spec.Step-1e-9 {
		return fmt.Errorf("--max-%s must be at least %g above --min-%s", flag, spec.Step, flag)
	}
	return nil
}

// runBrowse applies opts as controller actions, settling after each one so
// that later actions see the pagination of the earlier ones.
func runBrowse(ctx context.Context, out io.Writer, source controller.Source, opts browseOptions) error {
	c := controller.New(source, domain.DefaultPageLimit, controller.WithLogger(slog.Default()))
	defer c.Close()

	c.Start(ctx)
	state, err := c.Settle(ctx)
	if err != nil {
		return fmt.Errorf("load first page: %w", err)
	}
	if state.LastFacetFetchFailed && (opts.minPrice != nil || opts.maxPrice != nil || opts.minRating != nil || opts.maxRating != nil) {
		slog.Warn("facets unavailable, range filters will be ignored")
	}

	steps := []func() error{
		func() error { return toggle(ctx, c, domain.DimensionCategory, opts.category) },
		func() error { return toggle(ctx, c, domain.DimensionBrand, opts.brand) },
		func() error { return setRange(ctx, c, domain.DimensionPrice, opts.minPrice, opts.maxPrice) },
		func() error { return setRange(ctx, c, domain.DimensionRating, opts.minRating, opts.maxRating) },
		func() error { _, err := c.SetLimit(ctx, opts.limit); return err },
		func() error { _, err := c.SetPage(ctx, opts.page); return err },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
		if state, err = c.Settle(ctx); err != nil {
			return fmt.Errorf("wait for catalog api: %w", err)
		}
	}

	if state.LastFetchFailed {
		return fmt.Errorf("catalog api request failed, see log output")
	}

	view := controller.BuildView(state)
	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}
	return renderView(out, view)
}

func toggle(ctx context.Context, c *controller.Controller, dim domain.Dimension, value string) error {
	if value == "" {
		return nil
	}
	_, err := c.Toggle(ctx, dim, value)
	return err
}

// setRange drags the handles to the requested bounds and commits them. The
// high handle moves first so a validated low bound is never clamped by it.
func setRange(ctx context.Context, c *controller.Controller, dim domain.Dimension, low, high *float64) error {
	if low == nil && high == nil {
		return nil
	}
	if high != nil {
		if _, err := c.Drag(ctx, dim, filter.HandleHigh, *high); err != nil {
			return err
		}
	}
	if low != nil {
		if _, err := c.Drag(ctx, dim, filter.HandleLow, *low); err != nil {
			return err
		}
	}
	_, err := c.Commit(ctx, dim)
	return err
}

func renderView(out io.Writer, view controller.View) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	if len(view.ActiveTags) > 0 {
		labels := make([]string, 0, len(view.ActiveTags))
		for _, tag := range view.ActiveTags {
			labels = append(labels, tag.Label)
		}
		fmt.Fprintf(tw, "Active filters: %s\n", strings.Join(labels, ", "))
	}

	if view.Empty {
		fmt.Fprintln(tw, "No products match the selected filters. Clear all filters to see every product.")
		return tw.Flush()
	}

	fmt.Fprintln(tw, view.Pagination.Summary)
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tBRAND\tPRICE\tRATING")
	for _, p := range view.Products {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.2f\t%.1f\n", p.ID, p.Name, p.Category, p.Brand, p.Price, p.Rating)
	}

	if view.Pagination.Visible {
		pages := make([]string, 0, len(view.Pagination.Pages))
		for _, n := range view.Pagination.Pages {
			if n == view.Pagination.Page {
				pages = append(pages, fmt.Sprintf("[%d]", n))
				continue
			}
			pages = append(pages, fmt.Sprint(n))
		}
		fmt.Fprintln(tw)
		fmt.Fprintf(tw, "Pages: %s\n", strings.Join(pages, " "))
	}

	return tw.Flush()
}
