// Package controller owns the browsing state of one catalog page: the active
// filters, the requested page and limit, the last applied product page and
// the facet catalog. Actions are serialised; fetches run in the background and
// only the most recently issued one may update the state.
package controller

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/MisakSofoyan1/product-app/internal/domain"
	"github.com/MisakSofoyan1/product-app/internal/filter"
	"github.com/MisakSofoyan1/product-app/internal/query"
	apperrors "github.com/MisakSofoyan1/product-app/pkg/errors"
	"github.com/MisakSofoyan1/product-app/pkg/logger"
	"github.com/MisakSofoyan1/product-app/pkg/pagination"
)

// Source is the remote data the controller reads.
type Source interface {
	FetchProducts(ctx context.Context, q domain.QueryParams) (*domain.ProductPage, error)
	FetchFilters(ctx context.Context) (*domain.FacetCatalog, error)
	RefreshFilters(ctx context.Context) (*domain.FacetCatalog, error)
}

// Listener receives the state produced by every committed transition.
type Listener func(State)

// Controller drives one browsing page.
type Controller struct {
	source Source
	logger *slog.Logger

	// life bounds every background fetch; Close cancels it.
	life   context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	state      State
	productSeq sequence
	facetSeq   sequence
	idle       chan struct{}
	listeners  []Listener
}

// sequence tags fetches so that only the latest issued result is applied.
type sequence struct {
	issued  uint64
	pending bool
}

func (s *sequence) next() uint64 {
	s.issued++
	s.pending = true
	return s.issued
}

// complete reports whether seq is still the latest issued fetch and, if so,
// marks it done.
func (s *sequence) complete(seq uint64) bool {
	if seq != s.issued {
		return false
	}
	s.pending = false
	return true
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the base logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// WithListener registers a change listener at construction time.
func WithListener(fn Listener) Option {
	return func(c *Controller) {
		c.listeners = append(c.listeners, fn)
	}
}

// New creates a controller with no filters on page 1 of limit. An invalid
// limit falls back to the default page size.
func New(source Source, limit int, opts ...Option) *Controller {
	life, cancel := context.WithCancel(context.Background())
	idle := make(chan struct{})
	close(idle)

	c := &Controller{
		source: source,
		logger: slog.Default(),
		life:   life,
		cancel: cancel,
		idle:   idle,
		state:  newState(query.NewCursor(limit)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnChange registers fn to be called after every committed transition.
func (c *Controller) OnChange(fn Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.snapshot()
}

// Close cancels in-flight fetches; they complete as failures.
func (c *Controller) Close() {
	c.cancel()
}

// Start loads the facet catalog and the first product page concurrently.
func (c *Controller) Start(ctx context.Context) State {
	return c.transition(ctx, func(s *State) (fetchProducts, fetchFacets bool, err error) {
		return true, true, nil
	}, false)
}

// Toggle selects or deselects value on the category or brand dimension.
func (c *Controller) Toggle(ctx context.Context, dim domain.Dimension, value string) (State, error) {
	return c.filterAction(ctx, func(set domain.ActiveFilterSet) (domain.ActiveFilterSet, error) {
		return filter.Toggle(set, dim, value)
	})
}

// ClearAll removes every filter and resets both sliders.
func (c *Controller) ClearAll(ctx context.Context) State {
	snap, _ := c.filterAction(ctx, func(domain.ActiveFilterSet) (domain.ActiveFilterSet, error) {
		return filter.ClearAll(), nil
	})
	return snap
}

// ClearRange removes both bounds of a range filter.
func (c *Controller) ClearRange(ctx context.Context, dim domain.Dimension) (State, error) {
	return c.filterAction(ctx, func(set domain.ActiveFilterSet) (domain.ActiveFilterSet, error) {
		return filter.ClearRange(set, dim)
	})
}

// Drag moves one slider handle. Only the displayed range changes.
func (c *Controller) Drag(ctx context.Context, dim domain.Dimension, handle filter.Handle, value float64) (State, error) {
	return c.transitionErr(ctx, func(s *State) (bool, bool, error) {
		spec, ok := filter.SpecFor(dim)
		if !ok {
			return false, false, apperrors.InvalidInput(fmt.Sprintf("dimension %q is not a range", dim))
		}
		track := filter.SliderBounds(s.Catalog.RangeFor(dim), spec.Fallback)
		moved, ok := filter.Drag(s.displayed(dim), track, handle, value, spec.Step)
		if !ok {
			return false, false, apperrors.InvalidInput(fmt.Sprintf("unknown handle %q", handle))
		}
		s.setDisplayed(dim, moved)
		return false, false, nil
	})
}

// Commit turns the displayed range of dim into filter overrides. Nothing
// happens while the facet default of dim is unknown or when the overrides
// would not change.
func (c *Controller) Commit(ctx context.Context, dim domain.Dimension) (State, error) {
	return c.transitionErr(ctx, func(s *State) (bool, bool, error) {
		if !dim.IsRange() {
			return false, false, apperrors.InvalidInput(fmt.Sprintf("dimension %q is not a range", dim))
		}
		low, high, ok := filter.Commit(s.displayed(dim), s.Catalog.RangeFor(dim))
		if !ok {
			return false, false, nil
		}
		return s.applyFilters(s.Filters.WithBounds(dim, low, high)), false, nil
	})
}

// SetPage moves to page. It must be at least 1 and, once the number of pages
// is known, not past the last one.
func (c *Controller) SetPage(ctx context.Context, page int) (State, error) {
	return c.transitionErr(ctx, func(s *State) (bool, bool, error) {
		if err := pagination.ValidatePage(page, s.lastPage()); err != nil {
			return false, false, apperrors.InvalidInput(err.Error())
		}
		if page == s.Cursor.Page {
			return false, false, nil
		}
		s.Cursor = s.Cursor.WithPage(page)
		return true, false, nil
	})
}

// SetLimit changes the page size and returns to page 1.
func (c *Controller) SetLimit(ctx context.Context, limit int) (State, error) {
	return c.transitionErr(ctx, func(s *State) (bool, bool, error) {
		if !domain.IsValidLimit(limit) {
			return false, false, apperrors.InvalidInput(fmt.Sprintf("limit must be one of %v", domain.PageSizeOptions()))
		}
		if limit == s.Cursor.Limit {
			return false, false, nil
		}
		s.Cursor = s.Cursor.WithLimit(limit)
		return true, false, nil
	})
}

// RefreshFacets reloads the facet catalog from the API, bypassing any cache.
func (c *Controller) RefreshFacets(ctx context.Context) State {
	return c.transition(ctx, func(s *State) (bool, bool, error) {
		return false, true, nil
	}, true)
}

// Settle blocks until no fetch is outstanding or ctx ends. Fetches issued
// while waiting extend the wait.
func (c *Controller) Settle(ctx context.Context) (State, error) {
	c.mu.Lock()
	idle := c.idle
	c.mu.Unlock()

	select {
	case <-idle:
		return c.Snapshot(), nil
	case <-ctx.Done():
		return c.Snapshot(), ctx.Err()
	}
}

func (c *Controller) filterAction(ctx context.Context, change func(domain.ActiveFilterSet) (domain.ActiveFilterSet, error)) (State, error) {
	return c.transitionErr(ctx, func(s *State) (bool, bool, error) {
		next, err := change(s.Filters)
		if err != nil {
			return false, false, err
		}
		return s.applyFilters(next), false, nil
	})
}

type mutation func(s *State) (fetchProducts, fetchFacets bool, err error)

func (c *Controller) transitionErr(ctx context.Context, m mutation) (State, error) {
	var actionErr error
	snap := c.transition(ctx, func(s *State) (bool, bool, error) {
		p, f, err := m(s)
		actionErr = err
		return p, f, err
	}, false)
	return snap, actionErr
}

// transition applies m to a scratch copy of the state and commits it only
// when m succeeds, so rejected actions leave the state untouched.
func (c *Controller) transition(ctx context.Context, m mutation, freshFacets bool) State {
	c.mu.Lock()
	next := c.state
	fetchProducts, fetchFacets, err := m(&next)
	if err != nil {
		snap := c.state.snapshot()
		c.mu.Unlock()
		return snap
	}

	changed := fetchProducts || fetchFacets || next.differsFrom(c.state)
	if !changed {
		snap := c.state.snapshot()
		c.mu.Unlock()
		return snap
	}

	c.state = next
	if fetchProducts {
		c.issueProducts(ctx, c.state.Params())
	}
	if fetchFacets {
		c.issueFacets(ctx, freshFacets)
	}
	c.state.Revision++
	snap := c.state.snapshot()
	listeners := c.listeners
	c.mu.Unlock()

	notify(listeners, snap)
	return snap
}

// issueProducts starts a product fetch for q. Callers hold c.mu.
func (c *Controller) issueProducts(ctx context.Context, q domain.QueryParams) {
	seq := c.productSeq.next()
	c.state.Loading = true
	c.markBusy()
	fetchesIssued.WithLabelValues(kindProducts).Inc()

	fctx, done := c.fetchContext(ctx)
	go func() {
		defer done()
		page, err := c.source.FetchProducts(fctx, q)
		c.applyProducts(fctx, seq, q, page, err)
	}()
}

// issueFacets starts a facet fetch. Callers hold c.mu.
func (c *Controller) issueFacets(ctx context.Context, fresh bool) {
	seq := c.facetSeq.next()
	c.state.FacetsLoading = true
	c.markBusy()
	fetchesIssued.WithLabelValues(kindFacets).Inc()

	fetch := c.source.FetchFilters
	if fresh {
		fetch = c.source.RefreshFilters
	}

	fctx, done := c.fetchContext(ctx)
	go func() {
		defer done()
		catalog, err := fetch(fctx)
		c.applyFacets(fctx, seq, catalog, err)
	}()
}

// fetchContext keeps the values of the action context (logger, trace) but not
// its cancellation: an HTTP request that triggered a fetch usually ends long
// before the fetch does. Close still cancels it.
func (c *Controller) fetchContext(ctx context.Context) (context.Context, func()) {
	fctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	stop := context.AfterFunc(c.life, cancel)
	return fctx, func() {
		stop()
		cancel()
	}
}

func (c *Controller) applyProducts(ctx context.Context, seq uint64, q domain.QueryParams, page *domain.ProductPage, err error) {
	l := c.log(ctx)

	c.mu.Lock()
	if !c.productSeq.complete(seq) {
		c.mu.Unlock()
		fetchResults.WithLabelValues(kindProducts, outcomeStale).Inc()
		l.DebugContext(ctx, "discarding stale product page", slog.Uint64("seq", seq))
		return
	}

	c.state.Loading = false
	if err != nil {
		c.state.LastFetchFailed = true
		fetchResults.WithLabelValues(kindProducts, outcomeFailed).Inc()
		l.WarnContext(ctx, "product fetch failed",
			slog.Uint64("seq", seq),
			slog.Int("page", q.Page),
			slog.Int("limit", q.Limit),
			slog.String("error", err.Error()),
		)
	} else {
		c.state.Products = page.Data
		c.state.Pagination = page.Pagination
		c.state.LastFetchFailed = false
		c.state.Fetched = true
		fetchResults.WithLabelValues(kindProducts, outcomeApplied).Inc()
	}
	c.commitCompletion()
}

func (c *Controller) applyFacets(ctx context.Context, seq uint64, catalog *domain.FacetCatalog, err error) {
	l := c.log(ctx)

	c.mu.Lock()
	if !c.facetSeq.complete(seq) {
		c.mu.Unlock()
		fetchResults.WithLabelValues(kindFacets, outcomeStale).Inc()
		l.DebugContext(ctx, "discarding stale facet catalog", slog.Uint64("seq", seq))
		return
	}

	c.state.FacetsLoading = false
	if err != nil {
		c.state.LastFacetFetchFailed = true
		fetchResults.WithLabelValues(kindFacets, outcomeFailed).Inc()
		l.WarnContext(ctx, "facet fetch failed", slog.String("error", err.Error()))
	} else {
		c.state.setCatalog(*catalog)
		c.state.LastFacetFetchFailed = false
		fetchResults.WithLabelValues(kindFacets, outcomeApplied).Inc()
	}
	c.commitCompletion()
}

// commitCompletion publishes a completed fetch. Callers hold c.mu; it is
// released here.
func (c *Controller) commitCompletion() {
	if !c.productSeq.pending && !c.facetSeq.pending {
		close(c.idle)
	}
	c.state.Revision++
	snap := c.state.snapshot()
	listeners := c.listeners
	c.mu.Unlock()

	notify(listeners, snap)
}

// markBusy opens a new idle channel when the controller was idle. Callers
// hold c.mu.
func (c *Controller) markBusy() {
	select {
	case <-c.idle:
		c.idle = make(chan struct{})
	default:
	}
}

func (c *Controller) log(ctx context.Context) *slog.Logger {
	if l := logger.FromContext(ctx); l != slog.Default() {
		return l
	}
	return c.logger
}

func notify(listeners []Listener, snap State) {
	for _, fn := range listeners {
		fn(snap)
	}
}
