package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/niksmo/productlist/internal/core/domain"
	"github.com/niksmo/productlist/internal/core/port"
)

var _ port.ProductListController = (*ProductList)(nil)

type Opt func(*ProductList)

func NavigatorOpt(n port.Navigator) Opt {
	return func(c *ProductList) {
		c.navigator = n
	}
}

func ClientEventsOpt(p port.ClientEventsProducer) Opt {
	return func(c *ProductList) {
		c.events = p
	}
}

func LoadObserverOpt(o port.LoadObserver) Opt {
	return func(c *ProductList) {
		c.observers = append(c.observers, o)
	}
}

// A ProductList owns the product list screen state: the products, the
// search text and the load status.
//
// The filtered view is never stored, it is recomputed from products and
// search text on every read.
type ProductList struct {
	fetcher   port.ProductsFetcher
	navigator port.Navigator
	events    port.ClientEventsProducer
	observers []port.LoadObserver

	mu         sync.RWMutex
	products   []domain.Product
	searchText string
	loading    bool
	errMsg     string
	generation uint64
	cancelLoad context.CancelFunc

	subsMu  sync.Mutex
	subs    map[uint64]func(domain.ListView)
	nextSub uint64
}

func New(fetcher port.ProductsFetcher, opts ...Opt) *ProductList {
	c := &ProductList{
		fetcher: fetcher,
		subs:    make(map[uint64]func(domain.ListView)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load replaces the product list with the remote catalog.
//
// Any failure is logged and replaced by the fallback products together with
// a static error message. A load started while another one is in flight
// cancels the older one, whose result is then dropped.
func (c *ProductList) Load(ctx context.Context) (res domain.LoadResult) {
	const op = "ProductList.Load"

	res.ID = uuid.NewString()
	log := slog.With("op", op, "loadID", res.ID)

	start := time.Now()
	loadCtx, gen, cancel := c.beginLoad(ctx)
	c.notify()

	defer func() {
		cancel()
		c.endLoad(gen)
		res.Duration = time.Since(start)
		c.observe(res)
		c.notify()
	}()

	ps, err := c.fetcher.FetchProducts(loadCtx)
	errMsg := ""
	res.Source = domain.SourceRemote
	if err != nil {
		ps = domain.FallbackProducts()
		errMsg = domain.LoadFailedMessage
		res.Source = domain.SourceFallback
		res.Err = err
	}

	if !c.commit(gen, ps, errMsg) {
		log.Info("load superseded by a newer one", "err", err)
		res.Source = domain.SourceSuperseded
		return res
	}

	res.Count = len(ps)
	if err != nil {
		log.Error("failed to load products", "err", err)
	} else {
		log.Info("products loaded", "nProducts", res.Count)
	}

	c.emit(ctx, domain.ClientEvent{
		Kind:        domain.EventLoad,
		ResultCount: res.Count,
		Fallback:    err != nil,
	})
	return res
}

func (c *ProductList) Refresh(ctx context.Context) domain.LoadResult {
	return c.Load(ctx)
}

func (c *ProductList) Retry(ctx context.Context) domain.LoadResult {
	return c.Load(ctx)
}

func (c *ProductList) beginLoad(
	ctx context.Context,
) (context.Context, uint64, context.CancelFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancelLoad != nil {
		c.cancelLoad()
	}
	loadCtx, cancel := context.WithCancel(ctx)
	c.generation++
	c.cancelLoad = cancel
	c.loading = true
	c.errMsg = ""
	return loadCtx, c.generation, cancel
}

func (c *ProductList) commit(
	gen uint64, ps []domain.Product, errMsg string,
) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		return false
	}
	c.products = ps
	c.errMsg = errMsg
	return true
}

func (c *ProductList) endLoad(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		return
	}
	c.loading = false
	c.cancelLoad = nil
}

// SetSearchText stores the query as typed.
func (c *ProductList) SetSearchText(text string) {
	c.mu.Lock()
	changed := c.searchText != text
	c.searchText = text
	ps := c.products
	c.mu.Unlock()

	if !changed {
		return
	}
	c.notify()

	c.emit(context.Background(), domain.ClientEvent{
		Kind:        domain.EventSearch,
		Query:       text,
		ResultCount: len(FilterProducts(ps, text)),
	})
}

func (c *ProductList) ClearSearch() {
	c.SetSearchText("")
}

func (c *ProductList) Products() []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.products)
}

func (c *ProductList) FilteredProducts() []domain.Product {
	c.mu.RLock()
	ps, text := c.products, c.searchText
	c.mu.RUnlock()
	return FilterProducts(ps, text)
}

func (c *ProductList) SearchText() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.searchText
}

func (c *ProductList) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// Error returns the message of the last failed load or empty string.
func (c *ProductList) Error() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.errMsg
}

func (c *ProductList) View() domain.ListView {
	c.mu.RLock()
	loading, errMsg := c.loading, c.errMsg
	ps, text := c.products, c.searchText
	c.mu.RUnlock()
	return buildView(loading, errMsg, text, ps)
}

// Subscribe registers fn to be called with a fresh view after every state
// change. fn runs synchronously and must not mutate the list.
func (c *ProductList) Subscribe(fn func(domain.ListView)) (unsubscribe func()) {
	c.subsMu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.subsMu.Unlock()

	return func() {
		c.subsMu.Lock()
		delete(c.subs, id)
		c.subsMu.Unlock()
	}
}

func (c *ProductList) notify() {
	c.subsMu.Lock()
	fns := make([]func(domain.ListView), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.subsMu.Unlock()

	if len(fns) == 0 {
		return
	}
	v := c.View()
	for _, fn := range fns {
		fn(v)
	}
}

func (c *ProductList) observe(res domain.LoadResult) {
	for _, o := range c.observers {
		o.ObserveLoad(res)
	}
}

func (c *ProductList) emit(ctx context.Context, ev domain.ClientEvent) {
	const op = "ProductList.emit"

	if c.events == nil {
		return
	}
	ev.ID = uuid.NewString()
	ev.OccurredAt = time.Now()
	if err := c.events.ProduceEvent(ctx, ev); err != nil {
		slog.Warn("failed to produce client event",
			"op", op, "kind", ev.Kind, "err", err)
	}
}

// Open hands the route to the navigator. Nothing flows back.
func (c *ProductList) Open(ctx context.Context, r domain.Route) error {
	const op = "ProductList.Open"

	if _, err := domain.ParseDestination(string(r.Destination)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if r.Destination == domain.DestinationProductDetail && r.ProductID() == "" {
		return fmt.Errorf("%s: %w: product id is required", op, domain.ErrInvalidRoute)
	}

	if c.navigator == nil {
		slog.Warn("navigator is not set, route dropped",
			"op", op, "destination", r.Destination)
		return nil
	}
	if err := c.navigator.Navigate(ctx, r); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c *ProductList) OpenProduct(ctx context.Context, productID string) error {
	return c.Open(ctx, domain.Route{
		Destination: domain.DestinationProductDetail,
		Params:      map[string]string{domain.ParamProductID: productID},
	})
}

func (c *ProductList) OpenAddProduct(ctx context.Context) error {
	return c.Open(ctx, domain.Route{Destination: domain.DestinationAddProduct})
}

func (c *ProductList) OpenProfile(ctx context.Context) error {
	return c.Open(ctx, domain.Route{Destination: domain.DestinationProfile})
}

func (c *ProductList) OpenCategories(ctx context.Context) error {
	return c.Open(ctx, domain.Route{Destination: domain.DestinationCategories})
}

func (c *ProductList) OpenHome(ctx context.Context) error {
	return c.Open(ctx, domain.Route{Destination: domain.DestinationHome})
}
