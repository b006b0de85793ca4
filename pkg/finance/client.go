// Package finance is the typed access layer of the finance data service.
//
// A Client builds queries for the backend, validates input before any
// backend call, derives aggregates and converts backend errors into
// localized errors of a small set of kinds.
package finance

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/walletwise/finance/internal/types"
	"github.com/walletwise/finance/pkg/backend"
	"github.com/walletwise/finance/pkg/cache"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultRequestTimeout bounds every backend call if no timeout is configured.
const DefaultRequestTimeout = 10 * time.Second

// Client accesses the finance data of the principal in the context
// of each call. It is safe for concurrent use.
type Client struct {
	backend backend.Backend
	now     func() time.Time
	timeout time.Duration
	cache   *cache.Cache
	logger  zerolog.Logger
	printer *message.Printer
}

// Option configures a Client.
type Option func(*Client)

// WithClock sets the function used to determine the current time.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// WithRequestTimeout bounds every backend call. A timeout of 0 disables the bound.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithCache caches read results. Without it, every read calls the backend.
func WithCache(cache *cache.Cache) Option {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithLocale sets the language of error messages and labels.
func WithLocale(tag language.Tag) Option {
	return func(c *Client) {
		c.printer = message.NewPrinter(tag)
	}
}

// WithLogger sets the logger for backend failures.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// New returns a Client for the backend.
func New(b backend.Backend, opts ...Option) *Client {
	c := &Client{
		backend: b,
		now:     time.Now,
		timeout: DefaultRequestTimeout,
		logger:  log.Logger,
		printer: message.NewPrinter(DefaultLocale),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.logger = c.logger.With().Str("component", "finance").Logger()
	return c
}

// Invalidate drops cached reads of the collections.
func (c *Client) Invalidate(keys ...cache.Key) {
	c.cache.Invalidate(keys...)
}

// call runs fn with the request timeout applied to the context.
func call[T any](ctx context.Context, c *Client, fn func(context.Context) (T, error)) (T, error) {
	if c.timeout <= 0 {
		return fn(ctx)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return fn(ctx)
}

// read loads a collection through the cache. The scope is derived from the
// principal of the context and the parts, which must identify the result.
func read[T any](ctx context.Context, c *Client, key cache.Key, parts string, fn func(context.Context) (T, error)) (T, error) {
	scope := "anonymous"
	if p, ok := backend.PrincipalFrom(ctx); ok {
		scope = p.ID.String()
	}

	return cache.Load(c.cache, key, scope+"?"+parts, func() (T, error) {
		return call(ctx, c, fn)
	})
}

// requireSession returns the principal of the session. Without a session it
// fails with an authentication error and nothing else is sent to the backend.
func (c *Client) requireSession(ctx context.Context) (backend.Principal, error) {
	p, err := call(ctx, c, c.backend.Session)
	if err != nil {
		return backend.Principal{}, c.fail("session", err)
	}

	if p == nil {
		return backend.Principal{}, c.authentication()
	}

	return *p, nil
}

// today returns the current calendar day in UTC.
func (c *Client) today() types.Date {
	return types.DateOf(c.now())
}
