// Package recommend asks a generative model for books similar to the one a
// customer is looking at. Failures never reach the caller: they degrade to
// an empty list.
package recommend

import (
	"context"
	"fmt"
	"slices"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/htol/bookshop/book"
	"github.com/htol/bookshop/logger"
)

// DefaultTimeout bounds one recommendation request.
const DefaultTimeout = 8 * time.Second

// Generator produces raw JSON text for a prompt constrained by schema.
type Generator interface {
	Generate(ctx context.Context, prompt string, schema *genai.Schema) (string, error)
}

// Recommender returns titles similar to b. An empty result means none are
// available, for whatever reason.
type Recommender interface {
	Recommend(ctx context.Context, b book.Book) []book.PartialBook
}

// Options tune the gateway. Zero values select defaults; RPS <= 0 disables
// rate limiting.
type Options struct {
	Timeout time.Duration
	RPS     float64
	Burst   int
}

// Gateway is the Recommender backed by a Generator.
type Gateway struct {
	gen     Generator
	timeout time.Duration
	limiter *rate.Limiter
	group   singleflight.Group
}

// NewGateway wraps gen with a timeout, an outbound rate limit and request
// coalescing.
func NewGateway(gen Generator, opts Options) *Gateway {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	limit := rate.Inf
	if opts.RPS > 0 {
		limit = rate.Limit(opts.RPS)
	}
	if opts.Burst <= 0 {
		opts.Burst = 1
	}
	return &Gateway{
		gen:     gen,
		timeout: opts.Timeout,
		limiter: rate.NewLimiter(limit, opts.Burst),
	}
}

// Recommend returns recommendations for b, or an empty list when none are
// available. Concurrent calls for the same book share one request; the
// shared request outlives the cancellation of any one caller and is bounded
// by the gateway timeout alone.
func (g *Gateway) Recommend(ctx context.Context, b book.Book) []book.PartialBook {
	key := b.ID + "\x00" + b.Title
	flight := context.WithoutCancel(ctx)
	ch := g.group.DoChan(key, func() (any, error) {
		return g.fetch(flight, b)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			logger.Warn("recommendations unavailable", "book_id", b.ID, "error", res.Err, "shared", res.Shared)
			return []book.PartialBook{}
		}
		// Callers sharing a flight must not alias one backing array.
		return slices.Clone(res.Val.([]book.PartialBook))
	case <-ctx.Done():
		logger.Debug("recommendations abandoned", "book_id", b.ID, "error", ctx.Err())
		return []book.PartialBook{}
	}
}

func (g *Gateway) fetch(ctx context.Context, b book.Book) ([]book.PartialBook, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for rate limiter: %w", err)
	}

	start := time.Now()
	raw, err := g.generate(ctx, BuildPrompt(b))
	if err != nil {
		return nil, err
	}

	items, err := Decode(raw)
	if err != nil {
		return nil, err
	}

	logger.Debug("recommendations received", "book_id", b.ID, "count", len(items), "duration", time.Since(start))
	return items, nil
}

type result struct {
	raw string
	err error
}

// generate runs the generator in its own goroutine so a generator that
// ignores ctx still cannot hold the caller past the deadline.
func (g *Gateway) generate(ctx context.Context, prompt string) (string, error) {
	done := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("generator panic: %v", r)}
			}
		}()
		raw, err := g.gen.Generate(ctx, prompt, ResponseSchema())
		done <- result{raw: raw, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return "", fmt.Errorf("generate recommendations: %w", res.err)
		}
		return res.raw, nil
	case <-ctx.Done():
		return "", fmt.Errorf("generate recommendations: %w", ctx.Err())
	}
}
