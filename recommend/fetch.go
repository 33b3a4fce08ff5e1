package recommend

import (
	"context"

	"github.com/htol/bookshop/book"
	"github.com/htol/bookshop/logger"
)

// Fetch starts loading recommendations for b into p. The returned channel
// is closed once the result has been applied or discarded.
func Fetch(ctx context.Context, r Recommender, p *Panel, b book.Book) <-chan struct{} {
	return Load(ctx, r, p, p.Begin(b.ID), b)
}

// Load fetches recommendations for b in the background and resolves ticket
// with them. Callers that must take the ticket under their own lock use
// Panel.Begin followed by Load.
func Load(ctx context.Context, r Recommender, p *Panel, ticket Ticket, b book.Book) <-chan struct{} {
	done := make(chan struct{})

	go func() {
		defer close(done)
		items := r.Recommend(ctx, b)
		if !p.Resolve(ticket, items) {
			logger.Debug("discarded stale recommendations", "book_id", b.ID)
		}
	}()

	return done
}
