package repo

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/htol/bookshop/logger"
)

// Repo is the sqlite-backed Entity Store. The database lives in process
// memory only and disappears on Close
type Repo struct {
	db   *sql.DB
	name string

	// mu serializes writers; every mutation bumps revision
	mu             sync.RWMutex
	revision       uint64
	lastOrderStamp int64

	now func() time.Time
}

var _ Repository = (*Repo)(nil)

func (r *Repo) Close() error {
	if r.db != nil {
		logger.Info("Closing database connection", "db", r.name)
		return r.db.Close()
	}
	return nil
}

func (r *Repo) Ping(ctx context.Context) error {
	if r.db != nil {
		return r.db.PingContext(ctx)
	}
	return sql.ErrConnDone
}

// Revision returns the current store version
func (r *Repo) Revision() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.revision
}

// bump must be called with mu held for writing
func (r *Repo) bump() {
	r.revision++
}

// NewBookID mints a book identifier
func NewBookID() string {
	return "book-" + gonanoid.Must()
}

// nextOrderID mints a timestamp-based order id that is strictly increasing
// even when the clock has not advanced. Must be called with mu held
func (r *Repo) nextOrderID() string {
	stamp := r.now().UnixMilli()
	if stamp <= r.lastOrderStamp {
		stamp = r.lastOrderStamp + 1
	}
	r.lastOrderStamp = stamp
	return "order-" + strconv.FormatInt(stamp, 10)
}

// observeOrderID keeps seeded ids from colliding with minted ones
func (r *Repo) observeOrderID(id string) {
	raw, ok := strings.CutPrefix(id, "order-")
	if !ok {
		return
	}
	if stamp, err := strconv.ParseInt(raw, 10, 64); err == nil && stamp > r.lastOrderStamp {
		r.lastOrderStamp = stamp
	}
}

func (r *Repo) Snapshot(ctx context.Context) (Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		snap Snapshot
		err  error
	)
	if snap.Books, err = r.listBooks(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.Orders, err = r.listOrders(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.Categories, err = r.listCategories(ctx); err != nil {
		return Snapshot{}, err
	}
	if err := r.loadContent(ctx, contentContact, &snap.Contact); err != nil {
		return Snapshot{}, err
	}
	if err := r.loadContent(ctx, contentPrivacy, &snap.Privacy); err != nil {
		return Snapshot{}, err
	}
	snap.Revision = r.revision
	return snap, nil
}

func rowsAffected(res sql.Result, what, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s %q: %w", what, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %q: %w", what, id, ErrNotFound)
	}
	return nil
}
