package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/htol/bookshop/book"
	"github.com/htol/bookshop/logger"
)

// Open creates an empty in-memory store and loads seed into it. A nil seed
// leaves every collection empty
func Open(ctx context.Context, seed *Seed) (*Repo, error) {
	r := &Repo{
		name: "bookshop-" + uuid.NewString(),
		now:  time.Now,
	}

	db, err := sql.Open("sqlite3", "file:"+r.name+"?mode=memory&cache=shared")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// The database exists only while a connection holds it open
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	r.db = db

	if err := r.createSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	if seed != nil {
		if err := r.load(ctx, seed); err != nil {
			db.Close()
			return nil, fmt.Errorf("load seed: %w", err)
		}
	}

	logger.Info("Store ready", "db", r.name)
	return r, nil
}

func (r *Repo) createSchema(ctx context.Context) error {
	sqlStmt := `
           CREATE TABLE IF NOT EXISTS "books" (
                seq integer primary key autoincrement not null,
                book_id text not null unique,
                title text not null,
                author text not null,
                price real not null default 0,
                cover_image text not null default '',
                description text not null default '',
                genre text not null default '',
                tagline text not null default '',
                language text not null default '',
                publisher text not null default '',
                featured integer not null default 0
            );
           CREATE INDEX IF NOT EXISTS [I_books_genre] ON "books" ([genre]);
           CREATE INDEX IF NOT EXISTS [I_books_title_author] ON "books" (title COLLATE NOCASE, author COLLATE NOCASE);

           CREATE TABLE IF NOT EXISTS "categories" (
                seq integer primary key autoincrement not null,
                category_id text not null unique,
                name text not null,
                image text not null default ''
            );

           CREATE TABLE IF NOT EXISTS "orders" (
                seq integer primary key autoincrement not null,
                order_id text not null unique,
                book_id text not null,
                book_title text not null,
                customer_name text not null,
                phone text not null,
                address text not null,
                status text not null,
                created_at text not null
            );
           CREATE INDEX IF NOT EXISTS [I_orders_status] ON "orders" ([status]);

           CREATE TABLE IF NOT EXISTS "content" (
                name text primary key not null,
                body text not null
            );
	`
	_, err := r.db.ExecContext(ctx, sqlStmt)
	return err
}

// load writes seed records in a single transaction
func (r *Repo) load(ctx context.Context, seed *Seed) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			logger.Warn("Failed to rollback seed transaction", "error", err)
		}
	}()

	for _, c := range seed.Categories {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO categories (category_id, name, image) VALUES (?, ?, ?)`,
			c.ID, c.Name, c.Image); err != nil {
			return fmt.Errorf("insert category %q: %w", c.ID, err)
		}
	}

	for _, b := range seed.Books {
		if b.ID == "" {
			b.ID = NewBookID()
		}
		if err := insertBook(ctx, tx, b); err != nil {
			return err
		}
	}

	for _, o := range seed.Orders {
		if o.ID == "" {
			o.ID = r.nextOrderID()
		}
		if o.Status == "" {
			o.Status = book.StatusPending
		}
		if o.Date.IsZero() {
			o.Date = r.now().UTC()
		}
		r.observeOrderID(o.ID)
		if err := insertOrder(ctx, tx, o); err != nil {
			return err
		}
	}

	if err := saveContent(ctx, tx, contentContact, seed.Contact); err != nil {
		return err
	}
	if err := saveContent(ctx, tx, contentPrivacy, seed.Privacy); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	r.bump()
	logger.Info("Seed loaded",
		"books", len(seed.Books),
		"categories", len(seed.Categories),
		"orders", len(seed.Orders),
	)
	return nil
}
