package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/htol/bookshop/book"
)

// execer is satisfied by *sql.DB and *sql.Tx
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

const bookColumns = `book_id, title, author, price, cover_image, description, genre, tagline, language, publisher, featured`

func insertBook(ctx context.Context, ex execer, b book.Book) error {
	_, err := ex.ExecContext(ctx,
		`INSERT INTO books (`+bookColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Title, b.Author, b.Price, b.CoverImage, b.Description,
		b.Genre, b.Tagline, b.Language, b.Publisher, b.Featured,
	)
	if err != nil {
		return fmt.Errorf("insert book %q: %w", b.ID, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBook(s scanner) (book.Book, error) {
	var b book.Book
	err := s.Scan(&b.ID, &b.Title, &b.Author, &b.Price, &b.CoverImage, &b.Description,
		&b.Genre, &b.Tagline, &b.Language, &b.Publisher, &b.Featured)
	return b, err
}

func (r *Repo) ListBooks(ctx context.Context) ([]book.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listBooks(ctx)
}

func (r *Repo) listBooks(ctx context.Context) ([]book.Book, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+bookColumns+` FROM books ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	defer rows.Close()

	books := []book.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

func (r *Repo) FindBook(ctx context.Context, id string) (book.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row := r.db.QueryRowContext(ctx, `SELECT `+bookColumns+` FROM books WHERE book_id = ?`, id)
	b, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return book.Book{}, fmt.Errorf("find book %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return book.Book{}, fmt.Errorf("find book %q: %w", id, err)
	}
	return b, nil
}

func (r *Repo) AddBook(ctx context.Context, b book.Book) (book.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b.ID == "" {
		b.ID = NewBookID()
	}
	if err := insertBook(ctx, r.db, b); err != nil {
		return book.Book{}, err
	}
	r.bump()
	return b, nil
}

// ReplaceBook overwrites every field of the book with id. The identifier in
// b is ignored
func (r *Repo) ReplaceBook(ctx context.Context, id string, b book.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.db.ExecContext(ctx, `
		UPDATE books SET title = ?, author = ?, price = ?, cover_image = ?, description = ?,
			genre = ?, tagline = ?, language = ?, publisher = ?, featured = ?
		WHERE book_id = ?`,
		b.Title, b.Author, b.Price, b.CoverImage, b.Description,
		b.Genre, b.Tagline, b.Language, b.Publisher, b.Featured, id,
	)
	if err != nil {
		return fmt.Errorf("replace book %q: %w", id, err)
	}
	if err := rowsAffected(res, "replace book", id); err != nil {
		return err
	}
	r.bump()
	return nil
}

// RemoveBook deletes the book. Orders that reference it are left alone
func (r *Repo) RemoveBook(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE book_id = ?`, id)
	if err != nil {
		return fmt.Errorf("remove book %q: %w", id, err)
	}
	if err := rowsAffected(res, "remove book", id); err != nil {
		return err
	}
	r.bump()
	return nil
}

func (r *Repo) UpsertRecommended(ctx context.Context, p book.PartialBook) (book.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row := r.db.QueryRowContext(ctx, `
		SELECT `+bookColumns+` FROM books
		WHERE title = ? COLLATE NOCASE AND author = ? COLLATE NOCASE
		ORDER BY seq LIMIT 1`, p.Title, p.Author)
	existing, err := scanBook(row)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return book.Book{}, fmt.Errorf("lookup recommended %q: %w", p.Title, err)
	}

	b := book.Hydrate(p, NewBookID())
	if err := insertBook(ctx, r.db, b); err != nil {
		return book.Book{}, err
	}
	r.bump()
	return b, nil
}

func (r *Repo) ListCategories(ctx context.Context) ([]book.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listCategories(ctx)
}

func (r *Repo) listCategories(ctx context.Context) ([]book.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT category_id, name, image FROM categories ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	categories := []book.Category{}
	for rows.Next() {
		var c book.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Image); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
