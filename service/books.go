package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/htol/bookshop/book"
	"github.com/htol/bookshop/validator"
)

// BookForm is the admin book editor as submitted. Price arrives as text
type BookForm struct {
	ID          string `json:"id"`
	Title       string `json:"title" validate:"required"`
	Author      string `json:"author" validate:"required"`
	Price       string `json:"price" validate:"required"`
	CoverImage  string `json:"coverImage"`
	Description string `json:"description"`
	Genre       string `json:"genre"`
	Tagline     string `json:"tagline"`
	Language    string `json:"language"`
	Publisher   string `json:"publisher"`
	Featured    bool   `json:"isFeatured"`
}

// ParsePrice converts admin input into a price. Negative, non-finite and
// non-numeric values are rejected
func ParsePrice(s string) (float64, error) {
	p, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("price %q is not a number", s)
	}
	if p < 0 || math.IsNaN(p) || math.IsInf(p, 0) {
		return 0, fmt.Errorf("price %q is out of range", s)
	}
	return p, nil
}

// ParseBookForm validates f and converts it into a book
func (s *Service) ParseBookForm(f BookForm) (book.Book, error) {
	f.ID = strings.TrimSpace(f.ID)
	f.Title = strings.TrimSpace(f.Title)
	f.Author = strings.TrimSpace(f.Author)
	f.Price = strings.TrimSpace(f.Price)

	fe := &validator.FieldErrors{}
	if err := s.validate.Struct(f); err != nil {
		verr, ok := validator.AsFieldErrors(err)
		if !ok {
			return book.Book{}, err
		}
		fe = verr
	}

	var price float64
	if f.Price != "" {
		p, err := ParsePrice(f.Price)
		if err != nil {
			fe.Add("price", "must be a non-negative number")
		}
		price = p
	}
	if err := fe.Err(); err != nil {
		return book.Book{}, err
	}

	return book.Book{
		ID:          f.ID,
		Title:       f.Title,
		Author:      f.Author,
		Price:       price,
		CoverImage:  strings.TrimSpace(f.CoverImage),
		Description: strings.TrimSpace(f.Description),
		Genre:       strings.TrimSpace(f.Genre),
		Tagline:     strings.TrimSpace(f.Tagline),
		Language:    strings.TrimSpace(f.Language),
		Publisher:   strings.TrimSpace(f.Publisher),
		Featured:    f.Featured,
	}, nil
}

// SaveBook creates b when it has no ID and replaces the stored book otherwise
func (s *Service) SaveBook(ctx context.Context, b book.Book) (book.Book, error) {
	fe := &validator.FieldErrors{}
	if strings.TrimSpace(b.Title) == "" {
		fe.Add("title", "is required")
	}
	if strings.TrimSpace(b.Author) == "" {
		fe.Add("author", "is required")
	}
	if b.Price < 0 {
		fe.Add("price", "must be a non-negative number")
	}
	if err := fe.Err(); err != nil {
		return book.Book{}, err
	}

	if b.ID == "" {
		created, err := s.repo.AddBook(ctx, b)
		if err != nil {
			return book.Book{}, fmt.Errorf("add book: %w", err)
		}
		return created, nil
	}

	if err := validator.ValidateID(b.ID); err != nil {
		return book.Book{}, fmt.Errorf("save book: %w", err)
	}
	if err := s.repo.ReplaceBook(ctx, b.ID, b); err != nil {
		return book.Book{}, fmt.Errorf("replace book: %w", err)
	}
	return b, nil
}

// DeleteBook removes the book with id. Orders referring to it keep their
// copied title
func (s *Service) DeleteBook(ctx context.Context, id string, confirmed bool) error {
	if err := validator.ValidateID(id); err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if !confirmed {
		return ErrConfirmationRequired
	}
	if err := s.repo.RemoveBook(ctx, id); err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	return nil
}

// FindBook retrieves a single book by ID
func (s *Service) FindBook(ctx context.Context, id string) (book.Book, error) {
	if err := validator.ValidateID(id); err != nil {
		return book.Book{}, fmt.Errorf("find book: %w", err)
	}
	b, err := s.repo.FindBook(ctx, id)
	if err != nil {
		return book.Book{}, fmt.Errorf("find book: %w", err)
	}
	return b, nil
}

// OpenRecommended materializes a recommended title in the catalog, reusing
// an existing book with the same title and author
func (s *Service) OpenRecommended(ctx context.Context, p book.PartialBook) (book.Book, error) {
	p.Title = strings.TrimSpace(p.Title)
	p.Author = strings.TrimSpace(p.Author)

	fe := &validator.FieldErrors{}
	if p.Title == "" {
		fe.Add("title", "is required")
	}
	if p.Author == "" {
		fe.Add("author", "is required")
	}
	if err := fe.Err(); err != nil {
		return book.Book{}, err
	}

	b, err := s.repo.UpsertRecommended(ctx, p)
	if err != nil {
		return book.Book{}, fmt.Errorf("open recommended book: %w", err)
	}
	return b, nil
}
