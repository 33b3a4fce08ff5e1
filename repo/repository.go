package repo

import (
	"context"
	"errors"

	"github.com/htol/bookshop/book"
)

// ErrNotFound is returned when a record is not found in the repository
var ErrNotFound = errors.New("record not found")

// Snapshot is a consistent copy of every collection at one revision
type Snapshot struct {
	Books      []book.Book
	Orders     []book.Order
	Categories []book.Category
	Contact    book.ContactInfo
	Privacy    book.PrivacyPolicy
	Revision   uint64
}

// FindBook returns the book with id from the snapshot
func (s Snapshot) FindBook(id string) (book.Book, bool) {
	for _, b := range s.Books {
		if b.ID == id {
			return b, true
		}
	}
	return book.Book{}, false
}

// Repository defines the Entity Store. Writes replace whole values; callers
// supply the complete new record
type Repository interface {
	// Close releases the in-memory database
	Close() error

	// Health check
	Ping(ctx context.Context) error

	// Books
	ListBooks(ctx context.Context) ([]book.Book, error)
	FindBook(ctx context.Context, id string) (book.Book, error)
	// AddBook appends b, minting an ID when b.ID is empty
	AddBook(ctx context.Context, b book.Book) (book.Book, error)
	ReplaceBook(ctx context.Context, id string, b book.Book) error
	RemoveBook(ctx context.Context, id string) error
	// UpsertRecommended returns the stored book matching p by title and
	// author, adding a hydrated one when none exists
	UpsertRecommended(ctx context.Context, p book.PartialBook) (book.Book, error)

	// Categories
	ListCategories(ctx context.Context) ([]book.Category, error)

	// Orders
	ListOrders(ctx context.Context) ([]book.Order, error)
	AddOrder(ctx context.Context, o book.Order) (book.Order, error)
	SetOrderStatus(ctx context.Context, id string, status book.OrderStatus) error
	RemoveOrder(ctx context.Context, id string) error

	// Site content
	ContactInfo(ctx context.Context) (book.ContactInfo, error)
	SetContactInfo(ctx context.Context, c book.ContactInfo) error
	PrivacyPolicy(ctx context.Context) (book.PrivacyPolicy, error)
	SetPrivacyPolicy(ctx context.Context, p book.PrivacyPolicy) error

	Snapshot(ctx context.Context) (Snapshot, error)
}
