// Package service provides business logic layer between HTTP handlers and repository
package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/htol/bookshop/book"
	"github.com/htol/bookshop/recommend"
	"github.com/htol/bookshop/repo"
	"github.com/htol/bookshop/validator"
)

var (
	// ErrConfirmationRequired is returned by destructive operations that were not confirmed
	ErrConfirmationRequired = errors.New("confirmation required")
	// ErrNotPurchasable is returned when ordering a book without a price
	ErrNotPurchasable = errors.New("book is not available for purchase")
	// ErrUnauthorized is returned when an admin operation runs without a login
	ErrUnauthorized = errors.New("unauthorized")
)

// Service provides business logic for the application
type Service struct {
	repo        repo.Repository
	recommender recommend.Recommender
	validate    *validator.Validator
	admin       admin
	now         func() time.Time
	messages    atomic.Int64
}

// New creates a new Service with the given repository. A nil recommender
// disables recommendations
func New(r repo.Repository, rec recommend.Recommender, creds Credentials) (*Service, error) {
	a, err := newAdmin(creds)
	if err != nil {
		return nil, err
	}
	return &Service{
		repo:        r,
		recommender: rec,
		validate:    validator.New(),
		admin:       a,
		now:         time.Now,
	}, nil
}

// Snapshot returns a consistent copy of the store
func (s *Service) Snapshot(ctx context.Context) (repo.Snapshot, error) {
	snap, err := s.repo.Snapshot(ctx)
	if err != nil {
		return repo.Snapshot{}, fmt.Errorf("snapshot store: %w", err)
	}
	return snap, nil
}

// Ping checks if the repository is accessible
func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// Recommend returns titles similar to b, or an empty list
func (s *Service) Recommend(ctx context.Context, b book.Book) []book.PartialBook {
	if s.recommender == nil {
		return []book.PartialBook{}
	}
	return s.recommender.Recommend(ctx, b)
}
