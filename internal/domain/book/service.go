package book

import (
	"context"
	"errors"
	"strings"
)

// Service enforces catalog business rules on top of the repository.
type Service interface {
	// CreateBook validates and persists a new catalog entry.
	CreateBook(ctx context.Context, title, author string, priceCents int64, stock int, barcode *string) (*Book, error)

	// GetBookByID returns the book or ErrBookNotFound.
	GetBookByID(ctx context.Context, id uint) (*Book, error)

	// GetBookByBarcode returns the book or ErrBookNotFound.
	GetBookByBarcode(ctx context.Context, barcode string) (*Book, error)

	// UpdateBook replaces title, author, price, stock and barcode.
	UpdateBook(ctx context.Context, id uint, title, author string, priceCents int64, stock int, barcode *string) (*Book, error)

	// ListBooks lists the catalog ordered by title.
	ListBooks(ctx context.Context, params ListParams) ([]*Book, error)
}

type service struct {
	repo Repository
}

// NewService creates the catalog domain service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateBook(ctx context.Context, title, author string, priceCents int64, stock int, barcode *string) (*Book, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if priceCents < 0 {
		return nil, ErrInvalidPrice
	}
	if stock < 0 {
		return nil, ErrInvalidStock
	}
	barcode = normalizeBarcode(barcode)

	// title is the business key; check before insert for a friendly error
	// (the unique index still backs this up under races)
	existing, err := s.repo.FindByTitle(ctx, title)
	if err == nil && existing != nil {
		return nil, ErrTitleDuplicate
	}
	if err != nil && !errors.Is(err, ErrBookNotFound) {
		return nil, err
	}

	b := NewBook(title, strings.TrimSpace(author), priceCents, stock, barcode)
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *service) GetBookByID(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) GetBookByBarcode(ctx context.Context, barcode string) (*Book, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, ErrBookNotFound
	}
	return s.repo.FindByBarcode(ctx, barcode)
}

func (s *service) UpdateBook(ctx context.Context, id uint, title, author string, priceCents int64, stock int, barcode *string) (*Book, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := b.UpdateInfo(strings.TrimSpace(title), strings.TrimSpace(author), normalizeBarcode(barcode)); err != nil {
		return nil, err
	}
	if err := b.SetPrice(priceCents); err != nil {
		return nil, err
	}
	if err := b.SetStock(stock); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *service) ListBooks(ctx context.Context, params ListParams) ([]*Book, error) {
	return s.repo.List(ctx, params)
}

// normalizeBarcode trims the barcode and collapses empty strings to nil so
// the unique index never sees empty values.
func normalizeBarcode(barcode *string) *string {
	if barcode == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*barcode)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
