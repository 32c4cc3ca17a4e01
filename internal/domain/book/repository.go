package book

import (
	"context"
)

// Repository is the catalog persistence port, implemented by the mysql
// infrastructure package. Defined here so the domain and application layers
// never depend on GORM, and tests can supply in-memory fakes.
type Repository interface {
	// Create inserts a new book. Duplicate title/barcode surface as
	// ErrTitleDuplicate / ErrBarcodeDuplicate.
	Create(ctx context.Context, book *Book) error

	// FindByID returns the book or ErrBookNotFound.
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByTitle returns the book with the exact title or ErrBookNotFound.
	FindByTitle(ctx context.Context, title string) (*Book, error)

	// FindByBarcode returns the book or ErrBookNotFound (POS scanner path).
	FindByBarcode(ctx context.Context, barcode string) (*Book, error)

	// Update persists all fields of an existing book.
	Update(ctx context.Context, book *Book) error

	// Delete removes the book row. Referential integrity violations
	// (existing sale items) surface as ErrBookHasSales.
	Delete(ctx context.Context, id uint) error

	// List returns books ordered by title, optionally filtered by a keyword
	// matching title or author.
	List(ctx context.Context, params ListParams) ([]*Book, error)

	// DecrementStock atomically subtracts quantity from the book's stock,
	// only when the current stock is sufficient:
	//
	//   UPDATE books SET stock = stock - ? WHERE id = ? AND stock >= ?
	//
	// A zero-row update is resolved to ErrBookNotFound or
	// ErrInsufficientStock. Must run inside the sale transaction (the
	// context carries the transaction handle).
	DecrementStock(ctx context.Context, id uint, quantity int) error
}

// ListParams filters the catalog listing.
type ListParams struct {
	Keyword string
}
