package book

import (
	"time"
)

// Book is the catalog aggregate root.
//
// Prices are stored as int64 centavos (1 real = 100 centavos) so money
// arithmetic never touches floating point. Title is the business key and is
// unique; Barcode is unique only when present (POS scanner lookups).
//
// Stock is only ever decremented by the sale transaction; catalog updates
// may set a new absolute value (restocking is a catalog operation, outside
// the sale path).
type Book struct {
	ID         uint
	Title      string
	Author     string
	PriceCents int64
	Stock      int
	Barcode    *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewBook creates a catalog entry. Validation of business rules lives in
// the domain service; the factory only fills timestamps.
func NewBook(title, author string, priceCents int64, stock int, barcode *string) *Book {
	now := time.Now()
	return &Book{
		Title:      title,
		Author:     author,
		PriceCents: priceCents,
		Stock:      stock,
		Barcode:    barcode,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// SetPrice updates the price. Zero is allowed: imported inventory starts at
// price 0 until the price list is loaded.
func (b *Book) SetPrice(priceCents int64) error {
	if priceCents < 0 {
		return ErrInvalidPrice
	}
	b.PriceCents = priceCents
	b.UpdatedAt = time.Now()
	return nil
}

// SetStock replaces the absolute stock count.
func (b *Book) SetStock(stock int) error {
	if stock < 0 {
		return ErrInvalidStock
	}
	b.Stock = stock
	b.UpdatedAt = time.Now()
	return nil
}

// UpdateInfo replaces the descriptive fields.
func (b *Book) UpdateInfo(title, author string, barcode *string) error {
	if title == "" {
		return ErrTitleRequired
	}
	b.Title = title
	b.Author = author
	b.Barcode = barcode
	b.UpdatedAt = time.Now()
	return nil
}
