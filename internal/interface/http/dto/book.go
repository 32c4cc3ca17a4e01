// Package dto defines the HTTP request/response shapes.
//
// The wire format speaks reais (float64, two decimals) and Portuguese
// field names, matching what the terminal frontend expects; conversion to
// centavos happens here, at the boundary, so the application layer only
// ever sees int64.
package dto

import (
	"github.com/osantanna/livraria-pos/internal/domain/book"
	"github.com/osantanna/livraria-pos/internal/domain/payment"
)

// BookRequest creates or replaces a catalog entry.
type BookRequest struct {
	Title   string  `json:"titulo" binding:"required,max=255" example:"Dom Casmurro"`
	Author  string  `json:"autor" binding:"max=255" example:"Machado de Assis"`
	Price   float64 `json:"preco" binding:"min=0" example:"45.90"` // reais
	Stock   int     `json:"estoque" binding:"min=0" example:"10"`
	Barcode *string `json:"codigo_barras" binding:"omitempty,max=64" example:"7898357410015"`
}

// BookResponse is a single catalog entry.
type BookResponse struct {
	ID        uint    `json:"id" example:"1"`
	Title     string  `json:"titulo" example:"Dom Casmurro"`
	Author    string  `json:"autor" example:"Machado de Assis"`
	Price     float64 `json:"preco" example:"45.90"` // reais
	Stock     int     `json:"estoque" example:"10"`
	Barcode   *string `json:"codigo_barras,omitempty" example:"7898357410015"`
	CreatedAt string  `json:"created_at" example:"2026-03-14T10:30:00-03:00"`
	UpdatedAt string  `json:"updated_at" example:"2026-03-14T10:30:00-03:00"`
}

// ListBooksRequest filters the catalog listing.
type ListBooksRequest struct {
	Keyword string `form:"busca" binding:"omitempty,max=100" example:"machado"`
}

// ToBookResponse maps a domain book onto the wire shape.
func ToBookResponse(b *book.Book) *BookResponse {
	return &BookResponse{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Price:     payment.ToReais(b.PriceCents),
		Stock:     b.Stock,
		Barcode:   b.Barcode,
		CreatedAt: formatTime(b.CreatedAt),
		UpdatedAt: formatTime(b.UpdatedAt),
	}
}

// ToBookResponses maps a catalog listing.
func ToBookResponses(books []*book.Book) []*BookResponse {
	out := make([]*BookResponse, len(books))
	for i, b := range books {
		out[i] = ToBookResponse(b)
	}
	return out
}
