package book

import (
	"context"
	"fmt"
	"strings"

	"github.com/osantanna/livraria-pos/internal/domain/book"
	"github.com/osantanna/livraria-pos/internal/domain/sale"
)

// CacheInvalidator drops cached read models after catalog mutations.
type CacheInvalidator interface {
	InvalidateAll(ctx context.Context)
}

// Cache is the cache-aside port for the detail lookups, implemented by
// redis.QueryCache. Get returns false on a miss; both sides tolerate cache
// outages.
type Cache interface {
	Get(ctx context.Context, name string, dest interface{}) bool
	Set(ctx context.Context, name string, value interface{})
}

// CreateBookUseCase adds a catalog entry.
type CreateBookUseCase struct {
	bookService book.Service
	cache       CacheInvalidator
}

func NewCreateBookUseCase(bookService book.Service, cache CacheInvalidator) *CreateBookUseCase {
	return &CreateBookUseCase{bookService: bookService, cache: cache}
}

// CreateBookRequest carries the new entry, already converted to centavos.
type CreateBookRequest struct {
	Title      string
	Author     string
	PriceCents int64
	Stock      int
	Barcode    *string
}

func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (*book.Book, error) {
	b, err := uc.bookService.CreateBook(ctx, req.Title, req.Author, req.PriceCents, req.Stock, req.Barcode)
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return b, nil
}

func (uc *CreateBookUseCase) invalidate(ctx context.Context) {
	if uc.cache != nil {
		uc.cache.InvalidateAll(ctx)
	}
}

// UpdateBookUseCase edits a catalog entry. Price edits do not touch past
// sales (items keep their snapshot).
type UpdateBookUseCase struct {
	bookService book.Service
	cache       CacheInvalidator
}

func NewUpdateBookUseCase(bookService book.Service, cache CacheInvalidator) *UpdateBookUseCase {
	return &UpdateBookUseCase{bookService: bookService, cache: cache}
}

// UpdateBookRequest replaces every mutable field of the entry.
type UpdateBookRequest struct {
	ID         uint
	Title      string
	Author     string
	PriceCents int64
	Stock      int
	Barcode    *string
}

func (uc *UpdateBookUseCase) Execute(ctx context.Context, req UpdateBookRequest) (*book.Book, error) {
	b, err := uc.bookService.UpdateBook(ctx, req.ID, req.Title, req.Author, req.PriceCents, req.Stock, req.Barcode)
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		uc.cache.InvalidateAll(ctx)
	}
	return b, nil
}

// DeleteBookUseCase removes a catalog entry, refusing when sale history
// references it. The check-then-delete is advisory; the FK constraint is
// the real guard and its violation maps to the same error.
type DeleteBookUseCase struct {
	bookRepo book.Repository
	saleRepo sale.Repository
	cache    CacheInvalidator
}

func NewDeleteBookUseCase(bookRepo book.Repository, saleRepo sale.Repository, cache CacheInvalidator) *DeleteBookUseCase {
	return &DeleteBookUseCase{bookRepo: bookRepo, saleRepo: saleRepo, cache: cache}
}

func (uc *DeleteBookUseCase) Execute(ctx context.Context, id uint) error {
	count, err := uc.saleRepo.CountItemsByBook(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return book.ErrBookHasSales
	}

	if err := uc.bookRepo.Delete(ctx, id); err != nil {
		return err
	}
	if uc.cache != nil {
		uc.cache.InvalidateAll(ctx)
	}
	return nil
}

// QueryBookUseCase covers the catalog read paths, including the barcode
// lookup the POS scanner uses. Detail reads are cache-aside; sales and
// catalog writes invalidate the whole cache since both change stock.
type QueryBookUseCase struct {
	bookService book.Service
	cache       Cache
}

func NewQueryBookUseCase(bookService book.Service, cache Cache) *QueryBookUseCase {
	return &QueryBookUseCase{bookService: bookService, cache: cache}
}

func (uc *QueryBookUseCase) GetByID(ctx context.Context, id uint) (*book.Book, error) {
	key := fmt.Sprintf("livro:%d", id)

	var cached book.Book
	if uc.cache != nil && uc.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	b, err := uc.bookService.GetBookByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		uc.cache.Set(ctx, key, b)
	}
	return b, nil
}

func (uc *QueryBookUseCase) GetByBarcode(ctx context.Context, barcode string) (*book.Book, error) {
	key := "livro:codigo:" + strings.TrimSpace(barcode)

	var cached book.Book
	if uc.cache != nil && uc.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	b, err := uc.bookService.GetBookByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		uc.cache.Set(ctx, key, b)
	}
	return b, nil
}

func (uc *QueryBookUseCase) List(ctx context.Context, keyword string) ([]*book.Book, error) {
	return uc.bookService.ListBooks(ctx, book.ListParams{Keyword: keyword})
}
