package report

import (
	"context"

	"github.com/osantanna/livraria-pos/internal/domain/sale"
)

// topBooksLimit bounds the best-seller listing.
const topBooksLimit = 500

// TopBooksUseCase lists the best sellers by units sold across all sales,
// courtesy included.
type TopBooksUseCase struct {
	saleRepo sale.Repository
	cache    Cache
}

func NewTopBooksUseCase(saleRepo sale.Repository, cache Cache) *TopBooksUseCase {
	return &TopBooksUseCase{saleRepo: saleRepo, cache: cache}
}

// TopBookRow is one best-seller entry.
type TopBookRow struct {
	BookID    uint   `json:"id"`
	Title     string `json:"titulo"`
	TotalSold int64  `json:"total_vendido"`
}

func (uc *TopBooksUseCase) Execute(ctx context.Context) ([]TopBookRow, error) {
	var cached []TopBookRow
	if uc.cache != nil && uc.cache.Get(ctx, cacheKeyTopBooks, &cached) {
		return cached, nil
	}

	aggregates, err := uc.saleRepo.TopBooks(ctx, topBooksLimit)
	if err != nil {
		return nil, err
	}

	rows := make([]TopBookRow, len(aggregates))
	for i, a := range aggregates {
		rows[i] = TopBookRow{BookID: a.BookID, Title: a.Title, TotalSold: a.TotalSold}
	}

	if uc.cache != nil {
		uc.cache.Set(ctx, cacheKeyTopBooks, rows)
	}
	return rows, nil
}
