package report

import (
	"context"

	"github.com/osantanna/livraria-pos/internal/domain/sale"
)

// courtesyByBookLimit bounds the per-book courtesy listing.
const courtesyByBookLimit = 1000

// TotalsUseCase computes the headline totals, with and without courtesy
// sales, plus the per-book courtesy breakdown.
type TotalsUseCase struct {
	saleRepo sale.Repository
	cache    Cache
}

func NewTotalsUseCase(saleRepo sale.Repository, cache Cache) *TotalsUseCase {
	return &TotalsUseCase{saleRepo: saleRepo, cache: cache}
}

// CourtesyBookRow is the courtesy quantity handed out per book.
type CourtesyBookRow struct {
	BookID   uint   `json:"livro_id"`
	Title    string `json:"titulo"`
	Quantity int64  `json:"quantidade_cortesia"`
}

// TotalsResponse is the headline report.
type TotalsResponse struct {
	SalesInclCourtesy int64             `json:"total_vendas_incl_cortesia"`
	BooksInclCourtesy int64             `json:"total_livros_incl_cortesia"`
	SalesExclCourtesy int64             `json:"total_vendas_sem_cortesia"`
	BooksExclCourtesy int64             `json:"total_livros_sem_cortesia"`
	CourtesyByBook    []CourtesyBookRow `json:"cortesias_por_livro"`
}

func (uc *TotalsUseCase) Execute(ctx context.Context) (*TotalsResponse, error) {
	var cached TotalsResponse
	if uc.cache != nil && uc.cache.Get(ctx, cacheKeyTotals, &cached) {
		return &cached, nil
	}

	summaries, err := uc.saleRepo.ListSummaries(ctx)
	if err != nil {
		return nil, err
	}

	resp := &TotalsResponse{CourtesyByBook: []CourtesyBookRow{}}
	for _, s := range summaries {
		resp.SalesInclCourtesy++
		resp.BooksInclCourtesy += int64(s.UnitCount)
		if s.TotalCents != 0 {
			resp.SalesExclCourtesy++
			resp.BooksExclCourtesy += int64(s.UnitCount)
		}
	}

	courtesies, err := uc.saleRepo.CourtesyByBook(ctx, courtesyByBookLimit)
	if err != nil {
		return nil, err
	}
	for _, c := range courtesies {
		if c.Quantity <= 0 {
			continue
		}
		resp.CourtesyByBook = append(resp.CourtesyByBook, CourtesyBookRow{
			BookID:   c.BookID,
			Title:    c.Title,
			Quantity: c.Quantity,
		})
	}

	if uc.cache != nil {
		uc.cache.Set(ctx, cacheKeyTotals, resp)
	}
	return resp, nil
}
