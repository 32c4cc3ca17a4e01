package report

import (
	"context"
	"sort"
	"time"

	"github.com/osantanna/livraria-pos/internal/domain/sale"
)

// DailySalesUseCase breaks sales and units down per calendar day in the
// store's timezone, with and without courtesy sales.
type DailySalesUseCase struct {
	saleRepo sale.Repository
	cache    Cache
	loc      *time.Location
}

func NewDailySalesUseCase(saleRepo sale.Repository, cache Cache, loc *time.Location) *DailySalesUseCase {
	return &DailySalesUseCase{saleRepo: saleRepo, cache: cache, loc: loc}
}

// DailyRow is one day of sales activity.
type DailyRow struct {
	Date              string `json:"date"`
	SalesInclCourtesy int64  `json:"total_vendas_incl_cortesia"`
	SalesExclCourtesy int64  `json:"total_vendas_sem_cortesia"`
	BooksInclCourtesy int64  `json:"total_livros_incl_cortesia"`
	BooksExclCourtesy int64  `json:"total_livros_sem_cortesia"`
}

func (uc *DailySalesUseCase) Execute(ctx context.Context) ([]DailyRow, error) {
	var cached []DailyRow
	if uc.cache != nil && uc.cache.Get(ctx, cacheKeyDaily, &cached) {
		return cached, nil
	}

	summaries, err := uc.saleRepo.ListSummaries(ctx)
	if err != nil {
		return nil, err
	}

	days := make(map[string]*DailyRow)
	for _, s := range summaries {
		date := localDate(s.SoldAt, uc.loc)
		row := days[date]
		if row == nil {
			row = &DailyRow{Date: date}
			days[date] = row
		}
		row.SalesInclCourtesy++
		row.BooksInclCourtesy += int64(s.UnitCount)
		if s.TotalCents != 0 {
			row.SalesExclCourtesy++
			row.BooksExclCourtesy += int64(s.UnitCount)
		}
	}

	rows := make([]DailyRow, 0, len(days))
	for _, row := range days {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Date > rows[j].Date
	})

	if uc.cache != nil {
		uc.cache.Set(ctx, cacheKeyDaily, rows)
	}
	return rows, nil
}
