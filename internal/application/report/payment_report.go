package report

import (
	"context"
	"sort"
	"time"

	"github.com/osantanna/livraria-pos/internal/domain/payment"
	"github.com/osantanna/livraria-pos/internal/domain/sale"
)

// PaymentReportUseCase aggregates revenue by calendar day and payment
// method, normalizing legacy payment representations on the fly.
type PaymentReportUseCase struct {
	saleRepo sale.Repository
	cache    Cache
	loc      *time.Location
}

func NewPaymentReportUseCase(saleRepo sale.Repository, cache Cache, loc *time.Location) *PaymentReportUseCase {
	return &PaymentReportUseCase{saleRepo: saleRepo, cache: cache, loc: loc}
}

// PaymentRow is one (day, method) aggregate.
type PaymentRow struct {
	Date       string  `json:"date"`
	Method     string  `json:"forma"`
	SaleCount  int     `json:"num_vendas"`
	TotalReais float64 `json:"valor_total"`
}

func (uc *PaymentReportUseCase) Execute(ctx context.Context) ([]PaymentRow, error) {
	var cached []PaymentRow
	if uc.cache != nil && uc.cache.Get(ctx, cacheKeyByPayment, &cached) {
		return cached, nil
	}

	summaries, err := uc.saleRepo.ListSummaries(ctx)
	if err != nil {
		return nil, err
	}

	type aggregate struct {
		saleCount  int
		totalCents int64
	}
	type groupKey struct {
		date   string
		method string
	}
	groups := make(map[groupKey]*aggregate)

	for _, s := range summaries {
		date := localDate(s.SoldAt, uc.loc)
		parts := payment.Normalize(s.RawPayments)

		// one sale counts at most once per method: a repeated method
		// within the same sale is skipped outright
		seen := make(map[string]bool, len(parts))
		for _, p := range parts {
			if seen[p.Method] {
				continue
			}
			seen[p.Method] = true

			key := groupKey{date: date, method: p.Method}
			entry := groups[key]
			if entry == nil {
				entry = &aggregate{}
				groups[key] = entry
			}
			entry.saleCount++
			entry.totalCents += p.AmountCents
		}
	}

	rows := make([]PaymentRow, 0, len(groups))
	for key, entry := range groups {
		rows = append(rows, PaymentRow{
			Date:       key.date,
			Method:     key.method,
			SaleCount:  entry.saleCount,
			TotalReais: payment.ToReais(entry.totalCents),
		})
	}

	// newest day first, biggest contribution first within a day
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date > rows[j].Date
		}
		return rows[i].TotalReais > rows[j].TotalReais
	})

	if uc.cache != nil {
		uc.cache.Set(ctx, cacheKeyByPayment, rows)
	}
	return rows, nil
}
