package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osantanna/livraria-pos/internal/domain/sale"
)

// fakeSaleRepo serves canned summaries and aggregates.
type fakeSaleRepo struct {
	sale.Repository
	summaries  []sale.Summary
	topBooks   []sale.BookSales
	courtesies []sale.CourtesyRow
}

func (r *fakeSaleRepo) ListSummaries(ctx context.Context) ([]sale.Summary, error) {
	return r.summaries, nil
}

func (r *fakeSaleRepo) TopBooks(ctx context.Context, limit int) ([]sale.BookSales, error) {
	return r.topBooks, nil
}

func (r *fakeSaleRepo) CourtesyByBook(ctx context.Context, limit int) ([]sale.CourtesyRow, error) {
	return r.courtesies, nil
}

// memCache is an in-process Cache for asserting cache-aside behavior.
type memCache struct {
	entries map[string]interface{}
	hits    int
	sets    int
}

func newMemCache() *memCache {
	return &memCache{entries: map[string]interface{}{}}
}

func (c *memCache) Get(ctx context.Context, name string, dest interface{}) bool {
	// the real cache round-trips JSON; for these tests a miss-only cache is
	// enough to count interactions
	if _, ok := c.entries[name]; ok {
		c.hits++
	}
	return false
}

func (c *memCache) Set(ctx context.Context, name string, value interface{}) {
	c.entries[name] = value
	c.sets++
}

var recife = time.FixedZone("America/Recife", -3*60*60)

func buyer(name string) *string { return &name }

func testSummaries() []sale.Summary {
	return []sale.Summary{
		{
			ID:          1,
			TotalCents:  13200,
			RawPayments: `Voucher SEDUC R$ 100,00 + Cartão de Débito R$ 32,00`,
			SoldAt:      time.Date(2026, 3, 14, 13, 0, 0, 0, time.UTC), // 10:00 in Recife
			UnitCount:   3,
			BuyerName:   buyer("Maria"),
		},
		{
			ID:          2,
			TotalCents:  4500,
			RawPayments: `[{"method":"Pix","amount":45.00}]`,
			SoldAt:      time.Date(2026, 3, 15, 1, 0, 0, 0, time.UTC), // still Mar 14 in Recife
			UnitCount:   1,
		},
		{
			ID:          3,
			TotalCents:  0, // courtesy
			RawPayments: `[]`,
			SoldAt:      time.Date(2026, 3, 15, 14, 0, 0, 0, time.UTC),
			UnitCount:   2,
		},
		{
			ID:          4,
			TotalCents:  15000,
			RawPayments: `[{"forma":"voucher","valor":"150,00"}]`,
			SoldAt:      time.Date(2026, 3, 15, 15, 0, 0, 0, time.UTC),
			UnitCount:   1,
			BuyerName:   buyer("João"),
		},
	}
}

func TestPaymentReportGroupsByLocalDayAndMethod(t *testing.T) {
	repo := &fakeSaleRepo{summaries: testSummaries()}
	uc := NewPaymentReportUseCase(repo, nil, recife)

	rows, err := uc.Execute(context.Background())
	require.NoError(t, err)

	// Mar 15 (Recife): courtesy sale contributes nothing, voucher sale 150
	// Mar 14 (Recife): sale 1 (voucher 100 + debit 32) and sale 2 (pix 45)
	require.Len(t, rows, 4)

	assert.Equal(t, "2026-03-15", rows[0].Date)
	assert.Equal(t, "Voucher SEDUC", rows[0].Method)
	assert.InDelta(t, 150.0, rows[0].TotalReais, 0.001)
	assert.Equal(t, 1, rows[0].SaleCount)

	// within a day, biggest contribution first
	assert.Equal(t, "2026-03-14", rows[1].Date)
	assert.Equal(t, "Voucher SEDUC", rows[1].Method)
	assert.InDelta(t, 100.0, rows[1].TotalReais, 0.001)
	assert.Equal(t, "2026-03-14", rows[2].Date)
	assert.InDelta(t, 45.0, rows[2].TotalReais, 0.001)
	assert.Equal(t, "2026-03-14", rows[3].Date)
	assert.InDelta(t, 32.0, rows[3].TotalReais, 0.001)
}

func TestPaymentReportDeduplicatesRepeatedMethod(t *testing.T) {
	repo := &fakeSaleRepo{summaries: []sale.Summary{
		{
			ID:          1,
			TotalCents:  5000,
			RawPayments: `[{"method":"Pix","amount":30.00},{"method":"Pix","amount":20.00}]`,
			SoldAt:      time.Date(2026, 3, 14, 13, 0, 0, 0, time.UTC),
		},
	}}
	uc := NewPaymentReportUseCase(repo, nil, recife)

	rows, err := uc.Execute(context.Background())
	require.NoError(t, err)

	// the second Pix part of the same sale is skipped entirely
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].SaleCount)
	assert.InDelta(t, 30.0, rows[0].TotalReais, 0.001)
}

func TestPaymentReportWritesCache(t *testing.T) {
	repo := &fakeSaleRepo{summaries: testSummaries()}
	cache := newMemCache()
	uc := NewPaymentReportUseCase(repo, cache, recife)

	_, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)
}

func TestTotals(t *testing.T) {
	repo := &fakeSaleRepo{
		summaries: testSummaries(),
		courtesies: []sale.CourtesyRow{
			{BookID: 7, Title: "O Pequeno Príncipe", Quantity: 2},
		},
	}
	uc := NewTotalsUseCase(repo, nil)

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(4), resp.SalesInclCourtesy)
	assert.Equal(t, int64(7), resp.BooksInclCourtesy)
	assert.Equal(t, int64(3), resp.SalesExclCourtesy)
	assert.Equal(t, int64(5), resp.BooksExclCourtesy)

	require.Len(t, resp.CourtesyByBook, 1)
	assert.Equal(t, "O Pequeno Príncipe", resp.CourtesyByBook[0].Title)
	assert.Equal(t, int64(2), resp.CourtesyByBook[0].Quantity)
}

func TestDailySales(t *testing.T) {
	repo := &fakeSaleRepo{summaries: testSummaries()}
	uc := NewDailySalesUseCase(repo, nil, recife)

	rows, err := uc.Execute(context.Background())
	require.NoError(t, err)

	require.Len(t, rows, 2)

	// newest day first
	assert.Equal(t, "2026-03-15", rows[0].Date)
	assert.Equal(t, int64(2), rows[0].SalesInclCourtesy)
	assert.Equal(t, int64(1), rows[0].SalesExclCourtesy)
	assert.Equal(t, int64(3), rows[0].BooksInclCourtesy)
	assert.Equal(t, int64(1), rows[0].BooksExclCourtesy)

	assert.Equal(t, "2026-03-14", rows[1].Date)
	assert.Equal(t, int64(2), rows[1].SalesInclCourtesy)
	assert.Equal(t, int64(2), rows[1].SalesExclCourtesy)
}

func TestVoucherReportCapsPerSale(t *testing.T) {
	repo := &fakeSaleRepo{summaries: testSummaries()}
	uc := NewVoucherSeducUseCase(repo, nil, recife)

	report, err := uc.Execute(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Rows, 2)
	assert.Equal(t, 2, report.SaleCount)

	// sale 1: voucher exactly at the cap
	assert.Equal(t, uint(1), report.Rows[0].SaleID)
	assert.Equal(t, "Maria", report.Rows[0].BuyerName)
	assert.InDelta(t, 100.0, report.Rows[0].VoucherReais, 0.001)
	assert.InDelta(t, 100.0, report.Rows[0].ReimbursableReais, 0.001)

	// sale 4: voucher above the cap reimburses only R$ 100
	assert.Equal(t, uint(4), report.Rows[1].SaleID)
	assert.InDelta(t, 150.0, report.Rows[1].VoucherReais, 0.001)
	assert.InDelta(t, 100.0, report.Rows[1].ReimbursableReais, 0.001)

	// gross total is the whole of each voucher sale (132 + 150), the
	// reimbursable total applies the per-sale cap
	assert.InDelta(t, 282.0, report.TotalReais, 0.001)
	assert.InDelta(t, 200.0, report.ReimbursableReais, 0.001)

	// day groups newest first, each with the sale total and the capped
	// voucher amount
	require.Len(t, report.Days, 2)
	assert.Equal(t, "2026-03-15", report.Days[0].Date)
	assert.Equal(t, 1, report.Days[0].SaleCount)
	assert.InDelta(t, 150.0, report.Days[0].DayTotalReais, 0.001)
	assert.InDelta(t, 100.0, report.Days[0].DayVoucherReais, 0.001)
	assert.Equal(t, "2026-03-14", report.Days[1].Date)
	assert.InDelta(t, 132.0, report.Days[1].DayTotalReais, 0.001)
	assert.InDelta(t, 100.0, report.Days[1].DayVoucherReais, 0.001)
}

func TestVoucherReportLegacyPlainString(t *testing.T) {
	repo := &fakeSaleRepo{summaries: []sale.Summary{
		{
			ID:          9,
			TotalCents:  8000,
			RawPayments: `Voucher SEDUC`,
			SoldAt:      time.Date(2026, 3, 20, 13, 0, 0, 0, time.UTC),
		},
	}}
	uc := NewVoucherSeducUseCase(repo, nil, recife)

	report, err := uc.Execute(context.Background())
	require.NoError(t, err)

	// no amount recorded: the whole sale was charged to the voucher
	require.Len(t, report.Rows, 1)
	assert.InDelta(t, 80.0, report.Rows[0].VoucherReais, 0.001)
	assert.InDelta(t, 80.0, report.Rows[0].ReimbursableReais, 0.001)
	assert.InDelta(t, 80.0, report.Rows[0].SaleTotalReais, 0.001)
}

func TestTopBooks(t *testing.T) {
	repo := &fakeSaleRepo{topBooks: []sale.BookSales{
		{BookID: 1, Title: "Dom Casmurro", TotalSold: 12},
		{BookID: 2, Title: "Vidas Secas", TotalSold: 7},
	}}
	uc := NewTopBooksUseCase(repo, nil)

	rows, err := uc.Execute(context.Background())
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "Dom Casmurro", rows[0].Title)
	assert.Equal(t, int64(12), rows[0].TotalSold)
}
