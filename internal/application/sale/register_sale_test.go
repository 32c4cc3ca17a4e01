package sale

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osantanna/livraria-pos/internal/domain/book"
	"github.com/osantanna/livraria-pos/internal/domain/payment"
	domainsale "github.com/osantanna/livraria-pos/internal/domain/sale"
	apperrors "github.com/osantanna/livraria-pos/pkg/errors"
	"github.com/osantanna/livraria-pos/pkg/metrics"
)

func init() {
	metrics.InitMetrics()
}

// fakeTx runs the function without a real transaction but records whether
// the body returned an error (i.e. whether a rollback would have happened).
type fakeTx struct {
	rolledBack bool
}

func (t *fakeTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	err := fn(ctx)
	if err != nil {
		t.rolledBack = true
	}
	return err
}

type fakeSaleRepo struct {
	domainsale.Repository
	created   *domainsale.Sale
	createErr error
}

func (r *fakeSaleRepo) Create(ctx context.Context, s *domainsale.Sale) error {
	if r.createErr != nil {
		return r.createErr
	}
	s.ID = 42
	s.SoldAt = time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	r.created = s
	return nil
}

// fakeBookRepo keeps stock in a map and mimics the conditional decrement.
type fakeBookRepo struct {
	book.Repository
	stock  map[uint]int
	titles map[uint]string
}

func (r *fakeBookRepo) DecrementStock(ctx context.Context, id uint, quantity int) error {
	current, ok := r.stock[id]
	if !ok {
		return book.ErrBookNotFound
	}
	if current < quantity {
		return book.ErrInsufficientStock
	}
	r.stock[id] = current - quantity
	return nil
}

func (r *fakeBookRepo) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	title, ok := r.titles[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return &book.Book{ID: id, Title: title, Stock: r.stock[id]}, nil
}

type fakeCache struct {
	invalidated bool
}

func (c *fakeCache) InvalidateAll(ctx context.Context) {
	c.invalidated = true
}

type fakePublisher struct {
	published []interface{}
}

func (p *fakePublisher) Publish(ctx context.Context, routingKey string, message interface{}) error {
	p.published = append(p.published, message)
	return nil
}

func newTestUseCase(books *fakeBookRepo) (*RegisterSaleUseCase, *fakeSaleRepo, *fakeTx, *fakeCache, *fakePublisher) {
	sales := &fakeSaleRepo{}
	tx := &fakeTx{}
	cache := &fakeCache{}
	pub := &fakePublisher{}
	uc := NewRegisterSaleUseCase(sales, books, tx, pub, cache)
	return uc, sales, tx, cache, pub
}

func validRequest() RegisterSaleRequest {
	return RegisterSaleRequest{
		Items: []CartItem{
			{BookID: 1, Quantity: 2, UnitPriceCents: 3000},
			{BookID: 2, Quantity: 1, UnitPriceCents: 4550},
		},
		SubtotalCents: 10550,
		DiscountCents: 550,
		TotalCents:    10000,
		Payments: []payment.Payment{
			{Method: "pix", AmountCents: 10000},
		},
	}
}

func TestRegisterSaleSuccess(t *testing.T) {
	books := &fakeBookRepo{
		stock:  map[uint]int{1: 5, 2: 3},
		titles: map[uint]string{1: "Dom Casmurro", 2: "Grande Sertão: Veredas"},
	}
	uc, sales, _, cache, pub := newTestUseCase(books)

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, uint(42), resp.SaleID)
	assert.Equal(t, int64(10000), resp.TotalCents)

	// stock decremented per line
	assert.Equal(t, 3, books.stock[1])
	assert.Equal(t, 2, books.stock[2])

	// payments persisted canonically
	require.NotNil(t, sales.created)
	assert.JSONEq(t, `[{"method":"Pix","amount":100}]`, sales.created.RawPayments)

	assert.True(t, cache.invalidated)
	assert.Len(t, pub.published, 1)
}

func TestRegisterSaleInsufficientStockRollsBack(t *testing.T) {
	books := &fakeBookRepo{
		stock:  map[uint]int{1: 5, 2: 0},
		titles: map[uint]string{1: "Dom Casmurro", 2: "Grande Sertão: Veredas"},
	}
	uc, _, tx, cache, pub := newTestUseCase(books)

	_, err := uc.Execute(context.Background(), validRequest())

	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrCodeInsufficientStock, appErr.Code)
	assert.Equal(t, "Estoque insuficiente para o livro: Grande Sertão: Veredas", appErr.Message)

	assert.True(t, tx.rolledBack)
	assert.False(t, cache.invalidated)
	assert.Empty(t, pub.published)
}

func TestRegisterSaleUnknownBook(t *testing.T) {
	books := &fakeBookRepo{stock: map[uint]int{1: 5}, titles: map[uint]string{1: "Dom Casmurro"}}
	uc, _, _, _, _ := newTestUseCase(books)

	_, err := uc.Execute(context.Background(), validRequest())

	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrCodeBookNotFound, appErr.Code)
}

func TestRegisterSaleUnknownBookOnItemsInsert(t *testing.T) {
	// a foreign key violation on the items insert surfaces before any
	// stock decrement; the error must still name the missing book
	books := &fakeBookRepo{stock: map[uint]int{1: 5}, titles: map[uint]string{1: "Dom Casmurro"}}
	uc, sales, tx, _, _ := newTestUseCase(books)
	sales.createErr = book.ErrBookNotFound

	_, err := uc.Execute(context.Background(), validRequest())

	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrCodeBookNotFound, appErr.Code)
	assert.Contains(t, appErr.Message, "2")
	assert.True(t, tx.rolledBack)
	assert.Equal(t, 5, books.stock[1], "nenhum estoque deveria ter sido baixado")
}

func TestRegisterSaleCourtesy(t *testing.T) {
	books := &fakeBookRepo{stock: map[uint]int{1: 5}, titles: map[uint]string{1: "Dom Casmurro"}}
	uc, sales, _, _, pub := newTestUseCase(books)

	req := RegisterSaleRequest{
		Items:         []CartItem{{BookID: 1, Quantity: 1, UnitPriceCents: 0}},
		SubtotalCents: 0,
		DiscountCents: 0,
		TotalCents:    0,
		Payments:      []payment.Payment{{Method: "cortesia", AmountCents: 0}},
	}

	_, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, sales.created.IsCourtesy())
	require.Len(t, pub.published, 1)
}

func TestRegisterSaleValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RegisterSaleRequest)
		wantErr error
	}{
		{
			name:    "empty cart",
			mutate:  func(r *RegisterSaleRequest) { r.Items = nil },
			wantErr: domainsale.ErrEmptyCart,
		},
		{
			name:    "zero quantity",
			mutate:  func(r *RegisterSaleRequest) { r.Items[0].Quantity = 0 },
			wantErr: domainsale.ErrInvalidQuantity,
		},
		{
			name:    "negative unit price",
			mutate:  func(r *RegisterSaleRequest) { r.Items[0].UnitPriceCents = -100 },
			wantErr: domainsale.ErrInvalidAmount,
		},
		{
			name:    "total does not match subtotal minus discount",
			mutate:  func(r *RegisterSaleRequest) { r.TotalCents = 9000; r.Payments[0].AmountCents = 9000 },
			wantErr: domainsale.ErrTotalMismatch,
		},
		{
			name:    "items do not sum to subtotal",
			mutate:  func(r *RegisterSaleRequest) { r.SubtotalCents = 20000 },
			wantErr: domainsale.ErrTotalMismatch,
		},
		{
			name:    "payments do not cover total",
			mutate:  func(r *RegisterSaleRequest) { r.Payments[0].AmountCents = 5000 },
			wantErr: domainsale.ErrPaymentsMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			books := &fakeBookRepo{stock: map[uint]int{1: 5, 2: 5}}
			uc, _, _, _, _ := newTestUseCase(books)

			req := validRequest()
			tt.mutate(&req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegisterSaleAllowsZeroAmountPayments(t *testing.T) {
	// legacy terminals submit the method list without amounts
	books := &fakeBookRepo{stock: map[uint]int{1: 5, 2: 5}, titles: map[uint]string{1: "A", 2: "B"}}
	uc, _, _, _, _ := newTestUseCase(books)

	req := validRequest()
	req.Payments = []payment.Payment{{Method: "dinheiro", AmountCents: 0}}

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestRegisterSaleToleratesOneCentavoRounding(t *testing.T) {
	books := &fakeBookRepo{stock: map[uint]int{1: 5, 2: 5}, titles: map[uint]string{1: "A", 2: "B"}}
	uc, _, _, _, _ := newTestUseCase(books)

	req := validRequest()
	req.Payments[0].AmountCents = 10001

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
}
