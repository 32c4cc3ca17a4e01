package sale

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/osantanna/livraria-pos/internal/domain/book"
	"github.com/osantanna/livraria-pos/internal/domain/payment"
	"github.com/osantanna/livraria-pos/internal/domain/sale"
	"github.com/osantanna/livraria-pos/pkg/metrics"
	"github.com/osantanna/livraria-pos/pkg/mq"
)

// Transactor opens a database transaction and runs a function inside it.
// Implemented by mysql.TxManager; tests supply a pass-through fake.
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher publishes domain events. Implemented by mq.Publisher.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// CacheInvalidator drops cached report output. Implemented by
// redis.QueryCache.
type CacheInvalidator interface {
	InvalidateAll(ctx context.Context)
}

// RegisterSaleUseCase persists a cart as an immutable sale.
//
// The whole write runs in one transaction: the sale row, its items and the
// conditional stock decrement for every line either all commit or all roll
// back. Stock never goes negative and a failed line voids the entire sale.
type RegisterSaleUseCase struct {
	saleRepo  sale.Repository
	bookRepo  book.Repository
	tx        Transactor
	publisher EventPublisher
	cache     CacheInvalidator
}

// NewRegisterSaleUseCase wires the sale registration use case. publisher
// and cache may be nil (event publication and report caching are optional
// deployments).
func NewRegisterSaleUseCase(
	saleRepo sale.Repository,
	bookRepo book.Repository,
	tx Transactor,
	publisher EventPublisher,
	cache CacheInvalidator,
) *RegisterSaleUseCase {
	return &RegisterSaleUseCase{
		saleRepo:  saleRepo,
		bookRepo:  bookRepo,
		tx:        tx,
		publisher: publisher,
		cache:     cache,
	}
}

// CartItem is one line of the incoming cart. UnitPriceCents is the price
// shown at the terminal and becomes the persisted snapshot.
type CartItem struct {
	BookID         uint
	Quantity       int
	UnitPriceCents int64
}

// RegisterSaleRequest is the cart submitted by the terminal, already
// converted to centavos.
type RegisterSaleRequest struct {
	BuyerName     *string
	Items         []CartItem
	SubtotalCents int64
	DiscountCents int64
	TotalCents    int64
	Payments      []payment.Payment
}

// RegisterSaleResponse identifies the committed sale.
type RegisterSaleResponse struct {
	SaleID     uint
	TotalCents int64
	SoldAt     string
}

// centsEpsilon absorbs rounding differences from reais-to-centavos
// conversion at the API boundary.
const centsEpsilon = 1

// Execute validates the cart, runs the sale transaction and fires the
// post-commit side effects (metrics, event, cache invalidation).
func (uc *RegisterSaleUseCase) Execute(ctx context.Context, req RegisterSaleRequest) (*RegisterSaleResponse, error) {
	if err := validateRequest(req); err != nil {
		metrics.SalesFailedTotal.Inc()
		return nil, err
	}

	rawPayments, err := payment.Serialize(canonicalize(req.Payments))
	if err != nil {
		metrics.SalesFailedTotal.Inc()
		return nil, err
	}

	items := make([]sale.Item, len(req.Items))
	for i, line := range req.Items {
		items[i] = sale.Item{
			BookID:         line.BookID,
			Quantity:       line.Quantity,
			UnitPriceCents: line.UnitPriceCents,
		}
	}
	s := sale.NewSale(req.BuyerName, req.SubtotalCents, req.DiscountCents, req.TotalCents, rawPayments, items)

	timer := prometheus.NewTimer(metrics.SaleRegistrationDuration)
	err = uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		if err := uc.saleRepo.Create(txCtx, s); err != nil {
			if errors.Is(err, book.ErrBookNotFound) {
				return uc.missingBookError(txCtx, req.Items)
			}
			return err
		}

		// Conditional decrement per line; a zero-row update aborts
		// everything, including lines already decremented.
		for _, line := range req.Items {
			err := uc.bookRepo.DecrementStock(txCtx, line.BookID, line.Quantity)
			if err == nil {
				continue
			}
			if errors.Is(err, book.ErrInsufficientStock) {
				if b, ferr := uc.bookRepo.FindByID(txCtx, line.BookID); ferr == nil {
					return sale.NewInsufficientStockError(b.Title)
				}
				return err
			}
			if errors.Is(err, book.ErrBookNotFound) {
				return sale.NewBookNotFoundError(line.BookID)
			}
			return err
		}
		return nil
	})
	timer.ObserveDuration()

	if err != nil {
		metrics.SalesFailedTotal.Inc()
		return nil, err
	}

	metrics.SalesRegisteredTotal.Inc()
	metrics.SaleAmountReais.Observe(payment.ToReais(s.TotalCents))

	uc.publishRegistered(ctx, s)
	if uc.cache != nil {
		uc.cache.InvalidateAll(ctx)
	}

	return &RegisterSaleResponse{
		SaleID:     s.ID,
		TotalCents: s.TotalCents,
		SoldAt:     s.SoldAt.Format(time.RFC3339),
	}, nil
}

// missingBookError probes the cart to name the book whose absence made the
// items insert fail.
func (uc *RegisterSaleUseCase) missingBookError(ctx context.Context, items []CartItem) error {
	for _, line := range items {
		if _, err := uc.bookRepo.FindByID(ctx, line.BookID); errors.Is(err, book.ErrBookNotFound) {
			return sale.NewBookNotFoundError(line.BookID)
		}
	}
	return sale.NewBookNotFoundError(0)
}

// publishRegistered emits the sale.registered event. Best effort only: the
// sale is already committed, so a broker failure is logged and swallowed.
func (uc *RegisterSaleUseCase) publishRegistered(ctx context.Context, s *sale.Sale) {
	if uc.publisher == nil {
		return
	}

	event := mq.SaleRegisteredEvent{
		SaleID:     s.ID,
		TotalCents: s.TotalCents,
		Courtesy:   s.IsCourtesy(),
		ItemCount:  s.UnitCount(),
		SoldAt:     s.SoldAt,
	}
	if s.BuyerName != nil {
		event.BuyerName = *s.BuyerName
	}

	if err := uc.publisher.Publish(ctx, mq.RoutingKeySaleRegistered, event); err != nil {
		log.Printf("sale %d committed but event publication failed: %v", s.ID, err)
	}
}

func validateRequest(req RegisterSaleRequest) error {
	if len(req.Items) == 0 {
		return sale.ErrEmptyCart
	}

	var itemSum int64
	for _, line := range req.Items {
		if line.Quantity <= 0 {
			return sale.ErrInvalidQuantity
		}
		if line.UnitPriceCents < 0 {
			return sale.ErrInvalidAmount
		}
		itemSum += int64(line.Quantity) * line.UnitPriceCents
	}

	if req.SubtotalCents < 0 || req.DiscountCents < 0 || req.TotalCents < 0 {
		return sale.ErrInvalidAmount
	}
	if abs(itemSum-req.SubtotalCents) > centsEpsilon {
		return sale.ErrTotalMismatch
	}
	if abs(req.SubtotalCents-req.DiscountCents-req.TotalCents) > centsEpsilon {
		return sale.ErrTotalMismatch
	}

	// Payment amounts must cover the total, except for legacy terminals
	// that submit methods without amounts (every amount zero).
	var paymentSum int64
	allZero := true
	for _, p := range req.Payments {
		if p.AmountCents < 0 {
			return sale.ErrInvalidAmount
		}
		if p.AmountCents > 0 {
			allZero = false
		}
		paymentSum += p.AmountCents
	}
	if !allZero && abs(paymentSum-req.TotalCents) > centsEpsilon {
		return sale.ErrPaymentsMismatch
	}

	return nil
}

func canonicalize(payments []payment.Payment) []payment.Payment {
	out := make([]payment.Payment, len(payments))
	for i, p := range payments {
		out[i] = payment.Payment{
			Method:      payment.CanonicalMethod(p.Method),
			AmountCents: p.AmountCents,
		}
	}
	return out
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
