package sale

import (
	"context"
	"time"
)

// Summary is the slim per-sale projection the report aggregators consume:
// enough to attribute a sale to a calendar day, normalize its payments and
// count its units without loading full item rows.
type Summary struct {
	ID          uint
	BuyerName   *string
	TotalCents  int64
	RawPayments string
	SoldAt      time.Time
	UnitCount   int
}

// BookSales is one row of the top-sellers aggregation.
type BookSales struct {
	BookID    uint
	Title     string
	TotalSold int64
}

// CourtesyRow is the courtesy quantity handed out per book.
type CourtesyRow struct {
	BookID   uint
	Title    string
	Quantity int64
}

// Repository is the sales persistence port.
type Repository interface {
	// Create inserts the sale and its items as one aggregate. Must be
	// called inside a transaction (the context carries the transaction
	// handle); SoldAt is assigned by the database.
	Create(ctx context.Context, s *Sale) error

	// FindByID returns the sale with items or ErrSaleNotFound.
	FindByID(ctx context.Context, id uint) (*Sale, error)

	// ListWithItems returns all sales, newest first, items preloaded with
	// their book titles.
	ListWithItems(ctx context.Context) ([]*Sale, error)

	// ListSummaries returns the report projection of every sale.
	ListSummaries(ctx context.Context) ([]Summary, error)

	// TopBooks aggregates units sold per book, descending, up to limit.
	TopBooks(ctx context.Context, limit int) ([]BookSales, error)

	// CourtesyByBook aggregates units given away in courtesy (zero-total)
	// sales per book, descending with title tiebreak, up to limit.
	CourtesyByBook(ctx context.Context, limit int) ([]CourtesyRow, error)

	// CountItemsByBook counts sale items referencing a book; used to refuse
	// catalog deletions that would orphan sale history.
	CountItemsByBook(ctx context.Context, bookID uint) (int64, error)
}
