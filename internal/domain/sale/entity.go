package sale

import (
	"time"
)

// Sale is the sales aggregate root. A sale and its items are created
// together in one transaction and are immutable afterwards: there is no
// update or delete path.
//
// RawPayments holds the persisted payment breakdown exactly as stored. New
// rows carry the canonical serialized JSON list; legacy rows may hold a
// free-text label or Portuguese-keyed JSON. Both stay readable forever via
// the payment normalization engine, no migration assumed.
//
// A sale with TotalCents == 0 is a valid courtesy sale.
type Sale struct {
	ID            uint
	BuyerName     *string
	SubtotalCents int64
	DiscountCents int64
	TotalCents    int64
	RawPayments   string
	SoldAt        time.Time
	Items         []Item
}

// Item is one line of a sale. UnitPriceCents is the price snapshot captured
// at sale time, so later catalog price edits never change historical
// revenue.
type Item struct {
	ID             uint
	SaleID         uint
	BookID         uint
	BookTitle      string // filled on reads via join, not persisted here
	Quantity       int
	UnitPriceCents int64
}

// NewSale assembles the aggregate prior to persistence. SoldAt is assigned
// by the database on insert.
func NewSale(buyerName *string, subtotalCents, discountCents, totalCents int64, rawPayments string, items []Item) *Sale {
	return &Sale{
		BuyerName:     buyerName,
		SubtotalCents: subtotalCents,
		DiscountCents: discountCents,
		TotalCents:    totalCents,
		RawPayments:   rawPayments,
		Items:         items,
	}
}

// IsCourtesy reports whether this is a zero-total courtesy sale.
func (s *Sale) IsCourtesy() bool {
	return s.TotalCents == 0
}

// UnitCount is the total number of units across all items.
func (s *Sale) UnitCount() int {
	count := 0
	for _, item := range s.Items {
		count += item.Quantity
	}
	return count
}
