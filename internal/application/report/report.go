// Package report computes the management reports from the sales history.
//
// Every report rereads the full history on a cache miss: the normalization
// of legacy payment data has to happen at read time, and sale volume (a few
// thousand rows per event) makes full scans cheap. Results are cached with
// a short TTL and invalidated on every write.
package report

import (
	"context"
	"time"
)

// Cache is the cache-aside port, implemented by redis.QueryCache. Both
// methods are soft: Get returning false and Set failing silently are part
// of the contract.
type Cache interface {
	Get(ctx context.Context, name string, dest interface{}) bool
	Set(ctx context.Context, name string, value interface{})
}

// Cache entry names, one per report endpoint.
const (
	cacheKeyByPayment = "por-pagamento"
	cacheKeyTopBooks  = "top-livros"
	cacheKeyTotals    = "totais-gerais"
	cacheKeyDaily     = "por-dia-vendas"
	cacheKeyVoucher   = "voucher-seduc"
)

// localDate renders a sale timestamp as the calendar day in the store's
// timezone. Grouping in UTC would split an evening of sales across two
// days.
func localDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}
