package sale

import (
	"context"

	"github.com/osantanna/livraria-pos/internal/domain/sale"
)

// ListSalesUseCase returns the sales history, newest first, with items and
// book titles resolved. Payment normalization happens at the HTTP boundary
// so the response always shows the canonical breakdown regardless of how
// each sale was persisted.
type ListSalesUseCase struct {
	saleRepo sale.Repository
}

func NewListSalesUseCase(saleRepo sale.Repository) *ListSalesUseCase {
	return &ListSalesUseCase{saleRepo: saleRepo}
}

func (uc *ListSalesUseCase) Execute(ctx context.Context) ([]*sale.Sale, error) {
	return uc.saleRepo.ListWithItems(ctx)
}

// GetSaleUseCase loads one sale with its items.
type GetSaleUseCase struct {
	saleRepo sale.Repository
}

func NewGetSaleUseCase(saleRepo sale.Repository) *GetSaleUseCase {
	return &GetSaleUseCase{saleRepo: saleRepo}
}

func (uc *GetSaleUseCase) Execute(ctx context.Context, id uint) (*sale.Sale, error) {
	return uc.saleRepo.FindByID(ctx, id)
}
