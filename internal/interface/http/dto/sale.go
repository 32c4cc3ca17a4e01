package dto

import (
	"time"

	"github.com/osantanna/livraria-pos/internal/domain/payment"
	"github.com/osantanna/livraria-pos/internal/domain/sale"
)

// SaleItemRequest is one cart line.
type SaleItemRequest struct {
	BookID   uint    `json:"livro_id" binding:"required" example:"1"`
	Quantity int     `json:"quantidade" binding:"required,min=1" example:"2"`
	Price    float64 `json:"preco_unitario" binding:"min=0" example:"45.90"` // reais
}

// PaymentRequest is one payment method with its amount in reais.
type PaymentRequest struct {
	Method string  `json:"forma" binding:"required,max=100" example:"Pix"`
	Amount float64 `json:"valor" binding:"min=0" example:"91.80"`
}

// RegisterSaleRequest submits a cart. LegacyMethod is the old single-method
// field still sent by older clients; it becomes one payment entry with
// amount 0 when the structured list is absent.
type RegisterSaleRequest struct {
	BuyerName    *string           `json:"comprador" binding:"omitempty,max=255" example:"Maria Silva"`
	Items        []SaleItemRequest `json:"itens" binding:"omitempty,dive"`
	Subtotal     float64           `json:"subtotal" binding:"min=0" example:"91.80"`
	Discount     float64           `json:"desconto" binding:"min=0" example:"0"`
	Total        float64           `json:"total" binding:"min=0" example:"91.80"`
	Payments     []PaymentRequest  `json:"pagamentos" binding:"dive"`
	LegacyMethod string            `json:"formaPagamento" binding:"omitempty,max=100" example:"Pix"`
}

// RegisterSaleResponse identifies the committed sale.
type RegisterSaleResponse struct {
	SaleID uint    `json:"venda_id" example:"42"`
	Total  float64 `json:"total" example:"91.80"`
	SoldAt string  `json:"data_venda" example:"2026-03-14T10:30:00-03:00"`
}

// SaleItemResponse is one line of a persisted sale.
type SaleItemResponse struct {
	BookID   uint    `json:"livro_id" example:"1"`
	Title    string  `json:"titulo" example:"Dom Casmurro"`
	Quantity int     `json:"quantidade" example:"2"`
	Price    float64 `json:"preco_unitario" example:"45.90"`
}

// SalePaymentResponse is one canonical payment entry.
type SalePaymentResponse struct {
	Method string  `json:"forma" example:"Pix"`
	Amount float64 `json:"valor" example:"91.80"`
}

// SaleResponse is a persisted sale with its items and the normalized
// payment breakdown.
type SaleResponse struct {
	ID        uint                  `json:"id" example:"42"`
	BuyerName *string               `json:"comprador,omitempty" example:"Maria Silva"`
	Subtotal  float64               `json:"subtotal" example:"91.80"`
	Discount  float64               `json:"desconto" example:"0"`
	Total     float64               `json:"total" example:"91.80"`
	Courtesy  bool                  `json:"cortesia" example:"false"`
	Payments  []SalePaymentResponse `json:"pagamentos"`
	Items     []SaleItemResponse    `json:"itens"`
	SoldAt    string                `json:"data_venda" example:"2026-03-14T10:30:00-03:00"`
}

// ToSaleResponse maps a domain sale onto the wire shape, normalizing the
// persisted payment representation into the canonical breakdown.
func ToSaleResponse(s *sale.Sale) *SaleResponse {
	items := make([]SaleItemResponse, len(s.Items))
	for i, item := range s.Items {
		items[i] = SaleItemResponse{
			BookID:   item.BookID,
			Title:    item.BookTitle,
			Quantity: item.Quantity,
			Price:    payment.ToReais(item.UnitPriceCents),
		}
	}

	normalized := payment.Normalize(s.RawPayments)
	payments := make([]SalePaymentResponse, len(normalized))
	for i, p := range normalized {
		payments[i] = SalePaymentResponse{
			Method: p.Method,
			Amount: payment.ToReais(p.AmountCents),
		}
	}

	return &SaleResponse{
		ID:        s.ID,
		BuyerName: s.BuyerName,
		Subtotal:  payment.ToReais(s.SubtotalCents),
		Discount:  payment.ToReais(s.DiscountCents),
		Total:     payment.ToReais(s.TotalCents),
		Courtesy:  s.IsCourtesy(),
		Payments:  payments,
		Items:     items,
		SoldAt:    formatTime(s.SoldAt),
	}
}

// ToSaleResponses maps the sales history.
func ToSaleResponses(sales []*sale.Sale) []*SaleResponse {
	out := make([]*SaleResponse, len(sales))
	for i, s := range sales {
		out[i] = ToSaleResponse(s)
	}
	return out
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}
