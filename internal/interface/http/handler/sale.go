package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	appsale "github.com/osantanna/livraria-pos/internal/application/sale"
	"github.com/osantanna/livraria-pos/internal/domain/payment"
	"github.com/osantanna/livraria-pos/internal/interface/http/dto"
	apperrors "github.com/osantanna/livraria-pos/pkg/errors"
	"github.com/osantanna/livraria-pos/pkg/response"
)

// SaleHandler serves sale registration and the sales history.
type SaleHandler struct {
	registerSale *appsale.RegisterSaleUseCase
	listSales    *appsale.ListSalesUseCase
	getSale      *appsale.GetSaleUseCase
}

func NewSaleHandler(
	registerSale *appsale.RegisterSaleUseCase,
	listSales *appsale.ListSalesUseCase,
	getSale *appsale.GetSaleUseCase,
) *SaleHandler {
	return &SaleHandler{
		registerSale: registerSale,
		listSales:    listSales,
		getSale:      getSale,
	}
}

// RegisterSale registra uma venda com baixa de estoque atômica
// @Summary      Registrar venda
// @Description  Persiste a venda, os itens e a baixa condicional de estoque em uma única transação
// @Tags         vendas
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterSaleRequest true "Carrinho"
// @Success      200 {object} response.Response{data=dto.RegisterSaleResponse}
// @Failure      200 {object} response.Response "Estoque insuficiente"
// @Router       /api/v1/vendas [post]
func (h *SaleHandler) RegisterSale(c *gin.Context) {
	var req dto.RegisterSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "Parâmetros inválidos: "+err.Error())
		return
	}

	items := make([]appsale.CartItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = appsale.CartItem{
			BookID:         item.BookID,
			Quantity:       item.Quantity,
			UnitPriceCents: payment.ToCents(item.Price),
		}
	}

	payments := make([]payment.Payment, len(req.Payments))
	for i, p := range req.Payments {
		payments[i] = payment.Payment{
			Method:      p.Method,
			AmountCents: payment.ToCents(p.Amount),
		}
	}
	if len(payments) == 0 {
		if legacy := strings.TrimSpace(req.LegacyMethod); legacy != "" {
			payments = []payment.Payment{{Method: legacy}}
		}
	}

	result, err := h.registerSale.Execute(c.Request.Context(), appsale.RegisterSaleRequest{
		BuyerName:     req.BuyerName,
		Items:         items,
		SubtotalCents: payment.ToCents(req.Subtotal),
		DiscountCents: payment.ToCents(req.Discount),
		TotalCents:    payment.ToCents(req.Total),
		Payments:      payments,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.RegisterSaleResponse{
		SaleID: result.SaleID,
		Total:  payment.ToReais(result.TotalCents),
		SoldAt: result.SoldAt,
	})
}

// ListSales lista o histórico de vendas
// @Summary      Listar vendas
// @Tags         vendas
// @Produce      json
// @Success      200 {object} response.Response{data=[]dto.SaleResponse}
// @Router       /api/v1/vendas [get]
func (h *SaleHandler) ListSales(c *gin.Context) {
	sales, err := h.listSales.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToSaleResponses(sales))
}

// GetSale busca uma venda por ID
// @Summary      Buscar venda
// @Tags         vendas
// @Produce      json
// @Param        id path int true "ID da venda"
// @Success      200 {object} response.Response{data=dto.SaleResponse}
// @Router       /api/v1/vendas/{id} [get]
func (h *SaleHandler) GetSale(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	s, err := h.getSale.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToSaleResponse(s))
}
