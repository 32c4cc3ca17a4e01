package handler

import (
	"github.com/gin-gonic/gin"

	appreport "github.com/osantanna/livraria-pos/internal/application/report"
	"github.com/osantanna/livraria-pos/pkg/response"
)

// ReportHandler serves the management reports.
type ReportHandler struct {
	byPayment *appreport.PaymentReportUseCase
	topBooks  *appreport.TopBooksUseCase
	totals    *appreport.TotalsUseCase
	daily     *appreport.DailySalesUseCase
	voucher   *appreport.VoucherSeducUseCase
}

func NewReportHandler(
	byPayment *appreport.PaymentReportUseCase,
	topBooks *appreport.TopBooksUseCase,
	totals *appreport.TotalsUseCase,
	daily *appreport.DailySalesUseCase,
	voucher *appreport.VoucherSeducUseCase,
) *ReportHandler {
	return &ReportHandler{
		byPayment: byPayment,
		topBooks:  topBooks,
		totals:    totals,
		daily:     daily,
		voucher:   voucher,
	}
}

// ByPayment relatório de vendas por forma de pagamento
// @Summary      Vendas por forma de pagamento
// @Tags         relatorios
// @Produce      json
// @Success      200 {object} response.Response{data=[]report.PaymentRow}
// @Router       /api/v1/relatorios/por-pagamento [get]
func (h *ReportHandler) ByPayment(c *gin.Context) {
	rows, err := h.byPayment.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"rows": rows})
}

// TopBooks relatório de livros mais vendidos
// @Summary      Livros mais vendidos
// @Tags         relatorios
// @Produce      json
// @Success      200 {object} response.Response{data=[]report.TopBookRow}
// @Router       /api/v1/relatorios/top-livros [get]
func (h *ReportHandler) TopBooks(c *gin.Context) {
	rows, err := h.topBooks.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, rows)
}

// Totals relatório de totais gerais (com e sem cortesia)
// @Summary      Totais gerais
// @Tags         relatorios
// @Produce      json
// @Success      200 {object} response.Response{data=report.TotalsResponse}
// @Router       /api/v1/relatorios/totais-gerais [get]
func (h *ReportHandler) Totals(c *gin.Context) {
	result, err := h.totals.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Daily relatório de vendas por dia
// @Summary      Vendas por dia
// @Tags         relatorios
// @Produce      json
// @Success      200 {object} response.Response{data=[]report.DailyRow}
// @Router       /api/v1/relatorios/por-dia-vendas [get]
func (h *ReportHandler) Daily(c *gin.Context) {
	rows, err := h.daily.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"rows": rows})
}

// VoucherSeduc relatório de reembolso do voucher SEDUC
// @Summary      Vendas com voucher SEDUC
// @Tags         relatorios
// @Produce      json
// @Success      200 {object} response.Response{data=report.VoucherReport}
// @Router       /api/v1/relatorios/voucher-seduc [get]
func (h *ReportHandler) VoucherSeduc(c *gin.Context) {
	result, err := h.voucher.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
