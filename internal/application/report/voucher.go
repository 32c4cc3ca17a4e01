package report

import (
	"context"
	"sort"
	"time"

	"github.com/osantanna/livraria-pos/internal/domain/payment"
	"github.com/osantanna/livraria-pos/internal/domain/sale"
)

// voucherCapCents is the reimbursement ceiling per sale agreed with the
// education department: R$ 100,00 regardless of the voucher amount charged.
const voucherCapCents = 100_00

// VoucherSeducUseCase lists the sales paid (fully or partially) with the
// SEDUC voucher and computes the reimbursable amount per sale and per day.
type VoucherSeducUseCase struct {
	saleRepo sale.Repository
	cache    Cache
	loc      *time.Location
}

func NewVoucherSeducUseCase(saleRepo sale.Repository, cache Cache, loc *time.Location) *VoucherSeducUseCase {
	return &VoucherSeducUseCase{saleRepo: saleRepo, cache: cache, loc: loc}
}

// VoucherRow is one voucher-paid sale.
type VoucherRow struct {
	SaleID            uint    `json:"venda_id"`
	Date              string  `json:"date"`
	BuyerName         string  `json:"comprador"`
	SaleTotalReais    float64 `json:"total_venda"`
	VoucherReais      float64 `json:"valor_voucher"`
	ReimbursableReais float64 `json:"valor_reembolsavel"`
}

// VoucherDay aggregates the voucher sales of one calendar date.
type VoucherDay struct {
	Date            string  `json:"date"`
	SaleCount       int     `json:"num_vendas"`
	DayTotalReais   float64 `json:"total_dia_geral"`
	DayVoucherReais float64 `json:"total_dia_voucher"`
}

// VoucherReport is the full SEDUC reimbursement report. TotalReais is the
// gross total of the voucher sales (the whole sale, not just the voucher
// share); ReimbursableReais applies the per-sale cap.
type VoucherReport struct {
	Rows              []VoucherRow `json:"rows"`
	Days              []VoucherDay `json:"dias"`
	SaleCount         int          `json:"num_vendas"`
	TotalReais        float64      `json:"total_bruto"`
	ReimbursableReais float64      `json:"total_reembolsavel"`
}

func (uc *VoucherSeducUseCase) Execute(ctx context.Context) (*VoucherReport, error) {
	var cached VoucherReport
	if uc.cache != nil && uc.cache.Get(ctx, cacheKeyVoucher, &cached) {
		return &cached, nil
	}

	summaries, err := uc.saleRepo.ListSummaries(ctx)
	if err != nil {
		return nil, err
	}

	report := &VoucherReport{Rows: []VoucherRow{}, Days: []VoucherDay{}}
	var totalCents, reimbursableCents int64
	dayTotals := map[string]*VoucherDay{}

	for _, s := range summaries {
		var voucherCents int64
		found := false
		for _, p := range payment.Normalize(s.RawPayments) {
			if p.Method == payment.MethodVoucherSeduc {
				voucherCents += p.AmountCents
				found = true
			}
		}
		if !found {
			continue
		}
		// legacy plain-string records carry no amount; the whole sale was
		// charged to the voucher
		if voucherCents == 0 {
			voucherCents = s.TotalCents
		}
		if voucherCents <= 0 {
			continue
		}

		capped := voucherCents
		if capped > voucherCapCents {
			capped = voucherCapCents
		}

		buyer := ""
		if s.BuyerName != nil {
			buyer = *s.BuyerName
		}
		date := localDate(s.SoldAt, uc.loc)

		report.Rows = append(report.Rows, VoucherRow{
			SaleID:            s.ID,
			Date:              date,
			BuyerName:         buyer,
			SaleTotalReais:    payment.ToReais(s.TotalCents),
			VoucherReais:      payment.ToReais(voucherCents),
			ReimbursableReais: payment.ToReais(capped),
		})
		totalCents += s.TotalCents
		reimbursableCents += capped

		day, ok := dayTotals[date]
		if !ok {
			day = &VoucherDay{Date: date}
			dayTotals[date] = day
		}
		day.SaleCount++
		day.DayTotalReais += payment.ToReais(s.TotalCents)
		day.DayVoucherReais += payment.ToReais(capped)
	}

	for _, day := range dayTotals {
		report.Days = append(report.Days, *day)
	}
	sort.Slice(report.Days, func(i, j int) bool {
		return report.Days[i].Date > report.Days[j].Date
	})

	report.SaleCount = len(report.Rows)
	report.TotalReais = payment.ToReais(totalCents)
	report.ReimbursableReais = payment.ToReais(reimbursableCents)

	if uc.cache != nil {
		uc.cache.Set(ctx, cacheKeyVoucher, report)
	}
	return report, nil
}
