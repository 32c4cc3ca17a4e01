package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCanonicalList(t *testing.T) {
	raw := `[{"method":"Pix","amount":30.00},{"method":"Dinheiro","amount":12.50}]`

	got := Normalize(raw)

	require.Len(t, got, 2)
	assert.Equal(t, Payment{Method: "Pix", AmountCents: 3000}, got[0])
	assert.Equal(t, Payment{Method: "Dinheiro", AmountCents: 1250}, got[1])
}

func TestNormalizeIdempotent(t *testing.T) {
	first := Normalize(`Voucher SEDUC R$ 100,00 + Cartão de Débito R$ 32,00`)
	serialized, err := Serialize(first)
	require.NoError(t, err)

	second := Normalize(serialized)
	assert.Equal(t, first, second)
}

func TestNormalizeLegacyKeys(t *testing.T) {
	raw := `[{"forma":"cartao credito","valor":"45,90"},{"form":"PIX","valor":10}]`

	got := Normalize(raw)

	require.Len(t, got, 2)
	assert.Equal(t, Payment{Method: "Cartão de Crédito", AmountCents: 4590}, got[0])
	assert.Equal(t, Payment{Method: "Pix", AmountCents: 1000}, got[1])
}

func TestNormalizeSingleObject(t *testing.T) {
	got := Normalize(`{"method":"dinheiro","amount":25}`)

	require.Len(t, got, 1)
	assert.Equal(t, Payment{Method: "Dinheiro", AmountCents: 2500}, got[0])
}

func TestNormalizeFreeText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []Payment
	}{
		{
			name: "two methods joined by plus",
			raw:  "Voucher SEDUC R$ 100,00 + Cartão de Débito R$ 32,00",
			want: []Payment{
				{Method: "Voucher SEDUC", AmountCents: 10000},
				{Method: "Cartão de Débito", AmountCents: 3200},
			},
		},
		{
			name: "single method without currency marker",
			raw:  "pix 45,90",
			want: []Payment{{Method: "Pix", AmountCents: 4590}},
		},
		{
			name: "label only",
			raw:  "Dinheiro",
			want: []Payment{{Method: "Dinheiro", AmountCents: 0}},
		},
		{
			name: "amount only falls back to the whole token",
			raw:  "R$ 15,00",
			want: []Payment{{Method: "R 15 00", AmountCents: 1500}},
		},
		{
			name: "empty residue falls back to the text before the marker",
			raw:  "30 R$ 40,00",
			want: []Payment{{Method: "30", AmountCents: 4000}},
		},
		{
			name: "last number wins",
			raw:  "2x cartao de credito R$ 80,00",
			want: []Payment{{Method: "X Cartao De Credito", AmountCents: 8000}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func TestNormalizeEmpty(t *testing.T) {
	assert.Empty(t, Normalize(""))
	assert.Empty(t, Normalize("   "))
	assert.Empty(t, Normalize("[]"))
}

func TestNormalizeMalformedJSONFallsBackToText(t *testing.T) {
	// broken JSON degrades to free-text parsing instead of failing
	got := Normalize(`[{"method":"Pix"`)

	require.Len(t, got, 1)
	assert.Equal(t, int64(0), got[0].AmountCents)
}

func TestCanonicalMethod(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"pix", "Pix"},
		{"PIX", "Pix"},
		{"dinheiro", "Dinheiro"},
		{"cartão de crédito", "Cartão de Crédito"},
		{"cartao credito", "Cartão de Crédito"},
		{"CARTAO-DEBITO", "Cartão de Débito"},
		{"voucher", "Voucher SEDUC"},
		{"Voucher SEDUC", "Voucher SEDUC"},
		{"", "NÃO INFORMADO"},
		{"  ??  ", "NÃO INFORMADO"},
		{"boleto bancario", "Boleto Bancario"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CanonicalMethod(tt.in), "input %q", tt.in)
	}
}

func TestParseAmountBR(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"100", 10000},
		{"100,5", 10050},
		{"45,90", 4590},
		{"1.234,56", 123456},
		{"1,234.56", 123456},
		{"1234.56", 123456},
		{"1.234.567", 123456700},
		{"", 0},
		{"abc", 0},
		{"-10", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseAmountBR(tt.in), "input %q", tt.in)
	}
}

func TestCentsConversion(t *testing.T) {
	assert.Equal(t, int64(4590), ToCents(45.90))
	assert.Equal(t, int64(1), ToCents(0.005))
	assert.Equal(t, int64(0), ToCents(0))
	assert.InDelta(t, 45.90, ToReais(4590), 0.0001)
}
