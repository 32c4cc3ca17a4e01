package payment

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MethodUnknown is the canonical label for entries whose method could not
// be determined. It appears verbatim in reports.
const MethodUnknown = "NÃO INFORMADO"

// Canonical method labels as they appear in reports and in persisted
// canonical payment lists.
const (
	MethodPix          = "Pix"
	MethodCash         = "Dinheiro"
	MethodCreditCard   = "Cartão de Crédito"
	MethodDebitCard    = "Cartão de Débito"
	MethodVoucherSeduc = "Voucher SEDUC"
)

// synonyms maps the accent-stripped, lowercased cleaned form of a method
// name to its canonical label. Keys must already be in cleaned form.
var synonyms = map[string]string{
	"pix":               MethodPix,
	"dinheiro":          MethodCash,
	"cartao credito":    MethodCreditCard,
	"cartao de credito": MethodCreditCard,
	"credito":           MethodCreditCard,
	"cartao debito":     MethodDebitCard,
	"cartao de debito":  MethodDebitCard,
	"debito":            MethodDebitCard,
	"voucher":           MethodVoucherSeduc,
	"voucher seduc":     MethodVoucherSeduc,
	"vale seduc":        MethodVoucherSeduc,
	"cortesia":          "Cortesia",
	"nao informado":     MethodUnknown,
	"transferencia":     "Transferência",
	"transferencia pix": MethodPix,
}

// stripAccents removes combining diacritical marks: "Cartão" becomes
// "Cartao". The NFKD decomposition also folds compatibility forms.
var stripAccents = transform.Chain(
	norm.NFKD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

var titleCaser = cases.Title(language.BrazilianPortuguese)

// CanonicalMethod maps a free-form payment method name onto its canonical
// label. Unknown names are title-cased rather than rejected so that a new
// method shows up in reports under a stable, readable label.
func CanonicalMethod(name string) string {
	cleaned := cleanMethodName(name)
	if cleaned == "" {
		return MethodUnknown
	}
	if canonical, ok := synonyms[cleaned]; ok {
		return canonical
	}
	return titleCaser.String(cleaned)
}

// cleanMethodName lowers, strips accents and collapses everything that is
// not a letter or digit into single spaces.
func cleanMethodName(name string) string {
	stripped, _, err := transform.String(stripAccents, name)
	if err != nil {
		stripped = name
	}
	stripped = strings.ToLower(stripped)

	var b strings.Builder
	b.Grow(len(stripped))
	lastSpace := true
	for _, r := range stripped {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastSpace = false
		} else if !lastSpace {
			b.WriteByte(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}
