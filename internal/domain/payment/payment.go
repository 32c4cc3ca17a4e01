// Package payment resolves the heterogeneous persisted payment
// representations into one canonical shape.
//
// The sales table accumulated three formats over time: the canonical JSON
// list written by this backend, a legacy Portuguese-keyed JSON variant
// ("forma"/"valor"), and oldest of all a free-text label such as
// "Voucher SEDUC R$ 100,00 + Cartão de Débito R$ 32,00". All three must
// remain readable indefinitely; everything downstream of Normalize sees
// only []Payment.
package payment

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Payment is one canonical {method, amount} pair. Amounts are int64
// centavos internally; the JSON form uses reais with two decimals, which
// is what gets persisted alongside each sale.
type Payment struct {
	Method      string
	AmountCents int64
}

// paymentJSON is the canonical serialized shape.
type paymentJSON struct {
	Method string  `json:"method"`
	Amount float64 `json:"amount"`
}

// MarshalJSON writes the canonical {"method": ..., "amount": 30.00} form.
func (p Payment) MarshalJSON() ([]byte, error) {
	return json.Marshal(paymentJSON{
		Method: p.Method,
		Amount: ToReais(p.AmountCents),
	})
}

// UnmarshalJSON accepts both the canonical keys and the legacy Portuguese
// keys ("forma", the misspelled "form", "valor"); amounts may be numbers,
// numeric strings or null.
func (p *Payment) UnmarshalJSON(data []byte) error {
	var entry map[string]json.RawMessage
	if err := json.Unmarshal(data, &entry); err != nil {
		return err
	}

	p.Method = firstString(entry, "method", "forma", "form", "metodo")
	p.AmountCents = firstAmount(entry, "amount", "valor")
	return nil
}

// Serialize renders the canonical JSON list persisted with each sale. An
// empty breakdown serializes as "[]".
func Serialize(payments []Payment) (string, error) {
	if payments == nil {
		payments = []Payment{}
	}
	data, err := json.Marshal(payments)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Normalize parses any persisted payment representation into the canonical
// ordered list. It never fails: unparseable entries degrade to amount 0 and
// method "NÃO INFORMADO" instead of aborting a report. Duplicate canonical
// methods are preserved (merging happens at aggregation time).
//
// Normalize is idempotent over its own output: normalizing a serialized
// canonical list yields the same list.
func Normalize(raw string) []Payment {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []Payment{}
	}

	if parsed, ok := tryJSON(raw); ok {
		out := make([]Payment, len(parsed))
		for i, p := range parsed {
			out[i] = Payment{
				Method:      CanonicalMethod(p.Method),
				AmountCents: nonNegative(p.AmountCents),
			}
		}
		return out
	}

	// legacy free text: one token per payment, joined by '+'
	tokens := strings.Split(raw, "+")
	out := make([]Payment, 0, len(tokens))
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		out = append(out, parseToken(token))
	}
	return out
}

// tryJSON attempts to read raw as a JSON list or single object of payment
// entries.
func tryJSON(raw string) ([]Payment, bool) {
	switch raw[0] {
	case '[':
		var list []Payment
		if err := json.Unmarshal([]byte(raw), &list); err != nil {
			return nil, false
		}
		return list, true
	case '{':
		var single Payment
		if err := json.Unmarshal([]byte(raw), &single); err != nil {
			return nil, false
		}
		return []Payment{single}, true
	default:
		return nil, false
	}
}

var (
	// numberPattern matches a numeric substring in either Brazilian
	// (1.234,56) or plain (1234.56) notation.
	numberPattern = regexp.MustCompile(`[0-9]+(?:[.,][0-9]+)*`)

	// currencyPattern matches a currency marker with its trailing figure.
	currencyPattern = regexp.MustCompile(`(?i)R\$\s*[0-9.,]*`)

	signPattern = regexp.MustCompile(`[+\-]`)
)

// parseToken extracts one {method, amount} pair from a free-text token such
// as "Voucher SEDUC R$ 100,00". The last numeric substring is the amount;
// the residue with currency markers and digits stripped is the method name.
// When nothing remains, the text before the currency marker is used, and
// failing that the whole token.
func parseToken(token string) Payment {
	var amountCents int64
	if numbers := numberPattern.FindAllString(token, -1); len(numbers) > 0 {
		amountCents = ParseAmountBR(numbers[len(numbers)-1])
	}

	name := currencyPattern.ReplaceAllString(token, "")
	name = numberPattern.ReplaceAllString(name, "")
	name = signPattern.ReplaceAllString(name, "")
	name = strings.TrimSpace(name)

	if name == "" {
		name = strings.TrimSpace(strings.SplitN(token, "R$", 2)[0])
		if name == "" {
			name = token
		}
	}

	return Payment{
		Method:      CanonicalMethod(name),
		AmountCents: amountCents,
	}
}

func firstString(entry map[string]json.RawMessage, keys ...string) string {
	for _, key := range keys {
		rawValue, ok := entry[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(rawValue, &s); err == nil {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func firstAmount(entry map[string]json.RawMessage, keys ...string) int64 {
	for _, key := range keys {
		rawValue, ok := entry[key]
		if !ok {
			continue
		}

		var f float64
		if err := json.Unmarshal(rawValue, &f); err == nil {
			return nonNegative(ToCents(f))
		}

		var s string
		if err := json.Unmarshal(rawValue, &s); err == nil {
			return ParseAmountBR(s)
		}
	}
	return 0
}

func nonNegative(cents int64) int64 {
	if cents < 0 {
		return 0
	}
	return cents
}
