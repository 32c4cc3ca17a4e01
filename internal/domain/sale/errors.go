package sale

import (
	"fmt"

	apperrors "github.com/osantanna/livraria-pos/pkg/errors"
)

// Sale domain errors.
var (
	// ErrSaleNotFound no sale with the given id.
	ErrSaleNotFound = apperrors.New(apperrors.ErrCodeSaleNotFound, "Venda não encontrada")

	// ErrEmptyCart a sale needs at least one item.
	ErrEmptyCart = apperrors.New(apperrors.ErrCodeEmptyCart, "O carrinho está vazio")

	// ErrInvalidQuantity item quantities must be positive.
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "Quantidade deve ser maior que zero")

	// ErrInvalidAmount monetary values must be non-negative.
	ErrInvalidAmount = apperrors.New(apperrors.ErrCodeInvalidParams, "Valor monetário inválido")

	// ErrTotalMismatch total must equal subtotal minus discount.
	ErrTotalMismatch = apperrors.New(apperrors.ErrCodeInvalidParams, "Total não confere com subtotal menos desconto")

	// ErrPaymentsMismatch payment amounts must sum to the total.
	ErrPaymentsMismatch = apperrors.New(apperrors.ErrCodeInvalidParams, "A soma dos pagamentos não confere com o total da venda")
)

// NewInsufficientStockError names the book that could not be decremented,
// matching the message the sale terminal shows the operator.
func NewInsufficientStockError(title string) *apperrors.AppError {
	return apperrors.New(apperrors.ErrCodeInsufficientStock,
		fmt.Sprintf("Estoque insuficiente para o livro: %s", title))
}

// NewBookNotFoundError names the missing book referenced by the cart.
func NewBookNotFoundError(bookID uint) *apperrors.AppError {
	return apperrors.New(apperrors.ErrCodeBookNotFound,
		fmt.Sprintf("Livro não encontrado no catálogo: id=%d", bookID))
}
