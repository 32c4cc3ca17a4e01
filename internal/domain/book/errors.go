package book

import (
	apperrors "github.com/osantanna/livraria-pos/pkg/errors"
)

// Catalog domain errors.
var (
	// ErrBookNotFound no catalog entry with the given id/barcode.
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "Livro não encontrado")

	// ErrTitleRequired title is the business key and cannot be empty.
	ErrTitleRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "Título é obrigatório")

	// ErrTitleDuplicate another book already has this title.
	ErrTitleDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "Já existe um livro com este título")

	// ErrBarcodeDuplicate another book already has this barcode.
	ErrBarcodeDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "Já existe um livro com este código de barras")

	// ErrInvalidPrice price must be non-negative.
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "Preço não pode ser negativo")

	// ErrInvalidStock stock must be non-negative.
	ErrInvalidStock = apperrors.New(apperrors.ErrCodeInvalidParams, "Estoque não pode ser negativo")

	// ErrInvalidQuantity quantities must be positive.
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "Quantidade deve ser maior que zero")

	// ErrInsufficientStock the conditional decrement matched no row.
	ErrInsufficientStock = apperrors.New(apperrors.ErrCodeInsufficientStock, "Estoque insuficiente")

	// ErrBookHasSales deletion refused while sale items reference the book.
	ErrBookHasSales = apperrors.New(apperrors.ErrCodeConflict, "Não é possível deletar este livro pois ele já possui vendas registradas.")
)
