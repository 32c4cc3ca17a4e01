package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appbook "github.com/osantanna/livraria-pos/internal/application/book"
	"github.com/osantanna/livraria-pos/internal/domain/payment"
	"github.com/osantanna/livraria-pos/internal/interface/http/dto"
	apperrors "github.com/osantanna/livraria-pos/pkg/errors"
	"github.com/osantanna/livraria-pos/pkg/response"
)

// BookHandler serves the catalog endpoints.
type BookHandler struct {
	createBook *appbook.CreateBookUseCase
	updateBook *appbook.UpdateBookUseCase
	deleteBook *appbook.DeleteBookUseCase
	queryBook  *appbook.QueryBookUseCase
}

func NewBookHandler(
	createBook *appbook.CreateBookUseCase,
	updateBook *appbook.UpdateBookUseCase,
	deleteBook *appbook.DeleteBookUseCase,
	queryBook *appbook.QueryBookUseCase,
) *BookHandler {
	return &BookHandler{
		createBook: createBook,
		updateBook: updateBook,
		deleteBook: deleteBook,
		queryBook:  queryBook,
	}
}

// CreateBook adiciona um livro ao catálogo
// @Summary      Cadastrar livro
// @Tags         livros
// @Accept       json
// @Produce      json
// @Param        request body dto.BookRequest true "Dados do livro"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      200 {object} response.Response "Título duplicado"
// @Router       /api/v1/livros [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "Parâmetros inválidos: "+err.Error())
		return
	}

	result, err := h.createBook.Execute(c.Request.Context(), appbook.CreateBookRequest{
		Title:      req.Title,
		Author:     req.Author,
		PriceCents: payment.ToCents(req.Price),
		Stock:      req.Stock,
		Barcode:    req.Barcode,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToBookResponse(result))
}

// UpdateBook edita um livro do catálogo
// @Summary      Editar livro
// @Tags         livros
// @Accept       json
// @Produce      json
// @Param        id path int true "ID do livro"
// @Param        request body dto.BookRequest true "Dados do livro"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Router       /api/v1/livros/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "Parâmetros inválidos: "+err.Error())
		return
	}

	result, err := h.updateBook.Execute(c.Request.Context(), appbook.UpdateBookRequest{
		ID:         id,
		Title:      req.Title,
		Author:     req.Author,
		PriceCents: payment.ToCents(req.Price),
		Stock:      req.Stock,
		Barcode:    req.Barcode,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToBookResponse(result))
}

// DeleteBook remove um livro sem histórico de vendas
// @Summary      Deletar livro
// @Tags         livros
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "ID do livro"
// @Success      200 {object} response.Response
// @Failure      200 {object} response.Response "Livro possui vendas registradas"
// @Router       /api/v1/livros/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.deleteBook.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// GetBook busca um livro por ID
// @Summary      Buscar livro
// @Tags         livros
// @Produce      json
// @Param        id path int true "ID do livro"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Router       /api/v1/livros/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.queryBook.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToBookResponse(result))
}

// GetBookByBarcode busca um livro pelo código de barras (leitor do caixa)
// @Summary      Buscar livro por código de barras
// @Tags         livros
// @Produce      json
// @Param        codigo path string true "Código de barras"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Router       /api/v1/livros/codigo/{codigo} [get]
func (h *BookHandler) GetBookByBarcode(c *gin.Context) {
	result, err := h.queryBook.GetByBarcode(c.Request.Context(), c.Param("codigo"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToBookResponse(result))
}

// ListBooks lista o catálogo
// @Summary      Listar livros
// @Tags         livros
// @Produce      json
// @Param        busca query string false "Filtro por título ou autor"
// @Success      200 {object} response.Response{data=[]dto.BookResponse}
// @Router       /api/v1/livros [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var req dto.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "Parâmetros inválidos: "+err.Error())
		return
	}

	books, err := h.queryBook.List(c.Request.Context(), req.Keyword)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToBookResponses(books))
}

// parseID reads the numeric :id path parameter, writing the error response
// itself on failure.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "ID inválido")
		return 0, false
	}
	return uint(id), true
}
