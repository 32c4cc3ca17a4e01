package mysql

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/osantanna/livraria-pos/internal/domain/book"
	apperrors "github.com/osantanna/livraria-pos/pkg/errors"
)

// bookRepository implements book.Repository on MySQL. It converts between
// GORM models and domain entities and translates database errors (duplicate
// keys, FK violations) into business errors.
type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := &BookModel{
		Title:   b.Title,
		Author:  b.Author,
		Price:   b.PriceCents,
		Stock:   b.Stock,
		Barcode: b.Barcode,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return duplicateBookError(err)
		}
		return apperrors.Wrap(err, "inserting book")
	}

	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "querying book")
	}
	return toBookEntity(&model), nil
}

func (r *bookRepository) FindByTitle(ctx context.Context, title string) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).Where("title = ?", title).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "querying book by title")
	}
	return toBookEntity(&model), nil
}

func (r *bookRepository) FindByBarcode(ctx context.Context, barcode string) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).Where("barcode = ?", barcode).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "querying book by barcode")
	}
	return toBookEntity(&model), nil
}

func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	model := &BookModel{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Price:     b.PriceCents,
		Stock:     b.Stock,
		Barcode:   b.Barcode,
		CreatedAt: b.CreatedAt,
	}

	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		if isDuplicateError(err) {
			return duplicateBookError(err)
		}
		return apperrors.Wrap(err, "updating book")
	}

	b.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&BookModel{}, id)
	if result.Error != nil {
		if isForeignKeyError(result.Error) {
			return book.ErrBookHasSales
		}
		return apperrors.Wrap(result.Error, "deleting book")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, error) {
	query := getDB(ctx, r.db).Model(&BookModel{})

	if params.Keyword != "" {
		keyword := "%" + params.Keyword + "%"
		query = query.Where("title LIKE ? OR author LIKE ?", keyword, keyword)
	}

	var models []BookModel
	if err := query.Order("title ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "listing books")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, nil
}

// DecrementStock conditionally subtracts stock in one atomic statement:
//
//	UPDATE books SET stock = stock - ? WHERE id = ? AND stock >= ?
//
// When no row matches, a follow-up read inside the same transaction
// distinguishes a missing book from insufficient stock.
func (r *bookRepository) DecrementStock(ctx context.Context, id uint, quantity int) error {
	db := getDB(ctx, r.db)

	result := db.Model(&BookModel{}).
		Where("id = ?", id).
		Where("stock >= ?", quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "decrementing stock")
	}

	if result.RowsAffected == 0 {
		var model BookModel
		if err := db.First(&model, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return book.ErrBookNotFound
			}
			return apperrors.Wrap(err, "querying book")
		}
		return book.ErrInsufficientStock
	}

	return nil
}

// duplicateBookError picks the business error matching the violated unique
// index.
func duplicateBookError(err error) error {
	if strings.Contains(err.Error(), "barcode") {
		return book.ErrBarcodeDuplicate
	}
	return book.ErrTitleDuplicate
}

func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:         model.ID,
		Title:      model.Title,
		Author:     model.Author,
		PriceCents: model.Price,
		Stock:      model.Stock,
		Barcode:    model.Barcode,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}
