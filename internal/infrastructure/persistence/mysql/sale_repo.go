package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/osantanna/livraria-pos/internal/domain/book"
	"github.com/osantanna/livraria-pos/internal/domain/sale"
	apperrors "github.com/osantanna/livraria-pos/pkg/errors"
)

// saleRepository implements sale.Repository on MySQL. Sale and items are
// one aggregate: Create persists both through the GORM association, reads
// preload items with their book titles.
type saleRepository struct {
	db *gorm.DB
}

func NewSaleRepository(db *gorm.DB) sale.Repository {
	return &saleRepository{db: db}
}

func (r *saleRepository) Create(ctx context.Context, s *sale.Sale) error {
	model := &SaleModel{
		BuyerName:   s.BuyerName,
		Subtotal:    s.SubtotalCents,
		Discount:    s.DiscountCents,
		Total:       s.TotalCents,
		RawPayments: s.RawPayments,
		Items:       make([]SaleItemModel, len(s.Items)),
	}
	for i, item := range s.Items {
		model.Items[i] = SaleItemModel{
			BookID:   item.BookID,
			Quantity: item.Quantity,
			Price:    item.UnitPriceCents,
		}
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		// the items FK fires before any stock check when a cart references
		// a book that does not exist
		if isForeignKeyError(err) {
			return book.ErrBookNotFound
		}
		return apperrors.Wrap(err, "inserting sale")
	}

	s.ID = model.ID
	s.SoldAt = model.SoldAt
	for i := range s.Items {
		s.Items[i].ID = model.Items[i].ID
		s.Items[i].SaleID = model.ID
	}
	return nil
}

func (r *saleRepository) FindByID(ctx context.Context, id uint) (*sale.Sale, error) {
	var model SaleModel
	err := getDB(ctx, r.db).Preload("Items.Book").First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, sale.ErrSaleNotFound
		}
		return nil, apperrors.Wrap(err, "querying sale")
	}
	return toSaleEntity(&model), nil
}

func (r *saleRepository) ListWithItems(ctx context.Context) ([]*sale.Sale, error) {
	var models []SaleModel
	err := getDB(ctx, r.db).
		Preload("Items.Book").
		Order("sold_at DESC, id DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "listing sales")
	}

	sales := make([]*sale.Sale, len(models))
	for i := range models {
		sales[i] = toSaleEntity(&models[i])
	}
	return sales, nil
}

func (r *saleRepository) ListSummaries(ctx context.Context) ([]sale.Summary, error) {
	var summaries []sale.Summary
	err := getDB(ctx, r.db).
		Model(&SaleModel{}).
		Select("sales.id, sales.buyer_name, sales.total AS total_cents, sales.payments AS raw_payments, sales.sold_at, COALESCE(SUM(sale_items.quantity), 0) AS unit_count").
		Joins("LEFT JOIN sale_items ON sale_items.sale_id = sales.id").
		Group("sales.id, sales.buyer_name, sales.total, sales.payments, sales.sold_at").
		Order("sales.sold_at DESC, sales.id DESC").
		Scan(&summaries).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "summarizing sales")
	}
	return summaries, nil
}

func (r *saleRepository) TopBooks(ctx context.Context, limit int) ([]sale.BookSales, error) {
	var rows []sale.BookSales
	err := getDB(ctx, r.db).
		Model(&SaleItemModel{}).
		Select("sale_items.book_id, books.title, SUM(sale_items.quantity) AS total_sold").
		Joins("JOIN books ON books.id = sale_items.book_id").
		Group("sale_items.book_id, books.title").
		Order("total_sold DESC, books.title ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "aggregating top sellers")
	}
	return rows, nil
}

func (r *saleRepository) CourtesyByBook(ctx context.Context, limit int) ([]sale.CourtesyRow, error) {
	var rows []sale.CourtesyRow
	err := getDB(ctx, r.db).
		Model(&SaleItemModel{}).
		Select("sale_items.book_id, books.title, SUM(sale_items.quantity) AS quantity").
		Joins("JOIN books ON books.id = sale_items.book_id").
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Where("sales.total = 0").
		Group("sale_items.book_id, books.title").
		Order("quantity DESC, books.title ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "aggregating courtesies")
	}
	return rows, nil
}

func (r *saleRepository) CountItemsByBook(ctx context.Context, bookID uint) (int64, error) {
	var count int64
	err := getDB(ctx, r.db).
		Model(&SaleItemModel{}).
		Where("book_id = ?", bookID).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "counting sale items")
	}
	return count, nil
}

func toSaleEntity(model *SaleModel) *sale.Sale {
	items := make([]sale.Item, len(model.Items))
	for i, item := range model.Items {
		title := ""
		if item.Book != nil {
			title = item.Book.Title
		}
		items[i] = sale.Item{
			ID:             item.ID,
			SaleID:         item.SaleID,
			BookID:         item.BookID,
			BookTitle:      title,
			Quantity:       item.Quantity,
			UnitPriceCents: item.Price,
		}
	}

	return &sale.Sale{
		ID:            model.ID,
		BuyerName:     model.BuyerName,
		SubtotalCents: model.Subtotal,
		DiscountCents: model.Discount,
		TotalCents:    model.Total,
		RawPayments:   model.RawPayments,
		SoldAt:        model.SoldAt,
		Items:         items,
	}
}
