package book

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryRepo is an in-memory Repository for service tests.
type memoryRepo struct {
	Repository
	byID    map[uint]*Book
	byTitle map[string]*Book
	nextID  uint
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		byID:    map[uint]*Book{},
		byTitle: map[string]*Book{},
		nextID:  1,
	}
}

func (r *memoryRepo) Create(ctx context.Context, b *Book) error {
	if _, ok := r.byTitle[b.Title]; ok {
		return ErrTitleDuplicate
	}
	b.ID = r.nextID
	r.nextID++
	r.byID[b.ID] = b
	r.byTitle[b.Title] = b
	return nil
}

func (r *memoryRepo) FindByID(ctx context.Context, id uint) (*Book, error) {
	if b, ok := r.byID[id]; ok {
		return b, nil
	}
	return nil, ErrBookNotFound
}

func (r *memoryRepo) FindByTitle(ctx context.Context, title string) (*Book, error) {
	if b, ok := r.byTitle[title]; ok {
		return b, nil
	}
	return nil, ErrBookNotFound
}

func (r *memoryRepo) FindByBarcode(ctx context.Context, barcode string) (*Book, error) {
	for _, b := range r.byID {
		if b.Barcode != nil && *b.Barcode == barcode {
			return b, nil
		}
	}
	return nil, ErrBookNotFound
}

func (r *memoryRepo) Update(ctx context.Context, b *Book) error {
	r.byID[b.ID] = b
	return nil
}

func strptr(s string) *string { return &s }

func TestCreateBook(t *testing.T) {
	svc := NewService(newMemoryRepo())

	b, err := svc.CreateBook(context.Background(), "  Dom Casmurro  ", " Machado de Assis ", 4590, 10, nil)

	require.NoError(t, err)
	assert.Equal(t, "Dom Casmurro", b.Title)
	assert.Equal(t, "Machado de Assis", b.Author)
	assert.Equal(t, int64(4590), b.PriceCents)
	assert.Equal(t, 10, b.Stock)
	assert.NotZero(t, b.ID)
}

func TestCreateBookDuplicateTitle(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.CreateBook(context.Background(), "Dom Casmurro", "", 4590, 10, nil)
	require.NoError(t, err)

	_, err = svc.CreateBook(context.Background(), "Dom Casmurro", "", 5000, 3, nil)
	assert.ErrorIs(t, err, ErrTitleDuplicate)
}

func TestCreateBookValidation(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.CreateBook(context.Background(), "   ", "", 100, 1, nil)
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = svc.CreateBook(context.Background(), "X", "", -1, 1, nil)
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = svc.CreateBook(context.Background(), "X", "", 100, -1, nil)
	assert.ErrorIs(t, err, ErrInvalidStock)
}

func TestCreateBookZeroPriceAllowed(t *testing.T) {
	// imported inventory starts at price 0 until the price list is loaded
	svc := NewService(newMemoryRepo())

	b, err := svc.CreateBook(context.Background(), "Sem Preço", "", 0, 5, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), b.PriceCents)
}

func TestCreateBookBlankBarcodeBecomesNil(t *testing.T) {
	svc := NewService(newMemoryRepo())

	b, err := svc.CreateBook(context.Background(), "Dom Casmurro", "", 4590, 10, strptr("   "))
	require.NoError(t, err)
	assert.Nil(t, b.Barcode)
}

func TestGetBookByBarcode(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	created, err := svc.CreateBook(context.Background(), "Dom Casmurro", "", 4590, 10, strptr("7898357410015"))
	require.NoError(t, err)

	found, err := svc.GetBookByBarcode(context.Background(), " 7898357410015 ")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = svc.GetBookByBarcode(context.Background(), "")
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestUpdateBook(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	created, err := svc.CreateBook(context.Background(), "Dom Casmuro", "", 4590, 10, nil)
	require.NoError(t, err)

	updated, err := svc.UpdateBook(context.Background(), created.ID, "Dom Casmurro", "Machado de Assis", 4990, 8, nil)
	require.NoError(t, err)
	assert.Equal(t, "Dom Casmurro", updated.Title)
	assert.Equal(t, int64(4990), updated.PriceCents)
	assert.Equal(t, 8, updated.Stock)
}

func TestUpdateBookNotFound(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.UpdateBook(context.Background(), 999, "X", "", 100, 1, nil)
	assert.ErrorIs(t, err, ErrBookNotFound)
}
