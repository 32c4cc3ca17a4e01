package mysql

import (
	"context"

	"gorm.io/gorm"
)

// txKey is the context key carrying the transaction handle between the
// transaction boundary and the repositories.
type txKey struct{}

// TxManager wraps GORM transactions so the application layer can open a
// transaction without importing GORM. Repositories participate by pulling
// the transactional *gorm.DB back out of the context via getDB.
type TxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Transaction runs fn inside one database transaction. Every repository
// call made with the context passed to fn joins the same transaction; fn
// returning an error rolls everything back, nil commits.
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// getDB returns the transactional DB from the context when inside a
// Transaction, the root handle otherwise.
func getDB(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}
