package kora

import (
	"context"

	"github.com/korafinance/kora/model"
)

// GetTransaction retrieves a transaction record from the database by ID.
func (l *Kora) GetTransaction(ctx context.Context, id string) (*model.Transaction, error) {
	return l.datasource.GetTransaction(ctx, id)
}

// GetAllTransactions retrieves the full transaction log in insertion order.
func (l *Kora) GetAllTransactions(ctx context.Context) ([]model.Transaction, error) {
	return l.datasource.GetAllTransactions(ctx)
}
