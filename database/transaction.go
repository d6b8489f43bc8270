/*
Copyright 2025 Kora Finance Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/korafinance/kora/internal/apierror"
	"github.com/korafinance/kora/model"
)

// ApplyTransaction persists the updated balances of the given accounts and
// appends the transaction record in one database transaction. Either every
// balance write and the record insert commit together, or the store is left
// exactly as it was.
func (d Datasource) ApplyTransaction(ctx context.Context, txn *model.Transaction, accounts ...*model.Account) (*model.Transaction, error) {
	tx, err := d.Conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to begin transaction", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	for _, account := range accounts {
		if err := applyBalanceUpdate(ctx, tx, account); err != nil {
			return nil, err
		}
	}

	if err := insertTransaction(ctx, tx, txn); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to commit transaction", err)
	}

	return txn, nil
}

// insertTransaction appends a transaction record inside tx. The from and to
// references are nullable; DEPOSIT carries only a destination, WITHDRAW only
// a source.
func insertTransaction(ctx context.Context, tx *sql.Tx, txn *model.Transaction) error {
	metaDataJSON, err := json.Marshal(txn.MetaData)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to marshal metadata", err)
	}

	var fromAccountID interface{} = txn.FromAccountID
	if txn.FromAccountID == "" {
		fromAccountID = nil
	}

	var toAccountID interface{} = txn.ToAccountID
	if txn.ToAccountID == "" {
		toAccountID = nil
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO kora.transactions (transaction_id, from_account_id, to_account_id, amount, type, created_at, meta_data)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, txn.TransactionID, fromAccountID, toAccountID, txn.Amount, txn.Type, txn.CreatedAt, metaDataJSON)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to record transaction", err)
	}

	return nil
}

// GetTransaction retrieves a transaction record by ID.
func (d Datasource) GetTransaction(ctx context.Context, id string) (*model.Transaction, error) {
	row := d.Conn.QueryRowContext(ctx, `
		SELECT transaction_id, COALESCE(from_account_id, ''), COALESCE(to_account_id, ''), amount, type, created_at, meta_data
		FROM kora.transactions
		WHERE transaction_id = $1
	`, id)

	txn := &model.Transaction{}
	var metaDataJSON []byte
	err := row.Scan(&txn.TransactionID, &txn.FromAccountID, &txn.ToAccountID, &txn.Amount, &txn.Type, &txn.CreatedAt, &metaDataJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apierror.NewAPIError(apierror.ErrNotFound, fmt.Sprintf("Transaction with ID '%s' not found", id), err)
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve transaction", err)
	}

	err = json.Unmarshal(metaDataJSON, &txn.MetaData)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to unmarshal metadata", err)
	}

	return txn, nil
}

// GetAllTransactions retrieves all transaction records in insertion order.
func (d Datasource) GetAllTransactions(ctx context.Context) ([]model.Transaction, error) {
	rows, err := d.Conn.QueryContext(ctx, `
		SELECT transaction_id, COALESCE(from_account_id, ''), COALESCE(to_account_id, ''), amount, type, created_at, meta_data
		FROM kora.transactions
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve transactions", err)
	}
	defer func() { _ = rows.Close() }()

	transactions := []model.Transaction{}

	for rows.Next() {
		txn := model.Transaction{}
		var metaDataJSON []byte
		err = rows.Scan(&txn.TransactionID, &txn.FromAccountID, &txn.ToAccountID, &txn.Amount, &txn.Type, &txn.CreatedAt, &metaDataJSON)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan transaction data", err)
		}

		err = json.Unmarshal(metaDataJSON, &txn.MetaData)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to unmarshal metadata", err)
		}

		transactions = append(transactions, txn)
	}

	if err = rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Error occurred while iterating over transactions", err)
	}

	return transactions, nil
}
