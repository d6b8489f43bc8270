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
	"time"

	"github.com/lib/pq"

	"github.com/korafinance/kora/internal/apierror"
	"github.com/korafinance/kora/model"
)

// CreateAccount inserts a new Account, together with its opening DEPOSIT
// record when one is given, in a single database transaction. A unique
// violation on the account number surfaces as a Conflict so the caller can
// regenerate the number and retry.
func (d Datasource) CreateAccount(ctx context.Context, account model.Account, openingDeposit *model.Transaction) (model.Account, error) {
	metaDataJSON, err := json.Marshal(account.MetaData)
	if err != nil {
		return model.Account{}, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to marshal metadata", err)
	}

	account.AccountID = model.GenerateUUIDWithSuffix("acc")
	account.CreatedAt = time.Now()

	tx, err := d.Conn.BeginTx(ctx, nil)
	if err != nil {
		return model.Account{}, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to begin transaction", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	_, err = tx.ExecContext(ctx, `
		INSERT INTO kora.accounts (account_id, number, customer_id, balance, version, created_at, meta_data)
		VALUES ($1, $2, $3, $4, 0, $5, $6)
	`, account.AccountID, account.Number, account.CustomerID, account.Balance, account.CreatedAt, metaDataJSON)

	if err != nil {
		pqErr, ok := err.(*pq.Error)
		if ok {
			switch pqErr.Code.Name() {
			case "unique_violation":
				return model.Account{}, apierror.NewAPIError(apierror.ErrConflict, fmt.Sprintf("Account number '%s' already exists", account.Number), err)
			case "foreign_key_violation":
				return model.Account{}, apierror.NewAPIError(apierror.ErrNotFound, fmt.Sprintf("Customer with ID '%s' not found", account.CustomerID), err)
			default:
				return model.Account{}, apierror.NewAPIError(apierror.ErrInternalServer, "Database error occurred", err)
			}
		}
		return model.Account{}, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to create account", err)
	}

	if openingDeposit != nil {
		openingDeposit.ToAccountID = account.AccountID
		if err := insertTransaction(ctx, tx, openingDeposit); err != nil {
			return model.Account{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return model.Account{}, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to commit transaction", err)
	}

	return account, nil
}

// GetAccountByID retrieves an account by its internal ID.
func (d Datasource) GetAccountByID(id string) (*model.Account, error) {
	row := d.Conn.QueryRow(`
		SELECT account_id, number, customer_id, balance, version, created_at, meta_data
		FROM kora.accounts
		WHERE account_id = $1
	`, id)

	account, err := scanAccountRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apierror.NewAPIError(apierror.ErrNotFound, fmt.Sprintf("Account with ID '%s' not found", id), err)
		}
		return nil, err
	}
	return account, nil
}

// GetAccountByNumber retrieves an account by its external account number.
func (d Datasource) GetAccountByNumber(number string) (*model.Account, error) {
	row := d.Conn.QueryRow(`
		SELECT account_id, number, customer_id, balance, version, created_at, meta_data
		FROM kora.accounts
		WHERE number = $1
	`, number)

	account, err := scanAccountRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apierror.NewAPIError(apierror.ErrNotFound, fmt.Sprintf("Account with number '%s' not found", number), err)
		}
		return nil, err
	}
	return account, nil
}

func scanAccountRow(row *sql.Row) (*model.Account, error) {
	account := &model.Account{}
	var metaDataJSON []byte

	err := row.Scan(&account.AccountID, &account.Number, &account.CustomerID, &account.Balance, &account.Version, &account.CreatedAt, &metaDataJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve account", err)
	}

	err = json.Unmarshal(metaDataJSON, &account.MetaData)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to unmarshal metadata", err)
	}

	return account, nil
}

// GetAllAccounts retrieves all accounts from the database in insertion order.
func (d Datasource) GetAllAccounts() ([]model.Account, error) {
	rows, err := d.Conn.Query(`
		SELECT account_id, number, customer_id, balance, version, created_at, meta_data
		FROM kora.accounts
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve accounts", err)
	}
	defer func() { _ = rows.Close() }()

	accounts := []model.Account{}

	for rows.Next() {
		account := model.Account{}
		var metaDataJSON []byte
		err = rows.Scan(&account.AccountID, &account.Number, &account.CustomerID, &account.Balance, &account.Version, &account.CreatedAt, &metaDataJSON)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan account data", err)
		}

		err = json.Unmarshal(metaDataJSON, &account.MetaData)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to unmarshal metadata", err)
		}

		accounts = append(accounts, account)
	}

	if err = rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Error occurred while iterating over accounts", err)
	}

	return accounts, nil
}

// applyBalanceUpdate writes an account's new balance inside tx using
// optimistic locking. The version predicate serializes concurrent mutations
// of the same account; losing writers get a Conflict and retry from a fresh
// read. The version field is incremented after a successful update.
func applyBalanceUpdate(ctx context.Context, tx *sql.Tx, account *model.Account) error {
	result, err := tx.ExecContext(ctx, `
		UPDATE kora.accounts
		SET balance = $2, version = version + 1
		WHERE account_id = $1 AND version = $3
	`, account.AccountID, account.Balance, account.Version)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to update account balance", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apierror.NewAPIError(apierror.ErrConflict, fmt.Sprintf("Optimistic locking failure: account '%s' may have been updated by another transaction", account.AccountID), nil)
	}

	account.Version++

	return nil
}
