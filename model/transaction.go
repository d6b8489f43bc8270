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

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TypeDeposit  = "DEPOSIT"
	TypeWithdraw = "WITHDRAW"
	TypeTransfer = "TRANSFER"
)

// Transaction is an append-only record of a balance movement. For a DEPOSIT
// the from side is empty, for a WITHDRAW the to side is empty, and a TRANSFER
// carries both (double-entry in a single record).
type Transaction struct {
	TransactionID string                 `json:"transaction_id"`
	FromAccountID string                 `json:"from_account_id,omitempty"`
	ToAccountID   string                 `json:"to_account_id,omitempty"`
	Amount        decimal.Decimal        `json:"amount"`
	Type          string                 `json:"type"`
	CreatedAt     time.Time              `json:"created_at"`
	MetaData      map[string]interface{} `json:"meta_data,omitempty"`
}

// validate checks the invariant shared by every transaction kind.
func (transaction *Transaction) validate() error {
	if transaction.Amount.Sign() <= 0 {
		return ErrNonPositiveAmount
	}
	return nil
}

// NewDeposit builds a DEPOSIT record crediting destination.
func NewDeposit(destination *Account, amount decimal.Decimal) *Transaction {
	return &Transaction{
		TransactionID: GenerateUUIDWithSuffix("txn"),
		ToAccountID:   destination.AccountID,
		Amount:        amount,
		Type:          TypeDeposit,
		CreatedAt:     time.Now(),
	}
}

// NewWithdrawal builds a WITHDRAW record debiting source.
func NewWithdrawal(source *Account, amount decimal.Decimal) *Transaction {
	return &Transaction{
		TransactionID: GenerateUUIDWithSuffix("txn"),
		FromAccountID: source.AccountID,
		Amount:        amount,
		Type:          TypeWithdraw,
		CreatedAt:     time.Now(),
	}
}

// NewTransfer builds a TRANSFER record moving amount from source to destination.
func NewTransfer(source, destination *Account, amount decimal.Decimal) *Transaction {
	return &Transaction{
		TransactionID: GenerateUUIDWithSuffix("txn"),
		FromAccountID: source.AccountID,
		ToAccountID:   destination.AccountID,
		Amount:        amount,
		Type:          TypeTransfer,
		CreatedAt:     time.Now(),
	}
}

// ApplyDeposit validates the transaction and credits the destination balance.
func ApplyDeposit(transaction *Transaction, destination *Account) error {
	if err := transaction.validate(); err != nil {
		return err
	}
	destination.Credit(transaction.Amount)
	return nil
}

// ApplyWithdrawal validates the transaction and debits the source balance.
func ApplyWithdrawal(transaction *Transaction, source *Account) error {
	if err := transaction.validate(); err != nil {
		return err
	}
	return source.Debit(transaction.Amount)
}

// ApplyTransfer validates the transaction and moves the amount between the
// two balances. The caller persists both accounts and the record in one
// atomic unit; a failure here leaves no partial mutation worth keeping.
func ApplyTransfer(transaction *Transaction, source, destination *Account) error {
	if err := transaction.validate(); err != nil {
		return err
	}
	if source.Number == destination.Number {
		return ErrSameAccountTransfer
	}
	if err := source.Debit(transaction.Amount); err != nil {
		return err
	}
	destination.Credit(transaction.Amount)
	return nil
}
