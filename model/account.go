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
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrInsufficientFunds is returned when a debit would drive a balance negative.
	ErrInsufficientFunds = errors.New("insufficient funds in source account")

	// ErrNonPositiveAmount is returned for deposits, withdrawals, or transfers
	// with an amount less than or equal to zero.
	ErrNonPositiveAmount = errors.New("transaction amount must be positive")

	// ErrSameAccountTransfer is returned when a transfer names the same account
	// on both sides.
	ErrSameAccountTransfer = errors.New("cannot transfer to the same account")
)

// Account holds a customer's balance. Number is the unique 16-character
// external identifier, distinct from the internal AccountID. Version backs
// optimistic locking on balance writes.
type Account struct {
	AccountID  string                 `json:"account_id"`
	Number     string                 `json:"number"`
	CustomerID string                 `json:"customer_id"`
	Balance    decimal.Decimal        `json:"balance"`
	Version    int64                  `json:"-"`
	CreatedAt  time.Time              `json:"created_at"`
	MetaData   map[string]interface{} `json:"meta_data,omitempty"`
}

// Credit adds amount to the account balance.
func (a *Account) Credit(amount decimal.Decimal) {
	a.Balance = a.Balance.Add(amount)
}

// Debit subtracts amount from the account balance. The balance is never
// allowed to go negative.
func (a *Account) Debit(amount decimal.Decimal) error {
	if a.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}
	a.Balance = a.Balance.Sub(amount)
	return nil
}
