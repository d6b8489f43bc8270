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

package kora

import (
	"context"

	"github.com/cenkalti/backoff/v4"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/korafinance/kora/internal/apierror"
	"github.com/korafinance/kora/model"
)

// accountNumberMaxRetries bounds how many fresh account numbers are tried
// when the generated one collides with an existing row.
const accountNumberMaxRetries = 5

// CreateAccount opens an account for an existing customer. When the initial
// deposit is positive, the account row and its opening DEPOSIT record are
// written in one atomic unit. A collision on the generated account number is
// retried with a fresh number.
func (l *Kora) CreateAccount(ctx context.Context, customerID string, initialDeposit decimal.Decimal) (model.Account, error) {
	if initialDeposit.Sign() < 0 {
		return model.Account{}, apierror.NewAPIError(apierror.ErrInvalidInput, "Initial deposit cannot be negative", nil)
	}

	if _, err := l.datasource.GetCustomerByID(customerID); err != nil {
		return model.Account{}, err
	}

	var created model.Account
	operation := func() error {
		account := model.Account{
			Number:     model.GenerateAccountNumber(),
			CustomerID: customerID,
			Balance:    initialDeposit,
		}

		var openingDeposit *model.Transaction
		if initialDeposit.Sign() > 0 {
			openingDeposit = model.NewDeposit(&account, initialDeposit)
		}

		saved, err := l.datasource.CreateAccount(ctx, account, openingDeposit)
		if err != nil {
			if apiErr, ok := err.(apierror.APIError); ok && apiErr.Code == apierror.ErrConflict {
				logrus.Warnf("account number collision on %s, regenerating", account.Number)
				return err
			}
			return backoff.Permanent(err)
		}
		created = saved
		return nil
	}

	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), accountNumberMaxRetries), ctx))
	if err != nil {
		return model.Account{}, err
	}

	return created, nil
}

// GetAccount retrieves an account from the database by ID.
func (l *Kora) GetAccount(id string) (*model.Account, error) {
	return l.datasource.GetAccountByID(id)
}

// GetAccountByNumber retrieves an account from the database by its number.
func (l *Kora) GetAccountByNumber(number string) (*model.Account, error) {
	return l.datasource.GetAccountByNumber(number)
}

// GetAllAccounts retrieves all accounts from the database.
func (l *Kora) GetAllAccounts() ([]model.Account, error) {
	return l.datasource.GetAllAccounts()
}

// Deposit credits amount to the account identified by number and appends the
// DEPOSIT record atomically with the balance write.
func (l *Kora) Deposit(ctx context.Context, number string, amount decimal.Decimal) (*model.Account, error) {
	account, err := l.datasource.GetAccountByNumber(number)
	if err != nil {
		return nil, err
	}

	txn := model.NewDeposit(account, amount)
	if err := model.ApplyDeposit(txn, account); err != nil {
		return nil, mapDomainError(err)
	}

	if _, err := l.datasource.ApplyTransaction(ctx, txn, account); err != nil {
		return nil, err
	}

	return account, nil
}

// Withdraw debits amount from the account identified by number and appends
// the WITHDRAW record atomically with the balance write. The balance is never
// allowed to go negative.
func (l *Kora) Withdraw(ctx context.Context, number string, amount decimal.Decimal) (*model.Account, error) {
	account, err := l.datasource.GetAccountByNumber(number)
	if err != nil {
		return nil, err
	}

	txn := model.NewWithdrawal(account, amount)
	if err := model.ApplyWithdrawal(txn, account); err != nil {
		return nil, mapDomainError(err)
	}

	if _, err := l.datasource.ApplyTransaction(ctx, txn, account); err != nil {
		return nil, err
	}

	return account, nil
}

// Transfer moves amount between two accounts. Both balance writes and the
// single TRANSFER record commit as one unit; any failure leaves the store
// untouched.
func (l *Kora) Transfer(ctx context.Context, fromNumber, toNumber string, amount decimal.Decimal) (*model.Transaction, error) {
	if fromNumber == toNumber {
		return nil, mapDomainError(model.ErrSameAccountTransfer)
	}

	source, err := l.datasource.GetAccountByNumber(fromNumber)
	if err != nil {
		return nil, err
	}
	destination, err := l.datasource.GetAccountByNumber(toNumber)
	if err != nil {
		return nil, err
	}

	txn := model.NewTransfer(source, destination, amount)
	if err := model.ApplyTransfer(txn, source, destination); err != nil {
		return nil, mapDomainError(err)
	}

	return l.datasource.ApplyTransaction(ctx, txn, source, destination)
}
