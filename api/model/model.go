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

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"

	"github.com/korafinance/kora/model"
)

// APIResponse is the envelope every endpoint returns: a human-readable
// message plus an optional payload.
type APIResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type CreateCustomer struct {
	Name     string                 `json:"name"`
	Email    string                 `json:"email"`
	MetaData map[string]interface{} `json:"meta_data"`
}

type CreateAccount struct {
	CustomerID     string                 `json:"customer_id"`
	InitialDeposit decimal.Decimal        `json:"initial_deposit"`
	MetaData       map[string]interface{} `json:"meta_data"`
}

type MoveFunds struct {
	Amount decimal.Decimal `json:"amount"`
}

type TransferRequest struct {
	FromAccount string          `json:"from_account"`
	ToAccount   string          `json:"to_account"`
	Amount      decimal.Decimal `json:"amount"`
}

func positiveAmount(value interface{}) error {
	amount, ok := value.(decimal.Decimal)
	if !ok {
		return errors.New("invalid amount type")
	}
	if amount.Sign() <= 0 {
		return errors.New("amount must be greater than zero")
	}
	return nil
}

func (c *CreateCustomer) ValidateCreateCustomer() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.Email, validation.Required),
	)
}

func (a *CreateAccount) ValidateCreateAccount() error {
	return validation.ValidateStruct(a,
		validation.Field(&a.CustomerID, validation.Required),
		validation.Field(&a.InitialDeposit, validation.By(func(value interface{}) error {
			deposit, ok := value.(decimal.Decimal)
			if !ok {
				return errors.New("invalid initial deposit type")
			}
			if deposit.Sign() < 0 {
				return errors.New("initial deposit cannot be negative")
			}
			return nil
		})),
	)
}

func (m *MoveFunds) ValidateMoveFunds() error {
	return validation.ValidateStruct(m,
		validation.Field(&m.Amount, validation.By(positiveAmount)),
	)
}

func (t *TransferRequest) ValidateTransferRequest() error {
	return validation.ValidateStruct(t,
		validation.Field(&t.FromAccount, validation.Required),
		validation.Field(&t.ToAccount, validation.Required),
		validation.Field(&t.Amount, validation.By(positiveAmount)),
	)
}

// ToCustomer converts the request payload into the domain customer.
func (c *CreateCustomer) ToCustomer() model.Customer {
	return model.Customer{
		Name:     c.Name,
		Email:    c.Email,
		MetaData: c.MetaData,
	}
}
