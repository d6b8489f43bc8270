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
	"embed"

	"github.com/korafinance/kora/database"
	"github.com/korafinance/kora/internal/apierror"
	"github.com/korafinance/kora/model"
)

// Kora represents the main struct for the Kora application. It exposes the
// customer directory, the account ledger, and the transaction query services
// over a single datasource.
type Kora struct {
	datasource database.IDataSource
}

//go:embed sql/*.sql
var SQLFiles embed.FS

// NewKora initializes a new instance of Kora with the provided database datasource.
func NewKora(db database.IDataSource) (*Kora, error) {
	return &Kora{datasource: db}, nil
}

// mapDomainError lifts a model-level failure into the typed error the API
// boundary knows how to translate.
func mapDomainError(err error) error {
	switch err {
	case model.ErrInsufficientFunds:
		return apierror.NewAPIError(apierror.ErrInsufficientFunds, "Insufficient funds for this operation", nil)
	case model.ErrNonPositiveAmount:
		return apierror.NewAPIError(apierror.ErrInvalidInput, "Amount must be greater than zero", nil)
	case model.ErrSameAccountTransfer:
		return apierror.NewAPIError(apierror.ErrInvalidInput, "Cannot transfer to the same account", nil)
	default:
		return apierror.NewAPIError(apierror.ErrInternalServer, "Unexpected error applying transaction", err)
	}
}
