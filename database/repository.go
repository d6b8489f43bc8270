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

	"github.com/korafinance/kora/model"
)

// IDataSource defines the interface for data source operations, grouping related functionalities.
type IDataSource interface {
	customer    // Interface for customer-related operations
	account     // Interface for account-related operations
	transaction // Interface for transaction-related operations
}

// customer defines methods for handling customers.
type customer interface {
	CreateCustomer(customer model.Customer) (model.Customer, error) // Creates a new customer
	GetCustomerByID(id string) (*model.Customer, error)             // Retrieves a customer by ID
	GetAllCustomers() ([]model.Customer, error)                     // Retrieves all customers
}

// account defines methods for handling accounts.
type account interface {
	CreateAccount(ctx context.Context, account model.Account, openingDeposit *model.Transaction) (model.Account, error) // Creates a new account, with an optional opening DEPOSIT record, atomically
	GetAccountByID(id string) (*model.Account, error)                                                                   // Retrieves an account by ID
	GetAccountByNumber(number string) (*model.Account, error)                                                           // Retrieves an account by its number
	GetAllAccounts() ([]model.Account, error)                                                                           // Retrieves all accounts
}

// transaction defines methods for handling transactions.
type transaction interface {
	ApplyTransaction(ctx context.Context, txn *model.Transaction, accounts ...*model.Account) (*model.Transaction, error) // Persists updated balances and the record in one atomic unit
	GetTransaction(ctx context.Context, id string) (*model.Transaction, error)                                            // Retrieves a transaction by ID
	GetAllTransactions(ctx context.Context) ([]model.Transaction, error)                                                  // Retrieves all transactions
}
