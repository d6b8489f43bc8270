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

package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/korafinance/kora"
	model2 "github.com/korafinance/kora/api/model"
	"github.com/korafinance/kora/config"
	"github.com/korafinance/kora/database"
)

type TestRequest struct {
	Payload  io.Reader
	Router   *gin.Engine
	Response interface{}
	Method   string
	Route    string
	Header   map[string]string
}

func SetUpTestRequest(s TestRequest) (*httptest.ResponseRecorder, error) {
	req := httptest.NewRequest(s.Method, s.Route, s.Payload)
	for key, value := range s.Header {
		req.Header.Set(key, value)
	}
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	s.Router.ServeHTTP(resp, req)

	err := json.NewDecoder(resp.Body).Decode(&s.Response)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func setupRouter() (*gin.Engine, sqlmock.Sqlmock, error) {
	config.MockConfig(&config.Configuration{
		DataSource: config.DataSourceConfig{Dns: "postgres://postgres:@localhost:5432/kora?sslmode=disable"},
	})

	db, mock, err := sqlmock.New()
	if err != nil {
		return nil, nil, err
	}

	newKora, err := kora.NewKora(&database.Datasource{Conn: db})
	if err != nil {
		return nil, nil, err
	}
	router := NewAPI(newKora).Router()

	return router, mock, nil
}

func jsonBody(t *testing.T, payload interface{}) io.Reader {
	t.Helper()
	body, err := json.Marshal(payload)
	assert.NoError(t, err)
	return bytes.NewBuffer(body)
}

func TestCreateCustomer(t *testing.T) {
	router, mock, err := setupRouter()
	if err != nil {
		t.Fatalf("Failed to setup router: %v", err)
	}

	tests := []struct {
		name         string
		payload      model2.CreateCustomer
		expectedCode int
		wantErr      bool
	}{
		{
			name: "Valid Customer",
			payload: model2.CreateCustomer{
				Name:  gofakeit.Name(),
				Email: gofakeit.Email(),
			},
			expectedCode: http.StatusCreated,
			wantErr:      false,
		},
		{
			name: "Missing Email",
			payload: model2.CreateCustomer{
				Name: gofakeit.Name(),
			},
			expectedCode: http.StatusBadRequest,
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.wantErr {
				mock.ExpectExec("INSERT INTO kora.customers").
					WillReturnResult(sqlmock.NewResult(1, 1))
			}

			var response model2.APIResponse
			resp, err := SetUpTestRequest(TestRequest{
				Payload:  jsonBody(t, tt.payload),
				Response: &response,
				Method:   http.MethodPost,
				Route:    "/customers",
				Router:   router,
			})
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedCode, resp.Code)
			if !tt.wantErr {
				assert.Equal(t, "Customer created", response.Message)
				assert.NotNil(t, response.Data)
			}
		})
	}
}

func TestGetCustomer_NotFound(t *testing.T) {
	router, mock, err := setupRouter()
	if err != nil {
		t.Fatalf("Failed to setup router: %v", err)
	}

	mock.ExpectQuery("SELECT customer_id, name, email, created_at, meta_data FROM kora.customers WHERE customer_id =").
		WithArgs("cus_missing").
		WillReturnRows(sqlmock.NewRows([]string{"customer_id", "name", "email", "created_at", "meta_data"}))

	var response model2.APIResponse
	resp, err := SetUpTestRequest(TestRequest{
		Response: &response,
		Method:   http.MethodGet,
		Route:    "/customers/cus_missing",
		Router:   router,
	})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, response.Message, "not found")
}

func TestCreateAccount(t *testing.T) {
	router, mock, err := setupRouter()
	if err != nil {
		t.Fatalf("Failed to setup router: %v", err)
	}

	tests := []struct {
		name         string
		payload      model2.CreateAccount
		expectedCode int
		wantErr      bool
	}{
		{
			name: "Valid Account",
			payload: model2.CreateAccount{
				CustomerID:     "cus_123",
				InitialDeposit: decimal.NewFromInt(100),
			},
			expectedCode: http.StatusCreated,
			wantErr:      false,
		},
		{
			name: "Negative Initial Deposit",
			payload: model2.CreateAccount{
				CustomerID:     "cus_123",
				InitialDeposit: decimal.NewFromInt(-100),
			},
			expectedCode: http.StatusBadRequest,
			wantErr:      true,
		},
		{
			name:         "Missing Customer ID",
			payload:      model2.CreateAccount{InitialDeposit: decimal.NewFromInt(100)},
			expectedCode: http.StatusBadRequest,
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.wantErr {
				mock.ExpectQuery("SELECT customer_id, name, email, created_at, meta_data FROM kora.customers WHERE customer_id =").
					WithArgs(tt.payload.CustomerID).
					WillReturnRows(sqlmock.NewRows([]string{"customer_id", "name", "email", "created_at", "meta_data"}).
						AddRow(tt.payload.CustomerID, gofakeit.Name(), gofakeit.Email(), time.Now(), `{}`))
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO kora.accounts").
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec("INSERT INTO kora.transactions").
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()
			}

			var response model2.APIResponse
			resp, err := SetUpTestRequest(TestRequest{
				Payload:  jsonBody(t, tt.payload),
				Response: &response,
				Method:   http.MethodPost,
				Route:    "/accounts",
				Router:   router,
			})
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedCode, resp.Code)
			if !tt.wantErr {
				assert.Equal(t, "Account created", response.Message)
			}
		})
	}
}

func TestGetAccount(t *testing.T) {
	router, mock, err := setupRouter()
	if err != nil {
		t.Fatalf("Failed to setup router: %v", err)
	}

	accountColumns := []string{"account_id", "number", "customer_id", "balance", "version", "created_at", "meta_data"}

	// Lookup by internal ID.
	mock.ExpectQuery("SELECT account_id, number, customer_id, balance, version, created_at, meta_data FROM kora.accounts WHERE account_id =").
		WithArgs("acc_1").
		WillReturnRows(sqlmock.NewRows(accountColumns).
			AddRow("acc_1", "A1B2C3D4E5F60718", "cus_123", "100", 0, time.Now(), `{}`))

	var response model2.APIResponse
	resp, err := SetUpTestRequest(TestRequest{
		Response: &response,
		Method:   http.MethodGet,
		Route:    "/accounts/acc_1",
		Router:   router,
	})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "Account fetched", response.Message)

	// Lookup by external account number.
	mock.ExpectQuery("SELECT account_id, number, customer_id, balance, version, created_at, meta_data FROM kora.accounts WHERE number =").
		WithArgs("A1B2C3D4E5F60718").
		WillReturnRows(sqlmock.NewRows(accountColumns).
			AddRow("acc_1", "A1B2C3D4E5F60718", "cus_123", "100", 0, time.Now(), `{}`))

	resp, err = SetUpTestRequest(TestRequest{
		Response: &response,
		Method:   http.MethodGet,
		Route:    "/accounts/A1B2C3D4E5F60718",
		Router:   router,
	})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestDeposit(t *testing.T) {
	router, mock, err := setupRouter()
	if err != nil {
		t.Fatalf("Failed to setup router: %v", err)
	}

	number := "A1B2C3D4E5F60718"

	mock.ExpectQuery("SELECT account_id, number, customer_id, balance, version, created_at, meta_data FROM kora.accounts WHERE number =").
		WithArgs(number).
		WillReturnRows(sqlmock.NewRows([]string{"account_id", "number", "customer_id", "balance", "version", "created_at", "meta_data"}).
			AddRow("acc_1", number, "cus_123", "100", 0, time.Now(), `{}`))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE kora.accounts").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO kora.transactions").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	var response model2.APIResponse
	resp, err := SetUpTestRequest(TestRequest{
		Payload:  jsonBody(t, model2.MoveFunds{Amount: decimal.NewFromInt(50)}),
		Response: &response,
		Method:   http.MethodPost,
		Route:    "/accounts/" + number + "/deposit",
		Router:   router,
	})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "Deposited", response.Message)
}

func TestDeposit_NonPositiveAmount(t *testing.T) {
	router, _, err := setupRouter()
	if err != nil {
		t.Fatalf("Failed to setup router: %v", err)
	}

	var response model2.APIResponse
	resp, err := SetUpTestRequest(TestRequest{
		Payload:  jsonBody(t, model2.MoveFunds{Amount: decimal.Zero}),
		Response: &response,
		Method:   http.MethodPost,
		Route:    "/accounts/A1B2C3D4E5F60718/deposit",
		Router:   router,
	})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestWithdraw_InsufficientFunds(t *testing.T) {
	router, mock, err := setupRouter()
	if err != nil {
		t.Fatalf("Failed to setup router: %v", err)
	}

	number := "A1B2C3D4E5F60718"

	mock.ExpectQuery("SELECT account_id, number, customer_id, balance, version, created_at, meta_data FROM kora.accounts WHERE number =").
		WithArgs(number).
		WillReturnRows(sqlmock.NewRows([]string{"account_id", "number", "customer_id", "balance", "version", "created_at", "meta_data"}).
			AddRow("acc_1", number, "cus_123", "10", 0, time.Now(), `{}`))

	var response model2.APIResponse
	resp, err := SetUpTestRequest(TestRequest{
		Payload:  jsonBody(t, model2.MoveFunds{Amount: decimal.NewFromInt(500)}),
		Response: &response,
		Method:   http.MethodPost,
		Route:    "/accounts/" + number + "/withdraw",
		Router:   router,
	})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, response.Message, "Insufficient funds")
}

func TestTransfer(t *testing.T) {
	router, mock, err := setupRouter()
	if err != nil {
		t.Fatalf("Failed to setup router: %v", err)
	}

	fromNumber := "SRC0000000000001"
	toNumber := "DST0000000000002"

	mock.ExpectQuery("SELECT account_id, number, customer_id, balance, version, created_at, meta_data FROM kora.accounts WHERE number =").
		WithArgs(fromNumber).
		WillReturnRows(sqlmock.NewRows([]string{"account_id", "number", "customer_id", "balance", "version", "created_at", "meta_data"}).
			AddRow("acc_src", fromNumber, "cus_1", "70", 0, time.Now(), `{}`))
	mock.ExpectQuery("SELECT account_id, number, customer_id, balance, version, created_at, meta_data FROM kora.accounts WHERE number =").
		WithArgs(toNumber).
		WillReturnRows(sqlmock.NewRows([]string{"account_id", "number", "customer_id", "balance", "version", "created_at", "meta_data"}).
			AddRow("acc_dst", toNumber, "cus_2", "30", 0, time.Now(), `{}`))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE kora.accounts").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE kora.accounts").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO kora.transactions").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	var response model2.APIResponse
	resp, err := SetUpTestRequest(TestRequest{
		Payload: jsonBody(t, model2.TransferRequest{
			FromAccount: fromNumber,
			ToAccount:   toNumber,
			Amount:      decimal.NewFromInt(30),
		}),
		Response: &response,
		Method:   http.MethodPost,
		Route:    "/transfer",
		Router:   router,
	})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "Transfer completed", response.Message)
}

func TestTransfer_SameAccount(t *testing.T) {
	router, _, err := setupRouter()
	if err != nil {
		t.Fatalf("Failed to setup router: %v", err)
	}

	var response model2.APIResponse
	resp, err := SetUpTestRequest(TestRequest{
		Payload: jsonBody(t, model2.TransferRequest{
			FromAccount: "SAME000000000001",
			ToAccount:   "SAME000000000001",
			Amount:      decimal.NewFromInt(10),
		}),
		Response: &response,
		Method:   http.MethodPost,
		Route:    "/transfer",
		Router:   router,
	})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, response.Message, "same account")
}

func TestTransfer_UnknownAccount(t *testing.T) {
	router, mock, err := setupRouter()
	if err != nil {
		t.Fatalf("Failed to setup router: %v", err)
	}

	mock.ExpectQuery("SELECT account_id, number, customer_id, balance, version, created_at, meta_data FROM kora.accounts WHERE number =").
		WithArgs("MISSING000000001").
		WillReturnRows(sqlmock.NewRows([]string{"account_id", "number", "customer_id", "balance", "version", "created_at", "meta_data"}))

	var response model2.APIResponse
	resp, err := SetUpTestRequest(TestRequest{
		Payload: jsonBody(t, model2.TransferRequest{
			FromAccount: "MISSING000000001",
			ToAccount:   "DST0000000000002",
			Amount:      decimal.NewFromInt(10),
		}),
		Response: &response,
		Method:   http.MethodPost,
		Route:    "/transfer",
		Router:   router,
	})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestGetTransaction_NotFound(t *testing.T) {
	router, mock, err := setupRouter()
	if err != nil {
		t.Fatalf("Failed to setup router: %v", err)
	}

	mock.ExpectQuery("SELECT transaction_id, .* FROM kora.transactions WHERE transaction_id =").
		WithArgs("txn_missing").
		WillReturnRows(sqlmock.NewRows([]string{"transaction_id", "from_account_id", "to_account_id", "amount", "type", "created_at", "meta_data"}))

	var response model2.APIResponse
	resp, err := SetUpTestRequest(TestRequest{
		Response: &response,
		Method:   http.MethodGet,
		Route:    "/transactions/txn_missing",
		Router:   router,
	})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
