package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/korafinance/kora/internal/apierror"
	"github.com/korafinance/kora/model"
)

// CreateCustomer inserts a new Customer into the database.
func (d Datasource) CreateCustomer(customer model.Customer) (model.Customer, error) {
	metaDataJSON, err := json.Marshal(customer.MetaData)
	if err != nil {
		return model.Customer{}, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to marshal metadata", err)
	}

	customer.CustomerID = model.GenerateUUIDWithSuffix("cus")
	customer.CreatedAt = time.Now()

	_, err = d.Conn.Exec(`
		INSERT INTO kora.customers (customer_id, name, email, created_at, meta_data)
		VALUES ($1, $2, $3, $4, $5)
	`, customer.CustomerID, customer.Name, customer.Email, customer.CreatedAt, metaDataJSON)

	if err != nil {
		pqErr, ok := err.(*pq.Error)
		if ok {
			switch pqErr.Code.Name() {
			case "unique_violation":
				return model.Customer{}, apierror.NewAPIError(apierror.ErrConflict, "Customer with this ID already exists", err)
			default:
				return model.Customer{}, apierror.NewAPIError(apierror.ErrInternalServer, "Database error occurred", err)
			}
		}
		return model.Customer{}, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to create customer", err)
	}

	return customer, nil
}

// GetCustomerByID retrieves a customer from the database by ID.
func (d Datasource) GetCustomerByID(id string) (*model.Customer, error) {
	customer := model.Customer{}

	row := d.Conn.QueryRow(`
		SELECT customer_id, name, email, created_at, meta_data
		FROM kora.customers
		WHERE customer_id = $1
	`, id)

	var metaDataJSON []byte
	err := row.Scan(&customer.CustomerID, &customer.Name, &customer.Email, &customer.CreatedAt, &metaDataJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apierror.NewAPIError(apierror.ErrNotFound, fmt.Sprintf("Customer with ID '%s' not found", id), err)
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve customer", err)
	}

	err = json.Unmarshal(metaDataJSON, &customer.MetaData)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to unmarshal metadata", err)
	}

	return &customer, nil
}

// GetAllCustomers retrieves all customers from the database in insertion order.
func (d Datasource) GetAllCustomers() ([]model.Customer, error) {
	rows, err := d.Conn.Query(`
		SELECT customer_id, name, email, created_at, meta_data
		FROM kora.customers
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve customers", err)
	}
	defer func() { _ = rows.Close() }()

	customers := []model.Customer{}

	for rows.Next() {
		customer := model.Customer{}
		var metaDataJSON []byte
		err = rows.Scan(&customer.CustomerID, &customer.Name, &customer.Email, &customer.CreatedAt, &metaDataJSON)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan customer data", err)
		}

		err = json.Unmarshal(metaDataJSON, &customer.MetaData)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to unmarshal metadata", err)
		}

		customers = append(customers, customer)
	}

	if err = rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Error occurred while iterating over customers", err)
	}

	return customers, nil
}
