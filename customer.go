package kora

import "github.com/korafinance/kora/model"

// CreateCustomer creates a new customer in the database.
func (l *Kora) CreateCustomer(customer model.Customer) (model.Customer, error) {
	return l.datasource.CreateCustomer(customer)
}

// GetCustomer retrieves a customer from the database by ID.
func (l *Kora) GetCustomer(id string) (*model.Customer, error) {
	return l.datasource.GetCustomerByID(id)
}

// GetAllCustomers retrieves all customers from the database.
func (l *Kora) GetAllCustomers() ([]model.Customer, error) {
	return l.datasource.GetAllCustomers()
}
