package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidID    = errors.New("customer id is required")
	ErrEmptyName    = errors.New("customer name is required")
	ErrInvalidEmail = errors.New("email must contain '@'")
)

// Customer is the buyer placing orders. The ordering workflow only relies on ID.
type Customer struct {
	ID    uuid.UUID
	Name  string
	Email string
}

// NewCustomer builds a customer ensuring required invariants.
func NewCustomer(id uuid.UUID, name, email string) (*Customer, error) {
	customer := &Customer{ID: id, Name: strings.TrimSpace(name), Email: strings.TrimSpace(email)}
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	return customer, nil
}

// Validate re-applies core invariants for persistence.
func (c *Customer) Validate() error {
	if c.ID == uuid.Nil {
		return ErrInvalidID
	}
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if c.Email != "" && !strings.Contains(c.Email, "@") {
		return ErrInvalidEmail
	}
	return nil
}
