package dto

import "time"

// CustomerResponse is the back-office customer view.
type CustomerResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	DocumentNumber string    `json:"document_number"`
	Address        string    `json:"address"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UpdateCustomerRequest payload.
type UpdateCustomerRequest struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	DocumentNumber string `json:"document_number"`
	Address        string `json:"address"`
}
