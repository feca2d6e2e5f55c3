package domain

import "time"

// Customer is a shared lookup record deduplicated by phone (and optionally
// document number) at intake time.
type Customer struct {
	ID             string
	Name           string
	Phone          string
	Email          string
	DocumentNumber string
	Address        string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
