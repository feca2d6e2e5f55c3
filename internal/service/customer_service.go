package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/fixpoint-labs/repair-shop-service/internal/domain"
	"github.com/fixpoint-labs/repair-shop-service/internal/repository"
	apperrors "github.com/fixpoint-labs/repair-shop-service/pkg/util"
)

// CustomerService manages the back-office customer directory. The intake-side
// find-or-create lives in IntakeService; this covers everything staff do
// afterwards.
type CustomerService struct {
	customers repository.CustomerRepository
	tickets   repository.TicketRepository
}

// NewCustomerService constructs the service.
func NewCustomerService(customers repository.CustomerRepository, tickets repository.TicketRepository) *CustomerService {
	return &CustomerService{customers: customers, tickets: tickets}
}

// Search paginates customers matching a free-text term over name, phone and
// document number.
func (s *CustomerService) Search(ctx context.Context, term string, limit, offset int) ([]domain.Customer, error) {
	return s.customers.Search(ctx, term, limit, offset)
}

// GetCustomer fetches a customer by id.
func (s *CustomerService) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("customer", map[string]any{"id": id})
		}
		return nil, err
	}
	return customer, nil
}

// CustomerUpdateInput carries editable customer fields.
type CustomerUpdateInput struct {
	Name           string
	Phone          string
	Email          string
	DocumentNumber string
	Address        string
}

// UpdateCustomer edits the live customer record. Ticket snapshots stay as
// captured at intake time.
func (s *CustomerService) UpdateCustomer(ctx context.Context, id string, input CustomerUpdateInput) (*domain.Customer, error) {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	phone := strings.TrimSpace(input.Phone)
	if name == "" || phone == "" {
		return nil, apperrors.NewValidationError("name and phone are required", nil)
	}

	customer.Name = name
	customer.Phone = phone
	customer.Email = strings.TrimSpace(input.Email)
	customer.DocumentNumber = strings.TrimSpace(input.DocumentNumber)
	customer.Address = strings.TrimSpace(input.Address)

	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer removes a customer that has no tickets. Customers referenced
// by tickets are kept so historical records stay resolvable.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id string) error {
	tickets, err := s.tickets.ListWithFilter(ctx, repository.TicketFilter{CustomerID: &id, Limit: 1})
	if err != nil {
		return err
	}
	if len(tickets) > 0 {
		return apperrors.NewConflict("customer has tickets", map[string]any{"id": id})
	}
	if err := s.customers.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("customer", map[string]any{"id": id})
		}
		return err
	}
	return nil
}

// TicketsForCustomer lists the tickets opened for a customer, newest first.
func (s *CustomerService) TicketsForCustomer(ctx context.Context, customerID string, limit, offset int) ([]domain.Ticket, error) {
	return s.tickets.ListWithFilter(ctx, repository.TicketFilter{CustomerID: &customerID, Limit: limit, Offset: offset})
}
