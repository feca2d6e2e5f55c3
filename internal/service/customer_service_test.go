package service

import (
	"context"
	"testing"

	"github.com/fixpoint-labs/repair-shop-service/internal/domain"
)

func newCustomerFixture() (*CustomerService, *fakeCustomerRepo, *fakeTicketRepo) {
	customers := newFakeCustomerRepo()
	tickets := newFakeTicketRepo()
	return NewCustomerService(customers, tickets), customers, tickets
}

func TestDeleteCustomerWithTickets(t *testing.T) {
	svc, customers, tickets := newCustomerFixture()

	customer := &domain.Customer{Name: "Marta Ruiz", Phone: "+34 600 111 222"}
	if err := customers.Create(context.Background(), customer); err != nil {
		t.Fatal(err)
	}
	ticket := &domain.Ticket{Status: domain.TicketStatusPending, CustomerID: customer.ID}
	if err := tickets.Create(context.Background(), ticket); err != nil {
		t.Fatal(err)
	}

	err := svc.DeleteCustomer(context.Background(), customer.ID)
	if code := domainErrCode(t, err); code != "CONFLICT" {
		t.Errorf("error code = %s, want CONFLICT", code)
	}
	if _, err := customers.GetByID(context.Background(), customer.ID); err != nil {
		t.Error("customer should still exist after rejected delete")
	}
}

func TestDeleteCustomerWithoutTickets(t *testing.T) {
	svc, customers, _ := newCustomerFixture()

	customer := &domain.Customer{Name: "Marta Ruiz", Phone: "+34 600 111 222"}
	if err := customers.Create(context.Background(), customer); err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteCustomer(context.Background(), customer.ID); err != nil {
		t.Fatalf("DeleteCustomer: %v", err)
	}

	err := svc.DeleteCustomer(context.Background(), customer.ID)
	if code := domainErrCode(t, err); code != "NOT_FOUND" {
		t.Errorf("error code = %s, want NOT_FOUND", code)
	}
}

func TestUpdateCustomerValidation(t *testing.T) {
	svc, customers, _ := newCustomerFixture()

	customer := &domain.Customer{Name: "Marta Ruiz", Phone: "+34 600 111 222"}
	if err := customers.Create(context.Background(), customer); err != nil {
		t.Fatal(err)
	}

	_, err := svc.UpdateCustomer(context.Background(), customer.ID, CustomerUpdateInput{Name: "", Phone: "+34 600 111 222"})
	if code := domainErrCode(t, err); code != "VALIDATION_FAILED" {
		t.Errorf("error code = %s, want VALIDATION_FAILED", code)
	}

	updated, err := svc.UpdateCustomer(context.Background(), customer.ID, CustomerUpdateInput{
		Name:  " Marta Ruiz Pérez ",
		Phone: "+34 600 111 222",
		Email: "marta@example.com",
	})
	if err != nil {
		t.Fatalf("UpdateCustomer: %v", err)
	}
	if updated.Name != "Marta Ruiz Pérez" {
		t.Errorf("name = %q, want trimmed", updated.Name)
	}
}
