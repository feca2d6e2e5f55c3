package service

import (
	"context"
	"testing"
	"time"

	"github.com/fixpoint-labs/repair-shop-service/internal/domain"
)

func newInvoiceFixture(t *testing.T) (*InvoiceService, *fakeTicketRepo, *fakeCustomerRepo, *fakeSettingsRepo) {
	t.Helper()
	tickets := newFakeTicketRepo()
	customers := newFakeCustomerRepo()
	categories := newFakeCategoryRepo()
	settings := &fakeSettingsRepo{
		company: domain.CompanySettings{
			CompanyName:    "FixPoint S.L.",
			TaxID:          "B12345678",
			IVAPercentage:  21,
			CurrencySymbol: "€",
			CurrencyCode:   "EUR",
		},
	}
	return NewInvoiceService(tickets, customers, categories, settings), tickets, customers, settings
}

func TestBuildInvoiceOverridesWin(t *testing.T) {
	svc, tickets, customers, _ := newInvoiceFixture(t)

	customer := &domain.Customer{Name: "Marta Ruiz", Phone: "+34 600 111 222", Email: "marta@example.com"}
	if err := customers.Create(context.Background(), customer); err != nil {
		t.Fatal(err)
	}

	ticket := &domain.Ticket{
		Status:          domain.TicketStatusFinished,
		CustomerID:      customer.ID,
		CustomerName:    customer.Name,
		CustomerAddress: "Calle Mayor 1",
		LaborCost:       100,
		PartsCost:       50,
		IncludeIVA:      true,
		InvoiceName:     "Ruiz Hostelería S.L.",
		InvoiceTaxID:    "B99999999",
		InvoiceAddress:  "Polígono Norte 7",
	}
	if err := tickets.Create(context.Background(), ticket); err != nil {
		t.Fatal(err)
	}

	doc, err := svc.BuildInvoice(context.Background(), ticket.ID)
	if err != nil {
		t.Fatalf("BuildInvoice: %v", err)
	}
	if doc.BillTo.Name != "Ruiz Hostelería S.L." {
		t.Errorf("bill-to name = %s, want override", doc.BillTo.Name)
	}
	if doc.BillTo.TaxID != "B99999999" {
		t.Errorf("bill-to tax id = %s, want override", doc.BillTo.TaxID)
	}
	if doc.BillTo.Address != "Polígono Norte 7" {
		t.Errorf("bill-to address = %s, want override", doc.BillTo.Address)
	}
	// no email override, so the customer record fills the gap
	if doc.BillTo.Email != "marta@example.com" {
		t.Errorf("bill-to email = %s, want customer email", doc.BillTo.Email)
	}
	if doc.Totals.Total != 181.5 {
		t.Errorf("total = %v, want 181.5", doc.Totals.Total)
	}
	if doc.FormattedTotal != "€ 181.50" {
		t.Errorf("formatted total = %q", doc.FormattedTotal)
	}
}

func TestBuildInvoiceFallsBackToSnapshot(t *testing.T) {
	svc, tickets, _, _ := newInvoiceFixture(t)

	ticket := &domain.Ticket{
		Status:          domain.TicketStatusFinished,
		CustomerID:      "customer-gone",
		CustomerName:    "Marta Ruiz",
		CustomerAddress: "Calle Mayor 1",
		LaborCost:       40,
	}
	if err := tickets.Create(context.Background(), ticket); err != nil {
		t.Fatal(err)
	}

	doc, err := svc.BuildInvoice(context.Background(), ticket.ID)
	if err != nil {
		t.Fatalf("BuildInvoice: %v", err)
	}
	if doc.BillTo.Name != "Marta Ruiz" {
		t.Errorf("bill-to name = %s, want snapshot", doc.BillTo.Name)
	}
	if doc.BillTo.Address != "Calle Mayor 1" {
		t.Errorf("bill-to address = %s, want snapshot", doc.BillTo.Address)
	}
	// IVA excluded: total equals subtotal
	if doc.Totals.Total != 40 {
		t.Errorf("total = %v, want 40", doc.Totals.Total)
	}
	if doc.Totals.IVAAmount != 0 {
		t.Errorf("iva amount = %v, want 0", doc.Totals.IVAAmount)
	}
}

func TestBuildInvoiceIssuedAtUsesClosedAt(t *testing.T) {
	svc, tickets, _, _ := newInvoiceFixture(t)

	closed := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	ticket := &domain.Ticket{
		Status:       domain.TicketStatusFinished,
		CustomerID:   "customer-1",
		CustomerName: "Marta Ruiz",
		ClosedAt:     &closed,
	}
	if err := tickets.Create(context.Background(), ticket); err != nil {
		t.Fatal(err)
	}

	doc, err := svc.BuildInvoice(context.Background(), ticket.ID)
	if err != nil {
		t.Fatalf("BuildInvoice: %v", err)
	}
	if !doc.IssuedAt.Equal(closed) {
		t.Errorf("issued at = %v, want %v", doc.IssuedAt, closed)
	}
}

func TestBuildInvoiceMissingTicket(t *testing.T) {
	svc, _, _, _ := newInvoiceFixture(t)

	_, err := svc.BuildInvoice(context.Background(), "ticket-404")
	if code := domainErrCode(t, err); code != "NOT_FOUND" {
		t.Errorf("error code = %s, want NOT_FOUND", code)
	}
}
