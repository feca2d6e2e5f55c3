package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/fixpoint-labs/repair-shop-service/internal/repository"
	apperrors "github.com/fixpoint-labs/repair-shop-service/pkg/util"
)

// InvoiceService assembles the complete billing document for a ticket. The
// screen preview, the print view and the PDF renderer all consume this exact
// structure; none of them re-derives any amount.
type InvoiceService struct {
	tickets    repository.TicketRepository
	customers  repository.CustomerRepository
	categories repository.CategoryRepository
	settings   repository.SettingsRepository
}

// NewInvoiceService constructs the service.
func NewInvoiceService(tickets repository.TicketRepository, customers repository.CustomerRepository, categories repository.CategoryRepository, settings repository.SettingsRepository) *InvoiceService {
	return &InvoiceService{
		tickets:    tickets,
		customers:  customers,
		categories: categories,
		settings:   settings,
	}
}

// InvoiceParty is the billed-to identity after override resolution.
type InvoiceParty struct {
	Name    string
	TaxID   string
	Email   string
	Address string
}

// InvoiceCompany is the issuing company block.
type InvoiceCompany struct {
	Name      string
	Address   string
	TaxID     string
	Phone     string
	Email     string
	LegalText string
}

// InvoiceDocument is the rendered-surface-agnostic billing payload.
type InvoiceDocument struct {
	TicketID     string
	TicketNumber int
	FriendlyID   string
	IssuedAt     time.Time

	Company InvoiceCompany
	BillTo  InvoiceParty

	DeviceModel      string
	IssueDescription string
	TechnicianNotes  string
	IsRepaired       bool

	LaborCost  float64
	PartsCost  float64
	IncludeIVA bool
	Totals     InvoiceTotals

	CurrencyCode       string
	FormattedLabor     string
	FormattedParts     string
	FormattedSubtotal  string
	FormattedIVAAmount string
	FormattedTotal     string
}

// BuildInvoice resolves settings, overrides and totals for a ticket.
func (s *InvoiceService) BuildInvoice(ctx context.Context, ticketID string) (*InvoiceDocument, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": ticketID})
		}
		return nil, err
	}

	company, err := s.settings.GetCompany(ctx)
	if err != nil {
		return nil, err
	}

	prefix := ""
	if ticket.CategoryID != nil {
		category, err := s.categories.GetByID(ctx, *ticket.CategoryID)
		if err == nil {
			prefix = category.Prefix
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
	}

	customerEmail := ""
	if customer, err := s.customers.GetByID(ctx, ticket.CustomerID); err == nil {
		customerEmail = customer.Email
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	rate := ResolveIVARate(ticket, company)
	totals := ComputeInvoiceTotals(ticket.LaborCost, ticket.PartsCost, ticket.IncludeIVA, rate)
	symbol := company.CurrencySymbol

	issuedAt := time.Now()
	if ticket.ClosedAt != nil {
		issuedAt = *ticket.ClosedAt
	}

	return &InvoiceDocument{
		TicketID:     ticket.ID,
		TicketNumber: ticket.TicketNumber,
		FriendlyID:   FriendlyTicketID(prefix, ticket.TicketNumber, ticket.ID),
		IssuedAt:     issuedAt,

		Company: InvoiceCompany{
			Name:      company.CompanyName,
			Address:   company.Address,
			TaxID:     company.TaxID,
			Phone:     company.Phone,
			Email:     company.Email,
			LegalText: company.LegalText,
		},
		BillTo: InvoiceParty{
			Name:    firstNonEmpty(ticket.InvoiceName, ticket.CustomerName),
			TaxID:   ticket.InvoiceTaxID,
			Email:   firstNonEmpty(ticket.InvoiceEmail, customerEmail),
			Address: firstNonEmpty(ticket.InvoiceAddress, ticket.CustomerAddress),
		},

		DeviceModel:      ticket.DeviceModel,
		IssueDescription: ticket.IssueDescription,
		TechnicianNotes:  ticket.TechnicianNotes,
		IsRepaired:       ticket.IsRepaired,

		LaborCost:  ticket.LaborCost,
		PartsCost:  ticket.PartsCost,
		IncludeIVA: ticket.IncludeIVA,
		Totals:     totals,

		CurrencyCode:       company.CurrencyCode,
		FormattedLabor:     FormatMoney(ticket.LaborCost, symbol),
		FormattedParts:     FormatMoney(ticket.PartsCost, symbol),
		FormattedSubtotal:  FormatMoney(totals.Subtotal, symbol),
		FormattedIVAAmount: FormatMoney(totals.IVAAmount, symbol),
		FormattedTotal:     FormatMoney(totals.Total, symbol),
	}, nil
}
