package domain

import "time"

// TicketStatus enumerates the repair job lifecycle.
type TicketStatus string

const (
	TicketStatusPending    TicketStatus = "PENDING"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusFinished   TicketStatus = "FINISHED"
	TicketStatusCancelled  TicketStatus = "CANCELLED"
)

// IsTerminal reports whether the status admits no further transitions.
func (s TicketStatus) IsTerminal() bool {
	return s == TicketStatusFinished || s == TicketStatusCancelled
}

// TicketPriority enumerates triage urgency.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "LOW"
	TicketPriorityMedium TicketPriority = "MEDIUM"
	TicketPriorityHigh   TicketPriority = "HIGH"
)

// Ticket is the central work-order aggregate. Customer contact fields are a
// snapshot taken at intake time, independent of the live Customer row.
type Ticket struct {
	ID           string
	TicketNumber int
	Status       TicketStatus
	Priority     TicketPriority

	CustomerID      string
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string

	BrandID          *string
	CategoryID       *string
	DeviceModel      string
	SerialNumber     string
	IssueDescription string
	TriageData       []string

	TechnicianID *string

	LaborCost            float64
	PartsCost            float64
	TotalCost            float64
	IncludeIVA           bool
	AppliedIVAPercentage *float64

	TechnicianNotes    string
	IsRepaired         bool
	CancellationReason string
	SignatureURL       string

	InvoiceName    string
	InvoiceTaxID   string
	InvoiceEmail   string
	InvoiceAddress string

	CreatedAt time.Time
	UpdatedAt time.Time
	ClosedAt  *time.Time
}

// CostsLocked reports whether the technician-editable cost window has closed.
// Once a nonzero combined cost is saved the fields become admin-only.
func (t *Ticket) CostsLocked() bool {
	return t.TotalCost > 0
}
