package dto

import (
	"time"

	"github.com/fixpoint-labs/repair-shop-service/internal/domain"
)

// TicketSummary is the dashboard listing row.
type TicketSummary struct {
	ID            string                `json:"id"`
	TicketNumber  int                   `json:"ticket_number"`
	Status        domain.TicketStatus   `json:"status"`
	Priority      domain.TicketPriority `json:"priority"`
	CustomerName  string                `json:"customer_name"`
	CustomerPhone string                `json:"customer_phone"`
	DeviceModel   string                `json:"device_model"`
	TechnicianID  *string               `json:"technician_id"`
	TotalCost     float64               `json:"total_cost"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// TicketDetailResponse provides full ticket info.
type TicketDetailResponse struct {
	ID               string                `json:"id"`
	TicketNumber     int                   `json:"ticket_number"`
	Status           domain.TicketStatus   `json:"status"`
	Priority         domain.TicketPriority `json:"priority"`
	CustomerID       string                `json:"customer_id"`
	CustomerName     string                `json:"customer_name"`
	CustomerPhone    string                `json:"customer_phone"`
	CustomerAddress  string                `json:"customer_address"`
	BrandID          *string               `json:"brand_id"`
	CategoryID       *string               `json:"category_id"`
	DeviceModel      string                `json:"device_model"`
	SerialNumber     string                `json:"serial_number"`
	IssueDescription string                `json:"issue_description"`
	TriageData       []string              `json:"triage_data"`
	TechnicianID     *string               `json:"technician_id"`

	LaborCost            float64  `json:"labor_cost"`
	PartsCost            float64  `json:"parts_cost"`
	TotalCost            float64  `json:"total_cost"`
	IncludeIVA           bool     `json:"include_iva"`
	AppliedIVAPercentage *float64 `json:"applied_iva_percentage"`

	TechnicianNotes    string `json:"technician_notes"`
	IsRepaired         bool   `json:"is_repaired"`
	CancellationReason string `json:"cancellation_reason"`
	SignatureURL       string `json:"signature_url"`

	InvoiceName    string `json:"invoice_name"`
	InvoiceTaxID   string `json:"invoice_tax_id"`
	InvoiceEmail   string `json:"invoice_email"`
	InvoiceAddress string `json:"invoice_address"`

	Photos []PhotoResponse `json:"photos"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	ClosedAt  *time.Time `json:"closed_at"`
}

// PhotoResponse metadata.
type PhotoResponse struct {
	ID        string           `json:"id"`
	Type      domain.PhotoType `json:"type"`
	URL       string           `json:"url"`
	CreatedAt time.Time        `json:"created_at"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status domain.TicketStatus `json:"status"`
	Reason string              `json:"reason"`
}

// UpdatePriorityRequest payload.
type UpdatePriorityRequest struct {
	Priority domain.TicketPriority `json:"priority"`
}

// AssignTechnicianRequest payload; a null id clears the assignment.
type AssignTechnicianRequest struct {
	TechnicianID *string `json:"technician_id"`
}

// SaveCostsRequest payload.
type SaveCostsRequest struct {
	LaborCost            float64  `json:"labor_cost"`
	PartsCost            float64  `json:"parts_cost"`
	IncludeIVA           bool     `json:"include_iva"`
	AppliedIVAPercentage *float64 `json:"applied_iva_percentage"`
}

// ClosingFieldsRequest payload.
type ClosingFieldsRequest struct {
	TechnicianNotes string `json:"technician_notes"`
	IsRepaired      bool   `json:"is_repaired"`
}

// InvoiceOverridesRequest payload.
type InvoiceOverridesRequest struct {
	InvoiceName    string `json:"invoice_name"`
	InvoiceTaxID   string `json:"invoice_tax_id"`
	InvoiceEmail   string `json:"invoice_email"`
	InvoiceAddress string `json:"invoice_address"`
}

// TicketChangeResponse is one audit trail entry.
type TicketChangeResponse struct {
	ID          string         `json:"id"`
	ChangeType  string         `json:"change_type"`
	OldValue    map[string]any `json:"old_value"`
	NewValue    map[string]any `json:"new_value"`
	ChangedByID *string        `json:"changed_by_id"`
	CreatedAt   time.Time      `json:"created_at"`
}
