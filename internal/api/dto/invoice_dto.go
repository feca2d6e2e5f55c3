package dto

import "time"

// InvoicePartyResponse billed-to identity block.
type InvoicePartyResponse struct {
	Name    string `json:"name"`
	TaxID   string `json:"tax_id"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// InvoiceCompanyResponse issuing company block.
type InvoiceCompanyResponse struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	TaxID     string `json:"tax_id"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	LegalText string `json:"legal_text"`
}

// InvoiceResponse is the full billing document every render surface consumes.
type InvoiceResponse struct {
	TicketID     string    `json:"ticket_id"`
	TicketNumber int       `json:"ticket_number"`
	FriendlyID   string    `json:"friendly_id"`
	IssuedAt     time.Time `json:"issued_at"`

	Company InvoiceCompanyResponse `json:"company"`
	BillTo  InvoicePartyResponse   `json:"bill_to"`

	DeviceModel      string `json:"device_model"`
	IssueDescription string `json:"issue_description"`
	TechnicianNotes  string `json:"technician_notes"`
	IsRepaired       bool   `json:"is_repaired"`

	LaborCost  float64 `json:"labor_cost"`
	PartsCost  float64 `json:"parts_cost"`
	Subtotal   float64 `json:"subtotal"`
	IncludeIVA bool    `json:"include_iva"`
	IVARate    float64 `json:"iva_rate"`
	IVAAmount  float64 `json:"iva_amount"`
	Total      float64 `json:"total"`

	CurrencyCode       string `json:"currency_code"`
	FormattedLabor     string `json:"formatted_labor"`
	FormattedParts     string `json:"formatted_parts"`
	FormattedSubtotal  string `json:"formatted_subtotal"`
	FormattedIVAAmount string `json:"formatted_iva_amount"`
	FormattedTotal     string `json:"formatted_total"`
}
