package dto

// IntakeRequest is the public triage form submission.
type IntakeRequest struct {
	CustomerID       *string `json:"customer_id,omitempty"`
	CustomerName     string  `json:"customer_name"`
	CustomerPhone    string  `json:"customer_phone"`
	CustomerEmail    string  `json:"customer_email"`
	CustomerDocument string  `json:"customer_document"`
	CustomerAddress  string  `json:"customer_address"`

	BrandID          *string `json:"brand_id,omitempty"`
	CategoryID       *string `json:"category_id,omitempty"`
	DeviceModel      string  `json:"device_model"`
	SerialNumber     string  `json:"serial_number"`
	IssueDescription string  `json:"issue_description"`

	AnsweredQuestionIDs []string `json:"answered_question_ids"`

	// Legacy fixed checkboxes, honored when no dynamic answers are sent.
	GasLeak        bool `json:"gas_leak"`
	WaterLeak      bool `json:"water_leak"`
	ShortCircuit   bool `json:"short_circuit"`
	PartialFailure bool `json:"partial_failure"`
	LoudNoise      bool `json:"loud_noise"`
}

// IntakeResponse confirms a created ticket to the public form.
type IntakeResponse struct {
	TicketID     string `json:"ticket_id"`
	TicketNumber int    `json:"ticket_number"`
	FriendlyID   string `json:"friendly_id"`
	Priority     string `json:"priority"`
	WhatsAppLink string `json:"whatsapp_link"`
}
