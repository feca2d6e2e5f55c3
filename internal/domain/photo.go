package domain

import "time"

// PhotoType distinguishes intake photos from completion photos.
type PhotoType string

const (
	PhotoTypeInitial PhotoType = "INITIAL"
	PhotoTypeFinal   PhotoType = "FINAL"
)

// Photo references an externally hosted image owned by exactly one ticket.
// Rows are removed together with their ticket.
type Photo struct {
	ID        string
	TicketID  string
	Type      PhotoType
	URL       string
	CreatedAt time.Time
}
