package domain

import "time"

// TicketChangeType enumerates audited ticket mutations.
type TicketChangeType string

const (
	ChangeTypeStatus     TicketChangeType = "status"
	ChangeTypePriority   TicketChangeType = "priority"
	ChangeTypeTechnician TicketChangeType = "technician"
	ChangeTypeCosts      TicketChangeType = "costs"
)

// TicketChange is an audit entry recorded alongside ticket mutations.
type TicketChange struct {
	ID          string
	TicketID    string
	ChangedByID *string
	ChangeType  TicketChangeType
	OldValue    map[string]any
	NewValue    map[string]any
	CreatedAt   time.Time
}
