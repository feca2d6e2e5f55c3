package events

import (
	"time"

	"github.com/fixpoint-labs/repair-shop-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketAssigned      EventType = "ticket_assigned"
	EventTicketReminderDue   EventType = "ticket_reminder_due"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	ActorID   *string     `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	TicketNumber  int                   `json:"ticket_number"`
	FriendlyID    string                `json:"friendly_id"`
	Priority      domain.TicketPriority `json:"priority"`
	CustomerName  string                `json:"customer_name"`
	CustomerPhone string                `json:"customer_phone"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
	Reason    string              `json:"reason,omitempty"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	TechnicianID *string `json:"technician_id,omitempty"`
}

// TicketReminderDuePayload payload.
type TicketReminderDuePayload struct {
	TicketNumber  int                 `json:"ticket_number"`
	Status        domain.TicketStatus `json:"status"`
	CustomerPhone string              `json:"customer_phone"`
	StaleSince    time.Time           `json:"stale_since"`
}
