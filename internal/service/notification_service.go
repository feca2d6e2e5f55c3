package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fixpoint-labs/repair-shop-service/internal/domain"
	"github.com/fixpoint-labs/repair-shop-service/internal/events"
)

// NotificationService turns domain events into customer-facing wa.me links.
// Messaging is link-only: the service never calls a messaging API, it builds
// prefilled links a staff member opens by hand, and logs each intent so the
// outbox is visible in the application log.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService constructs the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes the service to the events it reacts to.
func (s *NotificationService) RegisterHandlers() {
	s.dispatcher.Subscribe(events.EventTicketCreated, s.onTicketCreated)
	s.dispatcher.Subscribe(events.EventTicketStatusChanged, s.onStatusChanged)
	s.dispatcher.Subscribe(events.EventTicketReminderDue, s.onReminderDue)
}

func (s *NotificationService) onTicketCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketCreatedPayload)
	if !ok {
		return nil
	}
	link := BuildWhatsAppLink(payload.CustomerPhone, intakeConfirmationMessage(payload.FriendlyID, payload.CustomerName))
	s.logger.Info("notification intent",
		zap.String("kind", "ticket_created"),
		zap.String("ticket_id", event.TicketID),
		zap.String("friendly_id", payload.FriendlyID),
		zap.String("whatsapp_link", link),
	)
	return nil
}

func (s *NotificationService) onStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketStatusChangedPayload)
	if !ok {
		return nil
	}
	s.logger.Info("notification intent",
		zap.String("kind", "status_changed"),
		zap.String("ticket_id", event.TicketID),
		zap.String("from", string(payload.OldStatus)),
		zap.String("to", string(payload.NewStatus)),
	)
	return nil
}

func (s *NotificationService) onReminderDue(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketReminderDuePayload)
	if !ok {
		return nil
	}
	link := BuildWhatsAppLink(payload.CustomerPhone, reminderMessage(payload.TicketNumber, payload.Status))
	s.logger.Info("notification intent",
		zap.String("kind", "reminder_due"),
		zap.String("ticket_id", event.TicketID),
		zap.Int("ticket_number", payload.TicketNumber),
		zap.String("whatsapp_link", link),
	)
	return nil
}

func reminderMessage(ticketNumber int, status domain.TicketStatus) string {
	if status == domain.TicketStatusPending {
		return fmt.Sprintf("Hello, your repair ticket #%d is still awaiting review. We will let you know as soon as a technician picks it up.", ticketNumber)
	}
	return fmt.Sprintf("Hello, your repair ticket #%d is still being worked on. We will let you know as soon as it is ready.", ticketNumber)
}
