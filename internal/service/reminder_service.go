package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fixpoint-labs/repair-shop-service/internal/events"
	"github.com/fixpoint-labs/repair-shop-service/internal/observability"
	"github.com/fixpoint-labs/repair-shop-service/internal/repository"
)

// ReminderService finds open tickets that have sat untouched past the
// configured threshold and emits a reminder event for each. The cron worker
// invokes SweepStale on its schedule.
type ReminderService struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	staleAfter time.Duration
}

// NewReminderService constructs the service.
func NewReminderService(tickets repository.TicketRepository, dispatcher events.Dispatcher, metrics *observability.Metrics, logger *zap.Logger, staleAfter time.Duration) *ReminderService {
	if staleAfter <= 0 {
		staleAfter = 72 * time.Hour
	}
	return &ReminderService{
		tickets:    tickets,
		dispatcher: dispatcher,
		metrics:    metrics,
		logger:     logger,
		staleAfter: staleAfter,
	}
}

// SweepStale emits one reminder event per stale open ticket and returns how
// many were queued.
func (s *ReminderService) SweepStale(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(-s.staleAfter)
	stale, err := s.tickets.ListStale(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	queued := 0
	for _, ticket := range stale {
		event := events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventTicketReminderDue,
			TicketID:  ticket.ID,
			Timestamp: time.Now(),
			Payload: events.TicketReminderDuePayload{
				TicketNumber:  ticket.TicketNumber,
				Status:        ticket.Status,
				CustomerPhone: ticket.CustomerPhone,
				StaleSince:    ticket.UpdatedAt,
			},
		}
		if err := s.dispatcher.Publish(ctx, event); err != nil {
			s.logger.Warn("reminder publish failed",
				zap.String("ticket_id", ticket.ID),
				zap.Error(err),
			)
			continue
		}
		s.metrics.ReminderQueued()
		queued++
	}

	if len(stale) > 0 {
		s.logger.Info("stale ticket sweep complete",
			zap.Int("reminders", queued),
			zap.Time("cutoff", cutoff),
		)
	}
	return queued, nil
}
