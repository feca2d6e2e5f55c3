package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/fixpoint-labs/repair-shop-service/internal/domain"
	"github.com/fixpoint-labs/repair-shop-service/internal/events"
)

func TestSweepStale(t *testing.T) {
	tickets := newFakeTicketRepo()
	dispatcher := events.NewInMemoryDispatcher()

	var received []events.Event
	dispatcher.Subscribe(events.EventTicketReminderDue, func(ctx context.Context, event events.Event) error {
		received = append(received, event)
		return nil
	})

	seed := func(status domain.TicketStatus, age time.Duration) {
		ticket := &domain.Ticket{Status: status, CustomerPhone: "+34 600 111 222"}
		if err := tickets.Create(context.Background(), ticket); err != nil {
			t.Fatal(err)
		}
		stored := tickets.tickets[ticket.ID]
		stored.UpdatedAt = time.Now().Add(-age)
	}

	seed(domain.TicketStatusPending, 100*time.Hour)    // stale
	seed(domain.TicketStatusInProgress, 80*time.Hour)  // stale
	seed(domain.TicketStatusPending, time.Hour)        // fresh
	seed(domain.TicketStatusFinished, 200*time.Hour)   // terminal, never reminded
	seed(domain.TicketStatusCancelled, 200*time.Hour)  // terminal, never reminded

	svc := NewReminderService(tickets, dispatcher, nil, zap.NewNop(), 72*time.Hour)
	queued, err := svc.SweepStale(context.Background())
	if err != nil {
		t.Fatalf("SweepStale: %v", err)
	}
	if queued != 2 {
		t.Errorf("queued = %d, want 2", queued)
	}
	if len(received) != 2 {
		t.Fatalf("events = %d, want 2", len(received))
	}
	for _, event := range received {
		payload, ok := event.Payload.(events.TicketReminderDuePayload)
		if !ok {
			t.Fatalf("payload type = %T", event.Payload)
		}
		if payload.CustomerPhone != "+34 600 111 222" {
			t.Errorf("customer phone = %s", payload.CustomerPhone)
		}
		if payload.StaleSince.IsZero() {
			t.Error("stale since not set")
		}
	}
}

func TestSweepStaleNothingStale(t *testing.T) {
	tickets := newFakeTicketRepo()
	svc := NewReminderService(tickets, events.NewInMemoryDispatcher(), nil, zap.NewNop(), 72*time.Hour)

	queued, err := svc.SweepStale(context.Background())
	if err != nil {
		t.Fatalf("SweepStale: %v", err)
	}
	if queued != 0 {
		t.Errorf("queued = %d, want 0", queued)
	}
}
