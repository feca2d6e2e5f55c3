package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fixpoint-labs/repair-shop-service/internal/domain"
	"github.com/fixpoint-labs/repair-shop-service/internal/events"
	"github.com/fixpoint-labs/repair-shop-service/internal/observability"
	"github.com/fixpoint-labs/repair-shop-service/internal/repository"
	apperrors "github.com/fixpoint-labs/repair-shop-service/pkg/util"
)

// TicketService coordinates the ticket lifecycle after intake.
type TicketService struct {
	tickets    repository.TicketRepository
	users      repository.UserRepository
	photos     repository.PhotoRepository
	changes    repository.TicketChangeRepository
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
}

// TicketDependencies bundles repositories for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	UserRepo   repository.UserRepository
	PhotoRepo  repository.PhotoRepository
	ChangeRepo repository.TicketChangeRepository
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		users:      deps.UserRepo,
		photos:     deps.PhotoRepo,
		changes:    deps.ChangeRepo,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
	}
}

// allowedTransitions is the full lifecycle: forward to the next state, or
// cancellation from any non-terminal state. Terminal states have no exits.
var allowedTransitions = map[domain.TicketStatus][]domain.TicketStatus{
	domain.TicketStatusPending:    {domain.TicketStatusInProgress, domain.TicketStatusCancelled},
	domain.TicketStatusInProgress: {domain.TicketStatusFinished, domain.TicketStatusCancelled},
	domain.TicketStatusFinished:   {},
	domain.TicketStatusCancelled:  {},
}

func isValidTransition(current, next domain.TicketStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// GetTicket fetches a ticket with its photos.
func (s *TicketService) GetTicket(ctx context.Context, ticketID string) (*domain.Ticket, []domain.Photo, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("ticket", map[string]any{"id": ticketID})
		}
		return nil, nil, err
	}
	photos, err := s.photos.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, nil, err
	}
	return ticket, photos, nil
}

// TicketListFilter describes dashboard/admin listing filters.
type TicketListFilter struct {
	Statuses     []domain.TicketStatus
	Priorities   []domain.TicketPriority
	TechnicianID *string
	CustomerID   *string
	CategoryID   *string
	SearchTerm   *string
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
	Limit        int
	Offset       int
}

// ListTickets returns tickets matching the filter.
func (s *TicketService) ListTickets(ctx context.Context, filter TicketListFilter) ([]domain.Ticket, error) {
	return s.tickets.ListWithFilter(ctx, repository.TicketFilter{
		Statuses:     filter.Statuses,
		Priorities:   filter.Priorities,
		TechnicianID: filter.TechnicianID,
		CustomerID:   filter.CustomerID,
		CategoryID:   filter.CategoryID,
		SearchTerm:   filter.SearchTerm,
		CreatedFrom:  filter.CreatedFrom,
		CreatedTo:    filter.CreatedTo,
		Limit:        filter.Limit,
		Offset:       filter.Offset,
	})
}

// UpdateStatus moves the ticket through the state machine. Cancellation
// requires a non-empty reason; terminal states reject every transition.
func (s *TicketService) UpdateStatus(ctx context.Context, actor *domain.User, ticketID string, newStatus domain.TicketStatus, reason string) (*domain.Ticket, error) {
	ticket, err := s.loadForUpdate(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !isValidTransition(ticket.Status, newStatus) {
		return nil, apperrors.NewConflict("invalid status transition", map[string]any{
			"from": ticket.Status,
			"to":   newStatus,
		})
	}
	reason = strings.TrimSpace(reason)
	if newStatus == domain.TicketStatusCancelled && reason == "" {
		return nil, apperrors.NewValidationError("cancellation reason required", nil)
	}

	oldStatus := ticket.Status
	ticket.Status = newStatus
	if newStatus == domain.TicketStatusCancelled {
		ticket.CancellationReason = reason
	}
	if newStatus.IsTerminal() {
		now := time.Now()
		ticket.ClosedAt = &now
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	s.metrics.StatusChanged(string(newStatus))
	s.recordChange(ctx, actor, ticket.ID, domain.ChangeTypeStatus,
		map[string]any{"status": oldStatus},
		map[string]any{"status": newStatus, "reason": reason})
	s.publish(ctx, actor, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
			Reason:    reason,
		},
	})
	return ticket, nil
}

// UpdatePriority changes the triage level on an open ticket.
func (s *TicketService) UpdatePriority(ctx context.Context, actor *domain.User, ticketID string, newPriority domain.TicketPriority) (*domain.Ticket, error) {
	ticket, err := s.loadForUpdate(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	oldPriority := ticket.Priority
	ticket.Priority = newPriority
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	s.recordChange(ctx, actor, ticket.ID, domain.ChangeTypePriority,
		map[string]any{"priority": oldPriority},
		map[string]any{"priority": newPriority})
	return ticket, nil
}

// AssignTechnician sets or clears the technician on an open ticket.
func (s *TicketService) AssignTechnician(ctx context.Context, actor *domain.User, ticketID string, technicianID *string) (*domain.Ticket, error) {
	ticket, err := s.loadForUpdate(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if technicianID != nil {
		technician, err := s.users.GetByID(ctx, *technicianID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("technician", map[string]any{"id": *technicianID})
			}
			return nil, err
		}
		if technician.Role != domain.RoleTechnician || !technician.Active {
			return nil, apperrors.NewValidationError("user is not an active technician", nil)
		}
	}

	old := ticket.TechnicianID
	ticket.TechnicianID = technicianID
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	s.recordChange(ctx, actor, ticket.ID, domain.ChangeTypeTechnician,
		map[string]any{"technician_id": old},
		map[string]any{"technician_id": technicianID})
	s.publish(ctx, actor, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: ticket.ID,
		Payload:  events.TicketAssignedPayload{TechnicianID: technicianID},
	})
	return ticket, nil
}

// SaveCosts records labor and parts costs. The persisted total is always
// labor plus parts; tax only enters at invoice-render time. Once a nonzero
// total is saved the fields are locked for technicians; admins may still
// correct them from the back office.
func (s *TicketService) SaveCosts(ctx context.Context, actor *domain.User, ticketID string, laborCost, partsCost float64, includeIVA bool, appliedRate *float64) (*domain.Ticket, error) {
	if laborCost < 0 || partsCost < 0 {
		return nil, apperrors.NewValidationError("costs cannot be negative", nil)
	}
	ticket, err := s.loadForUpdate(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.CostsLocked() && (actor == nil || actor.Role != domain.RoleAdmin) {
		return nil, apperrors.NewForbidden("costs already saved; only an admin may edit them")
	}

	old := map[string]any{"labor_cost": ticket.LaborCost, "parts_cost": ticket.PartsCost}
	ticket.LaborCost = laborCost
	ticket.PartsCost = partsCost
	ticket.TotalCost = laborCost + partsCost
	ticket.IncludeIVA = includeIVA
	ticket.AppliedIVAPercentage = appliedRate

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	s.recordChange(ctx, actor, ticket.ID, domain.ChangeTypeCosts, old,
		map[string]any{"labor_cost": laborCost, "parts_cost": partsCost, "total_cost": ticket.TotalCost})
	return ticket, nil
}

// SaveClosingFields persists the technician's wrap-up notes ahead of the
// invoice/signature flow, independent of the final status change.
func (s *TicketService) SaveClosingFields(ctx context.Context, ticketID, technicianNotes string, isRepaired bool) (*domain.Ticket, error) {
	ticket, err := s.loadForUpdate(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	ticket.TechnicianNotes = strings.TrimSpace(technicianNotes)
	ticket.IsRepaired = isRepaired
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// AttachSignature stores the captured signature URL exactly once. A second
// capture is rejected; callers can only regenerate the already-signed document.
func (s *TicketService) AttachSignature(ctx context.Context, ticketID, signatureURL string) (*domain.Ticket, error) {
	if strings.TrimSpace(signatureURL) == "" {
		return nil, apperrors.NewValidationError("signature url required", nil)
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": ticketID})
		}
		return nil, err
	}
	if ticket.SignatureURL != "" {
		return nil, apperrors.NewConflict("ticket already signed", nil)
	}
	ticket.SignatureURL = signatureURL
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// UpdateInvoiceOverrides sets the billing identity fields that take
// precedence over the customer snapshot on the rendered invoice.
func (s *TicketService) UpdateInvoiceOverrides(ctx context.Context, ticketID, name, taxID, email, address string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": ticketID})
		}
		return nil, err
	}
	ticket.InvoiceName = strings.TrimSpace(name)
	ticket.InvoiceTaxID = strings.TrimSpace(taxID)
	ticket.InvoiceEmail = strings.TrimSpace(email)
	ticket.InvoiceAddress = strings.TrimSpace(address)
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// DeleteTicket removes a ticket and, via the schema, its photos.
func (s *TicketService) DeleteTicket(ctx context.Context, ticketID string) error {
	if err := s.tickets.Delete(ctx, ticketID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("ticket", map[string]any{"id": ticketID})
		}
		return err
	}
	return nil
}

// ListChanges returns the audit trail for a ticket.
func (s *TicketService) ListChanges(ctx context.Context, ticketID string, limit, offset int) ([]domain.TicketChange, error) {
	return s.changes.ListByTicket(ctx, ticketID, limit, offset)
}

// loadForUpdate fetches the ticket and rejects edits on terminal states,
// which freeze status, priority and technician on every surface.
func (s *TicketService) loadForUpdate(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": ticketID})
		}
		return nil, err
	}
	if ticket.Status.IsTerminal() {
		return nil, apperrors.NewConflict("ticket is closed", map[string]any{"status": ticket.Status})
	}
	return ticket, nil
}

func (s *TicketService) recordChange(ctx context.Context, actor *domain.User, ticketID string, changeType domain.TicketChangeType, oldValue, newValue map[string]any) {
	if s.changes == nil {
		return
	}
	entry := &domain.TicketChange{
		TicketID:   ticketID,
		ChangeType: changeType,
		OldValue:   oldValue,
		NewValue:   newValue,
	}
	if actor != nil {
		entry.ChangedByID = &actor.ID
	}
	_ = s.changes.Create(ctx, entry)
}

func (s *TicketService) publish(ctx context.Context, actor *domain.User, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if actor != nil {
		event.ActorID = &actor.ID
	}
	_ = s.dispatcher.Publish(ctx, event)
}
