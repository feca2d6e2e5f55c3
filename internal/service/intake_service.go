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

// maxNumberRetries bounds retries when two intakes race for the same
// sequential ticket number and one hits the unique index.
const maxNumberRetries = 3

// IntakeService handles the public triage form: customer resolution, priority
// computation and ticket creation as one transactional unit.
type IntakeService struct {
	tx         repository.TxManager
	customers  repository.CustomerRepository
	tickets    repository.TicketRepository
	categories repository.CategoryRepository
	questions  repository.TriageQuestionRepository
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
}

// IntakeDependencies bundles requirements for the intake service.
type IntakeDependencies struct {
	TxManager    repository.TxManager
	CustomerRepo repository.CustomerRepository
	TicketRepo   repository.TicketRepository
	CategoryRepo repository.CategoryRepository
	QuestionRepo repository.TriageQuestionRepository
	Dispatcher   events.Dispatcher
	Metrics      *observability.Metrics
}

// NewIntakeService constructs the service.
func NewIntakeService(deps IntakeDependencies) *IntakeService {
	return &IntakeService{
		tx:         deps.TxManager,
		customers:  deps.CustomerRepo,
		tickets:    deps.TicketRepo,
		categories: deps.CategoryRepo,
		questions:  deps.QuestionRepo,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
	}
}

// IntakeInput describes a submitted triage form.
type IntakeInput struct {
	CustomerID       *string
	CustomerName     string
	CustomerPhone    string
	CustomerEmail    string
	CustomerDocument string
	CustomerAddress  string

	BrandID          *string
	CategoryID       *string
	DeviceModel      string
	SerialNumber     string
	IssueDescription string

	AnsweredQuestionIDs []string
	LegacyFlags         domain.LegacyTriageFlags
}

// IntakeResult is returned after a successful intake.
type IntakeResult struct {
	Ticket       *domain.Ticket
	FriendlyID   string
	WhatsAppLink string
}

// CreateTicket runs the full intake: resolve the customer, compute priority
// from the answered checklist, and insert the ticket with the next sequential
// number. Customer resolution and ticket insertion share one transaction so a
// failure cannot leave an orphaned customer behind.
func (s *IntakeService) CreateTicket(ctx context.Context, input IntakeInput) (*IntakeResult, error) {
	if err := validateIntake(input); err != nil {
		return nil, err
	}

	answered, err := s.questions.GetByIDs(ctx, dedupeIDs(input.AnsweredQuestionIDs))
	if err != nil {
		return nil, err
	}

	priority, triageData := s.triage(answered, input.LegacyFlags)

	var category *domain.Category
	if input.CategoryID != nil {
		category, err = s.categories.GetByID(ctx, *input.CategoryID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("category", map[string]any{"id": *input.CategoryID})
			}
			return nil, err
		}
	}

	var ticket *domain.Ticket
	for attempt := 0; ; attempt++ {
		ticket, err = s.createWithinTx(ctx, input, priority, triageData)
		if err == nil {
			break
		}
		if repository.IsUniqueViolation(err) && attempt < maxNumberRetries {
			continue
		}
		return nil, err
	}

	s.metrics.TicketCreated()

	prefix := ""
	if category != nil {
		prefix = category.Prefix
	}
	friendlyID := FriendlyTicketID(prefix, ticket.TicketNumber, ticket.ID)
	link := BuildWhatsAppLink(ticket.CustomerPhone, intakeConfirmationMessage(friendlyID, ticket.CustomerName))

	s.publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			TicketNumber:  ticket.TicketNumber,
			FriendlyID:    friendlyID,
			Priority:      ticket.Priority,
			CustomerName:  ticket.CustomerName,
			CustomerPhone: ticket.CustomerPhone,
		},
	})

	return &IntakeResult{Ticket: ticket, FriendlyID: friendlyID, WhatsAppLink: link}, nil
}

func (s *IntakeService) createWithinTx(ctx context.Context, input IntakeInput, priority domain.TicketPriority, triageData []string) (*domain.Ticket, error) {
	var ticket *domain.Ticket
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		customer, err := s.resolveCustomer(ctx, input)
		if err != nil {
			return err
		}

		ticket = &domain.Ticket{
			Status:           domain.TicketStatusPending,
			Priority:         priority,
			CustomerID:       customer.ID,
			CustomerName:     firstNonEmpty(input.CustomerName, customer.Name),
			CustomerPhone:    firstNonEmpty(input.CustomerPhone, customer.Phone),
			CustomerAddress:  firstNonEmpty(input.CustomerAddress, customer.Address),
			BrandID:          input.BrandID,
			CategoryID:       input.CategoryID,
			DeviceModel:      strings.TrimSpace(input.DeviceModel),
			SerialNumber:     strings.TrimSpace(input.SerialNumber),
			IssueDescription: strings.TrimSpace(input.IssueDescription),
			TriageData:       triageData,
		}
		return s.tickets.Create(ctx, ticket)
	})
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

// resolveCustomer implements find-or-create: an explicit operator selection
// wins outright, then a phone/document match, then a fresh row. At most one
// customer is created per intake.
func (s *IntakeService) resolveCustomer(ctx context.Context, input IntakeInput) (*domain.Customer, error) {
	if input.CustomerID != nil && *input.CustomerID != "" {
		customer, err := s.customers.GetByID(ctx, *input.CustomerID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("customer", map[string]any{"id": *input.CustomerID})
			}
			return nil, err
		}
		return customer, nil
	}

	existing, err := s.customers.FindByPhoneOrDocument(ctx, strings.TrimSpace(input.CustomerPhone), strings.TrimSpace(input.CustomerDocument))
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	customer := &domain.Customer{
		Name:           strings.TrimSpace(input.CustomerName),
		Phone:          strings.TrimSpace(input.CustomerPhone),
		Email:          strings.TrimSpace(input.CustomerEmail),
		DocumentNumber: strings.TrimSpace(input.CustomerDocument),
		Address:        strings.TrimSpace(input.CustomerAddress),
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// triage computes the priority and the stored record of answered texts. The
// legacy fixed flags only apply when no dynamic answers were given.
func (s *IntakeService) triage(answered []domain.TriageQuestion, flags domain.LegacyTriageFlags) (domain.TicketPriority, []string) {
	if len(answered) > 0 {
		texts := make([]string, 0, len(answered))
		for _, question := range answered {
			texts = append(texts, question.Text)
		}
		return ComputePriority(answered), texts
	}
	if !flags.Empty() {
		return ComputeLegacyPriority(flags), legacyFlagTexts(flags)
	}
	return domain.TicketPriorityLow, []string{}
}

func (s *IntakeService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func validateIntake(input IntakeInput) error {
	details := map[string]any{}
	hasExplicitCustomer := input.CustomerID != nil && *input.CustomerID != ""
	if !hasExplicitCustomer {
		if strings.TrimSpace(input.CustomerName) == "" {
			details["customer_name"] = "required"
		}
		if strings.TrimSpace(input.CustomerPhone) == "" {
			details["customer_phone"] = "required"
		}
	}
	if strings.TrimSpace(input.IssueDescription) == "" {
		details["issue_description"] = "required"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("missing required fields", details)
	}
	return nil
}

// dedupeIDs drops duplicates, blanks and malformed entries from submitted
// question ids. Anything that is not a uuid would make Postgres reject the
// whole lookup, and the form contract is that bad ids are ignored, not fatal.
// Unknown-but-well-formed ids are handled later by the lookup simply not
// returning them.
func dedupeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, err := uuid.Parse(id); err != nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

func firstNonEmpty(values ...string) string {
	for _, val := range values {
		if strings.TrimSpace(val) != "" {
			return strings.TrimSpace(val)
		}
	}
	return ""
}
