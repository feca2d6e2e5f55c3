package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fixpoint-labs/repair-shop-service/internal/domain"
)

// TicketFilter captures listing parameters for the dashboard and admin views.
type TicketFilter struct {
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

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	GetByNumber(ctx context.Context, number int) (*domain.Ticket, error)
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
	ListStale(ctx context.Context, olderThan time.Time) ([]domain.Ticket, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, ticket_number, status, priority, customer_id, customer_name,
        customer_phone, customer_address, brand_id, category_id, device_model, serial_number,
        issue_description, triage_data, technician_id, labor_cost, parts_cost, total_cost,
        include_iva, applied_iva_percentage, technician_notes, is_repaired, cancellation_reason,
        signature_url, invoice_name, invoice_tax_id, invoice_email, invoice_address,
        created_at, updated_at, closed_at`

// Create inserts the ticket and allocates the next sequential number in the
// same statement. The unique index on ticket_number turns a concurrent
// allocation of the same value into a constraint error the caller can retry.
func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (status, priority, customer_id, customer_name, customer_phone,
            customer_address, brand_id, category_id, device_model, serial_number,
            issue_description, triage_data, technician_id, include_iva, applied_iva_percentage,
            ticket_number)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,
            (SELECT COALESCE(MAX(ticket_number), 0) + 1 FROM tickets))
        RETURNING id, ticket_number, created_at, updated_at`
	return querier(ctx, r.pool).QueryRow(ctx, query,
		ticket.Status,
		ticket.Priority,
		ticket.CustomerID,
		ticket.CustomerName,
		ticket.CustomerPhone,
		ticket.CustomerAddress,
		ticket.BrandID,
		ticket.CategoryID,
		ticket.DeviceModel,
		ticket.SerialNumber,
		ticket.IssueDescription,
		ticket.TriageData,
		ticket.TechnicianID,
		ticket.IncludeIVA,
		ticket.AppliedIVAPercentage,
	).Scan(&ticket.ID, &ticket.TicketNumber, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET status=$1, priority=$2, technician_id=$3, labor_cost=$4,
            parts_cost=$5, total_cost=$6, include_iva=$7, applied_iva_percentage=$8,
            technician_notes=$9, is_repaired=$10, cancellation_reason=$11, signature_url=$12,
            invoice_name=$13, invoice_tax_id=$14, invoice_email=$15, invoice_address=$16,
            closed_at=$17, updated_at=NOW()
        WHERE id=$18`
	cmd, err := querier(ctx, r.pool).Exec(ctx, query,
		ticket.Status,
		ticket.Priority,
		ticket.TechnicianID,
		ticket.LaborCost,
		ticket.PartsCost,
		ticket.TotalCost,
		ticket.IncludeIVA,
		ticket.AppliedIVAPercentage,
		ticket.TechnicianNotes,
		ticket.IsRepaired,
		ticket.CancellationReason,
		ticket.SignatureURL,
		ticket.InvoiceName,
		ticket.InvoiceTaxID,
		ticket.InvoiceEmail,
		ticket.InvoiceAddress,
		ticket.ClosedAt,
		ticket.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes the ticket; owned photos cascade at the schema level.
func (r *ticketRepository) Delete(ctx context.Context, id string) error {
	cmd, err := querier(ctx, r.pool).Exec(ctx, `DELETE FROM tickets WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE id=$1`, ticketColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *ticketRepository) GetByNumber(ctx context.Context, number int) (*domain.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE ticket_number=$1`, ticketColumns)
	return r.fetchSingle(ctx, query, number)
}

func (r *ticketRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Ticket, error) {
	row := querier(ctx, r.pool).QueryRow(ctx, query, arg)
	return scanTicket(row)
}

func (r *ticketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Priorities) > 0 {
		placeholders := make([]string, len(filter.Priorities))
		for i, pr := range filter.Priorities {
			args = append(args, pr)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("priority IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.TechnicianID != nil {
		args = append(args, *filter.TechnicianID)
		clauses = append(clauses, fmt.Sprintf("technician_id=$%d", len(args)))
	}
	if filter.CustomerID != nil {
		args = append(args, *filter.CustomerID)
		clauses = append(clauses, fmt.Sprintf("customer_id=$%d", len(args)))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		clauses = append(clauses, fmt.Sprintf("category_id=$%d", len(args)))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			"(LOWER(customer_name) LIKE %s OR LOWER(device_model) LIKE %s OR LOWER(issue_description) LIKE %s)",
			placeholder, placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE %s ORDER BY ticket_number DESC LIMIT %d OFFSET %d`,
		ticketColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := querier(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

// ListStale returns non-terminal tickets not updated since olderThan, used by
// the reminder sweep.
func (r *ticketRepository) ListStale(ctx context.Context, olderThan time.Time) ([]domain.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets
        WHERE status IN ('PENDING', 'IN_PROGRESS') AND updated_at < $1
        ORDER BY updated_at ASC`, ticketColumns)
	rows, err := querier(ctx, r.pool).Query(ctx, query, olderThan)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func scanTicket(row pgx.Row) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := row.Scan(
		&ticket.ID,
		&ticket.TicketNumber,
		&ticket.Status,
		&ticket.Priority,
		&ticket.CustomerID,
		&ticket.CustomerName,
		&ticket.CustomerPhone,
		&ticket.CustomerAddress,
		&ticket.BrandID,
		&ticket.CategoryID,
		&ticket.DeviceModel,
		&ticket.SerialNumber,
		&ticket.IssueDescription,
		&ticket.TriageData,
		&ticket.TechnicianID,
		&ticket.LaborCost,
		&ticket.PartsCost,
		&ticket.TotalCost,
		&ticket.IncludeIVA,
		&ticket.AppliedIVAPercentage,
		&ticket.TechnicianNotes,
		&ticket.IsRepaired,
		&ticket.CancellationReason,
		&ticket.SignatureURL,
		&ticket.InvoiceName,
		&ticket.InvoiceTaxID,
		&ticket.InvoiceEmail,
		&ticket.InvoiceAddress,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
		&ticket.ClosedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *ticket)
	}
	return result, rows.Err()
}
