package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fixpoint-labs/repair-shop-service/internal/domain"
)

// TicketChangeRepository persists the audit trail of ticket mutations.
type TicketChangeRepository interface {
	Create(ctx context.Context, change *domain.TicketChange) error
	ListByTicket(ctx context.Context, ticketID string, limit, offset int) ([]domain.TicketChange, error)
}

type ticketChangeRepository struct {
	pool *pgxpool.Pool
}

// NewTicketChangeRepository returns a Postgres-backed implementation.
func NewTicketChangeRepository(pool *pgxpool.Pool) TicketChangeRepository {
	return &ticketChangeRepository{pool: pool}
}

func (r *ticketChangeRepository) Create(ctx context.Context, change *domain.TicketChange) error {
	const query = `
        INSERT INTO ticket_changes (ticket_id, changed_by_id, change_type, old_value, new_value)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`
	return querier(ctx, r.pool).QueryRow(ctx, query,
		change.TicketID,
		change.ChangedByID,
		change.ChangeType,
		change.OldValue,
		change.NewValue,
	).Scan(&change.ID, &change.CreatedAt)
}

func (r *ticketChangeRepository) ListByTicket(ctx context.Context, ticketID string, limit, offset int) ([]domain.TicketChange, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT id, ticket_id, changed_by_id, change_type, old_value, new_value, created_at
        FROM ticket_changes WHERE ticket_id=$1
        ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := querier(ctx, r.pool).Query(ctx, query, ticketID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TicketChange
	for rows.Next() {
		var change domain.TicketChange
		if err := rows.Scan(
			&change.ID,
			&change.TicketID,
			&change.ChangedByID,
			&change.ChangeType,
			&change.OldValue,
			&change.NewValue,
			&change.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, change)
	}
	return result, rows.Err()
}
