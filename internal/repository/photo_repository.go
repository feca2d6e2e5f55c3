package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fixpoint-labs/repair-shop-service/internal/domain"
)

// PhotoRepository encapsulates ticket photo persistence.
type PhotoRepository interface {
	Create(ctx context.Context, photo *domain.Photo) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Photo, error)
	ListByTicket(ctx context.Context, ticketID string) ([]domain.Photo, error)
}

type photoRepository struct {
	pool *pgxpool.Pool
}

// NewPhotoRepository returns a Postgres-backed implementation.
func NewPhotoRepository(pool *pgxpool.Pool) PhotoRepository {
	return &photoRepository{pool: pool}
}

func (r *photoRepository) Create(ctx context.Context, photo *domain.Photo) error {
	const query = `
        INSERT INTO photos (ticket_id, type, url)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`
	return querier(ctx, r.pool).QueryRow(ctx, query,
		photo.TicketID,
		photo.Type,
		photo.URL,
	).Scan(&photo.ID, &photo.CreatedAt)
}

func (r *photoRepository) Delete(ctx context.Context, id string) error {
	cmd, err := querier(ctx, r.pool).Exec(ctx, `DELETE FROM photos WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *photoRepository) GetByID(ctx context.Context, id string) (*domain.Photo, error) {
	const query = `SELECT id, ticket_id, type, url, created_at FROM photos WHERE id=$1`
	var photo domain.Photo
	if err := querier(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&photo.ID, &photo.TicketID, &photo.Type, &photo.URL, &photo.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &photo, nil
}

func (r *photoRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.Photo, error) {
	const query = `SELECT id, ticket_id, type, url, created_at FROM photos WHERE ticket_id=$1 ORDER BY created_at ASC`
	rows, err := querier(ctx, r.pool).Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Photo
	for rows.Next() {
		var photo domain.Photo
		if err := rows.Scan(&photo.ID, &photo.TicketID, &photo.Type, &photo.URL, &photo.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, photo)
	}
	return result, rows.Err()
}
