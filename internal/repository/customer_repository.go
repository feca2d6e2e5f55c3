package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fixpoint-labs/repair-shop-service/internal/domain"
)

// CustomerRepository encapsulates customer persistence.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	Update(ctx context.Context, customer *domain.Customer) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	FindByPhoneOrDocument(ctx context.Context, phone, document string) (*domain.Customer, error)
	Search(ctx context.Context, term string, limit, offset int) ([]domain.Customer, error)
}

type customerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository returns a Postgres-backed implementation.
func NewCustomerRepository(pool *pgxpool.Pool) CustomerRepository {
	return &customerRepository{pool: pool}
}

const customerColumns = `id, name, phone, email, document_number, address, created_at, updated_at`

func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	const query = `
        INSERT INTO customers (name, phone, email, document_number, address)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`
	return querier(ctx, r.pool).QueryRow(ctx, query,
		customer.Name,
		customer.Phone,
		customer.Email,
		customer.DocumentNumber,
		customer.Address,
	).Scan(&customer.ID, &customer.CreatedAt, &customer.UpdatedAt)
}

func (r *customerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	const query = `
        UPDATE customers SET name=$1, phone=$2, email=$3, document_number=$4, address=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := querier(ctx, r.pool).Exec(ctx, query,
		customer.Name,
		customer.Phone,
		customer.Email,
		customer.DocumentNumber,
		customer.Address,
		customer.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *customerRepository) Delete(ctx context.Context, id string) error {
	cmd, err := querier(ctx, r.pool).Exec(ctx, `DELETE FROM customers WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *customerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	query := fmt.Sprintf(`SELECT %s FROM customers WHERE id=$1`, customerColumns)
	return scanCustomer(querier(ctx, r.pool).QueryRow(ctx, query, id))
}

// FindByPhoneOrDocument is the intake dedup lookup. The document clause only
// participates when a document number was submitted.
func (r *customerRepository) FindByPhoneOrDocument(ctx context.Context, phone, document string) (*domain.Customer, error) {
	if strings.TrimSpace(document) == "" {
		query := fmt.Sprintf(`SELECT %s FROM customers WHERE phone=$1 ORDER BY created_at ASC LIMIT 1`, customerColumns)
		return scanCustomer(querier(ctx, r.pool).QueryRow(ctx, query, phone))
	}
	query := fmt.Sprintf(`SELECT %s FROM customers
        WHERE phone=$1 OR document_number=$2
        ORDER BY created_at ASC LIMIT 1`, customerColumns)
	return scanCustomer(querier(ctx, r.pool).QueryRow(ctx, query, phone, document))
}

func (r *customerRepository) Search(ctx context.Context, term string, limit, offset int) ([]domain.Customer, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	args := []any{limit, offset}
	where := "1=1"
	if strings.TrimSpace(term) != "" {
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(term))+"%")
		where = `(LOWER(name) LIKE $3 OR phone LIKE $3 OR document_number LIKE $3)`
	}
	query := fmt.Sprintf(`SELECT %s FROM customers WHERE %s ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		customerColumns, where)

	rows, err := querier(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Customer
	for rows.Next() {
		var customer domain.Customer
		if err := rows.Scan(
			&customer.ID,
			&customer.Name,
			&customer.Phone,
			&customer.Email,
			&customer.DocumentNumber,
			&customer.Address,
			&customer.CreatedAt,
			&customer.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, customer)
	}
	return result, rows.Err()
}

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var customer domain.Customer
	if err := row.Scan(
		&customer.ID,
		&customer.Name,
		&customer.Phone,
		&customer.Email,
		&customer.DocumentNumber,
		&customer.Address,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &customer, nil
}
