package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fixpoint-labs/repair-shop-service/internal/domain"
)

// BrandRepository encapsulates brand master data persistence.
type BrandRepository interface {
	Create(ctx context.Context, brand *domain.Brand) error
	Update(ctx context.Context, brand *domain.Brand) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Brand, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Brand, error)
}

type brandRepository struct {
	pool *pgxpool.Pool
}

// NewBrandRepository returns a Postgres-backed implementation.
func NewBrandRepository(pool *pgxpool.Pool) BrandRepository {
	return &brandRepository{pool: pool}
}

func (r *brandRepository) Create(ctx context.Context, brand *domain.Brand) error {
	const query = `
        INSERT INTO brands (name, is_active)
        VALUES ($1, $2)
        RETURNING id, created_at, updated_at`
	return querier(ctx, r.pool).QueryRow(ctx, query, brand.Name, brand.IsActive).
		Scan(&brand.ID, &brand.CreatedAt, &brand.UpdatedAt)
}

func (r *brandRepository) Update(ctx context.Context, brand *domain.Brand) error {
	const query = `UPDATE brands SET name=$1, is_active=$2, updated_at=NOW() WHERE id=$3`
	cmd, err := querier(ctx, r.pool).Exec(ctx, query, brand.Name, brand.IsActive, brand.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *brandRepository) Delete(ctx context.Context, id string) error {
	cmd, err := querier(ctx, r.pool).Exec(ctx, `DELETE FROM brands WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *brandRepository) GetByID(ctx context.Context, id string) (*domain.Brand, error) {
	const query = `SELECT id, name, is_active, created_at, updated_at FROM brands WHERE id=$1`
	var brand domain.Brand
	if err := querier(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&brand.ID, &brand.Name, &brand.IsActive, &brand.CreatedAt, &brand.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *brandRepository) List(ctx context.Context, activeOnly bool) ([]domain.Brand, error) {
	query := `SELECT id, name, is_active, created_at, updated_at FROM brands ORDER BY name ASC`
	if activeOnly {
		query = `SELECT id, name, is_active, created_at, updated_at FROM brands WHERE is_active ORDER BY name ASC`
	}
	rows, err := querier(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Brand
	for rows.Next() {
		var brand domain.Brand
		if err := rows.Scan(&brand.ID, &brand.Name, &brand.IsActive, &brand.CreatedAt, &brand.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, brand)
	}
	return result, rows.Err()
}

// CategoryRepository encapsulates category master data persistence.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Category, error)
}

type categoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository returns a Postgres-backed implementation.
func NewCategoryRepository(pool *pgxpool.Pool) CategoryRepository {
	return &categoryRepository{pool: pool}
}

const categoryColumns = `id, name, prefix, is_active, hero_image_url, image_url, created_at, updated_at`

func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	const query = `
        INSERT INTO categories (name, prefix, is_active, hero_image_url, image_url)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`
	return querier(ctx, r.pool).QueryRow(ctx, query,
		category.Name,
		category.Prefix,
		category.IsActive,
		category.HeroImageURL,
		category.ImageURL,
	).Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
}

func (r *categoryRepository) Update(ctx context.Context, category *domain.Category) error {
	const query = `
        UPDATE categories SET name=$1, prefix=$2, is_active=$3, hero_image_url=$4, image_url=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := querier(ctx, r.pool).Exec(ctx, query,
		category.Name,
		category.Prefix,
		category.IsActive,
		category.HeroImageURL,
		category.ImageURL,
		category.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	cmd, err := querier(ctx, r.pool).Exec(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id=$1`
	var category domain.Category
	if err := querier(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&category.ID,
		&category.Name,
		&category.Prefix,
		&category.IsActive,
		&category.HeroImageURL,
		&category.ImageURL,
		&category.CreatedAt,
		&category.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) List(ctx context.Context, activeOnly bool) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY name ASC`
	if activeOnly {
		query = `SELECT ` + categoryColumns + ` FROM categories WHERE is_active ORDER BY name ASC`
	}
	rows, err := querier(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Category
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Prefix,
			&category.IsActive,
			&category.HeroImageURL,
			&category.ImageURL,
			&category.CreatedAt,
			&category.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, category)
	}
	return result, rows.Err()
}
