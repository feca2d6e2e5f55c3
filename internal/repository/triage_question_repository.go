package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fixpoint-labs/repair-shop-service/internal/domain"
)

// TriageQuestionRepository encapsulates diagnostic checklist persistence.
type TriageQuestionRepository interface {
	Create(ctx context.Context, question *domain.TriageQuestion) error
	Update(ctx context.Context, question *domain.TriageQuestion) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.TriageQuestion, error)
	GetByIDs(ctx context.Context, ids []string) ([]domain.TriageQuestion, error)
	ListForCategory(ctx context.Context, categoryID string) ([]domain.TriageQuestion, error)
	ListAll(ctx context.Context) ([]domain.TriageQuestion, error)
}

type triageQuestionRepository struct {
	pool *pgxpool.Pool
}

// NewTriageQuestionRepository returns a Postgres-backed implementation.
func NewTriageQuestionRepository(pool *pgxpool.Pool) TriageQuestionRepository {
	return &triageQuestionRepository{pool: pool}
}

const questionColumns = `id, text, trigger_priority, category_id, created_at, updated_at`

func (r *triageQuestionRepository) Create(ctx context.Context, question *domain.TriageQuestion) error {
	const query = `
        INSERT INTO triage_questions (text, trigger_priority, category_id)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`
	return querier(ctx, r.pool).QueryRow(ctx, query,
		question.Text,
		question.TriggerPriority,
		question.CategoryID,
	).Scan(&question.ID, &question.CreatedAt, &question.UpdatedAt)
}

func (r *triageQuestionRepository) Update(ctx context.Context, question *domain.TriageQuestion) error {
	const query = `
        UPDATE triage_questions SET text=$1, trigger_priority=$2, category_id=$3, updated_at=NOW()
        WHERE id=$4`
	cmd, err := querier(ctx, r.pool).Exec(ctx, query,
		question.Text,
		question.TriggerPriority,
		question.CategoryID,
		question.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *triageQuestionRepository) Delete(ctx context.Context, id string) error {
	cmd, err := querier(ctx, r.pool).Exec(ctx, `DELETE FROM triage_questions WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *triageQuestionRepository) GetByID(ctx context.Context, id string) (*domain.TriageQuestion, error) {
	query := `SELECT ` + questionColumns + ` FROM triage_questions WHERE id=$1`
	var question domain.TriageQuestion
	if err := querier(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&question.ID,
		&question.Text,
		&question.TriggerPriority,
		&question.CategoryID,
		&question.CreatedAt,
		&question.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &question, nil
}

// GetByIDs resolves the checked question ids submitted by the intake form.
// Ids with no matching row are simply absent from the result.
func (r *triageQuestionRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.TriageQuestion, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + questionColumns + ` FROM triage_questions WHERE id = ANY($1)`
	rows, err := querier(ctx, r.pool).Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanQuestions(rows)
}

// ListForCategory returns global questions plus those tied to the category.
func (r *triageQuestionRepository) ListForCategory(ctx context.Context, categoryID string) ([]domain.TriageQuestion, error) {
	query := `SELECT ` + questionColumns + ` FROM triage_questions
        WHERE category_id IS NULL OR category_id=$1
        ORDER BY created_at ASC`
	rows, err := querier(ctx, r.pool).Query(ctx, query, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanQuestions(rows)
}

func (r *triageQuestionRepository) ListAll(ctx context.Context) ([]domain.TriageQuestion, error) {
	query := `SELECT ` + questionColumns + ` FROM triage_questions ORDER BY created_at ASC`
	rows, err := querier(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanQuestions(rows)
}

func scanQuestions(rows pgx.Rows) ([]domain.TriageQuestion, error) {
	var result []domain.TriageQuestion
	for rows.Next() {
		var question domain.TriageQuestion
		if err := rows.Scan(
			&question.ID,
			&question.Text,
			&question.TriggerPriority,
			&question.CategoryID,
			&question.CreatedAt,
			&question.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, question)
	}
	return result, rows.Err()
}
