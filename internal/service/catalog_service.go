package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/fixpoint-labs/repair-shop-service/internal/domain"
	"github.com/fixpoint-labs/repair-shop-service/internal/repository"
	apperrors "github.com/fixpoint-labs/repair-shop-service/pkg/util"
)

// CatalogService manages brand/category master data and the triage checklist.
type CatalogService struct {
	brands     repository.BrandRepository
	categories repository.CategoryRepository
	questions  repository.TriageQuestionRepository
}

// NewCatalogService constructs the service.
func NewCatalogService(brands repository.BrandRepository, categories repository.CategoryRepository, questions repository.TriageQuestionRepository) *CatalogService {
	return &CatalogService{brands: brands, categories: categories, questions: questions}
}

// ListBrands returns brands, optionally only the active ones.
func (s *CatalogService) ListBrands(ctx context.Context, activeOnly bool) ([]domain.Brand, error) {
	return s.brands.List(ctx, activeOnly)
}

// CreateBrand adds a brand.
func (s *CatalogService) CreateBrand(ctx context.Context, name string, isActive bool) (*domain.Brand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("brand name required", nil)
	}
	brand := &domain.Brand{Name: name, IsActive: isActive}
	if err := s.brands.Create(ctx, brand); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("brand already exists", map[string]any{"name": name})
		}
		return nil, err
	}
	return brand, nil
}

// UpdateBrand renames or toggles a brand.
func (s *CatalogService) UpdateBrand(ctx context.Context, id, name string, isActive bool) (*domain.Brand, error) {
	brand, err := s.brands.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("brand", map[string]any{"id": id})
		}
		return nil, err
	}
	if name = strings.TrimSpace(name); name != "" {
		brand.Name = name
	}
	brand.IsActive = isActive
	if err := s.brands.Update(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

// DeleteBrand removes a brand.
func (s *CatalogService) DeleteBrand(ctx context.Context, id string) error {
	if err := s.brands.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("brand", map[string]any{"id": id})
		}
		return err
	}
	return nil
}

// ListCategories returns categories, optionally only the active ones.
func (s *CatalogService) ListCategories(ctx context.Context, activeOnly bool) ([]domain.Category, error) {
	return s.categories.List(ctx, activeOnly)
}

// CategoryInput describes a category create/update payload.
type CategoryInput struct {
	Name         string
	Prefix       string
	IsActive     bool
	HeroImageURL string
	ImageURL     string
}

// CreateCategory adds a category.
func (s *CatalogService) CreateCategory(ctx context.Context, input CategoryInput) (*domain.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("category name required", nil)
	}
	category := &domain.Category{
		Name:         name,
		Prefix:       strings.ToUpper(strings.TrimSpace(input.Prefix)),
		IsActive:     input.IsActive,
		HeroImageURL: input.HeroImageURL,
		ImageURL:     input.ImageURL,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("category already exists", map[string]any{"name": name})
		}
		return nil, err
	}
	return category, nil
}

// UpdateCategory edits a category.
func (s *CatalogService) UpdateCategory(ctx context.Context, id string, input CategoryInput) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("category", map[string]any{"id": id})
		}
		return nil, err
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		category.Name = name
	}
	category.Prefix = strings.ToUpper(strings.TrimSpace(input.Prefix))
	category.IsActive = input.IsActive
	category.HeroImageURL = input.HeroImageURL
	category.ImageURL = input.ImageURL
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category.
func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("category", map[string]any{"id": id})
		}
		return err
	}
	return nil
}

// ChecklistForCategory returns the questions the intake form shows for a
// category: the global ones plus that category's own.
func (s *CatalogService) ChecklistForCategory(ctx context.Context, categoryID string) ([]domain.TriageQuestion, error) {
	return s.questions.ListForCategory(ctx, categoryID)
}

// ListQuestions returns every triage question for the admin screen.
func (s *CatalogService) ListQuestions(ctx context.Context) ([]domain.TriageQuestion, error) {
	return s.questions.ListAll(ctx)
}

// QuestionInput describes a triage question create/update payload.
type QuestionInput struct {
	Text            string
	TriggerPriority domain.TriggerPriority
	CategoryID      *string
}

func validTriggerPriority(p domain.TriggerPriority) bool {
	switch p {
	case domain.TriggerPriorityNone, domain.TriggerPriorityMedium, domain.TriggerPriorityHigh:
		return true
	}
	return false
}

// CreateQuestion adds a triage question.
func (s *CatalogService) CreateQuestion(ctx context.Context, input QuestionInput) (*domain.TriageQuestion, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, apperrors.NewValidationError("question text required", nil)
	}
	if !validTriggerPriority(input.TriggerPriority) {
		return nil, apperrors.NewValidationError("invalid trigger priority", map[string]any{"trigger_priority": input.TriggerPriority})
	}
	question := &domain.TriageQuestion{
		Text:            text,
		TriggerPriority: input.TriggerPriority,
		CategoryID:      input.CategoryID,
	}
	if err := s.questions.Create(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

// UpdateQuestion edits a triage question.
func (s *CatalogService) UpdateQuestion(ctx context.Context, id string, input QuestionInput) (*domain.TriageQuestion, error) {
	question, err := s.questions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("triage question", map[string]any{"id": id})
		}
		return nil, err
	}
	if text := strings.TrimSpace(input.Text); text != "" {
		question.Text = text
	}
	if input.TriggerPriority != "" {
		if !validTriggerPriority(input.TriggerPriority) {
			return nil, apperrors.NewValidationError("invalid trigger priority", map[string]any{"trigger_priority": input.TriggerPriority})
		}
		question.TriggerPriority = input.TriggerPriority
	}
	question.CategoryID = input.CategoryID
	if err := s.questions.Update(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

// DeleteQuestion removes a triage question.
func (s *CatalogService) DeleteQuestion(ctx context.Context, id string) error {
	if err := s.questions.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("triage question", map[string]any{"id": id})
		}
		return err
	}
	return nil
}
