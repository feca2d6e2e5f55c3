package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fixpoint-labs/repair-shop-service/internal/api/dto"
	"github.com/fixpoint-labs/repair-shop-service/internal/domain"
	"github.com/fixpoint-labs/repair-shop-service/internal/service"
	apperrors "github.com/fixpoint-labs/repair-shop-service/pkg/util"
)

// CatalogHandler manages the admin master data screens.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListBrands GET /admin/brands.
func (h *CatalogHandler) ListBrands(c *fiber.Ctx) error {
	brands, err := h.catalog.ListBrands(c.UserContext(), c.QueryBool("active_only"))
	if err != nil {
		return err
	}
	items := make([]dto.BrandResponse, 0, len(brands))
	for i := range brands {
		items = append(items, brandResponse(&brands[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateBrand POST /admin/brands.
func (h *CatalogHandler) CreateBrand(c *fiber.Ctx) error {
	var req dto.BrandRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	brand, err := h.catalog.CreateBrand(c.UserContext(), req.Name, req.IsActive)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": brandResponse(brand)})
}

// UpdateBrand PUT /admin/brands/:id.
func (h *CatalogHandler) UpdateBrand(c *fiber.Ctx) error {
	var req dto.BrandRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	brand, err := h.catalog.UpdateBrand(c.UserContext(), c.Params("id"), req.Name, req.IsActive)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": brandResponse(brand)})
}

// DeleteBrand DELETE /admin/brands/:id.
func (h *CatalogHandler) DeleteBrand(c *fiber.Ctx) error {
	if err := h.catalog.DeleteBrand(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListCategories GET /admin/categories.
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.catalog.ListCategories(c.UserContext(), c.QueryBool("active_only"))
	if err != nil {
		return err
	}
	items := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		items = append(items, categoryResponse(&categories[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateCategory POST /admin/categories.
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	category, err := h.catalog.CreateCategory(c.UserContext(), categoryInput(req))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": categoryResponse(category)})
}

// UpdateCategory PUT /admin/categories/:id.
func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	category, err := h.catalog.UpdateCategory(c.UserContext(), c.Params("id"), categoryInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": categoryResponse(category)})
}

// DeleteCategory DELETE /admin/categories/:id.
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	if err := h.catalog.DeleteCategory(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListQuestions GET /admin/questions.
func (h *CatalogHandler) ListQuestions(c *fiber.Ctx) error {
	questions, err := h.catalog.ListQuestions(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.TriageQuestionResponse, 0, len(questions))
	for i := range questions {
		items = append(items, questionResponse(&questions[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateQuestion POST /admin/questions.
func (h *CatalogHandler) CreateQuestion(c *fiber.Ctx) error {
	var req dto.TriageQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	question, err := h.catalog.CreateQuestion(c.UserContext(), service.QuestionInput{
		Text:            req.Text,
		TriggerPriority: req.TriggerPriority,
		CategoryID:      req.CategoryID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": questionResponse(question)})
}

// UpdateQuestion PUT /admin/questions/:id.
func (h *CatalogHandler) UpdateQuestion(c *fiber.Ctx) error {
	var req dto.TriageQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	question, err := h.catalog.UpdateQuestion(c.UserContext(), c.Params("id"), service.QuestionInput{
		Text:            req.Text,
		TriggerPriority: req.TriggerPriority,
		CategoryID:      req.CategoryID,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": questionResponse(question)})
}

// DeleteQuestion DELETE /admin/questions/:id.
func (h *CatalogHandler) DeleteQuestion(c *fiber.Ctx) error {
	if err := h.catalog.DeleteQuestion(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func categoryInput(req dto.CategoryRequest) service.CategoryInput {
	return service.CategoryInput{
		Name:         req.Name,
		Prefix:       req.Prefix,
		IsActive:     req.IsActive,
		HeroImageURL: req.HeroImageURL,
		ImageURL:     req.ImageURL,
	}
}

func brandResponse(brand *domain.Brand) dto.BrandResponse {
	return dto.BrandResponse{
		ID:        brand.ID,
		Name:      brand.Name,
		IsActive:  brand.IsActive,
		CreatedAt: brand.CreatedAt,
		UpdatedAt: brand.UpdatedAt,
	}
}

func categoryResponse(category *domain.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:           category.ID,
		Name:         category.Name,
		Prefix:       category.Prefix,
		IsActive:     category.IsActive,
		HeroImageURL: category.HeroImageURL,
		ImageURL:     category.ImageURL,
		CreatedAt:    category.CreatedAt,
		UpdatedAt:    category.UpdatedAt,
	}
}

func questionResponse(question *domain.TriageQuestion) dto.TriageQuestionResponse {
	return dto.TriageQuestionResponse{
		ID:              question.ID,
		Text:            question.Text,
		TriggerPriority: question.TriggerPriority,
		CategoryID:      question.CategoryID,
		CreatedAt:       question.CreatedAt,
		UpdatedAt:       question.UpdatedAt,
	}
}
