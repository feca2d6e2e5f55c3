package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fixpoint-labs/repair-shop-service/internal/api/dto"
	"github.com/fixpoint-labs/repair-shop-service/internal/domain"
	"github.com/fixpoint-labs/repair-shop-service/internal/service"
	apperrors "github.com/fixpoint-labs/repair-shop-service/pkg/util"
)

// IntakeHandler serves the public triage form: the submission itself plus the
// master data the form needs to render. None of these routes require a session.
type IntakeHandler struct {
	intake   *service.IntakeService
	catalog  *service.CatalogService
	settings *service.SettingsService
}

// NewIntakeHandler constructs handler.
func NewIntakeHandler(intake *service.IntakeService, catalog *service.CatalogService, settings *service.SettingsService) *IntakeHandler {
	return &IntakeHandler{intake: intake, catalog: catalog, settings: settings}
}

// CreateTicket POST /public/intake.
func (h *IntakeHandler) CreateTicket(c *fiber.Ctx) error {
	var req dto.IntakeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.intake.CreateTicket(c.UserContext(), service.IntakeInput{
		CustomerID:       req.CustomerID,
		CustomerName:     req.CustomerName,
		CustomerPhone:    req.CustomerPhone,
		CustomerEmail:    req.CustomerEmail,
		CustomerDocument: req.CustomerDocument,
		CustomerAddress:  req.CustomerAddress,

		BrandID:          req.BrandID,
		CategoryID:       req.CategoryID,
		DeviceModel:      req.DeviceModel,
		SerialNumber:     req.SerialNumber,
		IssueDescription: req.IssueDescription,

		AnsweredQuestionIDs: req.AnsweredQuestionIDs,
		LegacyFlags: domain.LegacyTriageFlags{
			GasLeak:        req.GasLeak,
			WaterLeak:      req.WaterLeak,
			ShortCircuit:   req.ShortCircuit,
			PartialFailure: req.PartialFailure,
			LoudNoise:      req.LoudNoise,
		},
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.IntakeResponse{
		TicketID:     result.Ticket.ID,
		TicketNumber: result.Ticket.TicketNumber,
		FriendlyID:   result.FriendlyID,
		Priority:     string(result.Ticket.Priority),
		WhatsAppLink: result.WhatsAppLink,
	}})
}

// ListBrands GET /public/brands.
func (h *IntakeHandler) ListBrands(c *fiber.Ctx) error {
	brands, err := h.catalog.ListBrands(c.UserContext(), true)
	if err != nil {
		return err
	}
	items := make([]dto.BrandResponse, 0, len(brands))
	for i := range brands {
		items = append(items, brandResponse(&brands[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListCategories GET /public/categories.
func (h *IntakeHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.catalog.ListCategories(c.UserContext(), true)
	if err != nil {
		return err
	}
	items := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		items = append(items, categoryResponse(&categories[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Checklist GET /public/categories/:id/questions.
func (h *IntakeHandler) Checklist(c *fiber.Ctx) error {
	questions, err := h.catalog.ChecklistForCategory(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.TriageQuestionResponse, 0, len(questions))
	for i := range questions {
		items = append(items, questionResponse(&questions[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// SiteSettings GET /public/site.
func (h *IntakeHandler) SiteSettings(c *fiber.Ctx) error {
	settings, err := h.settings.SiteSettings(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.SiteSettingsResponse{
		SiteName:      settings.SiteName,
		Tagline:       settings.Tagline,
		HeroImageURL:  settings.HeroImageURL,
		LogoURL:       settings.LogoURL,
		ContactPhone:  settings.ContactPhone,
		WhatsAppPhone: settings.WhatsAppPhone,
		FooterText:    settings.FooterText,
		UpdatedAt:     settings.UpdatedAt,
	}})
}
