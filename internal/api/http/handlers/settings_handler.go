package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fixpoint-labs/repair-shop-service/internal/api/dto"
	"github.com/fixpoint-labs/repair-shop-service/internal/domain"
	"github.com/fixpoint-labs/repair-shop-service/internal/service"
	apperrors "github.com/fixpoint-labs/repair-shop-service/pkg/util"
)

// SettingsHandler manages the admin configuration screens.
type SettingsHandler struct {
	settings *service.SettingsService
}

// NewSettingsHandler constructs handler.
func NewSettingsHandler(settings *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// GetCompany GET /admin/settings/company.
func (h *SettingsHandler) GetCompany(c *fiber.Ctx) error {
	settings, err := h.settings.CompanySettings(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": companySettingsResponse(settings)})
}

// UpdateCompany PUT /admin/settings/company.
func (h *SettingsHandler) UpdateCompany(c *fiber.Ctx) error {
	var req dto.CompanySettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	settings, err := h.settings.UpdateCompanySettings(c.UserContext(), service.CompanySettingsInput{
		CompanyName:    req.CompanyName,
		Address:        req.Address,
		TaxID:          req.TaxID,
		Phone:          req.Phone,
		Email:          req.Email,
		IVAPercentage:  req.IVAPercentage,
		CurrencySymbol: req.CurrencySymbol,
		CurrencyCode:   req.CurrencyCode,
		LegalText:      req.LegalText,
		UploadEndpoint: req.UploadEndpoint,
		UploadAPIKey:   req.UploadAPIKey,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": companySettingsResponse(settings)})
}

// GetSite GET /admin/settings/site.
func (h *SettingsHandler) GetSite(c *fiber.Ctx) error {
	settings, err := h.settings.SiteSettings(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": siteSettingsResponse(settings)})
}

// UpdateSite PUT /admin/settings/site.
func (h *SettingsHandler) UpdateSite(c *fiber.Ctx) error {
	var req dto.SiteSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	settings, err := h.settings.UpdateSiteSettings(c.UserContext(), service.SiteSettingsInput{
		SiteName:      req.SiteName,
		Tagline:       req.Tagline,
		HeroImageURL:  req.HeroImageURL,
		LogoURL:       req.LogoURL,
		ContactPhone:  req.ContactPhone,
		WhatsAppPhone: req.WhatsAppPhone,
		FooterText:    req.FooterText,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": siteSettingsResponse(settings)})
}

func companySettingsResponse(settings *domain.CompanySettings) dto.CompanySettingsResponse {
	return dto.CompanySettingsResponse{
		CompanyName:    settings.CompanyName,
		Address:        settings.Address,
		TaxID:          settings.TaxID,
		Phone:          settings.Phone,
		Email:          settings.Email,
		IVAPercentage:  settings.IVAPercentage,
		CurrencySymbol: settings.CurrencySymbol,
		CurrencyCode:   settings.CurrencyCode,
		LegalText:      settings.LegalText,
		UploadEndpoint: settings.UploadEndpoint,
		UpdatedAt:      settings.UpdatedAt,
	}
}

func siteSettingsResponse(settings *domain.SiteSettings) dto.SiteSettingsResponse {
	return dto.SiteSettingsResponse{
		SiteName:      settings.SiteName,
		Tagline:       settings.Tagline,
		HeroImageURL:  settings.HeroImageURL,
		LogoURL:       settings.LogoURL,
		ContactPhone:  settings.ContactPhone,
		WhatsAppPhone: settings.WhatsAppPhone,
		FooterText:    settings.FooterText,
		UpdatedAt:     settings.UpdatedAt,
	}
}
