package service

import (
	"context"
	"strings"

	"github.com/fixpoint-labs/repair-shop-service/internal/domain"
	"github.com/fixpoint-labs/repair-shop-service/internal/repository"
	apperrors "github.com/fixpoint-labs/repair-shop-service/pkg/util"
)

// SettingsService exposes the two singleton configuration rows. Reads always
// hit the database so an edit takes effect on the very next request.
type SettingsService struct {
	settings repository.SettingsRepository
}

// NewSettingsService constructs the service.
func NewSettingsService(settings repository.SettingsRepository) *SettingsService {
	return &SettingsService{settings: settings}
}

// CompanySettings returns the billing/branding row.
func (s *SettingsService) CompanySettings(ctx context.Context) (*domain.CompanySettings, error) {
	return s.settings.GetCompany(ctx)
}

// CompanySettingsInput carries the editable company fields.
type CompanySettingsInput struct {
	CompanyName    string
	Address        string
	TaxID          string
	Phone          string
	Email          string
	IVAPercentage  float64
	CurrencySymbol string
	CurrencyCode   string
	LegalText      string
	UploadEndpoint string
	UploadAPIKey   string
}

// UpdateCompanySettings replaces the company row.
func (s *SettingsService) UpdateCompanySettings(ctx context.Context, input CompanySettingsInput) (*domain.CompanySettings, error) {
	if strings.TrimSpace(input.CompanyName) == "" {
		return nil, apperrors.NewValidationError("company name required", nil)
	}
	if input.IVAPercentage < 0 || input.IVAPercentage > 100 {
		return nil, apperrors.NewValidationError("iva percentage must be between 0 and 100", map[string]any{"iva_percentage": input.IVAPercentage})
	}

	current, err := s.settings.GetCompany(ctx)
	if err != nil {
		return nil, err
	}
	current.CompanyName = strings.TrimSpace(input.CompanyName)
	current.Address = strings.TrimSpace(input.Address)
	current.TaxID = strings.TrimSpace(input.TaxID)
	current.Phone = strings.TrimSpace(input.Phone)
	current.Email = strings.TrimSpace(input.Email)
	current.IVAPercentage = input.IVAPercentage
	current.CurrencySymbol = input.CurrencySymbol
	current.CurrencyCode = strings.ToUpper(strings.TrimSpace(input.CurrencyCode))
	current.LegalText = input.LegalText
	current.UploadEndpoint = strings.TrimSpace(input.UploadEndpoint)
	current.UploadAPIKey = strings.TrimSpace(input.UploadAPIKey)

	if err := s.settings.UpdateCompany(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

// SiteSettings returns the public-site row.
func (s *SettingsService) SiteSettings(ctx context.Context) (*domain.SiteSettings, error) {
	return s.settings.GetSite(ctx)
}

// SiteSettingsInput carries the editable site fields.
type SiteSettingsInput struct {
	SiteName      string
	Tagline       string
	HeroImageURL  string
	LogoURL       string
	ContactPhone  string
	WhatsAppPhone string
	FooterText    string
}

// UpdateSiteSettings replaces the site row.
func (s *SettingsService) UpdateSiteSettings(ctx context.Context, input SiteSettingsInput) (*domain.SiteSettings, error) {
	if strings.TrimSpace(input.SiteName) == "" {
		return nil, apperrors.NewValidationError("site name required", nil)
	}

	current, err := s.settings.GetSite(ctx)
	if err != nil {
		return nil, err
	}
	current.SiteName = strings.TrimSpace(input.SiteName)
	current.Tagline = input.Tagline
	current.HeroImageURL = strings.TrimSpace(input.HeroImageURL)
	current.LogoURL = strings.TrimSpace(input.LogoURL)
	current.ContactPhone = strings.TrimSpace(input.ContactPhone)
	current.WhatsAppPhone = strings.TrimSpace(input.WhatsAppPhone)
	current.FooterText = input.FooterText

	if err := s.settings.UpdateSite(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}
