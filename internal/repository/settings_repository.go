package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fixpoint-labs/repair-shop-service/internal/domain"
)

// SettingsRepository reads and updates the singleton configuration rows.
// Callers fetch fresh on each request; nothing is cached process-wide.
type SettingsRepository interface {
	GetCompany(ctx context.Context) (*domain.CompanySettings, error)
	UpdateCompany(ctx context.Context, settings *domain.CompanySettings) error
	GetSite(ctx context.Context) (*domain.SiteSettings, error)
	UpdateSite(ctx context.Context, settings *domain.SiteSettings) error
}

type settingsRepository struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository returns a Postgres-backed implementation.
func NewSettingsRepository(pool *pgxpool.Pool) SettingsRepository {
	return &settingsRepository{pool: pool}
}

func (r *settingsRepository) GetCompany(ctx context.Context) (*domain.CompanySettings, error) {
	const query = `
        SELECT id, company_name, address, tax_id, phone, email, iva_percentage,
               currency_symbol, currency_code, legal_text, upload_endpoint, upload_api_key, updated_at
        FROM company_settings LIMIT 1`
	var s domain.CompanySettings
	if err := querier(ctx, r.pool).QueryRow(ctx, query).Scan(
		&s.ID,
		&s.CompanyName,
		&s.Address,
		&s.TaxID,
		&s.Phone,
		&s.Email,
		&s.IVAPercentage,
		&s.CurrencySymbol,
		&s.CurrencyCode,
		&s.LegalText,
		&s.UploadEndpoint,
		&s.UploadAPIKey,
		&s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *settingsRepository) UpdateCompany(ctx context.Context, settings *domain.CompanySettings) error {
	const query = `
        UPDATE company_settings SET company_name=$1, address=$2, tax_id=$3, phone=$4, email=$5,
            iva_percentage=$6, currency_symbol=$7, currency_code=$8, legal_text=$9,
            upload_endpoint=$10, upload_api_key=$11, updated_at=NOW()
        WHERE id=$12`
	_, err := querier(ctx, r.pool).Exec(ctx, query,
		settings.CompanyName,
		settings.Address,
		settings.TaxID,
		settings.Phone,
		settings.Email,
		settings.IVAPercentage,
		settings.CurrencySymbol,
		settings.CurrencyCode,
		settings.LegalText,
		settings.UploadEndpoint,
		settings.UploadAPIKey,
		settings.ID,
	)
	return err
}

func (r *settingsRepository) GetSite(ctx context.Context) (*domain.SiteSettings, error) {
	const query = `
        SELECT id, site_name, tagline, hero_image_url, logo_url, contact_phone,
               whatsapp_phone, footer_text, updated_at
        FROM site_settings LIMIT 1`
	var s domain.SiteSettings
	if err := querier(ctx, r.pool).QueryRow(ctx, query).Scan(
		&s.ID,
		&s.SiteName,
		&s.Tagline,
		&s.HeroImageURL,
		&s.LogoURL,
		&s.ContactPhone,
		&s.WhatsAppPhone,
		&s.FooterText,
		&s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *settingsRepository) UpdateSite(ctx context.Context, settings *domain.SiteSettings) error {
	const query = `
        UPDATE site_settings SET site_name=$1, tagline=$2, hero_image_url=$3, logo_url=$4,
            contact_phone=$5, whatsapp_phone=$6, footer_text=$7, updated_at=NOW()
        WHERE id=$8`
	_, err := querier(ctx, r.pool).Exec(ctx, query,
		settings.SiteName,
		settings.Tagline,
		settings.HeroImageURL,
		settings.LogoURL,
		settings.ContactPhone,
		settings.WhatsAppPhone,
		settings.FooterText,
		settings.ID,
	)
	return err
}
