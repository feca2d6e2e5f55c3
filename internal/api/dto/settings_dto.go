package dto

import "time"

// CompanySettingsResponse billing/branding configuration.
type CompanySettingsResponse struct {
	CompanyName    string    `json:"company_name"`
	Address        string    `json:"address"`
	TaxID          string    `json:"tax_id"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	IVAPercentage  float64   `json:"iva_percentage"`
	CurrencySymbol string    `json:"currency_symbol"`
	CurrencyCode   string    `json:"currency_code"`
	LegalText      string    `json:"legal_text"`
	UploadEndpoint string    `json:"upload_endpoint"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CompanySettingsRequest payload. The upload API key is write-only: accepted
// here, never echoed back in responses.
type CompanySettingsRequest struct {
	CompanyName    string  `json:"company_name"`
	Address        string  `json:"address"`
	TaxID          string  `json:"tax_id"`
	Phone          string  `json:"phone"`
	Email          string  `json:"email"`
	IVAPercentage  float64 `json:"iva_percentage"`
	CurrencySymbol string  `json:"currency_symbol"`
	CurrencyCode   string  `json:"currency_code"`
	LegalText      string  `json:"legal_text"`
	UploadEndpoint string  `json:"upload_endpoint"`
	UploadAPIKey   string  `json:"upload_api_key"`
}

// SiteSettingsResponse public site configuration.
type SiteSettingsResponse struct {
	SiteName      string    `json:"site_name"`
	Tagline       string    `json:"tagline"`
	HeroImageURL  string    `json:"hero_image_url"`
	LogoURL       string    `json:"logo_url"`
	ContactPhone  string    `json:"contact_phone"`
	WhatsAppPhone string    `json:"whatsapp_phone"`
	FooterText    string    `json:"footer_text"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SiteSettingsRequest payload.
type SiteSettingsRequest struct {
	SiteName      string `json:"site_name"`
	Tagline       string `json:"tagline"`
	HeroImageURL  string `json:"hero_image_url"`
	LogoURL       string `json:"logo_url"`
	ContactPhone  string `json:"contact_phone"`
	WhatsAppPhone string `json:"whatsapp_phone"`
	FooterText    string `json:"footer_text"`
}
