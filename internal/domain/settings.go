package domain

import "time"

// DefaultIVAPercentage applies when neither the ticket nor the company
// settings carry a rate.
const DefaultIVAPercentage = 21.0

// CompanySettings is the singleton billing/branding configuration row.
// It is read fresh on every request rather than cached process-wide.
type CompanySettings struct {
	ID               string
	CompanyName      string
	Address          string
	TaxID            string
	Phone            string
	Email            string
	IVAPercentage    float64
	CurrencySymbol   string
	CurrencyCode     string
	LegalText        string
	UploadEndpoint   string
	UploadAPIKey     string
	UpdatedAt        time.Time
}

// EffectiveIVAPercentage resolves the configured rate, falling back to the
// built-in default when unset.
func (s *CompanySettings) EffectiveIVAPercentage() float64 {
	if s == nil || s.IVAPercentage <= 0 {
		return DefaultIVAPercentage
	}
	return s.IVAPercentage
}

// SiteSettings is the singleton public-site configuration row.
type SiteSettings struct {
	ID            string
	SiteName      string
	Tagline       string
	HeroImageURL  string
	LogoURL       string
	ContactPhone  string
	WhatsAppPhone string
	FooterText    string
	UpdatedAt     time.Time
}
