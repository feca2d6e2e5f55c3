package domain

import "time"

// Brand is master data for appliance manufacturers.
type Brand struct {
	ID        string
	Name      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Category groups devices and carries the short prefix used in friendly
// ticket ids ("LV007") plus the flags the public site uses to display it.
type Category struct {
	ID           string
	Name         string
	Prefix       string
	IsActive     bool
	HeroImageURL string
	ImageURL     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
