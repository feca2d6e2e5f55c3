package dto

import (
	"time"

	"github.com/fixpoint-labs/repair-shop-service/internal/domain"
)

// BrandResponse master data row.
type BrandResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BrandRequest payload for create/update.
type BrandRequest struct {
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// CategoryResponse master data row.
type CategoryResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Prefix       string    `json:"prefix"`
	IsActive     bool      `json:"is_active"`
	HeroImageURL string    `json:"hero_image_url"`
	ImageURL     string    `json:"image_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CategoryRequest payload for create/update.
type CategoryRequest struct {
	Name         string `json:"name"`
	Prefix       string `json:"prefix"`
	IsActive     bool   `json:"is_active"`
	HeroImageURL string `json:"hero_image_url"`
	ImageURL     string `json:"image_url"`
}

// TriageQuestionResponse checklist row.
type TriageQuestionResponse struct {
	ID              string                 `json:"id"`
	Text            string                 `json:"text"`
	TriggerPriority domain.TriggerPriority `json:"trigger_priority"`
	CategoryID      *string                `json:"category_id"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// TriageQuestionRequest payload for create/update.
type TriageQuestionRequest struct {
	Text            string                 `json:"text"`
	TriggerPriority domain.TriggerPriority `json:"trigger_priority"`
	CategoryID      *string                `json:"category_id"`
}
