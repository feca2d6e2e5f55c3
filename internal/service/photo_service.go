package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/fixpoint-labs/repair-shop-service/internal/domain"
	"github.com/fixpoint-labs/repair-shop-service/internal/repository"
	"github.com/fixpoint-labs/repair-shop-service/internal/storage"
	apperrors "github.com/fixpoint-labs/repair-shop-service/pkg/util"
)

// maxPhotoBytes caps individual uploads before they reach the image host.
const maxPhotoBytes = 10 << 20

// PhotoService uploads ticket photos and signatures to the external image
// host and records the returned URLs. Upload credentials live in the company
// settings row and are resolved per call.
type PhotoService struct {
	photos   repository.PhotoRepository
	tickets  repository.TicketRepository
	settings repository.SettingsRepository
	uploader *storage.ImageHostClient
	logger   *zap.Logger
}

// PhotoDependencies bundles collaborators for the photo service.
type PhotoDependencies struct {
	PhotoRepo    repository.PhotoRepository
	TicketRepo   repository.TicketRepository
	SettingsRepo repository.SettingsRepository
	Uploader     *storage.ImageHostClient
	Logger       *zap.Logger
}

// NewPhotoService constructs the service.
func NewPhotoService(deps PhotoDependencies) *PhotoService {
	return &PhotoService{
		photos:   deps.PhotoRepo,
		tickets:  deps.TicketRepo,
		settings: deps.SettingsRepo,
		uploader: deps.Uploader,
		logger:   deps.Logger,
	}
}

// AttachPhoto uploads an image and links it to the ticket. Photos on terminal
// tickets are still accepted for the FINAL type so completion evidence can be
// added after the status change.
func (s *PhotoService) AttachPhoto(ctx context.Context, ticketID string, photoType domain.PhotoType, filename string, data []byte) (*domain.Photo, error) {
	if photoType != domain.PhotoTypeInitial && photoType != domain.PhotoTypeFinal {
		return nil, apperrors.NewValidationError("invalid photo type", map[string]any{"type": photoType})
	}
	if len(data) == 0 {
		return nil, apperrors.NewValidationError("empty file", nil)
	}
	if len(data) > maxPhotoBytes {
		return nil, apperrors.NewValidationError("file too large", map[string]any{"max_bytes": maxPhotoBytes})
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": ticketID})
		}
		return nil, err
	}
	if ticket.Status.IsTerminal() && photoType == domain.PhotoTypeInitial {
		return nil, apperrors.NewConflict("ticket is closed", map[string]any{"status": ticket.Status})
	}

	url, err := s.upload(ctx, fmt.Sprintf("ticket-%d-%s-%s", ticket.TicketNumber, strings.ToLower(string(photoType)), sanitizeFilename(filename)), data)
	if err != nil {
		return nil, err
	}

	photo := &domain.Photo{TicketID: ticket.ID, Type: photoType, URL: url}
	if err := s.photos.Create(ctx, photo); err != nil {
		return nil, err
	}
	s.logger.Info("photo attached",
		zap.String("ticket_id", ticket.ID),
		zap.String("type", string(photoType)),
	)
	return photo, nil
}

// UploadSignature sends the captured signature image to the host and returns
// its URL. Persisting it on the ticket stays with TicketService.AttachSignature
// so the write-once rule lives in one place.
func (s *PhotoService) UploadSignature(ctx context.Context, ticketID string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", apperrors.NewValidationError("empty file", nil)
	}
	if len(data) > maxPhotoBytes {
		return "", apperrors.NewValidationError("file too large", map[string]any{"max_bytes": maxPhotoBytes})
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NewNotFound("ticket", map[string]any{"id": ticketID})
		}
		return "", err
	}
	return s.upload(ctx, fmt.Sprintf("ticket-%d-signature-%d.png", ticket.TicketNumber, time.Now().Unix()), data)
}

// RemovePhoto deletes the database row. The hosted binary is left to the
// provider's retention policy.
func (s *PhotoService) RemovePhoto(ctx context.Context, photoID string) error {
	if err := s.photos.Delete(ctx, photoID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("photo", map[string]any{"id": photoID})
		}
		return err
	}
	return nil
}

// ListPhotos returns a ticket's photos oldest first.
func (s *PhotoService) ListPhotos(ctx context.Context, ticketID string) ([]domain.Photo, error) {
	return s.photos.ListByTicket(ctx, ticketID)
}

func (s *PhotoService) upload(ctx context.Context, filename string, data []byte) (string, error) {
	settings, err := s.settings.GetCompany(ctx)
	if err != nil {
		return "", err
	}
	if settings.UploadEndpoint == "" {
		return "", apperrors.NewConflict("image uploads not configured", nil)
	}
	url, err := s.uploader.Upload(ctx, settings.UploadEndpoint, settings.UploadAPIKey, filename, data)
	if err != nil {
		s.logger.Error("image upload failed", zap.Error(err))
		return "", apperrors.NewDomainError("UPLOAD_FAILED", "image upload failed", http.StatusBadGateway, nil)
	}
	return url, nil
}

func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "photo"
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return b.String()
}
