package contact

import (
	"context"
	"errors"
	"strings"
	"time"

	"etude/internal/models"
	"etude/internal/repositories"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const publishTimeout = 5 * time.Second

type Service struct {
	repo      repositories.ContactRepository
	publisher Publisher
	now       func() time.Time
}

func NewService(repo repositories.ContactRepository, publisher Publisher) *Service {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &Service{repo: repo, publisher: publisher, now: time.Now}
}

// Submit stores a contact request and publishes it for delivery. The
// request is accepted even when publishing fails; it stays visible in
// the back office with status "new".
func (s *Service) Submit(ctx context.Context, in Input, meta Meta) (*models.ContactRequest, error) {
	if !in.Consent {
		return nil, ErrConsentRequired
	}

	req := &models.ContactRequest{
		Reference:  uuid.NewString(),
		Name:       strings.TrimSpace(in.Name),
		Email:      strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:      strings.TrimSpace(in.Phone),
		Subject:    in.Subject,
		Message:    strings.TrimSpace(in.Message),
		PropertyID: in.PropertyID,
		Consent:    true,
		Status:     models.ContactStatusNew,
		IPAddress:  meta.IPAddress,
		Metadata: models.JSON{
			"user_agent": meta.UserAgent,
			"referer":    meta.Referer,
		},
	}
	if err := s.repo.Create(req); err != nil {
		return nil, err
	}

	event := LeadEvent{
		Type:       EventCreated,
		ID:         req.ID,
		Reference:  req.Reference,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Subject:    req.Subject,
		Message:    req.Message,
		PropertyID: req.PropertyID,
		CreatedAt:  req.CreatedAt,
	}
	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := s.publisher.Publish(pubCtx, event); err != nil {
		log.Error().Err(err).Str("reference", req.Reference).Msg("failed to publish contact request")
	} else {
		log.Info().Str("reference", req.Reference).Str("subject", req.Subject).Msg("contact request published")
	}
	return req, nil
}

func (s *Service) List(ctx context.Context, status string, offset, limit int) ([]models.ContactRequest, int64, error) {
	return s.repo.List(status, offset, limit)
}

func (s *Service) MarkHandled(ctx context.Context, id, handledBy uint) (*models.ContactRequest, error) {
	req, err := s.repo.MarkHandled(id, handledBy, s.now())
	if errors.Is(err, repositories.ErrContactNotFound) {
		return nil, ErrNotFound
	}
	return req, err
}

func (s *Service) Close() error {
	return s.publisher.Close()
}
