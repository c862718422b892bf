package property

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"etude/internal/models"
	"etude/internal/repositories"
	"etude/internal/repositories/cache"
	"etude/internal/repositories/media"
	"etude/internal/services/fees"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ImageStore persists uploaded listing images.
type ImageStore interface {
	Save(propertyID uint, r io.Reader) (*media.Stored, error)
	Delete(rel string) error
	DeleteProperty(propertyID uint) error
}

type Service struct {
	repo   repositories.PropertyRepository
	images ImageStore
	cache  repositories.Cache
	calc   *fees.Calculator
}

func NewService(repo repositories.PropertyRepository, images ImageStore, c repositories.Cache, calc *fees.Calculator) *Service {
	if c == nil {
		c = cache.Noop{}
	}
	return &Service{repo: repo, images: images, cache: c, calc: calc}
}

func mapRepoErr(err error) error {
	switch {
	case errors.Is(err, repositories.ErrPropertyNotFound):
		return ErrNotFound
	case errors.Is(err, repositories.ErrImageNotFound):
		return ErrImageNotFound
	case errors.Is(err, repositories.ErrReferenceTaken):
		return ErrReferenceTaken
	}
	return err
}

func newReference(cat models.PropertyCategory) string {
	prefix := "BI"
	if len(cat) >= 2 {
		prefix = strings.ToUpper(string(cat[:2]))
	}
	return prefix + "-" + strings.ToUpper(uuid.NewString()[:8])
}

func detailKey(id uint) string {
	return cache.GenerateKey(cache.EntityProperty, cache.KeyID, id)
}

// invalidate drops every cached public view of the listing. Cache
// failures are logged: the next read falls through to the database.
func (s *Service) invalidate(ctx context.Context, id uint) {
	if err := s.cache.Delete(ctx, detailKey(id)); err != nil {
		log.Warn().Err(err).Uint("property_id", id).Msg("failed to invalidate listing cache")
	}
	if err := s.cache.DeletePattern(ctx, cache.Pattern(cache.EntityPropertyList)); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate listing pages")
	}
}

func (s *Service) Create(ctx context.Context, in Input) (*models.Property, error) {
	p := &models.Property{}
	in.apply(p)
	if err := ApplyCategory(p); err != nil {
		return nil, err
	}
	if p.Reference == "" {
		p.Reference = newReference(p.Category)
	}
	if err := s.repo.Create(p); err != nil {
		return nil, mapRepoErr(err)
	}
	p.Images = []models.PropertyImage{}
	log.Info().Uint("property_id", p.ID).Str("reference", p.Reference).Msg("listing created")
	return p, nil
}

// Update replaces the editable fields. Changing the category clears the
// fields the new category does not show.
func (s *Service) Update(ctx context.Context, id uint, in Input) (*models.Property, error) {
	p, err := s.repo.GetByID(id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	ref := p.Reference
	in.apply(p)
	if p.Reference == "" {
		p.Reference = ref
	}
	if err := ApplyCategory(p); err != nil {
		return nil, err
	}
	if err := s.repo.Update(p); err != nil {
		return nil, mapRepoErr(err)
	}
	s.invalidate(ctx, id)
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(id); err != nil {
		return mapRepoErr(err)
	}
	if err := s.images.DeleteProperty(id); err != nil {
		log.Warn().Err(err).Uint("property_id", id).Msg("failed to remove listing images")
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *Service) Get(ctx context.Context, id uint) (*models.Property, error) {
	p, err := s.repo.GetByID(id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return p, nil
}

// ListAdmin returns every listing, published or not.
func (s *Service) ListAdmin(ctx context.Context, offset, limit int) (*Page, error) {
	items, total, err := s.repo.List(repositories.PropertyFilter{}, offset, limit)
	if err != nil {
		return nil, err
	}
	return &Page{Items: items, Total: total}, nil
}

func (s *Service) ListPublished(ctx context.Context, f Filter, offset, limit int) (*Page, error) {
	filter := repositories.PropertyFilter{
		PublishedOnly: true,
		City:          strings.TrimSpace(f.City),
		MaxPrice:      f.MaxPrice,
	}
	if f.Category != "" {
		cat, ok := ParseCategory(f.Category)
		if !ok {
			return nil, ErrUnknownCategory
		}
		filter.Category = cat
	}

	key := cache.GenerateCompositeKey(cache.EntityPropertyList, map[string]interface{}{
		"category":  filter.Category,
		"city":      strings.ToLower(filter.City),
		"max_price": filter.MaxPrice,
		"offset":    offset,
		"limit":     limit,
	})
	var cached Page
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
		return &cached, nil
	}

	items, total, err := s.repo.List(filter, offset, limit)
	if err != nil {
		return nil, err
	}
	page := &Page{Items: items, Total: total}
	if err := s.cache.Set(ctx, key, page); err != nil {
		log.Warn().Err(err).Msg("failed to cache listing page")
	}
	return page, nil
}

// GetPublished returns a published listing with a fee estimate for its
// asking price. Unpublished listings are reported as not found.
func (s *Service) GetPublished(ctx context.Context, id uint) (*Listing, error) {
	key := detailKey(id)
	var cached Listing
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
		return &cached, nil
	}

	p, err := s.repo.GetByID(id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	if !p.Published {
		return nil, ErrNotFound
	}

	listing := &Listing{Property: *p, FeeEstimate: s.EstimateFor(p)}
	if err := s.cache.Set(ctx, key, listing); err != nil {
		log.Warn().Err(err).Uint("property_id", id).Msg("failed to cache listing")
	}
	return listing, nil
}

// EstimateFor computes acquisition fees for a listing. The jurisdiction
// comes from the postal code and the 2025 increase is applied wherever
// the département voted it.
func (s *Service) EstimateFor(p *models.Property) *fees.FeeView {
	if s.calc == nil {
		return nil
	}
	b, ok := s.calc.Estimate(fees.EstimateInput{
		Price:            p.Price,
		JurisdictionCode: fees.JurisdictionForPostalCode(p.PostalCode),
		IsNewBuild:       p.IsNewBuild,
		ApplyIncrease:    true,
	})
	if !ok {
		return nil
	}
	v := fees.Present(b)
	return &v
}

func (s *Service) SetPublished(ctx context.Context, id uint, published bool) (*models.Property, error) {
	p, err := s.repo.SetPublished(id, published)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	s.invalidate(ctx, id)
	log.Info().Uint("property_id", id).Bool("published", published).Msg("listing publication changed")
	return p, nil
}

// AddImage stores the upload and appends it after the existing images.
func (s *Service) AddImage(ctx context.Context, id uint, r io.Reader) (*models.PropertyImage, error) {
	if _, err := s.repo.GetByID(id); err != nil {
		return nil, mapRepoErr(err)
	}

	stored, err := s.images.Save(id, r)
	if err != nil {
		return nil, err
	}

	pos, err := s.repo.NextImagePosition(id)
	if err != nil {
		_ = s.images.Delete(stored.Path)
		return nil, err
	}
	img := &models.PropertyImage{
		PropertyID:  id,
		Path:        stored.Path,
		URL:         stored.URL,
		ContentType: stored.ContentType,
		Size:        stored.Size,
		Position:    pos,
	}
	if err := s.repo.AddImage(img); err != nil {
		_ = s.images.Delete(stored.Path)
		return nil, fmt.Errorf("save image record: %w", err)
	}
	s.invalidate(ctx, id)
	return img, nil
}

func (s *Service) DeleteImage(ctx context.Context, propertyID, imageID uint) error {
	img, err := s.repo.GetImage(propertyID, imageID)
	if err != nil {
		return mapRepoErr(err)
	}
	if err := s.repo.DeleteImage(img); err != nil {
		return err
	}
	if err := s.images.Delete(img.Path); err != nil {
		log.Warn().Err(err).Str("path", img.Path).Msg("failed to remove image file")
	}
	s.invalidate(ctx, propertyID)
	return nil
}
