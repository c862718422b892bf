package repositories

import (
	"database/sql"
	"errors"
	"strings"

	"etude/internal/models"

	"gorm.io/gorm"
)

// PropertyFilter narrows listing queries. Zero values mean "any".
type PropertyFilter struct {
	Category      models.PropertyCategory
	City          string
	MaxPrice      float64
	PublishedOnly bool
}

type PropertyRepository interface {
	Create(p *models.Property) error
	Update(p *models.Property) error
	Delete(id uint) error
	GetByID(id uint) (*models.Property, error)
	List(filter PropertyFilter, offset, limit int) ([]models.Property, int64, error)
	SetPublished(id uint, published bool) (*models.Property, error)

	AddImage(img *models.PropertyImage) error
	GetImage(propertyID, imageID uint) (*models.PropertyImage, error)
	DeleteImage(img *models.PropertyImage) error
	NextImagePosition(propertyID uint) (int, error)
}

type propertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

func orderedImages(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC, id ASC")
}

func (r *propertyRepository) Create(p *models.Property) error {
	var count int64
	if err := r.db.Model(&models.Property{}).Where("reference = ?", p.Reference).Count(&count).Error; err != nil {
		return ErrDatabaseOperation
	}
	if count > 0 {
		return ErrReferenceTaken
	}
	if err := r.db.Omit("Images").Create(p).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *propertyRepository) Update(p *models.Property) error {
	var count int64
	if err := r.db.Model(&models.Property{}).
		Where("reference = ? AND id <> ?", p.Reference, p.ID).
		Count(&count).Error; err != nil {
		return ErrDatabaseOperation
	}
	if count > 0 {
		return ErrReferenceTaken
	}
	result := r.db.Omit("Images", "CreatedAt").Save(p)
	if result.Error != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *propertyRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.Property{}, id)
		if result.Error != nil {
			return ErrDatabaseOperation
		}
		if result.RowsAffected == 0 {
			return ErrPropertyNotFound
		}
		if err := tx.Where("property_id = ?", id).Delete(&models.PropertyImage{}).Error; err != nil {
			return ErrDatabaseOperation
		}
		return nil
	})
}

func (r *propertyRepository) GetByID(id uint) (*models.Property, error) {
	var p models.Property
	err := r.db.Preload("Images", orderedImages).First(&p, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &p, nil
}

func (r *propertyRepository) List(filter PropertyFilter, offset, limit int) ([]models.Property, int64, error) {
	query := r.db.Model(&models.Property{})
	if filter.PublishedOnly {
		query = query.Where("published = ?", true)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if city := strings.TrimSpace(filter.City); city != "" {
		query = query.Where("LOWER(city) = ?", strings.ToLower(city))
	}
	if filter.MaxPrice > 0 {
		query = query.Where("price <= ?", filter.MaxPrice)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, ErrDatabaseOperation
	}

	var items []models.Property
	err := query.
		Preload("Images", orderedImages).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, ErrDatabaseOperation
	}
	return items, total, nil
}

func (r *propertyRepository) SetPublished(id uint, published bool) (*models.Property, error) {
	p, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{"published": published}
	if published && !p.Published {
		now := r.db.NowFunc()
		updates["published_at"] = now
	}
	if err := r.db.Model(&models.Property{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, ErrDatabaseOperation
	}
	return r.GetByID(id)
}

func (r *propertyRepository) AddImage(img *models.PropertyImage) error {
	if err := r.db.Create(img).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *propertyRepository) GetImage(propertyID, imageID uint) (*models.PropertyImage, error) {
	var img models.PropertyImage
	err := r.db.Where("id = ? AND property_id = ?", imageID, propertyID).First(&img).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrImageNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &img, nil
}

func (r *propertyRepository) DeleteImage(img *models.PropertyImage) error {
	if err := r.db.Delete(img).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *propertyRepository) NextImagePosition(propertyID uint) (int, error) {
	var max sql.NullInt64
	err := r.db.Model(&models.PropertyImage{}).
		Where("property_id = ?", propertyID).
		Select("MAX(position)").
		Row().
		Scan(&max)
	if err != nil {
		return 0, ErrDatabaseOperation
	}
	if !max.Valid {
		return 0, nil
	}
	return int(max.Int64) + 1, nil
}
