package repositories

import (
	"errors"
	"time"

	"etude/internal/models"

	"gorm.io/gorm"
)

type ContactRepository interface {
	Create(req *models.ContactRequest) error
	GetByID(id uint) (*models.ContactRequest, error)
	List(status string, offset, limit int) ([]models.ContactRequest, int64, error)
	MarkHandled(id, handledBy uint, at time.Time) (*models.ContactRequest, error)
}

type contactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(req *models.ContactRequest) error {
	if err := r.db.Create(req).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *contactRepository) GetByID(id uint) (*models.ContactRequest, error) {
	var req models.ContactRequest
	if err := r.db.First(&req, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &req, nil
}

func (r *contactRepository) List(status string, offset, limit int) ([]models.ContactRequest, int64, error) {
	query := r.db.Model(&models.ContactRequest{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, ErrDatabaseOperation
	}

	var items []models.ContactRequest
	if err := query.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, ErrDatabaseOperation
	}
	return items, total, nil
}

// MarkHandled is idempotent: a request already handled keeps its
// original handler and timestamp.
func (r *contactRepository) MarkHandled(id, handledBy uint, at time.Time) (*models.ContactRequest, error) {
	req, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req.Status == models.ContactStatusHandled {
		return req, nil
	}
	req.Status = models.ContactStatusHandled
	req.HandledAt = &at
	req.HandledBy = &handledBy
	err = r.db.Model(req).Updates(map[string]interface{}{
		"status":     req.Status,
		"handled_at": at,
		"handled_by": handledBy,
	}).Error
	if err != nil {
		return nil, ErrDatabaseOperation
	}
	return req, nil
}
