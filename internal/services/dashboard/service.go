// Package dashboard aggregates back-office figures: catalogue size and the
// contact request backlog.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"etude/internal/models"

	"gorm.io/gorm"
)

const recentContactsLimit = 5

type Service interface {
	GetOfficeDashboard(ctx context.Context) (*OfficeDashboard, error)
}

type service struct {
	db  *gorm.DB
	now func() time.Time
}

type ListingStats struct {
	Total                 int64            `json:"total"`
	Published             int64            `json:"published"`
	Drafts                int64            `json:"drafts"`
	AveragePublishedPrice float64          `json:"average_published_price"`
	ByCategory            map[string]int64 `json:"by_category"`
}

type ContactStats struct {
	New        int64            `json:"new"`
	Handled    int64            `json:"handled"`
	Last30Days int64            `json:"last_30_days"`
	BySubject  map[string]int64 `json:"by_subject"`
}

type OfficeDashboard struct {
	Listings       ListingStats            `json:"listings"`
	Contacts       ContactStats            `json:"contacts"`
	RecentContacts []models.ContactRequest `json:"recent_contacts"`
}

func NewService(db *gorm.DB) Service {
	return &service{db: db, now: time.Now}
}

func (s *service) GetOfficeDashboard(ctx context.Context) (*OfficeDashboard, error) {
	db := s.db.WithContext(ctx)
	var d OfficeDashboard

	err := db.Model(&models.Property{}).
		Select("COUNT(*), COALESCE(SUM(CASE WHEN published THEN 1 ELSE 0 END), 0)").
		Row().Scan(&d.Listings.Total, &d.Listings.Published)
	if err != nil {
		return nil, fmt.Errorf("failed to get listing counts: %w", err)
	}
	d.Listings.Drafts = d.Listings.Total - d.Listings.Published

	err = db.Model(&models.Property{}).
		Where("published = ?", true).
		Select("COALESCE(AVG(price), 0)").
		Row().Scan(&d.Listings.AveragePublishedPrice)
	if err != nil {
		return nil, fmt.Errorf("failed to get average price: %w", err)
	}

	d.Listings.ByCategory, err = countBy(db.Model(&models.Property{}), "category")
	if err != nil {
		return nil, fmt.Errorf("failed to get listings by category: %w", err)
	}

	err = db.Model(&models.ContactRequest{}).
		Select("COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0), COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0)",
			models.ContactStatusNew, models.ContactStatusHandled).
		Row().Scan(&d.Contacts.New, &d.Contacts.Handled)
	if err != nil {
		return nil, fmt.Errorf("failed to get contact counts: %w", err)
	}

	since := s.now().AddDate(0, 0, -30)
	if err := db.Model(&models.ContactRequest{}).Where("created_at >= ?", since).Count(&d.Contacts.Last30Days).Error; err != nil {
		return nil, fmt.Errorf("failed to get recent contact count: %w", err)
	}

	d.Contacts.BySubject, err = countBy(db.Model(&models.ContactRequest{}).Where("created_at >= ?", since), "subject")
	if err != nil {
		return nil, fmt.Errorf("failed to get contacts by subject: %w", err)
	}

	err = db.Where("status = ?", models.ContactStatusNew).
		Order("created_at DESC").
		Limit(recentContactsLimit).
		Find(&d.RecentContacts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get recent contacts: %w", err)
	}

	return &d, nil
}

// countBy groups the scoped query by column. column is always a constant.
func countBy(q *gorm.DB, column string) (map[string]int64, error) {
	rows, err := q.Select(column + ", COUNT(*)").Group(column).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int64)
	for rows.Next() {
		var key string
		var count int64
		if err := rows.Scan(&key, &count); err != nil {
			return nil, err
		}
		out[key] = count
	}
	return out, rows.Err()
}
