// Package activities provides database operations for group guidance
// activities.
package activities

import (
	"time"

	"gorm.io/gorm"

	"github.com/ekurtoglu/guidance/internal/entities"
)

// ListFilter narrows List results. From and To bound the activity date
// inclusively; zero values mean "no filter".
type ListFilter struct {
	From         time.Time
	To           time.Time
	ActivityType string
}

// Repository handles all activity database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new activities repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new activity record.
func (r *Repository) Create(activity *entities.Activity) error {
	return r.db.Create(activity).Error
}

// GetByID retrieves an activity by ID.
func (r *Repository) GetByID(id uint) (*entities.Activity, error) {
	var activity entities.Activity
	err := r.db.First(&activity, id).Error
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

// List retrieves activities matching the filter, newest first.
func (r *Repository) List(filter ListFilter) ([]entities.Activity, error) {
	query := r.db.Model(&entities.Activity{})

	if !filter.From.IsZero() {
		query = query.Where("date >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("date <= ?", filter.To)
	}
	if filter.ActivityType != "" {
		query = query.Where("activity_type = ?", filter.ActivityType)
	}

	var activities []entities.Activity
	err := query.Order("date DESC").Find(&activities).Error
	return activities, err
}

// Update saves changes to an existing activity.
func (r *Repository) Update(activity *entities.Activity) error {
	return r.db.Save(activity).Error
}

// Delete removes an activity by ID.
func (r *Repository) Delete(id uint) error {
	return r.db.Delete(&entities.Activity{}, id).Error
}

// CountInRange counts activities with a date inside [from, to].
func (r *Repository) CountInRange(from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Activity{}).
		Where("date >= ? AND date <= ?", from, to).
		Count(&count).Error
	return count, err
}
