// Package meetings provides database operations for the counselor's
// meeting log.
package meetings

import (
	"time"

	"gorm.io/gorm"

	"github.com/ekurtoglu/guidance/internal/entities"
)

// ListFilter narrows List results. Zero values mean "no filter"; From
// and To bound the meeting date inclusively.
type ListFilter struct {
	From      time.Time
	To        time.Time
	StudentID uint
}

// Repository handles all meeting database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new meetings repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new meeting record.
func (r *Repository) Create(meeting *entities.Meeting) error {
	return r.db.Create(meeting).Error
}

// GetByID retrieves a meeting with its student preloaded.
func (r *Repository) GetByID(id uint) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := r.db.Preload("Student").First(&meeting, id).Error
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

// List retrieves meetings matching the filter, newest first.
func (r *Repository) List(filter ListFilter) ([]entities.Meeting, error) {
	query := r.db.Model(&entities.Meeting{}).Preload("Student")

	if !filter.From.IsZero() {
		query = query.Where("date >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("date <= ?", filter.To)
	}
	if filter.StudentID != 0 {
		query = query.Where("student_id = ?", filter.StudentID)
	}

	var meetings []entities.Meeting
	err := query.Order("date DESC, start_time DESC").Find(&meetings).Error
	return meetings, err
}

// Update saves changes to an existing meeting.
func (r *Repository) Update(meeting *entities.Meeting) error {
	return r.db.Save(meeting).Error
}

// Delete removes a meeting by ID.
func (r *Repository) Delete(id uint) error {
	return r.db.Delete(&entities.Meeting{}, id).Error
}

// CountInRange counts meetings with a date inside [from, to].
func (r *Repository) CountInRange(from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Meeting{}).
		Where("date >= ? AND date <= ?", from, to).
		Count(&count).Error
	return count, err
}

// CountForStudent counts meetings referencing a student.
func (r *Repository) CountForStudent(studentID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Meeting{}).
		Where("student_id = ?", studentID).
		Count(&count).Error
	return count, err
}
