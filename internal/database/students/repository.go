// Package students provides database operations for the student roster.
//
// # Usage
//
//	repo := students.NewRepository(db)
//	student, err := repo.GetByNumber("1042")
package students

import (
	"gorm.io/gorm"

	"github.com/ekurtoglu/guidance/internal/entities"
)

// ListFilter narrows List results. Zero values mean "no filter".
type ListFilter struct {
	Class  string
	Search string // matches number, first or last name
}

// Repository handles all student database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new students repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new student.
func (r *Repository) Create(student *entities.Student) error {
	return r.db.Create(student).Error
}

// GetByID retrieves a student by ID.
func (r *Repository) GetByID(id uint) (*entities.Student, error) {
	var student entities.Student
	err := r.db.First(&student, id).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// GetByNumber retrieves a student by school number.
func (r *Repository) GetByNumber(number string) (*entities.Student, error) {
	var student entities.Student
	err := r.db.Where("number = ?", number).First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// List retrieves students matching the filter, ordered by class then
// last name.
func (r *Repository) List(filter ListFilter) ([]entities.Student, error) {
	query := r.db.Model(&entities.Student{})

	if filter.Class != "" {
		query = query.Where("class = ?", filter.Class)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"number LIKE ? OR LOWER(first_name) LIKE LOWER(?) OR LOWER(last_name) LIKE LOWER(?)",
			pattern, pattern, pattern,
		)
	}

	var students []entities.Student
	err := query.Order("class, last_name, first_name").Find(&students).Error
	return students, err
}

// Update saves changes to an existing student.
func (r *Repository) Update(student *entities.Student) error {
	return r.db.Save(student).Error
}

// Delete removes a student by ID.
func (r *Repository) Delete(id uint) error {
	return r.db.Delete(&entities.Student{}, id).Error
}

// Count returns the total number of students.
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Student{}).Count(&count).Error
	return count, err
}

// AverageProgress returns the mean overall progress across the roster,
// or 0 for an empty roster.
func (r *Repository) AverageProgress() (float64, error) {
	var avg *float64
	err := r.db.Model(&entities.Student{}).
		Select("AVG(overall_progress)").Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}

// RecentlyUpdated returns the most recently touched students, newest
// first. The dashboard uses this for its attention list.
func (r *Repository) RecentlyUpdated(limit int) ([]entities.Student, error) {
	var students []entities.Student
	err := r.db.Order("updated_at DESC").Limit(limit).Find(&students).Error
	return students, err
}

// Classes returns the distinct class names in the roster, sorted.
func (r *Repository) Classes() ([]string, error) {
	var classes []string
	err := r.db.Model(&entities.Student{}).
		Distinct("class").Where("class <> ''").
		Order("class").Pluck("class", &classes).Error
	return classes, err
}
