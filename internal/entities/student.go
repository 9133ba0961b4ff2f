package entities

import (
	"time"
)

// RiskLevel classifies a student by their overall progress for the
// dashboard's attention list.
type RiskLevel string

const (
	RiskLevelHigh   RiskLevel = "high"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelLow    RiskLevel = "low"
)

// Student is a single entry in the school roster.
type Student struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Number          string    `gorm:"uniqueIndex;size:20" json:"number"`
	FirstName       string    `gorm:"size:100" json:"first_name"`
	LastName        string    `gorm:"size:100" json:"last_name"`
	Class           string    `gorm:"index;size:20" json:"class"`
	Gender          string    `gorm:"size:10" json:"gender"`
	Phone           string    `gorm:"size:20" json:"phone,omitempty"`
	Email           string    `gorm:"size:255" json:"email,omitempty"`
	OverallProgress float64   `gorm:"default:0" json:"overall_progress"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// FullName returns the student's display name.
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

// Risk buckets the student by overall progress: below 25% is high risk,
// below 50% is medium, everything else is low.
func (s *Student) Risk() RiskLevel {
	switch {
	case s.OverallProgress < 25:
		return RiskLevelHigh
	case s.OverallProgress < 50:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}
