package entities

import (
	"time"
)

// Meeting is one entry in the counselor's meeting log. StudentID is
// optional: meetings with parents or teachers may not reference a
// specific student.
type Meeting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID *uint     `gorm:"index" json:"student_id,omitempty"`
	Date      time.Time `gorm:"index" json:"date"`
	StartTime string    `gorm:"size:5" json:"start_time"` // "HH:MM"
	EndTime   string    `gorm:"size:5" json:"end_time"`

	// Who was met
	PersonMet    string `gorm:"size:100" json:"person_met"`
	PersonRole   string `gorm:"size:50" json:"person_role,omitempty"`
	Relationship string `gorm:"size:50" json:"relationship,omitempty"`

	// What the meeting was about
	Topic                  string `gorm:"size:200" json:"topic"`
	WorkArea               string `gorm:"size:100" json:"work_area,omitempty"`
	WorkCategory           string `gorm:"size:100" json:"work_category,omitempty"`
	ServiceType            string `gorm:"size:100" json:"service_type,omitempty"`
	InstitutionCooperation string `gorm:"size:100" json:"institution_cooperation,omitempty"`
	Location               string `gorm:"size:100" json:"location,omitempty"`

	// Flags for disciplinary and judicial follow-up
	Disciplinary     bool   `gorm:"default:false" json:"disciplinary"`
	JudicialReferral bool   `gorm:"default:false" json:"judicial_referral"`
	Method           string `gorm:"size:100" json:"method,omitempty"`

	Summary string `gorm:"type:text" json:"summary,omitempty"`

	Student *Student `gorm:"foreignKey:StudentID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
