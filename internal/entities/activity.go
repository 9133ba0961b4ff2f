package entities

import (
	"time"
)

// Activity is a group guidance activity (a classroom session, a parent
// seminar, a teacher workshop) with participant counts per category.
type Activity struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Date         time.Time `gorm:"index" json:"date"`
	Method       string    `gorm:"size:100" json:"method"`
	Description  string    `gorm:"type:text" json:"description"`
	TargetGroup  string    `gorm:"size:100" json:"target_group"`
	ActivityType string    `gorm:"size:100" json:"activity_type"`

	TeacherCount       int `gorm:"default:0" json:"teacher_count"`
	ParentCount        int `gorm:"default:0" json:"parent_count"`
	OtherCount         int `gorm:"default:0" json:"other_count"`
	MaleStudentCount   int `gorm:"default:0" json:"male_student_count"`
	FemaleStudentCount int `gorm:"default:0" json:"female_student_count"`

	ClassInfo      string `gorm:"size:100" json:"class_info,omitempty"`
	DocumentNumber string `gorm:"size:50" json:"document_number,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ParticipantTotal sums every participant category.
func (a *Activity) ParticipantTotal() int {
	return a.TeacherCount + a.ParentCount + a.OtherCount +
		a.MaleStudentCount + a.FemaleStudentCount
}
