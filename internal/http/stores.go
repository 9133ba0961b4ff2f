package http

import (
	"time"

	"github.com/ekurtoglu/guidance/internal/database/activities"
	"github.com/ekurtoglu/guidance/internal/database/meetings"
	"github.com/ekurtoglu/guidance/internal/database/students"
	"github.com/ekurtoglu/guidance/internal/entities"
)

// Store interfaces used by the HTTP controllers. Each controller takes
// the narrowest interface it needs; the repository packages implement
// them.

// StudentStore provides roster access for the students controller.
type StudentStore interface {
	Create(student *entities.Student) error
	GetByID(id uint) (*entities.Student, error)
	GetByNumber(number string) (*entities.Student, error)
	List(filter students.ListFilter) ([]entities.Student, error)
	Update(student *entities.Student) error
	Delete(id uint) error
}

// MeetingStore provides meeting-log access for the meetings controller.
type MeetingStore interface {
	Create(meeting *entities.Meeting) error
	GetByID(id uint) (*entities.Meeting, error)
	List(filter meetings.ListFilter) ([]entities.Meeting, error)
	Update(meeting *entities.Meeting) error
	Delete(id uint) error
}

// ActivityStore provides activity-log access for the activities
// controller.
type ActivityStore interface {
	Create(activity *entities.Activity) error
	GetByID(id uint) (*entities.Activity, error)
	List(filter activities.ListFilter) ([]entities.Activity, error)
	Update(activity *entities.Activity) error
	Delete(id uint) error
}

// StudentStatsStore is the roster slice the dashboard needs.
type StudentStatsStore interface {
	Count() (int64, error)
	AverageProgress() (float64, error)
	RecentlyUpdated(limit int) ([]entities.Student, error)
}

// RangeCounter counts records with a date inside [from, to]. Both the
// meetings and activities repositories implement it.
type RangeCounter interface {
	CountInRange(from, to time.Time) (int64, error)
}
