package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ekurtoglu/guidance/internal/entities"
)

// recentStudentLimit caps the dashboard's attention list.
const recentStudentLimit = 5

// DashboardController aggregates the numbers shown on the landing page.
type DashboardController struct {
	students   StudentStatsStore
	meetings   RangeCounter
	activities RangeCounter
}

func NewDashboardController(students StudentStatsStore, meetings, activities RangeCounter) *DashboardController {
	return &DashboardController{
		students:   students,
		meetings:   meetings,
		activities: activities,
	}
}

// DashboardStats is the aggregate block on the dashboard.
type DashboardStats struct {
	StudentCount        int64   `json:"student_count"`
	MeetingsThisMonth   int64   `json:"meetings_this_month"`
	ActivitiesThisMonth int64   `json:"activities_this_month"`
	AverageProgress     float64 `json:"average_progress"`
}

// recentStudent decorates a roster entry with its risk bucket.
type recentStudent struct {
	entities.Student
	Risk entities.RiskLevel `json:"risk"`
}

// monthRange returns the first and last instant of now's month.
func monthRange(now time.Time) (time.Time, time.Time) {
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return from, to
}

func (controller *DashboardController) stats(now time.Time) (*DashboardStats, error) {
	from, to := monthRange(now)

	studentCount, err := controller.students.Count()
	if err != nil {
		return nil, err
	}
	meetingCount, err := controller.meetings.CountInRange(from, to)
	if err != nil {
		return nil, err
	}
	activityCount, err := controller.activities.CountInRange(from, to)
	if err != nil {
		return nil, err
	}
	avgProgress, err := controller.students.AverageProgress()
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		StudentCount:        studentCount,
		MeetingsThisMonth:   meetingCount,
		ActivitiesThisMonth: activityCount,
		AverageProgress:     avgProgress,
	}, nil
}

func (controller *DashboardController) recentStudents() ([]recentStudent, error) {
	recent, err := controller.students.RecentlyUpdated(recentStudentLimit)
	if err != nil {
		return nil, err
	}

	decorated := make([]recentStudent, 0, len(recent))
	for _, s := range recent {
		decorated = append(decorated, recentStudent{Student: s, Risk: s.Risk()})
	}
	return decorated, nil
}

// Stats returns the dashboard aggregates as JSON.
func (controller *DashboardController) Stats(c *gin.Context) {
	stats, err := controller.stats(time.Now())
	if err != nil {
		respondInternalError(c, err, "dashboard stats")
		return
	}

	recent, err := controller.recentStudents()
	if err != nil {
		respondInternalError(c, err, "recent students")
		return
	}

	respondData(c, gin.H{
		"stats":           stats,
		"recent_students": recent,
	})
}

// RecentStudents returns the attention list on its own.
func (controller *DashboardController) RecentStudents(c *gin.Context) {
	recent, err := controller.recentStudents()
	if err != nil {
		respondInternalError(c, err, "recent students")
		return
	}
	respondData(c, gin.H{"students": recent})
}
