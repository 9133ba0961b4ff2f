package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ekurtoglu/guidance/internal/auth"
	"github.com/ekurtoglu/guidance/internal/database/activities"
	"github.com/ekurtoglu/guidance/internal/database/meetings"
	"github.com/ekurtoglu/guidance/internal/database/students"
)

// UIController renders the server-side pages. All of its routes sit
// behind the session gate.
type UIController struct {
	students   StudentStore
	meetings   MeetingStore
	activities ActivityStore
	dashboard  *DashboardController
}

func NewUIController(studentStore StudentStore, meetingStore MeetingStore, activityStore ActivityStore, dashboard *DashboardController) *UIController {
	return &UIController{
		students:   studentStore,
		meetings:   meetingStore,
		activities: activityStore,
		dashboard:  dashboard,
	}
}

// pageData builds the common template context: the signed-in user plus
// page-specific values.
func pageData(c *gin.Context, title string, extra gin.H) gin.H {
	data := gin.H{
		"Title":     title,
		"User":      auth.CurrentUser(c),
		"CSRFToken": auth.GetCSRFToken(c),
	}
	for key, value := range extra {
		data[key] = value
	}
	return data
}

// DashboardPage renders the landing page with the month's aggregates.
func (controller *UIController) DashboardPage(c *gin.Context) {
	stats, err := controller.dashboard.stats(time.Now())
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to load dashboard")
		return
	}

	recent, err := controller.dashboard.recentStudents()
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to load dashboard")
		return
	}

	c.HTML(http.StatusOK, "dashboard.html", pageData(c, "Dashboard", gin.H{
		"Stats":          stats,
		"RecentStudents": recent,
	}))
}

// StudentsPage renders the roster with optional class filtering.
func (controller *UIController) StudentsPage(c *gin.Context) {
	list, err := controller.students.List(students.ListFilter{
		Class:  c.Query("class"),
		Search: c.Query("search"),
	})
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to load students")
		return
	}

	c.HTML(http.StatusOK, "students.html", pageData(c, "Students", gin.H{
		"Students": list,
		"Class":    c.Query("class"),
		"Search":   c.Query("search"),
	}))
}

// StudentPage renders one student with their meeting history.
func (controller *UIController) StudentPage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	student, err := controller.students.GetByID(id)
	if err != nil {
		c.String(http.StatusNotFound, "student not found")
		return
	}

	history, err := controller.meetings.List(meetings.ListFilter{StudentID: student.ID})
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to load meetings")
		return
	}

	c.HTML(http.StatusOK, "student.html", pageData(c, student.FullName(), gin.H{
		"Student":  student,
		"Risk":     student.Risk(),
		"Meetings": history,
	}))
}

// MeetingsPage renders the meeting log.
func (controller *UIController) MeetingsPage(c *gin.Context) {
	list, err := controller.meetings.List(meetings.ListFilter{})
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to load meetings")
		return
	}

	c.HTML(http.StatusOK, "meetings.html", pageData(c, "Meetings", gin.H{
		"Meetings": list,
	}))
}

// ActivitiesPage renders the group activity log.
func (controller *UIController) ActivitiesPage(c *gin.Context) {
	list, err := controller.activities.List(activities.ListFilter{})
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to load activities")
		return
	}

	c.HTML(http.StatusOK, "activities.html", pageData(c, "Activities", gin.H{
		"Activities": list,
	}))
}

// ReportsPage renders the export form.
func (controller *UIController) ReportsPage(c *gin.Context) {
	c.HTML(http.StatusOK, "reports.html", pageData(c, "Reports", nil))
}
