package http

import (
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ekurtoglu/guidance/internal/database/activities"
	"github.com/ekurtoglu/guidance/internal/database/meetings"
)

// ReportsController produces CSV exports of the meeting and activity
// logs for the ministry's periodic reporting forms.
type ReportsController struct {
	meetings   MeetingStore
	activities ActivityStore
}

func NewReportsController(meetings MeetingStore, activities ActivityStore) *ReportsController {
	return &ReportsController{meetings: meetings, activities: activities}
}

func writeCSV(c *gin.Context, filename string, header []string, rows [][]string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	writer := csv.NewWriter(c.Writer)
	_ = writer.Write(header)
	for _, row := range rows {
		_ = writer.Write(row)
	}
	writer.Flush()
}

func boolMark(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

// MeetingsCSV exports meetings in a date range as CSV.
func (controller *ReportsController) MeetingsCSV(c *gin.Context) {
	from, ok := parseDateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "to")
	if !ok {
		return
	}

	list, err := controller.meetings.List(meetings.ListFilter{From: from, To: to})
	if err != nil {
		respondInternalError(c, err, "meetings report")
		return
	}

	header := []string{
		"date", "start_time", "end_time", "person_met", "person_role",
		"student", "topic", "work_area", "service_type", "location",
		"disciplinary", "judicial_referral", "summary",
	}
	rows := make([][]string, 0, len(list))
	for i := range list {
		m := &list[i]
		studentName := ""
		if m.Student != nil {
			studentName = m.Student.FullName()
		}
		rows = append(rows, []string{
			m.Date.Format(dateLayout), m.StartTime, m.EndTime,
			m.PersonMet, m.PersonRole, studentName, m.Topic,
			m.WorkArea, m.ServiceType, m.Location,
			boolMark(m.Disciplinary), boolMark(m.JudicialReferral),
			m.Summary,
		})
	}

	writeCSV(c, "meetings.csv", header, rows)
}

// ActivitiesCSV exports activities in a date range as CSV.
func (controller *ReportsController) ActivitiesCSV(c *gin.Context) {
	from, ok := parseDateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "to")
	if !ok {
		return
	}

	list, err := controller.activities.List(activities.ListFilter{From: from, To: to})
	if err != nil {
		respondInternalError(c, err, "activities report")
		return
	}

	header := []string{
		"date", "activity_type", "method", "description", "target_group",
		"teachers", "parents", "male_students", "female_students", "other",
		"total_participants", "class_info", "document_number",
	}
	rows := make([][]string, 0, len(list))
	for i := range list {
		a := &list[i]
		rows = append(rows, []string{
			a.Date.Format(dateLayout), a.ActivityType, a.Method,
			a.Description, a.TargetGroup,
			strconv.Itoa(a.TeacherCount), strconv.Itoa(a.ParentCount),
			strconv.Itoa(a.MaleStudentCount), strconv.Itoa(a.FemaleStudentCount),
			strconv.Itoa(a.OtherCount), strconv.Itoa(a.ParticipantTotal()),
			a.ClassInfo, a.DocumentNumber,
		})
	}

	writeCSV(c, "activities.csv", header, rows)
}
