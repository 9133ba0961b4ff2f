package http

import (
	"errors"
	"regexp"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ekurtoglu/guidance/internal/audit"
	"github.com/ekurtoglu/guidance/internal/database/meetings"
	"github.com/ekurtoglu/guidance/internal/entities"
)

var timeOfDayRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// MeetingsController serves the meeting log API.
type MeetingsController struct {
	store    MeetingStore
	students StudentStore
	recorder *audit.Recorder
}

func NewMeetingsController(store MeetingStore, students StudentStore, recorder *audit.Recorder) *MeetingsController {
	return &MeetingsController{store: store, students: students, recorder: recorder}
}

type meetingPayload struct {
	StudentID *uint  `json:"student_id"`
	Date      string `json:"date"` // YYYY-MM-DD
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`

	PersonMet    string `json:"person_met"`
	PersonRole   string `json:"person_role"`
	Relationship string `json:"relationship"`

	Topic                  string `json:"topic"`
	WorkArea               string `json:"work_area"`
	WorkCategory           string `json:"work_category"`
	ServiceType            string `json:"service_type"`
	InstitutionCooperation string `json:"institution_cooperation"`
	Location               string `json:"location"`

	Disciplinary     bool   `json:"disciplinary"`
	JudicialReferral bool   `json:"judicial_referral"`
	Method           string `json:"method"`
	Summary          string `json:"summary"`
}

func (p *meetingPayload) validate() string {
	if p.Date == "" {
		return "date is required"
	}
	if p.PersonMet == "" {
		return "person_met is required"
	}
	if p.Topic == "" {
		return "topic is required"
	}
	if !timeOfDayRe.MatchString(p.StartTime) {
		return "invalid start_time: expected HH:MM"
	}
	if !timeOfDayRe.MatchString(p.EndTime) {
		return "invalid end_time: expected HH:MM"
	}
	return ""
}

func (p *meetingPayload) apply(meeting *entities.Meeting) error {
	date, err := parseDate(p.Date)
	if err != nil {
		return err
	}

	meeting.StudentID = p.StudentID
	meeting.Date = date
	meeting.StartTime = p.StartTime
	meeting.EndTime = p.EndTime
	meeting.PersonMet = p.PersonMet
	meeting.PersonRole = p.PersonRole
	meeting.Relationship = p.Relationship
	meeting.Topic = p.Topic
	meeting.WorkArea = p.WorkArea
	meeting.WorkCategory = p.WorkCategory
	meeting.ServiceType = p.ServiceType
	meeting.InstitutionCooperation = p.InstitutionCooperation
	meeting.Location = p.Location
	meeting.Disciplinary = p.Disciplinary
	meeting.JudicialReferral = p.JudicialReferral
	meeting.Method = p.Method
	meeting.Summary = p.Summary
	return nil
}

// checkStudent verifies the referenced student exists when a reference
// is given.
func (controller *MeetingsController) checkStudent(c *gin.Context, studentID *uint) bool {
	if studentID == nil {
		return true
	}
	if _, err := controller.students.GetByID(*studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondBadRequest(c, "referenced student does not exist")
			return false
		}
		respondInternalError(c, err, "check student")
		return false
	}
	return true
}

// List returns meetings, optionally bounded by from/to dates and a
// student filter.
func (controller *MeetingsController) List(c *gin.Context) {
	from, ok := parseDateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "to")
	if !ok {
		return
	}

	filter := meetings.ListFilter{From: from, To: to}
	if raw := c.Query("student_id"); raw != "" {
		id, err := parseUintQuery(raw)
		if err != nil {
			respondBadRequest(c, "invalid student_id")
			return
		}
		filter.StudentID = id
	}

	list, err := controller.store.List(filter)
	if err != nil {
		respondInternalError(c, err, "list meetings")
		return
	}
	respondData(c, gin.H{"meetings": list, "count": len(list)})
}

// Get returns a single meeting with its student preloaded.
func (controller *MeetingsController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	meeting, err := controller.store.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "meeting")
			return
		}
		respondInternalError(c, err, "get meeting")
		return
	}

	respondData(c, meeting)
}

// Create records a new meeting.
func (controller *MeetingsController) Create(c *gin.Context) {
	var payload meetingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if msg := payload.validate(); msg != "" {
		respondBadRequest(c, msg)
		return
	}
	if !controller.checkStudent(c, payload.StudentID) {
		return
	}

	var meeting entities.Meeting
	if err := payload.apply(&meeting); err != nil {
		respondBadRequest(c, "invalid date: expected YYYY-MM-DD")
		return
	}
	if err := controller.store.Create(&meeting); err != nil {
		respondInternalError(c, err, "create meeting")
		return
	}

	controller.recorder.RecordRequest(GetUserID(c), "meeting_create", c.FullPath(), meeting.ID, payload)
	respondCreated(c, meeting)
}

// Update replaces a meeting's editable fields.
func (controller *MeetingsController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	meeting, err := controller.store.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "meeting")
			return
		}
		respondInternalError(c, err, "get meeting")
		return
	}

	var payload meetingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if msg := payload.validate(); msg != "" {
		respondBadRequest(c, msg)
		return
	}
	if !controller.checkStudent(c, payload.StudentID) {
		return
	}

	if err := payload.apply(meeting); err != nil {
		respondBadRequest(c, "invalid date: expected YYYY-MM-DD")
		return
	}
	meeting.Student = nil
	if err := controller.store.Update(meeting); err != nil {
		respondInternalError(c, err, "update meeting")
		return
	}

	controller.recorder.RecordRequest(GetUserID(c), "meeting_update", c.FullPath(), meeting.ID, payload)
	respondData(c, meeting)
}

// Delete removes a meeting from the log.
func (controller *MeetingsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := controller.store.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "meeting")
			return
		}
		respondInternalError(c, err, "get meeting")
		return
	}

	if err := controller.store.Delete(id); err != nil {
		respondInternalError(c, err, "delete meeting")
		return
	}

	controller.recorder.RecordRequest(GetUserID(c), "meeting_delete", c.FullPath(), id, nil)
	respondData(c, gin.H{"deleted": id})
}
