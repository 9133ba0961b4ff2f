package http

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ekurtoglu/guidance/internal/audit"
	"github.com/ekurtoglu/guidance/internal/database/activities"
	"github.com/ekurtoglu/guidance/internal/entities"
)

// ActivitiesController serves the group activity log API.
type ActivitiesController struct {
	store    ActivityStore
	recorder *audit.Recorder
}

func NewActivitiesController(store ActivityStore, recorder *audit.Recorder) *ActivitiesController {
	return &ActivitiesController{store: store, recorder: recorder}
}

type activityPayload struct {
	Date         string `json:"date"` // YYYY-MM-DD
	Method       string `json:"method"`
	Description  string `json:"description"`
	TargetGroup  string `json:"target_group"`
	ActivityType string `json:"activity_type"`

	TeacherCount       int `json:"teacher_count"`
	ParentCount        int `json:"parent_count"`
	OtherCount         int `json:"other_count"`
	MaleStudentCount   int `json:"male_student_count"`
	FemaleStudentCount int `json:"female_student_count"`

	ClassInfo      string `json:"class_info"`
	DocumentNumber string `json:"document_number"`
}

func (p *activityPayload) validate() string {
	if p.Date == "" {
		return "date is required"
	}
	if p.Method == "" {
		return "method is required"
	}
	if p.Description == "" {
		return "description is required"
	}
	if p.TargetGroup == "" {
		return "target_group is required"
	}
	if p.ActivityType == "" {
		return "activity_type is required"
	}
	for _, count := range []int{p.TeacherCount, p.ParentCount, p.OtherCount, p.MaleStudentCount, p.FemaleStudentCount} {
		if count < 0 {
			return "participant counts must not be negative"
		}
	}
	return ""
}

func (p *activityPayload) apply(activity *entities.Activity) error {
	date, err := parseDate(p.Date)
	if err != nil {
		return err
	}

	activity.Date = date
	activity.Method = p.Method
	activity.Description = p.Description
	activity.TargetGroup = p.TargetGroup
	activity.ActivityType = p.ActivityType
	activity.TeacherCount = p.TeacherCount
	activity.ParentCount = p.ParentCount
	activity.OtherCount = p.OtherCount
	activity.MaleStudentCount = p.MaleStudentCount
	activity.FemaleStudentCount = p.FemaleStudentCount
	activity.ClassInfo = p.ClassInfo
	activity.DocumentNumber = p.DocumentNumber
	return nil
}

// List returns activities, optionally bounded by from/to dates and an
// activity type.
func (controller *ActivitiesController) List(c *gin.Context) {
	from, ok := parseDateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "to")
	if !ok {
		return
	}

	list, err := controller.store.List(activities.ListFilter{
		From:         from,
		To:           to,
		ActivityType: c.Query("type"),
	})
	if err != nil {
		respondInternalError(c, err, "list activities")
		return
	}

	totalParticipants := 0
	for i := range list {
		totalParticipants += list[i].ParticipantTotal()
	}

	respondData(c, gin.H{
		"activities":         list,
		"count":              len(list),
		"total_participants": totalParticipants,
	})
}

// Get returns a single activity.
func (controller *ActivitiesController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	activity, err := controller.store.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "activity")
			return
		}
		respondInternalError(c, err, "get activity")
		return
	}

	respondData(c, activity)
}

// Create records a new activity.
func (controller *ActivitiesController) Create(c *gin.Context) {
	var payload activityPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if msg := payload.validate(); msg != "" {
		respondBadRequest(c, msg)
		return
	}

	var activity entities.Activity
	if err := payload.apply(&activity); err != nil {
		respondBadRequest(c, "invalid date: expected YYYY-MM-DD")
		return
	}
	if err := controller.store.Create(&activity); err != nil {
		respondInternalError(c, err, "create activity")
		return
	}

	controller.recorder.RecordRequest(GetUserID(c), "activity_create", c.FullPath(), activity.ID, payload)
	respondCreated(c, activity)
}

// Update replaces an activity's editable fields.
func (controller *ActivitiesController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	activity, err := controller.store.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "activity")
			return
		}
		respondInternalError(c, err, "get activity")
		return
	}

	var payload activityPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if msg := payload.validate(); msg != "" {
		respondBadRequest(c, msg)
		return
	}

	if err := payload.apply(activity); err != nil {
		respondBadRequest(c, "invalid date: expected YYYY-MM-DD")
		return
	}
	if err := controller.store.Update(activity); err != nil {
		respondInternalError(c, err, "update activity")
		return
	}

	controller.recorder.RecordRequest(GetUserID(c), "activity_update", c.FullPath(), activity.ID, payload)
	respondData(c, activity)
}

// Delete removes an activity from the log.
func (controller *ActivitiesController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := controller.store.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "activity")
			return
		}
		respondInternalError(c, err, "get activity")
		return
	}

	if err := controller.store.Delete(id); err != nil {
		respondInternalError(c, err, "delete activity")
		return
	}

	controller.recorder.RecordRequest(GetUserID(c), "activity_delete", c.FullPath(), id, nil)
	respondData(c, gin.H{"deleted": id})
}
