package http

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ekurtoglu/guidance/internal/audit"
	"github.com/ekurtoglu/guidance/internal/database/students"
	"github.com/ekurtoglu/guidance/internal/entities"
)

// StudentsController serves the student roster API.
type StudentsController struct {
	store    StudentStore
	recorder *audit.Recorder
}

func NewStudentsController(store StudentStore, recorder *audit.Recorder) *StudentsController {
	return &StudentsController{store: store, recorder: recorder}
}

type studentPayload struct {
	Number          string  `json:"number"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	Class           string  `json:"class"`
	Gender          string  `json:"gender"`
	Phone           string  `json:"phone"`
	Email           string  `json:"email"`
	OverallProgress float64 `json:"overall_progress"`
}

func (p *studentPayload) validate() string {
	if p.Number == "" {
		return "number is required"
	}
	if p.FirstName == "" || p.LastName == "" {
		return "first_name and last_name are required"
	}
	if p.Class == "" {
		return "class is required"
	}
	if p.Gender == "" {
		return "gender is required"
	}
	if p.OverallProgress < 0 || p.OverallProgress > 100 {
		return "overall_progress must be between 0 and 100"
	}
	return ""
}

func (p *studentPayload) apply(student *entities.Student) {
	student.Number = p.Number
	student.FirstName = p.FirstName
	student.LastName = p.LastName
	student.Class = p.Class
	student.Gender = p.Gender
	student.Phone = p.Phone
	student.Email = p.Email
	student.OverallProgress = p.OverallProgress
}

// List returns students, optionally filtered by class or a search term.
func (controller *StudentsController) List(c *gin.Context) {
	list, err := controller.store.List(students.ListFilter{
		Class:  c.Query("class"),
		Search: c.Query("search"),
	})
	if err != nil {
		respondInternalError(c, err, "list students")
		return
	}
	respondData(c, gin.H{"students": list, "count": len(list)})
}

// Get returns a single student with their risk classification.
func (controller *StudentsController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	student, err := controller.store.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "student")
			return
		}
		respondInternalError(c, err, "get student")
		return
	}

	respondData(c, gin.H{"student": student, "risk": student.Risk()})
}

// Create adds a student to the roster.
func (controller *StudentsController) Create(c *gin.Context) {
	var payload studentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if msg := payload.validate(); msg != "" {
		respondBadRequest(c, msg)
		return
	}

	if _, err := controller.store.GetByNumber(payload.Number); err == nil {
		respondBadRequest(c, "a student with this number already exists")
		return
	}

	var student entities.Student
	payload.apply(&student)
	if err := controller.store.Create(&student); err != nil {
		respondInternalError(c, err, "create student")
		return
	}

	controller.recorder.RecordRequest(GetUserID(c), "student_create", c.FullPath(), student.ID, payload)
	respondCreated(c, student)
}

// Update replaces a student's editable fields.
func (controller *StudentsController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	student, err := controller.store.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "student")
			return
		}
		respondInternalError(c, err, "get student")
		return
	}

	var payload studentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if msg := payload.validate(); msg != "" {
		respondBadRequest(c, msg)
		return
	}

	// A number change must not collide with another student
	if other, err := controller.store.GetByNumber(payload.Number); err == nil && other.ID != student.ID {
		respondBadRequest(c, "a student with this number already exists")
		return
	}

	payload.apply(student)
	if err := controller.store.Update(student); err != nil {
		respondInternalError(c, err, "update student")
		return
	}

	controller.recorder.RecordRequest(GetUserID(c), "student_update", c.FullPath(), student.ID, payload)
	respondData(c, student)
}

// Delete removes a student from the roster.
func (controller *StudentsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := controller.store.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "student")
			return
		}
		respondInternalError(c, err, "get student")
		return
	}

	if err := controller.store.Delete(id); err != nil {
		respondInternalError(c, err, "delete student")
		return
	}

	controller.recorder.RecordRequest(GetUserID(c), "student_delete", c.FullPath(), id, nil)
	respondData(c, gin.H{"deleted": id})
}
