package audit

import (
	"log"
	"time"
)

// Record is the envelope written for each archived request.
type Record struct {
	Time     time.Time `json:"time"`
	UserID   uint      `json:"user_id"`
	Action   string    `json:"action"` // e.g. "meeting_create"
	Path     string    `json:"path"`
	EntityID uint      `json:"entity_id,omitempty"`
	Payload  any       `json:"payload,omitempty"`
}

// Recorder wraps an Auditor with request-level semantics. A nil
// Recorder is valid and records nothing, so handlers never need a
// nil check, and a failed write never fails the request it documents.
type Recorder struct {
	auditor *Auditor
}

// NewRecorder creates a recorder writing to auditDir. An empty dir
// disables recording.
func NewRecorder(auditDir string) *Recorder {
	if auditDir == "" {
		return nil
	}
	return &Recorder{auditor: NewAuditor(auditDir)}
}

// RecordRequest archives one state-changing request. Errors are logged
// and swallowed.
func (r *Recorder) RecordRequest(userID uint, action, path string, entityID uint, payload any) {
	if r == nil {
		return
	}

	record := Record{
		Time:     time.Now(),
		UserID:   userID,
		Action:   action,
		Path:     path,
		EntityID: entityID,
		Payload:  payload,
	}

	if _, err := r.auditor.SaveJSON(record); err != nil {
		log.Printf("Failed to write audit record for %s: %v", action, err)
	}
}
