package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validMeetingPayload() map[string]any {
	return map[string]any{
		"date":       "2026-03-10",
		"start_time": "10:00",
		"end_time":   "10:30",
		"person_met": "Elif Kaya",
		"topic":      "Exam anxiety",
	}
}

func TestMeetingsAPI_Create(t *testing.T) {
	env := setupTestRouter(t)

	rr := env.doJSON(t, http.MethodPost, "/api/meetings", validMeetingPayload())
	require.Equal(t, http.StatusCreated, rr.Code)

	data := decodeResponse(t, rr)["data"].(map[string]any)
	assert.Equal(t, "Exam anxiety", data["topic"])
}

func TestMeetingsAPI_Create_Validation(t *testing.T) {
	env := setupTestRouter(t)

	tests := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"missing date", func(p map[string]any) { p["date"] = "" }},
		{"malformed date", func(p map[string]any) { p["date"] = "10.03.2026" }},
		{"missing person", func(p map[string]any) { p["person_met"] = "" }},
		{"missing topic", func(p map[string]any) { p["topic"] = "" }},
		{"missing start time", func(p map[string]any) { p["start_time"] = "" }},
		{"missing end time", func(p map[string]any) { p["end_time"] = "" }},
		{"bad start time", func(p map[string]any) { p["start_time"] = "25:00" }},
		{"bad end time", func(p map[string]any) { p["end_time"] = "9am" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := validMeetingPayload()
			tt.mutate(payload)
			rr := env.doJSON(t, http.MethodPost, "/api/meetings", payload)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestMeetingsAPI_Create_UnknownStudent(t *testing.T) {
	env := setupTestRouter(t)

	payload := validMeetingPayload()
	payload["student_id"] = 999
	rr := env.doJSON(t, http.MethodPost, "/api/meetings", payload)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	response := decodeResponse(t, rr)
	assert.Contains(t, response["error"], "student")
}

func TestMeetingsAPI_Create_WithStudent(t *testing.T) {
	env := setupTestRouter(t)

	require.Equal(t, http.StatusCreated,
		env.doJSON(t, http.MethodPost, "/api/students", validStudentPayload()).Code)

	payload := validMeetingPayload()
	payload["student_id"] = 1
	rr := env.doJSON(t, http.MethodPost, "/api/meetings", payload)
	require.Equal(t, http.StatusCreated, rr.Code)

	// The fetched meeting carries the student reference
	rr = env.doJSON(t, http.MethodGet, "/api/meetings/1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	data := decodeResponse(t, rr)["data"].(map[string]any)
	assert.Equal(t, float64(1), data["student_id"])
}

func TestMeetingsAPI_ListDateRange(t *testing.T) {
	env := setupTestRouter(t)

	for _, day := range []string{"2026-03-01", "2026-03-20", "2026-04-05"} {
		payload := validMeetingPayload()
		payload["date"] = day
		require.Equal(t, http.StatusCreated,
			env.doJSON(t, http.MethodPost, "/api/meetings", payload).Code)
	}

	rr := env.doJSON(t, http.MethodGet, "/api/meetings?from=2026-03-01&to=2026-03-31", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	data := decodeResponse(t, rr)["data"].(map[string]any)
	assert.Equal(t, float64(2), data["count"])

	rr = env.doJSON(t, http.MethodGet, "/api/meetings?from=not-a-date", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestMeetingsAPI_UpdateAndDelete(t *testing.T) {
	env := setupTestRouter(t)

	require.Equal(t, http.StatusCreated,
		env.doJSON(t, http.MethodPost, "/api/meetings", validMeetingPayload()).Code)

	updated := validMeetingPayload()
	updated["topic"] = "Follow-up"
	updated["disciplinary"] = true
	rr := env.doJSON(t, http.MethodPut, "/api/meetings/1", updated)
	require.Equal(t, http.StatusOK, rr.Code)
	data := decodeResponse(t, rr)["data"].(map[string]any)
	assert.Equal(t, "Follow-up", data["topic"])
	assert.Equal(t, true, data["disciplinary"])

	rr = env.doJSON(t, http.MethodDelete, "/api/meetings/1", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = env.doJSON(t, http.MethodGet, "/api/meetings/1", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
