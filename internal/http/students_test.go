package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validStudentPayload() map[string]any {
	return map[string]any{
		"number":           "1042",
		"first_name":       "Elif",
		"last_name":        "Kaya",
		"class":            "9A",
		"gender":           "female",
		"overall_progress": 72.5,
	}
}

func TestStudentsAPI_Create(t *testing.T) {
	env := setupTestRouter(t)

	rr := env.doJSON(t, http.MethodPost, "/api/students", validStudentPayload())
	require.Equal(t, http.StatusCreated, rr.Code)

	response := decodeResponse(t, rr)
	data := response["data"].(map[string]any)
	assert.Equal(t, "1042", data["number"])
	assert.NotZero(t, data["id"])
}

func TestStudentsAPI_Create_Validation(t *testing.T) {
	env := setupTestRouter(t)

	tests := []struct {
		name    string
		mutate  func(map[string]any)
		message string
	}{
		{"missing number", func(p map[string]any) { p["number"] = "" }, "number is required"},
		{"missing name", func(p map[string]any) { p["first_name"] = "" }, "first_name and last_name are required"},
		{"missing class", func(p map[string]any) { p["class"] = "" }, "class is required"},
		{"missing gender", func(p map[string]any) { p["gender"] = "" }, "gender is required"},
		{"progress out of range", func(p map[string]any) { p["overall_progress"] = 140.0 }, "overall_progress"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := validStudentPayload()
			tt.mutate(payload)

			rr := env.doJSON(t, http.MethodPost, "/api/students", payload)
			require.Equal(t, http.StatusBadRequest, rr.Code)
			response := decodeResponse(t, rr)
			assert.Contains(t, response["error"], tt.message)
		})
	}
}

func TestStudentsAPI_Create_DuplicateNumber(t *testing.T) {
	env := setupTestRouter(t)

	rr := env.doJSON(t, http.MethodPost, "/api/students", validStudentPayload())
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = env.doJSON(t, http.MethodPost, "/api/students", validStudentPayload())
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestStudentsAPI_Update_DuplicateNumber(t *testing.T) {
	env := setupTestRouter(t)

	require.Equal(t, http.StatusCreated,
		env.doJSON(t, http.MethodPost, "/api/students", validStudentPayload()).Code)

	second := validStudentPayload()
	second["number"] = "1043"
	require.Equal(t, http.StatusCreated,
		env.doJSON(t, http.MethodPost, "/api/students", second).Code)

	// Renumbering the second student onto the first must be rejected
	second["number"] = "1042"
	rr := env.doJSON(t, http.MethodPut, "/api/students/2", second)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, decodeResponse(t, rr)["error"], "already exists")

	// Keeping its own number is not a collision
	second["number"] = "1043"
	second["class"] = "10A"
	rr = env.doJSON(t, http.MethodPut, "/api/students/2", second)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestStudentsAPI_ListAndFilter(t *testing.T) {
	env := setupTestRouter(t)

	first := validStudentPayload()
	second := validStudentPayload()
	second["number"] = "1043"
	second["first_name"] = "Can"
	second["last_name"] = "Oz"
	second["class"] = "9B"

	require.Equal(t, http.StatusCreated, env.doJSON(t, http.MethodPost, "/api/students", first).Code)
	require.Equal(t, http.StatusCreated, env.doJSON(t, http.MethodPost, "/api/students", second).Code)

	rr := env.doJSON(t, http.MethodGet, "/api/students", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	data := decodeResponse(t, rr)["data"].(map[string]any)
	assert.Equal(t, float64(2), data["count"])

	rr = env.doJSON(t, http.MethodGet, "/api/students?class=9B", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	data = decodeResponse(t, rr)["data"].(map[string]any)
	assert.Equal(t, float64(1), data["count"])
}

func TestStudentsAPI_GetWithRisk(t *testing.T) {
	env := setupTestRouter(t)

	payload := validStudentPayload()
	payload["overall_progress"] = 10.0
	rr := env.doJSON(t, http.MethodPost, "/api/students", payload)
	require.Equal(t, http.StatusCreated, rr.Code)
	id := decodeResponse(t, rr)["data"].(map[string]any)["id"].(float64)

	rr = env.doJSON(t, http.MethodGet, "/api/students/1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	data := decodeResponse(t, rr)["data"].(map[string]any)
	assert.Equal(t, "high", data["risk"])
	assert.Equal(t, id, data["student"].(map[string]any)["id"])
}

func TestStudentsAPI_Get_NotFound(t *testing.T) {
	env := setupTestRouter(t)

	rr := env.doJSON(t, http.MethodGet, "/api/students/999", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = env.doJSON(t, http.MethodGet, "/api/students/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestStudentsAPI_UpdateAndDelete(t *testing.T) {
	env := setupTestRouter(t)

	rr := env.doJSON(t, http.MethodPost, "/api/students", validStudentPayload())
	require.Equal(t, http.StatusCreated, rr.Code)

	updated := validStudentPayload()
	updated["class"] = "10A"
	rr = env.doJSON(t, http.MethodPut, "/api/students/1", updated)
	require.Equal(t, http.StatusOK, rr.Code)
	data := decodeResponse(t, rr)["data"].(map[string]any)
	assert.Equal(t, "10A", data["class"])

	rr = env.doJSON(t, http.MethodDelete, "/api/students/1", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = env.doJSON(t, http.MethodGet, "/api/students/1", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
