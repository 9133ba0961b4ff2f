package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekurtoglu/guidance/internal/entities"
)

func TestDashboardAPI_Stats(t *testing.T) {
	env := setupTestRouter(t)

	now := time.Now()
	lastMonth := now.AddDate(0, -1, 0)

	require.NoError(t, env.students.Create(&entities.Student{
		Number: "1042", FirstName: "Elif", LastName: "Kaya", Class: "9A", OverallProgress: 20,
	}))
	require.NoError(t, env.students.Create(&entities.Student{
		Number: "1043", FirstName: "Can", LastName: "Oz", Class: "9B", OverallProgress: 80,
	}))

	// One meeting this month, one last month
	require.NoError(t, env.meetings.Create(&entities.Meeting{
		Date: now, StartTime: "09:00", EndTime: "09:30", PersonMet: "X", Topic: "T",
	}))
	require.NoError(t, env.meetings.Create(&entities.Meeting{
		Date: lastMonth, StartTime: "09:00", EndTime: "09:30", PersonMet: "Y", Topic: "U",
	}))

	require.NoError(t, env.activity.Create(&entities.Activity{
		Date: now, Description: "Seminar",
	}))

	rr := env.doJSON(t, http.MethodGet, "/api/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	data := decodeResponse(t, rr)["data"].(map[string]any)
	stats := data["stats"].(map[string]any)
	assert.Equal(t, float64(2), stats["student_count"])
	assert.Equal(t, float64(1), stats["meetings_this_month"])
	assert.Equal(t, float64(1), stats["activities_this_month"])
	assert.InDelta(t, 50.0, stats["average_progress"], 0.001)

	recent := data["recent_students"].([]any)
	require.NotEmpty(t, recent)
	// Each attention-list entry carries its risk bucket
	first := recent[0].(map[string]any)
	assert.Contains(t, []any{"high", "medium", "low"}, first["risk"])
}

func TestDashboardAPI_RecentStudents(t *testing.T) {
	env := setupTestRouter(t)

	for _, s := range []entities.Student{
		{Number: "1042", FirstName: "Elif", LastName: "Kaya", Class: "9A", OverallProgress: 10},
		{Number: "1043", FirstName: "Can", LastName: "Oz", Class: "9B", OverallProgress: 90},
	} {
		student := s
		require.NoError(t, env.students.Create(&student))
	}

	rr := env.doJSON(t, http.MethodGet, "/api/dashboard/recent-students", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	data := decodeResponse(t, rr)["data"].(map[string]any)
	listed := data["students"].([]any)
	require.Len(t, listed, 2)

	first := listed[0].(map[string]any)
	assert.Contains(t, []any{"high", "medium", "low"}, first["risk"])
}

func TestMonthRange(t *testing.T) {
	now := time.Date(2026, time.March, 17, 14, 30, 0, 0, time.UTC)
	from, to := monthRange(now)

	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.March, to.Month())
	assert.Equal(t, 31, to.Day())
	assert.True(t, to.Before(time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)))
}
