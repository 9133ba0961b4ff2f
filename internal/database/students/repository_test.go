package students

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ekurtoglu/guidance/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	dbPath := "./test_students_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Student{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

func seedStudent(t *testing.T, repo *Repository, number, firstName, lastName, class string, progress float64) *entities.Student {
	t.Helper()
	student := &entities.Student{
		Number:          number,
		FirstName:       firstName,
		LastName:        lastName,
		Class:           class,
		OverallProgress: progress,
	}
	require.NoError(t, repo.Create(student))
	return student
}

func TestRepository_CreateAndGet(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	created := seedStudent(t, repo, "1042", "Elif", "Kaya", "9A", 72)

	byID, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Elif Kaya", byID.FullName())

	byNumber, err := repo.GetByNumber("1042")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byNumber.ID)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.GetByID(9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_DuplicateNumber(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	seedStudent(t, repo, "1042", "Elif", "Kaya", "9A", 72)
	err := repo.Create(&entities.Student{Number: "1042", FirstName: "Can", LastName: "Oz", Class: "9B"})
	assert.Error(t, err)
}

func TestRepository_List_ClassFilter(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	seedStudent(t, repo, "1042", "Elif", "Kaya", "9A", 72)
	seedStudent(t, repo, "1043", "Can", "Oz", "9B", 30)
	seedStudent(t, repo, "1044", "Zeynep", "Arslan", "9A", 55)

	list, err := repo.List(ListFilter{Class: "9A"})
	require.NoError(t, err)
	assert.Len(t, list, 2)
	for _, s := range list {
		assert.Equal(t, "9A", s.Class)
	}
}

func TestRepository_List_Search(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	seedStudent(t, repo, "1042", "Elif", "Kaya", "9A", 72)
	seedStudent(t, repo, "1043", "Can", "Oz", "9B", 30)

	byName, err := repo.List(ListFilter{Search: "kaya"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Elif", byName[0].FirstName)

	byNumber, err := repo.List(ListFilter{Search: "1043"})
	require.NoError(t, err)
	require.Len(t, byNumber, 1)
	assert.Equal(t, "Can", byNumber[0].FirstName)
}

func TestRepository_UpdateAndDelete(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	student := seedStudent(t, repo, "1042", "Elif", "Kaya", "9A", 72)

	student.Class = "10A"
	require.NoError(t, repo.Update(student))

	updated, err := repo.GetByID(student.ID)
	require.NoError(t, err)
	assert.Equal(t, "10A", updated.Class)

	require.NoError(t, repo.Delete(student.ID))
	_, err = repo.GetByID(student.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_CountAndAverage(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Zero(t, count)

	avg, err := repo.AverageProgress()
	require.NoError(t, err)
	assert.Zero(t, avg)

	seedStudent(t, repo, "1042", "Elif", "Kaya", "9A", 80)
	seedStudent(t, repo, "1043", "Can", "Oz", "9B", 40)

	count, err = repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	avg, err = repo.AverageProgress()
	require.NoError(t, err)
	assert.InDelta(t, 60.0, avg, 0.001)
}

func TestRepository_Classes(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	seedStudent(t, repo, "1042", "Elif", "Kaya", "9B", 80)
	seedStudent(t, repo, "1043", "Can", "Oz", "9A", 40)
	seedStudent(t, repo, "1044", "Zeynep", "Arslan", "9A", 55)

	classes, err := repo.Classes()
	require.NoError(t, err)
	assert.Equal(t, []string{"9A", "9B"}, classes)
}
