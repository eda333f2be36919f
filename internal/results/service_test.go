package results

import (
	"testing"

	"autoschool/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	all          []models.TestResult
	byStudent    map[uint][]models.TestResult
	byInstructor map[uint][]models.TestResult
}

func (r *fakeRepo) ListAll() ([]models.TestResult, error) {
	return r.all, nil
}

func (r *fakeRepo) ListByStudent(studentID uint) ([]models.TestResult, error) {
	return r.byStudent[studentID], nil
}

func (r *fakeRepo) ListByInstructor(instructorID uint) ([]models.TestResult, error) {
	return r.byInstructor[instructorID], nil
}

func TestListByRole(t *testing.T) {
	own := models.TestResult{ID: 1, TestID: 10, StudentID: 1, Score: 4, MaxScore: 5}
	other := models.TestResult{ID: 2, TestID: 10, StudentID: 2, Score: 5, MaxScore: 5}
	foreign := models.TestResult{ID: 3, TestID: 20, StudentID: 3, Score: 0, MaxScore: 5}

	repo := &fakeRepo{
		all:          []models.TestResult{own, other, foreign},
		byStudent:    map[uint][]models.TestResult{1: {own}},
		byInstructor: map[uint][]models.TestResult{9: {own, other}},
	}
	service := NewService(repo)

	got, err := service.List(&models.User{ID: 1, Role: models.RoleStudent})
	require.NoError(t, err)
	require.Len(t, got, 1, "students only see their own results")
	assert.Equal(t, uint(1), got[0].StudentID)

	got, err = service.List(&models.User{ID: 9, Role: models.RoleInstructor})
	require.NoError(t, err)
	assert.Len(t, got, 2, "instructors see results for their groups' tests")

	got, err = service.List(&models.User{ID: 7, Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Len(t, got, 3, "admins see the whole ledger")
}
