package groups

import (
	"errors"
	"fmt"
	"testing"

	"autoschool/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memberKey struct {
	student uint
	group   uint
}

type fakeRepo struct {
	groups  map[uint]*models.Group
	users   map[uint]*models.User
	members map[memberKey]bool
	nextID  uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		groups:  make(map[uint]*models.Group),
		users:   make(map[uint]*models.User),
		members: make(map[memberKey]bool),
		nextID:  1,
	}
}

func (r *fakeRepo) CreateGroup(group *models.Group) error {
	group.ID = r.nextID
	r.nextID++
	r.groups[group.ID] = group
	return nil
}

func (r *fakeRepo) GetGroup(id uint) (*models.Group, error) {
	g, ok := r.groups[id]
	if !ok {
		return nil, fmt.Errorf("%w: group %d", models.ErrNotFound, id)
	}
	return g, nil
}

func (r *fakeRepo) ListGroups() ([]models.Group, error) {
	var out []models.Group
	for _, g := range r.groups {
		out = append(out, *g)
	}
	return out, nil
}

func (r *fakeRepo) DeleteGroup(id uint) error {
	if _, ok := r.groups[id]; !ok {
		return fmt.Errorf("%w: group %d", models.ErrNotFound, id)
	}
	delete(r.groups, id)
	for k := range r.members {
		if k.group == id {
			delete(r.members, k)
		}
	}
	return nil
}

func (r *fakeRepo) GetStudent(id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok || u.Role != models.RoleStudent {
		return nil, fmt.Errorf("%w: student %d", models.ErrNotFound, id)
	}
	return u, nil
}

func (r *fakeRepo) AddMember(studentID, groupID uint) (bool, error) {
	k := memberKey{studentID, groupID}
	if r.members[k] {
		return false, nil
	}
	r.members[k] = true
	return true, nil
}

func (r *fakeRepo) RemoveMember(studentID, groupID uint) error {
	k := memberKey{studentID, groupID}
	if !r.members[k] {
		return fmt.Errorf("%w: student %d is not in this group", models.ErrNotFound, studentID)
	}
	delete(r.members, k)
	return nil
}

func seed(t *testing.T, repo *fakeRepo) (groupID, studentID uint) {
	t.Helper()
	group := &models.Group{Name: "Evening cohort"}
	require.NoError(t, repo.CreateGroup(group))
	repo.users[50] = &models.User{ID: 50, Username: "cadet", Role: models.RoleStudent}
	repo.users[60] = &models.User{ID: 60, Username: "teach", Role: models.RoleInstructor}
	return group.ID, 50
}

func TestAddStudentIdempotent(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo)
	groupID, studentID := seed(t, repo)

	created, err := service.AddStudent(groupID, studentID)
	require.NoError(t, err)
	assert.True(t, created, "first add reports created")

	created, err = service.AddStudent(groupID, studentID)
	require.NoError(t, err)
	assert.False(t, created, "second add reports already present")

	assert.Len(t, repo.members, 1, "exactly one membership row")
}

func TestAddStudentValidation(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo)
	groupID, _ := seed(t, repo)

	_, err := service.AddStudent(groupID, 0)
	assert.True(t, errors.Is(err, models.ErrValidation), "missing student_id")

	_, err = service.AddStudent(groupID, 999)
	assert.True(t, errors.Is(err, models.ErrNotFound), "unknown student id")

	// An instructor's id is not a student id.
	_, err = service.AddStudent(groupID, 60)
	assert.True(t, errors.Is(err, models.ErrNotFound))

	_, err = service.AddStudent(999, 50)
	assert.True(t, errors.Is(err, models.ErrNotFound), "unknown group")
}

func TestRemoveStudent(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo)
	groupID, studentID := seed(t, repo)

	err := service.RemoveStudent(groupID, studentID)
	assert.True(t, errors.Is(err, models.ErrNotFound), "not a member yet")

	_, err = service.AddStudent(groupID, studentID)
	require.NoError(t, err)

	require.NoError(t, service.RemoveStudent(groupID, studentID))
	assert.Empty(t, repo.members)

	err = service.RemoveStudent(groupID, 0)
	assert.True(t, errors.Is(err, models.ErrValidation))
}

func TestRemoveStudentLeavesOtherMemberships(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo)
	groupID, studentID := seed(t, repo)
	repo.users[51] = &models.User{ID: 51, Username: "cadet2", Role: models.RoleStudent}

	_, err := service.AddStudent(groupID, studentID)
	require.NoError(t, err)
	_, err = service.AddStudent(groupID, 51)
	require.NoError(t, err)

	require.NoError(t, service.RemoveStudent(groupID, studentID))
	assert.True(t, repo.members[memberKey{51, groupID}], "other membership untouched")
}

func TestCreateGroupValidation(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo)

	_, err := service.Create(CreateGroupRequest{Name: ""})
	assert.True(t, errors.Is(err, models.ErrValidation))

	group, err := service.Create(CreateGroupRequest{Name: "Morning cohort", Description: "category B"})
	require.NoError(t, err)
	assert.NotZero(t, group.ID)
}
