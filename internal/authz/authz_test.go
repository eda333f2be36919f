package authz

import (
	"errors"
	"net/http"
	"testing"

	"autoschool/internal/models"

	"github.com/stretchr/testify/assert"
)

func user(role models.Role, grants ...string) *models.User {
	u := &models.User{ID: 1, Username: "u", Role: role}
	for _, g := range grants {
		u.Grants = append(u.Grants, models.Grant{UserID: u.ID, Name: g})
	}
	return u
}

func TestRolePredicates(t *testing.T) {
	admin := user(models.RoleAdmin)
	instructor := user(models.RoleInstructor)
	student := user(models.RoleStudent)

	assert.True(t, IsAdmin(admin))
	assert.False(t, IsAdmin(instructor))
	assert.False(t, IsAdmin(nil))

	assert.True(t, IsInstructor(instructor))
	assert.False(t, IsInstructor(student))

	assert.True(t, IsStudent(student))
	assert.False(t, IsStudent(admin))

	assert.True(t, IsAdminOrInstructor(admin))
	assert.True(t, IsAdminOrInstructor(instructor))
	assert.False(t, IsAdminOrInstructor(student))
	assert.False(t, IsAdminOrInstructor(nil))
}

func TestIsAdminOrReadOnly(t *testing.T) {
	admin := user(models.RoleAdmin)
	student := user(models.RoleStudent)

	assert.True(t, IsAdminOrReadOnly(student, http.MethodGet))
	assert.True(t, IsAdminOrReadOnly(admin, http.MethodGet))
	assert.False(t, IsAdminOrReadOnly(nil, http.MethodGet))

	assert.True(t, IsAdminOrReadOnly(admin, http.MethodDelete))
	assert.False(t, IsAdminOrReadOnly(student, http.MethodDelete))
	assert.False(t, IsAdminOrReadOnly(student, http.MethodPost))
}

func TestCanCreateUser(t *testing.T) {
	cases := []struct {
		name      string
		requester *models.User
		target    models.Role
		allowed   bool
	}{
		{"admin without grant cannot create admin", user(models.RoleAdmin), models.RoleAdmin, false},
		{"grant holder can create admin", user(models.RoleStudent, models.GrantCreateAdmin), models.RoleAdmin, true},
		{"admin can create instructor", user(models.RoleAdmin), models.RoleInstructor, true},
		{"instructor cannot create instructor", user(models.RoleInstructor), models.RoleInstructor, false},
		{"instructor with grant can create instructor", user(models.RoleInstructor, models.GrantCreateInstructor), models.RoleInstructor, true},
		{"admin can create student", user(models.RoleAdmin), models.RoleStudent, true},
		{"instructor can create student", user(models.RoleInstructor), models.RoleStudent, true},
		{"student cannot create student", user(models.RoleStudent), models.RoleStudent, false},
		{"student with grant can create student", user(models.RoleStudent, models.GrantCreateStudent), models.RoleStudent, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CanCreateUser(tc.requester, tc.target)
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, models.ErrForbidden), "expected forbidden, got %v", err)
			}
		})
	}
}

func TestCanCreateUserUnknownRole(t *testing.T) {
	err := CanCreateUser(user(models.RoleAdmin), models.Role("superuser"))
	assert.True(t, errors.Is(err, models.ErrValidation))
}
