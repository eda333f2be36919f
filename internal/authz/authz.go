// Package authz is the authorization gateway: pure predicates over the
// requester's role and grants. All policy lives here so that handlers and
// services never compare role strings directly.
package authz

import (
	"fmt"
	"net/http"

	"autoschool/internal/models"
)

func IsAdmin(u *models.User) bool {
	return u != nil && u.Role == models.RoleAdmin
}

func IsInstructor(u *models.User) bool {
	return u != nil && u.Role == models.RoleInstructor
}

func IsStudent(u *models.User) bool {
	return u != nil && u.Role == models.RoleStudent
}

// IsAdminOrInstructor gates group, lecture, and test mutation endpoints.
func IsAdminOrInstructor(u *models.User) bool {
	return IsAdmin(u) || IsInstructor(u)
}

// IsAdminOrReadOnly allows any authenticated requester through for safe
// methods; mutations require admin.
func IsAdminOrReadOnly(u *models.User, method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return u != nil
	}
	return IsAdmin(u)
}

// CanCreateUser decides whether the requester may create an account with the
// given role. Creating an admin always requires the create_admin grant;
// admins may create instructors, admins and instructors may create students,
// and each role has a matching grant that substitutes for the role check.
// Returns a Forbidden error with a human-readable reason on denial.
func CanCreateUser(requester *models.User, role models.Role) error {
	switch role {
	case models.RoleAdmin:
		if !requester.HasGrant(models.GrantCreateAdmin) {
			return fmt.Errorf("%w: you do not have permission to create administrators", models.ErrForbidden)
		}
	case models.RoleInstructor:
		if !IsAdmin(requester) && !requester.HasGrant(models.GrantCreateInstructor) {
			return fmt.Errorf("%w: you do not have permission to create instructors", models.ErrForbidden)
		}
	case models.RoleStudent:
		if !IsAdminOrInstructor(requester) && !requester.HasGrant(models.GrantCreateStudent) {
			return fmt.Errorf("%w: you do not have permission to create students", models.ErrForbidden)
		}
	default:
		return fmt.Errorf("%w: unknown role %q", models.ErrValidation, role)
	}
	return nil
}
