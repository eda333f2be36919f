package models

import (
	"fmt"
	"time"
)

// Role is the closed set of account types. It is fixed at creation time;
// there is no endpoint that changes a user's role afterwards.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleInstructor Role = "instructor"
	RoleStudent    Role = "student"
)

// ParseRole validates a role string coming in from a request body.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleInstructor, RoleStudent:
		return Role(s), nil
	}
	return "", fmt.Errorf("%w: unknown role %q", ErrValidation, s)
}

type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Username    string    `json:"username" gorm:"uniqueIndex;not null"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Role        Role      `json:"role" gorm:"type:varchar(10);not null"`
	PhoneNumber string    `json:"phone_number"`
	Password    string    `json:"-" gorm:"not null"`
	Grants      []Grant   `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// Grant is a fine-grained permission attached to a user, independent of its
// role. Used by the user-creation policy (create_admin, create_instructor,
// create_student).
type Grant struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	UserID uint   `json:"user_id" gorm:"index:idx_user_grant,unique;not null"`
	Name   string `json:"name" gorm:"index:idx_user_grant,unique;not null"`
}

const (
	GrantCreateAdmin      = "create_admin"
	GrantCreateInstructor = "create_instructor"
	GrantCreateStudent    = "create_student"
)

func (u *User) HasGrant(name string) bool {
	for _, g := range u.Grants {
		if g.Name == name {
			return true
		}
	}
	return false
}
