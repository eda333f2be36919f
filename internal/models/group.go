package models

import "time"

// Group is a cohort of students under one instructor. It is the unit of
// content distribution for lectures and tests.
type Group struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Name         string    `json:"name" gorm:"not null"`
	Description  string    `json:"description"`
	InstructorID *uint     `json:"instructor_id"`
	Instructor   *User     `json:"-" gorm:"constraint:OnDelete:SET NULL"`
}

// Membership links a student to a group. Unique per (student, group) pair;
// the composite index is what resolves duplicate-insert races.
type Membership struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	StudentID uint   `json:"student_id" gorm:"index:idx_student_group,unique;not null"`
	GroupID   uint   `json:"group_id" gorm:"index:idx_student_group,unique;not null"`
	Student   *User  `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Group     *Group `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}
