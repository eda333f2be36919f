package models

import "time"

type Lecture struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	Title     string         `json:"title" gorm:"not null"`
	Content   string         `json:"content"`
	AuthorID  uint           `json:"author_id"`
	Groups    []Group        `json:"groups,omitempty" gorm:"many2many:lecture_groups;constraint:OnDelete:CASCADE"`
	Images    []LectureImage `json:"images,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

// LectureImage references an uploaded file by its storage path; the bytes
// themselves live in the media store.
type LectureImage struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	LectureID uint   `json:"lecture_id" gorm:"not null"`
	Path      string `json:"image" gorm:"not null"`
	Caption   string `json:"caption"`
}
