package models

import "time"

type Test struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description"`
	AuthorID    uint       `json:"author_id"`
	Groups      []Group    `json:"groups,omitempty" gorm:"many2many:test_groups;constraint:OnDelete:CASCADE"`
	Questions   []Question `json:"questions,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

type Question struct {
	ID        uint     `json:"id" gorm:"primaryKey"`
	TestID    uint     `json:"test_id" gorm:"not null"`
	Text      string   `json:"text" gorm:"not null"`
	ImagePath string   `json:"image,omitempty"`
	Answers   []Answer `json:"answers,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

type Answer struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	QuestionID uint   `json:"question_id" gorm:"not null"`
	Text       string `json:"text" gorm:"not null"`
	IsCorrect  bool   `json:"is_correct"`
}

// TestResult is one row of the append-only result ledger. There is no update
// or delete path; repeated submissions by the same student create new rows.
type TestResult struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TestID    uint      `json:"test" gorm:"not null"`
	StudentID uint      `json:"student" gorm:"not null"`
	Score     int       `json:"score"`
	MaxScore  int       `json:"max_score"`
	DateTaken time.Time `json:"date_taken"`
}
