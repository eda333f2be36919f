package tests

import (
	"errors"
	"fmt"

	"autoschool/internal/models"

	"gorm.io/gorm"
)

type Repository interface {
	CreateTest(test *models.Test, groupIDs []uint) error
	ListAll() ([]models.Test, error)
	ListForStudent(studentID uint) ([]models.Test, error)
	GetByID(id uint) (*models.Test, error)
	GetForStudent(id, studentID uint) (*models.Test, error)
	DeleteTest(id uint) error
	AddQuestion(question *models.Question) error
	GetQuestion(testID, questionID uint) (*models.Question, error)
	HasCorrectAnswer(questionID uint) (bool, error)
	AddAnswer(answer *models.Answer) error
	CreateResult(result *models.TestResult) error
}

type GormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// preloadQuestions orders questions and answers by id so that "the first
// correct answer" is deterministic.
func preloadQuestions(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.id")
		}).
		Preload("Questions.Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answers.id")
		})
}

func (r *GormRepository) CreateTest(test *models.Test, groupIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(test).Error; err != nil {
			return err
		}
		if len(groupIDs) == 0 {
			return nil
		}
		var groups []models.Group
		if err := tx.Find(&groups, groupIDs).Error; err != nil {
			return err
		}
		if len(groups) != len(groupIDs) {
			return fmt.Errorf("%w: one or more groups do not exist", models.ErrNotFound)
		}
		if err := tx.Model(test).Association("Groups").Append(groups); err != nil {
			return err
		}
		return nil
	})
}

func (r *GormRepository) ListAll() ([]models.Test, error) {
	var tests []models.Test
	err := preloadQuestions(r.db).Preload("Groups").Order("id").Find(&tests).Error
	if err != nil {
		return nil, err
	}
	return tests, nil
}

func (r *GormRepository) ListForStudent(studentID uint) ([]models.Test, error) {
	var tests []models.Test
	err := preloadQuestions(r.db).
		Distinct("tests.*").
		Joins("JOIN test_groups tg ON tg.test_id = tests.id").
		Joins("JOIN memberships m ON m.group_id = tg.group_id").
		Where("m.student_id = ?", studentID).
		Order("tests.id").
		Find(&tests).Error
	if err != nil {
		return nil, err
	}
	return tests, nil
}

func (r *GormRepository) GetByID(id uint) (*models.Test, error) {
	var test models.Test
	err := preloadQuestions(r.db).Preload("Groups").First(&test, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: test %d", models.ErrNotFound, id)
		}
		return nil, err
	}
	return &test, nil
}

func (r *GormRepository) GetForStudent(id, studentID uint) (*models.Test, error) {
	var test models.Test
	err := preloadQuestions(r.db).
		Joins("JOIN test_groups tg ON tg.test_id = tests.id").
		Joins("JOIN memberships m ON m.group_id = tg.group_id").
		Where("tests.id = ? AND m.student_id = ?", id, studentID).
		First(&test).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: test %d", models.ErrNotFound, id)
		}
		return nil, err
	}
	return &test, nil
}

func (r *GormRepository) DeleteTest(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var questionIDs []uint
		if err := tx.Model(&models.Question{}).Where("test_id = ?", id).
			Pluck("id", &questionIDs).Error; err != nil {
			return err
		}
		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&models.Answer{}).Error; err != nil {
				return err
			}
			if err := tx.Where("test_id = ?", id).Delete(&models.Question{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Exec("DELETE FROM test_groups WHERE test_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Test{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: test %d", models.ErrNotFound, id)
		}
		return nil
	})
}

func (r *GormRepository) AddQuestion(question *models.Question) error {
	return r.db.Create(question).Error
}

// GetQuestion requires the question to belong to the given test, so an
// id/parent mismatch reads as not found.
func (r *GormRepository) GetQuestion(testID, questionID uint) (*models.Question, error) {
	var question models.Question
	err := r.db.Where("id = ? AND test_id = ?", questionID, testID).First(&question).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: question %d", models.ErrNotFound, questionID)
		}
		return nil, err
	}
	return &question, nil
}

func (r *GormRepository) HasCorrectAnswer(questionID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Answer{}).
		Where("question_id = ? AND is_correct", questionID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRepository) AddAnswer(answer *models.Answer) error {
	return r.db.Create(answer).Error
}

func (r *GormRepository) CreateResult(result *models.TestResult) error {
	return r.db.Create(result).Error
}
