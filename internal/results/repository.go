package results

import (
	"autoschool/internal/models"

	"gorm.io/gorm"
)

type Repository interface {
	ListAll() ([]models.TestResult, error)
	ListByStudent(studentID uint) ([]models.TestResult, error)
	ListByInstructor(instructorID uint) ([]models.TestResult, error)
}

type GormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) ListAll() ([]models.TestResult, error) {
	var results []models.TestResult
	if err := r.db.Order("id").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *GormRepository) ListByStudent(studentID uint) ([]models.TestResult, error) {
	var results []models.TestResult
	err := r.db.Where("student_id = ?", studentID).Order("id").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// ListByInstructor walks Result -> Test -> distributed groups and keeps the
// rows whose group belongs to the instructor. One result can reach the
// instructor through several groups, hence the DISTINCT.
func (r *GormRepository) ListByInstructor(instructorID uint) ([]models.TestResult, error) {
	var results []models.TestResult
	err := r.db.
		Distinct("test_results.*").
		Joins("JOIN test_groups tg ON tg.test_id = test_results.test_id").
		Joins("JOIN groups g ON g.id = tg.group_id").
		Where("g.instructor_id = ?", instructorID).
		Order("test_results.id").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
