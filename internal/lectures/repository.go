package lectures

import (
	"errors"
	"fmt"

	"autoschool/internal/models"

	"gorm.io/gorm"
)

type Repository interface {
	CreateLecture(lecture *models.Lecture, groupIDs []uint) error
	ListAll() ([]models.Lecture, error)
	ListForStudent(studentID uint) ([]models.Lecture, error)
	GetByID(id uint) (*models.Lecture, error)
	GetForStudent(id, studentID uint) (*models.Lecture, error)
	DeleteLecture(id uint) error
	AddImage(image *models.LectureImage) error
}

type GormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) CreateLecture(lecture *models.Lecture, groupIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(lecture).Error; err != nil {
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
		if err := tx.Model(lecture).Association("Groups").Append(groups); err != nil {
			return err
		}
		return nil
	})
}

func (r *GormRepository) ListAll() ([]models.Lecture, error) {
	var lectures []models.Lecture
	err := r.db.Preload("Images").Preload("Groups").Order("id").Find(&lectures).Error
	if err != nil {
		return nil, err
	}
	return lectures, nil
}

// ListForStudent returns lectures whose distribution set intersects the
// student's memberships. The DISTINCT collapses lectures shared through
// several common groups into one row.
func (r *GormRepository) ListForStudent(studentID uint) ([]models.Lecture, error) {
	var lectures []models.Lecture
	err := r.db.
		Distinct("lectures.*").
		Joins("JOIN lecture_groups lg ON lg.lecture_id = lectures.id").
		Joins("JOIN memberships m ON m.group_id = lg.group_id").
		Where("m.student_id = ?", studentID).
		Preload("Images").
		Order("lectures.id").
		Find(&lectures).Error
	if err != nil {
		return nil, err
	}
	return lectures, nil
}

func (r *GormRepository) GetByID(id uint) (*models.Lecture, error) {
	var lecture models.Lecture
	err := r.db.Preload("Images").Preload("Groups").First(&lecture, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: lecture %d", models.ErrNotFound, id)
		}
		return nil, err
	}
	return &lecture, nil
}

// GetForStudent fetches through the same join as ListForStudent, so a
// lecture not distributed to the student reads as not found.
func (r *GormRepository) GetForStudent(id, studentID uint) (*models.Lecture, error) {
	var lecture models.Lecture
	err := r.db.
		Joins("JOIN lecture_groups lg ON lg.lecture_id = lectures.id").
		Joins("JOIN memberships m ON m.group_id = lg.group_id").
		Where("lectures.id = ? AND m.student_id = ?", id, studentID).
		Preload("Images").
		First(&lecture).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: lecture %d", models.ErrNotFound, id)
		}
		return nil, err
	}
	return &lecture, nil
}

func (r *GormRepository) DeleteLecture(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lecture_id = ?", id).Delete(&models.LectureImage{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM lecture_groups WHERE lecture_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Lecture{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: lecture %d", models.ErrNotFound, id)
		}
		return nil
	})
}

func (r *GormRepository) AddImage(image *models.LectureImage) error {
	return r.db.Create(image).Error
}
