package groups

import (
	"errors"
	"fmt"

	"autoschool/internal/models"

	"gorm.io/gorm"
)

type Repository interface {
	CreateGroup(group *models.Group) error
	GetGroup(id uint) (*models.Group, error)
	ListGroups() ([]models.Group, error)
	DeleteGroup(id uint) error
	GetStudent(id uint) (*models.User, error)
	AddMember(studentID, groupID uint) (created bool, err error)
	RemoveMember(studentID, groupID uint) error
}

type GormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) CreateGroup(group *models.Group) error {
	return r.db.Create(group).Error
}

func (r *GormRepository) GetGroup(id uint) (*models.Group, error) {
	var group models.Group
	if err := r.db.First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: group %d", models.ErrNotFound, id)
		}
		return nil, err
	}
	return &group, nil
}

func (r *GormRepository) ListGroups() ([]models.Group, error) {
	var groups []models.Group
	if err := r.db.Order("id").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// DeleteGroup removes the group together with its memberships and
// distribution links. Users, lectures and tests themselves are untouched.
func (r *GormRepository) DeleteGroup(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", id).Delete(&models.Membership{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM lecture_groups WHERE group_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM test_groups WHERE group_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Group{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: group %d", models.ErrNotFound, id)
		}
		return nil
	})
}

// GetStudent looks up a user by id, requiring role=student.
func (r *GormRepository) GetStudent(id uint) (*models.User, error) {
	var student models.User
	err := r.db.Where("id = ? AND role = ?", id, models.RoleStudent).First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: student %d", models.ErrNotFound, id)
		}
		return nil, err
	}
	return &student, nil
}

// AddMember inserts the membership if it does not exist yet. The unique
// index on (student_id, group_id) turns a concurrent duplicate insert into
// a normal already-present report instead of an error.
func (r *GormRepository) AddMember(studentID, groupID uint) (bool, error) {
	membership := models.Membership{StudentID: studentID, GroupID: groupID}
	result := r.db.Where(models.Membership{StudentID: studentID, GroupID: groupID}).
		FirstOrCreate(&membership)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *GormRepository) RemoveMember(studentID, groupID uint) error {
	result := r.db.Where("student_id = ? AND group_id = ?", studentID, groupID).
		Delete(&models.Membership{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: student %d is not in this group", models.ErrNotFound, studentID)
	}
	return nil
}
