package auth

import (
	"errors"
	"fmt"

	"autoschool/internal/models"

	"gorm.io/gorm"
)

// Repository is the subset of user persistence the auth service needs.
type Repository interface {
	GetUserByUsername(username string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	CreateUser(user *models.User) error
	ListUsers() ([]models.User, error)
	DeleteUser(id uint) error
}

type GormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Grants").Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %q", models.ErrNotFound, username)
		}
		return nil, err
	}
	return &user, nil
}

func (r *GormRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Grants").First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", models.ErrNotFound, id)
		}
		return nil, err
	}
	return &user, nil
}

func (r *GormRepository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *GormRepository) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *GormRepository) DeleteUser(id uint) error {
	result := r.db.Delete(&models.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: user %d", models.ErrNotFound, id)
	}
	return nil
}
