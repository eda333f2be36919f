package groups

import (
	"fmt"

	"autoschool/internal/models"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateGroupRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	InstructorID *uint  `json:"instructor_id"`
}

func (s *Service) Create(req CreateGroupRequest) (*models.Group, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: group name is required", models.ErrValidation)
	}
	group := &models.Group{
		Name:         req.Name,
		Description:  req.Description,
		InstructorID: req.InstructorID,
	}
	if err := s.repo.CreateGroup(group); err != nil {
		return nil, err
	}
	return group, nil
}

func (s *Service) Get(id uint) (*models.Group, error) {
	return s.repo.GetGroup(id)
}

func (s *Service) List() ([]models.Group, error) {
	return s.repo.ListGroups()
}

func (s *Service) Delete(id uint) error {
	return s.repo.DeleteGroup(id)
}

// AddStudent enrolls a student into a group. Returns created=false without
// error when the student is already a member.
func (s *Service) AddStudent(groupID, studentID uint) (created bool, err error) {
	if studentID == 0 {
		return false, fmt.Errorf("%w: student_id is required", models.ErrValidation)
	}
	if _, err := s.repo.GetGroup(groupID); err != nil {
		return false, err
	}
	student, err := s.repo.GetStudent(studentID)
	if err != nil {
		return false, err
	}
	return s.repo.AddMember(student.ID, groupID)
}

func (s *Service) RemoveStudent(groupID, studentID uint) error {
	if studentID == 0 {
		return fmt.Errorf("%w: student_id is required", models.ErrValidation)
	}
	if _, err := s.repo.GetGroup(groupID); err != nil {
		return err
	}
	return s.repo.RemoveMember(studentID, groupID)
}
