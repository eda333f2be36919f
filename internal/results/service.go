package results

import (
	"autoschool/internal/authz"
	"autoschool/internal/models"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List applies the ledger visibility rules: students see their own results,
// instructors see results for tests distributed to groups they own, and
// admins see everything.
func (s *Service) List(requester *models.User) ([]models.TestResult, error) {
	switch {
	case authz.IsStudent(requester):
		return s.repo.ListByStudent(requester.ID)
	case authz.IsInstructor(requester):
		return s.repo.ListByInstructor(requester.ID)
	default:
		return s.repo.ListAll()
	}
}
