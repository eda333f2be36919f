package lectures

import (
	"fmt"
	"io"

	"autoschool/internal/authz"
	"autoschool/internal/models"
	"autoschool/pkg/storage"
)

type Service struct {
	repo  Repository
	media storage.Store
}

func NewService(repo Repository, media storage.Store) *Service {
	return &Service{repo: repo, media: media}
}

type CreateLectureRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	GroupIDs []uint `json:"group_ids"`
}

func (s *Service) Create(author *models.User, req CreateLectureRequest) (*models.Lecture, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: lecture title is required", models.ErrValidation)
	}
	lecture := &models.Lecture{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: author.ID,
	}
	if err := s.repo.CreateLecture(lecture, req.GroupIDs); err != nil {
		return nil, err
	}
	return lecture, nil
}

// List applies the visibility rule: students only see lectures distributed
// to a group they belong to, everyone else sees all of them.
func (s *Service) List(requester *models.User) ([]models.Lecture, error) {
	if authz.IsStudent(requester) {
		return s.repo.ListForStudent(requester.ID)
	}
	return s.repo.ListAll()
}

func (s *Service) Get(requester *models.User, id uint) (*models.Lecture, error) {
	if authz.IsStudent(requester) {
		return s.repo.GetForStudent(id, requester.ID)
	}
	return s.repo.GetByID(id)
}

func (s *Service) Delete(id uint) error {
	return s.repo.DeleteLecture(id)
}

// AddImage stores the uploaded file and attaches the resulting path to the
// lecture.
func (s *Service) AddImage(lectureID uint, filename string, file io.Reader, caption string) (*models.LectureImage, error) {
	if file == nil {
		return nil, fmt.Errorf("%w: an image file is required", models.ErrValidation)
	}
	if _, err := s.repo.GetByID(lectureID); err != nil {
		return nil, err
	}

	path, err := s.media.Save("lectures", filename, file)
	if err != nil {
		return nil, err
	}

	image := &models.LectureImage{
		LectureID: lectureID,
		Path:      path,
		Caption:   caption,
	}
	if err := s.repo.AddImage(image); err != nil {
		return nil, err
	}
	return image, nil
}
