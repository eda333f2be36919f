package lectures

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"autoschool/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	lectures map[uint]*models.Lecture
	visible  map[uint]map[uint]bool
	images   []models.LectureImage
	nextID   uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		lectures: make(map[uint]*models.Lecture),
		visible:  make(map[uint]map[uint]bool),
	}
}

func (r *fakeRepo) CreateLecture(lecture *models.Lecture, groupIDs []uint) error {
	r.nextID++
	lecture.ID = r.nextID
	r.lectures[lecture.ID] = lecture
	return nil
}

func (r *fakeRepo) ListAll() ([]models.Lecture, error) {
	var out []models.Lecture
	for _, l := range r.lectures {
		out = append(out, *l)
	}
	return out, nil
}

func (r *fakeRepo) ListForStudent(studentID uint) ([]models.Lecture, error) {
	var out []models.Lecture
	for id, l := range r.lectures {
		if r.visible[studentID][id] {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetByID(id uint) (*models.Lecture, error) {
	l, ok := r.lectures[id]
	if !ok {
		return nil, fmt.Errorf("%w: lecture %d", models.ErrNotFound, id)
	}
	return l, nil
}

func (r *fakeRepo) GetForStudent(id, studentID uint) (*models.Lecture, error) {
	if !r.visible[studentID][id] {
		return nil, fmt.Errorf("%w: lecture %d", models.ErrNotFound, id)
	}
	return r.GetByID(id)
}

func (r *fakeRepo) DeleteLecture(id uint) error {
	if _, ok := r.lectures[id]; !ok {
		return fmt.Errorf("%w: lecture %d", models.ErrNotFound, id)
	}
	delete(r.lectures, id)
	return nil
}

func (r *fakeRepo) AddImage(image *models.LectureImage) error {
	r.nextID++
	image.ID = r.nextID
	r.images = append(r.images, *image)
	return nil
}

type fakeMedia struct {
	saved []string
}

func (m *fakeMedia) Save(dir, filename string, _ io.Reader) (string, error) {
	path := dir + "/" + filename
	m.saved = append(m.saved, path)
	return path, nil
}

func TestListVisibility(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo, nil)

	author := &models.User{ID: 9, Role: models.RoleInstructor}
	visible, err := service.Create(author, CreateLectureRequest{Title: "Right of way", Content: "..."})
	require.NoError(t, err)
	_, err = service.Create(author, CreateLectureRequest{Title: "Parking", Content: "..."})
	require.NoError(t, err)

	repo.visible[1] = map[uint]bool{visible.ID: true}

	cadet := &models.User{ID: 1, Role: models.RoleStudent}
	got, err := service.List(cadet)
	require.NoError(t, err)
	require.Len(t, got, 1, "students only see distributed lectures")
	assert.Equal(t, "Right of way", got[0].Title)

	all, err := service.List(author)
	require.NoError(t, err)
	assert.Len(t, all, 2, "staff listing is unfiltered")

	adminUser := &models.User{ID: 2, Role: models.RoleAdmin}
	all, err = service.List(adminUser)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGetVisibility(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo, nil)

	author := &models.User{ID: 9, Role: models.RoleInstructor}
	lecture, err := service.Create(author, CreateLectureRequest{Title: "Right of way"})
	require.NoError(t, err)

	cadet := &models.User{ID: 1, Role: models.RoleStudent}
	_, err = service.Get(cadet, lecture.ID)
	assert.True(t, errors.Is(err, models.ErrNotFound), "undistributed lecture reads as not found")

	repo.visible[1] = map[uint]bool{lecture.ID: true}
	got, err := service.Get(cadet, lecture.ID)
	require.NoError(t, err)
	assert.Equal(t, lecture.ID, got.ID)
}

func TestCreateRequiresTitle(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo, nil)

	author := &models.User{ID: 9, Role: models.RoleAdmin}
	_, err := service.Create(author, CreateLectureRequest{Title: ""})
	assert.True(t, errors.Is(err, models.ErrValidation))
	assert.Empty(t, repo.lectures)
}

func TestAddImage(t *testing.T) {
	repo := newFakeRepo()
	media := &fakeMedia{}
	service := NewService(repo, media)

	author := &models.User{ID: 9, Role: models.RoleInstructor}
	lecture, err := service.Create(author, CreateLectureRequest{Title: "Signs"})
	require.NoError(t, err)

	_, err = service.AddImage(lecture.ID, "sign.png", nil, "")
	assert.True(t, errors.Is(err, models.ErrValidation), "image file is required")

	image, err := service.AddImage(lecture.ID, "sign.png", strings.NewReader("png-bytes"), "a yield sign")
	require.NoError(t, err)
	assert.Equal(t, "lectures/sign.png", image.Path)
	assert.Equal(t, "a yield sign", image.Caption)
	require.Len(t, repo.images, 1)

	_, err = service.AddImage(999, "sign.png", strings.NewReader("png-bytes"), "")
	assert.True(t, errors.Is(err, models.ErrNotFound))
}
