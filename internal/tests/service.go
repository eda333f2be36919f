package tests

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"autoschool/internal/authz"
	"autoschool/internal/models"
	"autoschool/pkg/storage"
)

type Service struct {
	repo  Repository
	media storage.Store
	now   func() time.Time
}

func NewService(repo Repository, media storage.Store) *Service {
	return &Service{repo: repo, media: media, now: time.Now}
}

type CreateTestRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	GroupIDs    []uint `json:"group_ids"`
}

func (s *Service) Create(author *models.User, req CreateTestRequest) (*models.Test, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: test title is required", models.ErrValidation)
	}
	test := &models.Test{
		Title:       req.Title,
		Description: req.Description,
		AuthorID:    author.ID,
	}
	if err := s.repo.CreateTest(test, req.GroupIDs); err != nil {
		return nil, err
	}
	return test, nil
}

// List and Get share the lecture visibility rule: students only see tests
// distributed to one of their groups.
func (s *Service) List(requester *models.User) ([]models.Test, error) {
	if authz.IsStudent(requester) {
		return s.repo.ListForStudent(requester.ID)
	}
	return s.repo.ListAll()
}

func (s *Service) Get(requester *models.User, id uint) (*models.Test, error) {
	if authz.IsStudent(requester) {
		return s.repo.GetForStudent(id, requester.ID)
	}
	return s.repo.GetByID(id)
}

func (s *Service) Delete(id uint) error {
	return s.repo.DeleteTest(id)
}

// AddQuestion attaches a question to a test. The image is optional; when
// present it is written to the media store first.
func (s *Service) AddQuestion(testID uint, text string, filename string, file io.Reader) (*models.Question, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: question text is required", models.ErrValidation)
	}
	if _, err := s.repo.GetByID(testID); err != nil {
		return nil, err
	}

	var imagePath string
	if file != nil {
		path, err := s.media.Save("questions", filename, file)
		if err != nil {
			return nil, err
		}
		imagePath = path
	}

	question := &models.Question{
		TestID:    testID,
		Text:      text,
		ImagePath: imagePath,
	}
	if err := s.repo.AddQuestion(question); err != nil {
		return nil, err
	}
	return question, nil
}

type AddAnswerRequest struct {
	QuestionID uint   `json:"question_id"`
	Text       string `json:"text"`
	IsCorrect  bool   `json:"is_correct"`
}

// AddAnswer attaches an answer to a question under the given test. A second
// correct answer for the same question is rejected at write time, which is
// what keeps the scoring lookup unambiguous.
func (s *Service) AddAnswer(testID uint, req AddAnswerRequest) (*models.Answer, error) {
	if req.QuestionID == 0 || req.Text == "" {
		return nil, fmt.Errorf("%w: question_id and answer text are required", models.ErrValidation)
	}

	question, err := s.repo.GetQuestion(testID, req.QuestionID)
	if err != nil {
		return nil, err
	}

	if req.IsCorrect {
		has, err := s.repo.HasCorrectAnswer(question.ID)
		if err != nil {
			return nil, err
		}
		if has {
			return nil, fmt.Errorf("%w: question %d already has a correct answer", models.ErrValidation, question.ID)
		}
	}

	answer := &models.Answer{
		QuestionID: question.ID,
		Text:       req.Text,
		IsCorrect:  req.IsCorrect,
	}
	if err := s.repo.AddAnswer(answer); err != nil {
		return nil, err
	}
	return answer, nil
}

// Submit grades a student's submission and appends a result to the ledger.
// Submitted answers are keyed by the question id in decimal form; a missing
// key simply earns no point. Every call writes a fresh result row, even for
// a zero score or an empty test.
func (s *Service) Submit(requester *models.User, testID uint, submitted map[string]uint) (*models.TestResult, error) {
	if !authz.IsStudent(requester) {
		return nil, fmt.Errorf("%w: only students may take tests", models.ErrForbidden)
	}

	test, err := s.repo.GetForStudent(testID, requester.ID)
	if err != nil {
		return nil, err
	}

	score := 0
	maxScore := 0
	for _, question := range test.Questions {
		maxScore++

		var correct *models.Answer
		for i := range question.Answers {
			if question.Answers[i].IsCorrect {
				correct = &question.Answers[i]
				break
			}
		}
		if correct == nil {
			// No correct answer marked; the question cannot award a point.
			continue
		}

		submittedID, ok := submitted[strconv.FormatUint(uint64(question.ID), 10)]
		if ok && submittedID == correct.ID {
			score++
		}
	}

	result := &models.TestResult{
		TestID:    test.ID,
		StudentID: requester.ID,
		Score:     score,
		MaxScore:  maxScore,
		DateTaken: s.now(),
	}
	if err := s.repo.CreateResult(result); err != nil {
		return nil, err
	}
	return result, nil
}
