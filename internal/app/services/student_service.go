package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/examplatform/backend/internal/app/models"
	"github.com/examplatform/backend/internal/app/models/dto"
	"github.com/examplatform/backend/internal/app/repositories"
	"github.com/examplatform/backend/internal/db"
	"github.com/examplatform/backend/internal/pkg/apperrors"
	"github.com/examplatform/backend/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
)

// StudentService handles enrollment, exam taking and result retrieval
type StudentService struct {
	courseRepo   repositories.ICourseRepository
	examRepo     repositories.IExamRepository
	questionRepo repositories.IQuestionRepository
	resultRepo   repositories.IExamResultRepository
	randomizer   *ExamRandomizer
	txRunner     db.TxRunner
}

// NewStudentService creates a new StudentService
func NewStudentService(
	courseRepo repositories.ICourseRepository,
	examRepo repositories.IExamRepository,
	questionRepo repositories.IQuestionRepository,
	resultRepo repositories.IExamResultRepository,
	randomizer *ExamRandomizer,
	txRunner db.TxRunner,
) *StudentService {
	return &StudentService{
		courseRepo:   courseRepo,
		examRepo:     examRepo,
		questionRepo: questionRepo,
		resultRepo:   resultRepo,
		randomizer:   randomizer,
		txRunner:     txRunner,
	}
}

// GetAllCourses lists every course so a student can pick one to enroll in
func (s *StudentService) GetAllCourses(ctx context.Context) ([]models.Course, error) {
	return s.courseRepo.GetAll(ctx)
}

// GetMyCourses lists the courses the actor is enrolled in
func (s *StudentService) GetMyCourses(ctx context.Context, actor *models.User) ([]models.Course, error) {
	return s.courseRepo.GetByStudent(ctx, actor.ID)
}

// EnrollInCourse enrolls the actor in a course
func (s *StudentService) EnrollInCourse(ctx context.Context, actor *models.User, courseID int64) error {
	exists, err := s.courseRepo.ExistsByID(ctx, courseID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.ErrCourseNotFound
	}
	return s.courseRepo.EnrollStudent(ctx, courseID, actor.ID)
}

// GetAvailableExams lists the published exams of the actor's courses
func (s *StudentService) GetAvailableExams(ctx context.Context, actor *models.User) ([]models.Exam, error) {
	courses, err := s.courseRepo.GetByStudent(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	courseIDs := make([]int64, 0, len(courses))
	for _, c := range courses {
		courseIDs = append(courseIDs, c.ID)
	}
	return s.examRepo.GetPublishedByCourses(ctx, courseIDs)
}

// GetExamForAttempt returns the student-facing view of an exam: a freshly
// shuffled question subset with correctness flags stripped. Each call draws a
// new shuffle.
func (s *StudentService) GetExamForAttempt(ctx context.Context, actor *models.User, examID int64) (*dto.ExamView, error) {
	exam, err := s.loadTakeableExam(ctx, actor, examID)
	if err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.GetByExam(ctx, examID)
	if err != nil {
		return nil, err
	}

	selected := s.randomizer.Randomize(exam, questions)
	view := &dto.ExamView{
		ID:                exam.ID,
		CourseID:          exam.CourseID,
		Title:             exam.Title,
		Duration:          exam.Duration,
		NumberOfQuestions: exam.NumberOfQuestions,
		TotalScore:        exam.TotalScore,
		PassingScore:      exam.PassingScore,
		MaxAttempts:       exam.MaxAttempts,
		Published:         exam.Published,
		Questions:         make([]models.Question, 0, len(selected)),
	}
	for i := range selected {
		view.Questions = append(view.Questions, selected[i].Sanitized())
	}
	return view, nil
}

// SubmitExam grades a submission and records the attempt. The attempt count
// and the result insert run in one transaction under an advisory lock on the
// (student, exam) pair, so concurrent submissions cannot both slip past the
// attempt limit.
func (s *StudentService) SubmitExam(ctx context.Context, actor *models.User, examID int64, req *dto.SubmitExamRequest) (string, error) {
	exam, err := s.loadTakeableExam(ctx, actor, examID)
	if err != nil {
		return "", err
	}

	if len(req.Answers) != len(req.QuestionIDs) {
		return "", apperrors.ErrAnswerCountMismatch
	}

	questions, err := s.questionRepo.GetByIDs(ctx, req.QuestionIDs)
	if err != nil {
		return "", err
	}
	for i := range questions {
		if questions[i].ExamID != examID {
			return "", apperrors.ErrQuestionNotFound
		}
	}

	score := GradeSubmission(questions, req.Answers)
	status := models.StatusFail
	if score >= exam.PassingScore {
		status = models.StatusPass
	}

	result := &models.ExamResult{
		StudentID: actor.ID,
		ExamID:    exam.ID,
		Score:     score,
		Status:    status,
	}

	err = s.txRunner.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.resultRepo.LockAttemptsTx(ctx, tx, actor.ID, exam.ID); err != nil {
			return err
		}
		count, err := s.resultRepo.CountByStudentAndExamTx(ctx, tx, actor.ID, exam.ID)
		if err != nil {
			return err
		}
		if count >= int64(exam.MaxAttempts) {
			return apperrors.ErrAttemptsExhausted
		}
		result.AttemptNumber = int(count) + 1
		return s.resultRepo.CreateTx(ctx, tx, result)
	})
	if err != nil {
		return "", err
	}

	logger.Info().
		Int64("studentId", actor.ID).
		Int64("examId", exam.ID).
		Int("attempt", result.AttemptNumber).
		Int("score", score).
		Str("status", string(status)).
		Msg("Exam submitted")

	return fmt.Sprintf("Exam submitted successfully! Score: %d/%d", score, exam.TotalScore), nil
}

// GetMyResults lists the actor's recorded attempts, newest first
func (s *StudentService) GetMyResults(ctx context.Context, actor *models.User) ([]models.ExamResult, error) {
	return s.resultRepo.GetByStudent(ctx, actor.ID)
}

// loadTakeableExam loads an exam and verifies the actor may take it: the exam
// must be published and the actor enrolled in its course.
func (s *StudentService) loadTakeableExam(ctx context.Context, actor *models.User, examID int64) (*models.Exam, error) {
	exam, err := s.examRepo.GetByID(ctx, examID)
	if err != nil {
		return nil, err
	}
	if !exam.Published {
		return nil, apperrors.ErrExamNotPublished
	}

	enrolled, err := s.courseRepo.IsStudentEnrolled(ctx, exam.CourseID, actor.ID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, apperrors.ErrPermissionDenied
	}
	return exam, nil
}

// GradeSubmission scores answers against their questions positionally.
// Comparison ignores case and surrounding whitespace; a question whose option
// list has no correct flag can never award marks.
func GradeSubmission(questions []models.Question, answers []string) int {
	score := 0
	for i := range questions {
		if i >= len(answers) {
			break
		}
		correct := strings.TrimSpace(questions[i].CorrectAnswer())
		given := strings.TrimSpace(answers[i])
		if correct != "" && strings.EqualFold(correct, given) {
			score += questions[i].Marks
		}
	}
	return score
}
