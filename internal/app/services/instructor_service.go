package services

import (
	"context"

	"github.com/examplatform/backend/internal/app/models"
	"github.com/examplatform/backend/internal/app/models/dto"
	"github.com/examplatform/backend/internal/app/repositories"
	"github.com/examplatform/backend/internal/pkg/apperrors"
	"github.com/examplatform/backend/internal/pkg/logger"
)

// InstructorService handles course and exam management. Every mutating
// operation takes the acting user explicitly and runs an ownership check
// before touching anything.
type InstructorService struct {
	courseRepo   repositories.ICourseRepository
	examRepo     repositories.IExamRepository
	questionRepo repositories.IQuestionRepository
	resultRepo   repositories.IExamResultRepository
	userRepo     repositories.IUserRepository
	authz        *AuthorizationService
}

// NewInstructorService creates a new InstructorService
func NewInstructorService(
	courseRepo repositories.ICourseRepository,
	examRepo repositories.IExamRepository,
	questionRepo repositories.IQuestionRepository,
	resultRepo repositories.IExamResultRepository,
	userRepo repositories.IUserRepository,
	authz *AuthorizationService,
) *InstructorService {
	return &InstructorService{
		courseRepo:   courseRepo,
		examRepo:     examRepo,
		questionRepo: questionRepo,
		resultRepo:   resultRepo,
		userRepo:     userRepo,
		authz:        authz,
	}
}

// CreateCourse creates a course with the actor as its first instructor
func (s *InstructorService) CreateCourse(ctx context.Context, actor *models.User, req *dto.CreateCourseRequest) (*models.Course, error) {
	course := &models.Course{
		Name:          req.Name,
		Description:   req.Description,
		InstructorIDs: []int64{actor.ID},
	}

	id, err := s.courseRepo.Create(ctx, course)
	if err != nil {
		return nil, err
	}
	course.ID = id

	logger.Info().Int64("courseId", id).Int64("instructorId", actor.ID).Msg("Course created")
	return course, nil
}

// UpdateCourse updates a course the actor owns
func (s *InstructorService) UpdateCourse(ctx context.Context, actor *models.User, courseID int64, req *dto.UpdateCourseRequest) (*models.Course, error) {
	if err := s.authz.ValidateCourseOwnership(ctx, actor, courseID); err != nil {
		return nil, err
	}

	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	course.Name = req.Name
	course.Description = req.Description

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// DeleteCourse deletes a course the actor owns together with its exams
func (s *InstructorService) DeleteCourse(ctx context.Context, actor *models.User, courseID int64) error {
	if err := s.authz.ValidateCourseOwnership(ctx, actor, courseID); err != nil {
		return err
	}
	return s.courseRepo.Delete(ctx, courseID)
}

// GetMyCourses lists the courses the actor teaches
func (s *InstructorService) GetMyCourses(ctx context.Context, actor *models.User) ([]models.Course, error) {
	return s.courseRepo.GetByInstructor(ctx, actor.ID)
}

// GetEnrolledStudents lists the students enrolled in a course the actor owns
func (s *InstructorService) GetEnrolledStudents(ctx context.Context, actor *models.User, courseID int64) ([]dto.UserResponse, error) {
	if err := s.authz.ValidateCourseOwnership(ctx, actor, courseID); err != nil {
		return nil, err
	}

	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	students := make([]dto.UserResponse, 0, len(course.StudentIDs))
	for _, id := range course.StudentIDs {
		user, err := s.userRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		students = append(students, dto.UserResponse{
			ID:        user.ID,
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			RoleType:  string(user.RoleType),
		})
	}
	return students, nil
}

// CreateExam creates an unpublished exam in a course the actor owns. The
// passing score is derived from the total unless explicitly overridden.
func (s *InstructorService) CreateExam(ctx context.Context, actor *models.User, req *dto.CreateExamRequest) (*models.Exam, error) {
	if err := s.authz.ValidateCourseOwnership(ctx, actor, req.CourseID); err != nil {
		return nil, err
	}

	exam := &models.Exam{
		CourseID:          req.CourseID,
		Title:             req.Title,
		Duration:          req.Duration,
		NumberOfQuestions: req.NumberOfQuestions,
		MaxAttempts:       req.MaxAttempts,
	}
	exam.SetTotalScore(req.TotalScore)
	exam.OverridePassingScore(req.PassingScore)
	exam.EnsureDefaults()

	id, err := s.examRepo.Create(ctx, exam)
	if err != nil {
		return nil, err
	}
	exam.ID = id

	logger.Info().Int64("examId", id).Int64("courseId", exam.CourseID).Msg("Exam created")
	return exam, nil
}

// UpdateExam applies a partial update; zero-valued fields keep their stored
// value. A new total score re-derives the passing score unless the same
// request overrides it.
func (s *InstructorService) UpdateExam(ctx context.Context, actor *models.User, examID int64, req *dto.UpdateExamRequest) (*models.Exam, error) {
	exam, err := s.authz.ValidateExamOwnership(ctx, actor, examID)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		exam.Title = req.Title
	}
	if req.Duration > 0 {
		exam.Duration = req.Duration
	}
	if req.NumberOfQuestions > 0 {
		exam.NumberOfQuestions = req.NumberOfQuestions
	}
	if req.MaxAttempts > 0 {
		exam.MaxAttempts = req.MaxAttempts
	}
	if req.TotalScore > 0 {
		exam.SetTotalScore(req.TotalScore)
	}
	exam.OverridePassingScore(req.PassingScore)

	if err := s.examRepo.Update(ctx, exam); err != nil {
		return nil, err
	}
	return exam, nil
}

// GetExam returns an exam the actor owns with its full question set,
// correctness flags included
func (s *InstructorService) GetExam(ctx context.Context, actor *models.User, examID int64) (*models.Exam, error) {
	exam, err := s.authz.ValidateExamOwnership(ctx, actor, examID)
	if err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.GetByExam(ctx, examID)
	if err != nil {
		return nil, err
	}
	exam.Questions = questions
	return exam, nil
}

// GetExamsByCourse lists the exams of a course the actor owns
func (s *InstructorService) GetExamsByCourse(ctx context.Context, actor *models.User, courseID int64) ([]models.Exam, error) {
	if err := s.authz.ValidateCourseOwnership(ctx, actor, courseID); err != nil {
		return nil, err
	}
	return s.examRepo.GetByCourse(ctx, courseID)
}

// AddQuestions appends questions to an exam and recomputes the derived exam
// fields: the total score becomes the sum of all question marks, the question
// count the size of the full set, and the passing score is re-derived.
func (s *InstructorService) AddQuestions(ctx context.Context, actor *models.User, examID int64, reqs []dto.AddQuestionRequest) (*models.Exam, error) {
	exam, err := s.authz.ValidateExamOwnership(ctx, actor, examID)
	if err != nil {
		return nil, err
	}

	questions := make([]models.Question, 0, len(reqs))
	for _, req := range reqs {
		questions = append(questions, models.Question{
			ExamID:  examID,
			Text:    req.Text,
			Options: req.Options,
			Marks:   req.Marks,
		})
	}

	if err := s.questionRepo.CreateMany(ctx, examID, questions); err != nil {
		return nil, err
	}
	return s.recomputeExamTotals(ctx, exam)
}

// DeleteQuestion removes a question from an exam the actor owns and
// recomputes the derived exam fields
func (s *InstructorService) DeleteQuestion(ctx context.Context, actor *models.User, questionID int64) error {
	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return err
	}

	exam, err := s.authz.ValidateExamOwnership(ctx, actor, question.ExamID)
	if err != nil {
		return err
	}

	if err := s.questionRepo.Delete(ctx, questionID); err != nil {
		return err
	}
	_, err = s.recomputeExamTotals(ctx, exam)
	return err
}

func (s *InstructorService) recomputeExamTotals(ctx context.Context, exam *models.Exam) (*models.Exam, error) {
	all, err := s.questionRepo.GetByExam(ctx, exam.ID)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, q := range all {
		total += q.Marks
	}
	exam.SetTotalScore(total)
	exam.NumberOfQuestions = len(all)
	exam.Questions = all

	if err := s.examRepo.Update(ctx, exam); err != nil {
		return nil, err
	}
	return exam, nil
}

// PublishExam makes an exam visible to enrolled students. An exam without
// questions cannot be published.
func (s *InstructorService) PublishExam(ctx context.Context, actor *models.User, examID int64) error {
	exam, err := s.authz.ValidateExamOwnership(ctx, actor, examID)
	if err != nil {
		return err
	}

	questions, err := s.questionRepo.GetByExam(ctx, examID)
	if err != nil {
		return err
	}
	if len(questions) == 0 {
		return apperrors.ErrBadRequest
	}

	return s.examRepo.SetPublished(ctx, exam.ID, true)
}

// UnpublishExam hides an exam from students again; recorded results stay
func (s *InstructorService) UnpublishExam(ctx context.Context, actor *models.User, examID int64) error {
	exam, err := s.authz.ValidateExamOwnership(ctx, actor, examID)
	if err != nil {
		return err
	}
	return s.examRepo.SetPublished(ctx, exam.ID, false)
}

// GetExamResults lists the recorded attempts at an exam the actor owns
func (s *InstructorService) GetExamResults(ctx context.Context, actor *models.User, examID int64) ([]models.ExamResult, error) {
	if _, err := s.authz.ValidateExamOwnership(ctx, actor, examID); err != nil {
		return nil, err
	}
	return s.resultRepo.GetByExam(ctx, examID)
}
