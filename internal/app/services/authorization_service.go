package services

import (
	"context"

	"github.com/examplatform/backend/internal/app/models"
	"github.com/examplatform/backend/internal/app/repositories"
	"github.com/examplatform/backend/internal/pkg/apperrors"
)

// AuthorizationService checks resource-level ownership. Role checks happen in
// the middleware; ownership is decided here against the instructor sets of
// courses. Admins pass every ownership check.
type AuthorizationService struct {
	courseRepo repositories.ICourseRepository
	examRepo   repositories.IExamRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(courseRepo repositories.ICourseRepository, examRepo repositories.IExamRepository) *AuthorizationService {
	return &AuthorizationService{
		courseRepo: courseRepo,
		examRepo:   examRepo,
	}
}

// ValidateCourseOwnership verifies that the actor may manage the course.
// Returns ErrPermissionDenied when the actor is neither an admin nor one of
// the course's instructors.
func (s *AuthorizationService) ValidateCourseOwnership(ctx context.Context, actor *models.User, courseID int64) error {
	if actor.RoleType == models.RoleAdmin {
		return nil
	}

	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return err
	}
	if !course.HasInstructor(actor.ID) {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// ValidateExamOwnership verifies that the actor may manage the exam, walking
// the exam's course to its instructor set
func (s *AuthorizationService) ValidateExamOwnership(ctx context.Context, actor *models.User, examID int64) (*models.Exam, error) {
	exam, err := s.examRepo.GetByID(ctx, examID)
	if err != nil {
		return nil, err
	}
	if err := s.ValidateCourseOwnership(ctx, actor, exam.CourseID); err != nil {
		return nil, err
	}
	return exam, nil
}
