package services

import (
	"context"
	"fmt"

	"github.com/examplatform/backend/internal/app/models"
	"github.com/examplatform/backend/internal/app/models/dto"
	"github.com/examplatform/backend/internal/app/repositories"
	"github.com/examplatform/backend/internal/pkg/apperrors"
	"github.com/examplatform/backend/internal/pkg/auth"
	"github.com/examplatform/backend/internal/pkg/helpers"
	"github.com/examplatform/backend/internal/pkg/logger"
)

// AdminService handles platform administration: instructor accounts, course
// assignment and the analytics summary.
type AdminService struct {
	userRepo   repositories.IUserRepository
	courseRepo repositories.ICourseRepository
	resultRepo repositories.IExamResultRepository
}

// NewAdminService creates a new AdminService
func NewAdminService(
	userRepo repositories.IUserRepository,
	courseRepo repositories.ICourseRepository,
	resultRepo repositories.IExamResultRepository,
) *AdminService {
	return &AdminService{
		userRepo:   userRepo,
		courseRepo: courseRepo,
		resultRepo: resultRepo,
	}
}

// AddInstructor creates an instructor account
func (s *AdminService) AddInstructor(ctx context.Context, req *dto.AddInstructorRequest) (*models.User, error) {
	user := &models.User{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		RoleType:  models.RoleInstructor,
	}

	if req.Password != "" {
		hashed, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id

	logger.Info().Str("email", user.Email).Msg("Instructor account created")
	return user, nil
}

// RemoveInstructor deletes an instructor account. Deleting users of any other
// role through this operation is refused.
func (s *AdminService) RemoveInstructor(ctx context.Context, userID int64) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.RoleType != models.RoleInstructor {
		return apperrors.ErrInvalidRole
	}
	return s.userRepo.Delete(ctx, userID)
}

// AssignInstructorToCourse adds an existing instructor to a course's
// instructor set
func (s *AdminService) AssignInstructorToCourse(ctx context.Context, req *dto.AssignInstructorRequest) error {
	user, err := s.userRepo.GetByID(ctx, req.InstructorID)
	if err != nil {
		return err
	}
	if user.RoleType != models.RoleInstructor {
		return apperrors.ErrInvalidRole
	}

	exists, err := s.courseRepo.ExistsByID(ctx, req.CourseID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.ErrCourseNotFound
	}

	return s.courseRepo.AddInstructor(ctx, req.CourseID, req.InstructorID)
}

// GetAllUsers lists users with pagination
func (s *AdminService) GetAllUsers(ctx context.Context, page, size int) (*dto.UserListResponse, error) {
	users, total, err := s.userRepo.GetAll(ctx, page, size)
	if err != nil {
		return nil, err
	}

	resp := &dto.UserListResponse{
		Users:          make([]dto.UserResponse, 0, len(users)),
		PaginationInfo: helpers.NewPaginationInfo(total, page, size),
	}
	for _, u := range users {
		resp.Users = append(resp.Users, dto.UserResponse{
			ID:        u.ID,
			Email:     u.Email,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			RoleType:  string(u.RoleType),
		})
	}
	return resp, nil
}

// GetAnalytics summarizes recorded results across the platform. The count is
// the number of recorded attempts, not distinct exams.
func (s *AdminService) GetAnalytics(ctx context.Context) (string, error) {
	count, avg, err := s.resultRepo.Stats(ctx)
	if err != nil {
		return "", err
	}
	if count == 0 {
		return "No exam results available for analytics", nil
	}
	return fmt.Sprintf("Total Exams: %d, Overall Average Score: %.2f", count, avg), nil
}

// GetStudentCourseGPAs reports every student's weighted per-course GPA
func (s *AdminService) GetStudentCourseGPAs(ctx context.Context) ([]models.StudentCourseGPA, error) {
	rows, err := s.resultRepo.GPAByStudentCourse(ctx)
	if err != nil {
		return nil, err
	}
	return applyGPAScale(rows), nil
}

// GetStudentGPA reports one student's weighted per-course GPA
func (s *AdminService) GetStudentGPA(ctx context.Context, studentID int64) ([]models.StudentCourseGPA, error) {
	rows, err := s.resultRepo.GPAForStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return applyGPAScale(rows), nil
}

func applyGPAScale(rows []models.StudentCourseGPA) []models.StudentCourseGPA {
	for i := range rows {
		rows[i].GPA = rows[i].AvgPercent * models.GPAScale / 100
	}
	return rows
}
