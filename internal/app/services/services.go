package services

import (
	"time"

	"github.com/examplatform/backend/internal/app/repositories"
	"github.com/examplatform/backend/internal/db"
	"github.com/examplatform/backend/internal/pkg/auth"
)

// Services holds all the service instances
type Services struct {
	AuthService          *AuthService
	AdminService         *AdminService
	InstructorService    *InstructorService
	StudentService       *StudentService
	AIQuestionService    *AIQuestionService
	AuthorizationService *AuthorizationService
}

// NewServices initializes all services. The text generator is optional; a nil
// generator disables AI question drafting.
func NewServices(
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	tokenTTL time.Duration,
	txRunner db.TxRunner,
	generator TextGenerator,
) *Services {
	authz := NewAuthorizationService(repos.CourseRepository, repos.ExamRepository)

	var aiService *AIQuestionService
	if generator != nil {
		aiService = NewAIQuestionService(generator)
	}

	return &Services{
		AuthService: NewAuthService(repos.UserRepository, jwtService, tokenTTL),
		AdminService: NewAdminService(
			repos.UserRepository,
			repos.CourseRepository,
			repos.ExamResultRepository,
		),
		InstructorService: NewInstructorService(
			repos.CourseRepository,
			repos.ExamRepository,
			repos.QuestionRepository,
			repos.ExamResultRepository,
			repos.UserRepository,
			authz,
		),
		StudentService: NewStudentService(
			repos.CourseRepository,
			repos.ExamRepository,
			repos.QuestionRepository,
			repos.ExamResultRepository,
			NewExamRandomizer(),
			txRunner,
		),
		AIQuestionService:    aiService,
		AuthorizationService: authz,
	}
}
