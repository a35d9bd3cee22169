package repositories

import (
	"context"

	"github.com/examplatform/backend/internal/app/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository interfaces consumed by the service layer. Business operations
// only ever see these; the pgx implementations below are wired in at
// bootstrap and swapped for fakes in tests.

// IUserRepository handles user persistence
type IUserRepository interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *models.User) (int64, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
	GetAll(ctx context.Context, page, size int) ([]models.User, int64, error)
}

// ICourseRepository handles course persistence including instructor
// membership and student enrollment
type ICourseRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) (int64, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id int64) error
	ExistsByID(ctx context.Context, id int64) (bool, error)
	GetAll(ctx context.Context) ([]models.Course, error)
	GetByInstructor(ctx context.Context, userID int64) ([]models.Course, error)
	GetByStudent(ctx context.Context, userID int64) ([]models.Course, error)
	AddInstructor(ctx context.Context, courseID, userID int64) error
	EnrollStudent(ctx context.Context, courseID, userID int64) error
	IsStudentEnrolled(ctx context.Context, courseID, userID int64) (bool, error)
}

// IExamRepository handles exam persistence
type IExamRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Exam, error)
	Create(ctx context.Context, exam *models.Exam) (int64, error)
	Update(ctx context.Context, exam *models.Exam) error
	SetPublished(ctx context.Context, id int64, published bool) error
	ExistsByID(ctx context.Context, id int64) (bool, error)
	GetByCourse(ctx context.Context, courseID int64) ([]models.Exam, error)
	GetPublishedByCourses(ctx context.Context, courseIDs []int64) ([]models.Exam, error)
}

// IQuestionRepository handles question persistence
type IQuestionRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Question, error)
	GetByIDs(ctx context.Context, ids []int64) ([]models.Question, error)
	GetByExam(ctx context.Context, examID int64) ([]models.Question, error)
	CreateMany(ctx context.Context, examID int64, questions []models.Question) error
	Delete(ctx context.Context, id int64) error
}

// IExamResultRepository handles exam result persistence. The tx-scoped
// methods participate in the submission transaction that closes the
// check-then-act race on attempt counting.
type IExamResultRepository interface {
	CountByStudentAndExamTx(ctx context.Context, tx pgx.Tx, studentID, examID int64) (int64, error)
	CreateTx(ctx context.Context, tx pgx.Tx, result *models.ExamResult) error
	LockAttemptsTx(ctx context.Context, tx pgx.Tx, studentID, examID int64) error
	GetByStudent(ctx context.Context, studentID int64) ([]models.ExamResult, error)
	GetByExam(ctx context.Context, examID int64) ([]models.ExamResult, error)
	Stats(ctx context.Context) (count int64, avgScore float64, err error)
	GPAByStudentCourse(ctx context.Context) ([]models.StudentCourseGPA, error)
	GPAForStudent(ctx context.Context, studentID int64) ([]models.StudentCourseGPA, error)
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository       IUserRepository
	CourseRepository     ICourseRepository
	ExamRepository       IExamRepository
	QuestionRepository   IQuestionRepository
	ExamResultRepository IExamResultRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db),
		CourseRepository:     NewCourseRepository(db),
		ExamRepository:       NewExamRepository(db),
		QuestionRepository:   NewQuestionRepository(db),
		ExamResultRepository: NewExamResultRepository(db),
	}
}
