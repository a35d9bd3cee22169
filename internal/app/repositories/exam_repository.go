package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/examplatform/backend/internal/app/models"
	"github.com/examplatform/backend/internal/pkg/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ExamRepository handles exam database operations
type ExamRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewExamRepository creates a new ExamRepository
func NewExamRepository(db *pgxpool.Pool) *ExamRepository {
	return &ExamRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var examColumns = []string{
	"id", "course_id", "title", "duration", "number_of_questions",
	"total_score", "passing_score", "max_attempts", "published",
	"created_at", "updated_at",
}

func scanExam(row pgx.Row) (*models.Exam, error) {
	var exam models.Exam
	err := row.Scan(
		&exam.ID,
		&exam.CourseID,
		&exam.Title,
		&exam.Duration,
		&exam.NumberOfQuestions,
		&exam.TotalScore,
		&exam.PassingScore,
		&exam.MaxAttempts,
		&exam.Published,
		&exam.CreatedAt,
		&exam.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrExamNotFound
		}
		return nil, fmt.Errorf("error scanning exam: %w", err)
	}
	return &exam, nil
}

// GetByID retrieves an exam by ID. Questions are loaded separately through
// the question repository.
func (r *ExamRepository) GetByID(ctx context.Context, id int64) (*models.Exam, error) {
	sql, args, err := r.sb.Select(examColumns...).From("exams").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}
	return scanExam(r.db.QueryRow(ctx, sql, args...))
}

// Create creates a new exam
func (r *ExamRepository) Create(ctx context.Context, exam *models.Exam) (int64, error) {
	query := r.sb.Insert("exams").
		Columns("course_id", "title", "duration", "number_of_questions",
			"total_score", "passing_score", "max_attempts", "published").
		Values(exam.CourseID, exam.Title, exam.Duration, exam.NumberOfQuestions,
			exam.TotalScore, exam.PassingScore, exam.MaxAttempts, exam.Published).
		Suffix("RETURNING id")

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}
	return id, nil
}

// Update updates an existing exam
func (r *ExamRepository) Update(ctx context.Context, exam *models.Exam) error {
	query := r.sb.Update("exams").
		Set("title", exam.Title).
		Set("duration", exam.Duration).
		Set("number_of_questions", exam.NumberOfQuestions).
		Set("total_score", exam.TotalScore).
		Set("passing_score", exam.PassingScore).
		Set("max_attempts", exam.MaxAttempts).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": exam.ID})

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrExamNotFound
	}
	return nil
}

// SetPublished flips the published flag of an exam
func (r *ExamRepository) SetPublished(ctx context.Context, id int64, published bool) error {
	result, err := r.db.Exec(ctx,
		`UPDATE exams SET published = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		published, id)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrExamNotFound
	}
	return nil
}

// ExistsByID checks whether an exam exists
func (r *ExamRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM exams WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking exam existence: %w", err)
	}
	return exists, nil
}

// GetByCourse retrieves all exams of a course, published or not
func (r *ExamRepository) GetByCourse(ctx context.Context, courseID int64) ([]models.Exam, error) {
	sql, args, err := r.sb.Select(examColumns...).
		From("exams").
		Where(squirrel.Eq{"course_id": courseID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}
	return r.queryExams(ctx, sql, args...)
}

// GetPublishedByCourses retrieves the published exams of the given courses
func (r *ExamRepository) GetPublishedByCourses(ctx context.Context, courseIDs []int64) ([]models.Exam, error) {
	if len(courseIDs) == 0 {
		return nil, nil
	}

	sql, args, err := r.sb.Select(examColumns...).
		From("exams").
		Where(squirrel.Eq{"course_id": courseIDs, "published": true}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}
	return r.queryExams(ctx, sql, args...)
}

func (r *ExamRepository) queryExams(ctx context.Context, sql string, args ...interface{}) ([]models.Exam, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var exams []models.Exam
	for rows.Next() {
		var exam models.Exam
		err := rows.Scan(
			&exam.ID,
			&exam.CourseID,
			&exam.Title,
			&exam.Duration,
			&exam.NumberOfQuestions,
			&exam.TotalScore,
			&exam.PassingScore,
			&exam.MaxAttempts,
			&exam.Published,
			&exam.CreatedAt,
			&exam.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		exams = append(exams, exam)
	}
	return exams, nil
}
