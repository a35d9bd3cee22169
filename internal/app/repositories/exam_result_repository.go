package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/examplatform/backend/internal/app/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ExamResultRepository handles exam result database operations. Submission
// writes run inside a transaction so the attempt count and the insert are
// atomic; LockAttemptsTx serializes concurrent submissions of the same
// (student, exam) pair.
type ExamResultRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewExamResultRepository creates a new ExamResultRepository
func NewExamResultRepository(db *pgxpool.Pool) *ExamResultRepository {
	return &ExamResultRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// LockAttemptsTx takes a transaction-scoped advisory lock on the
// (student, exam) pair. The lock is released when the transaction ends.
func (r *ExamResultRepository) LockAttemptsTx(ctx context.Context, tx pgx.Tx, studentID, examID int64) error {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, studentID, examID); err != nil {
		return fmt.Errorf("error acquiring attempt lock: %w", err)
	}
	return nil
}

// CountByStudentAndExamTx counts the recorded attempts of a student at an exam
// within the submission transaction
func (r *ExamResultRepository) CountByStudentAndExamTx(ctx context.Context, tx pgx.Tx, studentID, examID int64) (int64, error) {
	var count int64
	err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM exam_results WHERE student_id = $1 AND exam_id = $2`,
		studentID, examID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting attempts: %w", err)
	}
	return count, nil
}

// CreateTx inserts a graded attempt within the submission transaction
func (r *ExamResultRepository) CreateTx(ctx context.Context, tx pgx.Tx, result *models.ExamResult) error {
	query := r.sb.Insert("exam_results").
		Columns("student_id", "exam_id", "attempt_number", "score", "status").
		Values(result.StudentID, result.ExamID, result.AttemptNumber, result.Score, result.Status).
		Suffix("RETURNING id, created_at")

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := tx.QueryRow(ctx, sql, args...).Scan(&result.ID, &result.CreatedAt); err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	return nil
}

// GetByStudent retrieves a student's attempts, newest first
func (r *ExamResultRepository) GetByStudent(ctx context.Context, studentID int64) ([]models.ExamResult, error) {
	return r.queryResults(ctx,
		`SELECT id, student_id, exam_id, attempt_number, score, status, created_at
		 FROM exam_results WHERE student_id = $1 ORDER BY created_at DESC`, studentID)
}

// GetByExam retrieves all attempts at an exam, newest first
func (r *ExamResultRepository) GetByExam(ctx context.Context, examID int64) ([]models.ExamResult, error) {
	return r.queryResults(ctx,
		`SELECT id, student_id, exam_id, attempt_number, score, status, created_at
		 FROM exam_results WHERE exam_id = $1 ORDER BY created_at DESC`, examID)
}

func (r *ExamResultRepository) queryResults(ctx context.Context, sql string, args ...interface{}) ([]models.ExamResult, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var results []models.ExamResult
	for rows.Next() {
		var result models.ExamResult
		err := rows.Scan(
			&result.ID,
			&result.StudentID,
			&result.ExamID,
			&result.AttemptNumber,
			&result.Score,
			&result.Status,
			&result.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		results = append(results, result)
	}
	return results, nil
}

// Stats returns the number of recorded attempts and the average score across
// them. An empty table yields (0, 0).
func (r *ExamResultRepository) Stats(ctx context.Context) (int64, float64, error) {
	var count int64
	var avg float64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(AVG(score), 0) FROM exam_results`).
		Scan(&count, &avg)
	if err != nil {
		return 0, 0, fmt.Errorf("error computing stats: %w", err)
	}
	return count, avg, nil
}

const gpaSelect = `
	SELECT r.student_id,
	       e.course_id,
	       u.first_name || ' ' || u.last_name AS student_name,
	       c.name AS course_name,
	       COALESCE(100.0 * SUM(r.score) / NULLIF(SUM(e.total_score), 0), 0) AS avg_percent
	FROM exam_results r
	JOIN exams e ON e.id = r.exam_id
	JOIN courses c ON c.id = e.course_id
	JOIN users u ON u.id = r.student_id`

const gpaGroupOrder = `
	GROUP BY r.student_id, e.course_id, student_name, c.name
	ORDER BY student_name, course_name`

// GPAByStudentCourse aggregates every student's attempts per course. The
// percentage is weighted by exam total score; exams without recorded attempts
// do not count against the student.
func (r *ExamResultRepository) GPAByStudentCourse(ctx context.Context) ([]models.StudentCourseGPA, error) {
	return r.queryGPA(ctx, gpaSelect+gpaGroupOrder)
}

// GPAForStudent aggregates one student's attempts per course
func (r *ExamResultRepository) GPAForStudent(ctx context.Context, studentID int64) ([]models.StudentCourseGPA, error) {
	return r.queryGPA(ctx, gpaSelect+` WHERE r.student_id = $1`+gpaGroupOrder, studentID)
}

func (r *ExamResultRepository) queryGPA(ctx context.Context, sql string, args ...interface{}) ([]models.StudentCourseGPA, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var out []models.StudentCourseGPA
	for rows.Next() {
		var row models.StudentCourseGPA
		err := rows.Scan(
			&row.StudentID,
			&row.CourseID,
			&row.StudentName,
			&row.CourseName,
			&row.AvgPercent,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		out = append(out, row)
	}
	return out, nil
}
