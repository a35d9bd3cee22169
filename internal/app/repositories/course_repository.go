package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/examplatform/backend/internal/app/models"
	"github.com/examplatform/backend/internal/pkg/apperrors"
	"github.com/examplatform/backend/internal/pkg/dberrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CourseRepository handles course database operations. Instructor membership
// and student enrollment live in the course_instructors and course_students
// join tables.
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetByID retrieves a course by ID together with its instructor and student id sets
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	var course models.Course
	err := r.db.QueryRow(ctx, `SELECT id, name, description FROM courses WHERE id = $1`, id).
		Scan(&course.ID, &course.Name, &course.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	if course.InstructorIDs, err = r.memberIDs(ctx, "course_instructors", id); err != nil {
		return nil, err
	}
	if course.StudentIDs, err = r.memberIDs(ctx, "course_students", id); err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) memberIDs(ctx context.Context, table string, courseID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, fmt.Sprintf(`SELECT user_id FROM %s WHERE course_id = $1 ORDER BY user_id`, table), courseID)
	if err != nil {
		return nil, fmt.Errorf("error querying %s: %w", table, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Create creates a new course and registers its initial instructor set
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) (int64, error) {
	query := r.sb.Insert("courses").
		Columns("name", "description").
		Values(course.Name, course.Description).
		Suffix("RETURNING id")

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	for _, userID := range course.InstructorIDs {
		if err := r.AddInstructor(ctx, id, userID); err != nil {
			return 0, err
		}
	}
	return id, nil
}

// Update updates a course's name and description
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	query := r.sb.Update("courses").
		Set("name", course.Name).
		Set("description", course.Description).
		Where(squirrel.Eq{"id": course.ID})

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// Delete deletes a course
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// ExistsByID checks whether a course exists
func (r *CourseRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM courses WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking course existence: %w", err)
	}
	return exists, nil
}

// GetAll retrieves all courses
func (r *CourseRepository) GetAll(ctx context.Context) ([]models.Course, error) {
	return r.queryCourses(ctx, `SELECT id, name, description FROM courses ORDER BY id`)
}

// GetByInstructor retrieves the courses whose instructor set contains the user
func (r *CourseRepository) GetByInstructor(ctx context.Context, userID int64) ([]models.Course, error) {
	return r.queryCourses(ctx,
		`SELECT c.id, c.name, c.description FROM courses c
		 JOIN course_instructors ci ON ci.course_id = c.id
		 WHERE ci.user_id = $1 ORDER BY c.id`, userID)
}

// GetByStudent retrieves the courses the user is enrolled in
func (r *CourseRepository) GetByStudent(ctx context.Context, userID int64) ([]models.Course, error) {
	return r.queryCourses(ctx,
		`SELECT c.id, c.name, c.description FROM courses c
		 JOIN course_students cs ON cs.course_id = c.id
		 WHERE cs.user_id = $1 ORDER BY c.id`, userID)
}

func (r *CourseRepository) queryCourses(ctx context.Context, sql string, args ...interface{}) ([]models.Course, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(&course.ID, &course.Name, &course.Description); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		courses = append(courses, course)
	}

	// Populate instructor id sets so callers can run ownership checks without
	// an extra round trip per course.
	for i := range courses {
		ids, err := r.memberIDs(ctx, "course_instructors", courses[i].ID)
		if err != nil {
			return nil, err
		}
		courses[i].InstructorIDs = ids
	}
	return courses, nil
}

// AddInstructor adds a user to the course's instructor set; adding twice is a no-op
func (r *CourseRepository) AddInstructor(ctx context.Context, courseID, userID int64) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO course_instructors (course_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		courseID, userID)
	if err != nil {
		return fmt.Errorf("error adding instructor: %w", err)
	}
	return nil
}

// EnrollStudent enrolls a user in a course
func (r *CourseRepository) EnrollStudent(ctx context.Context, courseID, userID int64) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO course_students (course_id, user_id) VALUES ($1, $2)`,
		courseID, userID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAlreadyEnrolled
		}
		return fmt.Errorf("error enrolling student: %w", err)
	}
	return nil
}

// IsStudentEnrolled checks course membership for a student
func (r *CourseRepository) IsStudentEnrolled(ctx context.Context, courseID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM course_students WHERE course_id = $1 AND user_id = $2)`,
		courseID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking enrollment: %w", err)
	}
	return exists, nil
}
