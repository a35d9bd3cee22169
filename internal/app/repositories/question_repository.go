package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/examplatform/backend/internal/app/models"
	"github.com/examplatform/backend/internal/pkg/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// QuestionRepository handles question database operations. The option list of
// a question is stored as a JSONB column.
type QuestionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewQuestionRepository creates a new QuestionRepository
func NewQuestionRepository(db *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanQuestion(row pgx.Row) (*models.Question, error) {
	var question models.Question
	var optionsJSON []byte
	err := row.Scan(&question.ID, &question.ExamID, &question.Text, &optionsJSON, &question.Marks)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("error scanning question: %w", err)
	}
	if err := json.Unmarshal(optionsJSON, &question.Options); err != nil {
		return nil, fmt.Errorf("error decoding options: %w", err)
	}
	return &question, nil
}

// GetByID retrieves a question by ID
func (r *QuestionRepository) GetByID(ctx context.Context, id int64) (*models.Question, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, exam_id, text, options, marks FROM questions WHERE id = $1`, id)
	return scanQuestion(row)
}

// GetByIDs retrieves questions in the order the ids were given. Unknown ids
// yield ErrQuestionNotFound rather than a shorter result.
func (r *QuestionRepository) GetByIDs(ctx context.Context, ids []int64) ([]models.Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	sql, args, err := r.sb.Select("id", "exam_id", "text", "options", "marks").
		From("questions").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	fetched, err := r.queryQuestions(ctx, sql, args...)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]models.Question, len(fetched))
	for _, q := range fetched {
		byID[q.ID] = q
	}

	questions := make([]models.Question, 0, len(ids))
	for _, id := range ids {
		q, ok := byID[id]
		if !ok {
			return nil, apperrors.ErrQuestionNotFound
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// GetByExam retrieves all questions of an exam in insertion order
func (r *QuestionRepository) GetByExam(ctx context.Context, examID int64) ([]models.Question, error) {
	return r.queryQuestions(ctx,
		`SELECT id, exam_id, text, options, marks FROM questions WHERE exam_id = $1 ORDER BY id`, examID)
}

func (r *QuestionRepository) queryQuestions(ctx context.Context, sql string, args ...interface{}) ([]models.Question, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var question models.Question
		var optionsJSON []byte
		if err := rows.Scan(&question.ID, &question.ExamID, &question.Text, &optionsJSON, &question.Marks); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		if err := json.Unmarshal(optionsJSON, &question.Options); err != nil {
			return nil, fmt.Errorf("error decoding options: %w", err)
		}
		questions = append(questions, question)
	}
	return questions, nil
}

// CreateMany inserts a batch of questions for an exam
func (r *QuestionRepository) CreateMany(ctx context.Context, examID int64, questions []models.Question) error {
	if len(questions) == 0 {
		return nil
	}

	query := r.sb.Insert("questions").Columns("exam_id", "text", "options", "marks")
	for _, q := range questions {
		optionsJSON, err := json.Marshal(q.Options)
		if err != nil {
			return fmt.Errorf("error encoding options: %w", err)
		}
		query = query.Values(examID, q.Text, optionsJSON, q.Marks)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	return nil
}

// Delete deletes a question
func (r *QuestionRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrQuestionNotFound
	}
	return nil
}
