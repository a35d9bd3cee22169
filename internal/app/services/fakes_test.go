package services

import (
	"context"
	"time"

	"github.com/examplatform/backend/internal/app/models"
	"github.com/examplatform/backend/internal/db"
	"github.com/examplatform/backend/internal/pkg/apperrors"
	"github.com/jackc/pgx/v5"
)

// In-memory repository fakes. Only the behavior the services rely on is
// implemented; anything else returns not-found.

type fakeUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*models.User{}, nextID: 1}
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) (int64, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	id := r.nextID
	r.nextID++
	copied := *user
	copied.ID = id
	copied.CreatedAt = time.Now()
	r.users[id] = &copied
	return id, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return apperrors.ErrUserNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) GetAll(_ context.Context, page, size int) ([]models.User, int64, error) {
	var all []models.User
	for _, u := range r.users {
		all = append(all, *u)
	}
	return all, int64(len(all)), nil
}

type fakeCourseRepo struct {
	courses map[int64]*models.Course
	nextID  int64
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{courses: map[int64]*models.Course{}, nextID: 1}
}

func (r *fakeCourseRepo) GetByID(_ context.Context, id int64) (*models.Course, error) {
	if c, ok := r.courses[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, apperrors.ErrCourseNotFound
}

func (r *fakeCourseRepo) Create(_ context.Context, course *models.Course) (int64, error) {
	id := r.nextID
	r.nextID++
	copied := *course
	copied.ID = id
	r.courses[id] = &copied
	return id, nil
}

func (r *fakeCourseRepo) Update(_ context.Context, course *models.Course) error {
	if _, ok := r.courses[course.ID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	copied := *course
	r.courses[course.ID] = &copied
	return nil
}

func (r *fakeCourseRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.courses[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	delete(r.courses, id)
	return nil
}

func (r *fakeCourseRepo) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := r.courses[id]
	return ok, nil
}

func (r *fakeCourseRepo) GetAll(_ context.Context) ([]models.Course, error) {
	var all []models.Course
	for _, c := range r.courses {
		all = append(all, *c)
	}
	return all, nil
}

func (r *fakeCourseRepo) GetByInstructor(_ context.Context, userID int64) ([]models.Course, error) {
	var out []models.Course
	for _, c := range r.courses {
		if c.HasInstructor(userID) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCourseRepo) GetByStudent(_ context.Context, userID int64) ([]models.Course, error) {
	var out []models.Course
	for _, c := range r.courses {
		if c.HasStudent(userID) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCourseRepo) AddInstructor(_ context.Context, courseID, userID int64) error {
	c, ok := r.courses[courseID]
	if !ok {
		return apperrors.ErrCourseNotFound
	}
	if !c.HasInstructor(userID) {
		c.InstructorIDs = append(c.InstructorIDs, userID)
	}
	return nil
}

func (r *fakeCourseRepo) EnrollStudent(_ context.Context, courseID, userID int64) error {
	c, ok := r.courses[courseID]
	if !ok {
		return apperrors.ErrCourseNotFound
	}
	if c.HasStudent(userID) {
		return apperrors.ErrAlreadyEnrolled
	}
	c.StudentIDs = append(c.StudentIDs, userID)
	return nil
}

func (r *fakeCourseRepo) IsStudentEnrolled(_ context.Context, courseID, userID int64) (bool, error) {
	c, ok := r.courses[courseID]
	if !ok {
		return false, nil
	}
	return c.HasStudent(userID), nil
}

type fakeExamRepo struct {
	exams  map[int64]*models.Exam
	nextID int64
}

func newFakeExamRepo() *fakeExamRepo {
	return &fakeExamRepo{exams: map[int64]*models.Exam{}, nextID: 1}
}

func (r *fakeExamRepo) GetByID(_ context.Context, id int64) (*models.Exam, error) {
	if e, ok := r.exams[id]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, apperrors.ErrExamNotFound
}

func (r *fakeExamRepo) Create(_ context.Context, exam *models.Exam) (int64, error) {
	id := r.nextID
	r.nextID++
	copied := *exam
	copied.ID = id
	r.exams[id] = &copied
	return id, nil
}

func (r *fakeExamRepo) Update(_ context.Context, exam *models.Exam) error {
	if _, ok := r.exams[exam.ID]; !ok {
		return apperrors.ErrExamNotFound
	}
	copied := *exam
	r.exams[exam.ID] = &copied
	return nil
}

func (r *fakeExamRepo) SetPublished(_ context.Context, id int64, published bool) error {
	e, ok := r.exams[id]
	if !ok {
		return apperrors.ErrExamNotFound
	}
	e.Published = published
	return nil
}

func (r *fakeExamRepo) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := r.exams[id]
	return ok, nil
}

func (r *fakeExamRepo) GetByCourse(_ context.Context, courseID int64) ([]models.Exam, error) {
	var out []models.Exam
	for _, e := range r.exams {
		if e.CourseID == courseID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeExamRepo) GetPublishedByCourses(_ context.Context, courseIDs []int64) ([]models.Exam, error) {
	var out []models.Exam
	for _, e := range r.exams {
		if !e.Published {
			continue
		}
		for _, id := range courseIDs {
			if e.CourseID == id {
				out = append(out, *e)
				break
			}
		}
	}
	return out, nil
}

type fakeQuestionRepo struct {
	questions map[int64]*models.Question
	nextID    int64
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{questions: map[int64]*models.Question{}, nextID: 1}
}

func (r *fakeQuestionRepo) GetByID(_ context.Context, id int64) (*models.Question, error) {
	if q, ok := r.questions[id]; ok {
		copied := *q
		return &copied, nil
	}
	return nil, apperrors.ErrQuestionNotFound
}

func (r *fakeQuestionRepo) GetByIDs(_ context.Context, ids []int64) ([]models.Question, error) {
	out := make([]models.Question, 0, len(ids))
	for _, id := range ids {
		q, ok := r.questions[id]
		if !ok {
			return nil, apperrors.ErrQuestionNotFound
		}
		out = append(out, *q)
	}
	return out, nil
}

func (r *fakeQuestionRepo) GetByExam(_ context.Context, examID int64) ([]models.Question, error) {
	var out []models.Question
	for id := int64(1); id < r.nextID; id++ {
		if q, ok := r.questions[id]; ok && q.ExamID == examID {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (r *fakeQuestionRepo) CreateMany(_ context.Context, examID int64, questions []models.Question) error {
	for _, q := range questions {
		id := r.nextID
		r.nextID++
		copied := q
		copied.ID = id
		copied.ExamID = examID
		r.questions[id] = &copied
	}
	return nil
}

func (r *fakeQuestionRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.questions[id]; !ok {
		return apperrors.ErrQuestionNotFound
	}
	delete(r.questions, id)
	return nil
}

type fakeResultRepo struct {
	results []models.ExamResult
	gpaRows []models.StudentCourseGPA
	nextID  int64
}

func newFakeResultRepo() *fakeResultRepo {
	return &fakeResultRepo{nextID: 1}
}

func (r *fakeResultRepo) LockAttemptsTx(_ context.Context, _ pgx.Tx, _, _ int64) error {
	return nil
}

func (r *fakeResultRepo) CountByStudentAndExamTx(_ context.Context, _ pgx.Tx, studentID, examID int64) (int64, error) {
	var count int64
	for _, res := range r.results {
		if res.StudentID == studentID && res.ExamID == examID {
			count++
		}
	}
	return count, nil
}

func (r *fakeResultRepo) CreateTx(_ context.Context, _ pgx.Tx, result *models.ExamResult) error {
	result.ID = r.nextID
	r.nextID++
	result.CreatedAt = time.Now()
	r.results = append(r.results, *result)
	return nil
}

func (r *fakeResultRepo) GetByStudent(_ context.Context, studentID int64) ([]models.ExamResult, error) {
	var out []models.ExamResult
	for _, res := range r.results {
		if res.StudentID == studentID {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r *fakeResultRepo) GetByExam(_ context.Context, examID int64) ([]models.ExamResult, error) {
	var out []models.ExamResult
	for _, res := range r.results {
		if res.ExamID == examID {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r *fakeResultRepo) Stats(_ context.Context) (int64, float64, error) {
	if len(r.results) == 0 {
		return 0, 0, nil
	}
	sum := 0
	for _, res := range r.results {
		sum += res.Score
	}
	return int64(len(r.results)), float64(sum) / float64(len(r.results)), nil
}

func (r *fakeResultRepo) GPAByStudentCourse(_ context.Context) ([]models.StudentCourseGPA, error) {
	out := make([]models.StudentCourseGPA, len(r.gpaRows))
	copy(out, r.gpaRows)
	return out, nil
}

func (r *fakeResultRepo) GPAForStudent(_ context.Context, studentID int64) ([]models.StudentCourseGPA, error) {
	var out []models.StudentCourseGPA
	for _, row := range r.gpaRows {
		if row.StudentID == studentID {
			out = append(out, row)
		}
	}
	return out, nil
}

// fakeTxRunner runs the function directly with a nil transaction
type fakeTxRunner struct{}

func (fakeTxRunner) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	return fn(ctx, nil)
}
