package services

import (
	"context"
	"errors"
	"testing"

	"github.com/examplatform/backend/internal/app/models"
	"github.com/examplatform/backend/internal/app/models/dto"
	"github.com/examplatform/backend/internal/pkg/apperrors"
)

type instructorFixture struct {
	svc        *InstructorService
	courseRepo *fakeCourseRepo
	examRepo   *fakeExamRepo
	qRepo      *fakeQuestionRepo
	resultRepo *fakeResultRepo
	userRepo   *fakeUserRepo
	instructor *models.User
}

func newInstructorFixture(t *testing.T) *instructorFixture {
	t.Helper()

	courseRepo := newFakeCourseRepo()
	examRepo := newFakeExamRepo()
	qRepo := newFakeQuestionRepo()
	resultRepo := newFakeResultRepo()
	userRepo := newFakeUserRepo()

	instructor := &models.User{Email: "teach@example.com", RoleType: models.RoleInstructor}
	id, _ := userRepo.Create(context.Background(), instructor)
	instructor.ID = id

	authz := NewAuthorizationService(courseRepo, examRepo)
	svc := NewInstructorService(courseRepo, examRepo, qRepo, resultRepo, userRepo, authz)

	return &instructorFixture{
		svc:        svc,
		courseRepo: courseRepo,
		examRepo:   examRepo,
		qRepo:      qRepo,
		resultRepo: resultRepo,
		userRepo:   userRepo,
		instructor: instructor,
	}
}

func (f *instructorFixture) createCourse(t *testing.T) *models.Course {
	t.Helper()
	course, err := f.svc.CreateCourse(context.Background(), f.instructor, &dto.CreateCourseRequest{Name: "Algorithms"})
	if err != nil {
		t.Fatalf("create course: %v", err)
	}
	return course
}

func TestCreateCourseSetsOwner(t *testing.T) {
	f := newInstructorFixture(t)
	course := f.createCourse(t)

	if !course.HasInstructor(f.instructor.ID) {
		t.Fatal("creator should be in the instructor set")
	}
}

func TestCreateExamDerivesPassingScore(t *testing.T) {
	f := newInstructorFixture(t)
	course := f.createCourse(t)

	exam, err := f.svc.CreateExam(context.Background(), f.instructor, &dto.CreateExamRequest{
		CourseID:   course.ID,
		Title:      "Midterm",
		TotalScore: 100,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exam.PassingScore != 30 {
		t.Fatalf("expected derived passing score 30, got %d", exam.PassingScore)
	}
	if exam.MaxAttempts != 1 {
		t.Fatalf("expected default max attempts 1, got %d", exam.MaxAttempts)
	}
	if exam.Published {
		t.Fatal("new exams must start unpublished")
	}
}

func TestCreateExamHonorsPassingOverride(t *testing.T) {
	f := newInstructorFixture(t)
	course := f.createCourse(t)

	exam, err := f.svc.CreateExam(context.Background(), f.instructor, &dto.CreateExamRequest{
		CourseID:     course.ID,
		Title:        "Midterm",
		TotalScore:   100,
		PassingScore: 60,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exam.PassingScore != 60 {
		t.Fatalf("expected overridden passing score 60, got %d", exam.PassingScore)
	}
}

func TestCreateExamOwnershipEnforced(t *testing.T) {
	f := newInstructorFixture(t)
	course := f.createCourse(t)

	intruder := &models.User{ID: 999, RoleType: models.RoleInstructor}
	_, err := f.svc.CreateExam(context.Background(), intruder, &dto.CreateExamRequest{
		CourseID: course.ID,
		Title:    "Hijack",
	})
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestAddQuestionsRecomputesTotals(t *testing.T) {
	f := newInstructorFixture(t)
	ctx := context.Background()
	course := f.createCourse(t)

	exam, _ := f.svc.CreateExam(ctx, f.instructor, &dto.CreateExamRequest{CourseID: course.ID, Title: "Midterm"})

	updated, err := f.svc.AddQuestions(ctx, f.instructor, exam.ID, []dto.AddQuestionRequest{
		{Text: "q1", Marks: 5, Options: []models.Option{{Text: "a", IsCorrect: true}, {Text: "b"}}},
		{Text: "q2", Marks: 7, Options: []models.Option{{Text: "c", IsCorrect: true}, {Text: "d"}}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.TotalScore != 12 {
		t.Fatalf("expected total 12, got %d", updated.TotalScore)
	}
	if updated.NumberOfQuestions != 2 {
		t.Fatalf("expected question count 2, got %d", updated.NumberOfQuestions)
	}
	// ceil(12 * 0.3) = 4
	if updated.PassingScore != 4 {
		t.Fatalf("expected re-derived passing score 4, got %d", updated.PassingScore)
	}
}

func TestDeleteQuestionRecomputesTotals(t *testing.T) {
	f := newInstructorFixture(t)
	ctx := context.Background()
	course := f.createCourse(t)

	exam, _ := f.svc.CreateExam(ctx, f.instructor, &dto.CreateExamRequest{CourseID: course.ID, Title: "Midterm"})
	_, _ = f.svc.AddQuestions(ctx, f.instructor, exam.ID, []dto.AddQuestionRequest{
		{Text: "q1", Marks: 5, Options: []models.Option{{Text: "a", IsCorrect: true}, {Text: "b"}}},
		{Text: "q2", Marks: 7, Options: []models.Option{{Text: "c", IsCorrect: true}, {Text: "d"}}},
	})

	if err := f.svc.DeleteQuestion(ctx, f.instructor, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, _ := f.examRepo.GetByID(ctx, exam.ID)
	if stored.TotalScore != 7 || stored.NumberOfQuestions != 1 {
		t.Fatalf("expected total 7 and count 1 after deletion, got %d/%d",
			stored.TotalScore, stored.NumberOfQuestions)
	}
}

func TestPublishRequiresQuestions(t *testing.T) {
	f := newInstructorFixture(t)
	ctx := context.Background()
	course := f.createCourse(t)

	exam, _ := f.svc.CreateExam(ctx, f.instructor, &dto.CreateExamRequest{CourseID: course.ID, Title: "Empty"})

	if err := f.svc.PublishExam(ctx, f.instructor, exam.ID); !errors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("publishing an empty exam should fail, got %v", err)
	}

	_, _ = f.svc.AddQuestions(ctx, f.instructor, exam.ID, []dto.AddQuestionRequest{
		{Text: "q1", Marks: 5, Options: []models.Option{{Text: "a", IsCorrect: true}, {Text: "b"}}},
	})
	if err := f.svc.PublishExam(ctx, f.instructor, exam.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, _ := f.examRepo.GetByID(ctx, exam.ID)
	if !stored.Published {
		t.Fatal("exam should be published")
	}

	if err := f.svc.UnpublishExam(ctx, f.instructor, exam.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stored, _ = f.examRepo.GetByID(ctx, exam.ID)
	if stored.Published {
		t.Fatal("exam should be unpublished")
	}
}

func TestUpdateExamPartial(t *testing.T) {
	f := newInstructorFixture(t)
	ctx := context.Background()
	course := f.createCourse(t)

	exam, _ := f.svc.CreateExam(ctx, f.instructor, &dto.CreateExamRequest{
		CourseID:   course.ID,
		Title:      "Midterm",
		Duration:   60,
		TotalScore: 100,
	})

	updated, err := f.svc.UpdateExam(ctx, f.instructor, exam.ID, &dto.UpdateExamRequest{MaxAttempts: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title != "Midterm" || updated.Duration != 60 || updated.TotalScore != 100 {
		t.Fatalf("zero-valued fields must stay unchanged, got %+v", updated)
	}
	if updated.MaxAttempts != 3 {
		t.Fatalf("expected max attempts 3, got %d", updated.MaxAttempts)
	}
}

func TestGetExamResultsOwnershipEnforced(t *testing.T) {
	f := newInstructorFixture(t)
	ctx := context.Background()
	course := f.createCourse(t)

	exam, _ := f.svc.CreateExam(ctx, f.instructor, &dto.CreateExamRequest{CourseID: course.ID, Title: "Midterm"})

	intruder := &models.User{ID: 999, RoleType: models.RoleInstructor}
	if _, err := f.svc.GetExamResults(ctx, intruder, exam.ID); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if _, err := f.svc.GetExamResults(ctx, f.instructor, exam.ID); err != nil {
		t.Fatalf("owner should read results, got %v", err)
	}
}
