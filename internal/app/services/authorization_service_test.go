package services

import (
	"context"
	"errors"
	"testing"

	"github.com/examplatform/backend/internal/app/models"
	"github.com/examplatform/backend/internal/pkg/apperrors"
)

func TestValidateCourseOwnership(t *testing.T) {
	ctx := context.Background()
	courseRepo := newFakeCourseRepo()
	examRepo := newFakeExamRepo()

	owner := &models.User{ID: 1, RoleType: models.RoleInstructor}
	other := &models.User{ID: 2, RoleType: models.RoleInstructor}
	admin := &models.User{ID: 3, RoleType: models.RoleAdmin}

	courseID, _ := courseRepo.Create(ctx, &models.Course{Name: "Algorithms", InstructorIDs: []int64{owner.ID}})

	authz := NewAuthorizationService(courseRepo, examRepo)

	if err := authz.ValidateCourseOwnership(ctx, owner, courseID); err != nil {
		t.Fatalf("owner should pass, got %v", err)
	}
	if err := authz.ValidateCourseOwnership(ctx, other, courseID); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("non-owner should be denied, got %v", err)
	}
	if err := authz.ValidateCourseOwnership(ctx, admin, courseID); err != nil {
		t.Fatalf("admin should bypass ownership, got %v", err)
	}
	if err := authz.ValidateCourseOwnership(ctx, owner, 999); !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Fatalf("missing course should surface not-found, got %v", err)
	}
}

func TestValidateExamOwnership(t *testing.T) {
	ctx := context.Background()
	courseRepo := newFakeCourseRepo()
	examRepo := newFakeExamRepo()

	owner := &models.User{ID: 1, RoleType: models.RoleInstructor}
	other := &models.User{ID: 2, RoleType: models.RoleInstructor}

	courseID, _ := courseRepo.Create(ctx, &models.Course{Name: "Algorithms", InstructorIDs: []int64{owner.ID}})
	examID, _ := examRepo.Create(ctx, &models.Exam{CourseID: courseID, Title: "Midterm"})

	authz := NewAuthorizationService(courseRepo, examRepo)

	exam, err := authz.ValidateExamOwnership(ctx, owner, examID)
	if err != nil {
		t.Fatalf("owner should pass, got %v", err)
	}
	if exam.ID != examID {
		t.Fatalf("expected exam %d back, got %d", examID, exam.ID)
	}

	if _, err := authz.ValidateExamOwnership(ctx, other, examID); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("non-owner should be denied, got %v", err)
	}
	if _, err := authz.ValidateExamOwnership(ctx, owner, 999); !errors.Is(err, apperrors.ErrExamNotFound) {
		t.Fatalf("missing exam should surface not-found, got %v", err)
	}
}
