package controllers

import (
	"strconv"

	"github.com/examplatform/backend/internal/app/services"
	"github.com/examplatform/backend/internal/pkg/apperrors"
	"github.com/gin-gonic/gin"
)

// Controllers holds all the controller instances
type Controllers struct {
	AuthController       *AuthController
	AdminController      *AdminController
	InstructorController *InstructorController
	StudentController    *StudentController
}

// NewControllers initializes all controllers
func NewControllers(svcs *services.Services) *Controllers {
	return &Controllers{
		AuthController:       NewAuthController(svcs.AuthService),
		AdminController:      NewAdminController(svcs.AdminService),
		InstructorController: NewInstructorController(svcs.InstructorService, svcs.AIQuestionService),
		StudentController:    NewStudentController(svcs.StudentService),
	}
}

// parseIDParam reads a positive int64 path parameter
func parseIDParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.ErrBadRequest
	}
	return id, nil
}

// parseIDQuery reads a positive int64 query parameter
func parseIDQuery(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.ErrBadRequest
	}
	return id, nil
}
