package controllers

import (
	"net/http"

	"github.com/examplatform/backend/internal/app/models/dto"
	"github.com/examplatform/backend/internal/app/services"
	"github.com/examplatform/backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// StudentController handles enrollment and exam-taking endpoints
type StudentController struct {
	studentService *services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService) *StudentController {
	return &StudentController{studentService: studentService}
}

// GetAllCourses godoc
// @Summary Browse all courses
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Course}
// @Router /api/student/courses [get]
func (ctrl *StudentController) GetAllCourses(c *gin.Context) {
	courses, err := ctrl.studentService.GetAllCourses(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(courses))
}

// GetMyCourses godoc
// @Summary List enrolled courses
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Course}
// @Router /api/student/courses/enrolled [get]
func (ctrl *StudentController) GetMyCourses(c *gin.Context) {
	actor, ok := middleware.MustCurrentUser(c)
	if !ok {
		return
	}

	courses, err := ctrl.studentService.GetMyCourses(c.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(courses))
}

// EnrollInCourse godoc
// @Summary Enroll in a course
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/student/courses/{id}/enroll [post]
func (ctrl *StudentController) EnrollInCourse(c *gin.Context) {
	actor, ok := middleware.MustCurrentUser(c)
	if !ok {
		return
	}

	courseID, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := ctrl.studentService.EnrollInCourse(c.Request.Context(), actor, courseID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMessageResponse("Enrolled in course"))
}

// GetAvailableExams godoc
// @Summary List published exams of enrolled courses
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Exam}
// @Router /api/student/exams [get]
func (ctrl *StudentController) GetAvailableExams(c *gin.Context) {
	actor, ok := middleware.MustCurrentUser(c)
	if !ok {
		return
	}

	exams, err := ctrl.studentService.GetAvailableExams(c.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(exams))
}

// GetExamForAttempt godoc
// @Summary Get an exam to take
// @Description Returns a freshly shuffled question subset without answers
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID"
// @Success 200 {object} dto.APIResponse{data=dto.ExamView}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/student/exams/{id} [get]
func (ctrl *StudentController) GetExamForAttempt(c *gin.Context) {
	actor, ok := middleware.MustCurrentUser(c)
	if !ok {
		return
	}

	examID, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	view, err := ctrl.studentService.GetExamForAttempt(c.Request.Context(), actor, examID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(view))
}

// SubmitExam godoc
// @Summary Submit exam answers
// @Tags student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID"
// @Param request body dto.SubmitExamRequest true "Answers"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/student/exams/{id}/submit [post]
func (ctrl *StudentController) SubmitExam(c *gin.Context) {
	actor, ok := middleware.MustCurrentUser(c)
	if !ok {
		return
	}

	examID, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.SubmitExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	message, err := ctrl.studentService.SubmitExam(c.Request.Context(), actor, examID, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMessageResponse(message))
}

// GetMyResults godoc
// @Summary List own exam results
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.ExamResult}
// @Router /api/student/results [get]
func (ctrl *StudentController) GetMyResults(c *gin.Context) {
	actor, ok := middleware.MustCurrentUser(c)
	if !ok {
		return
	}

	results, err := ctrl.studentService.GetMyResults(c.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(results))
}
