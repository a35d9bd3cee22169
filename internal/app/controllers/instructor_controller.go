package controllers

import (
	"net/http"

	"github.com/examplatform/backend/internal/app/models/dto"
	"github.com/examplatform/backend/internal/app/services"
	"github.com/examplatform/backend/internal/middleware"
	"github.com/examplatform/backend/internal/pkg/apperrors"
	"github.com/gin-gonic/gin"
)

// InstructorController handles course and exam management endpoints
type InstructorController struct {
	instructorService *services.InstructorService
	aiService         *services.AIQuestionService
}

// NewInstructorController creates a new InstructorController
func NewInstructorController(instructorService *services.InstructorService, aiService *services.AIQuestionService) *InstructorController {
	return &InstructorController{
		instructorService: instructorService,
		aiService:         aiService,
	}
}

// CreateCourse godoc
// @Summary Create a course
// @Tags instructor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course details"
// @Success 201 {object} dto.APIResponse{data=models.Course}
// @Router /api/instructor/courses [post]
func (ctrl *InstructorController) CreateCourse(c *gin.Context) {
	actor, ok := middleware.MustCurrentUser(c)
	if !ok {
		return
	}

	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	course, err := ctrl.instructorService.CreateCourse(c.Request.Context(), actor, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewAPIResponse(course))
}

// UpdateCourse godoc
// @Summary Update a course
// @Tags instructor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.UpdateCourseRequest true "Course details"
// @Success 200 {object} dto.APIResponse{data=models.Course}
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/instructor/courses/{id} [put]
func (ctrl *InstructorController) UpdateCourse(c *gin.Context) {
	actor, ok := middleware.MustCurrentUser(c)
	if !ok {
		return
	}

	courseID, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	course, err := ctrl.instructorService.UpdateCourse(c.Request.Context(), actor, courseID, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(course))
}

// DeleteCourse godoc
// @Summary Delete a course
// @Tags instructor
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/instructor/courses/{id} [delete]
func (ctrl *InstructorController) DeleteCourse(c *gin.Context) {
	actor, ok := middleware.MustCurrentUser(c)
	if !ok {
		return
	}

	courseID, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := ctrl.instructorService.DeleteCourse(c.Request.Context(), actor, courseID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMessageResponse("Course deleted"))
}

// GetMyCourses godoc
// @Summary List own courses
// @Tags instructor
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Course}
// @Router /api/instructor/courses [get]
func (ctrl *InstructorController) GetMyCourses(c *gin.Context) {
	actor, ok := middleware.MustCurrentUser(c)
	if !ok {
		return
	}

	courses, err := ctrl.instructorService.GetMyCourses(c.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(courses))
}

// GetEnrolledStudents godoc
// @Summary List students enrolled in a course
// @Tags instructor
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.UserResponse}
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/instructor/courses/{id}/students [get]
func (ctrl *InstructorController) GetEnrolledStudents(c *gin.Context) {
	actor, ok := middleware.MustCurrentUser(c)
	if !ok {
		return
	}

	courseID, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	students, err := ctrl.instructorService.GetEnrolledStudents(c.Request.Context(), actor, courseID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(students))
}

// GetExamsByCourse godoc
// @Summary List exams of a course
// @Tags instructor
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Exam}
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/instructor/courses/{id}/exams [get]
func (ctrl *InstructorController) GetExamsByCourse(c *gin.Context) {
	actor, ok := middleware.MustCurrentUser(c)
	if !ok {
		return
	}

	courseID, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	exams, err := ctrl.instructorService.GetExamsByCourse(c.Request.Context(), actor, courseID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(exams))
}

// CreateExam godoc
// @Summary Create an exam
// @Tags instructor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateExamRequest true "Exam details"
// @Success 201 {object} dto.APIResponse{data=models.Exam}
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/instructor/exams [post]
func (ctrl *InstructorController) CreateExam(c *gin.Context) {
	actor, ok := middleware.MustCurrentUser(c)
	if !ok {
		return
	}

	var req dto.CreateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	exam, err := ctrl.instructorService.CreateExam(c.Request.Context(), actor, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewAPIResponse(exam))
}

// UpdateExam godoc
// @Summary Update an exam
// @Tags instructor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID"
// @Param request body dto.UpdateExamRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Exam}
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/instructor/exams/{id} [put]
func (ctrl *InstructorController) UpdateExam(c *gin.Context) {
	actor, ok := middleware.MustCurrentUser(c)
	if !ok {
		return
	}

	examID, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.UpdateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	exam, err := ctrl.instructorService.UpdateExam(c.Request.Context(), actor, examID, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(exam))
}

// GetExam godoc
// @Summary Get an exam with its questions
// @Tags instructor
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID"
// @Success 200 {object} dto.APIResponse{data=models.Exam}
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/instructor/exams/{id} [get]
func (ctrl *InstructorController) GetExam(c *gin.Context) {
	actor, ok := middleware.MustCurrentUser(c)
	if !ok {
		return
	}

	examID, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	exam, err := ctrl.instructorService.GetExam(c.Request.Context(), actor, examID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(exam))
}

// AddQuestions godoc
// @Summary Add questions to an exam
// @Tags instructor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID"
// @Param request body []dto.AddQuestionRequest true "Questions"
// @Success 200 {object} dto.APIResponse{data=models.Exam}
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/instructor/exams/{id}/questions [post]
func (ctrl *InstructorController) AddQuestions(c *gin.Context) {
	actor, ok := middleware.MustCurrentUser(c)
	if !ok {
		return
	}

	examID, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var reqs []dto.AddQuestionRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}
	if len(reqs) == 0 {
		middleware.HandleAPIError(c, apperrors.ErrBadRequest)
		return
	}

	exam, err := ctrl.instructorService.AddQuestions(c.Request.Context(), actor, examID, reqs)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(exam))
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Tags instructor
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/instructor/questions/{id} [delete]
func (ctrl *InstructorController) DeleteQuestion(c *gin.Context) {
	actor, ok := middleware.MustCurrentUser(c)
	if !ok {
		return
	}

	questionID, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := ctrl.instructorService.DeleteQuestion(c.Request.Context(), actor, questionID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMessageResponse("Question deleted"))
}

// PublishExam godoc
// @Summary Publish an exam
// @Tags instructor
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/instructor/exams/{id}/publish [post]
func (ctrl *InstructorController) PublishExam(c *gin.Context) {
	actor, ok := middleware.MustCurrentUser(c)
	if !ok {
		return
	}

	examID, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := ctrl.instructorService.PublishExam(c.Request.Context(), actor, examID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMessageResponse("Exam published"))
}

// UnpublishExam godoc
// @Summary Unpublish an exam
// @Tags instructor
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/instructor/exams/{id}/unpublish [post]
func (ctrl *InstructorController) UnpublishExam(c *gin.Context) {
	actor, ok := middleware.MustCurrentUser(c)
	if !ok {
		return
	}

	examID, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := ctrl.instructorService.UnpublishExam(c.Request.Context(), actor, examID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMessageResponse("Exam unpublished"))
}

// GetExamResults godoc
// @Summary List results of an exam
// @Tags instructor
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID"
// @Success 200 {object} dto.APIResponse{data=[]models.ExamResult}
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/instructor/exams/{id}/results [get]
func (ctrl *InstructorController) GetExamResults(c *gin.Context) {
	actor, ok := middleware.MustCurrentUser(c)
	if !ok {
		return
	}

	examID, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	results, err := ctrl.instructorService.GetExamResults(c.Request.Context(), actor, examID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(results))
}

// GenerateQuestions godoc
// @Summary Draft questions with AI
// @Description Generates question candidates for a topic; nothing is persisted
// @Tags instructor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AIQuestionRequest true "Generation parameters"
// @Success 200 {object} dto.APIResponse{data=[]models.Question}
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/instructor/ai/questions [post]
func (ctrl *InstructorController) GenerateQuestions(c *gin.Context) {
	if ctrl.aiService == nil {
		c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeExternalServiceError, "AI question generation is not configured")))
		return
	}

	var req dto.AIQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	questions, err := ctrl.aiService.GenerateQuestions(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(questions))
}
