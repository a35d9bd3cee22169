package controllers

import (
	"net/http"

	"github.com/examplatform/backend/internal/app/models/dto"
	"github.com/examplatform/backend/internal/app/services"
	"github.com/examplatform/backend/internal/middleware"
	"github.com/examplatform/backend/internal/pkg/helpers"
	"github.com/gin-gonic/gin"
)

// AdminController handles platform administration endpoints
type AdminController struct {
	adminService *services.AdminService
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService *services.AdminService) *AdminController {
	return &AdminController{adminService: adminService}
}

// AddInstructor godoc
// @Summary Create an instructor account
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AddInstructorRequest true "Instructor details"
// @Success 201 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/admin/instructors [post]
func (ctrl *AdminController) AddInstructor(c *gin.Context) {
	var req dto.AddInstructorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	user, err := ctrl.adminService.AddInstructor(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewAPIResponse(dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		RoleType:  string(user.RoleType),
	}))
}

// RemoveInstructor godoc
// @Summary Delete an instructor account
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Instructor ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/admin/instructors/{id} [delete]
func (ctrl *AdminController) RemoveInstructor(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := ctrl.adminService.RemoveInstructor(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMessageResponse("Instructor removed"))
}

// AssignInstructor godoc
// @Summary Assign an instructor to a course
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AssignInstructorRequest true "Assignment"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/admin/courses/assign-instructor [post]
func (ctrl *AdminController) AssignInstructor(c *gin.Context) {
	var req dto.AssignInstructorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	if err := ctrl.adminService.AssignInstructorToCourse(c.Request.Context(), &req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMessageResponse("Instructor assigned to course"))
}

// GetAllUsers godoc
// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.UserListResponse}
// @Router /api/admin/users [get]
func (ctrl *AdminController) GetAllUsers(c *gin.Context) {
	page, size := helpers.ParsePaginationParams(c)

	resp, err := ctrl.adminService.GetAllUsers(c.Request.Context(), page, size)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// GetAnalytics godoc
// @Summary Platform result analytics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse
// @Router /api/admin/analytics [get]
func (ctrl *AdminController) GetAnalytics(c *gin.Context) {
	summary, err := ctrl.adminService.GetAnalytics(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMessageResponse(summary))
}

// GetGPAReport godoc
// @Summary Weighted per-student, per-course GPA report
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.StudentCourseGPA}
// @Router /api/admin/analytics/gpa [get]
func (ctrl *AdminController) GetGPAReport(c *gin.Context) {
	rows, err := ctrl.adminService.GetStudentCourseGPAs(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(rows))
}

// GetStudentGPA godoc
// @Summary Weighted per-course GPA of one student
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param studentId query int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=[]models.StudentCourseGPA}
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/admin/analytics/gpa/by-student [get]
func (ctrl *AdminController) GetStudentGPA(c *gin.Context) {
	studentID, err := parseIDQuery(c, "studentId")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	rows, err := ctrl.adminService.GetStudentGPA(c.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(rows))
}
