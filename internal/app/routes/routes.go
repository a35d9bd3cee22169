package routes

import (
	"net/http"

	"github.com/examplatform/backend/internal/app/controllers"
	"github.com/examplatform/backend/internal/app/repositories"
	"github.com/examplatform/backend/internal/middleware"
	"github.com/examplatform/backend/internal/pkg/auth"
	"github.com/gin-gonic/gin"
)

// SetupRoutes wires the HTTP routes. Authentication and the access policy run
// globally, so a route added under /api is gated even if nobody remembers to
// attach a per-group middleware.
func SetupRoutes(router *gin.Engine, ctrls *controllers.Controllers, jwtService *auth.JWTService, userRepo repositories.IUserRepository) {
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Authenticate(jwtService, userRepo))
	router.Use(middleware.Authorize(middleware.DefaultPolicy))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", ctrls.AuthController.Register)
		authGroup.POST("/login", ctrls.AuthController.Login)
	}

	profile := api.Group("/profile")
	{
		profile.GET("", ctrls.AuthController.GetProfile)
		profile.PUT("", ctrls.AuthController.UpdateProfile)
	}

	admin := api.Group("/admin")
	{
		admin.POST("/instructors", ctrls.AdminController.AddInstructor)
		admin.DELETE("/instructors/:id", ctrls.AdminController.RemoveInstructor)
		admin.POST("/courses/assign-instructor", ctrls.AdminController.AssignInstructor)
		admin.GET("/users", ctrls.AdminController.GetAllUsers)
		admin.GET("/analytics", ctrls.AdminController.GetAnalytics)
		admin.GET("/analytics/gpa", ctrls.AdminController.GetGPAReport)
		admin.GET("/analytics/gpa/by-student", ctrls.AdminController.GetStudentGPA)
	}

	instructor := api.Group("/instructor")
	{
		instructor.GET("/courses", ctrls.InstructorController.GetMyCourses)
		instructor.POST("/courses", ctrls.InstructorController.CreateCourse)
		instructor.PUT("/courses/:id", ctrls.InstructorController.UpdateCourse)
		instructor.DELETE("/courses/:id", ctrls.InstructorController.DeleteCourse)
		instructor.GET("/courses/:id/students", ctrls.InstructorController.GetEnrolledStudents)
		instructor.GET("/courses/:id/exams", ctrls.InstructorController.GetExamsByCourse)

		instructor.POST("/exams", ctrls.InstructorController.CreateExam)
		instructor.GET("/exams/:id", ctrls.InstructorController.GetExam)
		instructor.PUT("/exams/:id", ctrls.InstructorController.UpdateExam)
		instructor.POST("/exams/:id/questions", ctrls.InstructorController.AddQuestions)
		instructor.POST("/exams/:id/publish", ctrls.InstructorController.PublishExam)
		instructor.POST("/exams/:id/unpublish", ctrls.InstructorController.UnpublishExam)
		instructor.GET("/exams/:id/results", ctrls.InstructorController.GetExamResults)
		instructor.DELETE("/questions/:id", ctrls.InstructorController.DeleteQuestion)

		instructor.POST("/ai/questions", ctrls.InstructorController.GenerateQuestions)
	}

	student := api.Group("/student")
	{
		student.GET("/courses", ctrls.StudentController.GetAllCourses)
		student.GET("/courses/enrolled", ctrls.StudentController.GetMyCourses)
		student.POST("/courses/:id/enroll", ctrls.StudentController.EnrollInCourse)
		student.GET("/exams", ctrls.StudentController.GetAvailableExams)
		student.GET("/exams/:id", ctrls.StudentController.GetExamForAttempt)
		student.POST("/exams/:id/submit", ctrls.StudentController.SubmitExam)
		student.GET("/results", ctrls.StudentController.GetMyResults)
	}
}
