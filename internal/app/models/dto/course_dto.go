package dto

// CreateCourseRequest represents a course creation request
type CreateCourseRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// UpdateCourseRequest represents a course update request
type UpdateCourseRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// AssignInstructorRequest assigns an existing instructor to a course
type AssignInstructorRequest struct {
	InstructorID int64 `json:"instructorId" binding:"required"`
	CourseID     int64 `json:"courseId" binding:"required"`
}
