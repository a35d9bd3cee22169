package models

import "time"

// ExamResult is one graded attempt of a student at an exam. Rows are written
// exactly once per accepted submission and never updated afterwards. The
// attempt number is unique per (student, exam) at the storage layer.
type ExamResult struct {
	ID            int64        `json:"id" db:"id"`
	StudentID     int64        `json:"studentId" db:"student_id"`
	ExamID        int64        `json:"examId" db:"exam_id"`
	AttemptNumber int          `json:"attemptNumber" db:"attempt_number"`
	Score         int          `json:"score" db:"score"`
	Status        ResultStatus `json:"status" db:"status"`
	CreatedAt     time.Time    `json:"createdAt" db:"created_at"`
}

// GPAScale is the upper bound of the grade point scale.
const GPAScale = 4.0

// StudentCourseGPA aggregates a student's attempts within one course. The
// average is weighted by each exam's total score, so a 100-point final moves
// it more than a 10-point quiz. GPA maps the percentage onto the 4.0 scale.
type StudentCourseGPA struct {
	StudentID   int64   `json:"studentId" db:"student_id"`
	CourseID    int64   `json:"courseId" db:"course_id"`
	StudentName string  `json:"studentName" db:"student_name"`
	CourseName  string  `json:"courseName" db:"course_name"`
	AvgPercent  float64 `json:"avgPercent" db:"avg_percent"`
	GPA         float64 `json:"gpa" db:"gpa"`
}
