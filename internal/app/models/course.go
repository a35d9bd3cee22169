package models

// Course represents a course owned by one or more instructors. Ownership and
// enrollment are kept as id sets rather than entity back-references; the
// reverse direction (user -> courses) is answered by repository queries.
type Course struct {
	ID          int64   `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Description *string `json:"description,omitempty" db:"description"` // Nullable

	InstructorIDs []int64 `json:"instructorIds,omitempty"`
	StudentIDs    []int64 `json:"studentIds,omitempty"`
}

// HasInstructor reports whether the given user is a member of the course's
// instructor set.
func (c *Course) HasInstructor(userID int64) bool {
	for _, id := range c.InstructorIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// HasStudent reports whether the given user is enrolled.
func (c *Course) HasStudent(userID int64) bool {
	for _, id := range c.StudentIDs {
		if id == userID {
			return true
		}
	}
	return false
}
