package model

// Task is a user note or to-do item, optionally tied to a subject.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
	SubjectID   string `json:"subjectId,omitempty"`
	DueDate     string `json:"dueDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Done        bool   `json:"done"`
}
