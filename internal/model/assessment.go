package model

// Assessment is one graded entry for a subject in a trimester. Extra
// assessments are bonus points added after the base average, exempt from
// weighting. Assessments are added and removed whole; values are never
// edited in place.
type Assessment struct {
	ID        string  `json:"id"`
	SubjectID string  `json:"subjectId" validate:"required"`
	Trimester int     `json:"trimester" validate:"gte=1,lte=3"`
	Name      string  `json:"name" validate:"required"`
	Value     float64 `json:"value" validate:"gte=0,lte=10"`
	Weight    float64 `json:"weight" validate:"gte=0"`
	Date      string  `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	IsExtra   bool    `json:"isExtra,omitempty"`
}
