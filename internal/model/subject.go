// Package model defines the planner's entity types shared across the application.
package model

// SubjectCategory groups subjects for display and reporting.
type SubjectCategory string

const (
	// CategoryExactSciences covers math, physics, chemistry and similar.
	CategoryExactSciences SubjectCategory = "exact"
	// CategoryHumanSciences covers history, geography, philosophy and similar.
	CategoryHumanSciences SubjectCategory = "human"
	// CategoryLanguages covers native and foreign language subjects.
	CategoryLanguages SubjectCategory = "languages"
	// CategoryArts covers arts and music subjects.
	CategoryArts SubjectCategory = "arts"
	// CategorySports covers physical education.
	CategorySports SubjectCategory = "sports"
	// CategoryOther covers anything that fits no other bucket.
	CategoryOther SubjectCategory = "other"
)

// Valid returns true when the category is a supported value.
func (c SubjectCategory) Valid() bool {
	switch c {
	case CategoryExactSciences, CategoryHumanSciences, CategoryLanguages,
		CategoryArts, CategorySports, CategoryOther:
		return true
	default:
		return false
	}
}

// SubjectType discriminates how a subject participates in aggregation.
type SubjectType string

const (
	// SubjectNormal counts toward both grades and attendance.
	SubjectNormal SubjectType = "NORMAL"
	// SubjectOrganizational is display-only (breaks, free periods) and never counts.
	SubjectOrganizational SubjectType = "ORGANIZATIONAL"
	// SubjectExtension counts toward attendance only.
	SubjectExtension SubjectType = "EXTENSION"
)

// Valid returns true when the type is a supported value.
func (t SubjectType) Valid() bool {
	switch t {
	case SubjectNormal, SubjectOrganizational, SubjectExtension:
		return true
	default:
		return false
	}
}

// Fixed organizational subjects that always exist in a snapshot. They are
// substitution targets and cannot be deleted.
const (
	// SubjectMakeup is the "reposicao" makeup-class sentinel.
	SubjectMakeup = "reposicao"
	// SubjectVacant is the "vago" free-period sentinel. Substituting a slot
	// to it cancels the session.
	SubjectVacant = "vago"
)

// Subject is a course tracked by the planner.
type Subject struct {
	ID           string          `json:"id" validate:"required"`
	Name         string          `json:"name" validate:"required"`
	Category     SubjectCategory `json:"category"`
	Type         SubjectType     `json:"type"`
	Teacher      string          `json:"teacher,omitempty"`
	TotalClasses int             `json:"totalClasses" validate:"gte=0"`
}

// AbsenceLimit is the annual absence ceiling: 25% of the contracted
// session count, floored.
func (s Subject) AbsenceLimit() int {
	return s.TotalClasses / 4
}

// CountsAttendance reports whether the subject participates in attendance
// aggregation. Organizational subjects never count.
func (s Subject) CountsAttendance() bool {
	return s.Type == SubjectNormal || s.Type == SubjectExtension
}

// CountsGrades reports whether the subject participates in grade aggregation.
func (s Subject) CountsGrades() bool {
	return s.Type == SubjectNormal
}

// sentinelSubjects returns the fixed organizational subjects seeded into
// every new snapshot.
func sentinelSubjects() []Subject {
	return []Subject{
		{ID: SubjectMakeup, Name: "Reposição", Category: CategoryOther, Type: SubjectOrganizational},
		{ID: SubjectVacant, Name: "Vago", Category: CategoryOther, Type: SubjectOrganizational},
	}
}

// IsSentinel reports whether id names one of the fixed organizational subjects.
func IsSentinel(id string) bool {
	return id == SubjectMakeup || id == SubjectVacant
}
