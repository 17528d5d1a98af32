package model

// GradeCalcMethod governs how trimester averages combine into the yearly
// final grade.
type GradeCalcMethod string

const (
	// CalcRunning averages only the trimesters that have data so far.
	CalcRunning GradeCalcMethod = "running"
	// CalcAbsolute always divides by three; early-year finals are pulled
	// down by the trimesters that have not happened yet.
	CalcAbsolute GradeCalcMethod = "absolute"
)

// Valid returns true when the method is a supported value.
func (m GradeCalcMethod) Valid() bool {
	return m == CalcRunning || m == CalcAbsolute
}

// GradingSystem governs how assessments aggregate within a trimester.
type GradingSystem string

const (
	// SystemAverage computes a weighted average of non-extra assessments
	// and adds extra points on top.
	SystemAverage GradingSystem = "average"
	// SystemSum accumulates points; every value is simply added.
	SystemSum GradingSystem = "sum"
	// SystemManual sums whatever the user entered, for schools whose
	// formula fits neither of the above.
	SystemManual GradingSystem = "manual"
)

// Valid returns true when the system is a supported value.
func (g GradingSystem) Valid() bool {
	return g == SystemAverage || g == SystemSum || g == SystemManual
}

// Settings is the per-partition configuration record. CurrentYear names the
// active data partition; changing it is a dataset switch, not a filter.
type Settings struct {
	PassingGrade    float64         `json:"passingGrade" validate:"gte=0,lte=10"`
	GradeCalcMethod GradeCalcMethod `json:"gradeCalcMethod"`
	GradingSystem   GradingSystem   `json:"gradingSystem"`
	CurrentYear     int             `json:"currentYear" validate:"gte=2000,lte=2100"`
}

// DefaultSettings returns the settings seeded into a new partition.
func DefaultSettings(year int) Settings {
	return Settings{
		PassingGrade:    6.0,
		GradeCalcMethod: CalcRunning,
		GradingSystem:   SystemAverage,
		CurrentYear:     year,
	}
}
