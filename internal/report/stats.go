// Package report assembles the aggregator outputs into the shapes the
// command layer renders.
package report

import (
	"github.com/Veraticus/caderno/internal/attendance"
	"github.com/Veraticus/caderno/internal/grades"
	"github.com/Veraticus/caderno/internal/model"
)

// SubjectGrades is the computed grade view for one subject: the three
// trimester results, the yearly final, and (under the absolute method) the
// score still needed per remaining trimester.
type SubjectGrades struct {
	SubjectID   string
	Name        string
	Trimesters  [3]grades.TrimesterResult
	Final       float64
	Needed      float64
	NeededKnown bool
}

// GradeStats computes the grade view for every subject that counts toward
// grades, under the active settings.
func GradeStats(subjects []model.Subject, assessments []model.Assessment, settings model.Settings) []SubjectGrades {
	var out []SubjectGrades
	for _, subject := range subjects {
		if !subject.CountsGrades() {
			continue
		}

		sg := SubjectGrades{
			SubjectID: subject.ID,
			Name:      subject.Name,
		}
		for t := 1; t <= 3; t++ {
			sg.Trimesters[t-1] = grades.Trimester(assessments, subject.ID, t, settings.GradingSystem)
		}
		sg.Final = grades.Final(assessments, subject.ID, settings.GradeCalcMethod, settings.GradingSystem)

		// The simulator only makes sense when every trimester weighs in.
		if settings.GradeCalcMethod == model.CalcAbsolute {
			sg.Needed, sg.NeededKnown = grades.NeededScore(assessments, subject.ID, settings.GradingSystem, settings.PassingGrade)
		}

		out = append(out, sg)
	}
	return out
}

// Summary is the dashboard roll-up across all subjects.
type Summary struct {
	GlobalAverage   float64
	GlobalFrequency float64
	AtRiskCount     int
	BestSubject     string
}

// KPIs computes the global indicators over one snapshot. The global average
// covers subjects with at least one assessment; the global frequency is
// total attended over total held across all counting subjects.
func KPIs(snap *model.Snapshot) Summary {
	var sum Summary

	var gradeSum float64
	var graded int
	best := -1.0
	for _, sg := range GradeStats(snap.Subjects, snap.Assessments, snap.Settings) {
		hasData := false
		for _, tr := range sg.Trimesters {
			if tr.HasAssessments {
				hasData = true
				break
			}
		}
		if !hasData {
			continue
		}
		gradeSum += sg.Final
		graded++
		if sg.Final > best {
			best = sg.Final
			sum.BestSubject = sg.Name
		}
	}
	if graded > 0 {
		sum.GlobalAverage = gradeSum / float64(graded)
	}

	var held, present int
	for _, st := range attendance.Aggregate(snap.Subjects, snap.Schedule, snap.SpecialDays, snap.Validations, snap.Logs) {
		held += st.ClassesHeld
		present += st.ClassesPresent
		if st.IsRiskAbsence {
			sum.AtRiskCount++
		}
	}
	if held > 0 {
		sum.GlobalFrequency = 100 * float64(present) / float64(held)
	}

	return sum
}
