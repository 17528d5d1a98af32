// Package grades aggregates trimester-scoped assessments into trimester
// and yearly averages under the configurable grading policies.
package grades

import (
	"github.com/Veraticus/caderno/internal/model"
)

// TrimesterResult is one trimester's computed average. HasAssessments lets
// callers distinguish "legitimately zero" from "no data yet" when deciding
// what to render.
type TrimesterResult struct {
	Average        float64
	HasAssessments bool
}

// Trimester computes the average for one (subject, trimester) under the
// given grading system. The result is always clamped to [0, 10]; an empty
// trimester yields 0.
func Trimester(assessments []model.Assessment, subjectID string, trimester int, system model.GradingSystem) TrimesterResult {
	var entries []model.Assessment
	for _, a := range assessments {
		if a.SubjectID == subjectID && a.Trimester == trimester {
			entries = append(entries, a)
		}
	}
	if len(entries) == 0 {
		return TrimesterResult{}
	}

	var result float64
	switch system {
	case model.SystemManual, model.SystemSum:
		// Points accumulate; extras and non-extras alike are plain sums.
		for _, a := range entries {
			result += a.Value
		}
	default: // model.SystemAverage
		var weightedSum, totalWeight, extra float64
		for _, a := range entries {
			if a.IsExtra {
				extra += a.Value
				continue
			}
			weightedSum += a.Value * a.Weight
			totalWeight += a.Weight
		}
		if totalWeight > 0 {
			result = weightedSum / totalWeight
		}
		result += extra
	}

	return TrimesterResult{
		Average:        clamp(result),
		HasAssessments: true,
	}
}

// Final computes the yearly final average for a subject. Under the absolute
// method the sum always divides by three; under the running method only
// trimesters that count participate. A trimester counts when its average is
// above zero or it has at least one assessment.
func Final(assessments []model.Assessment, subjectID string, method model.GradeCalcMethod, system model.GradingSystem) float64 {
	var sum float64
	var counted int
	for t := 1; t <= 3; t++ {
		res := Trimester(assessments, subjectID, t, system)
		sum += res.Average
		if res.Average > 0 || res.HasAssessments {
			counted++
		}
	}

	if method == model.CalcAbsolute {
		return min(10, sum/3)
	}

	if counted == 0 {
		return 0
	}
	return min(10, sum/float64(counted))
}

// NeededScore computes, under the absolute method, the average required in
// each remaining trimester to reach the passing grade. ok is false when
// nothing remains to simulate: all three trimesters already have
// assessments.
func NeededScore(assessments []model.Assessment, subjectID string, system model.GradingSystem, passingGrade float64) (needed float64, ok bool) {
	var currentSum float64
	var passed int
	for t := 1; t <= 3; t++ {
		res := Trimester(assessments, subjectID, t, system)
		if res.HasAssessments {
			currentSum += res.Average
			passed++
		}
	}

	if passed == 3 {
		return 0, false
	}

	needed = (passingGrade*3 - currentSum) / float64(3-passed)
	if needed < 0 {
		needed = 0
	}
	return needed, true
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}
