package grades

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/caderno/internal/model"
)

func assessment(subject string, trimester int, value, weight float64, extra bool) model.Assessment {
	return model.Assessment{
		ID:        "a",
		SubjectID: subject,
		Trimester: trimester,
		Name:      "test",
		Value:     value,
		Weight:    weight,
		IsExtra:   extra,
	}
}

func TestTrimesterWeightedAverage(t *testing.T) {
	t.Run("weights apply to non-extra entries", func(t *testing.T) {
		assessments := []model.Assessment{
			assessment("math", 1, 8, 2, false),
			assessment("math", 1, 6, 1, false),
		}

		res := Trimester(assessments, "math", 1, model.SystemAverage)
		assert.True(t, res.HasAssessments)
		assert.InDelta(t, 22.0/3.0, res.Average, 1e-9)
	})

	t.Run("extra points land after the weighted base", func(t *testing.T) {
		assessments := []model.Assessment{
			assessment("math", 1, 8, 2, false),
			assessment("math", 1, 6, 1, false),
			assessment("math", 1, 1, 0, true),
		}

		res := Trimester(assessments, "math", 1, model.SystemAverage)
		assert.InDelta(t, 22.0/3.0+1, res.Average, 1e-9)
	})

	t.Run("clamps above ten", func(t *testing.T) {
		assessments := []model.Assessment{
			assessment("math", 1, 9, 1, false),
			assessment("math", 1, 3, 0, true),
		}

		res := Trimester(assessments, "math", 1, model.SystemAverage)
		assert.Equal(t, 10.0, res.Average)
	})

	t.Run("zero total weight yields the extras only", func(t *testing.T) {
		assessments := []model.Assessment{
			assessment("math", 1, 8, 0, false),
			assessment("math", 1, 2, 0, true),
		}

		res := Trimester(assessments, "math", 1, model.SystemAverage)
		assert.Equal(t, 2.0, res.Average)
	})

	t.Run("other subjects and trimesters are excluded", func(t *testing.T) {
		assessments := []model.Assessment{
			assessment("math", 1, 8, 1, false),
			assessment("math", 2, 2, 1, false),
			assessment("history", 1, 4, 1, false),
		}

		res := Trimester(assessments, "math", 1, model.SystemAverage)
		assert.Equal(t, 8.0, res.Average)
	})
}

func TestTrimesterSumAndManual(t *testing.T) {
	assessments := []model.Assessment{
		assessment("math", 1, 3, 2, false),
		assessment("math", 1, 2.5, 1, false),
		assessment("math", 1, 1, 0, true),
	}

	for _, system := range []model.GradingSystem{model.SystemSum, model.SystemManual} {
		t.Run(string(system), func(t *testing.T) {
			res := Trimester(assessments, "math", 1, system)
			// Weights are ignored; every value adds up.
			assert.InDelta(t, 6.5, res.Average, 1e-9)
		})
	}

	t.Run("sum clamps at ten", func(t *testing.T) {
		many := []model.Assessment{
			assessment("math", 1, 6, 1, false),
			assessment("math", 1, 6, 1, false),
		}
		res := Trimester(many, "math", 1, model.SystemSum)
		assert.Equal(t, 10.0, res.Average)
	})
}

func TestTrimesterEmpty(t *testing.T) {
	res := Trimester(nil, "math", 1, model.SystemAverage)
	assert.False(t, res.HasAssessments)
	assert.Equal(t, 0.0, res.Average)
}

func TestFinalAbsoluteVsRunning(t *testing.T) {
	// T1=8, T2 has no assessments at all, T3=7.
	assessments := []model.Assessment{
		assessment("math", 1, 8, 1, false),
		assessment("math", 3, 7, 1, false),
	}

	t.Run("absolute always divides by three", func(t *testing.T) {
		final := Final(assessments, "math", model.CalcAbsolute, model.SystemAverage)
		assert.InDelta(t, 5.0, final, 1e-9)
	})

	t.Run("running skips the empty trimester", func(t *testing.T) {
		final := Final(assessments, "math", model.CalcRunning, model.SystemAverage)
		assert.InDelta(t, 7.5, final, 1e-9)
	})

	t.Run("a zero-average trimester with data still counts", func(t *testing.T) {
		withZero := append([]model.Assessment{}, assessments...)
		withZero = append(withZero, assessment("math", 2, 0, 1, false))

		final := Final(withZero, "math", model.CalcRunning, model.SystemAverage)
		assert.InDelta(t, 5.0, final, 1e-9)
	})

	t.Run("no data at all is zero, not NaN", func(t *testing.T) {
		assert.Equal(t, 0.0, Final(nil, "math", model.CalcRunning, model.SystemAverage))
		assert.Equal(t, 0.0, Final(nil, "math", model.CalcAbsolute, model.SystemAverage))
	})
}

func TestNeededScore(t *testing.T) {
	t.Run("two trimesters done", func(t *testing.T) {
		assessments := []model.Assessment{
			assessment("math", 1, 5, 1, false),
			assessment("math", 2, 6, 1, false),
		}

		needed, ok := NeededScore(assessments, "math", model.SystemAverage, 6.0)
		assert.True(t, ok)
		// 6*3 - 11 = 7 needed in the one remaining trimester.
		assert.InDelta(t, 7.0, needed, 1e-9)
	})

	t.Run("already passing floors at zero", func(t *testing.T) {
		assessments := []model.Assessment{
			assessment("math", 1, 10, 1, false),
			assessment("math", 2, 10, 1, false),
		}

		needed, ok := NeededScore(assessments, "math", model.SystemAverage, 6.0)
		assert.True(t, ok)
		assert.Equal(t, 0.0, needed)
	})

	t.Run("nothing left to simulate", func(t *testing.T) {
		assessments := []model.Assessment{
			assessment("math", 1, 5, 1, false),
			assessment("math", 2, 5, 1, false),
			assessment("math", 3, 5, 1, false),
		}

		_, ok := NeededScore(assessments, "math", model.SystemAverage, 6.0)
		assert.False(t, ok)
	})
}
