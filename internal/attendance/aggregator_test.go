package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/caderno/internal/model"
)

// 2025-03-03 is a Monday, 2025-03-08 a Saturday.
const (
	monday   = "2025-03-03"
	saturday = "2025-03-08"
)

func fixtureSubjects() []model.Subject {
	return []model.Subject{
		{ID: "math", Name: "Math", Type: model.SubjectNormal, TotalClasses: 80},
		{ID: "history", Name: "History", Type: model.SubjectNormal, TotalClasses: 40},
		{ID: "break", Name: "Break", Type: model.SubjectOrganizational},
	}
}

func fixtureSchedule() []model.ScheduleSlot {
	return []model.ScheduleSlot{
		{ID: "slot-math", Weekday: 1, StartTime: "07:00", EndTime: "07:50", SubjectID: "math"},
		{ID: "slot-hist", Weekday: 1, StartTime: "08:00", EndTime: "08:50", SubjectID: "history"},
	}
}

func validated(dates ...string) []model.DayValidation {
	out := make([]model.DayValidation, 0, len(dates))
	for _, d := range dates {
		out = append(out, model.DayValidation{Date: d, IsValidated: true})
	}
	return out
}

func statsFor(t *testing.T, stats []SubjectStats, id string) SubjectStats {
	t.Helper()
	for _, st := range stats {
		if st.SubjectID == id {
			return st
		}
	}
	t.Fatalf("no stats for subject %q", id)
	return SubjectStats{}
}

func TestAggregateDefaults(t *testing.T) {
	t.Run("validated day with no logs counts held and present", func(t *testing.T) {
		stats := Aggregate(fixtureSubjects(), fixtureSchedule(), nil, validated(monday), nil)

		math := statsFor(t, stats, "math")
		assert.Equal(t, 1, math.ClassesHeld)
		assert.Equal(t, 1, math.ClassesPresent)
		assert.Equal(t, 0, math.Absences)
		assert.Equal(t, 100.0, math.FrequencyPercent)
	})

	t.Run("unvalidated days never count", func(t *testing.T) {
		stats := Aggregate(fixtureSubjects(), fixtureSchedule(), nil, nil, nil)

		math := statsFor(t, stats, "math")
		// Held is forced to 1 to guard the division, present stays 0.
		assert.Equal(t, 1, math.ClassesHeld)
		assert.Equal(t, 0, math.ClassesPresent)
		assert.Equal(t, 0.0, math.FrequencyPercent)
	})

	t.Run("organizational subjects are skipped", func(t *testing.T) {
		stats := Aggregate(fixtureSubjects(), fixtureSchedule(), nil, validated(monday), nil)
		for _, st := range stats {
			require.NotEqual(t, "break", st.SubjectID)
		}
	})
}

func TestAbsenceBank(t *testing.T) {
	// totalClasses=80 gives limit = floor(80*0.25) = 20.
	logs := make([]model.ClassLog, 0, 6)
	days := []string{"2025-03-03", "2025-03-10", "2025-03-17", "2025-03-24", "2025-03-31"}
	for i, d := range days {
		logs = append(logs, model.ClassLog{
			ID: string(rune('a' + i)), Date: d, SlotID: "slot-math",
			OriginalSubjectID: "math", ActualSubjectID: "math", Status: model.StatusAbsent,
		})
	}

	stats := Aggregate(fixtureSubjects(), fixtureSchedule(), nil, validated(days...), logs)
	math := statsFor(t, stats, "math")
	assert.Equal(t, 20, math.Limit)
	assert.Equal(t, 5, math.Absences)
	assert.Equal(t, 15, math.Bank)
	assert.Equal(t, 5, math.ClassesHeld)
	assert.Equal(t, 0, math.ClassesPresent)

	t.Run("a sixth absence shrinks the bank again", func(t *testing.T) {
		more := append(logs, model.ClassLog{
			ID: "f", Date: "2025-04-07", SlotID: "slot-math",
			OriginalSubjectID: "math", ActualSubjectID: "math", Status: model.StatusAbsent,
		})
		stats := Aggregate(fixtureSubjects(), fixtureSchedule(), nil,
			validated(append(days, "2025-04-07")...), more)
		assert.Equal(t, 14, statsFor(t, stats, "math").Bank)
	})

	t.Run("bank may go negative without error", func(t *testing.T) {
		subjects := []model.Subject{{ID: "math", Name: "Math", Type: model.SubjectNormal, TotalClasses: 8}}
		// limit = 2, three absences.
		stats := Aggregate(subjects, fixtureSchedule(), nil, validated(days[:3]...), logs[:3])
		math := statsFor(t, stats, "math")
		assert.Equal(t, -1, math.Bank)
		assert.True(t, math.IsRiskAbsence)
	})
}

func TestCancellationExclusion(t *testing.T) {
	logs := []model.ClassLog{{
		ID: "a", Date: monday, SlotID: "slot-math",
		OriginalSubjectID: "math", ActualSubjectID: "math", Status: model.StatusCanceled,
	}}

	stats := Aggregate(fixtureSubjects(), fixtureSchedule(), nil, validated(monday), logs)
	math := statsFor(t, stats, "math")
	// Forced to 1 only because nothing else was held.
	assert.Equal(t, 1, math.ClassesHeld)
	assert.Equal(t, 0, math.ClassesPresent)
	assert.Equal(t, 0, math.Absences)
}

func TestSubstitutionCounting(t *testing.T) {
	// History borrowed math's Monday slot.
	logs := []model.ClassLog{{
		ID: "a", Date: monday, SlotID: "slot-math",
		OriginalSubjectID: "math", ActualSubjectID: "history", Status: model.StatusPresent,
	}}

	stats := Aggregate(fixtureSubjects(), fixtureSchedule(), nil, validated(monday), logs)

	t.Run("the substituted-in subject gains the session", func(t *testing.T) {
		history := statsFor(t, stats, "history")
		// Its own slot plus the borrowed one.
		assert.Equal(t, 2, history.ClassesHeld)
		assert.Equal(t, 2, history.ClassesPresent)
	})

	t.Run("the substituted-away subject loses it", func(t *testing.T) {
		math := statsFor(t, stats, "math")
		assert.Equal(t, 1, math.ClassesHeld) // division guard only
		assert.Equal(t, 0, math.ClassesPresent)
	})

	t.Run("absence against the substituted-in subject consumes its bank", func(t *testing.T) {
		absent := []model.ClassLog{{
			ID: "a", Date: monday, SlotID: "slot-math",
			OriginalSubjectID: "math", ActualSubjectID: "history", Status: model.StatusAbsent,
		}}
		stats := Aggregate(fixtureSubjects(), fixtureSchedule(), nil, validated(monday), absent)
		assert.Equal(t, 1, statsFor(t, stats, "history").Absences)
		assert.Equal(t, 0, statsFor(t, stats, "math").Absences)
	})

	t.Run("canceled substitution counts for no one", func(t *testing.T) {
		canceled := []model.ClassLog{{
			ID: "a", Date: monday, SlotID: "slot-math",
			OriginalSubjectID: "math", ActualSubjectID: "history", Status: model.StatusCanceled,
		}}
		stats := Aggregate(fixtureSubjects(), fixtureSchedule(), nil, validated(monday), canceled)
		assert.Equal(t, 1, statsFor(t, stats, "history").ClassesHeld)
		assert.Equal(t, 0, statsFor(t, stats, "math").ClassesPresent)
	})
}

func TestSpecialDaySessions(t *testing.T) {
	specialDays := []model.SpecialDay{{
		Date: saturday,
		CustomSlots: []model.ScheduleSlot{
			{ID: "sat-math", Weekday: 6, StartTime: "09:00", EndTime: "09:50", SubjectID: "math"},
		},
	}}

	t.Run("custom slots count like recurring ones", func(t *testing.T) {
		stats := Aggregate(fixtureSubjects(), fixtureSchedule(), specialDays, validated(saturday), nil)
		math := statsFor(t, stats, "math")
		assert.Equal(t, 1, math.ClassesHeld)
		assert.Equal(t, 1, math.ClassesPresent)
	})

	t.Run("custom slots replace the weekday recurrence", func(t *testing.T) {
		// A special Monday without a math slot hides the recurring one.
		override := []model.SpecialDay{{Date: monday, CustomSlots: nil}}
		stats := Aggregate(fixtureSubjects(), fixtureSchedule(), override, validated(monday), nil)
		math := statsFor(t, stats, "math")
		assert.Equal(t, 0, math.ClassesPresent)
	})
}

func TestRiskFlag(t *testing.T) {
	// limit = 10; risk once bank <= 2.
	subjects := []model.Subject{{ID: "math", Name: "Math", Type: model.SubjectNormal, TotalClasses: 40}}

	var logs []model.ClassLog
	var days []string
	for i := 0; i < 8; i++ {
		d := "2025-05-0" + string(rune('1'+i))
		days = append(days, d)
		logs = append(logs, model.ClassLog{
			ID: string(rune('a' + i)), Date: d, SlotID: "slot-math",
			OriginalSubjectID: "math", ActualSubjectID: "math", Status: model.StatusAbsent,
		})
	}

	stats := Aggregate(subjects, fixtureSchedule(), nil, validated(days...), logs)
	math := statsFor(t, stats, "math")
	assert.Equal(t, 2, math.Bank)
	assert.True(t, math.IsRiskAbsence)

	t.Run("one absence earlier is not yet risky", func(t *testing.T) {
		stats := Aggregate(subjects, fixtureSchedule(), nil, validated(days[:7]...), logs[:7])
		math := statsFor(t, stats, "math")
		assert.Equal(t, 3, math.Bank)
		assert.False(t, math.IsRiskAbsence)
	})
}
