package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassStatusCycle(t *testing.T) {
	assert.Equal(t, StatusAbsent, StatusPresent.Next())
	assert.Equal(t, StatusCanceled, StatusAbsent.Next())
	assert.Equal(t, StatusPresent, StatusCanceled.Next())

	t.Run("substituted is outside the cycle", func(t *testing.T) {
		// The manual toggle can never produce SUBSTITUTED, only leave it.
		assert.Equal(t, StatusPresent, StatusSubstituted.Next())

		for _, s := range []ClassStatus{StatusPresent, StatusAbsent, StatusCanceled} {
			assert.NotEqual(t, StatusSubstituted, s.Next())
		}
	})
}

func TestClassStatusValid(t *testing.T) {
	for _, s := range []ClassStatus{StatusPresent, StatusAbsent, StatusCanceled, StatusSubstituted} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, ClassStatus("LATE").Valid())
	assert.False(t, ClassStatus("").Valid())
}

func TestResolveDefaults(t *testing.T) {
	slot := ScheduleSlot{ID: "s1", Weekday: 1, StartTime: "07:00", EndTime: "07:50", SubjectID: "math"}

	t.Run("no log means present with the slot default", func(t *testing.T) {
		assert.Equal(t, StatusPresent, ResolveStatus(nil))
		assert.Equal(t, "math", ResolveSubject(slot, nil))
	})

	t.Run("a log overrides both", func(t *testing.T) {
		log := &ClassLog{Status: StatusAbsent, ActualSubjectID: "history"}
		assert.Equal(t, StatusAbsent, ResolveStatus(log))
		assert.Equal(t, "history", ResolveSubject(slot, log))
	})

	t.Run("a log with no actual subject falls back to the slot", func(t *testing.T) {
		log := &ClassLog{Status: StatusCanceled}
		assert.Equal(t, "math", ResolveSubject(slot, log))
	})
}
