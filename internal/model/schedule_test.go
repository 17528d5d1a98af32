package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekday(t *testing.T) {
	assert.Equal(t, 1, Weekday("2025-03-03")) // Monday
	assert.Equal(t, 6, Weekday("2025-03-08")) // Saturday
	assert.Equal(t, -1, Weekday("not-a-date"))
}

func TestSlotsForDate(t *testing.T) {
	schedule := []ScheduleSlot{
		{ID: "mon-1", Weekday: 1, StartTime: "07:00", EndTime: "07:50", SubjectID: "math"},
		{ID: "mon-2", Weekday: 1, StartTime: "08:00", EndTime: "08:50", SubjectID: "history"},
		{ID: "tue-1", Weekday: 2, StartTime: "07:00", EndTime: "07:50", SubjectID: "math"},
	}
	specialDays := []SpecialDay{{
		Date:        "2025-03-08",
		CustomSlots: []ScheduleSlot{{ID: "sat-1", Weekday: 6, StartTime: "09:00", EndTime: "09:50", SubjectID: "math"}},
	}}

	t.Run("ordinary weekday uses the recurrence", func(t *testing.T) {
		slots := SlotsForDate(schedule, specialDays, "2025-03-03")
		require.Len(t, slots, 2)
		assert.Equal(t, "mon-1", slots[0].ID)
		assert.Equal(t, "mon-2", slots[1].ID)
	})

	t.Run("special day replaces the recurrence", func(t *testing.T) {
		slots := SlotsForDate(schedule, specialDays, "2025-03-08")
		require.Len(t, slots, 1)
		assert.Equal(t, "sat-1", slots[0].ID)
	})

	t.Run("duplicate day and time slots are allowed", func(t *testing.T) {
		dup := append(schedule, ScheduleSlot{ID: "mon-3", Weekday: 1, StartTime: "07:00", EndTime: "07:50", SubjectID: "arts"})
		slots := SlotsForDate(dup, nil, "2025-03-03")
		assert.Len(t, slots, 3)
	})
}

func TestFindSlot(t *testing.T) {
	schedule := []ScheduleSlot{
		{ID: "mon-1", Weekday: 1, StartTime: "07:00", EndTime: "07:50", SubjectID: "math"},
	}

	slot := FindSlot(schedule, nil, "2025-03-03", "mon-1")
	require.NotNil(t, slot)
	assert.Equal(t, "math", slot.SubjectID)

	// Right slot id, wrong weekday.
	assert.Nil(t, FindSlot(schedule, nil, "2025-03-04", "mon-1"))
}
