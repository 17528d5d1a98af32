package model

import "time"

// DateLayout is the exact-date format used throughout the planner.
// Lexicographic order equals chronological order.
const DateLayout = "2006-01-02"

// ScheduleSlot is one recurring weekly class occurrence. Start and end times
// are zero-padded "HH:MM" strings, so string comparison orders them correctly.
type ScheduleSlot struct {
	ID        string `json:"id" validate:"required"`
	Weekday   int    `json:"weekday" validate:"gte=0,lte=6"`
	StartTime string `json:"startTime" validate:"required,len=5"`
	EndTime   string `json:"endTime" validate:"required,len=5"`
	SubjectID string `json:"subjectId" validate:"required"`
}

// SpecialDay is a calendar-date exception carrying its own ad-hoc slot list.
// Its custom slots replace the weekly recurrence for that date entirely.
type SpecialDay struct {
	Date        string         `json:"date" validate:"required,datetime=2006-01-02"`
	Description string         `json:"description,omitempty"`
	CustomSlots []ScheduleSlot `json:"customSlots"`
}

// Weekday returns the day of week (0=Sunday..6=Saturday) for a DateLayout
// date, or -1 when the date does not parse.
func Weekday(date string) int {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return -1
	}
	return int(t.Weekday())
}

// SlotsForDate resolves which slots are in effect on a given date: a special
// day's custom slots when one exists, otherwise the recurring slots for that
// weekday.
func SlotsForDate(schedule []ScheduleSlot, specialDays []SpecialDay, date string) []ScheduleSlot {
	for _, sd := range specialDays {
		if sd.Date == date {
			return sd.CustomSlots
		}
	}

	wd := Weekday(date)
	if wd < 0 {
		return nil
	}

	var slots []ScheduleSlot
	for _, slot := range schedule {
		if slot.Weekday == wd {
			slots = append(slots, slot)
		}
	}
	return slots
}

// FindSlot returns the slot in effect on date with the given id, or nil.
func FindSlot(schedule []ScheduleSlot, specialDays []SpecialDay, date, slotID string) *ScheduleSlot {
	for _, slot := range SlotsForDate(schedule, specialDays, date) {
		if slot.ID == slotID {
			return &slot
		}
	}
	return nil
}
