package model

import "fmt"

// SchemaVersion is the current snapshot wire version. Bump when the
// snapshot shape changes in a way load-time code must know about.
const SchemaVersion = 1

// Snapshot is the whole in-memory state of one (user, year) partition. It
// is mutated copy-on-write: reducers clone, modify the clone, then the
// owner swaps the pointer and persists the whole record.
type Snapshot struct {
	SchemaVersion int             `json:"schemaVersion"`
	Subjects      []Subject       `json:"subjects"`
	Schedule      []ScheduleSlot  `json:"schedule"`
	SpecialDays   []SpecialDay    `json:"specialDays"`
	Validations   []DayValidation `json:"validations"`
	Logs          []ClassLog      `json:"logs"`
	Assessments   []Assessment    `json:"assessments"`
	Tasks         []Task          `json:"tasks"`
	Settings      Settings        `json:"settings"`
}

// NewSnapshot returns an empty partition for the given year, seeded with
// the fixed organizational subjects and default settings.
func NewSnapshot(year int) *Snapshot {
	return &Snapshot{
		SchemaVersion: SchemaVersion,
		Subjects:      sentinelSubjects(),
		Settings:      DefaultSettings(year),
	}
}

// Clone returns a deep copy of the snapshot. Slice elements are value
// types except SpecialDay, whose custom-slot lists are copied explicitly.
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		SchemaVersion: s.SchemaVersion,
		Subjects:      append([]Subject(nil), s.Subjects...),
		Schedule:      append([]ScheduleSlot(nil), s.Schedule...),
		SpecialDays:   make([]SpecialDay, len(s.SpecialDays)),
		Validations:   append([]DayValidation(nil), s.Validations...),
		Logs:          append([]ClassLog(nil), s.Logs...),
		Assessments:   append([]Assessment(nil), s.Assessments...),
		Tasks:         append([]Task(nil), s.Tasks...),
		Settings:      s.Settings,
	}
	for i, sd := range s.SpecialDays {
		sd.CustomSlots = append([]ScheduleSlot(nil), sd.CustomSlots...)
		out.SpecialDays[i] = sd
	}
	return out
}

// SubjectByID returns the subject with the given id, or nil.
func (s *Snapshot) SubjectByID(id string) *Subject {
	for i := range s.Subjects {
		if s.Subjects[i].ID == id {
			return &s.Subjects[i]
		}
	}
	return nil
}

// LogFor returns the class log for (date, slotID), or nil.
func (s *Snapshot) LogFor(date, slotID string) *ClassLog {
	for i := range s.Logs {
		if s.Logs[i].Date == date && s.Logs[i].SlotID == slotID {
			return &s.Logs[i]
		}
	}
	return nil
}

// DayValidated reports whether the date has been explicitly started.
func (s *Snapshot) DayValidated(date string) bool {
	for _, v := range s.Validations {
		if v.Date == date && v.IsValidated {
			return true
		}
	}
	return false
}

// PartitionKey builds the external storage key for a (user, year) pair.
func PartitionKey(user string, year int) string {
	return fmt.Sprintf("%s_%d", user, year)
}
