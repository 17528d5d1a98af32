package model

// ClassStatus is the attendance status of one (date, slot) session.
type ClassStatus string

const (
	// StatusPresent marks an attended session. It is also the implicit
	// status when no log exists for a validated slot.
	StatusPresent ClassStatus = "PRESENT"
	// StatusAbsent marks a missed session.
	StatusAbsent ClassStatus = "ABSENT"
	// StatusCanceled marks a session that was not given. Canceled sessions
	// never count toward held or present totals.
	StatusCanceled ClassStatus = "CANCELED"
	// StatusSubstituted tags a subject swap. It is set only by the
	// substitution operation, never by the manual status cycle; aggregation
	// detects substitution from the subject ids, not from this tag.
	StatusSubstituted ClassStatus = "SUBSTITUTED"
)

// Valid returns true when the status is a supported value.
func (s ClassStatus) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusCanceled, StatusSubstituted:
		return true
	default:
		return false
	}
}

// Next advances the manual toggle cycle PRESENT → ABSENT → CANCELED →
// PRESENT. SUBSTITUTED is outside the cycle and wraps back to PRESENT.
func (s ClassStatus) Next() ClassStatus {
	switch s {
	case StatusPresent:
		return StatusAbsent
	case StatusAbsent:
		return StatusCanceled
	default:
		return StatusPresent
	}
}

// DayValidation is the per-date "day started" flag. Until a validation row
// exists for a date, the mutation layer refuses attendance writes for it.
type DayValidation struct {
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	IsValidated bool   `json:"isValidated"`
	IsLocked    bool   `json:"isLocked,omitempty"`
}

// ClassLog is the attendance override record for one (date, slot) pair.
// At most one log exists per (date, slotID); writes upsert by that key.
// OriginalSubjectID is copied from the slot's default subject at creation
// and never changes; ActualSubjectID may diverge on substitution.
type ClassLog struct {
	ID                string      `json:"id"`
	Date              string      `json:"date" validate:"required,datetime=2006-01-02"`
	SlotID            string      `json:"slotId" validate:"required"`
	OriginalSubjectID string      `json:"originalSubjectId"`
	ActualSubjectID   string      `json:"actualSubjectId"`
	Status            ClassStatus `json:"status"`
	Note              string      `json:"note,omitempty"`
}

// ResolveStatus returns the effective status for a slot on a date: the log's
// status when a log exists, otherwise PRESENT.
func ResolveStatus(log *ClassLog) ClassStatus {
	if log == nil {
		return StatusPresent
	}
	return log.Status
}

// ResolveSubject returns the subject effectively taught in a slot on a date:
// the log's actual subject when a log exists, otherwise the slot default.
func ResolveSubject(slot ScheduleSlot, log *ClassLog) string {
	if log == nil || log.ActualSubjectID == "" {
		return slot.SubjectID
	}
	return log.ActualSubjectID
}
