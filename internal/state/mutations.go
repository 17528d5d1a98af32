package state

import (
	"context"
	"fmt"

	"github.com/Veraticus/caderno/internal/common"
	"github.com/Veraticus/caderno/internal/model"
)

// AddSubject creates a subject. The id is minted when absent.
func (s *Store) AddSubject(subject model.Subject) error {
	if subject.ID == "" {
		subject.ID = newID()
	}
	if subject.Category == "" {
		subject.Category = model.CategoryOther
	}
	if subject.Type == "" {
		subject.Type = model.SubjectNormal
	}
	if err := s.checkStruct(subject); err != nil {
		return err
	}
	if !subject.Category.Valid() || !subject.Type.Valid() {
		return fmt.Errorf("subject category or type: %w", common.ErrInvalidInput)
	}

	return s.apply(func(snap *model.Snapshot) error {
		if snap.SubjectByID(subject.ID) != nil {
			return fmt.Errorf("subject %q already exists: %w", subject.ID, common.ErrInvalidInput)
		}
		snap.Subjects = append(snap.Subjects, subject)
		return nil
	})
}

// UpdateSubject replaces an existing subject. The fixed organizational
// subjects cannot be edited.
func (s *Store) UpdateSubject(subject model.Subject) error {
	if err := s.checkStruct(subject); err != nil {
		return err
	}
	if !subject.Category.Valid() || !subject.Type.Valid() {
		return fmt.Errorf("subject category or type: %w", common.ErrInvalidInput)
	}
	if model.IsSentinel(subject.ID) {
		return fmt.Errorf("%q: %w", subject.ID, common.ErrProtectedSubject)
	}

	return s.apply(func(snap *model.Snapshot) error {
		for i := range snap.Subjects {
			if snap.Subjects[i].ID == subject.ID {
				snap.Subjects[i] = subject
				return nil
			}
		}
		return fmt.Errorf("subject %q: %w", subject.ID, common.ErrNotFound)
	})
}

// RemoveSubject deletes a subject and every schedule slot referencing it,
// including special-day custom slots. Logs and assessments that still point
// at it become dangling references, which aggregation skips.
func (s *Store) RemoveSubject(id string) error {
	if model.IsSentinel(id) {
		return fmt.Errorf("%q: %w", id, common.ErrProtectedSubject)
	}

	return s.apply(func(snap *model.Snapshot) error {
		found := false
		subjects := snap.Subjects[:0]
		for _, sub := range snap.Subjects {
			if sub.ID == id {
				found = true
				continue
			}
			subjects = append(subjects, sub)
		}
		if !found {
			return fmt.Errorf("subject %q: %w", id, common.ErrNotFound)
		}
		snap.Subjects = subjects

		schedule := snap.Schedule[:0]
		for _, slot := range snap.Schedule {
			if slot.SubjectID != id {
				schedule = append(schedule, slot)
			}
		}
		snap.Schedule = schedule

		for i := range snap.SpecialDays {
			slots := snap.SpecialDays[i].CustomSlots[:0]
			for _, slot := range snap.SpecialDays[i].CustomSlots {
				if slot.SubjectID != id {
					slots = append(slots, slot)
				}
			}
			snap.SpecialDays[i].CustomSlots = slots
		}
		return nil
	})
}

// UpdateSchedule replaces the whole recurring timetable. Duplicate
// (weekday, time) entries are allowed; overlapping slots are the user's
// business.
func (s *Store) UpdateSchedule(slots []model.ScheduleSlot) error {
	for i := range slots {
		if slots[i].ID == "" {
			slots[i].ID = newID()
		}
		if err := s.checkStruct(slots[i]); err != nil {
			return err
		}
		if slots[i].EndTime <= slots[i].StartTime {
			return fmt.Errorf("slot %q ends before it starts: %w", slots[i].ID, common.ErrInvalidInput)
		}
	}

	return s.apply(func(snap *model.Snapshot) error {
		for _, slot := range slots {
			if snap.SubjectByID(slot.SubjectID) == nil {
				return fmt.Errorf("slot subject %q: %w", slot.SubjectID, common.ErrNotFound)
			}
		}
		snap.Schedule = append([]model.ScheduleSlot(nil), slots...)
		return nil
	})
}

// AddSpecialDay upserts a calendar exception by date: at most one special
// day exists per date, and inserting a duplicate replaces the prior entry.
func (s *Store) AddSpecialDay(day model.SpecialDay) error {
	if err := s.checkStruct(day); err != nil {
		return err
	}
	for i := range day.CustomSlots {
		if day.CustomSlots[i].ID == "" {
			day.CustomSlots[i].ID = newID()
		}
		if err := s.checkStruct(day.CustomSlots[i]); err != nil {
			return err
		}
	}

	return s.apply(func(snap *model.Snapshot) error {
		for i := range snap.SpecialDays {
			if snap.SpecialDays[i].Date == day.Date {
				snap.SpecialDays[i] = day
				return nil
			}
		}
		snap.SpecialDays = append(snap.SpecialDays, day)
		return nil
	})
}

// RemoveSpecialDay deletes the calendar exception for a date.
func (s *Store) RemoveSpecialDay(date string) error {
	return s.apply(func(snap *model.Snapshot) error {
		for i := range snap.SpecialDays {
			if snap.SpecialDays[i].Date == date {
				snap.SpecialDays = append(snap.SpecialDays[:i], snap.SpecialDays[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("special day %q: %w", date, common.ErrNotFound)
	})
}

// ValidateDay starts a date, unlocking attendance writes for it. The write
// upserts by date: re-validating is a no-op, never a duplicate.
func (s *Store) ValidateDay(date string) error {
	if err := s.checkStruct(model.DayValidation{Date: date, IsValidated: true}); err != nil {
		return err
	}

	return s.apply(func(snap *model.Snapshot) error {
		for i := range snap.Validations {
			if snap.Validations[i].Date == date {
				snap.Validations[i].IsValidated = true
				return nil
			}
		}
		snap.Validations = append(snap.Validations, model.DayValidation{Date: date, IsValidated: true})
		return nil
	})
}

// InvalidateDay removes the started flag for a date. Existing logs are
// kept; they simply stop counting until the day is started again.
func (s *Store) InvalidateDay(date string) error {
	return s.apply(func(snap *model.Snapshot) error {
		for i := range snap.Validations {
			if snap.Validations[i].Date == date {
				snap.Validations = append(snap.Validations[:i], snap.Validations[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("day %q: %w", date, common.ErrNotFound)
	})
}

// LogClass upserts the attendance override for (date, slot). The original
// subject is copied from the slot default on first write and never changes
// afterwards; an empty actual subject defaults to the original.
func (s *Store) LogClass(log model.ClassLog) error {
	if log.Status == "" {
		log.Status = model.StatusPresent
	}
	if err := s.checkStruct(log); err != nil {
		return err
	}
	if !log.Status.Valid() {
		return fmt.Errorf("status %q: %w", log.Status, common.ErrInvalidInput)
	}

	return s.apply(func(snap *model.Snapshot) error {
		if !snap.DayValidated(log.Date) {
			return fmt.Errorf("%s: %w", log.Date, common.ErrDayNotStarted)
		}

		slot := model.FindSlot(snap.Schedule, snap.SpecialDays, log.Date, log.SlotID)
		if slot == nil {
			return fmt.Errorf("slot %q on %s: %w", log.SlotID, log.Date, common.ErrNotFound)
		}

		if existing := snap.LogFor(log.Date, log.SlotID); existing != nil {
			log.ID = existing.ID
			log.OriginalSubjectID = existing.OriginalSubjectID
		} else {
			if log.ID == "" {
				log.ID = newID()
			}
			log.OriginalSubjectID = slot.SubjectID
		}
		if log.ActualSubjectID == "" {
			log.ActualSubjectID = log.OriginalSubjectID
		}

		upsertLog(snap, log)
		return nil
	})
}

// CycleStatus advances the manual status toggle for (date, slot):
// PRESENT → ABSENT → CANCELED → PRESENT. An unlogged slot starts from the
// implicit PRESENT.
func (s *Store) CycleStatus(date, slotID string) error {
	s.mu.Lock()
	existing := s.snapshot.LogFor(date, slotID)
	log := model.ClassLog{Date: date, SlotID: slotID, Status: model.StatusPresent.Next()}
	if existing != nil {
		log = *existing
		log.Status = existing.Status.Next()
	}
	s.mu.Unlock()

	return s.LogClass(log)
}

// Substitute swaps the subject taught in a slot on a date. Substituting to
// the vacant sentinel cancels the session; any other target forces the
// status back to PRESENT, discarding a prior ABSENT or CANCELED. Re-applying
// the same substitution changes nothing.
func (s *Store) Substitute(date, slotID, targetSubjectID string) error {
	status := model.StatusPresent
	if targetSubjectID == model.SubjectVacant {
		status = model.StatusCanceled
	}

	return s.apply(func(snap *model.Snapshot) error {
		if !snap.DayValidated(date) {
			return fmt.Errorf("%s: %w", date, common.ErrDayNotStarted)
		}
		if snap.SubjectByID(targetSubjectID) == nil {
			return fmt.Errorf("subject %q: %w", targetSubjectID, common.ErrNotFound)
		}

		slot := model.FindSlot(snap.Schedule, snap.SpecialDays, date, slotID)
		if slot == nil {
			return fmt.Errorf("slot %q on %s: %w", slotID, date, common.ErrNotFound)
		}

		log := model.ClassLog{
			ID:                newID(),
			Date:              date,
			SlotID:            slotID,
			OriginalSubjectID: slot.SubjectID,
			ActualSubjectID:   targetSubjectID,
			Status:            status,
		}
		if existing := snap.LogFor(date, slotID); existing != nil {
			log.ID = existing.ID
			log.OriginalSubjectID = existing.OriginalSubjectID
			log.Note = existing.Note
		}

		upsertLog(snap, log)
		return nil
	})
}

// AddAssessment records a graded entry.
func (s *Store) AddAssessment(a model.Assessment) error {
	if a.ID == "" {
		a.ID = newID()
	}
	if err := s.checkStruct(a); err != nil {
		return err
	}

	return s.apply(func(snap *model.Snapshot) error {
		if snap.SubjectByID(a.SubjectID) == nil {
			return fmt.Errorf("subject %q: %w", a.SubjectID, common.ErrNotFound)
		}
		snap.Assessments = append(snap.Assessments, a)
		return nil
	})
}

// UpdateAssessment replaces an existing assessment whole.
func (s *Store) UpdateAssessment(a model.Assessment) error {
	if err := s.checkStruct(a); err != nil {
		return err
	}

	return s.apply(func(snap *model.Snapshot) error {
		for i := range snap.Assessments {
			if snap.Assessments[i].ID == a.ID {
				snap.Assessments[i] = a
				return nil
			}
		}
		return fmt.Errorf("assessment %q: %w", a.ID, common.ErrNotFound)
	})
}

// RemoveAssessment deletes one assessment by id.
func (s *Store) RemoveAssessment(id string) error {
	return s.apply(func(snap *model.Snapshot) error {
		for i := range snap.Assessments {
			if snap.Assessments[i].ID == id {
				snap.Assessments = append(snap.Assessments[:i], snap.Assessments[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("assessment %q: %w", id, common.ErrNotFound)
	})
}

// AddTask records a task or note.
func (s *Store) AddTask(t model.Task) error {
	if t.ID == "" {
		t.ID = newID()
	}
	if err := s.checkStruct(t); err != nil {
		return err
	}

	return s.apply(func(snap *model.Snapshot) error {
		snap.Tasks = append(snap.Tasks, t)
		return nil
	})
}

// UpdateTask replaces an existing task whole.
func (s *Store) UpdateTask(t model.Task) error {
	if err := s.checkStruct(t); err != nil {
		return err
	}

	return s.apply(func(snap *model.Snapshot) error {
		for i := range snap.Tasks {
			if snap.Tasks[i].ID == t.ID {
				snap.Tasks[i] = t
				return nil
			}
		}
		return fmt.Errorf("task %q: %w", t.ID, common.ErrNotFound)
	})
}

// DeleteTask deletes one task by id.
func (s *Store) DeleteTask(id string) error {
	return s.apply(func(snap *model.Snapshot) error {
		for i := range snap.Tasks {
			if snap.Tasks[i].ID == id {
				snap.Tasks = append(snap.Tasks[:i], snap.Tasks[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("task %q: %w", id, common.ErrNotFound)
	})
}

// UpdateSettings applies new settings to the active partition. A changed
// year is a dataset switch, not a field edit: it delegates to
// SwitchPartition and then writes the remaining fields into the newly
// active partition.
func (s *Store) UpdateSettings(ctx context.Context, settings model.Settings) error {
	if err := s.checkStruct(settings); err != nil {
		return err
	}
	if !settings.GradeCalcMethod.Valid() || !settings.GradingSystem.Valid() {
		return fmt.Errorf("grading configuration: %w", common.ErrInvalidInput)
	}

	if settings.CurrentYear != s.ActiveYear() {
		if err := s.SwitchPartition(ctx, settings.CurrentYear); err != nil {
			return err
		}
	}

	return s.apply(func(snap *model.Snapshot) error {
		settings.CurrentYear = snap.Settings.CurrentYear
		snap.Settings = settings
		return nil
	})
}

// upsertLog replaces the log matching (date, slotID) or appends a new one.
func upsertLog(snap *model.Snapshot, log model.ClassLog) {
	for i := range snap.Logs {
		if snap.Logs[i].Date == log.Date && snap.Logs[i].SlotID == log.SlotID {
			snap.Logs[i] = log
			return
		}
	}
	snap.Logs = append(snap.Logs, log)
}
