// Package attendance derives per-subject attendance statistics by
// reconciling the recurring weekly schedule with per-date class logs.
package attendance

import (
	"github.com/Veraticus/caderno/internal/model"
)

// riskThreshold flags a subject once the remaining bank drops to 20% of
// the annual limit.
const riskThreshold = 0.2

// SubjectStats is the computed attendance view for one subject.
type SubjectStats struct {
	SubjectID        string
	Name             string
	ClassesHeld      int
	ClassesPresent   int
	Absences         int
	Limit            int
	Bank             int
	FrequencyPercent float64
	IsRiskAbsence    bool
}

// Aggregate computes attendance stats for every subject that counts toward
// attendance, over the full validated-date history. Organizational subjects
// are skipped. None of the computed conditions are errors: a negative bank
// and a zero-session subject are reportable states, not failures.
func Aggregate(
	subjects []model.Subject,
	schedule []model.ScheduleSlot,
	specialDays []model.SpecialDay,
	validations []model.DayValidation,
	logs []model.ClassLog,
) []SubjectStats {
	logsByDate := make(map[string][]model.ClassLog)
	logIndex := make(map[string]map[string]*model.ClassLog)
	for i := range logs {
		log := logs[i]
		logsByDate[log.Date] = append(logsByDate[log.Date], log)
		if logIndex[log.Date] == nil {
			logIndex[log.Date] = make(map[string]*model.ClassLog)
		}
		logIndex[log.Date][log.SlotID] = &logs[i]
	}

	var stats []SubjectStats
	for _, subject := range subjects {
		if !subject.CountsAttendance() {
			continue
		}
		stats = append(stats, aggregateSubject(subject, schedule, specialDays, validations, logsByDate, logIndex))
	}
	return stats
}

func aggregateSubject(
	subject model.Subject,
	schedule []model.ScheduleSlot,
	specialDays []model.SpecialDay,
	validations []model.DayValidation,
	logsByDate map[string][]model.ClassLog,
	logIndex map[string]map[string]*model.ClassLog,
) SubjectStats {
	st := SubjectStats{
		SubjectID: subject.ID,
		Name:      subject.Name,
		Limit:     subject.AbsenceLimit(),
	}

	// Absences count by actual subject: an absence logged against a
	// substituted-in subject consumes this subject's bank, not the
	// originally scheduled one's.
	for _, dayLogs := range logsByDate {
		for _, log := range dayLogs {
			if log.ActualSubjectID == subject.ID && log.Status == model.StatusAbsent {
				st.Absences++
			}
		}
	}
	st.Bank = st.Limit - st.Absences

	for _, v := range validations {
		if !v.IsValidated {
			continue
		}

		for _, slot := range model.SlotsForDate(schedule, specialDays, v.Date) {
			if slot.SubjectID != subject.ID {
				continue
			}

			log := lookupLog(logIndex, v.Date, slot.ID)
			if log != nil {
				if log.Status == model.StatusCanceled {
					continue
				}
				// Substituted away from this subject.
				if log.ActualSubjectID != "" && log.ActualSubjectID != subject.ID {
					continue
				}
			}

			st.ClassesHeld++
			if model.ResolveStatus(log) != model.StatusAbsent {
				st.ClassesPresent++
			}
		}

		// Sessions borrowed from another subject's slot: a log whose actual
		// subject is this one while its original is not.
		for _, log := range logsByDate[v.Date] {
			if log.ActualSubjectID != subject.ID || log.OriginalSubjectID == subject.ID {
				continue
			}
			if log.Status == model.StatusCanceled {
				continue
			}
			st.ClassesHeld++
			st.ClassesPresent++
		}
	}

	if st.ClassesHeld == 0 {
		st.ClassesHeld = 1
	}
	st.FrequencyPercent = 100 * float64(st.ClassesPresent) / float64(st.ClassesHeld)
	st.IsRiskAbsence = float64(st.Bank) <= float64(st.Limit)*riskThreshold

	return st
}

func lookupLog(index map[string]map[string]*model.ClassLog, date, slotID string) *model.ClassLog {
	if bySlot := index[date]; bySlot != nil {
		return bySlot[slotID]
	}
	return nil
}
