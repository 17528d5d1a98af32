// Package state owns the in-memory snapshot for the active (user, year)
// partition and exposes every mutation entry point. Mutations are pure
// reducers over a cloned snapshot; the pointer is swapped atomically and
// the whole record is flushed to storage best-effort afterwards.
package state

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Veraticus/caderno/internal/attendance"
	"github.com/Veraticus/caderno/internal/common"
	"github.com/Veraticus/caderno/internal/grades"
	"github.com/Veraticus/caderno/internal/model"
	"github.com/Veraticus/caderno/internal/report"
)

// saveTimeout bounds the background flush; a hung disk must not leak
// goroutines for the life of the process.
const saveTimeout = 5 * time.Second

// Persister is the storage collaborator: load and save whole snapshots by
// partition key.
type Persister interface {
	Load(ctx context.Context, key string) (*model.Snapshot, error)
	Save(ctx context.Context, key string, snap *model.Snapshot) error
}

// Store owns the current snapshot. There is exactly one logical writer;
// the mutex only orders the mutation path against the background flush and
// partition switches.
type Store struct {
	persist  Persister
	validate *validator.Validate
	snapshot *model.Snapshot
	user     string
	key      string
	mu       sync.Mutex
	saves    sync.WaitGroup
}

// Open loads the partition for (user, year), seeding an empty snapshot on
// first use, and returns a Store bound to it.
func Open(ctx context.Context, persist Persister, user string, year int) (*Store, error) {
	if user == "" {
		return nil, fmt.Errorf("user cannot be empty: %w", common.ErrInvalidInput)
	}

	s := &Store{
		persist:  persist,
		validate: validator.New(),
		user:     user,
	}
	if err := s.load(ctx, year); err != nil {
		return nil, err
	}
	return s, nil
}

// load reads or seeds the snapshot for a year and binds the store to that
// partition. Callers must not hold the mutex.
func (s *Store) load(ctx context.Context, year int) error {
	key := model.PartitionKey(s.user, year)

	snap, err := s.persist.Load(ctx, key)
	switch {
	case errors.Is(err, common.ErrNotFound):
		snap = model.NewSnapshot(year)
		if saveErr := s.persist.Save(ctx, key, snap); saveErr != nil {
			common.LogError(saveErr, "failed to seed new partition", common.Fields{"partition": key})
		}
	case err != nil:
		return fmt.Errorf("failed to load partition %q: %w", key, err)
	}

	// The loaded record is authoritative, but its year must agree with the
	// key it was stored under.
	snap.Settings.CurrentYear = year

	s.mu.Lock()
	s.snapshot = snap
	s.key = key
	s.mu.Unlock()
	return nil
}

// Close waits for in-flight saves to finish.
func (s *Store) Close() error {
	s.saves.Wait()
	return nil
}

// User returns the partition owner.
func (s *Store) User() string {
	return s.user
}

// ActiveYear returns the year of the active partition.
func (s *Store) ActiveYear() int {
	return s.Snapshot().Settings.CurrentYear
}

// Snapshot returns the current snapshot. Callers must treat it as
// read-only; every mutation produces a fresh one.
func (s *Store) Snapshot() *model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// apply runs a reducer over a clone of the current snapshot, swaps the
// pointer on success, and fires a background flush.
func (s *Store) apply(mutate func(*model.Snapshot) error) error {
	s.mu.Lock()
	next := s.snapshot.Clone()
	if err := mutate(next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.snapshot = next
	key := s.key
	s.mu.Unlock()

	s.flush(next, key)
	return nil
}

// flush persists a snapshot in the background. Failure is logged, never
// retried, and never rolls back the in-memory state. A save racing a
// partition switch is dropped: the snapshot's own year must still name the
// active partition when the write happens.
func (s *Store) flush(snap *model.Snapshot, key string) {
	s.saves.Add(1)
	go func() {
		defer s.saves.Done()

		s.mu.Lock()
		active := s.key
		s.mu.Unlock()
		if key != active || model.PartitionKey(s.user, snap.Settings.CurrentYear) != active {
			common.LogError(common.ErrPartitionMismatch, "dropping stale save", common.Fields{
				"save_partition":   key,
				"active_partition": active,
			})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		if err := s.persist.Save(ctx, key, snap); err != nil {
			common.LogError(err, "snapshot save failed; in-memory state kept", common.Fields{"partition": key})
		}
	}()
}

// SwitchPartition replaces the whole snapshot with another year's
// partition. In-flight saves for the old partition are waited out first so
// they cannot write into the new one.
func (s *Store) SwitchPartition(ctx context.Context, year int) error {
	s.saves.Wait()
	if err := s.load(ctx, year); err != nil {
		return err
	}
	slog.Info("switched partition", "user", s.user, "year", year)
	return nil
}

// PartitionLister is implemented by persisters that can enumerate the
// partitions stored for a user.
type PartitionLister interface {
	ListPartitions(ctx context.Context, user string) ([]string, error)
}

// Partitions lists the stored partition keys for this store's user.
func (s *Store) Partitions(ctx context.Context) ([]string, error) {
	lister, ok := s.persist.(PartitionLister)
	if !ok {
		return nil, fmt.Errorf("persister cannot list partitions: %w", common.ErrInvalidInput)
	}
	return lister.ListPartitions(ctx, s.user)
}

// checkStruct validates struct tags and wraps failures as invalid input.
func (s *Store) checkStruct(v any) error {
	if err := s.validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}
	return nil
}

// AttendanceStats computes the per-subject attendance view over the
// current snapshot.
func (s *Store) AttendanceStats() []attendance.SubjectStats {
	snap := s.Snapshot()
	return attendance.Aggregate(snap.Subjects, snap.Schedule, snap.SpecialDays, snap.Validations, snap.Logs)
}

// GradeStats computes the per-subject grade view over the current snapshot.
func (s *Store) GradeStats() []report.SubjectGrades {
	snap := s.Snapshot()
	return report.GradeStats(snap.Subjects, snap.Assessments, snap.Settings)
}

// KPIs computes the dashboard summary over the current snapshot.
func (s *Store) KPIs() report.Summary {
	return report.KPIs(s.Snapshot())
}

// NeededScore runs the remaining-trimester simulator for one subject under
// the active settings.
func (s *Store) NeededScore(subjectID string) (float64, bool) {
	snap := s.Snapshot()
	if snap.Settings.GradeCalcMethod != model.CalcAbsolute {
		return 0, false
	}
	return grades.NeededScore(snap.Assessments, subjectID, snap.Settings.GradingSystem, snap.Settings.PassingGrade)
}

// newID mints an entity id.
func newID() string {
	return uuid.NewString()
}
