package reconcile

import (
	"errors"
	"time"

	"github.com/nwhitfield/daybook/internal/models"
)

var errNilPayload = errors.New("nil payload")

// OperationSet is the full set of store operations an import requires. For
// each record type: Replace* set means "delete every existing record of that
// type first"; the slice then holds the records to upsert, already deduped by
// natural key. A section the payload omitted contributes neither flag nor
// records. The store must apply the whole set in one transaction.
type OperationSet struct {
	ReplaceEntries   bool
	Entries          []models.JournalEntry
	ReplacePages     bool
	Pages            []models.Page
	ReplaceTasks     bool
	Tasks            []models.Task
	ReplaceGoals     bool
	Goals            []models.Goal
	ReplaceHabits    bool
	Habits           []models.Habit
	ReplaceHabitLogs bool
	HabitLogs        []models.HabitLog
}

// Empty reports whether applying the set would change nothing.
func (o OperationSet) Empty() bool {
	return !o.ReplaceEntries && !o.ReplacePages && !o.ReplaceTasks &&
		!o.ReplaceGoals && !o.ReplaceHabits && !o.ReplaceHabitLogs &&
		len(o.Entries) == 0 && len(o.Pages) == 0 && len(o.Tasks) == 0 &&
		len(o.Goals) == 0 && len(o.Habits) == 0 && len(o.HabitLogs) == 0
}

// Reconcile computes the operations needed to apply a parsed backup payload
// against the current snapshot. With replaceExisting each present section
// wipes and reloads its record type; without it each payload record upserts
// by natural key, payload fields winning over existing ones (last-write-wins).
// Records lacking an id get a fresh one; missing timestamps fall back to the
// existing record's creation time in merge mode, else to now. Running the
// same merge twice converges: the second pass upserts identical records under
// the same keys.
func Reconcile(payload *Payload, snapshot models.Snapshot, replaceExisting bool, now time.Time) (OperationSet, error) {
	if payload == nil {
		return OperationSet{}, &ValidationError{Err: errNilPayload}
	}

	// In merge mode a record that omits created_at keeps the timestamp of the
	// record it overwrites.
	created := creationTimes(snapshot)
	fallback := func(key string) time.Time {
		if !replaceExisting {
			if t, ok := created[key]; ok {
				return t
			}
		}
		return now
	}

	var ops OperationSet

	if payload.Entries != nil {
		ops.ReplaceEntries = replaceExisting
		for _, r := range dedupeBy(payload.Entries, func(r EntryRecord) string { return r.Date }) {
			ops.Entries = append(ops.Entries, r.toModel(now, fallback("entry:"+r.Date)))
		}
	}
	if payload.Pages != nil {
		ops.ReplacePages = replaceExisting
		for _, r := range dedupeBy(payload.Pages, func(r PageRecord) string { return deref(r.ID) }) {
			ops.Pages = append(ops.Pages, r.toModel(now, fallback("page:"+deref(r.ID))))
		}
	}
	if payload.Tasks != nil {
		ops.ReplaceTasks = replaceExisting
		for _, r := range dedupeBy(payload.Tasks, func(r TaskRecord) string { return deref(r.ID) }) {
			ops.Tasks = append(ops.Tasks, r.toModel(now, fallback("task:"+deref(r.ID))))
		}
	}
	if payload.Goals != nil {
		ops.ReplaceGoals = replaceExisting
		for _, r := range dedupeBy(payload.Goals, func(r GoalRecord) string { return deref(r.ID) }) {
			ops.Goals = append(ops.Goals, r.toModel(now, fallback("goal:"+deref(r.ID))))
		}
	}
	if payload.Habits != nil {
		ops.ReplaceHabits = replaceExisting
		for _, r := range dedupeBy(payload.Habits, func(r HabitRecord) string { return deref(r.ID) }) {
			ops.Habits = append(ops.Habits, r.toModel(now, fallback("habit:"+deref(r.ID))))
		}
	}
	if payload.HabitLogs != nil {
		ops.ReplaceHabitLogs = replaceExisting
		for _, r := range dedupeBy(payload.HabitLogs, func(r HabitLogRecord) string { return logKey(r.HabitID, r.Day) }) {
			ops.HabitLogs = append(ops.HabitLogs, r.toModel(fallback("log:" + logKey(r.HabitID, r.Day))))
		}
	}

	return ops, nil
}

func creationTimes(snapshot models.Snapshot) map[string]time.Time {
	created := make(map[string]time.Time)
	for _, e := range snapshot.Entries {
		created["entry:"+e.Date] = e.CreatedAt
	}
	for _, p := range snapshot.Pages {
		created["page:"+p.ID] = p.CreatedAt
	}
	for _, t := range snapshot.Tasks {
		created["task:"+t.ID] = t.CreatedAt
	}
	for _, g := range snapshot.Goals {
		created["goal:"+g.ID] = g.CreatedAt
	}
	for _, h := range snapshot.Habits {
		created["habit:"+h.ID] = h.CreatedAt
	}
	for _, l := range snapshot.HabitLogs {
		created["log:"+logKey(l.HabitID, l.Day)] = l.CreatedAt
	}
	return created
}

func logKey(habitID, day string) string {
	return habitID + "\x00" + day
}

// dedupeBy keeps the last record per non-empty key, preserving input order
// otherwise. Records with an empty key (no natural key supplied) are always
// kept; they become fresh inserts.
func dedupeBy[T any](records []T, key func(T) string) []T {
	last := make(map[string]int, len(records))
	for i, r := range records {
		if k := key(r); k != "" {
			last[k] = i
		}
	}
	out := make([]T, 0, len(records))
	for i, r := range records {
		if k := key(r); k != "" && last[k] != i {
			continue
		}
		out = append(out, r)
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
