package reconcile

import (
	"errors"
	"testing"
	"time"

	"github.com/nwhitfield/daybook/internal/models"
)

var importNow = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

func TestParsePayload(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		data := []byte(`{
			"entries": [{"date": "2024-06-09", "yesterday": "a", "today": "b"}],
			"tasks": [{"id": "t1", "title": "ship it", "status": "todo", "priority": "high"}]
		}`)
		p, err := ParsePayload(data)
		if err != nil {
			t.Fatalf("ParsePayload() error = %v", err)
		}
		if len(p.Entries) != 1 || len(p.Tasks) != 1 {
			t.Errorf("parsed %d entries, %d tasks", len(p.Entries), len(p.Tasks))
		}
		if p.Goals != nil {
			t.Error("absent section parsed as present")
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := ParsePayload([]byte(`{"entries": [`))
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("error = %v, want *ValidationError", err)
		}
	})

	t.Run("non-numeric progress", func(t *testing.T) {
		_, err := ParsePayload([]byte(`{"goals": [{"title": "g", "progress": "almost"}]}`))
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("error = %v, want *ValidationError", err)
		}
		if verr.Section != "goals" {
			t.Errorf("Section = %q, want goals", verr.Section)
		}
	})

	t.Run("wrongly typed section", func(t *testing.T) {
		_, err := ParsePayload([]byte(`{"pages": {"title": "not an array"}}`))
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("error = %v, want *ValidationError", err)
		}
	})

	t.Run("unknown sections are ignored", func(t *testing.T) {
		p, err := ParsePayload([]byte(`{"preferences": {"theme": "dark"}}`))
		if err != nil {
			t.Fatalf("ParsePayload() error = %v", err)
		}
		if !mustOps(t, p, models.Snapshot{}, false).Empty() {
			t.Error("unknown section produced operations")
		}
	})
}

func mustOps(t *testing.T, p *Payload, snap models.Snapshot, replace bool) OperationSet {
	t.Helper()
	ops, err := Reconcile(p, snap, replace, importNow)
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	return ops
}

func TestReconcileReplaceMode(t *testing.T) {
	p, err := ParsePayload([]byte(`{
		"entries": [{"date": "2024-06-01", "yesterday": "y", "today": "t"}],
		"habits": []
	}`))
	if err != nil {
		t.Fatal(err)
	}

	snap := models.Snapshot{
		Entries: []models.JournalEntry{{Date: "2024-05-01"}},
		Pages:   []models.Page{{ID: "p1"}},
	}
	ops := mustOps(t, p, snap, true)

	if !ops.ReplaceEntries || len(ops.Entries) != 1 {
		t.Errorf("entries: replace=%v count=%d, want replace with 1 record", ops.ReplaceEntries, len(ops.Entries))
	}
	if !ops.ReplaceHabits || len(ops.Habits) != 0 {
		t.Errorf("habits: replace=%v count=%d, want wipe with 0 records", ops.ReplaceHabits, len(ops.Habits))
	}
	if ops.ReplacePages || len(ops.Pages) != 0 {
		t.Error("absent pages section must be left untouched")
	}
}

func TestReconcileMergeMode(t *testing.T) {
	created := importNow.Add(-48 * time.Hour)
	snap := models.Snapshot{
		Entries: []models.JournalEntry{{Date: "2024-06-01", Yesterday: "old", CreatedAt: created}},
	}
	p, err := ParsePayload([]byte(`{
		"entries": [{"date": "2024-06-01", "yesterday": "new", "today": "t"}],
		"pages": [{"title": "untitled"}]
	}`))
	if err != nil {
		t.Fatal(err)
	}

	ops := mustOps(t, p, snap, false)

	if ops.ReplaceEntries {
		t.Error("merge mode must not wipe")
	}
	if len(ops.Entries) != 1 || ops.Entries[0].Yesterday != "new" {
		t.Fatalf("entry upsert = %+v, want payload fields to win", ops.Entries)
	}
	if !ops.Entries[0].CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want original %v preserved", ops.Entries[0].CreatedAt, created)
	}
	if len(ops.Pages) != 1 || ops.Pages[0].ID == "" {
		t.Error("page without id must get a fresh one")
	}
}

func TestReconcileMergeIdempotent(t *testing.T) {
	data := []byte(`{
		"entries": [{"date": "2024-06-01", "yesterday": "a", "today": "b"}],
		"tasks": [{"id": "t1", "title": "task"}],
		"habit_logs": [{"habit_id": "h1", "day": "2024-06-01"}]
	}`)
	p, err := ParsePayload(data)
	if err != nil {
		t.Fatal(err)
	}

	snap := models.Snapshot{}
	first := mustOps(t, p, snap, false)
	snap = applyToSnapshot(snap, first)

	second := mustOps(t, p, snap, false)
	snap = applyToSnapshot(snap, second)

	if len(snap.Entries) != 1 || len(snap.Tasks) != 1 || len(snap.HabitLogs) != 1 {
		t.Errorf("after two merges: %d entries, %d tasks, %d logs; want 1 each",
			len(snap.Entries), len(snap.Tasks), len(snap.HabitLogs))
	}
}

// applyToSnapshot mirrors what a keyed store does with an operation set.
func applyToSnapshot(snap models.Snapshot, ops OperationSet) models.Snapshot {
	entries := make(map[string]models.JournalEntry)
	if !ops.ReplaceEntries {
		for _, e := range snap.Entries {
			entries[e.Date] = e
		}
	}
	for _, e := range ops.Entries {
		entries[e.Date] = e
	}
	snap.Entries = snap.Entries[:0]
	for _, e := range entries {
		snap.Entries = append(snap.Entries, e)
	}

	tasks := make(map[string]models.Task)
	if !ops.ReplaceTasks {
		for _, t := range snap.Tasks {
			tasks[t.ID] = t
		}
	}
	for _, t := range ops.Tasks {
		tasks[t.ID] = t
	}
	snap.Tasks = snap.Tasks[:0]
	for _, t := range tasks {
		snap.Tasks = append(snap.Tasks, t)
	}

	logs := make(map[string]models.HabitLog)
	if !ops.ReplaceHabitLogs {
		for _, l := range snap.HabitLogs {
			logs[l.HabitID+"/"+l.Day] = l
		}
	}
	for _, l := range ops.HabitLogs {
		logs[l.HabitID+"/"+l.Day] = l
	}
	snap.HabitLogs = snap.HabitLogs[:0]
	for _, l := range logs {
		snap.HabitLogs = append(snap.HabitLogs, l)
	}

	return snap
}

func TestReconcileDedupesPayload(t *testing.T) {
	p, err := ParsePayload([]byte(`{
		"entries": [
			{"date": "2024-06-01", "yesterday": "first", "today": ""},
			{"date": "2024-06-01", "yesterday": "second", "today": ""}
		]
	}`))
	if err != nil {
		t.Fatal(err)
	}

	ops := mustOps(t, p, models.Snapshot{}, false)
	if len(ops.Entries) != 1 {
		t.Fatalf("entry count = %d, want 1", len(ops.Entries))
	}
	if ops.Entries[0].Yesterday != "second" {
		t.Errorf("kept %q, want the last record per key", ops.Entries[0].Yesterday)
	}
}

func TestReconcileDefaultsAndClamps(t *testing.T) {
	p, err := ParsePayload([]byte(`{
		"tasks": [{"title": "t", "status": "blocked", "priority": "asap", "time_estimate_min": 99999, "due_date": "junk"}],
		"goals": [{"title": "g", "progress": 250, "status": "someday"}],
		"habits": [{"title": "h", "target_per_week": 99}]
	}`))
	if err != nil {
		t.Fatal(err)
	}

	ops := mustOps(t, p, models.Snapshot{}, false)

	task := ops.Tasks[0]
	if task.Status != models.TaskStatusTodo || task.Priority != models.PriorityMedium {
		t.Errorf("unknown enums defaulted to %q/%q", task.Status, task.Priority)
	}
	if task.TimeEstimateMin != 10080 {
		t.Errorf("TimeEstimateMin = %d, want 10080", task.TimeEstimateMin)
	}
	if task.DueDate != "" {
		t.Errorf("malformed due date kept: %q", task.DueDate)
	}
	if task.ID == "" {
		t.Error("task id not assigned")
	}

	goal := ops.Goals[0]
	if goal.Progress != 100 || goal.Status != models.GoalStatusCompleted {
		t.Errorf("goal = progress %d status %q, want 100/completed", goal.Progress, goal.Status)
	}

	if ops.Habits[0].TargetPerWeek != 14 {
		t.Errorf("TargetPerWeek = %d, want 14", ops.Habits[0].TargetPerWeek)
	}
}

func TestReconcileNilPayload(t *testing.T) {
	_, err := Reconcile(nil, models.Snapshot{}, false, importNow)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
}
