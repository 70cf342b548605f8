package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/nwhitfield/daybook/internal/models"
	"github.com/nwhitfield/daybook/internal/reconcile"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(filepath.Join(t.TempDir(), "daybook.db"))
	if err := s.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("bad test timestamp %q: %v", s, err)
	}
	return ts
}

func TestInitSeedsDefaultSettings(t *testing.T) {
	s := newTestStore(t)

	settings, err := s.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() failed: %v", err)
	}
	if settings.ReminderHour != 18 || !settings.Autosave || settings.Theme != "system" {
		t.Errorf("unexpected default settings: %+v", settings)
	}
}

func TestLoadRequiresInit(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := s.Load(); err == nil {
		t.Error("Load() should fail before Init()")
	}
}

func TestSaveEntryPreservesCreatedAt(t *testing.T) {
	s := newTestStore(t)

	first := mustTime(t, "2024-06-09T08:00:00Z")
	entry := models.JournalEntry{Date: "2024-06-09", Yesterday: "rested", Today: "wrote", CreatedAt: first}
	if err := s.SaveEntry(entry); err != nil {
		t.Fatalf("SaveEntry() failed: %v", err)
	}

	entry.Today = "wrote more"
	entry.CreatedAt = mustTime(t, "2024-06-09T20:00:00Z")
	if err := s.SaveEntry(entry); err != nil {
		t.Fatalf("SaveEntry() update failed: %v", err)
	}

	got, err := s.GetEntry("2024-06-09")
	if err != nil {
		t.Fatalf("GetEntry() failed: %v", err)
	}
	if got.Today != "wrote more" {
		t.Errorf("Today = %q, want %q", got.Today, "wrote more")
	}
	if !got.CreatedAt.Equal(first) {
		t.Errorf("CreatedAt = %v, want original %v", got.CreatedAt, first)
	}
}

func TestTaskRoundTrip(t *testing.T) {
	s := newTestStore(t)

	started := mustTime(t, "2024-06-10T09:00:00Z")
	task := models.Task{
		ID:              "t1",
		Title:           "write report",
		Status:          models.TaskStatusInProgress,
		Priority:        models.PriorityHigh,
		DueDate:         "2024-06-12",
		TimeEstimateMin: 90,
		Timer:           models.TimerState{AccumulatedSeconds: 120, StartedAt: &started},
		CreatedAt:       mustTime(t, "2024-06-10T08:00:00Z"),
		UpdatedAt:       mustTime(t, "2024-06-10T09:00:00Z"),
	}
	if err := s.AddTask(task); err != nil {
		t.Fatalf("AddTask() failed: %v", err)
	}

	got, err := s.GetTask("t1")
	if err != nil {
		t.Fatalf("GetTask() failed: %v", err)
	}
	if got.Status != models.TaskStatusInProgress || got.Priority != models.PriorityHigh {
		t.Errorf("status/priority = %s/%s, want in_progress/high", got.Status, got.Priority)
	}
	if got.DueDate != "2024-06-12" {
		t.Errorf("DueDate = %q, want 2024-06-12", got.DueDate)
	}
	if got.Timer.AccumulatedSeconds != 120 {
		t.Errorf("AccumulatedSeconds = %d, want 120", got.Timer.AccumulatedSeconds)
	}
	if got.Timer.StartedAt == nil || !got.Timer.StartedAt.Equal(started) {
		t.Errorf("StartedAt = %v, want %v", got.Timer.StartedAt, started)
	}

	got.Timer = models.TimerState{AccumulatedSeconds: 300}
	got.Status = models.TaskStatusTodo
	if err := s.UpdateTask(got); err != nil {
		t.Fatalf("UpdateTask() failed: %v", err)
	}
	got, err = s.GetTask("t1")
	if err != nil {
		t.Fatalf("GetTask() after update failed: %v", err)
	}
	if got.Timer.StartedAt != nil {
		t.Errorf("StartedAt = %v, want nil after pause", got.Timer.StartedAt)
	}
	if got.Timer.AccumulatedSeconds != 300 {
		t.Errorf("AccumulatedSeconds = %d, want 300", got.Timer.AccumulatedSeconds)
	}
}

func TestSetHabitCompletionIdempotent(t *testing.T) {
	s := newTestStore(t)

	now := mustTime(t, "2024-06-10T10:00:00Z")
	habit := models.Habit{ID: "h1", Title: "stretch", TargetPerWeek: 7, CreatedAt: now, UpdatedAt: now}
	if err := s.AddHabit(habit); err != nil {
		t.Fatalf("AddHabit() failed: %v", err)
	}

	log := models.HabitLog{HabitID: "h1", Day: "2024-06-10", CreatedAt: now}
	for i := 0; i < 2; i++ {
		if err := s.SetHabitCompletion(log, true); err != nil {
			t.Fatalf("SetHabitCompletion(true) #%d failed: %v", i, err)
		}
	}
	logs, err := s.GetHabitLogs("h1")
	if err != nil {
		t.Fatalf("GetHabitLogs() failed: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected 1 log after double mark, got %d", len(logs))
	}

	for i := 0; i < 2; i++ {
		if err := s.SetHabitCompletion(log, false); err != nil {
			t.Fatalf("SetHabitCompletion(false) #%d failed: %v", i, err)
		}
	}
	logs, err = s.GetHabitLogs("h1")
	if err != nil {
		t.Fatalf("GetHabitLogs() failed: %v", err)
	}
	if len(logs) != 0 {
		t.Fatalf("expected 0 logs after clearing, got %d", len(logs))
	}
}

func TestDeleteHabitCascadesLogs(t *testing.T) {
	s := newTestStore(t)

	now := mustTime(t, "2024-06-10T10:00:00Z")
	if err := s.AddHabit(models.Habit{ID: "h1", Title: "stretch", TargetPerWeek: 7, CreatedAt: now, UpdatedAt: now}); err != nil {
		t.Fatalf("AddHabit() failed: %v", err)
	}
	if err := s.SetHabitCompletion(models.HabitLog{HabitID: "h1", Day: "2024-06-10", CreatedAt: now}, true); err != nil {
		t.Fatalf("SetHabitCompletion() failed: %v", err)
	}

	if err := s.DeleteHabit("h1"); err != nil {
		t.Fatalf("DeleteHabit() failed: %v", err)
	}
	logs, err := s.GetAllHabitLogs()
	if err != nil {
		t.Fatalf("GetAllHabitLogs() failed: %v", err)
	}
	if len(logs) != 0 {
		t.Errorf("expected no logs after habit delete, got %d", len(logs))
	}
}

func TestApplyBackupReplace(t *testing.T) {
	s := newTestStore(t)

	now := mustTime(t, "2024-06-10T10:00:00Z")
	if err := s.SaveEntry(models.JournalEntry{Date: "2024-06-01", Yesterday: "old", Today: "old", CreatedAt: now}); err != nil {
		t.Fatalf("SaveEntry() failed: %v", err)
	}
	if err := s.AddGoal(models.Goal{ID: "g1", Title: "keep me", Status: models.GoalStatusActive, CreatedAt: now, UpdatedAt: now}); err != nil {
		t.Fatalf("AddGoal() failed: %v", err)
	}

	imported := mustTime(t, "2024-05-01T00:00:00Z")
	ops := reconcile.OperationSet{
		ReplaceEntries: true,
		Entries: []models.JournalEntry{
			{Date: "2024-06-05", Yesterday: "from backup", Today: "restored", CreatedAt: imported},
		},
	}
	if err := s.ApplyBackup(ops); err != nil {
		t.Fatalf("ApplyBackup() failed: %v", err)
	}

	entries, err := s.GetAllEntries()
	if err != nil {
		t.Fatalf("GetAllEntries() failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Date != "2024-06-05" {
		t.Fatalf("expected only the imported entry, got %+v", entries)
	}
	// Imports carry their own created_at, unlike interactive saves
	if !entries[0].CreatedAt.Equal(imported) {
		t.Errorf("CreatedAt = %v, want %v", entries[0].CreatedAt, imported)
	}

	// Sections without a replace flag stay put
	goals, err := s.GetAllGoals()
	if err != nil {
		t.Fatalf("GetAllGoals() failed: %v", err)
	}
	if len(goals) != 1 || goals[0].Title != "keep me" {
		t.Errorf("goals should be untouched, got %+v", goals)
	}
}

func TestApplyBackupMergeUpserts(t *testing.T) {
	s := newTestStore(t)

	now := mustTime(t, "2024-06-10T10:00:00Z")
	if err := s.AddGoal(models.Goal{ID: "g1", Title: "before", Status: models.GoalStatusActive, Progress: 10, CreatedAt: now, UpdatedAt: now}); err != nil {
		t.Fatalf("AddGoal() failed: %v", err)
	}

	ops := reconcile.OperationSet{
		Goals: []models.Goal{
			{ID: "g1", Title: "after", Status: models.GoalStatusActive, Progress: 40, CreatedAt: now, UpdatedAt: now},
			{ID: "g2", Title: "brand new", Status: models.GoalStatusActive, CreatedAt: now, UpdatedAt: now},
		},
	}
	if err := s.ApplyBackup(ops); err != nil {
		t.Fatalf("ApplyBackup() failed: %v", err)
	}

	goals, err := s.GetAllGoals()
	if err != nil {
		t.Fatalf("GetAllGoals() failed: %v", err)
	}
	if len(goals) != 2 {
		t.Fatalf("expected 2 goals, got %d", len(goals))
	}
	g1, err := s.GetGoal("g1")
	if err != nil {
		t.Fatalf("GetGoal(g1) failed: %v", err)
	}
	if g1.Title != "after" || g1.Progress != 40 {
		t.Errorf("g1 = %q/%d, want after/40", g1.Title, g1.Progress)
	}
}

func TestSnapshotCollectsAllSections(t *testing.T) {
	s := newTestStore(t)

	now := mustTime(t, "2024-06-10T10:00:00Z")
	if err := s.SaveEntry(models.JournalEntry{Date: "2024-06-10", Today: "x", CreatedAt: now}); err != nil {
		t.Fatalf("SaveEntry() failed: %v", err)
	}
	if err := s.AddPage(models.Page{ID: "p1", Title: "notes", CreatedAt: now, UpdatedAt: now}); err != nil {
		t.Fatalf("AddPage() failed: %v", err)
	}
	if err := s.AddTask(models.Task{ID: "t1", Title: "task", Status: models.TaskStatusTodo, Priority: models.PriorityMedium, CreatedAt: now, UpdatedAt: now}); err != nil {
		t.Fatalf("AddTask() failed: %v", err)
	}
	if err := s.AddHabit(models.Habit{ID: "h1", Title: "habit", TargetPerWeek: 3, CreatedAt: now, UpdatedAt: now}); err != nil {
		t.Fatalf("AddHabit() failed: %v", err)
	}
	if err := s.SetHabitCompletion(models.HabitLog{HabitID: "h1", Day: "2024-06-10", CreatedAt: now}, true); err != nil {
		t.Fatalf("SetHabitCompletion() failed: %v", err)
	}

	snap, err := s.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() failed: %v", err)
	}
	if len(snap.Entries) != 1 || len(snap.Pages) != 1 || len(snap.Tasks) != 1 ||
		len(snap.Habits) != 1 || len(snap.HabitLogs) != 1 {
		t.Errorf("snapshot incomplete: %d entries, %d pages, %d tasks, %d habits, %d logs",
			len(snap.Entries), len(snap.Pages), len(snap.Tasks), len(snap.Habits), len(snap.HabitLogs))
	}
}
