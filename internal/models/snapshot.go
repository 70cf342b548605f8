package models

// Snapshot is a point-in-time view of every record type. The engine and the
// backup reconciler operate on snapshots; they never touch storage directly.
type Snapshot struct {
	Entries   []JournalEntry `json:"entries"`
	Pages     []Page         `json:"pages"`
	Tasks     []Task         `json:"tasks"`
	Goals     []Goal         `json:"goals"`
	Habits    []Habit        `json:"habits"`
	HabitLogs []HabitLog     `json:"habit_logs"`
}
