package models

// Settings holds user preferences persisted alongside the records. These are
// presentation-level knobs; the engine never reads them.
type Settings struct {
	ReminderHour int    `json:"reminder_hour"`
	Autosave     bool   `json:"autosave"`
	Theme        string `json:"theme"`
}
