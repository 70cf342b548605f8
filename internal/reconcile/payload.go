// Package reconcile validates backup payloads and computes the operation set
// needed to bring the record store in line with them. It performs no I/O; the
// storage provider applies a returned OperationSet in a single transaction.
package reconcile

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nwhitfield/daybook/internal/constants"
	"github.com/nwhitfield/daybook/internal/engine"
	"github.com/nwhitfield/daybook/internal/models"
	"github.com/nwhitfield/daybook/internal/utils"
)

// ValidationError reports a structurally invalid backup payload. When the
// caller sees one, nothing may be applied; a payload is imported whole or not
// at all.
type ValidationError struct {
	Section string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Section == "" {
		return fmt.Sprintf("invalid backup payload: %v", e.Err)
	}
	return fmt.Sprintf("invalid backup payload: section %q: %v", e.Section, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Payload mirrors the backup JSON document. A nil section was absent from the
// document and is left untouched by the reconciler; an empty one was present
// and, in replace mode, wipes that record type.
type Payload struct {
	Entries   []EntryRecord    `json:"entries"`
	Pages     []PageRecord     `json:"pages"`
	Tasks     []TaskRecord     `json:"tasks"`
	Goals     []GoalRecord     `json:"goals"`
	Habits    []HabitRecord    `json:"habits"`
	HabitLogs []HabitLogRecord `json:"habit_logs"`
}

// EntryRecord is a journal entry as it appears in a backup; timestamps are
// optional and default on import.
type EntryRecord struct {
	Date      string  `json:"date"`
	Yesterday string  `json:"yesterday"`
	Today     string  `json:"today"`
	CreatedAt *string `json:"created_at"`
}

type PageRecord struct {
	ID        *string `json:"id"`
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	CreatedAt *string `json:"created_at"`
	UpdatedAt *string `json:"updated_at"`
}

type TaskRecord struct {
	ID                 *string  `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Status             string   `json:"status"`
	Priority           string   `json:"priority"`
	DueDate            string   `json:"due_date"`
	CompletedAt        *string  `json:"completed_at"`
	TimeEstimateMin    *int     `json:"time_estimate_min"`
	AccumulatedSeconds *float64 `json:"accumulated_seconds"`
	StartedAt          *string  `json:"started_at"`
	CreatedAt          *string  `json:"created_at"`
	UpdatedAt          *string  `json:"updated_at"`
}

type GoalRecord struct {
	ID          *string  `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Progress    *float64 `json:"progress"`
	TargetDate  string   `json:"target_date"`
	CreatedAt   *string  `json:"created_at"`
	UpdatedAt   *string  `json:"updated_at"`
}

type HabitRecord struct {
	ID            *string  `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	TargetPerWeek *float64 `json:"target_per_week"`
	Color         string   `json:"color"`
	CreatedAt     *string  `json:"created_at"`
	UpdatedAt     *string  `json:"updated_at"`
}

type HabitLogRecord struct {
	HabitID   string  `json:"habit_id"`
	Day       string  `json:"day"`
	CreatedAt *string `json:"created_at"`
}

// ParsePayload decodes and shape-checks a backup document. Wrong field types
// or malformed JSON yield a *ValidationError; downstream value-level issues
// (unparseable dates, out-of-range numbers) are clamped or defaulted at
// conversion time instead.
func ParsePayload(data []byte) (*Payload, error) {
	var sections map[string]json.RawMessage
	if err := json.Unmarshal(data, &sections); err != nil {
		return nil, &ValidationError{Err: err}
	}

	p := &Payload{}
	for section, raw := range sections {
		var err error
		switch section {
		case "entries":
			err = json.Unmarshal(raw, &p.Entries)
		case "pages":
			err = json.Unmarshal(raw, &p.Pages)
		case "tasks":
			err = json.Unmarshal(raw, &p.Tasks)
		case "goals":
			err = json.Unmarshal(raw, &p.Goals)
		case "habits":
			err = json.Unmarshal(raw, &p.Habits)
		case "habit_logs":
			err = json.Unmarshal(raw, &p.HabitLogs)
		default:
			// Unknown sections are ignored, not fatal
			continue
		}
		if err != nil {
			return nil, &ValidationError{Section: section, Err: err}
		}
		// A section key present with a null value counts as present and empty
		if p.sectionNil(section) {
			p.setEmpty(section)
		}
	}
	return p, nil
}

func (p *Payload) sectionNil(section string) bool {
	switch section {
	case "entries":
		return p.Entries == nil
	case "pages":
		return p.Pages == nil
	case "tasks":
		return p.Tasks == nil
	case "goals":
		return p.Goals == nil
	case "habits":
		return p.Habits == nil
	case "habit_logs":
		return p.HabitLogs == nil
	}
	return false
}

func (p *Payload) setEmpty(section string) {
	switch section {
	case "entries":
		p.Entries = []EntryRecord{}
	case "pages":
		p.Pages = []PageRecord{}
	case "tasks":
		p.Tasks = []TaskRecord{}
	case "goals":
		p.Goals = []GoalRecord{}
	case "habits":
		p.Habits = []HabitRecord{}
	case "habit_logs":
		p.HabitLogs = []HabitLogRecord{}
	}
}

func (r EntryRecord) toModel(now, createdFallback time.Time) models.JournalEntry {
	return models.JournalEntry{
		Date:      r.Date,
		Yesterday: r.Yesterday,
		Today:     r.Today,
		CreatedAt: timestampOr(r.CreatedAt, createdFallback),
	}
}

func (r PageRecord) toModel(now, createdFallback time.Time) models.Page {
	return models.Page{
		ID:        idOr(r.ID),
		Title:     r.Title,
		Content:   r.Content,
		CreatedAt: timestampOr(r.CreatedAt, createdFallback),
		UpdatedAt: timestampOr(r.UpdatedAt, now),
	}
}

func (r TaskRecord) toModel(now, createdFallback time.Time) models.Task {
	task := models.Task{
		ID:              idOr(r.ID),
		Title:           r.Title,
		Description:     r.Description,
		Status:          taskStatusOr(r.Status),
		Priority:        taskPriorityOr(r.Priority),
		TimeEstimateMin: models.ClampTimeEstimate(intOr(r.TimeEstimateMin, 0)),
		CreatedAt:       timestampOr(r.CreatedAt, createdFallback),
		UpdatedAt:       timestampOr(r.UpdatedAt, now),
	}
	if _, ok := utils.ParseCalendarDay(r.DueDate); ok {
		task.DueDate = r.DueDate
	}
	if r.CompletedAt != nil {
		if t, ok := utils.ParseTimestamp(*r.CompletedAt); ok {
			task.CompletedAt = &t
		}
	}
	if r.AccumulatedSeconds != nil && *r.AccumulatedSeconds > 0 {
		task.Timer.AccumulatedSeconds = int64(*r.AccumulatedSeconds)
	}
	if r.StartedAt != nil {
		if t, ok := utils.ParseTimestamp(*r.StartedAt); ok {
			task.Timer.StartedAt = &t
		}
	}
	return task
}

func (r GoalRecord) toModel(now, createdFallback time.Time) models.Goal {
	goal := models.Goal{
		ID:          idOr(r.ID),
		Title:       r.Title,
		Description: r.Description,
		Status:      goalStatusOr(r.Status),
		CreatedAt:   timestampOr(r.CreatedAt, createdFallback),
		UpdatedAt:   timestampOr(r.UpdatedAt, now),
	}
	if r.Progress != nil {
		goal.Progress = engine.NormalizeProgress(*r.Progress)
	}
	// Keep the progress/status invariant across imports too
	if goal.Progress == constants.MaxProgress {
		goal.Status = models.GoalStatusCompleted
	}
	if _, ok := utils.ParseCalendarDay(r.TargetDate); ok {
		goal.TargetDate = r.TargetDate
	}
	return goal
}

func (r HabitRecord) toModel(now, createdFallback time.Time) models.Habit {
	return models.Habit{
		ID:            idOr(r.ID),
		Title:         r.Title,
		Description:   r.Description,
		TargetPerWeek: models.ClampTargetPerWeek(roundedOr(r.TargetPerWeek, 1)),
		Color:         r.Color,
		CreatedAt:     timestampOr(r.CreatedAt, createdFallback),
		UpdatedAt:     timestampOr(r.UpdatedAt, now),
	}
}

func (r HabitLogRecord) toModel(createdFallback time.Time) models.HabitLog {
	return models.HabitLog{
		HabitID:   r.HabitID,
		Day:       r.Day,
		CreatedAt: timestampOr(r.CreatedAt, createdFallback),
	}
}

func idOr(id *string) string {
	if id != nil && *id != "" {
		return *id
	}
	return uuid.New().String()
}

func timestampOr(s *string, fallback time.Time) time.Time {
	if s != nil {
		if t, ok := utils.ParseTimestamp(*s); ok {
			return t
		}
	}
	return fallback
}

func intOr(v *int, fallback int) int {
	if v != nil {
		return *v
	}
	return fallback
}

func roundedOr(v *float64, fallback int) int {
	if v != nil {
		return int(*v)
	}
	return fallback
}

func taskStatusOr(s string) models.TaskStatus {
	switch models.TaskStatus(s) {
	case models.TaskStatusTodo, models.TaskStatusInProgress, models.TaskStatusDone:
		return models.TaskStatus(s)
	}
	return models.TaskStatusTodo
}

func taskPriorityOr(s string) models.TaskPriority {
	switch models.TaskPriority(s) {
	case models.PriorityUrgent, models.PriorityHigh, models.PriorityMedium, models.PriorityLow:
		return models.TaskPriority(s)
	}
	return models.PriorityMedium
}

func goalStatusOr(s string) models.GoalStatus {
	switch models.GoalStatus(s) {
	case models.GoalStatusActive, models.GoalStatusPaused, models.GoalStatusCompleted, models.GoalStatusArchived:
		return models.GoalStatus(s)
	}
	return models.GoalStatusActive
}
