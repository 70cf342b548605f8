package reconcile

import (
	"encoding/json"
	"time"

	"github.com/nwhitfield/daybook/internal/models"
)

// ExportPayload renders a snapshot as the backup JSON document. The output
// always carries every section, so importing it in replace mode reproduces
// the snapshot exactly.
func ExportPayload(snap models.Snapshot) ([]byte, error) {
	p := Payload{
		Entries:   make([]EntryRecord, 0, len(snap.Entries)),
		Pages:     make([]PageRecord, 0, len(snap.Pages)),
		Tasks:     make([]TaskRecord, 0, len(snap.Tasks)),
		Goals:     make([]GoalRecord, 0, len(snap.Goals)),
		Habits:    make([]HabitRecord, 0, len(snap.Habits)),
		HabitLogs: make([]HabitLogRecord, 0, len(snap.HabitLogs)),
	}

	for _, e := range snap.Entries {
		p.Entries = append(p.Entries, EntryRecord{
			Date:      e.Date,
			Yesterday: e.Yesterday,
			Today:     e.Today,
			CreatedAt: stampPtr(e.CreatedAt),
		})
	}
	for _, page := range snap.Pages {
		id := page.ID
		p.Pages = append(p.Pages, PageRecord{
			ID:        &id,
			Title:     page.Title,
			Content:   page.Content,
			CreatedAt: stampPtr(page.CreatedAt),
			UpdatedAt: stampPtr(page.UpdatedAt),
		})
	}
	for _, t := range snap.Tasks {
		id := t.ID
		estimate := t.TimeEstimateMin
		seconds := float64(t.Timer.AccumulatedSeconds)
		rec := TaskRecord{
			ID:                 &id,
			Title:              t.Title,
			Description:        t.Description,
			Status:             string(t.Status),
			Priority:           string(t.Priority),
			DueDate:            t.DueDate,
			TimeEstimateMin:    &estimate,
			AccumulatedSeconds: &seconds,
			CreatedAt:          stampPtr(t.CreatedAt),
			UpdatedAt:          stampPtr(t.UpdatedAt),
		}
		if t.CompletedAt != nil {
			rec.CompletedAt = stampPtr(*t.CompletedAt)
		}
		if t.Timer.StartedAt != nil {
			rec.StartedAt = stampPtr(*t.Timer.StartedAt)
		}
		p.Tasks = append(p.Tasks, rec)
	}
	for _, g := range snap.Goals {
		id := g.ID
		progress := float64(g.Progress)
		p.Goals = append(p.Goals, GoalRecord{
			ID:          &id,
			Title:       g.Title,
			Description: g.Description,
			Status:      string(g.Status),
			Progress:    &progress,
			TargetDate:  g.TargetDate,
			CreatedAt:   stampPtr(g.CreatedAt),
			UpdatedAt:   stampPtr(g.UpdatedAt),
		})
	}
	for _, h := range snap.Habits {
		id := h.ID
		target := float64(h.TargetPerWeek)
		p.Habits = append(p.Habits, HabitRecord{
			ID:            &id,
			Title:         h.Title,
			Description:   h.Description,
			TargetPerWeek: &target,
			Color:         h.Color,
			CreatedAt:     stampPtr(h.CreatedAt),
			UpdatedAt:     stampPtr(h.UpdatedAt),
		})
	}
	for _, l := range snap.HabitLogs {
		p.HabitLogs = append(p.HabitLogs, HabitLogRecord{
			HabitID:   l.HabitID,
			Day:       l.Day,
			CreatedAt: stampPtr(l.CreatedAt),
		})
	}

	return json.MarshalIndent(p, "", "  ")
}

func stampPtr(t time.Time) *string {
	s := t.Format(time.RFC3339)
	return &s
}
