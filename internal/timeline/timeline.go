// Package timeline flattens per-sprout records into one chronological
// event sequence for display.
package timeline

import (
	"sort"
	"time"

	"github.com/seedbed/trellis/internal/models"
)

// Kind classifies a timeline event.
type Kind string

const (
	KindStart      Kind = "start"
	KindGraft      Kind = "graft"
	KindWatering   Kind = "watering"
	KindReflection Kind = "reflection"
	KindCompletion Kind = "completion"
)

// placeholderOrigin labels a graft event whose origin is not among the
// input sprouts (a leaf reference or a pruned record).
const placeholderOrigin = "an earlier planting"

// Event is one row of the assembled timeline.
type Event struct {
	Kind     Kind
	At       time.Time
	SproutID string
	Title    string // owning sprout title, empty for twig reflections
	Label    string // graft origin title, entry content, or outcome note
	Prompt   string
	Success  *bool // completion events only
}

// Build expands sprouts (and the owning twig's reflections) into a
// single sequence sorted most-recent-first. It is pure: identical input
// yields identical output. Events sharing a timestamp keep expansion
// order — start before graft before waterings before completion — via
// the stable sort, so a freshly grafted sprout reads start first.
func Build(sprouts []models.Sprout, reflections []models.Reflection) []Event {
	titles := make(map[string]string, len(sprouts))
	for _, s := range sprouts {
		titles[s.ID] = s.Title
	}

	events := make([]Event, 0, len(sprouts)*2+len(reflections))
	for _, s := range sprouts {
		startAt := s.ActivatedAt
		if startAt.IsZero() {
			startAt = s.CreatedAt
		}
		events = append(events, Event{
			Kind:     KindStart,
			At:       startAt,
			SproutID: s.ID,
			Title:    s.Title,
		})

		if s.GraftedFromID != nil {
			label, ok := titles[*s.GraftedFromID]
			if !ok || label == "" {
				label = placeholderOrigin
			}
			events = append(events, Event{
				Kind:     KindGraft,
				At:       s.CreatedAt,
				SproutID: s.ID,
				Title:    s.Title,
				Label:    label,
			})
		}

		for _, w := range s.Waterings {
			events = append(events, Event{
				Kind:     KindWatering,
				At:       w.CreatedAt,
				SproutID: s.ID,
				Title:    s.Title,
				Label:    w.Content,
				Prompt:   w.Prompt,
			})
		}

		if s.CompletedAt != nil {
			success := s.Status == models.StatusCompleted
			events = append(events, Event{
				Kind:     KindCompletion,
				At:       *s.CompletedAt,
				SproutID: s.ID,
				Title:    s.Title,
				Label:    s.OutcomeNote,
				Success:  &success,
			})
		}
	}

	for _, r := range reflections {
		events = append(events, Event{
			Kind:   KindReflection,
			At:     r.CreatedAt,
			Label:  r.Content,
			Prompt: r.Prompt,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].At.After(events[j].At)
	})
	return events
}
