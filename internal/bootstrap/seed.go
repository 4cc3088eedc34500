// Package bootstrap inserts first-run demo data. Seeding is an explicit step
// wired in by the server, not a side effect of route registration, so tests and
// alternate entry points can skip it.
package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	"ganttboard/internal/model"
)

// SeedStore is the slice of the task store seeding needs.
type SeedStore interface {
	List(ctx context.Context) ([]model.Task, error)
	Create(ctx context.Context, task *model.Task) error
}

func strPtr(s string) *string { return &s }

// Seed inserts four representative demo tasks when the store is empty: one done,
// one in progress, one todo, and one already overdue. It never runs again once
// any task exists.
func Seed(ctx context.Context, store SeedStore) error {
	existing, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("check for existing tasks: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	log.Println("🌱 Seeding database with demo tasks")

	now := time.Now()
	day := 24 * time.Hour

	tasks := []model.Task{
		{
			Name:        "Project Kickoff",
			Segment:     "General",
			StartDate:   now.Add(-2 * day),
			EndDate:     now.Add(-day),
			Progress:    100,
			Status:      model.StatusDone,
			Assignee:    strPtr("Alice"),
			Description: strPtr("Initial meeting with stakeholders"),
		},
		{
			Name:        "Design Phase",
			Segment:     "General",
			StartDate:   now,
			EndDate:     now.Add(5 * day),
			Progress:    30,
			Status:      model.StatusInProgress,
			Assignee:    strPtr("Bob"),
			Description: strPtr("Create UI/UX mockups"),
		},
		{
			Name:        "Backend Setup",
			Segment:     "General",
			StartDate:   now.Add(day),
			EndDate:     now.Add(7 * day),
			Progress:    10,
			Status:      model.StatusTodo,
			Assignee:    strPtr("Charlie"),
			Description: strPtr("Setup DB and API"),
		},
		{
			// Already overdue on purpose: exercises the overdue check out of the box.
			Name:        "Legacy Migration",
			Segment:     "General",
			StartDate:   now.Add(-10 * day),
			EndDate:     now.Add(-2 * day),
			Progress:    50,
			Status:      model.StatusInProgress,
			Assignee:    strPtr("Dave"),
			Description: strPtr("Migrate old data"),
		},
	}

	for i := range tasks {
		if err := store.Create(ctx, &tasks[i]); err != nil {
			return fmt.Errorf("seed task %q: %w", tasks[i].Name, err)
		}
	}

	return nil
}
