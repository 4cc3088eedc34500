package notify

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"ganttboard/internal/model"
)

// OverdueStore is the slice of the task store the notifier needs.
type OverdueStore interface {
	ListOverdue(ctx context.Context) ([]model.Task, error)
}

// Sender delivers a single notification through an external provider.
type Sender interface {
	Send(ctx context.Context, subject, body string) error
}

// Result is the outcome of an overdue check, returned to the caller verbatim.
// Provider failures are folded into Message, never into an error.
type Result struct {
	Count   int    `json:"count"`
	Message string `json:"message"`
}

// Notifier runs on-demand overdue checks and dispatches a summary notification
// when a provider is configured. It keeps no history and applies no cooldown:
// repeated checks re-send for tasks still overdue.
type Notifier struct {
	store  OverdueStore
	sender Sender
}

// New constructs a Notifier. A nil sender is a valid mode: checks still run and
// report counts, with notification explicitly skipped.
func New(store OverdueStore, sender Sender) *Notifier {
	return &Notifier{store: store, sender: sender}
}

// CheckOverdue queries overdue tasks and, when possible, sends one summary email
// naming each task and its due date. Only a store failure is returned as an error;
// every other outcome is reported through the Result.
func (n *Notifier) CheckOverdue(ctx context.Context) (Result, error) {
	tasks, err := n.store.ListOverdue(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("list overdue tasks: %w", err)
	}

	if len(tasks) == 0 {
		return Result{Count: 0, Message: "No overdue tasks found."}, nil
	}

	log.Printf("⏰ Found %d overdue tasks:", len(tasks))
	for _, t := range tasks {
		log.Printf("  - %s (due: %s)", t.Name, t.EndDate.Format(time.RFC3339))
	}

	if n.sender == nil {
		return Result{
			Count:   len(tasks),
			Message: fmt.Sprintf("Found %d overdue tasks. Notification skipped: no email provider configured.", len(tasks)),
		}, nil
	}

	subject := fmt.Sprintf("%d overdue tasks need attention", len(tasks))
	if err := n.sender.Send(ctx, subject, summaryBody(tasks)); err != nil {
		log.Printf("❌ Overdue notification failed: %v", err)
		return Result{
			Count:   len(tasks),
			Message: fmt.Sprintf("Found %d overdue tasks, but the notification email failed to send.", len(tasks)),
		}, nil
	}

	return Result{
		Count:   len(tasks),
		Message: fmt.Sprintf("Found %d overdue tasks. Notification email sent.", len(tasks)),
	}, nil
}

func summaryBody(tasks []model.Task) string {
	var b strings.Builder
	b.WriteString("The following tasks are past their end date and not done:\n\n")
	for _, t := range tasks {
		fmt.Fprintf(&b, "- %s (due: %s)\n", t.Name, t.EndDate.Format("2006-01-02"))
	}
	return b.String()
}
