package extract

import (
	"context"
	"log"
)

// Outcome is the result of driving a selection control.
type Outcome int

const (
	// OutcomeSelected means the value was applied and the page has settled.
	OutcomeSelected Outcome = iota
	// OutcomeNotFound means the control is absent from the page. The caller
	// skips the current season and moves on.
	OutcomeNotFound
	// OutcomeSelectionFailed means the control was present but interacting
	// with it failed. Also recoverable at season granularity.
	OutcomeSelectionFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSelected:
		return "selected"
	case OutcomeNotFound:
		return "not found"
	case OutcomeSelectionFailed:
		return "selection failed"
	default:
		return "unknown"
	}
}

// Navigator drives the season and season-type filter controls.
type Navigator struct {
	backend Backend
}

// NewNavigator creates a navigator over the given backend.
func NewNavigator(backend Backend) *Navigator {
	return &Navigator{backend: backend}
}

// Select locates the control, applies value by its visible text, and waits
// for the page to settle. Absence and interaction failures are reported as
// outcomes, never as panics or run-fatal errors.
func (n *Navigator) Select(ctx context.Context, control Control, value string) Outcome {
	found, err := n.backend.Lookup(ctx, control)
	if err != nil {
		log.Printf("⚠️  Lookup of %s control failed: %v", control, err)
		return OutcomeSelectionFailed
	}
	if !found {
		log.Printf("⚠️  %s control not found on page", control)
		return OutcomeNotFound
	}

	if err := n.backend.SelectByText(ctx, control, value); err != nil {
		log.Printf("⚠️  Selecting %q on %s control failed: %v", value, control, err)
		return OutcomeSelectionFailed
	}

	if err := n.backend.Settle(ctx); err != nil {
		log.Printf("⚠️  Settle after selecting %q failed: %v", value, err)
		return OutcomeSelectionFailed
	}

	log.Printf("Selected %s: %s", control, value)
	return OutcomeSelected
}
