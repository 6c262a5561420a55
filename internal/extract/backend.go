package extract

import "context"

// Control identifies the page controls the scraper interacts with. Each
// control maps to a fixed structural locator on the rendered page.
type Control int

const (
	// ControlSeason is the season dropdown in the filter bar.
	ControlSeason Control = iota
	// ControlSeasonType is the season-type dropdown in the filter bar.
	ControlSeasonType
	// ControlPageSelect is the page-number dropdown some layouts render.
	ControlPageSelect
	// ControlNext is the "Next" pagination button other layouts render.
	ControlNext
)

func (c Control) String() string {
	switch c {
	case ControlSeason:
		return "season"
	case ControlSeasonType:
		return "season type"
	case ControlPageSelect:
		return "page select"
	case ControlNext:
		return "next button"
	default:
		return "unknown"
	}
}

// SelectState reports a page-select dropdown's position: the currently
// selected page number and the total number of page options.
type SelectState struct {
	Current int
	Total   int
}

// Backend is the page-rendering capability the navigator and engine drive.
// Lookups are tagged results: absence of a control is reported as found ==
// false, not as an error, so callers branch on presence deterministically.
type Backend interface {
	// Navigate loads the given URL and waits for the document body.
	Navigate(ctx context.Context, url string) error

	// Lookup probes for a control without interacting with it.
	Lookup(ctx context.Context, control Control) (found bool, err error)

	// SelectByText selects the option whose visible text matches value.
	SelectByText(ctx context.Context, control Control, value string) error

	// SelectState reads the current/total position of a select control.
	SelectState(ctx context.Context, control Control) (SelectState, error)

	// Disabled reports whether the control is marked disabled, either via
	// the disabled property or a "disabled" class on the element.
	Disabled(ctx context.Context, control Control) (bool, error)

	// Click clicks the control. An intercepted or failed click is an error.
	Click(ctx context.Context, control Control) error

	// PageSource returns the current rendered markup.
	PageSource(ctx context.Context) (string, error)

	// Settle waits for asynchronous content to finish re-rendering after an
	// action. Implementations poll a readiness signal under a bounded
	// timeout; expiry is not an error.
	Settle(ctx context.Context) error

	// Close releases any resources held by the backend.
	Close() error
}
