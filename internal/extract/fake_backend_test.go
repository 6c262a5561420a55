package extract

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// fakeBackend scripts a paginated stats page without a browser. Pages are
// markup snapshots; pagination is either a page dropdown or a next button
// depending on the flags set by each test.
type fakeBackend struct {
	pages []string
	page  int // zero-based index into pages

	hasSeason     bool
	hasSeasonType bool
	seasonErr     error

	hasDropdown bool

	hasNext       bool
	nextDisabled  bool
	clickErr      error
	lookupErr     error
	selectPageErr error

	pageReads   int
	settleCalls int
	selections  []string
	closed      bool
}

func newFakeBackend(pages ...string) *fakeBackend {
	return &fakeBackend{
		pages:         pages,
		hasSeason:     true,
		hasSeasonType: true,
	}
}

func (f *fakeBackend) Navigate(ctx context.Context, url string) error { return nil }

func (f *fakeBackend) Lookup(ctx context.Context, control Control) (bool, error) {
	if f.lookupErr != nil {
		return false, f.lookupErr
	}
	switch control {
	case ControlSeason:
		return f.hasSeason, nil
	case ControlSeasonType:
		return f.hasSeasonType, nil
	case ControlPageSelect:
		return f.hasDropdown, nil
	case ControlNext:
		return f.hasNext, nil
	}
	return false, nil
}

func (f *fakeBackend) SelectByText(ctx context.Context, control Control, value string) error {
	f.selections = append(f.selections, fmt.Sprintf("%s=%s", control, value))

	switch control {
	case ControlSeason, ControlSeasonType:
		if f.seasonErr != nil {
			return f.seasonErr
		}
		// Selecting a new season resets pagination to the first page.
		if control == ControlSeason {
			f.page = 0
		}
		return nil
	case ControlPageSelect:
		if f.selectPageErr != nil {
			return f.selectPageErr
		}
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || n > len(f.pages) {
			return fmt.Errorf("option not present: %q", value)
		}
		f.page = n - 1
		return nil
	}
	return fmt.Errorf("unexpected select on %s", control)
}

func (f *fakeBackend) SelectState(ctx context.Context, control Control) (SelectState, error) {
	return SelectState{Current: f.page + 1, Total: len(f.pages)}, nil
}

func (f *fakeBackend) Disabled(ctx context.Context, control Control) (bool, error) {
	// Button-paginated layouts disable Next on the last page.
	if f.nextDisabled || f.page == len(f.pages)-1 {
		return true, nil
	}
	return false, nil
}

func (f *fakeBackend) Click(ctx context.Context, control Control) error {
	if f.clickErr != nil {
		return f.clickErr
	}
	if f.page < len(f.pages)-1 {
		f.page++
	}
	return nil
}

func (f *fakeBackend) PageSource(ctx context.Context) (string, error) {
	f.pageReads++
	if len(f.pages) == 0 {
		return "<html><body></body></html>", nil
	}
	return f.pages[f.page], nil
}

func (f *fakeBackend) Settle(ctx context.Context) error {
	f.settleCalls++
	return nil
}

func (f *fakeBackend) Close() error {
	f.closed = true
	return nil
}

// tablePage renders a box-score table with a header row followed by the
// given data rows, each row a slice of cell texts.
func tablePage(rows ...[]string) string {
	var b strings.Builder
	b.WriteString("<html><body><table>")
	b.WriteString("<tr><th>DATE</th><th>PLAYER</th><th>TEAM</th><th>OPP</th><th>PTS</th><th>REB</th><th>AST</th></tr>")
	for _, row := range rows {
		b.WriteString("<tr>")
		for _, cell := range row {
			b.WriteString("<td>" + cell + "</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</table></body></html>")
	return b.String()
}

func row(date, player, team, opp, pts, reb, ast string) []string {
	return []string{date, player, team, opp, pts, reb, ast}
}
