package extract

import (
	"context"
	"log"
	"strconv"
)

// contextState is the engine's position inside one season/season-type
// context. Done and Aborted are terminal; the outer season loop then moves
// to the next season with a fresh context.
type contextState int

const (
	stateParsingPage contextState = iota
	stateDecidingAdvance
	stateDone
	stateAborted
)

// Engine walks paginated box-score tables, accumulating parsed rows. It
// exclusively owns the result sequence; callers receive it once at the end
// of a run.
type Engine struct {
	backend   Backend
	navigator *Navigator
}

// NewEngine creates an engine over the given backend.
func NewEngine(backend Backend) *Engine {
	return &Engine{
		backend:   backend,
		navigator: NewNavigator(backend),
	}
}

// Run processes every configured season in order and returns all records
// collected across them. Season-level failures skip the season; only context
// cancellation ends the run early, and already-collected rows are still
// returned with the error.
func (e *Engine) Run(ctx context.Context, cfg Config) ([]BoxScoreRecord, error) {
	records := make([]BoxScoreRecord, 0)

	for _, season := range cfg.Seasons {
		if err := ctx.Err(); err != nil {
			return records, err
		}

		log.Printf("Processing season: %s", season)

		if outcome := e.navigator.Select(ctx, ControlSeason, season); outcome != OutcomeSelected {
			log.Printf("⚠️  Skipping season %s: season control %s", season, outcome)
			continue
		}
		if outcome := e.navigator.Select(ctx, ControlSeasonType, cfg.SeasonType); outcome != OutcomeSelected {
			log.Printf("⚠️  Skipping season %s: season type control %s", season, outcome)
			continue
		}

		collected, terminal := e.collectContext(ctx, &records)
		log.Printf("Season %s finished (%v): %d records collected", season, terminal, collected)
	}

	log.Printf("✓ Extraction complete: %d total records", len(records))
	return records, nil
}

// collectContext runs the ParsingPage/DecidingAdvance loop for the current
// season context, appending valid rows to records in document order. It
// returns the number of rows collected and the terminal state reached.
func (e *Engine) collectContext(ctx context.Context, records *[]BoxScoreRecord) (int, contextState) {
	collected := 0
	page := pageState{pageIndex: 1}
	state := stateParsingPage

	for {
		switch state {
		case stateParsingPage:
			markup, err := e.backend.PageSource(ctx)
			if err != nil {
				log.Printf("❌ Reading page %d failed: %v", page.pageIndex, err)
				return collected, stateAborted
			}
			page.markup = markup

			rows, tableFound := parsePage(page.markup)
			if !tableFound {
				log.Printf("⚠️  No table found on page %d", page.pageIndex)
				return collected, stateDone
			}

			*records = append(*records, rows...)
			collected += len(rows)
			state = stateDecidingAdvance

		case stateDecidingAdvance:
			state = e.advance(ctx, &page)

		case stateDone, stateAborted:
			return collected, state
		}
	}
}

// advance moves to the next results page. The page dropdown is probed first;
// the Next button is the fallback when no dropdown is rendered. Any
// unexpected condition aborts the context, keeping collected rows.
func (e *Engine) advance(ctx context.Context, page *pageState) contextState {
	found, err := e.backend.Lookup(ctx, ControlPageSelect)
	if err != nil {
		log.Printf("❌ Pagination lookup failed: %v", err)
		return stateAborted
	}

	if found {
		return e.advanceByDropdown(ctx, page)
	}
	return e.advanceByButton(ctx, page)
}

func (e *Engine) advanceByDropdown(ctx context.Context, page *pageState) contextState {
	sel, err := e.backend.SelectState(ctx, ControlPageSelect)
	if err != nil {
		log.Printf("❌ Reading page dropdown failed: %v", err)
		return stateAborted
	}
	page.totalPages = sel.Total

	log.Printf("Current page: %d / %d", sel.Current, sel.Total)
	if sel.Current >= sel.Total {
		log.Println("Reached the last page")
		return stateDone
	}

	next := sel.Current + 1
	if err := e.backend.SelectByText(ctx, ControlPageSelect, strconv.Itoa(next)); err != nil {
		log.Printf("❌ Selecting page %d failed: %v", next, err)
		return stateAborted
	}
	if err := e.backend.Settle(ctx); err != nil {
		log.Printf("❌ Settle after selecting page %d failed: %v", next, err)
		return stateAborted
	}

	page.pageIndex = next
	return stateParsingPage
}

func (e *Engine) advanceByButton(ctx context.Context, page *pageState) contextState {
	found, err := e.backend.Lookup(ctx, ControlNext)
	if err != nil {
		log.Printf("❌ Next button lookup failed: %v", err)
		return stateAborted
	}
	if !found {
		log.Println("No next button found, ending pagination")
		return stateDone
	}

	disabled, err := e.backend.Disabled(ctx, ControlNext)
	if err != nil {
		log.Printf("❌ Reading next button state failed: %v", err)
		return stateAborted
	}
	if disabled {
		log.Println("Next button is disabled, ending pagination")
		return stateDone
	}

	if err := e.backend.Click(ctx, ControlNext); err != nil {
		log.Printf("❌ Clicking next button failed: %v", err)
		return stateAborted
	}
	if err := e.backend.Settle(ctx); err != nil {
		log.Printf("❌ Settle after next click failed: %v", err)
		return stateAborted
	}

	page.pageIndex++
	return stateParsingPage
}
