package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(seasons ...string) Config {
	return Config{
		TargetURL:  "https://stats.example.com/players/boxscores",
		Seasons:    seasons,
		SeasonType: "Regular Season",
	}
}

func TestEngineDropdownPagination(t *testing.T) {
	backend := newFakeBackend(
		tablePage(
			row("2024-01-10", "J. Doe", "LAL", "BOS", "31", "7", "4"),
			row("2024-01-10", "A. Smith", "BOS", "LAL", "22", "11", "2"),
			row("2024-01-10", "B. Jones", "LAL", "BOS", "18", "3", "9"),
		),
		tablePage(
			row("2024-01-09", "C. Brown", "GSW", "PHX", "27", "5", "6"),
			row("2024-01-09", "D. White", "PHX", "GSW", "14", "8", "3"),
		),
	)
	backend.hasDropdown = true

	records, err := NewEngine(backend).Run(context.Background(), testConfig("2024-25"))
	require.NoError(t, err)

	require.Len(t, records, 5)
	assert.Equal(t, 2, backend.pageReads, "each page should be parsed exactly once")

	// Page-then-row order is preserved.
	assert.Equal(t, "J. Doe", records[0].PlayerName)
	assert.Equal(t, "B. Jones", records[2].PlayerName)
	assert.Equal(t, "C. Brown", records[3].PlayerName)
	assert.Equal(t, "D. White", records[4].PlayerName)

	assert.Equal(t, BoxScoreRecord{
		GameDate:   "2024-01-10",
		PlayerName: "J. Doe",
		Team:       "LAL",
		Opponent:   "BOS",
		Points:     31,
		Rebounds:   7,
		Assists:    4,
	}, records[0])
}

func TestEngineDropdownVisitsEveryPageOnce(t *testing.T) {
	pages := make([]string, 4)
	for i := range pages {
		pages[i] = tablePage(row("2024-01-10", "J. Doe", "LAL", "BOS", "10", "2", "1"))
	}
	backend := newFakeBackend(pages...)
	backend.hasDropdown = true

	records, err := NewEngine(backend).Run(context.Background(), testConfig("2024-25"))
	require.NoError(t, err)

	assert.Len(t, records, 4)
	assert.Equal(t, 4, backend.pageReads)
}

func TestEngineButtonFallback(t *testing.T) {
	backend := newFakeBackend(
		tablePage(row("2024-01-10", "J. Doe", "LAL", "BOS", "31", "7", "4")),
		tablePage(row("2024-01-09", "C. Brown", "GSW", "PHX", "27", "5", "6")),
	)
	backend.hasNext = true

	records, err := NewEngine(backend).Run(context.Background(), testConfig("2024-25"))
	require.NoError(t, err)

	assert.Len(t, records, 2)
	assert.Equal(t, 2, backend.pageReads, "no page skipped, no page revisited")
}

func TestEngineButtonDisabledEndsAfterCurrentPage(t *testing.T) {
	backend := newFakeBackend(
		tablePage(row("2024-01-10", "J. Doe", "LAL", "BOS", "31", "7", "4")),
	)
	backend.hasNext = true
	backend.nextDisabled = true

	records, err := NewEngine(backend).Run(context.Background(), testConfig("2024-25"))
	require.NoError(t, err)

	assert.Len(t, records, 1)
	assert.Equal(t, 1, backend.pageReads)
}

func TestEngineNoPaginationControlsIsDone(t *testing.T) {
	backend := newFakeBackend(
		tablePage(row("2024-01-10", "J. Doe", "LAL", "BOS", "31", "7", "4")),
	)

	records, err := NewEngine(backend).Run(context.Background(), testConfig("2024-25"))
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestEngineNoTableIsDoneWithZeroRows(t *testing.T) {
	backend := newFakeBackend("<html><body><div>nothing here</div></body></html>")

	records, err := NewEngine(backend).Run(context.Background(), testConfig("2024-25"))
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, 1, backend.pageReads)
}

func TestEngineInterceptedClickAbortsContextKeepsRows(t *testing.T) {
	backend := newFakeBackend(
		tablePage(row("2024-01-10", "J. Doe", "LAL", "BOS", "31", "7", "4")),
		tablePage(row("2024-01-09", "C. Brown", "GSW", "PHX", "27", "5", "6")),
	)
	backend.hasNext = true
	backend.clickErr = errors.New("click intercepted by overlay")

	records, err := NewEngine(backend).Run(context.Background(), testConfig("2024-25"))
	require.NoError(t, err)

	// The first page was already collected before the abort.
	assert.Len(t, records, 1)
	assert.Equal(t, 1, backend.pageReads)
}

func TestEngineAttemptsEverySeason(t *testing.T) {
	backend := newFakeBackend(
		tablePage(row("2024-01-10", "J. Doe", "LAL", "BOS", "31", "7", "4")),
	)

	records, err := NewEngine(backend).Run(context.Background(), testConfig("2022-23", "2023-24", "2024-25"))
	require.NoError(t, err)

	// One single-page context per season, three seasons.
	assert.Len(t, records, 3)
	assert.Equal(t, 3, backend.pageReads)
	assert.Contains(t, backend.selections, "season=2022-23")
	assert.Contains(t, backend.selections, "season=2023-24")
	assert.Contains(t, backend.selections, "season=2024-25")
}

func TestEngineMissingSeasonControlSkipsAllSeasons(t *testing.T) {
	backend := newFakeBackend(
		tablePage(row("2024-01-10", "J. Doe", "LAL", "BOS", "31", "7", "4")),
	)
	backend.hasSeason = false

	records, err := NewEngine(backend).Run(context.Background(), testConfig("2023-24", "2024-25"))
	require.NoError(t, err)

	assert.Empty(t, records)
	assert.Zero(t, backend.pageReads, "no page should be parsed when the season control is absent")
}

func TestEngineSelectionFailureSkipsSeasonOnly(t *testing.T) {
	backend := newFakeBackend(
		tablePage(row("2024-01-10", "J. Doe", "LAL", "BOS", "31", "7", "4")),
	)
	backend.seasonErr = errors.New("stale element reference")

	records, err := NewEngine(backend).Run(context.Background(), testConfig("2024-25"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestEngineCancelledContextReturnsCollected(t *testing.T) {
	backend := newFakeBackend(
		tablePage(row("2024-01-10", "J. Doe", "LAL", "BOS", "31", "7", "4")),
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records, err := NewEngine(backend).Run(ctx, testConfig("2024-25"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, records)
}
