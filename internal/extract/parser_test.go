package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePageNoTable(t *testing.T) {
	records, found := parsePage("<html><body><p>loading...</p></body></html>")
	assert.False(t, found)
	assert.Empty(t, records)
}

func TestParsePageSkipsHeaderRow(t *testing.T) {
	records, found := parsePage(tablePage(
		row("2024-01-10", "J. Doe", "LAL", "BOS", "31", "7", "4"),
	))
	require.True(t, found)
	require.Len(t, records, 1)
	assert.Equal(t, "J. Doe", records[0].PlayerName)
}

func TestParsePageEmptyStatDefaultsToZero(t *testing.T) {
	records, found := parsePage(tablePage(
		row("2024-01-10", "J. Doe", "LAL", "BOS", "", "7", "4"),
	))
	require.True(t, found)
	require.Len(t, records, 1)
	assert.Equal(t, 0, records[0].Points)
	assert.Equal(t, 7, records[0].Rebounds)
	assert.Equal(t, 4, records[0].Assists)
}

func TestParsePageWhitespaceOnlyStatDefaultsToZero(t *testing.T) {
	records, found := parsePage(tablePage(
		row("2024-01-10", "J. Doe", "LAL", "BOS", "  ", "7", "4"),
	))
	require.True(t, found)
	require.Len(t, records, 1)
	assert.Equal(t, 0, records[0].Points)
}

func TestParsePageNonNumericStatDropsRow(t *testing.T) {
	records, found := parsePage(tablePage(
		row("2024-01-10", "J. Doe", "LAL", "BOS", "abc", "7", "4"),
		row("2024-01-10", "A. Smith", "BOS", "LAL", "22", "11", "2"),
	))
	require.True(t, found)
	require.Len(t, records, 1, "the malformed row must be dropped, not coerced")
	assert.Equal(t, "A. Smith", records[0].PlayerName)
}

func TestParsePageMissingCellsDropsRow(t *testing.T) {
	records, found := parsePage(tablePage(
		[]string{"2024-01-10", "J. Doe", "LAL"},
		row("2024-01-10", "A. Smith", "BOS", "LAL", "22", "11", "2"),
	))
	require.True(t, found)
	require.Len(t, records, 1)
	assert.Equal(t, "A. Smith", records[0].PlayerName)
}

func TestParsePageIgnoresCellFreeRows(t *testing.T) {
	markup := `<html><body><table>
		<tr><th>DATE</th><th>PLAYER</th><th>TEAM</th><th>OPP</th><th>PTS</th><th>REB</th><th>AST</th></tr>
		<tr><th colspan="7">mid-table section header</th></tr>
		<tr><td>2024-01-10</td><td>J. Doe</td><td>LAL</td><td>BOS</td><td>31</td><td>7</td><td>4</td></tr>
	</table></body></html>`

	records, found := parsePage(markup)
	require.True(t, found)
	require.Len(t, records, 1)
}

func TestParsePageTrimsCellText(t *testing.T) {
	records, found := parsePage(tablePage(
		row("  2024-01-10  ", "  J. Doe ", " LAL ", " BOS ", " 31 ", " 7 ", " 4 "),
	))
	require.True(t, found)
	require.Len(t, records, 1)
	assert.Equal(t, "2024-01-10", records[0].GameDate)
	assert.Equal(t, "J. Doe", records[0].PlayerName)
	assert.Equal(t, 31, records[0].Points)
}

func TestParsePageIsIdempotent(t *testing.T) {
	markup := tablePage(
		row("2024-01-10", "J. Doe", "LAL", "BOS", "31", "7", "4"),
		row("2024-01-10", "A. Smith", "BOS", "LAL", "", "11", "2"),
	)

	first, foundFirst := parsePage(markup)
	second, foundSecond := parsePage(markup)

	assert.Equal(t, foundFirst, foundSecond)
	assert.Equal(t, first, second)
}
