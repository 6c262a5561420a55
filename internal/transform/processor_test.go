package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/courtside/internal/extract"
)

func TestProcessNormalizesDates(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"2024-01-10", "2024-01-10"},
		{"01/10/2024", "2024-01-10"},
		{"Jan 10, 2024", "2024-01-10"},
		{"  2024-01-10  ", "2024-01-10"},
		{"yesterday", "yesterday"}, // unrecognized formats pass through
	}

	for _, tc := range cases {
		rows := Process([]extract.BoxScoreRecord{{GameDate: tc.raw, PlayerName: "J. Doe"}})
		require.Len(t, rows, 1)
		assert.Equal(t, tc.want, rows[0].GameDate, "raw date %q", tc.raw)
	}
}

func TestProcessNormalizesTeams(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"LAL", "LAL"},
		{"Los Angeles Lakers", "LAL"},
		{"Celtics", "BOS"},
		{"timberwolves", "MIN"},
		{"Unknown Hoopers", "Unknown Hoopers"},
	}

	for _, tc := range cases {
		rows := Process([]extract.BoxScoreRecord{{Team: tc.raw, Opponent: tc.raw}})
		require.Len(t, rows, 1)
		assert.Equal(t, tc.want, rows[0].Team, "raw team %q", tc.raw)
		assert.Equal(t, tc.want, rows[0].Opponent, "raw opponent %q", tc.raw)
	}
}

func TestProcessKeepsEveryRecord(t *testing.T) {
	records := []extract.BoxScoreRecord{
		{GameDate: "2024-01-10", PlayerName: "J. Doe", Team: "LAL", Opponent: "BOS", Points: 31, Rebounds: 7, Assists: 4},
		{GameDate: "???", PlayerName: " A. Smith ", Team: "???", Opponent: "???"},
	}

	rows := Process(records)
	require.Len(t, rows, 2)
	assert.Equal(t, 31, rows[0].Points)
	assert.Equal(t, "A. Smith", rows[1].PlayerName)
}

func TestProcessEmptyInput(t *testing.T) {
	assert.Empty(t, Process(nil))
}
