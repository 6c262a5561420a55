package extract

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Column positions within a box-score table row. The header row is skipped
// by position, so a layout change in the header silently shifts these.
const (
	colGameDate = iota
	colPlayerName
	colTeam
	colOpponent
	colPoints
	colRebounds
	colAssists
	columnCount
)

// parsePage extracts box-score rows from rendered markup. The second return
// is false when no results table exists in the markup at all.
func parsePage(markup string) ([]BoxScoreRecord, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		log.Printf("⚠️  Failed to parse page markup: %v", err)
		return nil, false
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, false
	}

	var records []BoxScoreRecord
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return // header row
		}

		cells := row.Find("td")
		if cells.Length() == 0 {
			return
		}

		record, err := parseRow(cells)
		if err != nil {
			log.Printf("⚠️  Dropping row: %v", err)
			return
		}
		records = append(records, record)
	})

	return records, true
}

func parseRow(cells *goquery.Selection) (BoxScoreRecord, error) {
	if cells.Length() < columnCount {
		return BoxScoreRecord{}, fmt.Errorf("expected %d cells, got %d", columnCount, cells.Length())
	}

	text := func(col int) string {
		return strings.TrimSpace(cells.Eq(col).Text())
	}

	points, err := parseStat(text(colPoints))
	if err != nil {
		return BoxScoreRecord{}, fmt.Errorf("points: %w", err)
	}
	rebounds, err := parseStat(text(colRebounds))
	if err != nil {
		return BoxScoreRecord{}, fmt.Errorf("rebounds: %w", err)
	}
	assists, err := parseStat(text(colAssists))
	if err != nil {
		return BoxScoreRecord{}, fmt.Errorf("assists: %w", err)
	}

	return BoxScoreRecord{
		GameDate:   text(colGameDate),
		PlayerName: text(colPlayerName),
		Team:       text(colTeam),
		Opponent:   text(colOpponent),
		Points:     points,
		Rebounds:   rebounds,
		Assists:    assists,
	}, nil
}

// parseStat converts a trimmed numeric cell. An empty cell means the stat
// was not recorded and defaults to zero; non-empty non-numeric text is a
// parse failure that drops the whole row.
func parseStat(text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("non-numeric value %q", text)
	}
	return n, nil
}
