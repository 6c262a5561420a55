package transform

import (
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/fortuna/courtside/internal/extract"
	"github.com/fortuna/courtside/internal/store"
)

// dateLayouts are the game-date renderings observed on the stats site.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"Jan 2, 2006",
	"Jan 02, 2006",
	"01/02/06",
}

var abbreviationPattern = regexp.MustCompile(`^[A-Z]{2,3}$`)

// Process normalizes raw extracted records into rows ready for persistence:
// dates to ISO form, team names to standard abbreviations, names trimmed.
// Records are never dropped here; unnormalizable values pass through raw.
func Process(records []extract.BoxScoreRecord) []store.BoxScore {
	rows := make([]store.BoxScore, 0, len(records))

	for _, r := range records {
		rows = append(rows, store.BoxScore{
			GameDate:   normalizeDate(r.GameDate),
			PlayerName: strings.TrimSpace(r.PlayerName),
			Team:       normalizeTeam(r.Team),
			Opponent:   normalizeTeam(r.Opponent),
			Points:     r.Points,
			Rebounds:   r.Rebounds,
			Assists:    r.Assists,
		})
	}

	log.Printf("✓ Transformed %d records", len(rows))
	return rows
}

// normalizeDate renders the date as YYYY-MM-DD. Unrecognized formats are
// kept verbatim so the record survives to the load stage.
func normalizeDate(raw string) string {
	text := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, text); err == nil {
			return parsed.Format("2006-01-02")
		}
	}
	if text != raw {
		return text
	}
	log.Printf("⚠️  Unrecognized game date format: %q", raw)
	return raw
}

// normalizeTeam maps a team cell to its standard abbreviation. Cells that
// already look like abbreviations pass through unchanged.
func normalizeTeam(raw string) string {
	text := strings.TrimSpace(raw)
	if abbreviationPattern.MatchString(text) {
		return text
	}

	lower := strings.ToLower(text)
	if abbr, ok := teamAbbreviations[lower]; ok {
		return abbr
	}
	for name, abbr := range teamAbbreviations {
		if strings.Contains(lower, name) {
			return abbr
		}
	}

	return text
}

// teamAbbreviations maps franchise nicknames to standard abbreviations.
var teamAbbreviations = map[string]string{
	"lakers":       "LAL",
	"celtics":      "BOS",
	"warriors":     "GSW",
	"nets":         "BKN",
	"knicks":       "NYK",
	"heat":         "MIA",
	"bucks":        "MIL",
	"bulls":        "CHI",
	"cavaliers":    "CLE",
	"mavericks":    "DAL",
	"nuggets":      "DEN",
	"rockets":      "HOU",
	"clippers":     "LAC",
	"grizzlies":    "MEM",
	"timberwolves": "MIN",
	"pelicans":     "NOP",
	"thunder":      "OKC",
	"magic":        "ORL",
	"76ers":        "PHI",
	"suns":         "PHX",
	"blazers":      "POR",
	"kings":        "SAC",
	"spurs":        "SAS",
	"raptors":      "TOR",
	"jazz":         "UTA",
	"wizards":      "WAS",
	"hawks":        "ATL",
	"hornets":      "CHA",
	"pistons":      "DET",
	"pacers":       "IND",
}
