package store

// migration is one versioned schema change. Migrations are embedded so the
// binary is self-contained in containers.
type migration struct {
	version string
	sql     string
}

var migrations = []migration{
	{
		version: "001_create_box_scores.sql",
		sql: `
			CREATE TABLE IF NOT EXISTS box_scores (
				box_score_id BIGSERIAL PRIMARY KEY,
				game_date    TEXT NOT NULL,
				player_name  TEXT NOT NULL,
				team         TEXT NOT NULL,
				opponent     TEXT NOT NULL,
				points       INTEGER NOT NULL DEFAULT 0,
				rebounds     INTEGER NOT NULL DEFAULT 0,
				assists      INTEGER NOT NULL DEFAULT 0,
				created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				UNIQUE (game_date, player_name, team)
			);
			CREATE INDEX IF NOT EXISTS idx_box_scores_player ON box_scores (player_name);
			CREATE INDEX IF NOT EXISTS idx_box_scores_date ON box_scores (game_date);
		`,
	},
	{
		version: "002_create_scrape_runs.sql",
		sql: `
			CREATE TABLE IF NOT EXISTS scrape_runs (
				run_id         TEXT PRIMARY KEY,
				seasons        TEXT NOT NULL,
				season_type    TEXT NOT NULL,
				status         TEXT NOT NULL,
				status_message TEXT,
				records_total  INTEGER NOT NULL DEFAULT 0,
				last_error     TEXT,
				created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				started_at     TIMESTAMPTZ,
				completed_at   TIMESTAMPTZ
			);
			CREATE INDEX IF NOT EXISTS idx_scrape_runs_created ON scrape_runs (created_at DESC);
		`,
	},
}
