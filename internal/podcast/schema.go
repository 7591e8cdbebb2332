package podcast

import "database/sql"

// migrate creates the podcast catalog schema if it does not already
// exist, following the same forward-only, additive-ALTER-TABLE
// discipline as internal/catalog/schema.go.
func migrate(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS podcasts (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	url          TEXT NOT NULL UNIQUE,
	title        TEXT NOT NULL DEFAULT '',
	description  TEXT,
	author       TEXT,
	explicit     INTEGER,
	last_checked INTEGER NOT NULL DEFAULT 0,
	image_url    TEXT
);

CREATE TABLE IF NOT EXISTS episodes (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	podcast_id   INTEGER NOT NULL REFERENCES podcasts(id) ON DELETE CASCADE,
	title        TEXT NOT NULL DEFAULT '',
	media_url    TEXT NOT NULL DEFAULT '',
	guid         TEXT NOT NULL DEFAULT '',
	description  TEXT NOT NULL DEFAULT '',
	pub_date     INTEGER,
	duration_sec INTEGER,
	image_url    TEXT,
	local_path   TEXT,
	played       INTEGER NOT NULL DEFAULT 0,
	UNIQUE(podcast_id, guid)
);

CREATE INDEX IF NOT EXISTS idx_episodes_podcast ON episodes(podcast_id);
`
	if _, err := db.Exec(schema); err != nil {
		return err
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_version").Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion); err != nil {
			return err
		}
	}

	// Additive migrations: each is a no-op against a schema that already
	// has the column.
	migrations := []string{
		// none yet beyond the baseline CREATE TABLE above.
	}
	for _, stmt := range migrations {
		_, _ = db.Exec(stmt)
	}

	return nil
}

const currentSchemaVersion = 1
