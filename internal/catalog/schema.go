package catalog

import "database/sql"

// migrate creates the catalog schema if it does not already exist and
// applies any additive changes introduced by later versions of this
// package. Each ALTER TABLE below is best-effort: it fails silently when
// the column already exists, which is how a database created by an older
// version of the schema picks up new columns without a version check.
func migrate(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS tracks (
	file          TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	title         TEXT NOT NULL DEFAULT '',
	artist        TEXT NOT NULL DEFAULT '',
	album         TEXT NOT NULL DEFAULT '',
	genre         TEXT NOT NULL DEFAULT '',
	duration_ms   INTEGER NOT NULL DEFAULT 0,
	last_modified INTEGER NOT NULL DEFAULT 0,
	last_position INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_tracks_artist ON tracks(artist);
CREATE INDEX IF NOT EXISTS idx_tracks_album ON tracks(album);
CREATE INDEX IF NOT EXISTS idx_tracks_genre ON tracks(genre);

CREATE TABLE IF NOT EXISTS sources (
	path     TEXT PRIMARY KEY,
	added_at INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS playlist_members (
	playlist TEXT NOT NULL,
	position INTEGER NOT NULL,
	path     TEXT NOT NULL,
	PRIMARY KEY (playlist, position)
);

CREATE VIRTUAL TABLE IF NOT EXISTS track_search_fts USING fts5(
	file UNINDEXED,
	title,
	artist,
	album,
	genre,
	tokenize='trigram'
);
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
	// has the column. Kept as a growing, append-only list so older
	// databases pick up new columns without a version-gated path.
	migrations := []string{
		// none yet beyond the baseline CREATE TABLE above.
	}
	for _, stmt := range migrations {
		_, _ = db.Exec(stmt)
	}

	return nil
}

const currentSchemaVersion = 1
