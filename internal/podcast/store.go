// Package podcast subscribes to RSS feeds, mirrors their episode lists
// into a SQLite-backed catalog, and downloads episode media to disk
// through a bounded task pool, reporting progress and errors on an
// events.Bus.
package podcast

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // sqlite driver

	"github.com/llehouerou/termusic-core/internal/db"
	"github.com/llehouerou/termusic-core/internal/errmsg"
)

const dbFileName = "podcasts.db"

// Feed is a row in the podcast catalog: one subscribed RSS feed.
type Feed struct {
	ID          int64
	URL         string
	Title       string
	Description *string
	Author      *string
	Explicit    *bool
	LastChecked time.Time
	ImageURL    *string
}

// Episode is a row in the episode catalog, owned by a Feed.
type Episode struct {
	ID          int64
	PodcastID   int64
	Title       string
	MediaURL    string
	GUID        string
	Description string
	PubDate     *time.Time
	Duration    *time.Duration
	ImageURL    *string
	LocalPath   *string
	Played      bool
}

// Store manages the podcast/episode database.
type Store struct {
	db *sql.DB
}

// New wraps an already-open, already-migrated database connection.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open opens (creating if necessary) the podcast database under the
// xdg data directory, configures it for concurrent access, and runs
// migrations.
func Open() (*Store, error) {
	dbPath, err := xdg.DataFile(filepath.Join("termusic-core", dbFileName))
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}

	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := sqlDB.Exec(p); err != nil {
			sqlDB.Close()
			return nil, err
		}
	}

	if err := migrate(sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return &Store{db: sqlDB}, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// FeedByURL looks up a feed by its unique URL. Returns a not-found
// error when absent.
func (s *Store) FeedByURL(url string) (*Feed, error) {
	row := s.db.QueryRow(
		`SELECT id, url, title, description, author, explicit, last_checked, image_url
		 FROM podcasts WHERE url = ?`, url)
	f, err := scanFeed(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errmsg.New(errmsg.OpPodcastCheck, errmsg.KindNotFound, err)
		}
		return nil, errmsg.New(errmsg.OpPodcastCheck, errmsg.KindCatalog, err)
	}
	return f, nil
}

// FeedByID looks up a feed by its catalog id.
func (s *Store) FeedByID(id int64) (*Feed, error) {
	row := s.db.QueryRow(
		`SELECT id, url, title, description, author, explicit, last_checked, image_url
		 FROM podcasts WHERE id = ?`, id)
	f, err := scanFeed(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errmsg.New(errmsg.OpPodcastCheck, errmsg.KindNotFound, err)
		}
		return nil, errmsg.New(errmsg.OpPodcastCheck, errmsg.KindCatalog, err)
	}
	return f, nil
}

// Feeds returns every subscribed feed, ordered by title.
func (s *Store) Feeds() ([]Feed, error) {
	rows, err := s.db.Query(
		`SELECT id, url, title, description, author, explicit, last_checked, image_url
		 FROM podcasts ORDER BY title`)
	if err != nil {
		return nil, errmsg.New(errmsg.OpPodcastCheck, errmsg.KindCatalog, err)
	}
	defer rows.Close()

	var feeds []Feed
	for rows.Next() {
		f, err := scanFeed(rows)
		if err != nil {
			return nil, errmsg.New(errmsg.OpPodcastCheck, errmsg.KindCatalog, err)
		}
		feeds = append(feeds, *f)
	}
	return feeds, rows.Err()
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanFeed(r rowScanner) (*Feed, error) {
	var f Feed
	var description, author, imageURL sql.NullString
	var explicit sql.NullBool
	var lastChecked int64
	if err := r.Scan(&f.ID, &f.URL, &f.Title, &description, &author, &explicit, &lastChecked, &imageURL); err != nil {
		return nil, err
	}
	if description.Valid {
		f.Description = &description.String
	}
	if author.Valid {
		f.Author = &author.String
	}
	if explicit.Valid {
		f.Explicit = &explicit.Bool
	}
	if imageURL.Valid {
		f.ImageURL = &imageURL.String
	}
	f.LastChecked = time.Unix(lastChecked, 0)
	return &f, nil
}

// UpsertFeed inserts f, or updates in place the row with the same URL,
// and returns its id. The row is matched by URL only; a set f.ID does not
// select the row and is returned as is.
func (s *Store) UpsertFeed(f Feed) (int64, error) {
	var explicit sql.NullBool
	if f.Explicit != nil {
		explicit = sql.NullBool{Bool: *f.Explicit, Valid: true}
	}

	_, err := s.db.Exec(
		`INSERT INTO podcasts (url, title, description, author, explicit, last_checked, image_url)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(url) DO UPDATE SET
		   title=excluded.title, description=excluded.description, author=excluded.author,
		   explicit=excluded.explicit, last_checked=excluded.last_checked, image_url=excluded.image_url`,
		f.URL, f.Title, nullableString(f.Description), nullableString(f.Author),
		explicit, f.LastChecked.Unix(), nullableString(f.ImageURL),
	)
	if err != nil {
		return 0, errmsg.New(errmsg.OpPodcastAddFeed, errmsg.KindCatalog, err)
	}
	if f.ID != 0 {
		return f.ID, nil
	}
	// ON CONFLICT DO UPDATE leaves last_insert_rowid() unchanged on the
	// update path (only a true INSERT bumps it), so the authoritative id
	// is always a lookup by the unique URL rather than the Result.
	existing, err := s.FeedByURL(f.URL)
	if err != nil {
		return 0, errmsg.New(errmsg.OpPodcastAddFeed, errmsg.KindCatalog, err)
	}
	return existing.ID, nil
}

// DeleteFeed removes a feed and cascades to its episodes.
func (s *Store) DeleteFeed(id int64) error {
	if _, err := s.db.Exec("DELETE FROM podcasts WHERE id = ?", id); err != nil {
		return errmsg.New(errmsg.OpPodcastRemove, errmsg.KindCatalog, err)
	}
	return nil
}

// UpsertEpisodes inserts or updates episodes for podcastID inside a
// single transaction, keyed on the (podcast_id, guid) unique pair.
func (s *Store) UpsertEpisodes(podcastID int64, episodes []Episode) error {
	if len(episodes) == 0 {
		return nil
	}
	err := db.WithTx(s.db, func(tx *sql.Tx) error {
		for _, ep := range episodes {
			var pubDate sql.NullInt64
			if ep.PubDate != nil {
				pubDate = sql.NullInt64{Int64: ep.PubDate.Unix(), Valid: true}
			}
			var durationSec sql.NullInt64
			if ep.Duration != nil {
				durationSec = sql.NullInt64{Int64: int64(ep.Duration.Seconds()), Valid: true}
			}
			if _, err := tx.Exec(
				`INSERT INTO episodes (podcast_id, title, media_url, guid, description, pub_date, duration_sec, image_url)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
				 ON CONFLICT(podcast_id, guid) DO UPDATE SET
				   title=excluded.title, media_url=excluded.media_url, description=excluded.description,
				   pub_date=excluded.pub_date, duration_sec=excluded.duration_sec, image_url=excluded.image_url`,
				podcastID, ep.Title, ep.MediaURL, ep.GUID, ep.Description,
				pubDate, durationSec, nullableString(ep.ImageURL),
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errmsg.New(errmsg.OpPodcastCheck, errmsg.KindCatalog, err)
	}
	return nil
}

// Episodes returns every episode owned by podcastID, newest first.
func (s *Store) Episodes(podcastID int64) ([]Episode, error) {
	rows, err := s.db.Query(
		`SELECT id, podcast_id, title, media_url, guid, description, pub_date, duration_sec, image_url, local_path, played
		 FROM episodes WHERE podcast_id = ? ORDER BY pub_date DESC`, podcastID)
	if err != nil {
		return nil, errmsg.New(errmsg.OpPodcastCheck, errmsg.KindCatalog, err)
	}
	defer rows.Close()

	var episodes []Episode
	for rows.Next() {
		ep, err := scanEpisode(rows)
		if err != nil {
			return nil, errmsg.New(errmsg.OpPodcastCheck, errmsg.KindCatalog, err)
		}
		episodes = append(episodes, *ep)
	}
	return episodes, rows.Err()
}

// EpisodeByID looks up a single episode by its catalog id.
func (s *Store) EpisodeByID(id int64) (*Episode, error) {
	row := s.db.QueryRow(
		`SELECT id, podcast_id, title, media_url, guid, description, pub_date, duration_sec, image_url, local_path, played
		 FROM episodes WHERE id = ?`, id)
	ep, err := scanEpisode(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errmsg.New(errmsg.OpPodcastCheck, errmsg.KindNotFound, err)
		}
		return nil, errmsg.New(errmsg.OpPodcastCheck, errmsg.KindCatalog, err)
	}
	return ep, nil
}

func scanEpisode(r rowScanner) (*Episode, error) {
	var ep Episode
	var imageURL, localPath sql.NullString
	var pubDate, durationSec sql.NullInt64
	var played int
	if err := r.Scan(&ep.ID, &ep.PodcastID, &ep.Title, &ep.MediaURL, &ep.GUID, &ep.Description,
		&pubDate, &durationSec, &imageURL, &localPath, &played); err != nil {
		return nil, err
	}
	if pubDate.Valid {
		t := time.Unix(pubDate.Int64, 0)
		ep.PubDate = &t
	}
	if durationSec.Valid {
		d := time.Duration(durationSec.Int64) * time.Second
		ep.Duration = &d
	}
	if imageURL.Valid {
		ep.ImageURL = &imageURL.String
	}
	if localPath.Valid {
		ep.LocalPath = &localPath.String
	}
	ep.Played = played != 0
	return &ep, nil
}

// SetEpisodeLocalPath records that an episode's media now lives at
// path on disk, confirming a successful download.
func (s *Store) SetEpisodeLocalPath(id int64, path string) error {
	if _, err := s.db.Exec("UPDATE episodes SET local_path = ? WHERE id = ?", path, id); err != nil {
		return errmsg.New(errmsg.OpPodcastDownload, errmsg.KindCatalog, err)
	}
	return nil
}

// SetEpisodePlayed marks an episode played or unplayed.
func (s *Store) SetEpisodePlayed(id int64, played bool) error {
	if _, err := s.db.Exec("UPDATE episodes SET played = ? WHERE id = ?", played, id); err != nil {
		return errmsg.New(errmsg.OpPodcastCheck, errmsg.KindCatalog, err)
	}
	return nil
}

func nullableString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
