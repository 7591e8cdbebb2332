package catalog

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/llehouerou/termusic-core/internal/db"
	"github.com/llehouerou/termusic-core/internal/errmsg"
	"github.com/llehouerou/termusic-core/internal/mediatype"
)

const numWorkers = 8

type scanJob struct {
	path    string
	modTime int64
}

type scanResult struct {
	job  scanJob
	meta mediatype.Metadata
	err  error
}

// Sync walks root, indexing every supported audio file it finds and
// removing catalog entries under root whose file no longer exists. It is
// meant to be run in its own goroutine by the caller; reading tag metadata
// for changed files is itself fanned out across a small worker pool, and
// the whole sync commits as one transaction.
func (c *Catalog) Sync(root string) error {
	root = filepath.Clean(root)

	existing, err := c.existingUnderRoot(root)
	if err != nil {
		return errmsg.New(errmsg.OpCatalogSync, errmsg.KindCatalog, err)
	}

	workerCount := c.scanWorkers
	if workerCount <= 0 {
		workerCount = numWorkers
	}

	jobs := make(chan scanJob, workerCount*2)
	results := make(chan scanResult, workerCount*2)

	var workers sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		workers.Add(1)
		go func() {
			defer workers.Done()
			for job := range jobs {
				meta, readErr := mediatype.Read(job.path)
				results <- scanResult{job: job, meta: meta, err: readErr}
			}
		}()
	}
	go func() {
		workers.Wait()
		close(results)
	}()

	seen := make(map[string]bool, len(existing))
	go func() {
		defer close(jobs)
		_ = filepath.WalkDir(root, func(path string, d os.DirEntry, walkErr error) error {
			if walkErr != nil {
				return nil //nolint:nilerr // skip unreadable entries, keep walking
			}
			if d.IsDir() {
				return nil
			}
			if !mediatype.IsSupported(path) {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return nil //nolint:nilerr // skip files we can't stat
			}
			mtime := info.ModTime().Unix()
			seen[path] = true
			if prev, ok := existing[path]; ok && prev >= mtime {
				return nil
			}
			jobs <- scanJob{path: path, modTime: mtime}
			return nil
		})
	}()

	var changed []scanResult
	for res := range results {
		if res.err != nil {
			continue // unreadable tags: skip this file, keep scanning
		}
		changed = append(changed, res)
	}

	var removed []string
	for path := range existing {
		if !seen[path] {
			removed = append(removed, path)
		}
	}

	if len(changed) == 0 && len(removed) == 0 {
		return nil
	}

	err = db.WithTx(c.db, func(tx *sql.Tx) error {
		for _, res := range changed {
			if _, execErr := tx.Exec(
				`INSERT INTO tracks (file, name, title, artist, album, genre, duration_ms, last_modified, last_position)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0)
				 ON CONFLICT(file) DO UPDATE SET
				   name=excluded.name, title=excluded.title, artist=excluded.artist,
				   album=excluded.album, genre=excluded.genre, last_modified=excluded.last_modified`,
				res.job.path, fileStem(res.job.path), res.meta.Title, res.meta.Artist,
				res.meta.Album, res.meta.Genre, 0, res.job.modTime,
			); execErr != nil {
				return execErr
			}
			if execErr := upsertFTS(tx, res.job.path, res.meta.Title, res.meta.Artist, res.meta.Album, res.meta.Genre); execErr != nil {
				return execErr
			}
		}
		for _, path := range removed {
			if _, execErr := tx.Exec("DELETE FROM tracks WHERE file = ?", path); execErr != nil {
				return execErr
			}
			if execErr := deleteFTS(tx, path); execErr != nil {
				return execErr
			}
		}
		return nil
	})
	if err != nil {
		return errmsg.New(errmsg.OpCatalogSync, errmsg.KindCatalog, err)
	}
	return nil
}

// existingUnderRoot returns the last_modified of every catalog track whose
// path is nested under root, keyed by path.
func (c *Catalog) existingUnderRoot(root string) (map[string]int64, error) {
	prefix := root
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	rows, err := c.db.Query("SELECT file, last_modified FROM tracks WHERE file LIKE ?", prefix+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	existing := make(map[string]int64)
	for rows.Next() {
		var path string
		var mtime int64
		if err := rows.Scan(&path, &mtime); err != nil {
			return nil, err
		}
		existing[path] = mtime
	}
	return existing, rows.Err()
}

func fileStem(path string) string {
	base := filepath.Base(path)
	if ext := filepath.Ext(base); ext != "" {
		base = base[:len(base)-len(ext)]
	}
	return base
}
