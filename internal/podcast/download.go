package podcast

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/llehouerou/termusic-core/internal/errmsg"
	"github.com/llehouerou/termusic-core/internal/taskpool"
)

// extensionByContentType maps a response content-type to a file
// extension, per spec.md §4.2's table. Unknown or missing content
// types fall back to mp3.
var extensionByContentType = map[string]string{
	"audio/x-m4a":      "m4a",
	"audio/mp4":        "m4a",
	"audio/x-matroska": "mka",
	"audio/flac":       "flac",
	"video/quicktime":  "mov",
	"video/mp4":        "mp4",
	"video/x-m4v":      "m4v",
	"video/x-matroska": "mkv",
	"video/webm":       "webm",
}

const fallbackExtension = "mp3"

func extensionForContentType(contentType string) string {
	ct, _, _ := strings.Cut(contentType, ";")
	ct = strings.TrimSpace(ct)
	if ext, ok := extensionByContentType[ct]; ok {
		return ext
	}
	return fallbackExtension
}

// invalidFilenameChars mirrors the teacher's lyrics cache sanitizer
// (internal/lyrics/source.go's sanitizeFilename): strip characters
// that are illegal on common filesystems rather than pull in a
// third-party sanitizer for a single-regexp job.
var invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

func sanitizeFilename(name string) string {
	name = invalidFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, " .")
	if len(name) > 150 {
		name = name[:150]
	}
	if name == "" {
		name = "_"
	}
	return name
}

// episodeFilename builds the destination filename for an episode
// download: sanitize(title) + "_" + pubdate("YYYYMMDD_HHMMSS")? + ext.
func episodeFilename(title string, pubDate *time.Time, ext string) string {
	name := sanitizeFilename(title)
	if pubDate != nil {
		name += "_" + pubDate.Format("20060102_150405")
	}
	return name + "." + ext
}

// DownloadList enqueues one download task per episode onto the task
// pool. Each task GETs the episode's media URL (retrying up to
// maxRetries times), derives an extension from the response's
// content-type, builds a destination filename, and streams the body
// to disk, emitting DLStart on the bus and then one completion or error
// event; no intermediate progress events are sent.
func (c *Client) DownloadList(pool *taskpool.Pool, episodes []Episode, destDir string, maxRetries int) {
	for _, ep := range episodes {
		ep := ep
		pool.Submit(func() {
			c.downloadOne(ep, destDir, maxRetries)
		})
	}
}

func (c *Client) downloadOne(ep Episode, destDir string, maxRetries int) {
	c.bus.Send(DLStart{EpisodeID: ep.ID, Title: ep.Title})

	var resp *http.Response
	var err error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		resp, err = c.dlClient.Get(ep.MediaURL) //nolint:noctx // retry loop owns the request lifecycle
		if err == nil {
			break
		}
	}
	if err != nil {
		c.bus.Send(DLResponseError{EpisodeID: ep.ID, Err: errmsg.New(errmsg.OpPodcastDownload, errmsg.KindNetwork, err)})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.bus.Send(DLResponseError{
			EpisodeID: ep.ID,
			Err:       errmsg.New(errmsg.OpPodcastDownload, errmsg.KindNetwork, errBadStatus(resp.StatusCode)),
		})
		return
	}

	ext := extensionForContentType(resp.Header.Get("Content-Type"))
	filename := episodeFilename(ep.Title, ep.PubDate, ext)
	destPath := filepath.Join(destDir, filename)

	dst, err := os.Create(destPath) //nolint:gosec // destDir/filename are operator-controlled, not request input
	if err != nil {
		c.bus.Send(DLFileCreateError{EpisodeID: ep.ID, Err: errmsg.New(errmsg.OpPodcastDownload, errmsg.KindIO, err)})
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, resp.Body); err != nil {
		c.bus.Send(DLFileWriteError{EpisodeID: ep.ID, Err: errmsg.New(errmsg.OpPodcastDownload, errmsg.KindIO, err)})
		return
	}

	if err := c.store.SetEpisodeLocalPath(ep.ID, destPath); err != nil {
		c.bus.Send(DLFileWriteError{EpisodeID: ep.ID, Err: err})
		return
	}

	c.bus.Send(DLComplete{EpisodeID: ep.ID, Path: destPath})
}

type errBadStatus int

func (e errBadStatus) Error() string {
	return "unexpected HTTP status " + http.StatusText(int(e))
}
