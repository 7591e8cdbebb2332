// Demo program exercising the module end-to-end: sync a library root,
// query the catalog, refresh the subscribed podcast feeds, and render an
// LRC lyric line at a playback position.
package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/llehouerou/termusic-core/internal/appconfig"
	"github.com/llehouerou/termusic-core/internal/catalog"
	"github.com/llehouerou/termusic-core/internal/events"
	"github.com/llehouerou/termusic-core/internal/lyrics"
	"github.com/llehouerou/termusic-core/internal/podcast"
	"github.com/llehouerou/termusic-core/internal/taskpool"
)

const sampleLRC = `[ar:Demo Artist]
[ti:Demo Track]
[00:00.00]line one
[00:02.50]line two
[00:05.00]line three
`

func main() {
	runID := uuid.NewString()
	log.Printf("termusic-core-demo run %s starting", runID)

	cfg, err := appconfig.Load()
	if err != nil {
		log.Fatalf("appconfig.Load: %v", err)
	}

	cat, err := catalog.Open()
	if err != nil {
		log.Fatalf("catalog.Open: %v", err)
	}
	defer cat.Close()
	cat.SetScanWorkers(cfg.Catalog.ScanWorkersOrDefault())

	for _, src := range cfg.LibrarySources {
		log.Printf("syncing library source %s", src)
		if err := cat.Sync(src); err != nil {
			log.Printf("Warning: sync %s failed: %v", src, err)
			continue
		}
	}

	tracks, err := cat.AllTracks()
	if err != nil {
		log.Fatalf("AllTracks: %v", err)
	}
	log.Printf("catalog holds %d tracks", len(tracks))
	for i, tr := range tracks {
		if i >= 5 {
			log.Printf("  ... %d more", len(tracks)-5)
			break
		}
		log.Printf("  %s - %s (%s)", tr.Artist, tr.Title, tr.Duration)
	}

	runPodcastDemo(cfg)
	runLyricsDemo(cfg)

	log.Printf("termusic-core-demo run %s complete", runID)
}

func runPodcastDemo(cfg *appconfig.Config) {
	store, err := podcast.Open()
	if err != nil {
		log.Printf("Warning: podcast.Open failed: %v", err)
		return
	}
	defer store.Close()

	bus := events.NewBus[podcast.Event](32)
	client := podcast.NewClient(
		store,
		bus,
		time.Duration(cfg.Podcast.FeedTimeoutOrDefault())*time.Second,
		time.Duration(cfg.Podcast.DownloadTimeoutOrDefault())*time.Second,
	)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool := taskpool.New(cfg.Podcast.DownloadWorkersOrDefault())
	defer pool.Close()

	go func() {
		for ev := range bus.Events() {
			logPodcastEvent(ev)
		}
	}()

	feeds, err := store.Feeds()
	if err != nil {
		log.Printf("Warning: Feeds failed: %v", err)
		return
	}
	if len(feeds) == 0 {
		log.Println("no podcast feeds subscribed yet, skipping refresh")
		return
	}

	for _, feed := range feeds {
		pool.Submit(func() {
			client.CheckFeed(ctx, feed, cfg.Podcast.MaxRetriesOrDefault())
		})
	}
}

func logPodcastEvent(ev podcast.Event) {
	switch e := ev.(type) {
	case podcast.NewData:
		log.Printf("podcast: new feed %q with %d episodes", e.Feed.Title, len(e.Episodes))
	case podcast.SyncData:
		log.Printf("podcast: refreshed feed %q, %d episodes", e.Feed.Title, len(e.Episodes))
	case podcast.FeedError:
		log.Printf("Warning: podcast feed %s failed: %v", e.URL, e.Err)
	case podcast.DLComplete:
		info, statErr := os.Stat(e.Path)
		if statErr == nil {
			log.Printf("podcast: downloaded episode %d to %s (%s)", e.EpisodeID, e.Path, humanize.Bytes(uint64(info.Size())))
		} else {
			log.Printf("podcast: downloaded episode %d to %s", e.EpisodeID, e.Path)
		}
	case podcast.DLResponseError:
		log.Printf("Warning: episode %d download failed: %v", e.EpisodeID, e.Err)
	}
}

func runLyricsDemo(cfg *appconfig.Config) {
	lyric, err := lyrics.ParseLRC(strings.NewReader(sampleLRC))
	if err != nil {
		log.Printf("Warning: ParseLRC failed: %v", err)
		return
	}

	opts := lyrics.DefaultOptions()
	if bias := cfg.Lyrics.GetTextBiasMSOrDefault(); bias != 0 {
		opts.GetTextBiasMS = bias
	}

	for _, pos := range []time.Duration{0, 2500 * time.Millisecond, 5 * time.Second} {
		text, ok := lyric.GetText(pos, opts)
		if !ok {
			log.Printf("lyrics: no caption at %s", pos)
			continue
		}
		log.Printf("lyrics: at %s -> %q", pos, text)
	}
}
