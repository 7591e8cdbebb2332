package podcast

import (
	"context"
	"io"

	"github.com/llehouerou/termusic-core/internal/taskpool"
)

// SubscribeOPML parses an OPML document, de-duplicates the feeds it
// names against the store's existing catalog by URL, enqueues one
// check_feed task per new feed onto pool, and waits for exactly
// len(new_feeds) reply events before returning them, per spec.md §4.2.
// Each task also reports on the bus CheckFeed normally uses, so the UI
// sees FetchStart/NewData/FeedError for these feeds as usual.
func (c *Client) SubscribeOPML(ctx context.Context, r io.Reader, pool *taskpool.Pool, maxRetries int) ([]Event, error) {
	imported, err := ImportOPML(r)
	if err != nil {
		return nil, err
	}

	existing, err := c.store.Feeds()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(existing))
	for _, f := range existing {
		seen[f.URL] = true
	}

	newFeeds := make([]ImportFeed, 0, len(imported))
	for _, f := range imported {
		if !seen[f.URL] {
			newFeeds = append(newFeeds, f)
		}
	}
	if len(newFeeds) == 0 {
		return nil, nil
	}

	reply := make(chan Event, len(newFeeds))
	for _, nf := range newFeeds {
		nf := nf
		pool.Submit(func() {
			c.bus.Send(FetchStart{URL: nf.URL})
			event := c.checkFeed(ctx, Feed{URL: nf.URL, Title: nf.Title}, maxRetries)
			c.bus.Send(event)
			reply <- event
		})
	}

	results := make([]Event, 0, len(newFeeds))
	for range newFeeds {
		results = append(results, <-reply)
	}
	return results, nil
}
