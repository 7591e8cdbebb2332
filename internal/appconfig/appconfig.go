// Package appconfig loads this module's own operational tunables from a
// TOML file, the way the teacher's config package loads its (much larger)
// application config.
package appconfig

import (
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds the tunables this module's own components read: catalog
// scanning, podcast network behavior, and lyrics playback timing. It does
// not carry UI, acquisition-service, or scrobbling settings — those belong
// to a host application, not this library.
type Config struct {
	// LibrarySources are the root paths Sync indexes.
	LibrarySources []string `koanf:"library_sources"`

	Catalog CatalogConfig `koanf:"catalog"`
	Podcast PodcastConfig `koanf:"podcast"`
	Lyrics  LyricsConfig  `koanf:"lyrics"`
}

// CatalogConfig tunes the library scanner.
type CatalogConfig struct {
	// ScanWorkers is the number of goroutines reading tag metadata
	// concurrently during Sync. 0 means DefaultScanWorkers.
	ScanWorkers int `koanf:"scan_workers"`
}

// PodcastConfig tunes feed checking and episode downloads.
type PodcastConfig struct {
	// FeedTimeoutSeconds bounds connecting to a feed URL. 0 means
	// DefaultFeedTimeoutSeconds.
	FeedTimeoutSeconds int `koanf:"feed_timeout_seconds"`
	// DownloadTimeoutSeconds bounds connecting to an episode URL (not the
	// whole download, which can legitimately run long). 0 means
	// DefaultDownloadTimeoutSeconds.
	DownloadTimeoutSeconds int `koanf:"download_timeout_seconds"`
	// MaxRetries bounds the retry loop for a failed feed check or
	// download. 0 means DefaultMaxRetries.
	MaxRetries int `koanf:"max_retries"`
	// DownloadWorkers is the number of concurrent episode downloads.
	// 0 means DefaultDownloadWorkers.
	DownloadWorkers int `koanf:"download_workers"`
}

// LyricsConfig tunes LRC rendering.
type LyricsConfig struct {
	// GetTextBiasMS overrides lyrics.DefaultGetTextBiasMS. 0 means use
	// the package default.
	GetTextBiasMS int64 `koanf:"get_text_bias_ms"`
}

const (
	DefaultScanWorkers            = 8
	DefaultFeedTimeoutSeconds     = 5
	DefaultDownloadTimeoutSeconds = 10
	DefaultMaxRetries             = 3
	DefaultDownloadWorkers        = 4
)

// ScanWorkersOrDefault returns the configured worker count, or DefaultScanWorkers.
func (c CatalogConfig) ScanWorkersOrDefault() int {
	if c.ScanWorkers <= 0 {
		return DefaultScanWorkers
	}
	return c.ScanWorkers
}

// FeedTimeoutOrDefault returns the configured feed connect timeout, or the default.
func (c PodcastConfig) FeedTimeoutOrDefault() int {
	if c.FeedTimeoutSeconds <= 0 {
		return DefaultFeedTimeoutSeconds
	}
	return c.FeedTimeoutSeconds
}

// DownloadTimeoutOrDefault returns the configured download connect timeout, or the default.
func (c PodcastConfig) DownloadTimeoutOrDefault() int {
	if c.DownloadTimeoutSeconds <= 0 {
		return DefaultDownloadTimeoutSeconds
	}
	return c.DownloadTimeoutSeconds
}

// MaxRetriesOrDefault returns the configured retry budget, or the default.
func (c PodcastConfig) MaxRetriesOrDefault() int {
	if c.MaxRetries <= 0 {
		return DefaultMaxRetries
	}
	return c.MaxRetries
}

// DownloadWorkersOrDefault returns the configured download worker count, or the default.
func (c PodcastConfig) DownloadWorkersOrDefault() int {
	if c.DownloadWorkers <= 0 {
		return DefaultDownloadWorkers
	}
	return c.DownloadWorkers
}

// GetTextBiasMSOrDefault returns the configured lyrics bias, or 0, meaning
// the lyrics package's own default applies.
func (c LyricsConfig) GetTextBiasMSOrDefault() int64 {
	return c.GetTextBiasMS
}

// Load reads config from, in priority order (later overrides earlier):
// ~/.config/termusic-core/config.toml, then ./config.toml in the current
// directory. Missing files are silently skipped; a malformed file that
// exists is an error.
func Load() (*Config, error) {
	k := koanf.New(".")

	for _, path := range configPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	for i, src := range cfg.LibrarySources {
		cfg.LibrarySources[i] = expandPath(src)
	}

	return cfg, nil
}

func configPaths() []string {
	paths := []string{}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "termusic-core", "config.toml"))
	}
	paths = append(paths, "config.toml")
	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
