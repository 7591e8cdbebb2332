// Package lyrics parses, renders, and queries synced LRC lyrics.
package lyrics

import (
	"bufio"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Options configures behavior that the LRC format itself leaves as a
// heuristic rather than a hard rule.
type Options struct {
	// GetTextBiasMS is the forward look-ahead GetText applies to the
	// queried playback position before resolving a caption, compensating
	// for perceived playback/UI refresh latency. Zero means
	// DefaultGetTextBiasMS.
	GetTextBiasMS int64
}

// DefaultGetTextBiasMS is the look-ahead used when Options.GetTextBiasMS
// is unset.
const DefaultGetTextBiasMS = 2000

// DefaultOptions returns the Options the original format heuristic used.
func DefaultOptions() Options {
	return Options{GetTextBiasMS: DefaultGetTextBiasMS}
}

func (o Options) bias() int64 {
	if o.GetTextBiasMS == 0 {
		return DefaultGetTextBiasMS
	}
	return o.GetTextBiasMS
}

// Caption is a single timestamped lyric line.
type Caption struct {
	// Timestamp in milliseconds from the start of the track.
	Timestamp int64
	// Text is the caption's text, verbatim after the closing "]".
	Text string
}

// Lyric holds a full parsed LRC document: a global offset and its captions.
// Captions are always kept sorted by Timestamp, non-decreasing, with no two
// adjacent timestamps less than 2000ms apart (merged at parse time).
type Lyric struct {
	// Offset in milliseconds, added to the playback position before lookup;
	// a positive offset shows each caption earlier relative to playback.
	Offset int64
	// Captions, sorted by Timestamp ascending.
	Captions []Caption
}

// GetText returns the caption text active at pos, or false if there are no
// captions. pos is adjusted by opts' bias and Offset before lookup, and
// clamped to zero if the result would be negative.
func (l *Lyric) GetText(pos time.Duration, opts Options) (string, bool) {
	if len(l.Captions) == 0 {
		return "", false
	}

	t := pos.Milliseconds() + opts.bias() + l.Offset
	if t < 0 {
		t = 0
	}

	text := l.Captions[0].Text
	for _, c := range l.Captions {
		if t >= c.Timestamp {
			text = c.Text
		} else {
			break
		}
	}
	return text, true
}

// GetIndex returns the index of the next-lowest caption for timeMillis
// (song time, milliseconds), taking Offset into account. Unlike GetText,
// the adjusted time is taken by absolute value rather than clamped to zero;
// this is also the lookup rule AdjustOffset uses to locate the caption to
// adjust.
func (l *Lyric) GetIndex(timeMillis int64) (int, bool) {
	if len(l.Captions) == 0 {
		return 0, false
	}

	t := timeMillis + l.Offset
	if t < 0 {
		t = -t
	}

	index := 0
	for i, c := range l.Captions {
		if t >= c.Timestamp {
			index = i
		} else {
			break
		}
	}
	return index, true
}

// AdjustOffset nudges the lyric timing at pos by deltaMillis.
//
// If the next-lowest caption is the first one, or pos is under 11
// milliseconds of song time, the adjustment is applied to the lyric's
// global Offset. Otherwise only that caption's own timestamp is nudged
// (clamped to zero). Captions are re-sorted afterward, since per-caption
// adjustment can reorder them relative to their neighbors.
func (l *Lyric) AdjustOffset(pos time.Duration, deltaMillis int64) {
	t := pos.Milliseconds()
	index, ok := l.GetIndex(t)
	if !ok {
		return
	}

	if index == 0 || t < 11 {
		l.Offset += deltaMillis
	} else {
		adjusted := l.Captions[index].Timestamp + deltaMillis
		if adjusted < 0 {
			adjusted = 0
		}
		l.Captions[index].Timestamp = adjusted
	}

	sort.Slice(l.Captions, func(i, j int) bool {
		return l.Captions[i].Timestamp < l.Captions[j].Timestamp
	})
}

// MergeAdjacent merges consecutive captions whose timestamps are less than
// 2000ms apart, joining their text with two spaces. Applied automatically
// by ParseLRC since downloaded lyrics are frequently over-split.
func (l *Lyric) MergeAdjacent() {
	if len(l.Captions) == 0 {
		return
	}

	merged := make([]Caption, 0, len(l.Captions))
	merged = append(merged, l.Captions[0])
	for _, c := range l.Captions[1:] {
		last := &merged[len(merged)-1]
		if c.Timestamp-last.Timestamp < 2000 {
			last.Text = last.Text + "  " + c.Text
			continue
		}
		merged = append(merged, c)
	}
	l.Captions = merged
}

// AsLRCText renders the lyric back to LRC format.
func (l *Lyric) AsLRCText() string {
	var b strings.Builder
	if l.Offset != 0 {
		b.WriteString("[offset:")
		b.WriteString(strconv.FormatInt(l.Offset, 10))
		b.WriteString("]\n")
	}
	for _, c := range l.Captions {
		b.WriteByte('[')
		b.WriteString(timeLRC(c.Timestamp))
		b.WriteByte(']')
		b.WriteString(c.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

// timeLRC formats a millisecond timestamp as LRC's mm:ss.cc. LRC has no
// hour component, so minutes are taken modulo 60 for tracks over an hour.
func timeLRC(timestampMillis int64) string {
	if timestampMillis < 0 {
		timestampMillis = 0
	}
	totalSeconds := timestampMillis / 1000
	m := (totalSeconds / 60) % 60
	s := totalSeconds % 60
	cs := (timestampMillis % 1000) / 10

	return pad2(m) + ":" + pad2(s) + "." + pad2(cs)
}

func pad2(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) < 2 {
		return "0" + s
	}
	return s
}

// ParseLRC parses LRC text from r.
//
// A line is a caption if it begins with "[" and the substring up to the
// first "]" parses as a timestamp (mm:ss.xx centiseconds, or non-standard
// mm:ss.xxx milliseconds, disambiguated by whether the fractional part is
// below 100). Everything after "]" is the caption text, verbatim. A line
// "[offset:N]" sets the global offset. Metadata lines such as "[ti:...]" or
// "[ar:...]" are attempted as captions identically and discarded, since
// their "timestamp" field fails to parse as mm:ss.xx.
//
// The only error returned is an I/O error from reading r; malformed lines
// are silently skipped rather than failing the whole parse.
func ParseLRC(r io.Reader) (*Lyric, error) {
	l := &Lyric{}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if rest, ok := strings.CutPrefix(line, "[offset:"); ok {
			if end := strings.IndexByte(rest, ']'); end >= 0 {
				if v, err := strconv.ParseInt(strings.TrimSpace(rest[:end]), 10, 64); err == nil {
					l.Offset = v
					continue
				}
			}
		}

		if !strings.HasPrefix(line, "[") {
			continue
		}

		if c, ok := parseCaptionLine(line); ok {
			l.Captions = append(l.Captions, c)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	sort.Slice(l.Captions, func(i, j int) bool {
		return l.Captions[i].Timestamp < l.Captions[j].Timestamp
	})
	l.MergeAdjacent()

	return l, nil
}

// parseCaptionLine parses a single "[mm:ss.xx]text" line into a Caption.
func parseCaptionLine(line string) (Caption, bool) {
	start := strings.IndexByte(line, '[')
	if start < 0 {
		return Caption{}, false
	}
	start++
	end := strings.IndexByte(line[start:], ']')
	if end < 0 {
		return Caption{}, false
	}
	end += start

	ts, ok := parseTimestamp(line[start:end])
	if !ok {
		return Caption{}, false
	}

	return Caption{Timestamp: ts, Text: line[end+1:]}, true
}

// parseTimestamp parses "mm:ss.xx" (centiseconds) or "mm:ss.xxx"
// (milliseconds), disambiguated by magnitude: a fractional part under 100
// is centiseconds and multiplied by 10.
func parseTimestamp(s string) (int64, bool) {
	colon := strings.IndexByte(s, ':')
	if colon < 0 {
		return 0, false
	}
	dot := strings.IndexByte(s[colon:], '.')
	if dot < 0 {
		return 0, false
	}
	dot += colon

	minutes, err := strconv.ParseInt(s[:colon], 10, 64)
	if err != nil {
		return 0, false
	}
	seconds, err := strconv.ParseInt(s[colon+1:dot], 10, 64)
	if err != nil {
		return 0, false
	}
	frac, err := strconv.ParseInt(s[dot+1:], 10, 64)
	if err != nil {
		return 0, false
	}

	millis := frac
	if frac < 100 {
		millis = frac * 10
	}

	return (minutes*60+seconds)*1000 + millis, true
}
