package playlist

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/llehouerou/termusic-core/internal/errmsg"
)

// ExpandFile resolves a playlist file (.m3u, .m3u8, or .pls) to the
// absolute paths of its entries. Relative entries are resolved against the
// playlist file's own directory. Malformed or blank lines are silently
// skipped rather than failing the whole parse.
func ExpandFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errmsg.New(errmsg.OpPlaylistLoad, errmsg.KindIO, err)
	}
	defer f.Close()

	dir := filepath.Dir(path)
	ext := strings.ToLower(filepath.Ext(path))

	var entries []string
	switch ext {
	case ".pls":
		entries = parsePLS(f)
	default: // .m3u, .m3u8
		entries = parseM3U(f)
	}

	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if e == "" {
			continue
		}
		if !filepath.IsAbs(e) {
			e = filepath.Join(dir, e)
		}
		paths = append(paths, e)
	}
	return paths, nil
}

// parseM3U extracts file entries from M3U/M3U8 text: every non-blank line
// that isn't a "#"-prefixed directive is a path.
func parseM3U(f *os.File) []string {
	var entries []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, line)
	}
	return entries
}

// parsePLS extracts FileN= entries from a PLS file, in ascending N order.
func parsePLS(f *os.File) []string {
	byIndex := make(map[int]string)
	maxIndex := -1

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		rest, ok := strings.CutPrefix(line, "File")
		if !ok {
			continue
		}
		eq := strings.IndexByte(rest, '=')
		if eq < 0 {
			continue
		}
		idx, err := strconv.Atoi(rest[:eq])
		if err != nil {
			continue
		}
		byIndex[idx] = rest[eq+1:]
		if idx > maxIndex {
			maxIndex = idx
		}
	}

	entries := make([]string, 0, len(byIndex))
	for i := 1; i <= maxIndex; i++ {
		if v, ok := byIndex[i]; ok {
			entries = append(entries, v)
		}
	}
	return entries
}
