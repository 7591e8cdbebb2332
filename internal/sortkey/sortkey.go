// Package sortkey provides pinyin-aware natural-sort ordering for catalog
// facet values (artist, album, genre, directory names). Han characters are
// transliterated to their pinyin reading before comparison, and the result
// is compared with natural (alphanumeric) ordering so that embedded numbers
// sort by value rather than lexicographically.
package sortkey

import (
	"sort"
	"strings"

	"github.com/fvbommel/sortorder"
	"github.com/mozillazg/go-pinyin"
)

var pinyinArgs = func() pinyin.Args {
	a := pinyin.NewArgs()
	a.Fallback = func(r rune, _ pinyin.Args) []string { return []string{string(r)} }
	return a
}()

// Key returns the comparison key for name: its pinyin transliteration with
// tone marks stripped. Non-Han runes (Latin letters, digits, punctuation)
// pass through unchanged.
func Key(name string) string {
	if name == "" {
		return ""
	}
	readings := pinyin.LazyConvert(name, &pinyinArgs)
	if len(readings) == 0 {
		return name
	}
	return strings.Join(readings, "")
}

// Less reports whether a should sort before b, comparing their pinyin keys
// with natural (digit-aware) ordering.
func Less(a, b string) bool {
	return sortorder.NaturalLess(Key(a), Key(b))
}

// Compare returns -1, 0, or 1 comparing a and b the way Less does.
func Compare(a, b string) int {
	switch {
	case Less(a, b):
		return -1
	case Less(b, a):
		return 1
	default:
		return 0
	}
}

// SortStrings sorts values in place using Less.
func SortStrings(values []string) {
	sort.Slice(values, func(i, j int) bool {
		return Less(values[i], values[j])
	})
}

// SortByName sorts items in place by the pinyin/natural-sort order of the
// name each one maps to, computing each name's key once up front rather
// than recomputing it on every comparison during the sort.
func SortByName[T any](items []T, name func(T) string) {
	type keyed struct {
		key  string
		item T
	}
	pairs := make([]keyed, len(items))
	for i, item := range items {
		pairs[i] = keyed{key: Key(name(item)), item: item}
	}
	sort.Slice(pairs, func(i, j int) bool {
		return sortorder.NaturalLess(pairs[i].key, pairs[j].key)
	})
	for i, p := range pairs {
		items[i] = p.item
	}
}
