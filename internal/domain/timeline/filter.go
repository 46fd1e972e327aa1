package timeline

import "time"

// FilterAll is the identity sentinel for category and kind filters.
const FilterAll = "all"

// FilterByCategory keeps items whose category tag matches exactly.
// Empty or "all" passes everything through.
func FilterByCategory(items []Item, category string) []Item {
	if category == "" || category == FilterAll {
		return append([]Item{}, items...)
	}
	out := []Item{}
	for _, item := range items {
		if item.Category == category {
			out = append(out, item)
		}
	}
	return out
}

// FilterByKind keeps items of one source kind. Empty or "all" passes
// everything through.
func FilterByKind(items []Item, kind string) []Item {
	if kind == "" || kind == FilterAll {
		return append([]Item{}, items...)
	}
	out := []Item{}
	for _, item := range items {
		if string(item.Kind) == kind {
			out = append(out, item)
		}
	}
	return out
}

// FilterByWindow keeps items whose timestamp is at or after now minus
// the given number of days; the boundary is inclusive. Zero or negative
// days disables the window.
func FilterByWindow(items []Item, days int, now time.Time) []Item {
	if days <= 0 {
		return append([]Item{}, items...)
	}
	cutoff := now.AddDate(0, 0, -days)
	out := []Item{}
	for _, item := range items {
		if !item.Timestamp.Before(cutoff) {
			out = append(out, item)
		}
	}
	return out
}
