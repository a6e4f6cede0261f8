package vocab

// SelectByCategory returns the entries in category c, keeping their
// original relative order. The input slice is not modified.
func SelectByCategory(entries []WordEntry, c Category) []WordEntry {
	selected := make([]WordEntry, 0, len(entries))
	for _, e := range entries {
		if e.Category == c {
			selected = append(selected, e)
		}
	}
	return selected
}

// CountByCategory tallies entries per category
func CountByCategory(entries []WordEntry) map[Category]int {
	counts := make(map[Category]int, len(Categories))
	for _, c := range Categories {
		counts[c] = 0
	}
	for _, e := range entries {
		counts[e.Category]++
	}
	return counts
}
