package layout

import "sort"

// IsDelimiter reports whether r separates words.
func IsDelimiter(r rune) bool {
	return r == ' ' || r == '\n'
}

// CurrentWord returns the range [start, end) of the word containing index i,
// including its trailing delimiter. When i sits on a delimiter the range is
// that delimiter alone.
func CurrentWord(text []rune, i int) (start, end int) {
	if i < 0 || i >= len(text) {
		return 0, 0
	}
	if IsDelimiter(text[i]) {
		return i, i + 1
	}
	start = i
	for start > 0 && !IsDelimiter(text[start-1]) {
		start--
	}
	end = i
	for end < len(text) && !IsDelimiter(text[end]) {
		end++
	}
	if end < len(text) {
		end++
	}
	return start, end
}

// LinesBefore counts wrap indices strictly below i.
func LinesBefore(wraps []int, i int) int {
	return sort.SearchInts(wraps, i)
}
