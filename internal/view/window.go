package view

// windowSize is the maximum number of page buttons shown at once.
const windowSize = 5

// PageWindow returns the page numbers to render as buttons: every page when
// there are at most five, otherwise a five-wide window centred on current and
// clamped so it never runs past either end.
func PageWindow(current, total int) []int {
	if total < 1 {
		total = 1
	}
	if total <= windowSize {
		pages := make([]int, total)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages
	}

	start := current - windowSize/2
	if start < 1 {
		start = 1
	}
	if start > total-windowSize+1 {
		start = total - windowSize + 1
	}

	pages := make([]int, windowSize)
	for i := range pages {
		pages[i] = start + i
	}
	return pages
}
