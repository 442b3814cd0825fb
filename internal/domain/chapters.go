package domain

import (
	"sort"
	"strconv"
	"strings"
)

// ParseChapterNumber interprets a chapter-number string numerically.  Chapter
// numbers are strings so that decimal numbering like "10.5" works; navigation
// order must come from the numeric value, never the lexical one.
func ParseChapterNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// SortChapters returns a copy of refs ordered by the numeric interpretation of
// the chapter number, ascending.  Unparsable numbers sort after parsable ones,
// keeping their input order.
func SortChapters(refs []ChapterRef) []ChapterRef {
	sorted := make([]ChapterRef, len(refs))
	copy(sorted, refs)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, aok := ParseChapterNumber(sorted[i].ChapterNumber)
		b, bok := ParseChapterNumber(sorted[j].ChapterNumber)
		if aok != bok {
			return aok
		}
		if !aok {
			return false
		}
		return a < b
	})

	return sorted
}

// AdjacentChapters finds the chapters before and after the given chapter
// number in reading order.  A nil result at either side means the boundary has
// been reached and the corresponding navigation should be disabled.
func AdjacentChapters(refs []ChapterRef, chapterNumber string) (prev, next *ChapterRef) {
	sorted := SortChapters(refs)

	idx := -1
	for i, ref := range sorted {
		if ref.ChapterNumber == chapterNumber {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, nil
	}

	if idx > 0 {
		prev = &sorted[idx-1]
	}
	if idx < len(sorted)-1 {
		next = &sorted[idx+1]
	}
	return prev, next
}

// FindChapter locates a chapter summary by string equality on the chapter
// number token.
func FindChapter(refs []ChapterRef, chapterNumber string) *ChapterRef {
	for i := range refs {
		if refs[i].ChapterNumber == chapterNumber {
			return &refs[i]
		}
	}
	return nil
}
