package ingest

import "strings"

// Stem applies a small set of suffix-stripping rules to merge common
// morphological variants ("flavors"/"flavor", "shipping"/"shipp").
// Rules run to a fixed point so stemming an already-stemmed token is a
// no-op. Purely rule-based with length guards; false merges are an
// accepted approximation.
func Stem(word string) string {
	for {
		next := stemOnce(word)
		if next == word {
			return word
		}
		word = next
	}
}

func stemOnce(word string) string {
	switch {
	case strings.HasSuffix(word, "ies") && len(word) > 4:
		return word[:len(word)-3] + "y"
	case strings.HasSuffix(word, "ing") && len(word) > 5:
		return word[:len(word)-3]
	case strings.HasSuffix(word, "ed") && len(word) > 5:
		return word[:len(word)-2]
	case strings.HasSuffix(word, "ly") && len(word) > 5:
		return word[:len(word)-2]
	case strings.HasSuffix(word, "es") && len(word) > 4 && !strings.HasSuffix(word, "sses"):
		return word[:len(word)-2]
	case strings.HasSuffix(word, "s") && len(word) > 3 && !strings.HasSuffix(word, "ss") && !strings.HasSuffix(word, "us"):
		return word[:len(word)-1]
	}
	return word
}
