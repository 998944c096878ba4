package extract

import (
	"strings"
	"unicode"
)

// MinUsableChars is the floor below which local extraction is considered
// too thin to parse and the pipeline switches to full LLM processing.
const MinUsableChars = 100

// Quality scores extracted text between 0 and 1. Short or mostly
// non-letter output (common with scanned or image-only PDFs) scores low.
func Quality(text string) float64 {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) == 0 {
		return 0
	}

	var letters, total int
	for _, r := range trimmed {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			letters++
		}
	}
	if total == 0 {
		return 0
	}

	letterRatio := float64(letters) / float64(total)

	lengthScore := float64(len(trimmed)) / float64(MinUsableChars*5)
	if lengthScore > 1 {
		lengthScore = 1
	}

	score := 0.6*letterRatio + 0.4*lengthScore
	if len(trimmed) < MinUsableChars {
		score *= 0.5
	}
	return score
}

// Usable reports whether locally extracted text is good enough to send to
// the LLM as context instead of reprocessing the whole file.
func Usable(text string) bool {
	return len(strings.TrimSpace(text)) >= MinUsableChars && Quality(text) >= 0.4
}
