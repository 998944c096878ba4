package processing

import (
	"ats-checker/internal/llm"
)

// Size thresholds used by the selection rules.
const (
	LargeFileBytes = 5 * 1024 * 1024
	SmallTextBytes = 1 * 1024 * 1024
	MaxFileBytes   = 10 * 1024 * 1024
)

// Rule maps a file shape to a processing strategy. Rules are evaluated in
// order; the first match wins.
type Rule struct {
	Name      string
	Mode      string
	Providers []string
	Matches   func(ext string, sizeBytes int64) bool
}

// DefaultRules returns the ordered rule table.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:      "large_file",
			Mode:      ModeCompleteLLM,
			Providers: []string{llm.ProviderOpenAI, llm.ProviderAnthropic},
			Matches: func(ext string, sizeBytes int64) bool {
				return sizeBytes > LargeFileBytes
			},
		},
		{
			Name:      "pdf_direct",
			Mode:      ModeCompleteLLM,
			Providers: []string{llm.ProviderOpenAI, llm.ProviderAnthropic},
			Matches: func(ext string, sizeBytes int64) bool {
				return ext == ".pdf"
			},
		},
		{
			Name:      "docx_hybrid",
			Mode:      ModeHybrid,
			Providers: []string{llm.ProviderGroq, llm.ProviderOpenAI},
			Matches: func(ext string, sizeBytes int64) bool {
				return ext == ".docx"
			},
		},
		{
			Name:      "small_text",
			Mode:      ModeHybrid,
			Providers: []string{llm.ProviderGroq},
			Matches: func(ext string, sizeBytes int64) bool {
				return ext == ".txt" && sizeBytes < SmallTextBytes
			},
		},
	}
}

// SupportedExtensions lists accepted upload extensions.
func SupportedExtensions() []string {
	return []string{".pdf", ".docx", ".txt"}
}

// ExtensionSupported reports whether an extension is accepted for upload.
func ExtensionSupported(ext string) bool {
	for _, e := range SupportedExtensions() {
		if e == ext {
			return true
		}
	}
	return false
}
