package processing

import (
	"fmt"
	"strings"
)

// Processing modes. Hybrid extracts text locally and sends it to the LLM;
// CompleteLLM hands the raw file to a provider that supports file upload.
const (
	ModeHybrid      = "hybrid"
	ModeCompleteLLM = "complete_llm"
)

// NormalizeMode validates and canonicalizes a mode string. Empty input is
// allowed and means "let the rules decide".
func NormalizeMode(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return "", nil
	case ModeHybrid:
		return ModeHybrid, nil
	case ModeCompleteLLM:
		return ModeCompleteLLM, nil
	default:
		return "", fmt.Errorf("unknown processing mode: %q", raw)
	}
}

// Modes lists the valid processing modes.
func Modes() []string {
	return []string{ModeHybrid, ModeCompleteLLM}
}
