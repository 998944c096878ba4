package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
)

// PersonalInfo is the identity block of an extracted resume.
type PersonalInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LinkedIn string `json:"linkedin"`
	Location string `json:"location"`
}

// ParsedResume is the structured payload extracted by a provider. Section
// keys are snake_case; they are the model contract, not the API surface.
type ParsedResume struct {
	PersonalInfo PersonalInfo    `json:"personal_info"`
	Summary      string          `json:"summary"`
	Skills       []string        `json:"skills"`
	Experience   json.RawMessage `json:"experience"`
	Education    json.RawMessage `json:"education"`
	Projects     json.RawMessage `json:"projects"`
	Level        string          `json:"level"`
	Confidence   float64         `json:"confidence"`
}

// HasPersonalInfo reports whether any identity field was extracted.
func (p ParsedResume) HasPersonalInfo() bool {
	return p.PersonalInfo != (PersonalInfo{})
}

// HasExperience reports whether the experience section holds entries.
func (p ParsedResume) HasExperience() bool {
	return sectionPresent(p.Experience)
}

func sectionPresent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return false
	}
	switch string(trimmed) {
	case "null", "[]", "{}", `""`:
		return false
	}
	return true
}

// ParseResume turns raw model output into a ParsedResume, repairing
// common JSON defects (markdown fences, trailing commas, truncation).
func ParseResume(raw json.RawMessage) (ParsedResume, json.RawMessage, error) {
	cleaned := strings.TrimSpace(string(raw))
	if cleaned == "" {
		return ParsedResume{}, nil, fmt.Errorf("empty model output")
	}

	if !json.Valid([]byte(cleaned)) {
		repaired, err := jsonrepair.RepairJSON(cleaned)
		if err != nil {
			return ParsedResume{}, nil, fmt.Errorf("repair model output: %w", err)
		}
		cleaned = repaired
	}

	var parsed ParsedResume
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return ParsedResume{}, nil, fmt.Errorf("decode model output: %w", err)
	}
	if parsed.Confidence < 0 {
		parsed.Confidence = 0
	}
	if parsed.Confidence > 1 {
		parsed.Confidence = 1
	}
	return parsed, json.RawMessage(cleaned), nil
}
