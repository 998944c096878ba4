package llm

import (
	"encoding/json"
	"testing"
)

func TestParseResumeValidJSON(t *testing.T) {
	raw := json.RawMessage(`{"personal_info":{"name":"Jane Doe","email":"jane@example.com"},"skills":["Go","SQL"],"experience":[{"title":"Engineer"}],"level":"senior","confidence":0.92}`)
	parsed, cleaned, err := ParseResume(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.PersonalInfo.Name != "Jane Doe" || parsed.PersonalInfo.Email != "jane@example.com" {
		t.Fatalf("unexpected identity fields: %+v", parsed)
	}
	if !parsed.HasPersonalInfo() || !parsed.HasExperience() {
		t.Fatalf("expected sections present: %+v", parsed)
	}
	if len(parsed.Skills) != 2 {
		t.Fatalf("expected 2 skills, got %v", parsed.Skills)
	}
	if parsed.Confidence != 0.92 {
		t.Fatalf("expected confidence 0.92, got %f", parsed.Confidence)
	}
	if !json.Valid(cleaned) {
		t.Fatalf("expected cleaned output to be valid JSON")
	}
}

func TestParseResumeRepairsMarkdownFence(t *testing.T) {
	raw := json.RawMessage("```json\n{\"personal_info\":{\"name\":\"Jane\"},\"confidence\":0.5,}\n```")
	parsed, _, err := ParseResume(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.PersonalInfo.Name != "Jane" {
		t.Fatalf("expected name Jane, got %q", parsed.PersonalInfo.Name)
	}
}

func TestParseResumeClampsConfidence(t *testing.T) {
	parsed, _, err := ParseResume(json.RawMessage(`{"confidence":1.7}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.Confidence != 1 {
		t.Fatalf("expected confidence clamped to 1, got %f", parsed.Confidence)
	}
}

func TestParseResumeEmptySections(t *testing.T) {
	parsed, _, err := ParseResume(json.RawMessage(`{"personal_info":null,"experience":[],"confidence":0.2}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.HasPersonalInfo() || parsed.HasExperience() {
		t.Fatalf("expected sections absent: %+v", parsed)
	}
}

func TestParseResumeEmpty(t *testing.T) {
	if _, _, err := ParseResume(json.RawMessage("   ")); err == nil {
		t.Fatal("expected error for empty output")
	}
}
