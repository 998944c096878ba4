package resumes

import (
	"encoding/json"
	"time"
)

// Resume is a processed upload with its extracted content and the
// strategy that produced it.
type Resume struct {
	ID              string
	SessionID       string
	UserID          string
	FileName        string
	FileSize        int64
	RawText         string
	Parsed          json.RawMessage
	Confidence      float64
	Level           string
	JobDescription  string
	Provider        string
	ProcessingMode  string
	SelectionReason string
	StorageProvider string
	StorageKey      string
	CreatedAt       time.Time
}
