package resumes

import (
	"encoding/json"
	"time"

	"ats-checker/internal/processing"
)

// UploadResponse is the outward-facing result of a processed upload.
type UploadResponse struct {
	ResumeID           string          `json:"resumeId"`
	SessionID          string          `json:"sessionId"`
	User               UserSummary     `json:"user"`
	VerificationNeeded bool            `json:"verificationNeeded"`
	Parsed             json.RawMessage `json:"parsed"`
	Confidence         float64         `json:"confidence"`
	Level              string          `json:"level,omitempty"`
	Processing         ProcessingInfo  `json:"processing"`
	Storage            StorageInfo     `json:"storage"`
	CreatedAt          time.Time       `json:"createdAt"`
}

// UserSummary is the slice of user data returned with an upload.
type UserSummary struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name,omitempty"`
}

// ProcessingInfo explains how the upload was processed.
type ProcessingInfo struct {
	Mode       string   `json:"mode"`
	Provider   string   `json:"provider"`
	Providers  []string `json:"providersTried,omitempty"`
	Reason     string   `json:"reason"`
	Attempts   int      `json:"attempts"`
	DurationMs float64  `json:"durationMs"`
}

// StorageInfo reports where (and whether) the original file landed.
type StorageInfo struct {
	Provider string `json:"provider,omitempty"`
	Key      string `json:"key,omitempty"`
	Failed   bool   `json:"failed"`
}

// ResumeSummary is the list representation of a stored resume.
type ResumeSummary struct {
	ResumeID       string    `json:"resumeId"`
	FileName       string    `json:"fileName"`
	FileSize       int64     `json:"fileSize"`
	Provider       string    `json:"provider,omitempty"`
	ProcessingMode string    `json:"processingMode,omitempty"`
	Confidence     float64   `json:"confidence"`
	Level          string    `json:"level,omitempty"`
	DownloadURL    string    `json:"downloadUrl,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// OptionsResponse describes current processing configuration and choices.
type OptionsResponse struct {
	Modes     []string            `json:"modes"`
	Providers []ProviderInfo      `json:"providers"`
	Presets   []string            `json:"presets"`
	Settings  processing.Settings `json:"settings"`
}

// ProviderInfo describes one provider's capabilities and availability.
type ProviderInfo struct {
	Name               string `json:"name"`
	Available          bool   `json:"available"`
	SupportsFileUpload bool   `json:"supportsFileUpload"`
}

// ExplainResponse previews the strategy for a hypothetical upload.
type ExplainResponse struct {
	FileName string              `json:"fileName"`
	FileSize int64               `json:"fileSize"`
	Strategy processing.Strategy `json:"strategy"`
}

func toUploadResponse(res ProcessResult) UploadResponse {
	return UploadResponse{
		ResumeID:           res.Resume.ID,
		SessionID:          res.Session.ID,
		User: UserSummary{
			UserID: res.User.ID,
			Email:  res.User.PrimaryEmail,
			Name:   res.User.Name,
		},
		VerificationNeeded: res.VerificationNeeded,
		Parsed:             res.Resume.Parsed,
		Confidence:         res.Resume.Confidence,
		Level:              res.Resume.Level,
		Processing: ProcessingInfo{
			Mode:       res.Strategy.Mode,
			Provider:   res.Provider,
			Providers:  res.Strategy.Providers,
			Reason:     res.Strategy.Reason,
			Attempts:   res.Attempts,
			DurationMs: res.DurationMs,
		},
		Storage: StorageInfo{
			Provider: res.Resume.StorageProvider,
			Key:      res.Resume.StorageKey,
			Failed:   res.StorageFailed,
		},
		CreatedAt: res.Resume.CreatedAt,
	}
}

func toSummary(resume Resume) ResumeSummary {
	return ResumeSummary{
		ResumeID:       resume.ID,
		FileName:       resume.FileName,
		FileSize:       resume.FileSize,
		Provider:       resume.Provider,
		ProcessingMode: resume.ProcessingMode,
		Confidence:     resume.Confidence,
		Level:          resume.Level,
		CreatedAt:      resume.CreatedAt,
	}
}
