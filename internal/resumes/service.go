package resumes

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ats-checker/internal/extract"
	"ats-checker/internal/llm"
	"ats-checker/internal/processing"
	"ats-checker/internal/sessions"
	"ats-checker/internal/shared/metrics"
	"ats-checker/internal/shared/storage/object"
	"ats-checker/internal/shared/telemetry"
	"ats-checker/internal/users"
)

// Service orchestrates the upload pipeline: validation, strategy
// selection, extraction, LLM parsing, identity resolution, session
// creation, storage, and persistence.
type Service struct {
	Settings  *processing.Store
	Overrides processing.OverrideStore
	Registry  *llm.Registry
	Users     *users.Service
	Sessions  *sessions.Service
	Repo      ResumesRepo
	Store     object.ObjectStore
	StoreType string
	Now       func() time.Time
}

// ProcessInput carries one upload through the pipeline.
type ProcessInput struct {
	FileName       string
	Data           []byte
	MimeType       string
	Level          string
	JobDescription string
	SessionID      string
	ClientIP       string
	RequestID      string
}

// ProcessResult is the pipeline outcome handed to the HTTP layer.
type ProcessResult struct {
	Resume             Resume
	User               users.User
	Session            sessions.Session
	Parsed             llm.ParsedResume
	Strategy           processing.Strategy
	Provider           string
	Attempts           int
	VerificationNeeded bool
	StorageFailed      bool
	DurationMs         float64
}

// Process runs the full upload pipeline.
func (s *Service) Process(ctx context.Context, input ProcessInput) (ProcessResult, error) {
	started := s.now()

	if err := ValidateUpload(input.FileName, int64(len(input.Data))); err != nil {
		return ProcessResult{}, err
	}

	strategy := s.selectStrategy(ctx, input)

	raw, provider, attempts, rawText, strategy, err := s.runLLM(ctx, input, strategy)
	if err != nil {
		metrics.IncResumeFailed()
		return ProcessResult{}, fmt.Errorf("%w: %v", ErrProcessingFailed, err)
	}

	parsed, cleaned, err := llm.ParseResume(raw)
	if err != nil {
		metrics.IncResumeFailed()
		return ProcessResult{}, fmt.Errorf("%w: %v", ErrProcessingFailed, err)
	}

	if err := validateSections(parsed, strategy.Mode); err != nil {
		metrics.IncResumeFailed()
		return ProcessResult{}, err
	}

	email := s.resolveEmail(parsed, rawText)
	profile := users.Profile{
		Name:     parsed.PersonalInfo.Name,
		Phone:    parsed.PersonalInfo.Phone,
		LinkedIn: parsed.PersonalInfo.LinkedIn,
	}

	var (
		user      users.User
		returning bool
	)
	switch {
	case email != "":
		user, returning, err = s.Users.FindOrCreateByEmail(ctx, email, profile)
	case strategy.Mode == processing.ModeCompleteLLM:
		// Direct file runs may legitimately miss the contact block.
		telemetry.Warn("resume.no_email", map[string]any{
			"request_id": input.RequestID,
			"file_name":  input.FileName,
		})
		user, err = s.Users.CreateAnonymous(ctx, profile)
	default:
		metrics.IncResumeFailed()
		return ProcessResult{}, ErrNoEmail
	}
	if err != nil {
		metrics.IncResumeFailed()
		return ProcessResult{}, err
	}

	session, err := s.Sessions.Start(ctx, user.ID, email, input.ClientIP)
	if err != nil {
		metrics.IncResumeFailed()
		return ProcessResult{}, err
	}

	storageProvider, storageKey, storageFailed := s.storeOriginal(ctx, user.ID, input)

	resume := Resume{
		ID:              uuid.NewString(),
		SessionID:       session.ID,
		UserID:          user.ID,
		FileName:        input.FileName,
		FileSize:        int64(len(input.Data)),
		RawText:         rawText,
		Parsed:          cleaned,
		Confidence:      parsed.Confidence,
		Level:           resolveLevel(input.Level, parsed.Level),
		JobDescription:  input.JobDescription,
		Provider:        provider,
		ProcessingMode:  strategy.Mode,
		SelectionReason: strategy.Reason,
		StorageProvider: storageProvider,
		StorageKey:      storageKey,
		CreatedAt:       s.now().UTC(),
	}
	if err := s.Repo.Create(ctx, resume); err != nil {
		metrics.IncResumeFailed()
		return ProcessResult{}, fmt.Errorf("persist resume: %w", err)
	}

	durationMs := float64(s.now().Sub(started).Microseconds()) / 1000.0
	metrics.IncResumeProcessed()
	metrics.ObserveProcessingDurationMs(durationMs)

	telemetry.Info("resume.processed", map[string]any{
		"request_id":      input.RequestID,
		"resume_id":       resume.ID,
		"session_id":      session.ID,
		"provider":        provider,
		"processing_mode": strategy.Mode,
		"reason":          strategy.Reason,
		"attempts":        attempts,
		"duration_ms":     durationMs,
	})

	return ProcessResult{
		Resume:             resume,
		User:               user,
		Session:            session,
		Parsed:             parsed,
		Strategy:           strategy,
		Provider:           provider,
		Attempts:           attempts,
		VerificationNeeded: !returning,
		StorageFailed:      storageFailed,
		DurationMs:         durationMs,
	}, nil
}

// Explain previews the strategy an upload would get without processing it.
func (s *Service) Explain(ctx context.Context, fileName string, sizeBytes int64, sessionID string) (processing.Strategy, error) {
	if err := ValidateUpload(fileName, sizeBytes); err != nil {
		return processing.Strategy{}, err
	}
	return processing.Select(fileName, sizeBytes, s.Settings.Snapshot(), s.forcedProvider(ctx, sessionID)), nil
}

// GetByID returns a resume by ID.
func (s *Service) GetByID(ctx context.Context, id string) (Resume, error) {
	return s.Repo.GetByID(ctx, id)
}

// ListByUser returns a user's resumes, newest first.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]Resume, error) {
	if _, err := s.Users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.Repo.ListByUser(ctx, userID)
}

// Delete removes a resume record and best-effort deletes the stored file.
func (s *Service) Delete(ctx context.Context, id string) error {
	resume, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if resume.StorageKey != "" {
		if deleter, ok := s.Store.(object.Deleter); ok {
			if err := deleter.Delete(ctx, resume.StorageKey); err != nil {
				telemetry.Warn("resume.storage_delete_failed", map[string]any{
					"resume_id": id,
					"error":     err.Error(),
				})
			}
		}
	}
	return s.Repo.Delete(ctx, id)
}

func (s *Service) selectStrategy(ctx context.Context, input ProcessInput) processing.Strategy {
	return processing.Select(
		input.FileName,
		int64(len(input.Data)),
		s.Settings.Snapshot(),
		s.forcedProvider(ctx, input.SessionID),
	)
}

// forcedProvider honors a session's forced provider only while the
// session itself is still alive.
func (s *Service) forcedProvider(ctx context.Context, sessionID string) string {
	if sessionID == "" || s.Overrides == nil {
		return ""
	}
	provider, ok, err := s.Overrides.Get(ctx, sessionID)
	if err != nil {
		telemetry.Warn("override.lookup_failed", map[string]any{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return ""
	}
	if !ok {
		return ""
	}
	if s.Sessions != nil {
		if _, err := s.Sessions.Validate(ctx, sessionID); err != nil {
			telemetry.Warn("override.session_invalid", map[string]any{
				"session_id": sessionID,
				"error":      err.Error(),
			})
			return ""
		}
	}
	return provider
}

// runLLM executes the selected strategy. Hybrid extractions that produce
// unusable text switch to full LLM processing when a file-capable
// provider is in reach.
func (s *Service) runLLM(ctx context.Context, input ProcessInput, strategy processing.Strategy) (raw []byte, provider string, attempts int, rawText string, out processing.Strategy, err error) {
	settings := s.Settings.Snapshot()
	out = strategy

	if strategy.Mode == processing.ModeHybrid {
		text, extractErr := extract.Text(ctx, input.Data, input.MimeType, input.FileName)
		if extractErr == nil && extract.Usable(text) {
			rawText = text
			res, runErr := s.Registry.Run(ctx, strategy.Providers, llm.ExtractInput{
				Text:           text,
				FileName:       input.FileName,
				JobDescription: input.JobDescription,
			}, settings.EnableAutoFallback, input.RequestID)
			if runErr != nil {
				return nil, "", 0, rawText, out, runErr
			}
			return res.Raw, res.Provider, res.Attempts, rawText, out, nil
		}

		metrics.IncExtractionSwitch()
		telemetry.Warn("extraction.switched_to_llm", map[string]any{
			"request_id": input.RequestID,
			"file_name":  input.FileName,
			"error":      errString(extractErr),
		})
		out.Mode = processing.ModeCompleteLLM
		out.Reason = strategy.Reason + "+extraction_fallback"
		out.Providers = fileCapableOrDefault(strategy.Providers, settings.ProviderPriority)
	}

	// A priority list of text-only providers still has to work in file
	// mode: extract locally and hand them the text instead.
	if len(s.Registry.Eligible(out.Providers, true)) == 0 {
		text, extractErr := extract.Text(ctx, input.Data, input.MimeType, input.FileName)
		if extractErr != nil {
			return nil, "", 0, rawText, out, fmt.Errorf("no file-capable provider and extraction failed: %w", extractErr)
		}
		rawText = text
		res, runErr := s.Registry.Run(ctx, out.Providers, llm.ExtractInput{
			Text:           text,
			FileName:       input.FileName,
			JobDescription: input.JobDescription,
		}, settings.EnableAutoFallback, input.RequestID)
		if runErr != nil {
			return nil, "", 0, rawText, out, runErr
		}
		return res.Raw, res.Provider, res.Attempts, rawText, out, nil
	}

	res, runErr := s.Registry.Run(ctx, out.Providers, llm.ExtractInput{
		FileData:       input.Data,
		FileName:       input.FileName,
		MimeType:       contentTypeFor(input),
		JobDescription: input.JobDescription,
	}, settings.EnableAutoFallback, input.RequestID)
	if runErr != nil {
		return nil, "", 0, rawText, out, runErr
	}
	return res.Raw, res.Provider, res.Attempts, rawText, out, nil
}

// fileCapableOrDefault keeps the strategy's providers when possible but
// falls back to the configured priority so the switch is not a dead end.
func fileCapableOrDefault(providers, priority []string) []string {
	merged := append([]string(nil), providers...)
	for _, p := range priority {
		if !contains(merged, p) {
			merged = append(merged, p)
		}
	}
	return merged
}

func (s *Service) resolveEmail(parsed llm.ParsedResume, rawText string) string {
	if email := strings.ToLower(strings.TrimSpace(parsed.PersonalInfo.Email)); email != "" {
		return email
	}
	if found := extract.Emails(rawText); len(found) > 0 {
		return found[0]
	}
	return ""
}

// validateSections enforces per-mode extraction completeness. Hybrid runs
// against locally extracted text and must yield identity, skills, and
// experience; direct file runs only need identity.
func validateSections(parsed llm.ParsedResume, mode string) error {
	if !parsed.HasPersonalInfo() {
		return fmt.Errorf("%w: personal_info", ErrIncompleteResume)
	}
	if mode != processing.ModeHybrid {
		return nil
	}
	if len(parsed.Skills) == 0 {
		return fmt.Errorf("%w: skills", ErrIncompleteResume)
	}
	if !parsed.HasExperience() {
		return fmt.Errorf("%w: experience", ErrIncompleteResume)
	}
	return nil
}

// resolveLevel prefers the level the candidate claimed on upload over the
// model's estimate.
func resolveLevel(requested, inferred string) string {
	if lvl := strings.ToLower(strings.TrimSpace(requested)); lvl != "" {
		return lvl
	}
	return inferred
}

// storeOriginal uploads the raw file. Storage failures are logged and
// surfaced in the response, never fatal to the pipeline.
func (s *Service) storeOriginal(ctx context.Context, userID string, input ProcessInput) (provider, key string, failed bool) {
	if s.Store == nil {
		return "", "", false
	}
	storageKey, _, _, err := s.Store.Save(ctx, userID, input.FileName, bytes.NewReader(input.Data))
	if err != nil {
		telemetry.Warn("resume.storage_failed", map[string]any{
			"request_id": input.RequestID,
			"file_name":  input.FileName,
			"error":      err.Error(),
		})
		return "", "", true
	}
	return s.StoreType, storageKey, false
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func contentTypeFor(input ProcessInput) string {
	if input.MimeType != "" && input.MimeType != "application/octet-stream" {
		return input.MimeType
	}
	switch {
	case strings.HasSuffix(strings.ToLower(input.FileName), ".pdf"):
		return "application/pdf"
	case strings.HasSuffix(strings.ToLower(input.FileName), ".docx"):
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "text/plain"
	}
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
