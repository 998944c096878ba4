package admin

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"ats-checker/internal/llm"
	"ats-checker/internal/processing"
	"ats-checker/internal/shared/server/middleware"
	"ats-checker/internal/shared/server/respond"
	"ats-checker/internal/shared/telemetry"
)

// Handler exposes the runtime configuration API. All routes expect
// AdminAuth middleware on the group they register on.
type Handler struct {
	Settings  *processing.Store
	Overrides processing.OverrideStore
	Registry  *llm.Registry
}

// NewHandler constructs an admin Handler.
func NewHandler(settings *processing.Store, overrides processing.OverrideStore, registry *llm.Registry) *Handler {
	return &Handler{Settings: settings, Overrides: overrides, Registry: registry}
}

// RegisterRoutes attaches admin routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/current_config", h.currentConfig)
	rg.POST("/update_config", h.updateConfig)
	rg.POST("/apply_preset", h.applyPreset)
	rg.POST("/test_config", h.testConfig)
	rg.POST("/force_provider/:provider", h.forceProvider)
	rg.DELETE("/clear_session_overrides", h.clearOverrides)
}

func (h *Handler) currentConfig(c *gin.Context) {
	respond.OK(c, gin.H{
		"settings":           h.Settings.Snapshot(),
		"availableProviders": h.Registry.Available(),
		"presets":            processing.PresetNames(),
	})
}

func (h *Handler) updateConfig(c *gin.Context) {
	var update processing.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid update body", nil)
		return
	}

	settings, err := h.Settings.Apply(update)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	telemetry.Info("admin.config_updated", map[string]any{
		"admin":             middleware.AdminSubjectFromContext(c),
		"default_mode":      settings.DefaultMode,
		"provider_priority": settings.ProviderPriority,
	})
	respond.OK(c, gin.H{"settings": settings})
}

func (h *Handler) applyPreset(c *gin.Context) {
	var body struct {
		Preset string `json:"preset"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.Preset) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "preset is required", nil)
		return
	}

	settings, err := h.Settings.ApplyPreset(body.Preset)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	telemetry.Info("admin.preset_applied", map[string]any{
		"admin":  middleware.AdminSubjectFromContext(c),
		"preset": strings.ToLower(strings.TrimSpace(body.Preset)),
	})
	respond.OK(c, gin.H{"preset": strings.ToLower(strings.TrimSpace(body.Preset)), "settings": settings})
}

// sampleFiles drive test_config dry runs across the rule table.
var sampleFiles = []struct {
	Name string `json:"fileName"`
	Size int64  `json:"fileSize"`
}{
	{"small_resume.txt", 200 << 10},
	{"resume.docx", 900 << 10},
	{"resume.pdf", 400 << 10},
	{"scanned_resume.pdf", 6 << 20},
}

// testConfig previews how a proposed settings change routes a spread of
// sample files, without committing the change.
func (h *Handler) testConfig(c *gin.Context) {
	var update processing.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid update body", nil)
		return
	}

	settings, err := h.Settings.Preview(update)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	type runResult struct {
		FileName string              `json:"fileName"`
		FileSize int64               `json:"fileSize"`
		Strategy processing.Strategy `json:"strategy"`
		Eligible []string            `json:"eligibleProviders"`
	}
	runs := make([]runResult, 0, len(sampleFiles))
	for _, sample := range sampleFiles {
		strategy := processing.Select(sample.Name, sample.Size, settings, "")
		runs = append(runs, runResult{
			FileName: sample.Name,
			FileSize: sample.Size,
			Strategy: strategy,
			Eligible: h.Registry.Eligible(strategy.Providers, strategy.Mode == processing.ModeCompleteLLM),
		})
	}

	respond.OK(c, gin.H{"settings": settings, "runs": runs, "applied": false})
}

func (h *Handler) forceProvider(c *gin.Context) {
	provider := strings.ToLower(strings.TrimSpace(c.Param("provider")))
	if _, ok := h.Registry.Get(provider); !ok {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unknown provider: "+provider, nil)
		return
	}

	sessionID := middleware.SessionIDFromContext(c)
	if sessionID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Session-Id header is required", nil)
		return
	}

	if err := h.Overrides.Set(c.Request.Context(), sessionID, provider, processing.DefaultOverrideTTL); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to store override", nil)
		return
	}

	telemetry.Info("admin.provider_forced", map[string]any{
		"admin":      middleware.AdminSubjectFromContext(c),
		"session_id": sessionID,
		"provider":   provider,
	})
	respond.OK(c, gin.H{
		"sessionId":        sessionID,
		"provider":         provider,
		"expiresInSeconds": int(processing.DefaultOverrideTTL / time.Second),
	})
}

func (h *Handler) clearOverrides(c *gin.Context) {
	cleared, err := h.Overrides.ClearAll(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to clear overrides", nil)
		return
	}

	telemetry.Info("admin.overrides_cleared", map[string]any{
		"admin":   middleware.AdminSubjectFromContext(c),
		"cleared": cleared,
	})
	respond.OK(c, gin.H{"cleared": cleared})
}
