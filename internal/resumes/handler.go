package resumes

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"ats-checker/internal/llm"
	"ats-checker/internal/processing"
	"ats-checker/internal/shared/server/middleware"
	"ats-checker/internal/shared/server/respond"
	"ats-checker/internal/shared/storage/object"
	"ats-checker/internal/users"
)

const (
	maxUploadSize      = 10 << 20 // 10MB
	downloadURLExpiry  = 15 * time.Minute
	jobDescriptionForm = "job_description"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc      *Service
	Registry *llm.Registry
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, registry *llm.Registry) *Handler {
	return &Handler{Svc: svc, Registry: registry}
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/upload_resume", h.upload)
	rg.GET("/processing_options", h.processingOptions)
	rg.POST("/explain_file_processing", h.explain)
	rg.GET("/download/:resumeId", h.download)
	rg.GET("/user/:userId/resumes", h.listByUser)
	rg.DELETE("/delete/:resumeId", h.delete)
	rg.GET("/s3/status", h.storageStatus)
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	result, err := h.Svc.Process(c.Request.Context(), ProcessInput{
		FileName:       fileHeader.Filename,
		Data:           data,
		MimeType:       fileHeader.Header.Get("Content-Type"),
		Level:          strings.TrimSpace(c.PostForm("level")),
		JobDescription: strings.TrimSpace(c.PostForm(jobDescriptionForm)),
		SessionID:      middleware.SessionIDFromContext(c),
		ClientIP:       c.ClientIP(),
		RequestID:      middleware.RequestIDFromContext(c),
	})
	if err != nil {
		h.writeProcessError(c, err)
		return
	}

	c.Set("resumeId", result.Resume.ID)
	c.Set("llmProvider", result.Provider)
	c.Set("processingMode", result.Strategy.Mode)

	respond.JSON(c, http.StatusCreated, toUploadResponse(result))
}

func (h *Handler) writeProcessError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUnsupportedType):
		respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_file_type", err.Error(), nil)
	case errors.Is(err, ErrFileTooLarge):
		respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", err.Error(), nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrIncompleteResume):
		respond.Error(c, http.StatusBadRequest, "incomplete_extraction", err.Error(), nil)
	case errors.Is(err, ErrNoEmail):
		respond.Error(c, http.StatusUnprocessableEntity, "no_email_found", err.Error(), nil)
	case errors.Is(err, ErrProcessingFailed):
		respond.Error(c, http.StatusBadGateway, "processing_failed", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to process resume", nil)
	}
}

func (h *Handler) processingOptions(c *gin.Context) {
	snap := h.Svc.Settings.Snapshot()

	var providers []ProviderInfo
	for _, name := range h.Registry.Names() {
		client, _ := h.Registry.Get(name)
		providers = append(providers, ProviderInfo{
			Name:               name,
			Available:          client.Available(),
			SupportsFileUpload: client.SupportsFileUpload(),
		})
	}

	respond.OK(c, OptionsResponse{
		Modes:     processing.Modes(),
		Providers: providers,
		Presets:   processing.PresetNames(),
		Settings:  snap,
	})
}

// explain accepts either a multipart file (dry run against the real
// upload) or a JSON body naming a hypothetical file.
func (h *Handler) explain(c *gin.Context) {
	fileName, size, ok := explainTarget(c)
	if !ok {
		return
	}

	strategy, err := h.Svc.Explain(c.Request.Context(), fileName, size, middleware.SessionIDFromContext(c))
	if err != nil {
		h.writeProcessError(c, err)
		return
	}

	respond.OK(c, ExplainResponse{
		FileName: fileName,
		FileSize: size,
		Strategy: strategy,
	})
}

func explainTarget(c *gin.Context) (string, int64, bool) {
	if fileHeader, err := c.FormFile("resume"); err == nil {
		return fileHeader.Filename, fileHeader.Size, true
	}

	var body struct {
		FileName string `json:"fileName"`
		FileSize int64  `json:"fileSize"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "provide a resume file or a JSON body with fileName and fileSize", nil)
		return "", 0, false
	}
	if strings.TrimSpace(body.FileName) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "fileName is required", nil)
		return "", 0, false
	}
	if body.FileSize <= 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "fileSize must be a positive integer", nil)
		return "", 0, false
	}
	return body.FileName, body.FileSize, true
}

func (h *Handler) download(c *gin.Context) {
	resumeID := c.Param("resumeId")
	resume, err := h.Svc.GetByID(c.Request.Context(), resumeID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to load resume", nil)
		return
	}
	if resume.StorageKey == "" {
		respond.Error(c, http.StatusNotFound, "not_found", "resume file was not stored", nil)
		return
	}

	if presigner, ok := h.Svc.Store.(object.Presigner); ok {
		url, err := presigner.PresignGet(c.Request.Context(), resume.StorageKey, downloadURLExpiry)
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, "internal", "failed to mint download URL", nil)
			return
		}
		respond.OK(c, gin.H{
			"downloadUrl":      url,
			"expiresInSeconds": int(downloadURLExpiry / time.Second),
		})
		return
	}

	body, err := h.Svc.Store.Open(c.Request.Context(), resume.StorageKey)
	if err != nil {
		respond.Error(c, http.StatusNotFound, "not_found", "stored file unavailable", nil)
		return
	}
	defer body.Close()

	c.Header("Content-Disposition", `attachment; filename="`+resume.FileName+`"`)
	c.Header("Content-Type", "application/octet-stream")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, body)
}

func (h *Handler) listByUser(c *gin.Context) {
	userID := c.Param("userId")
	list, err := h.Svc.ListByUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to list resumes", nil)
		return
	}

	out := make([]ResumeSummary, 0, len(list))
	for _, resume := range list {
		summary := toSummary(resume)
		if resume.StorageKey != "" {
			summary.DownloadURL = "/api/v1/download/" + resume.ID
		}
		out = append(out, summary)
	}
	respond.OK(c, gin.H{"resumes": out, "count": len(out)})
}

func (h *Handler) delete(c *gin.Context) {
	resumeID := c.Param("resumeId")
	if err := h.Svc.Delete(c.Request.Context(), resumeID); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to delete resume", nil)
		return
	}
	respond.OK(c, gin.H{"deleted": true, "resumeId": resumeID})
}

func (h *Handler) storageStatus(c *gin.Context) {
	_, presign := h.Svc.Store.(object.Presigner)
	respond.OK(c, gin.H{
		"storeType":         h.Svc.StoreType,
		"configured":        h.Svc.Store != nil,
		"supportsPresign":   presign,
		"supportsDelete":    supportsDelete(h.Svc.Store),
		"uploadNonBlocking": true,
	})
}

func supportsDelete(store object.ObjectStore) bool {
	_, ok := store.(object.Deleter)
	return ok
}
