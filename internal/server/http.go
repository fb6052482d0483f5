package server

import (
	"time"

	"resumeforge/internal/ai"
	"resumeforge/internal/config"
	resumeforgeErrors "resumeforge/internal/errors"
	"resumeforge/internal/render"
	"resumeforge/internal/store"
	"resumeforge/internal/types"
)

// FormatRequest represents the request body for the format endpoint
type FormatRequest struct {
	RawText        string `json:"rawText"`
	JobDescription string `json:"jobDescription,omitempty"`
	Template       string `json:"template,omitempty"`
}

// ScoreRequest represents the request body for the score endpoint
type ScoreRequest struct {
	Resume         types.ResumeData `json:"resume"`
	JobDescription string           `json:"jobDescription"`
}

// ExportRequest represents the request body for the export endpoint
type ExportRequest struct {
	Resume   types.ResumeData `json:"resume"`
	Template string           `json:"template,omitempty"`
}

// SaveResumeRequest represents the request body for saving a resume.
// An empty ID creates a new record; a known ID updates it in place.
type SaveResumeRequest struct {
	ID      string           `json:"id,omitempty"`
	Name    string           `json:"name"`
	RawText string           `json:"rawText"`
	Resume  types.ResumeData `json:"resume"`
}

// EditOp is one inline edit addressed by a view field path. Remove drops
// the addressed list element; otherwise the leaf is replaced with Value.
type EditOp struct {
	Path   string `json:"path"`
	Value  string `json:"value,omitempty"`
	Remove bool   `json:"remove,omitempty"`
}

// EditRequest represents the request body for the edit endpoint. Edits are
// applied in order against the supplied resume.
type EditRequest struct {
	Resume   types.ResumeData `json:"resume"`
	Edits    []EditOp         `json:"edits"`
	Template string           `json:"template,omitempty"`
}

// FormatResponse carries the extraction result, the optional job-description
// scoring, and the rendered editable view for the requested template. When
// scoring fails after a successful extraction, the resume and view are still
// returned and AnalysisError carries the failure.
type FormatResponse struct {
	Resume        types.ResumeData   `json:"resume"`
	Analysis      *types.AtsAnalysis `json:"analysis,omitempty"`
	AnalysisError string             `json:"analysisError,omitempty"`
	View          render.View        `json:"view"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	// API Authentication: key -> storage user id
	APIKeys map[string]string

	// User identity applied when no API keys are configured
	DefaultUserID string

	// Saved-resume persistence
	Resumes store.Store

	// AI service construction, overridable in tests
	AIFactory func(cfg *config.OperationAIConfig, operationType string, logger *resumeforgeErrors.Logger) (*ai.Service, error)

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Request size limit
	MaxRequestSize int64

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	// Logger
	Logger *resumeforgeErrors.Logger
}

// ServerConfig holds configuration for creating a Server instance
type ServerConfig struct {
	Host           string
	Port           string
	Version        string
	APIKeys        []string
	Users          map[string]string
	DefaultUserID  string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxRequestSize int64
	RateLimit      *config.RateLimitConfig
}

// NewServer creates a new Server instance from a ServerConfig struct
func NewServer(appCfg *config.Config, cfg ServerConfig, resumes store.Store, logger *resumeforgeErrors.Logger) *Server {
	// Map each API key to its storage user id. Keys without an explicit user
	// mapping fall back to the key itself so storage stays scoped per key.
	apiKeyMap := make(map[string]string)
	for _, key := range cfg.APIKeys {
		if key == "" {
			continue
		}
		if userID, ok := cfg.Users[key]; ok && userID != "" {
			apiKeyMap[key] = userID
		} else {
			apiKeyMap[key] = key
		}
	}

	defaultUserID := cfg.DefaultUserID
	if defaultUserID == "" {
		defaultUserID = "local"
	}

	var rateLimiter *RateLimiter
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.Window,
			cfg.RateLimit.BurstCapacity,
			logger,
		)
	}

	return &Server{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        cfg.Version,
		AppConfig:      appCfg,
		APIKeys:        apiKeyMap,
		DefaultUserID:  defaultUserID,
		Resumes:        resumes,
		AIFactory:      ai.NewService,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxRequestSize: cfg.MaxRequestSize,
		RateLimit:      cfg.RateLimit,
		RateLimiter:    rateLimiter,
		Logger:         logger,
	}
}

// templateOrDefault resolves a request's template selector, falling back to
// the configured default when the field is empty.
func (s *Server) templateOrDefault(requested string) (types.TemplateName, error) {
	if requested == "" && s.AppConfig != nil {
		requested = s.AppConfig.App.DefaultTemplate
	}
	return types.ParseTemplateName(requested)
}
