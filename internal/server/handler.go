package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"resumeforge/internal/ai"
	"resumeforge/internal/config"
	"resumeforge/internal/docx"
	"resumeforge/internal/observability"
	"resumeforge/internal/render"
	"resumeforge/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// createFormatHandler wraps the format handler with observability
func (s *Server) createFormatHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumeforge.api")
		ctx, span := tracer.Start(ctx, "api.format")
		defer span.End()

		// Parse request
		var req FormatRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		// Validation
		if strings.TrimSpace(req.RawText) == "" {
			err := fmt.Errorf("missing resume text")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing resume text", "rawText field is required", http.StatusBadRequest)
			return
		}

		// Size validation
		if len(req.RawText) > int(s.MaxRequestSize/2) {
			err := fmt.Errorf("resume text too large: %d chars", len(req.RawText))
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Resume text too large", fmt.Sprintf("rawText exceeds recommended size limit of %d characters", s.MaxRequestSize/2), http.StatusBadRequest)
			return
		}

		template, err := s.templateOrDefault(req.Template)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid template", err.Error(), http.StatusBadRequest)
			return
		}

		// Add request attributes to span
		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.RawText)),
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("request.template", string(template)),
			attribute.String("operation", "format"),
		)

		// Create AI service for parse operation
		parseConfig := s.AppConfig.GetParseConfig()
		aiService, err := s.aiService(&parseConfig, "parse")
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeErrorResponse(w, "Failed to create AI service", err.Error(), http.StatusInternalServerError)
			return
		}

		// Track AI operation with observability and token usage
		metrics := om.GetMetrics()
		var resume types.ResumeData
		err = metrics.TrackAIOperationWithTokens(ctx, "parse", func(ctx context.Context) *observability.AIOperationResult {
			output, tokenUsage, aiErr := aiService.Provider.ParseResume(ctx, req.RawText)
			resume = output
			return &observability.AIOperationResult{
				Error:      aiErr,
				TokenUsage: (*observability.TokenUsage)(tokenUsage),
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "ai_processing"))
			metrics.RecordBusinessMetric(ctx, "resume_parsed", false, om,
				attribute.String("error", err.Error()))
			writeErrorResponse(w, "Failed to parse resume", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics.RecordBusinessMetric(ctx, "resume_parsed", true, om,
			attribute.Int("request.resume_length", len(req.RawText)))

		// Score against the job description when one was supplied. Scoring runs
		// on the resume produced above so the analysis matches the response body.
		// A scoring failure keeps the extracted resume; the response reports the
		// failure in analysisError instead of discarding the parse result.
		var analysis *types.AtsAnalysis
		var analysisError string
		if strings.TrimSpace(req.JobDescription) != "" {
			result, scoreErr := s.scoreResume(ctx, om, resume, req.JobDescription)
			if scoreErr != nil {
				span.RecordError(scoreErr)
				span.SetAttributes(attribute.String("error.type", "ai_processing"))
				s.Logger.LogError(scoreErr, "Scoring failed, returning unscored resume")
				analysisError = scoreErr.Error()
			} else {
				analysis = &result
			}
		}

		view, err := render.Render(resume, template)
		if err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Failed to render resume", err.Error(), http.StatusInternalServerError)
			return
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.experience_count", len(resume.Experience)),
		)
		if analysis != nil {
			span.SetAttributes(attribute.Int("ats.score", analysis.Score))
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(FormatResponse{Resume: resume, Analysis: analysis, AnalysisError: analysisError, View: view}); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createScoreHandler wraps the score handler with observability
func (s *Server) createScoreHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumeforge.api")
		ctx, span := tracer.Start(ctx, "api.score")
		defer span.End()

		var req ScoreRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if err := req.Resume.Validate(); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid resume", err.Error(), http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.JobDescription) == "" {
			err := fmt.Errorf("missing job description")
			span.RecordError(err)
			writeErrorResponse(w, "Missing job description", "jobDescription field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("operation", "score"),
		)

		result, err := s.scoreResume(ctx, om, req.Resume, req.JobDescription)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "ai_processing"))
			writeErrorResponse(w, "Failed to score resume", err.Error(), http.StatusInternalServerError)
			return
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("ats.score", result.Score),
			attribute.Int("suggestions_count", len(result.Suggestions)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// aiService builds the per-request AI service through the server's factory.
func (s *Server) aiService(cfg *config.OperationAIConfig, operationType string) (*ai.Service, error) {
	if s.AIFactory != nil {
		return s.AIFactory(cfg, operationType, s.Logger)
	}
	return ai.NewService(cfg, operationType, s.Logger)
}

// scoreResume runs one ATS scoring call with metrics. Shared by the score
// endpoint and the format endpoint's optional scoring pass.
func (s *Server) scoreResume(ctx context.Context, om *observability.ObservabilityManager, resume types.ResumeData, jobDescription string) (types.AtsAnalysis, error) {
	scoreConfig := s.AppConfig.GetScoreConfig()
	aiService, err := s.aiService(&scoreConfig, "score")
	if err != nil {
		return types.AtsAnalysis{}, err
	}

	metrics := om.GetMetrics()
	var result types.AtsAnalysis
	err = metrics.TrackAIOperationWithTokens(ctx, "score", func(ctx context.Context) *observability.AIOperationResult {
		output, tokenUsage, aiErr := aiService.Provider.ScoreResume(ctx, resume, jobDescription)
		result = output
		return &observability.AIOperationResult{
			Error:      aiErr,
			TokenUsage: (*observability.TokenUsage)(tokenUsage),
		}
	}, om)

	if err != nil {
		metrics.RecordBusinessMetric(ctx, "resume_scored", false, om,
			attribute.String("error", err.Error()))
		return types.AtsAnalysis{}, err
	}

	metrics.RecordBusinessMetric(ctx, "resume_scored", true, om,
		attribute.Int("ats.score", result.Score))
	return result, nil
}

// createExportHandler wraps the export handler with observability
func (s *Server) createExportHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumeforge.api")
		ctx, span := tracer.Start(ctx, "api.export")
		defer span.End()

		var req ExportRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if err := req.Resume.Validate(); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid resume", err.Error(), http.StatusBadRequest)
			return
		}

		template, err := s.templateOrDefault(req.Template)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid template", err.Error(), http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.String("request.template", string(template)),
			attribute.String("operation", "export"),
		)

		payload, err := docx.Export(req.Resume, template)
		metrics := om.GetMetrics()
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "export"))
			metrics.RecordBusinessMetric(ctx, "resume_exported", false, om,
				attribute.String("error", err.Error()))
			writeErrorResponse(w, "Failed to export resume", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics.RecordBusinessMetric(ctx, "resume_exported", true, om,
			attribute.String("template", string(template)),
			attribute.Int("document_bytes", len(payload)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.document_bytes", len(payload)),
		)

		filename := docx.Filename(req.Resume.Name)
		w.Header().Set("Content-Type", docx.MIMEType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		if _, err := w.Write(payload); err != nil {
			span.RecordError(err)
			s.Logger.LogError(err, "Failed to write document response")
		}
	}
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Check if this request was rate limited by examining the response
			// We'll wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			// If rate limited, record metric
			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordBusinessMetric(r.Context(), "rate_limit_hit", true, om,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
