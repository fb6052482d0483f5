package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"resumeforge/internal/observability"
	"resumeforge/internal/store"
	"resumeforge/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// createListResumesHandler returns the caller's saved resumes, most recently
// updated first.
func (s *Server) createListResumesHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumeforge.api")
		ctx, span := tracer.Start(ctx, "api.resumes.list")
		defer span.End()

		userID := requestUserID(r, s.DefaultUserID)
		records, err := s.Resumes.List(ctx, userID)

		metrics := om.GetMetrics()
		metrics.RecordBusinessMetric(ctx, "storage_op", err == nil, om,
			attribute.String("storage.operation", "list"))

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "storage"))
			writeErrorResponse(w, "Failed to list resumes", err.Error(), http.StatusInternalServerError)
			return
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.resume_count", len(records)),
		)

		if records == nil {
			records = []types.SavedResume{}
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(records); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createSaveResumeHandler creates or updates a saved resume for the caller
func (s *Server) createSaveResumeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumeforge.api")
		ctx, span := tracer.Start(ctx, "api.resumes.save")
		defer span.End()

		var req SaveResumeRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.Name) == "" {
			req.Name = req.Resume.Name
		}
		if err := req.Resume.Validate(); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid resume", err.Error(), http.StatusBadRequest)
			return
		}

		userID := requestUserID(r, s.DefaultUserID)
		record := types.SavedResume{
			ID:         req.ID,
			Name:       req.Name,
			RawText:    req.RawText,
			ResumeData: req.Resume,
			UserID:     userID,
		}

		saved, err := s.Resumes.Save(ctx, record)

		metrics := om.GetMetrics()
		metrics.RecordBusinessMetric(ctx, "storage_op", err == nil, om,
			attribute.String("storage.operation", "save"))

		if err != nil {
			span.RecordError(err)
			if store.IsNotFound(err) {
				span.SetAttributes(attribute.String("error.type", "not_found"))
				writeErrorResponse(w, "Resume not found", err.Error(), http.StatusNotFound)
				return
			}
			span.SetAttributes(attribute.String("error.type", "storage"))
			metrics.RecordBusinessMetric(ctx, "resume_saved", false, om)
			writeErrorResponse(w, "Failed to save resume", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics.RecordBusinessMetric(ctx, "resume_saved", true, om,
			attribute.Bool("created", req.ID == ""))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Bool("created", req.ID == ""),
		)

		status := http.StatusOK
		if req.ID == "" {
			status = http.StatusCreated
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if err := json.NewEncoder(w).Encode(saved); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createDeleteResumeHandler removes one saved resume owned by the caller
func (s *Server) createDeleteResumeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumeforge.api")
		ctx, span := tracer.Start(ctx, "api.resumes.delete")
		defer span.End()

		id := r.PathValue("id")
		if id == "" {
			writeErrorResponse(w, "Missing resume id", "resume id is required in the URL path", http.StatusBadRequest)
			return
		}

		userID := requestUserID(r, s.DefaultUserID)
		err := s.Resumes.Delete(ctx, userID, id)

		metrics := om.GetMetrics()
		metrics.RecordBusinessMetric(ctx, "storage_op", err == nil, om,
			attribute.String("storage.operation", "delete"))

		if err != nil {
			span.RecordError(err)
			if store.IsNotFound(err) {
				span.SetAttributes(attribute.String("error.type", "not_found"))
				writeErrorResponse(w, "Resume not found", err.Error(), http.StatusNotFound)
				return
			}
			span.SetAttributes(attribute.String("error.type", "storage"))
			writeErrorResponse(w, "Failed to delete resume", err.Error(), http.StatusInternalServerError)
			return
		}

		span.SetAttributes(attribute.Bool("success", true))
		w.WriteHeader(http.StatusNoContent)
	}
}
