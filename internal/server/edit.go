package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"resumeforge/internal/observability"
	"resumeforge/internal/render"

	"go.opentelemetry.io/otel/attribute"
)

// createEditHandler wraps the edit handler with observability. The endpoint
// applies inline edits addressed by view field paths to a resume and returns
// the updated resume with a freshly rendered view.
func (s *Server) createEditHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumeforge.api")
		ctx, span := tracer.Start(ctx, "api.edit")
		defer span.End()

		var req EditRequest
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
		if len(req.Edits) == 0 {
			err := fmt.Errorf("missing edits")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing edits", "edits field requires at least one operation", http.StatusBadRequest)
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
			attribute.Int("request.edit_count", len(req.Edits)),
			attribute.String("request.template", string(template)),
			attribute.String("operation", "edit"),
		)

		metrics := om.GetMetrics()
		resume := req.Resume
		for _, op := range req.Edits {
			if op.Remove {
				resume, err = render.RemoveItem(resume, op.Path)
			} else {
				resume, err = render.SetField(resume, op.Path, op.Value)
			}
			if err != nil {
				span.RecordError(err)
				span.SetAttributes(attribute.String("error.type", "validation"))
				metrics.RecordBusinessMetric(ctx, "resume_edited", false, om,
					attribute.String("error", err.Error()))
				writeErrorResponse(w, "Invalid edit", err.Error(), http.StatusBadRequest)
				return
			}
		}

		view, err := render.Render(resume, template)
		if err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Failed to render resume", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics.RecordBusinessMetric(ctx, "resume_edited", true, om,
			attribute.Int("request.edit_count", len(req.Edits)))

		span.SetAttributes(attribute.Bool("success", true))

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(FormatResponse{Resume: resume, View: view}); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}
