package server

import (
	"context"
	"net/http"
	"strings"

	"resumeforge/internal/observability"
)

type contextKey string

const userIDContextKey contextKey = "resumeforge.userID"

// setupRoutes configures all HTTP routes and middleware
func (s *Server) setupRoutes(om *observability.ObservabilityManager) *http.ServeMux {
	mux := http.NewServeMux()

	// Add middleware layers with observability
	rateLimitHandler := s.createRateLimitMiddleware(om)
	requestLimitHandler := s.requestSizeLimitMiddleware()

	protected := func(h http.HandlerFunc) http.HandlerFunc {
		return rateLimitHandler(s.authMiddleware(requestLimitHandler(h)))
	}

	mux.HandleFunc("GET /health", s.healthHandler)
	mux.HandleFunc("GET /stats", s.statsHandler)
	mux.HandleFunc("POST /format", protected(s.createFormatHandler(om)))
	mux.HandleFunc("POST /score", protected(s.createScoreHandler(om)))
	mux.HandleFunc("POST /edit", protected(s.createEditHandler(om)))
	mux.HandleFunc("POST /export", protected(s.createExportHandler(om)))
	mux.HandleFunc("GET /resumes", protected(s.createListResumesHandler(om)))
	mux.HandleFunc("POST /resumes", protected(s.createSaveResumeHandler(om)))
	mux.HandleFunc("DELETE /resumes/{id}", protected(s.createDeleteResumeHandler(om)))

	return mux
}

// authMiddleware provides API key authentication and resolves the storage
// user identity for the request.
func (s *Server) authMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Skip authentication if no API keys are configured. All requests
		// then share the server's default user identity.
		if len(s.APIKeys) == 0 {
			next(w, r.WithContext(withUserID(r.Context(), s.DefaultUserID)))
			return
		}

		// Check for API key in X-API-Key header
		apiKey := r.Header.Get("X-API-Key")
		if apiKey == "" {
			// Check for Bearer token in Authorization header as fallback
			authHeader := r.Header.Get("Authorization")
			if after, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
				apiKey = after
			}
		}

		if apiKey == "" {
			s.Logger.Info("Authentication failed: missing API key",
				"endpoint", r.URL.Path,
				"client_ip", r.RemoteAddr)
			writeErrorResponse(w, "Missing API key", "X-API-Key header or Authorization Bearer token required", http.StatusUnauthorized)
			return
		}

		// Validate API key
		userID, ok := s.APIKeys[apiKey]
		if !ok {
			s.Logger.Info("Authentication failed: invalid API key",
				"endpoint", r.URL.Path,
				"client_ip", r.RemoteAddr,
				"api_key_prefix", maskAPIKey(apiKey))
			writeErrorResponse(w, "Invalid API key", "Unauthorized access", http.StatusUnauthorized)
			return
		}

		// Log successful authentication
		s.Logger.Debug("API authentication successful",
			"endpoint", r.URL.Path,
			"client_ip", r.RemoteAddr,
			"api_key_prefix", maskAPIKey(apiKey))

		next(w, r.WithContext(withUserID(r.Context(), userID)))
	}
}

func withUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

// requestUserID returns the authenticated user identity resolved by
// authMiddleware, or the fallback when the middleware did not run.
func requestUserID(r *http.Request, fallback string) string {
	if userID, ok := r.Context().Value(userIDContextKey).(string); ok && userID != "" {
		return userID
	}
	return fallback
}

// requestSizeLimitMiddleware limits the size of incoming requests
func (s *Server) requestSizeLimitMiddleware() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if s.MaxRequestSize > 0 {
				// Limit the request body size
				r.Body = http.MaxBytesReader(w, r.Body, s.MaxRequestSize)
			}

			next(w, r)
		}
	}
}

// maskAPIKey masks an API key for logging (shows only first 8 characters)
func maskAPIKey(apiKey string) string {
	if len(apiKey) <= 8 {
		return "****"
	}
	return apiKey[:8] + "****"
}
