package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"resumeforge/internal/ai"
)

// getHealthCheckTimeout returns the configured health check timeout
func (s *Server) getHealthCheckTimeout() time.Duration {
	return s.AppConfig.Observability.HealthCheck.Timeout
}

// healthHandler provides a comprehensive health check endpoint including AI model status
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"status":  "healthy",
		"service": "resumeforge",
		"version": s.Version,
	}

	// Check AI model availability for all operations
	aiStatus := s.checkAIModelsHealth()
	response["ai_models"] = aiStatus

	// Check circuit breaker status
	circuitBreakerStatus := s.checkCircuitBreakerHealth()
	response["circuit_breakers"] = circuitBreakerStatus

	// Report the storage backend in use
	response["storage"] = s.checkStorageHealth()

	// Determine overall health status
	overallHealthy := true
	for _, modelStatus := range aiStatus {
		if modelInfo, ok := modelStatus.(map[string]any); ok {
			if available, exists := modelInfo["available"]; exists {
				if avail, ok := available.(bool); ok && !avail {
					overallHealthy = false
					break
				}
			}
		}
	}

	if !overallHealthy {
		response["status"] = "degraded"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode health response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// checkAIModelsHealth checks the health of all AI models used by different operations
func (s *Server) checkAIModelsHealth() map[string]any {
	// Use configurable health check timeout
	timeout := s.getHealthCheckTimeout()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	aiStatus := make(map[string]any)

	// Check parse service model
	parseConfig := s.AppConfig.GetParseConfig()
	if parseService, err := ai.NewService(&parseConfig, "parse", s.Logger); err == nil {
		modelInfo := parseService.GetModelInfo(ctx)
		aiStatus["parse"] = modelInfo
	} else {
		aiStatus["parse"] = map[string]any{
			"available": false,
			"error":     fmt.Sprintf("Failed to create parse service: %v", err),
		}
	}

	// Check score service model
	scoreConfig := s.AppConfig.GetScoreConfig()
	if scoreService, err := ai.NewService(&scoreConfig, "score", s.Logger); err == nil {
		modelInfo := scoreService.GetModelInfo(ctx)
		aiStatus["score"] = modelInfo
	} else {
		aiStatus["score"] = map[string]any{
			"available": false,
			"error":     fmt.Sprintf("Failed to create score service: %v", err),
		}
	}

	return aiStatus
}

// checkCircuitBreakerHealth checks the health of circuit breakers for all AI operations
func (s *Server) checkCircuitBreakerHealth() map[string]any {
	circuitBreakerStatus := make(map[string]any)

	// Check parse service circuit breaker
	parseConfig := s.AppConfig.GetParseConfig()
	if _, err := ai.NewService(&parseConfig, "parse", s.Logger); err == nil {
		circuitBreakerStatus["parse"] = map[string]any{
			"available": true,
			"message":   "Circuit breaker integrated with parse service",
		}
	} else {
		circuitBreakerStatus["parse"] = map[string]any{
			"available": false,
			"error":     fmt.Sprintf("Failed to create parse service: %v", err),
		}
	}

	// Check score service circuit breaker
	scoreConfig := s.AppConfig.GetScoreConfig()
	if _, err := ai.NewService(&scoreConfig, "score", s.Logger); err == nil {
		circuitBreakerStatus["score"] = map[string]any{
			"available": true,
			"message":   "Circuit breaker integrated with score service",
		}
	} else {
		circuitBreakerStatus["score"] = map[string]any{
			"available": false,
			"error":     fmt.Sprintf("Failed to create score service: %v", err),
		}
	}

	return circuitBreakerStatus
}

// checkStorageHealth reports which persistence driver backs saved resumes
func (s *Server) checkStorageHealth() map[string]any {
	storageStatus := map[string]any{
		"available": s.Resumes != nil,
	}
	if s.AppConfig != nil {
		storageStatus["driver"] = s.AppConfig.Storage.Driver
	}
	return storageStatus
}

// statsHandler provides server statistics including rate limiting info
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"service": "resumeforge",
		"version": s.Version,
		"server": map[string]any{
			"max_request_size_bytes": s.MaxRequestSize,
		},
	}

	// Add rate limiting stats if enabled
	if s.RateLimiter != nil {
		response["rate_limiting"] = s.RateLimiter.GetStats()
	} else {
		response["rate_limiting"] = map[string]any{
			"enabled": false,
		}
	}

	// Add configuration info
	if s.RateLimit != nil {
		response["rate_limit_config"] = map[string]any{
			"enabled":          s.RateLimit.Enabled,
			"requests_per_min": s.RateLimit.RequestsPerMin,
			"burst_capacity":   s.RateLimit.BurstCapacity,
			"by_ip":            s.RateLimit.ByIP,
			"by_api_key":       s.RateLimit.ByAPIKey,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode stats response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// parseJSONRequest parses JSON request body into the provided struct
func parseJSONRequest(r *http.Request, v any) error {
	if r.Header.Get("Content-Type") != "application/json" {
		return fmt.Errorf("content-type must be application/json")
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return fmt.Errorf("request body too large (limit is %d bytes)", maxBytesErr.Limit)
		}
		return fmt.Errorf("failed to read request body: %w", err)
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			log.Printf("Failed to close request body: %v", err)
		}
	}()

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	return nil
}

// writeErrorResponse writes a standardized error response
func writeErrorResponse(w http.ResponseWriter, error, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{
		Error:   error,
		Message: message,
	}

	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode error response: %v", err)
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)
	}
}
