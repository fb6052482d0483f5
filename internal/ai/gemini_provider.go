package ai

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"net"
	"net/http"
	"time"

	"resumeforge/internal/config"
	forgeErrors "resumeforge/internal/errors"
	"resumeforge/internal/types"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

// GeminiProvider implements AIProvider for Google Gemini
type GeminiProvider struct {
	client         *genai.Client
	httpClient     *http.Client
	config         *config.OperationAIConfig
	circuitBreaker *AICircuitBreaker
	modelBreaker   *ModelCircuitBreaker
	logger         *forgeErrors.Logger
}

// Ensure GeminiProvider implements AIProvider
var _ AIProvider = (*GeminiProvider)(nil)

// NewGeminiProvider creates a new Gemini provider instance for a specific operation
func NewGeminiProvider(cfg *config.OperationAIConfig, operationType string, logger *forgeErrors.Logger) (*GeminiProvider, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, forgeErrors.NewAIError(forgeErrors.ErrCodeAIServiceFailed,
			"Failed to create Gemini client", err)
	}

	// Initialize circuit breaker with operation-specific configuration
	circuitBreaker := NewAICircuitBreaker(operationType, cfg, logger)
	modelBreaker := NewModelCircuitBreaker(operationType, cfg, logger)

	return &GeminiProvider{
		client: client,
		httpClient: &http.Client{
			Timeout: *cfg.Timeout,
		},
		config:         cfg,
		circuitBreaker: circuitBreaker,
		modelBreaker:   modelBreaker,
		logger:         logger,
	}, nil
}

// ModelInfo represents information about the AI model
type ModelInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Version     string `json:"version,omitempty"`
	Available   bool   `json:"available"`
	Error       string `json:"error,omitempty"`
}

// GetModelInfo checks the readiness and availability of the configured model
func (g *GeminiProvider) GetModelInfo(ctx context.Context) *ModelInfo {
	modelInfo := &ModelInfo{
		Name:      g.config.Model,
		Available: false,
	}

	// Create a timeout context for the model check
	timeout := g.modelCheckTimeout()
	checkCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Get model information from Gemini API with circuit breaker
	model, err := g.modelBreaker.ExecuteModel(func() (*genai.Model, error) {
		return g.client.Models.Get(checkCtx, g.config.Model, &genai.GetModelConfig{})
	})
	if err != nil {
		modelInfo.Error = fmt.Sprintf("Failed to get model info: %v", err)

		g.logger.Warn("Model availability check failed",
			"model", g.config.Model,
			"provider", g.config.Provider,
			"error", err.Error())
		return modelInfo
	}

	// Model is available, populate info
	modelInfo.Available = true
	if model.DisplayName != "" {
		modelInfo.DisplayName = model.DisplayName
	}
	if model.Version != "" {
		modelInfo.Version = model.Version
	}

	g.logger.Debug("Model availability check successful",
		"model", g.config.Model,
		"provider", g.config.Provider,
		"display_name", modelInfo.DisplayName,
		"version", modelInfo.Version)

	return modelInfo
}

// executeWithRetry executes an AI operation with retry logic and exponential backoff
func (g *GeminiProvider) executeWithRetry(ctx context.Context, operation string, fn func() (*genai.GenerateContentResponse, error)) (*genai.GenerateContentResponse, error) {
	var lastErr error

	for attempt := 0; attempt <= *g.config.MaxRetries; attempt++ {
		if attempt > 0 {
			// Log retry attempt
			g.logger.Warn("Retrying AI operation",
				"operation", operation,
				"attempt", attempt,
				"max_retries", *g.config.MaxRetries,
				"error", lastErr.Error())

			// Exponential backoff with jitter to prevent thundering herd
			baseDelay := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			// Use crypto/rand for secure random jitter
			jitterMax := big.NewInt(int64(float64(baseDelay) * 0.1))
			jitterBig, _ := rand.Int(rand.Reader, jitterMax)
			jitter := time.Duration(jitterBig.Int64())
			// Cap maximum backoff at 30 seconds
			backoff := min(baseDelay+jitter, 30*time.Second)

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		result, err := fn()
		if err == nil {
			if attempt > 0 {
				g.logger.Info("AI operation succeeded after retry",
					"operation", operation,
					"successful_attempt", attempt+1,
					"total_attempts", attempt+1)
			}
			return result, nil
		}

		lastErr = err

		// Don't retry on certain errors (auth, invalid input, etc.)
		if !g.isRetryableError(err) {
			g.logger.Debug("Error is not retryable, stopping retry attempts",
				"operation", operation,
				"error", err.Error())
			break
		}
	}

	// Log final failure
	g.logger.LogError(lastErr, "AI operation failed after all retry attempts",
		"operation", operation,
		"total_attempts", *g.config.MaxRetries+1)

	return nil, fmt.Errorf("operation '%s' failed after %d retries: %w", operation, *g.config.MaxRetries, lastErr)
}

// isRetryableError determines if an error should trigger a retry
func (g *GeminiProvider) isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Check for network errors (timeouts, connection issues)
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return true // Retry on timeouts
		}
		// Consider other network errors retryable (e.g., connection refused)
		return true
	}

	// Check for Google API errors (HTTP status codes)
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}

	return false
}

// executeAIOperation is a generic helper to run AI operations with common tracing, circuit breaker, and parsing logic.
// The raw response is validated against responseSchema before it is unmarshaled.
func executeAIOperation[Out any](
	g *GeminiProvider,
	ctx context.Context,
	operationName string,
	userPrompt string,
	systemPrompt string,
	responseSchema string,
	genaiConfig *genai.GenerateContentConfig,
	spanAttributes ...attribute.KeyValue,
) (Out, *TokenUsage, error) {
	var output Out
	tracer := otel.Tracer("resumeforge.ai.gemini")
	ctx, span := tracer.Start(ctx, "gemini."+operationName)
	defer span.End()

	// Set base attributes
	span.SetAttributes(
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", g.config.Model),
		attribute.Float64("ai.temperature", float64(*g.config.Temperature)),
	)
	span.SetAttributes(spanAttributes...)

	if *g.config.UseSystemPrompts && systemPrompt != "" {
		genaiConfig.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	result, err := g.circuitBreaker.Execute(func() (*genai.GenerateContentResponse, error) {
		return g.executeWithRetry(ctx, operationName, func() (*genai.GenerateContentResponse, error) {
			return g.client.Models.GenerateContent(ctx, g.config.Model, genai.Text(userPrompt), genaiConfig)
		})
	})

	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return output, nil, forgeErrors.NewAIError(forgeErrors.ErrCodeAIServiceFailed, "Failed to generate content for "+operationName, err)
	}

	responseText := result.Text()
	if err := validateResponseJSON(responseSchema, responseText); err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return output, nil, err
	}

	if err := json.Unmarshal([]byte(responseText), &output); err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return output, nil, forgeErrors.NewAIError(forgeErrors.ErrCodeMalformedResponse, "Failed to parse AI response for "+operationName, err)
	}

	tokenUsage := extractTokenUsage(result)
	if tokenUsage != nil {
		span.SetAttributes(
			attribute.Int64("ai.tokens.input", tokenUsage.InputTokens),
			attribute.Int64("ai.tokens.output", tokenUsage.OutputTokens),
			attribute.Int64("ai.tokens.total", tokenUsage.TotalTokens),
		)
	}

	span.SetAttributes(attribute.Bool("success", true))
	return output, tokenUsage, nil
}

// ParseResume implements AIProvider interface for structured resume extraction
func (g *GeminiProvider) ParseResume(ctx context.Context, rawText string) (types.ResumeData, *TokenUsage, error) {
	systemPrompt, userPrompt := g.getPromptsForParse(rawText)
	config := g.buildParseSchema()

	output, tokenUsage, err := executeAIOperation[types.ResumeData](
		g,
		ctx,
		"parse_resume",
		userPrompt,
		systemPrompt,
		parseResponseSchema,
		config,
		attribute.Int("input.raw_length", len(rawText)),
	)

	if err != nil {
		return types.ResumeData{}, nil, err
	}

	if err := output.Validate(); err != nil {
		return types.ResumeData{}, nil, forgeErrors.NewAIError(forgeErrors.ErrCodeMalformedResponse,
			"Extracted resume is missing required fields", err)
	}

	// Add operation-specific success metrics to the span created by the helper
	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.Int("output.experience_count", len(output.Experience)),
			attribute.Int("output.skill_categories", len(output.Skills)),
		)
	}

	return output, tokenUsage, nil
}

// ScoreResume implements AIProvider interface for ATS scoring
func (g *GeminiProvider) ScoreResume(ctx context.Context, resume types.ResumeData, jobDescription string) (types.AtsAnalysis, *TokenUsage, error) {
	resumeJSON, err := json.MarshalIndent(resume, "", "  ")
	if err != nil {
		return types.AtsAnalysis{}, nil, forgeErrors.NewInternalError("RESUME_ENCODE_FAILED",
			"Failed to encode resume for scoring", err)
	}

	systemPrompt, userPrompt := g.getPromptsForScore(string(resumeJSON), jobDescription)
	config := g.buildScoreSchema()

	output, tokenUsage, err := executeAIOperation[types.AtsAnalysis](
		g,
		ctx,
		"score_resume",
		userPrompt,
		systemPrompt,
		scoreResponseSchema,
		config,
		attribute.Int("input.resume_length", len(resumeJSON)),
		attribute.Bool("input.has_job_description", jobDescription != ""),
	)

	if err != nil {
		return types.AtsAnalysis{}, nil, err
	}

	if err := output.Validate(); err != nil {
		return types.AtsAnalysis{}, nil, forgeErrors.NewAIError(forgeErrors.ErrCodeMalformedResponse,
			"ATS analysis failed validation", err)
	}

	// Add operation-specific success metrics to the span created by the helper
	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.Int("ats.score", output.Score),
			attribute.Int("ats.suggestions_count", len(output.Suggestions)),
		)
	}

	return output, tokenUsage, nil
}

// GetCircuitBreakerStats returns circuit breaker statistics
func (g *GeminiProvider) GetCircuitBreakerStats() map[string]any {
	stats := map[string]any{
		"ai_operations":    g.circuitBreaker.GetStats(),
		"model_operations": g.modelBreaker.GetModelStats(),
	}

	// Overall health - both breakers must be healthy
	aiHealthy := g.circuitBreaker.IsHealthy()
	modelHealthy := g.modelBreaker.IsModelHealthy()
	stats["overall_healthy"] = aiHealthy && modelHealthy

	return stats
}

// Close implements AIProvider interface
func (g *GeminiProvider) Close() error {
	// Gemini client doesn't have a Close method in current single-shot usage
	// Probably needed in streaming mode
	return nil
}

// buildParseSchema creates the structured-output schema for extraction requests
func (g *GeminiProvider) buildParseSchema() *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"name": {Type: genai.TypeString, Description: "Full name of the applicant."},
				"contact": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"phone":     {Type: genai.TypeString, Description: "Phone number."},
						"email":     {Type: genai.TypeString, Description: "Email address."},
						"location":  {Type: genai.TypeString, Description: "City and State, e.g., 'San Francisco, CA'."},
						"linkedin":  {Type: genai.TypeString, Description: "URL of LinkedIn profile."},
						"portfolio": {Type: genai.TypeString, Description: "URL of personal portfolio or website."},
					},
					Required: []string{"phone", "email", "location"},
				},
				"summary": {Type: genai.TypeString, Description: "The professional summary or objective statement."},
				"experience": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"company":  {Type: genai.TypeString},
							"jobTitle": {Type: genai.TypeString},
							"dates":    {Type: genai.TypeString, Description: "Employment dates, e.g., 'Jan 2020 - Present'."},
							"description": {
								Type:        genai.TypeArray,
								Items:       &genai.Schema{Type: genai.TypeString},
								Description: "List of achievements and responsibilities as bullet points.",
							},
						},
						Required: []string{"company", "jobTitle", "dates", "description"},
					},
				},
				"education": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"institution": {Type: genai.TypeString},
							"degree":      {Type: genai.TypeString},
							"dates":       {Type: genai.TypeString, Description: "Dates of attendance, e.g., 'Graduated May 2016'."},
							"gpa":         {Type: genai.TypeString, Description: "Grade Point Average, if available."},
						},
						Required: []string{"institution", "degree", "dates"},
					},
				},
				"skills": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"category": {Type: genai.TypeString, Description: "The category of the skill, e.g., 'Cloud & Platforms'."},
							"details":  {Type: genai.TypeString, Description: "A comma-separated string of skills for that category."},
						},
						Required: []string{"category", "details"},
					},
					Description: "List of relevant skills, grouped by category.",
				},
				"certifications": {
					Type:        genai.TypeArray,
					Items:       &genai.Schema{Type: genai.TypeString},
					Description: "List of certifications.",
				},
			},
			Required: []string{"name", "contact", "summary", "experience", "education", "skills"},
		},
	}

	// Apply temperature configuration if set
	if *g.config.Temperature > 0 {
		config.Temperature = g.config.Temperature
	}

	return config
}

// buildScoreSchema creates the structured-output schema for scoring requests
func (g *GeminiProvider) buildScoreSchema() *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"score": {Type: genai.TypeInteger, Description: "Overall ATS score from 0 to 100."},
				"suggestions": {
					Type:        genai.TypeArray,
					Items:       &genai.Schema{Type: genai.TypeString},
					Description: "List of actionable suggestions for improvement.",
				},
				"keywords": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"matched": {
							Type:        genai.TypeArray,
							Items:       &genai.Schema{Type: genai.TypeString},
							Description: "Keywords from the job description found in the resume.",
						},
						"missing": {
							Type:        genai.TypeArray,
							Items:       &genai.Schema{Type: genai.TypeString},
							Description: "Important keywords from the job description missing from the resume.",
						},
					},
				},
			},
			Required: []string{"score", "suggestions"},
		},
	}

	// Apply temperature configuration if set
	if *g.config.Temperature > 0 {
		config.Temperature = g.config.Temperature
	}

	return config
}

// getPromptsForParse returns system and user prompts for extraction
func (g *GeminiProvider) getPromptsForParse(rawText string) (string, string) {
	systemPrompt := g.getSystemPrompt("parse")
	userPrompt := g.getUserPrompt("parse")

	// Format user prompt with dynamic content
	formattedUserPrompt := fmt.Sprintf(userPrompt, rawText)

	return systemPrompt, formattedUserPrompt
}

// getPromptsForScore returns system and user prompts for scoring
func (g *GeminiProvider) getPromptsForScore(resumeJSON, jobDescription string) (string, string) {
	systemPrompt := g.getSystemPrompt("score")
	userPrompt := g.getUserPrompt("score")

	jobContext := ScoreNoJobContext
	if jobDescription != "" {
		jobContext = fmt.Sprintf(ScoreJobContextTemplate, jobDescription)
	}

	formattedUserPrompt := fmt.Sprintf(userPrompt, jobContext, resumeJSON)

	return systemPrompt, formattedUserPrompt
}

// getSystemPrompt returns the appropriate system prompt
func (g *GeminiProvider) getSystemPrompt(promptType string) string {
	loadedPrompts, configPrompts := g.getPrompts(promptType)
	var configSystemPrompts *config.SystemPrompts
	if configPrompts != nil {
		configSystemPrompts = &configPrompts.SystemPrompts
	} else {
		// Create an empty struct to avoid nil pointer panics
		configSystemPrompts = &config.SystemPrompts{}
	}

	switch promptType {
	case "parse":
		return resolvePrompt(
			loadedPrompts.SystemPrompts.ParseResume,
			configSystemPrompts.ParseResume,
			DefaultSystemPrompts.ParseResume,
		)
	case "score":
		return resolvePrompt(
			loadedPrompts.SystemPrompts.ScoreResume,
			configSystemPrompts.ScoreResume,
			DefaultSystemPrompts.ScoreResume,
		)
	default:
		return ""
	}
}

// getUserPrompt returns the appropriate user prompt template
func (g *GeminiProvider) getUserPrompt(promptType string) string {
	loadedPrompts, configPrompts := g.getPrompts(promptType)
	var configUserPrompts *config.UserPrompts
	if configPrompts != nil {
		configUserPrompts = &configPrompts.UserPrompts
	} else {
		// Create an empty struct to avoid nil pointer panics
		configUserPrompts = &config.UserPrompts{}
	}

	switch promptType {
	case "parse":
		return resolvePrompt(
			loadedPrompts.UserPrompts.ParseResume,
			configUserPrompts.ParseResume,
			DefaultUserPrompts.ParseResume,
		)
	case "score":
		return resolvePrompt(
			loadedPrompts.UserPrompts.ScoreResume,
			configUserPrompts.ScoreResume,
			DefaultUserPrompts.ScoreResume,
		)
	default:
		return ""
	}
}

// TokenUsage represents token usage information from AI responses
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// extractTokenUsage extracts token usage information from Gemini API response
func extractTokenUsage(result *genai.GenerateContentResponse) *TokenUsage {
	if result == nil || result.UsageMetadata == nil {
		return nil
	}

	usage := result.UsageMetadata
	return &TokenUsage{
		InputTokens:  int64(usage.PromptTokenCount),
		OutputTokens: int64(usage.CandidatesTokenCount),
		TotalTokens:  int64(usage.TotalTokenCount),
	}
}

// modelCheckTimeout bounds the model availability check using the
// operation's configured timeout.
func (g *GeminiProvider) modelCheckTimeout() time.Duration {
	if g.config != nil && g.config.Timeout != nil && *g.config.Timeout > 0 {
		return *g.config.Timeout
	}
	return 10 * time.Second
}

// getPrompts returns the appropriate prompts for the operation, prioritizing loaded content over config
func (g *GeminiProvider) getPrompts(operationType string) (config.OperationLoadedPrompts, *config.PromptConfig) {
	// Get loaded prompts (returns a copy)
	loadedPrompts := config.GetPromptsForOperation(operationType)
	configPrompts := &g.config.CustomPrompts
	return loadedPrompts, configPrompts
}

// resolvePrompt selects the correct prompt string based on a clear priority order:
// 1. A prompt loaded from a file.
// 2. A prompt defined directly in the configuration.
// 3. A hardcoded default prompt.
func resolvePrompt(loadedFromFile, fromConfig, fromDefault string) string {
	if loadedFromFile != "" {
		return loadedFromFile
	}
	if fromConfig != "" {
		return fromConfig
	}
	return fromDefault
}
