package ai

import (
	"context"

	"resumeforge/internal/types"
)

// AIProvider interface for different AI implementations
// All methods return token usage information - callers can ignore it if not needed
type AIProvider interface {
	ParseResume(ctx context.Context, rawText string) (types.ResumeData, *TokenUsage, error)
	ScoreResume(ctx context.Context, resume types.ResumeData, jobDescription string) (types.AtsAnalysis, *TokenUsage, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	Close() error
}
