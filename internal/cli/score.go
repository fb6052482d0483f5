package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"resumeforge/internal/ai"
	"resumeforge/internal/common"
	"resumeforge/internal/types"

	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score [resume-json-file] [job-description-file]",
	Short: "Score a parsed resume against a job description",
	Long: `Score a parsed resume against a job description using AI analysis.
The command takes two arguments: the path to a structured resume JSON file
(as produced by the format command) and the path to the job description
file in plain text.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if scoreConfig.OutputFormat == "" {
			scoreConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(scoreConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runScore,
}

var scoreConfig common.CommandConfig

// scoreInput carries the parsed resume and job description for one scoring call
type scoreInput struct {
	Resume         types.ResumeData
	JobDescription string
}

func init() {
	scoreCmd.Flags().StringVarP(&scoreConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	scoreCmd.Flags().StringVar(&scoreConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = scoreCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	// Create AI service for score operation
	scoreAIConfig := cfg.GetScoreConfig()
	aiService, err := ai.NewService(&scoreAIConfig, "score", logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}

	createInput := func(contents []string) (scoreInput, error) {
		if len(contents) != 2 {
			return scoreInput{}, fmt.Errorf("expected 2 file paths, got %d", len(contents))
		}

		var resume types.ResumeData
		if err := json.Unmarshal([]byte(contents[0]), &resume); err != nil {
			return scoreInput{}, fmt.Errorf("resume file is not valid resume JSON: %w", err)
		}
		if err := resume.Validate(); err != nil {
			return scoreInput{}, fmt.Errorf("invalid resume: %w", err)
		}

		return scoreInput{
			Resume:         resume,
			JobDescription: contents[1],
		}, nil
	}

	logDetails := func(input scoreInput, cfg common.CommandConfig) {
		logger.Info("Starting resume scoring",
			"experience_entries", len(input.Resume.Experience),
			"job_chars", len(input.JobDescription),
			"output_format", cfg.OutputFormat)
	}

	// Create a wrapper function that uses our specific AI service
	scoreOperation := func(ctx context.Context, input scoreInput) (types.AtsAnalysis, *ai.TokenUsage, error) {
		return aiService.Provider.ScoreResume(ctx, input.Resume, input.JobDescription)
	}

	err = common.RunAICommand(
		cmd.Context(),
		logger,
		scoreConfig,
		args,
		createInput,
		scoreOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to score resume: %w", err)
	}
	logger.Info("Resume scoring completed successfully")
	return nil
}
