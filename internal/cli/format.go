package cli

import (
	"fmt"
	"strings"

	"resumeforge/internal/ai"
	"resumeforge/internal/common"
	"resumeforge/internal/errors"
	"resumeforge/internal/types"

	"github.com/spf13/cobra"
)

var formatCmd = &cobra.Command{
	Use:   "format [resume-file]",
	Short: "Extract structured data from raw resume text",
	Long: `Format raw resume text into structured data using AI extraction.
The command takes the path to a plain-text resume file. Pass --job with a
job description file to also score the extracted resume against it, or
--example to run on a built-in sample resume instead of a file.`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if !formatExample && len(args) != 1 {
			return fmt.Errorf("a resume file is required unless --example is set")
		}
		// Apply default format if not specified
		if formatConfig.OutputFormat == "" {
			formatConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(formatConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runFormat,
}

var (
	formatConfig  common.CommandConfig
	formatJobFile string
	formatExample bool
)

func init() {
	formatCmd.Flags().StringVarP(&formatConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	formatCmd.Flags().StringVar(&formatConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	formatCmd.Flags().StringVar(&formatJobFile, "job", "", "Job description file to score the resume against")
	formatCmd.Flags().BoolVar(&formatExample, "example", false, "Use the built-in sample resume instead of a file")

	// Add completion for format flag
	_ = formatCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runFormat(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	fileProcessor := common.NewFileProcessor(logger)
	outputHandler := common.NewOutputHandler(logger)

	rawText := exampleResumeText
	if !formatExample {
		contents, err := fileProcessor.ValidateAndReadFiles(args[0])
		if err != nil {
			return err
		}
		rawText = contents[0]
	}
	if strings.TrimSpace(rawText) == "" {
		return fmt.Errorf("resume file is empty")
	}

	var jobDescription string
	if formatJobFile != "" {
		contents, err := fileProcessor.ValidateAndReadFiles(formatJobFile)
		if err != nil {
			return err
		}
		jobDescription = contents[0]
	}

	logger.Info("Starting resume formatting",
		"resume_chars", len(rawText),
		"job_chars", len(jobDescription),
		"output_format", formatConfig.OutputFormat)

	// Create AI service for parse operation
	parseAIConfig := cfg.GetParseConfig()
	parseService, err := ai.NewService(&parseAIConfig, "parse", logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}

	resume, tokenUsage, err := parseService.Provider.ParseResume(cmd.Context(), rawText)
	if err != nil {
		return fmt.Errorf("failed to format resume: %w", err)
	}
	reportTokenUsage(logger, "parse", tokenUsage)

	result := types.FormatResult{Resume: resume}

	// Score the just-extracted resume when a job description was supplied
	if jobDescription != "" {
		scoreAIConfig := cfg.GetScoreConfig()
		scoreService, err := ai.NewService(&scoreAIConfig, "score", logger)
		if err != nil {
			return fmt.Errorf("failed to create AI service: %w", err)
		}

		analysis, scoreUsage, err := scoreService.Provider.ScoreResume(cmd.Context(), resume, jobDescription)
		if err != nil {
			return fmt.Errorf("failed to score resume: %w", err)
		}
		reportTokenUsage(logger, "score", scoreUsage)
		result.Analysis = &analysis
	}

	if err := outputHandler.HandleOutput(result, formatConfig); err != nil {
		return err
	}
	logger.Info("Resume formatting completed successfully")
	return nil
}

// reportTokenUsage logs the token usage of one AI call
func reportTokenUsage(logger *errors.Logger, operation string, usage *ai.TokenUsage) {
	if usage == nil {
		return
	}
	logger.Info("AI token usage",
		"operation", operation,
		"input_tokens", usage.InputTokens,
		"output_tokens", usage.OutputTokens,
		"total_tokens", usage.TotalTokens)
}
