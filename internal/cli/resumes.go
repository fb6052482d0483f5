package cli

import (
	"encoding/json"
	"fmt"

	"resumeforge/internal/common"
	"resumeforge/internal/errors"
	"resumeforge/internal/store"
	"resumeforge/internal/types"

	"github.com/spf13/cobra"
)

var resumesCmd = &cobra.Command{
	Use:   "resumes",
	Short: "Manage saved resumes",
	Long: `List, save, and delete resumes in the configured storage backend.
Records are scoped to the user id from the storage configuration.`,
}

var resumesListConfig common.CommandConfig

var resumesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved resumes",
	Args:  cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if resumesListConfig.OutputFormat == "" {
			resumesListConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(resumesListConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runResumesList,
}

var (
	resumesSaveID   string
	resumesSaveName string
	resumesSaveRaw  string
)

var resumesSaveCmd = &cobra.Command{
	Use:   "save [resume-json-file]",
	Short: "Save a parsed resume",
	Long: `Save a structured resume JSON file to storage. Without --id a new
record is created; with --id the existing record is updated in place.`,
	Args: cobra.ExactArgs(1),
	RunE: runResumesSave,
}

var resumesDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a saved resume",
	Args:  cobra.ExactArgs(1),
	RunE:  runResumesDelete,
}

func init() {
	resumesListCmd.Flags().StringVarP(&resumesListConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	resumesListCmd.Flags().StringVar(&resumesListConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	resumesSaveCmd.Flags().StringVar(&resumesSaveID, "id", "", "Existing record id to update")
	resumesSaveCmd.Flags().StringVar(&resumesSaveName, "name", "", "Display name for the record (default: the resume's name)")
	resumesSaveCmd.Flags().StringVar(&resumesSaveRaw, "raw-text", "", "Original raw resume text file to store alongside the parsed data")

	resumesCmd.AddCommand(resumesListCmd)
	resumesCmd.AddCommand(resumesSaveCmd)
	resumesCmd.AddCommand(resumesDeleteCmd)
}

func runResumesList(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	resumes, err := store.New(cmd.Context(), &cfg.Storage, logger)
	if err != nil {
		return err
	}
	defer closeStore(resumes, logger)

	records, err := resumes.List(cmd.Context(), cfg.Storage.UserID)
	if err != nil {
		return fmt.Errorf("failed to list resumes: %w", err)
	}
	if records == nil {
		records = []types.SavedResume{}
	}

	outputHandler := common.NewOutputHandler(logger)
	return outputHandler.HandleOutput(records, resumesListConfig)
}

func runResumesSave(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	fileProcessor := common.NewFileProcessor(logger)
	contents, err := fileProcessor.ValidateAndReadFiles(args[0])
	if err != nil {
		return err
	}

	var resume types.ResumeData
	if err := json.Unmarshal([]byte(contents[0]), &resume); err != nil {
		return fmt.Errorf("resume file is not valid resume JSON: %w", err)
	}
	if err := resume.Validate(); err != nil {
		return fmt.Errorf("invalid resume: %w", err)
	}

	var rawText string
	if resumesSaveRaw != "" {
		rawContents, err := fileProcessor.ValidateAndReadFiles(resumesSaveRaw)
		if err != nil {
			return err
		}
		rawText = rawContents[0]
	}

	name := resumesSaveName
	if name == "" {
		name = resume.Name
	}

	resumes, err := store.New(cmd.Context(), &cfg.Storage, logger)
	if err != nil {
		return err
	}
	defer closeStore(resumes, logger)

	saved, err := resumes.Save(cmd.Context(), types.SavedResume{
		ID:         resumesSaveID,
		Name:       name,
		RawText:    rawText,
		ResumeData: resume,
		UserID:     cfg.Storage.UserID,
	})
	if err != nil {
		return fmt.Errorf("failed to save resume: %w", err)
	}

	logger.Info("Resume saved",
		"id", saved.ID,
		"name", saved.Name)
	fmt.Printf("Saved resume %s (%s)\n", saved.ID, saved.Name)
	return nil
}

func runResumesDelete(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	resumes, err := store.New(cmd.Context(), &cfg.Storage, logger)
	if err != nil {
		return err
	}
	defer closeStore(resumes, logger)

	if err := resumes.Delete(cmd.Context(), cfg.Storage.UserID, args[0]); err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}

	logger.Info("Resume deleted", "id", args[0])
	fmt.Printf("Deleted resume %s\n", args[0])
	return nil
}

func closeStore(resumes store.Store, logger *errors.Logger) {
	if err := resumes.Close(); err != nil {
		logger.LogError(err, "Failed to close resume store")
	}
}
