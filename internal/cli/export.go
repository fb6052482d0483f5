package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"resumeforge/internal/common"
	"resumeforge/internal/docx"
	"resumeforge/internal/types"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [resume-json-file]",
	Short: "Export a parsed resume as a Word document",
	Long: `Export a structured resume JSON file (as produced by the format
command) to a .docx Word document. Use --template to choose between the
classic single-column layout and the modern two-column layout.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

var (
	exportTemplate string
	exportOutput   string
)

func init() {
	exportCmd.Flags().StringVarP(&exportTemplate, "template", "t", "", "Document template: classic or modern (default from config)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path (default: derived from the resume name)")

	_ = exportCmd.RegisterFlagCompletionFunc("template", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{string(types.TemplateClassic), string(types.TemplateModern)}, cobra.ShellCompDirectiveNoFileComp
	})
}

func runExport(cmd *cobra.Command, args []string) error {
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

	selector := exportTemplate
	if selector == "" {
		selector = cfg.App.DefaultTemplate
	}
	template, err := types.ParseTemplateName(selector)
	if err != nil {
		return err
	}

	logger.Info("Exporting resume document",
		"template", string(template),
		"resume_name", resume.Name)

	payload, err := docx.Export(resume, template)
	if err != nil {
		return err
	}

	outputPath := exportOutput
	if outputPath == "" {
		outputPath = docx.Filename(resume.Name)
	}

	if err := os.WriteFile(outputPath, payload, 0600); err != nil {
		return fmt.Errorf("failed to write document %s: %w", outputPath, err)
	}

	logger.Info("Resume exported successfully",
		"file", outputPath,
		"bytes", len(payload))
	fmt.Printf("Wrote %s (%s)\n", outputPath, string(template))
	return nil
}
