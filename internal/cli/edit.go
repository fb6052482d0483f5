package cli

import (
	"context"
	"fmt"
	"strings"

	"resumeforge/internal/common"
	"resumeforge/internal/store"
	"resumeforge/internal/workspace"

	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit a saved resume field by field",
	Long: `Edit a saved resume in place. The record is loaded into a workspace,
every edit is applied against it, and the result is saved back under the
same id. Paths address fields the way the rendered view reports them, for
example contact.email or experience[0].description[1]. All --set edits are
applied before --remove edits, each group in the order given.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if len(editSets)+len(editRemoves) == 0 {
			return fmt.Errorf("at least one --set or --remove is required")
		}
		if editConfig.OutputFormat == "" {
			editConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(editConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runEdit,
}

var (
	editConfig  common.CommandConfig
	editSets    []string
	editRemoves []string
)

func init() {
	editCmd.Flags().StringArrayVar(&editSets, "set", nil, "Field edit as path=value (repeatable)")
	editCmd.Flags().StringArrayVar(&editRemoves, "remove", nil, "List element path to remove (repeatable)")
	editCmd.Flags().StringVarP(&editConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	editCmd.Flags().StringVar(&editConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
}

func runEdit(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	resumes, err := store.New(cmd.Context(), &cfg.Storage, logger)
	if err != nil {
		return err
	}
	defer closeStore(resumes, logger)

	// Editing never calls the model, so the workspace gets no AI providers.
	ws := workspace.NewController(nil, nil, resumes, cfg.Storage.UserID, logger)
	snap, err := applyResumeEdits(cmd.Context(), ws, args[0], editSets, editRemoves)
	if err != nil {
		return err
	}

	logger.Info("Resume edited",
		"id", snap.CurrentID,
		"sets", len(editSets),
		"removes", len(editRemoves))

	outputHandler := common.NewOutputHandler(logger)
	return outputHandler.HandleOutput(*snap.Resume, editConfig)
}

// applyResumeEdits loads the record into the workspace, applies every edit,
// and saves the result back under the same id.
func applyResumeEdits(ctx context.Context, ws *workspace.Controller, id string, sets, removes []string) (workspace.Snapshot, error) {
	snap, err := ws.Load(ctx, id)
	if err != nil {
		return snap, fmt.Errorf("failed to load resume: %w", err)
	}

	for _, edit := range sets {
		path, value, ok := strings.Cut(edit, "=")
		if !ok || path == "" {
			return snap, fmt.Errorf("invalid --set %q: expected path=value", edit)
		}
		if snap, err = ws.ApplyEdit(path, value); err != nil {
			return snap, fmt.Errorf("failed to set %q: %w", path, err)
		}
	}
	for _, path := range removes {
		if snap, err = ws.RemoveListItem(path); err != nil {
			return snap, fmt.Errorf("failed to remove %q: %w", path, err)
		}
	}

	snap, err = ws.Save(ctx)
	if err != nil {
		return snap, fmt.Errorf("failed to save resume: %w", err)
	}
	return snap, nil
}
