package cli

import (
	"fmt"

	"resumeforge/internal/server"
	"resumeforge/internal/store"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP server for resume formatting, scoring, and export",
	Long: `Start an HTTP server that provides REST API endpoints for resume
formatting, scoring, document export, and saved-resume management.

Available endpoints:
- POST /format: Extract structured data from raw resume text
- POST /score: Score a resume against a job description
- POST /edit: Apply field edits to a resume
- POST /export: Export a resume as a Word document
- GET /resumes: List saved resumes
- POST /resumes: Save a resume
- DELETE /resumes/{id}: Delete a saved resume
- GET /health: Health check endpoint
- GET /stats: Server statistics and rate limiting info`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (default from config)")
	serveCmd.Flags().String("host", "", "Host to bind to (default from config)")
	serveCmd.Flags().String("storage-driver", "", "Storage driver: file or postgres (overrides config)")
	serveCmd.Flags().String("storage-path", "", "File path for the file storage driver (overrides config)")

	// Bind flags to viper config keys
	bindFlag := func(key, flagName string) {
		if err := viper.BindPFlag(key, serveCmd.Flags().Lookup(flagName)); err != nil {
			panic(err)
		}
	}

	bindFlag("server.port", "port")
	bindFlag("server.host", "host")
	bindFlag("storage.driver", "storage-driver")
	bindFlag("storage.path", "storage-path")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	resumes, err := store.New(cmd.Context(), &cfg.Storage, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize resume storage: %w", err)
	}

	serverCfg := server.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		Version:        Version,
		APIKeys:        cfg.Server.APIKeys,
		Users:          cfg.Server.Users,
		DefaultUserID:  cfg.Storage.UserID,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxRequestSize: cfg.App.MaxInputSize,
		RateLimit:      &cfg.Server.RateLimit,
	}
	return server.NewServer(cfg, serverCfg, resumes, logger).Start()
}
