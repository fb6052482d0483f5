package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPromptFromFile(t *testing.T) {
	config := &Config{}

	t.Run("loads and trims content", func(t *testing.T) {
		promptFile := filepath.Join(t.TempDir(), "prompt.txt")
		require.NoError(t, os.WriteFile(promptFile, []byte("  You are a resume parser.  \n"), 0644))

		content, err := config.loadPromptFromFile(promptFile, "system", "parseResume")
		require.NoError(t, err)
		assert.Equal(t, "You are a resume parser.", content)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.loadPromptFromFile(filepath.Join(t.TempDir(), "missing.txt"), "system", "parseResume")
		assert.Error(t, err)
	})

	t.Run("empty file", func(t *testing.T) {
		promptFile := filepath.Join(t.TempDir(), "empty.txt")
		require.NoError(t, os.WriteFile(promptFile, []byte("   \n"), 0644))

		_, err := config.loadPromptFromFile(promptFile, "user", "scoreResume")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is empty")
	})
}

func TestValidatePromptFiles(t *testing.T) {
	t.Run("no files configured", func(t *testing.T) {
		config := &Config{}
		assert.NoError(t, config.validatePromptFiles())
	})

	t.Run("existing files pass", func(t *testing.T) {
		promptFile := filepath.Join(t.TempDir(), "prompt.txt")
		require.NoError(t, os.WriteFile(promptFile, []byte("prompt"), 0644))

		config := &Config{}
		config.AI.CustomPrompts.SystemPrompts.ParseResumeFile = promptFile
		config.AI.Score.CustomPrompts.UserPrompts.ScoreResumeFile = promptFile
		assert.NoError(t, config.validatePromptFiles())
	})

	t.Run("missing files are reported", func(t *testing.T) {
		config := &Config{}
		config.AI.CustomPrompts.SystemPrompts.ParseResumeFile = filepath.Join(t.TempDir(), "missing.txt")

		err := config.validatePromptFiles()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "prompt file not found")
	})
}
