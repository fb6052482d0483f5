package config

// applyOperationDefaults applies global defaults to operation-specific configuration
func (c *Config) applyOperationDefaults(opCfg *OperationAIConfig) {
	if opCfg.Provider == "" {
		opCfg.Provider = c.AI.Provider
	}
	if opCfg.Model == "" {
		opCfg.Model = c.AI.Model
	}
	if opCfg.Timeout == nil {
		opCfg.Timeout = &c.AI.Timeout
	}
	if opCfg.APIKey == "" {
		opCfg.APIKey = c.AI.APIKey
	}
	if opCfg.MaxRetries == nil {
		opCfg.MaxRetries = &c.AI.MaxRetries
	}
	if opCfg.Temperature == nil {
		opCfg.Temperature = &c.AI.Temperature
	}
	// UseSystemPrompts: apply global default only if not explicitly set
	if opCfg.UseSystemPrompts == nil {
		opCfg.UseSystemPrompts = &c.AI.UseSystemPrompts
	}
}

// GetParseConfig returns the AI configuration for parse operations with fallback to global config
func (c *Config) GetParseConfig() OperationAIConfig {
	config := c.AI.Parse

	// Apply common defaults
	c.applyOperationDefaults(&config)

	// Apply parse-specific prompt fallbacks
	if config.CustomPrompts.SystemPrompts.ParseResume == "" {
		config.CustomPrompts.SystemPrompts.ParseResume = c.AI.CustomPrompts.SystemPrompts.ParseResume
	}
	if config.CustomPrompts.UserPrompts.ParseResume == "" {
		config.CustomPrompts.UserPrompts.ParseResume = c.AI.CustomPrompts.UserPrompts.ParseResume
	}
	// Also copy file paths for potential later loading
	if config.CustomPrompts.SystemPrompts.ParseResumeFile == "" {
		config.CustomPrompts.SystemPrompts.ParseResumeFile = c.AI.CustomPrompts.SystemPrompts.ParseResumeFile
	}
	if config.CustomPrompts.UserPrompts.ParseResumeFile == "" {
		config.CustomPrompts.UserPrompts.ParseResumeFile = c.AI.CustomPrompts.UserPrompts.ParseResumeFile
	}

	return config
}

// GetScoreConfig returns the AI configuration for score operations with fallback to global config
func (c *Config) GetScoreConfig() OperationAIConfig {
	config := c.AI.Score

	// Apply common defaults
	c.applyOperationDefaults(&config)

	// Apply score-specific prompt fallbacks
	if config.CustomPrompts.SystemPrompts.ScoreResume == "" {
		config.CustomPrompts.SystemPrompts.ScoreResume = c.AI.CustomPrompts.SystemPrompts.ScoreResume
	}
	if config.CustomPrompts.UserPrompts.ScoreResume == "" {
		config.CustomPrompts.UserPrompts.ScoreResume = c.AI.CustomPrompts.UserPrompts.ScoreResume
	}
	// Also copy file paths for potential later loading
	if config.CustomPrompts.SystemPrompts.ScoreResumeFile == "" {
		config.CustomPrompts.SystemPrompts.ScoreResumeFile = c.AI.CustomPrompts.SystemPrompts.ScoreResumeFile
	}
	if config.CustomPrompts.UserPrompts.ScoreResumeFile == "" {
		config.CustomPrompts.UserPrompts.ScoreResumeFile = c.AI.CustomPrompts.UserPrompts.ScoreResumeFile
	}

	return config
}
