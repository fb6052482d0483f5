package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"resumeforge/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "ResumeData", &ResumeTextFormatter{})
	registry.RegisterFormatter("markdown", "ResumeData", &ResumeMarkdownFormatter{})
	registry.RegisterFormatter("text", "AtsAnalysis", &AnalysisTextFormatter{})
	registry.RegisterFormatter("markdown", "AtsAnalysis", &AnalysisMarkdownFormatter{})
	registry.RegisterFormatter("text", "FormatResult", &FormatResultTextFormatter{})
	registry.RegisterFormatter("markdown", "FormatResult", &FormatResultMarkdownFormatter{})
	registry.RegisterFormatter("text", "SavedResumeList", &SavedResumeListTextFormatter{})
	registry.RegisterFormatter("markdown", "SavedResumeList", &SavedResumeListMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.ResumeData:
		return "ResumeData"
	case types.AtsAnalysis:
		return "AtsAnalysis"
	case types.FormatResult:
		return "FormatResult"
	case []types.SavedResume:
		return "SavedResumeList"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// ResumeTextFormatter handles text formatting for parsed resumes
type ResumeTextFormatter struct{}

func (rtf *ResumeTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ResumeData)
	if !ok {
		return "", fmt.Errorf("expected ResumeData, got %T", data)
	}

	var output strings.Builder

	output.WriteString(result.Name)
	output.WriteString("\n")
	output.WriteString(contactLine(result.Contact))
	output.WriteString("\n\n")

	if result.Summary != "" {
		output.WriteString("=== SUMMARY ===\n")
		output.WriteString(result.Summary)
		output.WriteString("\n\n")
	}

	if len(result.Skills) > 0 {
		output.WriteString("=== SKILLS ===\n")
		for _, skill := range result.Skills {
			output.WriteString(fmt.Sprintf("%s: %s\n", skill.Category, skill.Details))
		}
		output.WriteString("\n")
	}

	if len(result.Experience) > 0 {
		output.WriteString("=== EXPERIENCE ===\n")
		for _, exp := range result.Experience {
			output.WriteString(fmt.Sprintf("%s, %s (%s)\n", exp.JobTitle, exp.Company, exp.Dates))
			for _, bullet := range exp.Description {
				output.WriteString(fmt.Sprintf("  - %s\n", bullet))
			}
		}
		output.WriteString("\n")
	}

	if len(result.Education) > 0 {
		output.WriteString("=== EDUCATION ===\n")
		for _, edu := range result.Education {
			output.WriteString(fmt.Sprintf("%s, %s (%s)", edu.Degree, edu.Institution, edu.Dates))
			if edu.GPA != "" {
				output.WriteString(fmt.Sprintf(" GPA: %s", edu.GPA))
			}
			output.WriteString("\n")
		}
		output.WriteString("\n")
	}

	if len(result.Certifications) > 0 {
		output.WriteString("=== CERTIFICATIONS ===\n")
		for _, cert := range result.Certifications {
			output.WriteString(fmt.Sprintf("- %s\n", cert))
		}
	}

	return output.String(), nil
}

func (rtf *ResumeTextFormatter) SupportedType() string {
	return "ResumeData"
}

// ResumeMarkdownFormatter handles markdown formatting for parsed resumes
type ResumeMarkdownFormatter struct{}

func (rmf *ResumeMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ResumeData)
	if !ok {
		return "", fmt.Errorf("expected ResumeData, got %T", data)
	}

	var output strings.Builder

	output.WriteString(fmt.Sprintf("# %s\n\n", result.Name))
	output.WriteString(contactLine(result.Contact))
	output.WriteString("\n\n")

	if result.Summary != "" {
		output.WriteString("## Summary\n\n")
		output.WriteString(result.Summary)
		output.WriteString("\n\n")
	}

	if len(result.Skills) > 0 {
		output.WriteString("## Skills\n\n")
		for _, skill := range result.Skills {
			output.WriteString(fmt.Sprintf("**%s:** %s\n\n", skill.Category, skill.Details))
		}
	}

	if len(result.Experience) > 0 {
		output.WriteString("## Experience\n\n")
		for _, exp := range result.Experience {
			output.WriteString(fmt.Sprintf("### %s, %s\n\n*%s*\n\n", exp.JobTitle, exp.Company, exp.Dates))
			for _, bullet := range exp.Description {
				output.WriteString(fmt.Sprintf("- %s\n", bullet))
			}
			output.WriteString("\n")
		}
	}

	if len(result.Education) > 0 {
		output.WriteString("## Education\n\n")
		for _, edu := range result.Education {
			output.WriteString(fmt.Sprintf("**%s**, %s (%s)", edu.Degree, edu.Institution, edu.Dates))
			if edu.GPA != "" {
				output.WriteString(fmt.Sprintf(" GPA: %s", edu.GPA))
			}
			output.WriteString("\n\n")
		}
	}

	if len(result.Certifications) > 0 {
		output.WriteString("## Certifications\n\n")
		for _, cert := range result.Certifications {
			output.WriteString(fmt.Sprintf("- %s\n", cert))
		}
	}

	return output.String(), nil
}

func (rmf *ResumeMarkdownFormatter) SupportedType() string {
	return "ResumeData"
}

// AnalysisTextFormatter handles text formatting for ATS scoring results
type AnalysisTextFormatter struct{}

func (atf *AnalysisTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.AtsAnalysis)
	if !ok {
		return "", fmt.Errorf("expected AtsAnalysis, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== ATS ANALYSIS ===\n")
	output.WriteString(fmt.Sprintf("Score: %d/100\n\n", result.Score))

	if len(result.Suggestions) > 0 {
		output.WriteString("Suggestions:\n")
		for i, suggestion := range result.Suggestions {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, suggestion))
		}
		output.WriteString("\n")
	}

	if result.Keywords != nil {
		output.WriteString("Matched Keywords:\n")
		for _, kw := range result.Keywords.Matched {
			output.WriteString(fmt.Sprintf("- %s\n", kw))
		}
		output.WriteString("\nMissing Keywords:\n")
		for _, kw := range result.Keywords.Missing {
			output.WriteString(fmt.Sprintf("- %s\n", kw))
		}
	}

	return output.String(), nil
}

func (atf *AnalysisTextFormatter) SupportedType() string {
	return "AtsAnalysis"
}

// AnalysisMarkdownFormatter handles markdown formatting for ATS scoring results
type AnalysisMarkdownFormatter struct{}

func (amf *AnalysisMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.AtsAnalysis)
	if !ok {
		return "", fmt.Errorf("expected AtsAnalysis, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# ATS Analysis\n\n")
	output.WriteString(fmt.Sprintf("**Score:** %d/100\n\n", result.Score))

	if len(result.Suggestions) > 0 {
		output.WriteString("## Suggestions\n\n")
		for i, suggestion := range result.Suggestions {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, suggestion))
		}
		output.WriteString("\n")
	}

	if result.Keywords != nil {
		output.WriteString("## Matched Keywords\n\n")
		for _, kw := range result.Keywords.Matched {
			output.WriteString(fmt.Sprintf("- %s\n", kw))
		}
		output.WriteString("\n## Missing Keywords\n\n")
		for _, kw := range result.Keywords.Missing {
			output.WriteString(fmt.Sprintf("- %s\n", kw))
		}
	}

	return output.String(), nil
}

func (amf *AnalysisMarkdownFormatter) SupportedType() string {
	return "AtsAnalysis"
}

// FormatResultTextFormatter handles text formatting for format results
type FormatResultTextFormatter struct{}

func (frf *FormatResultTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.FormatResult)
	if !ok {
		return "", fmt.Errorf("expected FormatResult, got %T", data)
	}

	resumeText, err := (&ResumeTextFormatter{}).Format(result.Resume)
	if err != nil {
		return "", err
	}
	if result.Analysis == nil {
		return resumeText, nil
	}

	analysisText, err := (&AnalysisTextFormatter{}).Format(*result.Analysis)
	if err != nil {
		return "", err
	}
	return resumeText + "\n" + analysisText, nil
}

func (frf *FormatResultTextFormatter) SupportedType() string {
	return "FormatResult"
}

// FormatResultMarkdownFormatter handles markdown formatting for format results
type FormatResultMarkdownFormatter struct{}

func (frm *FormatResultMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.FormatResult)
	if !ok {
		return "", fmt.Errorf("expected FormatResult, got %T", data)
	}

	resumeText, err := (&ResumeMarkdownFormatter{}).Format(result.Resume)
	if err != nil {
		return "", err
	}
	if result.Analysis == nil {
		return resumeText, nil
	}

	analysisText, err := (&AnalysisMarkdownFormatter{}).Format(*result.Analysis)
	if err != nil {
		return "", err
	}
	return resumeText + "\n" + analysisText, nil
}

func (frm *FormatResultMarkdownFormatter) SupportedType() string {
	return "FormatResult"
}

// SavedResumeListTextFormatter handles text formatting for saved resume listings
type SavedResumeListTextFormatter struct{}

func (sltf *SavedResumeListTextFormatter) Format(data any) (string, error) {
	records, ok := data.([]types.SavedResume)
	if !ok {
		return "", fmt.Errorf("expected []SavedResume, got %T", data)
	}

	if len(records) == 0 {
		return "No saved resumes.\n", nil
	}

	var output strings.Builder
	output.WriteString("=== SAVED RESUMES ===\n\n")
	for _, record := range records {
		output.WriteString(fmt.Sprintf("%s  %s  (updated %s)\n",
			record.ID, record.Name, record.UpdatedAt.Format("2006-01-02 15:04")))
	}
	return output.String(), nil
}

func (sltf *SavedResumeListTextFormatter) SupportedType() string {
	return "SavedResumeList"
}

// SavedResumeListMarkdownFormatter handles markdown formatting for saved resume listings
type SavedResumeListMarkdownFormatter struct{}

func (slmf *SavedResumeListMarkdownFormatter) Format(data any) (string, error) {
	records, ok := data.([]types.SavedResume)
	if !ok {
		return "", fmt.Errorf("expected []SavedResume, got %T", data)
	}

	var output strings.Builder
	output.WriteString("# Saved Resumes\n\n")
	if len(records) == 0 {
		output.WriteString("No saved resumes.\n")
		return output.String(), nil
	}

	output.WriteString("| ID | Name | Updated |\n")
	output.WriteString("| --- | --- | --- |\n")
	for _, record := range records {
		output.WriteString(fmt.Sprintf("| %s | %s | %s |\n",
			record.ID, record.Name, record.UpdatedAt.Format("2006-01-02 15:04")))
	}
	return output.String(), nil
}

func (slmf *SavedResumeListMarkdownFormatter) SupportedType() string {
	return "SavedResumeList"
}

func contactLine(c types.Contact) string {
	parts := []string{c.Phone, c.Email, c.Location}
	if c.LinkedIn != "" {
		parts = append(parts, c.LinkedIn)
	}
	if c.Portfolio != "" {
		parts = append(parts, c.Portfolio)
	}
	nonEmpty := parts[:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " | ")
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
