package formatters

import (
	"strings"
	"testing"
	"time"

	"resumeforge/internal/types"
)

func sampleResume() types.ResumeData {
	return types.ResumeData{
		Name: "Jane Doe",
		Contact: types.Contact{
			Phone:    "555-0100",
			Email:    "jane@example.com",
			Location: "Portland, OR",
			LinkedIn: "linkedin.com/in/janedoe",
		},
		Summary: "Platform engineer.",
		Experience: []types.Experience{
			{
				Company:     "Acme Corp",
				JobTitle:    "Staff Engineer",
				Dates:       "2019 - Present",
				Description: []string{"Led migration to Kubernetes."},
			},
		},
		Education: []types.Education{
			{Institution: "State University", Degree: "BS Computer Science", Dates: "2010 - 2014", GPA: "3.9"},
		},
		Skills: []types.Skill{
			{Category: "Infrastructure", Details: "Kubernetes, Terraform"},
		},
		Certifications: []string{"CKA"},
	}
}

func TestFormatResumeText(t *testing.T) {
	registry := NewFormatterRegistry()

	output, err := registry.Format(sampleResume(), "text")
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	for _, want := range []string{
		"Jane Doe",
		"555-0100 | jane@example.com | Portland, OR | linkedin.com/in/janedoe",
		"=== SUMMARY ===",
		"Staff Engineer, Acme Corp (2019 - Present)",
		"  - Led migration to Kubernetes.",
		"GPA: 3.9",
		"- CKA",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("text output missing %q", want)
		}
	}
}

func TestFormatResumeMarkdown(t *testing.T) {
	registry := NewFormatterRegistry()

	output, err := registry.Format(sampleResume(), "markdown")
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	for _, want := range []string{
		"# Jane Doe",
		"## Summary",
		"### Staff Engineer, Acme Corp",
		"- Led migration to Kubernetes.",
		"## Certifications",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("markdown output missing %q", want)
		}
	}
}

func TestFormatAnalysis(t *testing.T) {
	registry := NewFormatterRegistry()
	analysis := types.AtsAnalysis{
		Score:       82,
		Suggestions: []string{"Add more keywords."},
		Keywords: &types.KeywordAnalysis{
			Matched: []string{"Go"},
			Missing: []string{"Rust"},
		},
	}

	output, err := registry.Format(analysis, "text")
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	for _, want := range []string{"Score: 82/100", "1. Add more keywords.", "- Go", "- Rust"} {
		if !strings.Contains(output, want) {
			t.Errorf("analysis output missing %q", want)
		}
	}
}

func TestFormatResultIncludesAnalysisOnlyWhenPresent(t *testing.T) {
	registry := NewFormatterRegistry()

	withoutAnalysis := types.FormatResult{Resume: sampleResume()}
	output, err := registry.Format(withoutAnalysis, "text")
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if strings.Contains(output, "ATS ANALYSIS") {
		t.Error("output contains analysis section without an analysis")
	}

	withAnalysis := types.FormatResult{
		Resume:   sampleResume(),
		Analysis: &types.AtsAnalysis{Score: 70, Suggestions: []string{"Quantify impact."}},
	}
	output, err = registry.Format(withAnalysis, "text")
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(output, "Score: 70/100") {
		t.Error("output missing analysis score")
	}
}

func TestFormatSavedResumeList(t *testing.T) {
	registry := NewFormatterRegistry()
	records := []types.SavedResume{
		{
			ID:        "3f1a9c52-06a8-4a1e-9f3e-0a1b2c3d4e5f",
			Name:      "Jane Doe",
			UpdatedAt: time.Date(2026, 8, 14, 9, 30, 0, 0, time.UTC),
		},
	}

	output, err := registry.Format(records, "text")
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(output, "3f1a9c52-06a8-4a1e-9f3e-0a1b2c3d4e5f") {
		t.Error("output missing record id")
	}
	if !strings.Contains(output, "updated 2026-08-14 09:30") {
		t.Error("output missing updated timestamp")
	}

	empty, err := registry.Format([]types.SavedResume{}, "text")
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(empty, "No saved resumes.") {
		t.Errorf("empty list output = %q", empty)
	}
}

func TestFormatJSONFallback(t *testing.T) {
	registry := NewFormatterRegistry()

	output, err := registry.Format(sampleResume(), "json")
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(output, `"name": "Jane Doe"`) {
		t.Errorf("json output missing name field: %s", output)
	}
}

func TestFormatUnknownFormat(t *testing.T) {
	registry := NewFormatterRegistry()

	if _, err := registry.Format(sampleResume(), "xml"); err == nil {
		t.Error("expected error for unsupported format")
	}
}
