package types

import (
	"testing"
)

func sampleResume() ResumeData {
	return ResumeData{
		Name: "Jane Doe",
		Contact: Contact{
			Phone:    "555-0100",
			Email:    "jane@example.com",
			Location: "Austin, TX",
			LinkedIn: "linkedin.com/in/janedoe",
		},
		Summary: "Backend engineer with a decade of API work.",
		Experience: []Experience{
			{
				Company:  "Initech",
				JobTitle: "Senior Engineer",
				Dates:    "Jan 2020 - Present",
				Description: []string{
					"Led migration of billing to event-driven pipeline.",
					"Cut p99 latency by 40%.",
				},
			},
		},
		Education: []Education{
			{Institution: "UT Austin", Degree: "BS Computer Science", Dates: "Graduated May 2014", GPA: "3.8"},
		},
		Skills: []Skill{
			{Category: "Languages", Details: "Go, Python, SQL"},
		},
		Certifications: []string{"AWS Solutions Architect"},
	}
}

func TestResumeDataValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*ResumeData)
		expectErr bool
	}{
		{name: "valid resume", mutate: func(r *ResumeData) {}, expectErr: false},
		{name: "missing name", mutate: func(r *ResumeData) { r.Name = "  " }, expectErr: true},
		{name: "missing phone", mutate: func(r *ResumeData) { r.Contact.Phone = "" }, expectErr: true},
		{name: "missing email", mutate: func(r *ResumeData) { r.Contact.Email = "" }, expectErr: true},
		{name: "missing location", mutate: func(r *ResumeData) { r.Contact.Location = "" }, expectErr: true},
		{name: "optional contact fields empty", mutate: func(r *ResumeData) {
			r.Contact.LinkedIn = ""
			r.Contact.Portfolio = ""
		}, expectErr: false},
		{name: "empty summary allowed", mutate: func(r *ResumeData) { r.Summary = "" }, expectErr: false},
		{name: "experience missing company", mutate: func(r *ResumeData) { r.Experience[0].Company = "" }, expectErr: true},
		{name: "experience nil description", mutate: func(r *ResumeData) { r.Experience[0].Description = nil }, expectErr: true},
		{name: "experience empty description allowed", mutate: func(r *ResumeData) { r.Experience[0].Description = []string{} }, expectErr: false},
		{name: "education missing institution", mutate: func(r *ResumeData) { r.Education[0].Institution = "" }, expectErr: true},
		{name: "skill missing category", mutate: func(r *ResumeData) { r.Skills[0].Category = "" }, expectErr: true},
		{name: "no certifications allowed", mutate: func(r *ResumeData) { r.Certifications = nil }, expectErr: false},
		{name: "empty arrays allowed", mutate: func(r *ResumeData) {
			r.Experience = nil
			r.Education = nil
			r.Skills = nil
		}, expectErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := sampleResume()
			tt.mutate(&r)
			err := r.Validate()
			if tt.expectErr && err == nil {
				t.Error("Expected error but got none")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("Expected no error but got: %v", err)
			}
		})
	}
}

func TestResumeDataCloneIsDeep(t *testing.T) {
	original := sampleResume()
	clone := original.Clone()

	clone.Name = "Someone Else"
	clone.Contact.Email = "other@example.com"
	clone.Experience[0].Description[0] = "changed"
	clone.Experience[0].Company = "changed"
	clone.Education[0].Degree = "changed"
	clone.Skills[0].Details = "changed"
	clone.Certifications[0] = "changed"

	want := sampleResume()
	if original.Name != want.Name {
		t.Error("clone mutation leaked into original name")
	}
	if original.Contact.Email != want.Contact.Email {
		t.Error("clone mutation leaked into original contact")
	}
	if original.Experience[0].Description[0] != want.Experience[0].Description[0] {
		t.Error("clone mutation leaked into original experience bullets")
	}
	if original.Experience[0].Company != want.Experience[0].Company {
		t.Error("clone mutation leaked into original experience")
	}
	if original.Education[0].Degree != want.Education[0].Degree {
		t.Error("clone mutation leaked into original education")
	}
	if original.Skills[0].Details != want.Skills[0].Details {
		t.Error("clone mutation leaked into original skills")
	}
	if original.Certifications[0] != want.Certifications[0] {
		t.Error("clone mutation leaked into original certifications")
	}
}

func TestResumeDataCloneNilCertifications(t *testing.T) {
	r := sampleResume()
	r.Certifications = nil
	clone := r.Clone()
	if clone.Certifications != nil {
		t.Error("Expected nil certifications to stay nil after clone")
	}
}

func TestAtsAnalysisValidate(t *testing.T) {
	tests := []struct {
		name      string
		analysis  AtsAnalysis
		expectErr bool
	}{
		{
			name:     "valid with keywords",
			analysis: AtsAnalysis{Score: 82, Suggestions: []string{"Add metrics"}, Keywords: &KeywordAnalysis{Matched: []string{"Go"}, Missing: []string{"Kubernetes"}}},
		},
		{
			name:     "valid without keywords",
			analysis: AtsAnalysis{Score: 50, Suggestions: []string{"Tighten summary"}},
		},
		{
			name:      "score too high",
			analysis:  AtsAnalysis{Score: 101, Suggestions: []string{"x"}},
			expectErr: true,
		},
		{
			name:      "score negative",
			analysis:  AtsAnalysis{Score: -1, Suggestions: []string{"x"}},
			expectErr: true,
		},
		{
			name:      "no suggestions",
			analysis:  AtsAnalysis{Score: 70},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.analysis.Validate()
			if tt.expectErr && err == nil {
				t.Error("Expected error but got none")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("Expected no error but got: %v", err)
			}
		})
	}
}

func TestParseTemplateName(t *testing.T) {
	tests := []struct {
		in        string
		want      TemplateName
		expectErr bool
	}{
		{in: "classic", want: TemplateClassic},
		{in: "Modern", want: TemplateModern},
		{in: "  CLASSIC  ", want: TemplateClassic},
		{in: "", want: TemplateClassic},
		{in: "fancy", expectErr: true},
	}

	for _, tt := range tests {
		t.Run("input "+tt.in, func(t *testing.T) {
			got, err := ParseTemplateName(tt.in)
			if tt.expectErr {
				if err == nil {
					t.Error("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error but got: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}
