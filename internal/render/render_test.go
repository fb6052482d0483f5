package render

import (
	"reflect"
	"testing"

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
		Summary: "Backend engineer with a platform focus.",
		Experience: []types.Experience{
			{
				Company:  "Acme Corp",
				JobTitle: "Senior Engineer",
				Dates:    "2021 - Present",
				Description: []string{
					"Led migration to event-driven architecture",
					"Cut p99 latency by 40%",
				},
			},
			{
				Company:     "Initech",
				JobTitle:    "Engineer",
				Dates:       "2018 - 2021",
				Description: []string{"Built reporting pipeline"},
			},
		},
		Education: []types.Education{
			{Institution: "State University", Degree: "BS Computer Science", Dates: "2014 - 2018", GPA: "3.8"},
		},
		Skills: []types.Skill{
			{Category: "Languages", Details: "Go, Python, SQL"},
			{Category: "Infrastructure", Details: "Kubernetes, Terraform"},
		},
		Certifications: []string{"CKA", "AWS Solutions Architect"},
	}
}

func sectionTitles(col Column) []string {
	titles := make([]string, len(col.Sections))
	for i, s := range col.Sections {
		titles[i] = s.Title
	}
	return titles
}

func TestRenderClassicSectionOrder(t *testing.T) {
	view, err := Render(sampleResume(), types.TemplateClassic)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if len(view.Columns) != 1 {
		t.Fatalf("Expected 1 column, got %d", len(view.Columns))
	}

	want := []string{"Contact", "Summary", "Skills", "Experience", "Education", "Certifications"}
	got := sectionTitles(view.Columns[0])
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Section order = %v, want %v", got, want)
	}

	if len(view.Header) != 1 || view.Header[0].Role != RoleName || view.Header[0].Value != "Jane Doe" {
		t.Errorf("Unexpected header: %+v", view.Header)
	}
}

func TestRenderModernLayout(t *testing.T) {
	view, err := Render(sampleResume(), types.TemplateModern)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if len(view.Columns) != 2 {
		t.Fatalf("Expected 2 columns, got %d", len(view.Columns))
	}

	wantLeft := []string{"Contact", "Skills", "Education", "Certifications"}
	if got := sectionTitles(view.Columns[0]); !reflect.DeepEqual(got, wantLeft) {
		t.Errorf("Left column = %v, want %v", got, wantLeft)
	}
	wantRight := []string{"Summary", "Experience"}
	if got := sectionTitles(view.Columns[1]); !reflect.DeepEqual(got, wantRight) {
		t.Errorf("Right column = %v, want %v", got, wantRight)
	}

	if len(view.Header) != 2 {
		t.Fatalf("Expected name and headline in header, got %d fields", len(view.Header))
	}
	if view.Header[1].Role != RoleHeadline || view.Header[1].Value != "Senior Engineer" {
		t.Errorf("Headline = %+v, want first experience job title", view.Header[1])
	}
}

func TestRenderModernNoExperienceNoHeadline(t *testing.T) {
	data := sampleResume()
	data.Experience = nil

	view, err := Render(data, types.TemplateModern)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(view.Header) != 1 {
		t.Errorf("Expected only the name in header, got %d fields", len(view.Header))
	}
}

func TestRenderEmptyArraysAreGraceful(t *testing.T) {
	data := types.ResumeData{
		Name:    "Empty Case",
		Contact: types.Contact{Phone: "1", Email: "e@e", Location: "x"},
	}

	for _, tmpl := range []types.TemplateName{types.TemplateClassic, types.TemplateModern} {
		view, err := Render(data, tmpl)
		if err != nil {
			t.Fatalf("Render(%s) failed: %v", tmpl, err)
		}
		for _, col := range view.Columns {
			for _, sec := range col.Sections {
				if sec.Title == "Certifications" {
					t.Errorf("%s: empty certifications should not produce a section", tmpl)
				}
			}
		}
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	if _, err := Render(sampleResume(), types.TemplateName("fancy")); err == nil {
		t.Error("Expected error for unknown template")
	}
}

// TestRenderEditRoundTrip writes every rendered field back through SetField
// with its own value and expects the resume to come out deep-equal.
func TestRenderEditRoundTrip(t *testing.T) {
	original := sampleResume()

	for _, tmpl := range []types.TemplateName{types.TemplateClassic, types.TemplateModern} {
		view, err := Render(original, tmpl)
		if err != nil {
			t.Fatalf("Render(%s) failed: %v", tmpl, err)
		}

		current := original
		fields := append([]Field{}, view.Header...)
		for _, col := range view.Columns {
			for _, sec := range col.Sections {
				fields = append(fields, sec.Fields...)
			}
		}

		for _, f := range fields {
			current, err = SetField(current, f.Path, f.Value)
			if err != nil {
				t.Fatalf("%s: SetField(%q) failed: %v", tmpl, f.Path, err)
			}
		}

		if !reflect.DeepEqual(current, original) {
			t.Errorf("%s: round-trip changed the resume:\n got %+v\nwant %+v", tmpl, current, original)
		}
	}
}

func TestSetFieldReplacesExactlyOneLeaf(t *testing.T) {
	original := sampleResume()

	updated, err := SetField(original, "experience[1].description[0]", "Rebuilt reporting pipeline in Go")
	if err != nil {
		t.Fatalf("SetField failed: %v", err)
	}

	if updated.Experience[1].Description[0] != "Rebuilt reporting pipeline in Go" {
		t.Error("Target leaf was not updated")
	}
	if original.Experience[1].Description[0] != "Built reporting pipeline" {
		t.Error("SetField mutated its input")
	}

	// Everything except the target leaf must match the original.
	updated.Experience[1].Description[0] = original.Experience[1].Description[0]
	if !reflect.DeepEqual(updated, original) {
		t.Error("SetField changed more than the target leaf")
	}
}

func TestSetFieldErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"empty path", ""},
		{"unknown root", "hobbies"},
		{"unknown contact field", "contact.fax"},
		{"index on scalar", "summary[0]"},
		{"missing index", "experience.company"},
		{"index out of range", "experience[9].company"},
		{"bullet out of range", "experience[0].description[7]"},
		{"negative index", "skills[-1].details"},
		{"malformed index", "skills[x].details"},
		{"certifications need index", "certifications"},
	}

	data := sampleResume()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := SetField(data, tt.path, "v"); err == nil {
				t.Errorf("Expected error for path %q", tt.path)
			}
		})
	}
}

func TestRemoveItemPreservesOrder(t *testing.T) {
	original := sampleResume()

	updated, err := RemoveItem(original, "experience[0].description[0]")
	if err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}

	got := updated.Experience[0].Description
	want := []string{"Cut p99 latency by 40%"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Description after removal = %v, want %v", got, want)
	}
	if len(original.Experience[0].Description) != 2 {
		t.Error("RemoveItem mutated its input")
	}
	if len(updated.Experience) != 2 || len(updated.Skills) != 2 {
		t.Error("RemoveItem touched unrelated lists")
	}
}

func TestRemoveItemWholeEntry(t *testing.T) {
	original := sampleResume()

	updated, err := RemoveItem(original, "experience[0]")
	if err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}
	if len(updated.Experience) != 1 || updated.Experience[0].Company != "Initech" {
		t.Errorf("Expected only Initech to remain, got %+v", updated.Experience)
	}

	updated, err = RemoveItem(original, "certifications[1]")
	if err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}
	if !reflect.DeepEqual(updated.Certifications, []string{"CKA"}) {
		t.Errorf("Certifications = %v, want [CKA]", updated.Certifications)
	}
}

func TestRemoveItemErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"no index", "experience"},
		{"scalar target", "name"},
		{"out of range", "education[4]"},
		{"nested non-list", "experience[0].company"},
		{"bullet out of range", "experience[1].description[5]"},
	}

	data := sampleResume()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := RemoveItem(data, tt.path); err == nil {
				t.Errorf("Expected error for path %q", tt.path)
			}
		})
	}
}
