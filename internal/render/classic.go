package render

import (
	"resumeforge/internal/types"
)

// renderClassic builds the single-column, ATS-safe layout. Section order is
// fixed: Contact, Summary, Skills, Experience, Education, Certifications.
func renderClassic(data types.ResumeData) View {
	sections := []Section{
		contactSection(data.Contact),
		summarySection(data.Summary),
		skillsSection(data.Skills),
		experienceSection(data.Experience),
		educationSection(data.Education),
	}
	if len(data.Certifications) > 0 {
		sections = append(sections, certificationsSection(data.Certifications))
	}

	return View{
		Template: types.TemplateClassic,
		Header:   []Field{{Path: "name", Role: RoleName, Value: data.Name}},
		Columns:  []Column{{Sections: sections}},
	}
}
