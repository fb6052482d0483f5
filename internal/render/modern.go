package render

import (
	"resumeforge/internal/types"
)

// renderModern builds the two-column layout. The left band carries Contact,
// Skills, Education and Certifications; the right band carries Summary and
// Experience. The first experience entry's job title is surfaced as a
// headline under the name.
func renderModern(data types.ResumeData) View {
	header := []Field{{Path: "name", Role: RoleName, Value: data.Name}}
	if len(data.Experience) > 0 {
		header = append(header, Field{
			Path:  "experience[0].jobTitle",
			Role:  RoleHeadline,
			Value: data.Experience[0].JobTitle,
		})
	}

	left := []Section{
		contactSection(data.Contact),
		skillsSection(data.Skills),
		educationSection(data.Education),
	}
	if len(data.Certifications) > 0 {
		left = append(left, certificationsSection(data.Certifications))
	}

	right := []Section{
		summarySection(data.Summary),
		experienceSection(data.Experience),
	}

	return View{
		Template: types.TemplateModern,
		Header:   header,
		Columns:  []Column{{Sections: left}, {Sections: right}},
	}
}
