package render

import (
	"resumeforge/internal/types"
)

// Role identifies how a field is styled by the display and export layers.
type Role string

const (
	RoleName          Role = "name"
	RoleHeadline      Role = "headline"
	RoleSectionHeader Role = "section_header"
	RoleJobTitle      Role = "job_title"
	RoleCompany       Role = "company"
	RoleDates         Role = "dates"
	RoleBody          Role = "body"
	RoleBullet        Role = "bullet"
	RoleContact       Role = "contact"
)

// Field is one editable leaf of the rendered view. Path addresses the leaf
// inside the resume so an edit can be applied with SetField or RemoveItem.
type Field struct {
	Path      string `json:"path"`
	Role      Role   `json:"role"`
	Value     string `json:"value"`
	Removable bool   `json:"removable,omitempty"`
}

// Section is a titled group of fields. Sections with no fields are kept so
// the section ordering of a template is visible even for empty resumes.
type Section struct {
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// Column is one vertical band of the layout. Classic has one, Modern two.
type Column struct {
	Sections []Section `json:"sections"`
}

// View is the rendered, editable representation of a resume under one
// template. Header fields sit above the columns in both templates.
type View struct {
	Template types.TemplateName `json:"template"`
	Header   []Field            `json:"header"`
	Columns  []Column           `json:"columns"`
}

// Render builds the editable view for the given template.
func Render(data types.ResumeData, template types.TemplateName) (View, error) {
	switch template {
	case types.TemplateClassic:
		return renderClassic(data), nil
	case types.TemplateModern:
		return renderModern(data), nil
	default:
		_, err := types.ParseTemplateName(string(template))
		return View{}, err
	}
}

func contactSection(c types.Contact) Section {
	fields := []Field{
		{Path: "contact.phone", Role: RoleContact, Value: c.Phone},
		{Path: "contact.email", Role: RoleContact, Value: c.Email},
		{Path: "contact.location", Role: RoleContact, Value: c.Location},
	}
	if c.LinkedIn != "" {
		fields = append(fields, Field{Path: "contact.linkedin", Role: RoleContact, Value: c.LinkedIn})
	}
	if c.Portfolio != "" {
		fields = append(fields, Field{Path: "contact.portfolio", Role: RoleContact, Value: c.Portfolio})
	}
	return Section{Title: "Contact", Fields: fields}
}

func summarySection(summary string) Section {
	return Section{
		Title:  "Summary",
		Fields: []Field{{Path: "summary", Role: RoleBody, Value: summary}},
	}
}

func skillsSection(skills []types.Skill) Section {
	sec := Section{Title: "Skills", Fields: []Field{}}
	for i, s := range skills {
		sec.Fields = append(sec.Fields,
			Field{Path: childPath(indexPath("skills", i), "category"), Role: RoleJobTitle, Value: s.Category, Removable: true},
			Field{Path: childPath(indexPath("skills", i), "details"), Role: RoleBody, Value: s.Details},
		)
	}
	return sec
}

func experienceSection(experience []types.Experience) Section {
	sec := Section{Title: "Experience", Fields: []Field{}}
	for i, exp := range experience {
		base := indexPath("experience", i)
		sec.Fields = append(sec.Fields,
			Field{Path: childPath(base, "jobTitle"), Role: RoleJobTitle, Value: exp.JobTitle, Removable: true},
			Field{Path: childPath(base, "company"), Role: RoleCompany, Value: exp.Company},
			Field{Path: childPath(base, "dates"), Role: RoleDates, Value: exp.Dates},
		)
		for j, bullet := range exp.Description {
			sec.Fields = append(sec.Fields, Field{
				Path:      childPath(base, indexPath("description", j)),
				Role:      RoleBullet,
				Value:     bullet,
				Removable: true,
			})
		}
	}
	return sec
}

func educationSection(education []types.Education) Section {
	sec := Section{Title: "Education", Fields: []Field{}}
	for i, edu := range education {
		base := indexPath("education", i)
		sec.Fields = append(sec.Fields,
			Field{Path: childPath(base, "institution"), Role: RoleCompany, Value: edu.Institution, Removable: true},
			Field{Path: childPath(base, "degree"), Role: RoleBody, Value: edu.Degree},
			Field{Path: childPath(base, "dates"), Role: RoleDates, Value: edu.Dates},
		)
		if edu.GPA != "" {
			sec.Fields = append(sec.Fields, Field{Path: childPath(base, "gpa"), Role: RoleBody, Value: edu.GPA})
		}
	}
	return sec
}

func certificationsSection(certs []string) Section {
	sec := Section{Title: "Certifications", Fields: []Field{}}
	for i, c := range certs {
		sec.Fields = append(sec.Fields, Field{
			Path:      indexPath("certifications", i),
			Role:      RoleBullet,
			Value:     c,
			Removable: true,
		})
	}
	return sec
}
