package types

import (
	"fmt"
	"strings"
	"time"
)

// Contact holds the contact block of a resume. Phone, email and location are
// required by the extraction contract; linkedin and portfolio are optional.
type Contact struct {
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Location  string `json:"location"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
}

// Experience represents a single work entry. Description holds one bullet
// per element; element order is display order.
type Experience struct {
	Company     string   `json:"company"`
	JobTitle    string   `json:"jobTitle"`
	Dates       string   `json:"dates"`
	Description []string `json:"description"`
}

// Education represents a single education entry.
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Dates       string `json:"dates"`
	GPA         string `json:"gpa,omitempty"`
}

// Skill groups related skills under a category. Details is a comma-separated
// display string.
type Skill struct {
	Category string `json:"category"`
	Details  string `json:"details"`
}

// ResumeData is the canonical structured representation of a resume. It is
// produced wholesale by AI extraction (or loaded from a saved record) and
// only ever mutated by whole-value replacement.
type ResumeData struct {
	Name           string       `json:"name"`
	Contact        Contact      `json:"contact"`
	Summary        string       `json:"summary"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	Skills         []Skill      `json:"skills"`
	Certifications []string     `json:"certifications,omitempty"`
}

// KeywordAnalysis lists job-description keywords found in and missing from
// the resume. Present only when scoring ran against a job description.
type KeywordAnalysis struct {
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
}

// AtsAnalysis is the result of one ATS scoring call. A new analysis fully
// replaces any previous one; instances are never merged.
type AtsAnalysis struct {
	Score       int              `json:"score"`
	Suggestions []string         `json:"suggestions"`
	Keywords    *KeywordAnalysis `json:"keywords,omitempty"`
}

// FormatResult is the outcome of one format operation: the extracted resume
// plus the ATS analysis when a job description was supplied.
type FormatResult struct {
	Resume   ResumeData   `json:"resume"`
	Analysis *AtsAnalysis `json:"analysis,omitempty"`
}

// SavedResume is the persisted record shape. ID is assigned by the store on
// first save and stable afterward; UpdatedAt is refreshed on every save.
type SavedResume struct {
	ID         string     `json:"id"`
	UpdatedAt  time.Time  `json:"updated_at"`
	Name       string     `json:"name"`
	RawText    string     `json:"raw_text"`
	ResumeData ResumeData `json:"resume_data"`
	UserID     string     `json:"user_id"`
}

// TemplateName selects one of the two document templates.
type TemplateName string

const (
	TemplateClassic TemplateName = "classic"
	TemplateModern  TemplateName = "modern"
)

// ParseTemplateName maps a user-supplied template selector to a TemplateName.
func ParseTemplateName(s string) (TemplateName, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(TemplateClassic):
		return TemplateClassic, nil
	case string(TemplateModern):
		return TemplateModern, nil
	default:
		return "", fmt.Errorf("unknown template %q (supported: classic, modern)", s)
	}
}

// Clone returns a deep copy of the resume. Renderers hand edited copies back
// through Clone-derived values so the controller's copy is never aliased.
func (r ResumeData) Clone() ResumeData {
	out := r
	out.Experience = make([]Experience, len(r.Experience))
	for i, exp := range r.Experience {
		out.Experience[i] = exp
		out.Experience[i].Description = append([]string(nil), exp.Description...)
	}
	out.Education = append([]Education(nil), r.Education...)
	out.Skills = append([]Skill(nil), r.Skills...)
	if r.Certifications != nil {
		out.Certifications = append([]string(nil), r.Certifications...)
	}
	return out
}

// Validate enforces the extraction data contract: required fields must be
// present. Optional contact fields and certifications may be empty; anything
// else missing is a contract violation, never silently defaulted.
func (r ResumeData) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("resume name is empty")
	}
	if strings.TrimSpace(r.Contact.Phone) == "" {
		return fmt.Errorf("contact phone is empty")
	}
	if strings.TrimSpace(r.Contact.Email) == "" {
		return fmt.Errorf("contact email is empty")
	}
	if strings.TrimSpace(r.Contact.Location) == "" {
		return fmt.Errorf("contact location is empty")
	}
	for i, exp := range r.Experience {
		if strings.TrimSpace(exp.Company) == "" {
			return fmt.Errorf("experience[%d]: company is empty", i)
		}
		if strings.TrimSpace(exp.JobTitle) == "" {
			return fmt.Errorf("experience[%d]: job title is empty", i)
		}
		if exp.Description == nil {
			return fmt.Errorf("experience[%d]: description is missing", i)
		}
	}
	for i, edu := range r.Education {
		if strings.TrimSpace(edu.Institution) == "" {
			return fmt.Errorf("education[%d]: institution is empty", i)
		}
		if strings.TrimSpace(edu.Degree) == "" {
			return fmt.Errorf("education[%d]: degree is empty", i)
		}
	}
	for i, skill := range r.Skills {
		if strings.TrimSpace(skill.Category) == "" {
			return fmt.Errorf("skills[%d]: category is empty", i)
		}
	}
	return nil
}

// Validate checks the scoring data contract.
func (a AtsAnalysis) Validate() error {
	if a.Score < 0 || a.Score > 100 {
		return fmt.Errorf("ats score %d out of range 0-100", a.Score)
	}
	if len(a.Suggestions) == 0 {
		return fmt.Errorf("ats analysis has no suggestions")
	}
	return nil
}
