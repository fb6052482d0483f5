package render

import (
	stderrors "errors"

	"resumeforge/internal/types"
)

// errUnknownField is internal to the field setters; callers wrap it into a
// path error carrying the full path.
var errUnknownField = stderrors.New("unknown field")

// SetField returns a deep copy of data with the single leaf at path replaced
// by value. The input is never mutated and no other field changes.
func SetField(data types.ResumeData, path, value string) (types.ResumeData, error) {
	segments, err := parsePath(path)
	if err != nil {
		return types.ResumeData{}, err
	}

	out := data.Clone()
	head := segments[0]

	switch head.name {
	case "name":
		if head.index >= 0 || len(segments) != 1 {
			return types.ResumeData{}, pathError(path)
		}
		out.Name = value
	case "summary":
		if head.index >= 0 || len(segments) != 1 {
			return types.ResumeData{}, pathError(path)
		}
		out.Summary = value
	case "contact":
		if head.index >= 0 || len(segments) != 2 || segments[1].index >= 0 {
			return types.ResumeData{}, pathError(path)
		}
		if err := setContactField(&out.Contact, segments[1].name, value); err != nil {
			return types.ResumeData{}, pathError(path)
		}
	case "experience":
		if head.index < 0 || head.index >= len(out.Experience) {
			return types.ResumeData{}, indexError(path, head.index, len(out.Experience))
		}
		if len(segments) != 2 {
			return types.ResumeData{}, pathError(path)
		}
		if err := setExperienceField(&out.Experience[head.index], segments[1], path, value); err != nil {
			return types.ResumeData{}, err
		}
	case "education":
		if head.index < 0 || head.index >= len(out.Education) {
			return types.ResumeData{}, indexError(path, head.index, len(out.Education))
		}
		if len(segments) != 2 || segments[1].index >= 0 {
			return types.ResumeData{}, pathError(path)
		}
		if err := setEducationField(&out.Education[head.index], segments[1].name, value); err != nil {
			return types.ResumeData{}, pathError(path)
		}
	case "skills":
		if head.index < 0 || head.index >= len(out.Skills) {
			return types.ResumeData{}, indexError(path, head.index, len(out.Skills))
		}
		if len(segments) != 2 || segments[1].index >= 0 {
			return types.ResumeData{}, pathError(path)
		}
		switch segments[1].name {
		case "category":
			out.Skills[head.index].Category = value
		case "details":
			out.Skills[head.index].Details = value
		default:
			return types.ResumeData{}, pathError(path)
		}
	case "certifications":
		if len(segments) != 1 || head.index < 0 {
			return types.ResumeData{}, pathError(path)
		}
		if head.index >= len(out.Certifications) {
			return types.ResumeData{}, indexError(path, head.index, len(out.Certifications))
		}
		out.Certifications[head.index] = value
	default:
		return types.ResumeData{}, pathError(path)
	}

	return out, nil
}

// RemoveItem returns a deep copy of data with the list element at path
// removed. The remaining elements keep their relative order; no other list
// is touched. Valid targets are experience[i], experience[i].description[j],
// education[i], skills[i] and certifications[i].
func RemoveItem(data types.ResumeData, path string) (types.ResumeData, error) {
	segments, err := parsePath(path)
	if err != nil {
		return types.ResumeData{}, err
	}

	out := data.Clone()
	head := segments[0]
	if head.index < 0 {
		return types.ResumeData{}, pathError(path)
	}

	switch head.name {
	case "experience":
		if head.index >= len(out.Experience) {
			return types.ResumeData{}, indexError(path, head.index, len(out.Experience))
		}
		if len(segments) == 1 {
			out.Experience = removeAt(out.Experience, head.index)
			return out, nil
		}
		sub := segments[1]
		if len(segments) != 2 || sub.name != "description" || sub.index < 0 {
			return types.ResumeData{}, pathError(path)
		}
		desc := out.Experience[head.index].Description
		if sub.index >= len(desc) {
			return types.ResumeData{}, indexError(path, sub.index, len(desc))
		}
		out.Experience[head.index].Description = removeAt(desc, sub.index)
	case "education":
		if len(segments) != 1 {
			return types.ResumeData{}, pathError(path)
		}
		if head.index >= len(out.Education) {
			return types.ResumeData{}, indexError(path, head.index, len(out.Education))
		}
		out.Education = removeAt(out.Education, head.index)
	case "skills":
		if len(segments) != 1 {
			return types.ResumeData{}, pathError(path)
		}
		if head.index >= len(out.Skills) {
			return types.ResumeData{}, indexError(path, head.index, len(out.Skills))
		}
		out.Skills = removeAt(out.Skills, head.index)
	case "certifications":
		if len(segments) != 1 {
			return types.ResumeData{}, pathError(path)
		}
		if head.index >= len(out.Certifications) {
			return types.ResumeData{}, indexError(path, head.index, len(out.Certifications))
		}
		out.Certifications = removeAt(out.Certifications, head.index)
	default:
		return types.ResumeData{}, pathError(path)
	}

	return out, nil
}

func removeAt[T any](list []T, i int) []T {
	out := make([]T, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...)
}

func setContactField(c *types.Contact, name, value string) error {
	switch name {
	case "phone":
		c.Phone = value
	case "email":
		c.Email = value
	case "location":
		c.Location = value
	case "linkedin":
		c.LinkedIn = value
	case "portfolio":
		c.Portfolio = value
	default:
		return errUnknownField
	}
	return nil
}

func setExperienceField(exp *types.Experience, seg segment, path, value string) error {
	switch seg.name {
	case "company":
		if seg.index >= 0 {
			return pathError(path)
		}
		exp.Company = value
	case "jobTitle":
		if seg.index >= 0 {
			return pathError(path)
		}
		exp.JobTitle = value
	case "dates":
		if seg.index >= 0 {
			return pathError(path)
		}
		exp.Dates = value
	case "description":
		if seg.index < 0 {
			return pathError(path)
		}
		if seg.index >= len(exp.Description) {
			return indexError(path, seg.index, len(exp.Description))
		}
		exp.Description[seg.index] = value
	default:
		return pathError(path)
	}
	return nil
}

func setEducationField(e *types.Education, name, value string) error {
	switch name {
	case "institution":
		e.Institution = value
	case "degree":
		e.Degree = value
	case "dates":
		e.Dates = value
	case "gpa":
		e.GPA = value
	default:
		return errUnknownField
	}
	return nil
}
