package docx

import (
	"strings"

	"baliance.com/gooxml/document"
	"baliance.com/gooxml/measurement"
	"baliance.com/gooxml/schema/soo/wml"

	"resumeforge/internal/types"
)

// Classic template: single column, Calibri, no color. Section order is
// Contact, Summary, Skills, Experience, Education, Certifications.
const classicFont = "Calibri"

var (
	classicName    = style{font: classicFont, size: 20 * measurement.Point, bold: true}
	classicContact = style{font: classicFont, size: 10 * measurement.Point}
	classicHeader  = style{font: classicFont, size: 12 * measurement.Point, bold: true, caps: true}
	classicTitle   = style{font: classicFont, size: 11 * measurement.Point, bold: true}
	classicCompany = style{font: classicFont, size: 11 * measurement.Point, italic: true}
	classicDates   = style{font: classicFont, size: 11 * measurement.Point}
	classicBody    = style{font: classicFont, size: 11 * measurement.Point}
)

func buildClassic(doc *document.Document, data types.ResumeData) {
	namePara := doc.AddParagraph()
	namePara.Properties().SetAlignment(wml.ST_JcCenter)
	addText(namePara, data.Name, classicName)

	contactPara := doc.AddParagraph()
	contactPara.Properties().SetAlignment(wml.ST_JcCenter)
	addText(contactPara, strings.Join(contactParts(data.Contact), " | "), classicContact)

	if data.Summary != "" {
		classicHeading(doc, "Summary")
		addText(doc.AddParagraph(), data.Summary, classicBody)
	}

	if len(data.Skills) > 0 {
		classicHeading(doc, "Skills")
		for _, skill := range data.Skills {
			para := doc.AddParagraph()
			addText(para, skill.Category+": ", classicTitle)
			addText(para, skill.Details, classicBody)
		}
	}

	if len(data.Experience) > 0 {
		classicHeading(doc, "Experience")
		for _, exp := range data.Experience {
			titleLine := doc.AddParagraph()
			addTabbedLine(titleLine, writableWidth, exp.JobTitle, classicTitle, exp.Dates, classicDates)
			addText(doc.AddParagraph(), exp.Company, classicCompany)
			for _, bullet := range exp.Description {
				addText(doc.AddParagraph(), bulletPrefix+bullet, classicBody)
			}
		}
	}

	if len(data.Education) > 0 {
		classicHeading(doc, "Education")
		for _, edu := range data.Education {
			titleLine := doc.AddParagraph()
			addTabbedLine(titleLine, writableWidth, edu.Institution, classicTitle, edu.Dates, classicDates)
			degree := edu.Degree
			if edu.GPA != "" {
				degree += " | GPA: " + edu.GPA
			}
			addText(doc.AddParagraph(), degree, classicBody)
		}
	}

	if len(data.Certifications) > 0 {
		classicHeading(doc, "Certifications")
		addText(doc.AddParagraph(), strings.Join(data.Certifications, " | "), classicBody)
	}
}

func classicHeading(doc *document.Document, title string) {
	para := doc.AddParagraph()
	addText(para, title, classicHeader)
}

func contactParts(c types.Contact) []string {
	parts := []string{c.Phone, c.Email, c.Location}
	if c.LinkedIn != "" {
		parts = append(parts, c.LinkedIn)
	}
	if c.Portfolio != "" {
		parts = append(parts, c.Portfolio)
	}
	return parts
}
