package docx

import (
	"baliance.com/gooxml/document"
	"baliance.com/gooxml/measurement"

	"resumeforge/internal/types"
)

// Modern template: Arial with purple accents, name and headline above a
// borderless two-column table. Left cell (33%) carries Contact, Skills,
// Education and Certifications; right cell (67%) carries Summary and
// Experience.
const modernFont = "Arial"

var (
	modernAccent     = docColor{0x5B, 0x21, 0xB6}
	modernAccentDark = docColor{0x4C, 0x1D, 0x95}

	modernName     = style{font: modernFont, size: 22 * measurement.Point, bold: true, color: &modernAccent}
	modernHeadline = style{font: modernFont, size: 12 * measurement.Point, color: &modernAccentDark}
	modernHeader   = style{font: modernFont, size: 11 * measurement.Point, bold: true, caps: true, color: &modernAccent}
	modernTitle    = style{font: modernFont, size: 10.5 * measurement.Point, bold: true}
	modernCompany  = style{font: modernFont, size: 10.5 * measurement.Point, italic: true, color: &modernAccentDark}
	modernDates    = style{font: modernFont, size: 10 * measurement.Point}
	modernBody     = style{font: modernFont, size: 10.5 * measurement.Point}
)

// Right tab position inside the 67% column, short of the cell edge so the
// date never wraps against the cell border.
const modernRightTab = writableWidth * 62 / 100

func buildModern(doc *document.Document, data types.ResumeData) {
	addText(doc.AddParagraph(), data.Name, modernName)
	if len(data.Experience) > 0 {
		addText(doc.AddParagraph(), data.Experience[0].JobTitle, modernHeadline)
	}

	table := doc.AddTable()
	table.Properties().SetWidthPercent(100)
	row := table.AddRow()

	left := row.AddCell()
	left.Properties().SetWidthPercent(33)
	buildModernLeft(left, data)

	right := row.AddCell()
	right.Properties().SetWidthPercent(67)
	buildModernRight(right, data)
}

func buildModernLeft(cell document.Cell, data types.ResumeData) {
	addText(cell.AddParagraph(), "Contact", modernHeader)
	for _, part := range contactParts(data.Contact) {
		addText(cell.AddParagraph(), part, modernBody)
	}

	if len(data.Skills) > 0 {
		addText(cell.AddParagraph(), "Skills", modernHeader)
		for _, skill := range data.Skills {
			addText(cell.AddParagraph(), skill.Category, modernTitle)
			addText(cell.AddParagraph(), skill.Details, modernBody)
		}
	}

	if len(data.Education) > 0 {
		addText(cell.AddParagraph(), "Education", modernHeader)
		for _, edu := range data.Education {
			addText(cell.AddParagraph(), edu.Institution, modernTitle)
			degree := edu.Degree
			if edu.GPA != "" {
				degree += " (GPA: " + edu.GPA + ")"
			}
			addText(cell.AddParagraph(), degree, modernBody)
			addText(cell.AddParagraph(), edu.Dates, modernDates)
		}
	}

	if len(data.Certifications) > 0 {
		addText(cell.AddParagraph(), "Certifications", modernHeader)
		for _, cert := range data.Certifications {
			addText(cell.AddParagraph(), cert, modernBody)
		}
	}
}

func buildModernRight(cell document.Cell, data types.ResumeData) {
	if data.Summary != "" {
		addText(cell.AddParagraph(), "Summary", modernHeader)
		addText(cell.AddParagraph(), data.Summary, modernBody)
	}

	if len(data.Experience) > 0 {
		addText(cell.AddParagraph(), "Experience", modernHeader)
		for _, exp := range data.Experience {
			titleLine := cell.AddParagraph()
			addTabbedLine(titleLine, modernRightTab, exp.JobTitle, modernTitle, exp.Dates, modernDates)
			addText(cell.AddParagraph(), exp.Company, modernCompany)
			for _, bullet := range exp.Description {
				addText(cell.AddParagraph(), bulletPrefix+bullet, modernBody)
			}
		}
	}
}
