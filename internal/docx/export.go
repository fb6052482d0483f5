// Package docx turns a structured resume into a Word document. Layout is
// deterministic per template: fixed page geometry, fixed section ordering
// mirroring the live renderers, and role-based run styling. Title/date
// alignment uses a right tab stop at the writable-width boundary so it
// holds regardless of font metrics.
package docx

import (
	"bytes"
	"strings"

	"baliance.com/gooxml/color"
	"baliance.com/gooxml/document"
	"baliance.com/gooxml/measurement"
	"baliance.com/gooxml/schema/soo/ofc/sharedTypes"
	"baliance.com/gooxml/schema/soo/wml"

	"resumeforge/internal/errors"
	"resumeforge/internal/types"
)

// MIMEType is the content type served for exported documents.
const MIMEType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// A4 geometry with half-inch margins on every side. The writable width is
// where the right-aligned date tab stop sits.
const (
	pageWidth     = 210 * measurement.Millimeter
	pageHeight    = 297 * measurement.Millimeter
	pageMargin    = 720 * measurement.Twips
	writableWidth = pageWidth - 2*pageMargin
)

// bulletPrefix is written as literal text so bullets survive plain-text
// extraction by ATS parsers.
const bulletPrefix = "• "

// Filename derives the download file name from the resume's display name.
func Filename(resumeName string) string {
	name := strings.TrimSpace(resumeName)
	if name == "" {
		return "Resume.docx"
	}
	return strings.ReplaceAll(name, " ", "_") + "_Resume.docx"
}

// Export renders the resume under the selected template and returns the
// serialized document. The input is never modified; any serialization
// failure surfaces as a single export error with no partial output.
func Export(data types.ResumeData, template types.TemplateName) ([]byte, error) {
	doc := document.New()

	section := doc.BodySection()
	// gooxml v1.0.1 has no SetPageSizeAndOrientation; set the equivalent
	// CT_PageSz directly on the section properties.
	pgSz := wml.NewCT_PageSz()
	pgSz.OrientAttr = wml.ST_PageOrientationPortrait
	var pgWidthDist, pgHeightDist measurement.Distance = pageWidth, pageHeight
	pgWidth := uint64(pgWidthDist / measurement.Twips)
	pgHeight := uint64(pgHeightDist / measurement.Twips)
	pgSz.WAttr = &sharedTypes.ST_TwipsMeasure{ST_UnsignedDecimalNumber: &pgWidth}
	pgSz.HAttr = &sharedTypes.ST_TwipsMeasure{ST_UnsignedDecimalNumber: &pgHeight}
	section.X().PgSz = pgSz
	section.SetPageMargins(pageMargin, pageMargin, pageMargin, pageMargin,
		pageMargin, pageMargin, 0)

	switch template {
	case types.TemplateClassic:
		buildClassic(doc, data)
	case types.TemplateModern:
		buildModern(doc, data)
	default:
		_, err := types.ParseTemplateName(string(template))
		return nil, errors.NewValidationError(errors.ErrCodeInvalidFormat,
			"Unsupported document template", err)
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, errors.NewInternalError(errors.ErrCodeExportFailed,
			"Failed to generate document", err)
	}
	return buf.Bytes(), nil
}

// style carries the run styling for one field role.
type style struct {
	font   string
	size   measurement.Distance
	bold   bool
	italic bool
	color  *docColor
	caps   bool
}

type docColor struct{ r, g, b uint8 }

func applyStyle(run document.Run, s style) {
	props := run.Properties()
	props.SetFontFamily(s.font)
	props.SetSize(s.size)
	if s.bold {
		props.SetBold(true)
	}
	if s.italic {
		props.SetItalic(true)
	}
	if s.color != nil {
		props.SetColor(color.RGB(s.color.r, s.color.g, s.color.b))
	}
}

func addText(para document.Paragraph, text string, s style) document.Run {
	run := para.AddRun()
	applyStyle(run, s)
	if s.caps {
		text = strings.ToUpper(text)
	}
	run.AddText(text)
	return run
}

// addTabbedLine writes "left<tab>right" with a right tab stop at width so
// the right-hand text hugs the boundary.
func addTabbedLine(para document.Paragraph, width measurement.Distance,
	left string, leftStyle style, right string, rightStyle style) {
	para.Properties().AddTabStop(width, wml.ST_TabJcRight, wml.ST_TabTlcNone)
	addText(para, left, leftStyle)
	run := para.AddRun()
	applyStyle(run, rightStyle)
	run.AddTab()
	run.AddText(right)
}
