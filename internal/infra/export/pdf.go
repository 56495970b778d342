package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	appexport "github.com/Najnomics/business-analysis-ai-V2/internal/application/export"
	"github.com/Najnomics/business-analysis-ai-V2/internal/domain/analysis"
)

// PDFRenderer produces the full report as an A4 PDF.
type PDFRenderer struct{}

func (PDFRenderer) Render(a *analysis.BusinessAnalysis, style appexport.Style) ([]byte, error) {
	r := buildReport(a)
	designed := style == appexport.StyleDesigned

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	setHeadingColor := func() {
		if designed {
			pdf.SetTextColor(0, 0, 139)
		} else {
			pdf.SetTextColor(0, 0, 0)
		}
	}

	// Title page
	pdf.SetFont("Helvetica", "B", 24)
	setHeadingColor()
	pdf.MultiCell(0, 12, tr("Comprehensive Business Analysis Report"), "", "C", false)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.MultiCell(0, 6, tr("Business: "+r.businessInput), "", "L", false)
	pdf.Ln(2)
	pdf.CellFormat(0, 6, tr("Generated on: "+r.generatedAt.Format("January 2, 2006")), "", 1, "L", false, 0, "")
	pdfWatermark(pdf, tr, designed)
	pdf.AddPage()

	for _, sec := range r.sections {
		pdf.SetFont("Helvetica", "B", 16)
		setHeadingColor()
		pdf.CellFormat(0, 9, tr(sec.title), "", 1, "L", false, 0, "")
		pdf.Ln(1)
		for _, blk := range sec.blocks {
			pdf.SetFont("Helvetica", "B", 11)
			pdf.SetTextColor(0, 0, 0)
			pdf.CellFormat(0, 6, tr(blk.provider+":"), "", 1, "L", false, 0, "")
			for _, ln := range blk.lines {
				if ln.bold {
					pdf.SetFont("Helvetica", "B", 10)
				} else {
					pdf.SetFont("Helvetica", "", 10)
				}
				pdf.MultiCell(0, 5, tr(strings.Repeat("    ", ln.level)+ln.text), "", "L", false)
			}
			pdf.Ln(2)
		}
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "B", 16)
	setHeadingColor()
	pdf.CellFormat(0, 9, tr("AI Consensus & Recommendations"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Overall Confidence Score: %g", r.consensusScore)), "", 1, "L", false, 0, "")
	if len(r.recommendations) > 0 {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, 6, tr("Key Recommendations:"), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, rec := range r.recommendations {
			pdf.MultiCell(0, 5, tr("• "+rec), "", "L", false)
		}
	}
	pdfWatermark(pdf, tr, designed)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func pdfWatermark(pdf *fpdf.Fpdf, tr func(string) string, designed bool) {
	pdf.Ln(5)
	pdf.SetFont("Helvetica", "I", 8)
	if designed {
		pdf.SetTextColor(211, 211, 211)
	} else {
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.CellFormat(0, 4, tr(watermarkText), "", 1, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}
