package export

import (
	"fmt"
	"strings"

	appexport "github.com/Najnomics/business-analysis-ai-V2/internal/application/export"
	"github.com/Najnomics/business-analysis-ai-V2/internal/domain/analysis"
)

// DOCXRenderer produces the report as a Word document.
type DOCXRenderer struct{}

const (
	docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`

	docxRootRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`

	headingBlue = "1F3864"
)

func (DOCXRenderer) Render(a *analysis.BusinessAnalysis, style appexport.Style) ([]byte, error) {
	r := buildReport(a)
	designed := style == appexport.StyleDesigned

	headingColor := ""
	if designed {
		headingColor = headingBlue
	}

	var body strings.Builder
	body.WriteString(docxPara("Comprehensive Business Analysis Report", docxRun{bold: true, sizeHalfPt: 48, color: headingColor}, "center", 0))
	body.WriteString(docxPara("Business: "+r.businessInput, docxRun{sizeHalfPt: 22}, "", 0))
	body.WriteString(docxPara("Generated on: "+r.generatedAt.Format("January 2, 2006"), docxRun{sizeHalfPt: 22}, "", 0))
	body.WriteString(docxWatermark(designed))

	for _, sec := range r.sections {
		body.WriteString(docxPara(sec.title, docxRun{bold: true, sizeHalfPt: 32, color: headingColor}, "", 0))
		for _, blk := range sec.blocks {
			body.WriteString(docxPara(blk.provider, docxRun{bold: true, sizeHalfPt: 26, color: headingColor}, "", 0))
			for _, ln := range blk.lines {
				body.WriteString(docxPara(ln.text, docxRun{bold: ln.bold, sizeHalfPt: 22}, "", ln.level))
			}
		}
	}

	body.WriteString(docxPara("AI Consensus & Recommendations", docxRun{bold: true, sizeHalfPt: 32, color: headingColor}, "", 0))
	body.WriteString(docxPara(fmt.Sprintf("Overall Confidence Score: %g", r.consensusScore), docxRun{sizeHalfPt: 22}, "", 0))
	if len(r.recommendations) > 0 {
		body.WriteString(docxPara("Key Recommendations:", docxRun{bold: true, sizeHalfPt: 26, color: headingColor}, "", 0))
		for _, rec := range r.recommendations {
			body.WriteString(docxPara("• "+rec, docxRun{sizeHalfPt: 22}, "", 1))
		}
	}
	body.WriteString(docxWatermark(designed))

	document := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` + body.String() + `</w:body></w:document>`

	return writeZip([]zipFile{
		{"[Content_Types].xml", docxContentTypes},
		{"_rels/.rels", docxRootRels},
		{"word/document.xml", document},
	})
}

type docxRun struct {
	bold       bool
	italic     bool
	sizeHalfPt int
	color      string
}

func docxPara(text string, run docxRun, align string, indentLevel int) string {
	var b strings.Builder
	b.WriteString("<w:p><w:pPr>")
	if align != "" {
		fmt.Fprintf(&b, `<w:jc w:val="%s"/>`, align)
	}
	if indentLevel > 0 {
		fmt.Fprintf(&b, `<w:ind w:left="%d"/>`, indentLevel*720)
	}
	b.WriteString("</w:pPr><w:r><w:rPr>")
	if run.bold {
		b.WriteString("<w:b/>")
	}
	if run.italic {
		b.WriteString("<w:i/>")
	}
	if run.sizeHalfPt > 0 {
		fmt.Fprintf(&b, `<w:sz w:val="%d"/>`, run.sizeHalfPt)
	}
	if run.color != "" {
		fmt.Fprintf(&b, `<w:color w:val="%s"/>`, run.color)
	}
	fmt.Fprintf(&b, `</w:rPr><w:t xml:space="preserve">%s</w:t></w:r></w:p>`, esc(text))
	return b.String()
}

func docxWatermark(designed bool) string {
	color := "000000"
	if designed {
		color = "C0C0C0"
	}
	return docxPara(watermarkText, docxRun{italic: true, sizeHalfPt: 16, color: color}, "right", 0)
}
