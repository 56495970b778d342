package export

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appexport "github.com/Najnomics/business-analysis-ai-V2/internal/application/export"
)

func readZipEntry(t *testing.T, data []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			require.NoError(t, err)
			defer rc.Close()
			body, err := io.ReadAll(rc)
			require.NoError(t, err)
			return string(body)
		}
	}
	t.Fatalf("entry %s not found in archive", name)
	return ""
}

func TestPDFRender(t *testing.T) {
	for _, style := range []appexport.Style{appexport.StyleDesigned, appexport.StyleBW} {
		data, err := PDFRenderer{}.Render(sampleAnalysis(), style)
		require.NoError(t, err, "style %s", style)
		assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "style %s must produce a PDF header", style)
	}
}

func TestDOCXRender(t *testing.T) {
	data, err := DOCXRenderer{}.Render(sampleAnalysis(), appexport.StyleDesigned)
	require.NoError(t, err)

	doc := readZipEntry(t, data, "word/document.xml")
	assert.Contains(t, doc, "Comprehensive Business Analysis Report")
	assert.Contains(t, doc, "Fresh &amp; Co organic groceries")
	assert.Contains(t, doc, "Swot Analysis")
	assert.Contains(t, doc, watermarkText)

	// relationship parts must exist for the package to open
	readZipEntry(t, data, "[Content_Types].xml")
	readZipEntry(t, data, "_rels/.rels")
}

func TestDOCXStyleControlsColor(t *testing.T) {
	designed, err := DOCXRenderer{}.Render(sampleAnalysis(), appexport.StyleDesigned)
	require.NoError(t, err)
	bw, err := DOCXRenderer{}.Render(sampleAnalysis(), appexport.StyleBW)
	require.NoError(t, err)

	assert.Contains(t, readZipEntry(t, designed, "word/document.xml"), headingBlue)
	assert.NotContains(t, readZipEntry(t, bw, "word/document.xml"), headingBlue)
}

func TestPPTXRender(t *testing.T) {
	data, err := PPTXRenderer{}.Render(sampleAnalysis(), appexport.StyleDesigned)
	require.NoError(t, err)

	pres := readZipEntry(t, data, "ppt/presentation.xml")
	assert.Contains(t, pres, "sldIdLst")

	// title slide plus one per framework section
	title := readZipEntry(t, data, "ppt/slides/slide1.xml")
	assert.Contains(t, title, "Business Analysis Report")
	second := readZipEntry(t, data, "ppt/slides/slide2.xml")
	assert.Contains(t, second, "Swot Analysis")
	third := readZipEntry(t, data, "ppt/slides/slide3.xml")
	assert.Contains(t, third, "Pestel Analysis")

	readZipEntry(t, data, "ppt/slideMasters/slideMaster1.xml")
	readZipEntry(t, data, "ppt/theme/theme1.xml")
}
