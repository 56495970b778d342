package export

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
)

// The PPTX and DOCX renderers write minimal Office Open XML packages by
// hand: a zip archive of content-type declarations, relationship parts
// and the document part itself.

type zipFile struct {
	name string
	body string
}

func writeZip(files []zipFile) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range files {
		w, err := zw.Create(f.name)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write([]byte(f.body)); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func esc(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
