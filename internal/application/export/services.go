package export

import (
	"context"
	"errors"
	"fmt"
	"log"

	domain "github.com/Najnomics/business-analysis-ai-V2/internal/domain/analysis"
)

// ErrUnsupported marks a format or style the platform does not render.
var ErrUnsupported = errors.New("unsupported export option")

// Format enum
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatPPTX Format = "pptx"
	FormatDOCX Format = "docx"
)

// Style enum: "designed" is the default colour treatment,
// "black_and_white" strips it for print.
type Style string

const (
	StyleDesigned Style = "designed"
	StyleBW       Style = "black_and_white"
)

var contentTypes = map[Format]string{
	FormatPDF:  "application/pdf",
	FormatPPTX: "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	FormatDOCX: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// Renderer port: turn one analysis into document bytes.
type Renderer interface {
	Render(a *domain.BusinessAnalysis, style Style) ([]byte, error)
}

// Archive port: optional copy of every generated report kept in object
// storage.
type Archive interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// Document is a rendered report ready to stream to the client.
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Service resolves the analysis (owner-scoped) and renders it in the
// requested format.
type Service struct {
	Repo      domain.Repository
	Renderers map[Format]Renderer
	Archive   Archive // optional
}

// Export renders one analysis. Unknown formats and styles are rejected
// before the record is fetched.
func (s *Service) Export(ctx context.Context, id domain.AnalysisID, userID string, format Format, style Style) (*Document, error) {
	renderer, ok := s.Renderers[format]
	if !ok {
		return nil, fmt.Errorf("%w: format %s", ErrUnsupported, format)
	}
	if style == "" {
		style = StyleDesigned
	}
	if style != StyleDesigned && style != StyleBW {
		return nil, fmt.Errorf("%w: style %s", ErrUnsupported, style)
	}

	a, err := s.Repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	data, err := renderer.Render(a, style)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", format, err)
	}

	doc := &Document{
		Filename:    fmt.Sprintf("business_analysis_%s.%s", id, format),
		ContentType: contentTypes[format],
		Data:        data,
	}

	if s.Archive != nil {
		// Best effort; the download must not fail because the archive did.
		key := fmt.Sprintf("%s/%s", userID, doc.Filename)
		if _, err := s.Archive.Put(ctx, key, doc.Data, doc.ContentType); err != nil {
			log.Printf("archiving export %s: %v", key, err)
		}
	}
	return doc, nil
}
