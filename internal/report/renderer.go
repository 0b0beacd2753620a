package report

import (
	"fmt"
	"io"
)

const unsupportedFormatMessageTemplateConstant = "unsupported report format: %s"

// Format identifies a report output format.
type Format string

// Supported report formats.
const (
	FormatText     Format = Format("text")
	FormatJSON     Format = Format("json")
	FormatYAML     Format = Format("yaml")
	FormatMarkdown Format = Format("markdown")
	FormatHTML     Format = Format("html")
)

// SupportedFormats lists the formats NewRenderer accepts, in presentation order.
func SupportedFormats() []Format {
	return []Format{FormatText, FormatJSON, FormatYAML, FormatMarkdown, FormatHTML}
}

// UnsupportedFormatError indicates a format without a registered renderer.
type UnsupportedFormatError struct {
	Format Format
}

// Error describes the unsupported format.
func (formatError UnsupportedFormatError) Error() string {
	return fmt.Sprintf(unsupportedFormatMessageTemplateConstant, formatError.Format)
}

// Renderer writes a report to the supplied writer.
type Renderer interface {
	Render(writer io.Writer, exportReport *Report) error
}

// NewRenderer creates a renderer for the given format.
func NewRenderer(format Format, colorEnabled bool) (Renderer, error) {
	switch format {
	case FormatText:
		return &TextRenderer{ColorEnabled: colorEnabled}, nil
	case FormatJSON:
		return &JSONRenderer{}, nil
	case FormatYAML:
		return &YAMLRenderer{}, nil
	case FormatMarkdown:
		return &MarkdownRenderer{}, nil
	case FormatHTML:
		return &HTMLRenderer{}, nil
	default:
		return nil, UnsupportedFormatError{Format: format}
	}
}
