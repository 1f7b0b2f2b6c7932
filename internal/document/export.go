package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Format identifies an export target
type Format string

const (
	FormatDocx     Format = "docx"
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
)

// BaseFileName is used for every exported file, with the format's extension
const BaseFileName = "FIR_Predictions"

// Formats lists the supported export formats, default first
var Formats = []Format{FormatDocx, FormatMarkdown, FormatHTML}

// MIMEType returns the content type served for the format
func (f Format) MIMEType() string {
	switch f {
	case FormatDocx:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatHTML:
		return "text/html; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

// FileName returns the fixed download name for the format
func (f Format) FileName() string {
	return BaseFileName + "." + string(f)
}

// ParseFormat accepts a format name or file extension
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
	switch s {
	case "", "docx", "word":
		return FormatDocx, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "html", "htm":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", s)
	}
}

// Exporter turns a report into file bytes
type Exporter interface {
	Format() Format
	Export(r *Report) ([]byte, error)
}

// ExporterFor returns the exporter for a format
func ExporterFor(f Format) (Exporter, error) {
	switch f {
	case FormatDocx:
		return NewDocxExporter(), nil
	case FormatMarkdown:
		return NewMarkdownExporter(), nil
	case FormatHTML:
		return NewHTMLExporter(), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", f)
	}
}

// Metadata describes an exported file
type Metadata struct {
	Format    Format    `json:"format"`
	FileName  string    `json:"file_name"`
	Path      string    `json:"path,omitempty"`
	MIMEType  string    `json:"mime_type"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}

// FileSizeHuman returns human-readable file size
func (m Metadata) FileSizeHuman() string {
	bytes := m.SizeBytes
	if bytes < 1024 {
		return fmt.Sprintf("%d B", bytes)
	}
	if bytes < 1024*1024 {
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	}
	return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
}

// Render exports the report in memory
func Render(e Exporter, r *Report) ([]byte, Metadata, error) {
	data, err := e.Export(r)
	if err != nil {
		return nil, Metadata{}, fmt.Errorf("export %s: %w", e.Format(), err)
	}
	f := e.Format()
	return data, Metadata{
		Format:    f,
		FileName:  f.FileName(),
		MIMEType:  f.MIMEType(),
		SizeBytes: int64(len(data)),
		CreatedAt: time.Now(),
	}, nil
}

// Save exports the report into dir under the format's fixed file name
func Save(dir string, e Exporter, r *Report) (Metadata, error) {
	data, meta, err := Render(e, r)
	if err != nil {
		return Metadata{}, err
	}

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Metadata{}, err
	}

	path, err := filepath.Abs(filepath.Join(dir, meta.FileName))
	if err != nil {
		return Metadata{}, err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return Metadata{}, fmt.Errorf("write %s: %w", path, err)
	}

	meta.Path = path
	return meta, nil
}
