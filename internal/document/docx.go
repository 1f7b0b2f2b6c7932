package document

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"time"
)

const (
	contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
</Types>`

	packageRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

	documentRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
</Relationships>`

	stylesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:rPr><w:sz w:val="22"/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:pPr><w:keepNext/><w:spacing w:before="480" w:after="120"/><w:outlineLvl w:val="0"/></w:pPr><w:rPr><w:b/><w:color w:val="365F91"/><w:sz w:val="28"/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="Heading2"><w:name w:val="heading 2"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:pPr><w:keepNext/><w:spacing w:before="200" w:after="80"/><w:outlineLvl w:val="1"/></w:pPr><w:rPr><w:b/><w:color w:val="4F81BD"/><w:sz w:val="26"/></w:rPr></w:style>
</w:styles>`

	documentOpen = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`
	documentClose = `<w:sectPr><w:pgSz w:w="11906" w:h="16838"/><w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440" w:header="708" w:footer="708" w:gutter="0"/></w:sectPr></w:body></w:document>`
)

// DocxExporter writes WordprocessingML packages
type DocxExporter struct {
	// modified is stamped on every zip entry so output is reproducible
	modified time.Time
}

func NewDocxExporter() *DocxExporter {
	return &DocxExporter{modified: time.Date(2023, 12, 25, 0, 0, 0, 0, time.UTC)}
}

func (d *DocxExporter) Format() Format {
	return FormatDocx
}

func (d *DocxExporter) Export(r *Report) ([]byte, error) {
	body, err := documentXML(r)
	if err != nil {
		return nil, err
	}

	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(packageRelsXML)},
		{"word/_rels/document.xml.rels", []byte(documentRelsXML)},
		{"word/styles.xml", []byte(stylesXML)},
		{"word/document.xml", body},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, p := range parts {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     p.name,
			Method:   zip.Deflate,
			Modified: d.modified,
		})
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", p.name, err)
		}
		if _, err := w.Write(p.data); err != nil {
			return nil, fmt.Errorf("write %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func documentXML(r *Report) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString(documentOpen)

	for _, block := range r.Blocks() {
		if block.IsHeading() {
			b.WriteString(`<w:p><w:pPr><w:pStyle w:val="Heading`)
			fmt.Fprintf(&b, "%d", block.Heading.Level)
			b.WriteString(`"/></w:pPr>`)
			if err := writeRun(&b, Run{Text: block.Heading.Text}); err != nil {
				return nil, err
			}
			b.WriteString(`</w:p>`)
			continue
		}

		b.WriteString(`<w:p>`)
		for _, run := range block.Paragraph.Runs {
			if run.Text == "" {
				continue
			}
			if err := writeRun(&b, run); err != nil {
				return nil, err
			}
		}
		b.WriteString(`</w:p>`)
	}

	b.WriteString(documentClose)
	return b.Bytes(), nil
}

func writeRun(b *bytes.Buffer, run Run) error {
	b.WriteString(`<w:r>`)
	if run.Bold {
		b.WriteString(`<w:rPr><w:b/></w:rPr>`)
	}

	// Word ignores raw newlines and tabs inside <w:t>; they need their own elements
	start := 0
	for i, c := range run.Text {
		var brk string
		switch c {
		case '\n':
			brk = `<w:br/>`
		case '\t':
			brk = `<w:tab/>`
		default:
			continue
		}
		if err := writeText(b, run.Text[start:i]); err != nil {
			return err
		}
		b.WriteString(brk)
		start = i + 1
	}
	if err := writeText(b, run.Text[start:]); err != nil {
		return err
	}

	b.WriteString(`</w:r>`)
	return nil
}

func writeText(b *bytes.Buffer, s string) error {
	if s == "" {
		return nil
	}
	b.WriteString(`<w:t xml:space="preserve">`)
	if err := xml.EscapeText(b, []byte(s)); err != nil {
		return err
	}
	b.WriteString(`</w:t>`)
	return nil
}
