package document

import (
	"strings"

	"github.com/sant0-9/firpredict/internal/sections"
)

const (
	ReportTitle        = "FIR Section Prediction Report"
	CaseHeading        = "Case Description:"
	PredictionsHeading = "Predicted Sections & Descriptions:"
)

// Run is a span of text with a single style
type Run struct {
	Text string `json:"text"`
	Bold bool   `json:"bold,omitempty"`
}

// Paragraph is an ordered list of runs
type Paragraph struct {
	Runs []Run `json:"runs"`
}

// Text returns the paragraph without styling
func (p Paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Heading is a titled break in the document
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Block is either a heading or a paragraph
type Block struct {
	Heading   *Heading   `json:"heading,omitempty"`
	Paragraph *Paragraph `json:"paragraph,omitempty"`
}

// IsHeading reports whether the block is a heading
func (b Block) IsHeading() bool {
	return b.Heading != nil
}

// Report describes an exportable prediction document
type Report struct {
	Title              string      `json:"title"`
	CaseHeading        string      `json:"case_heading"`
	Case               Paragraph   `json:"case"`
	PredictionsHeading string      `json:"predictions_heading"`
	Predictions        []Paragraph `json:"predictions"`
}

// Build lays out the report for a case and its parsed reply.
// Each parsed line becomes exactly one prediction paragraph.
func Build(caseText string, lines []sections.Line) *Report {
	r := &Report{
		Title:              ReportTitle,
		CaseHeading:        CaseHeading,
		Case:               Paragraph{Runs: []Run{{Text: caseText}}},
		PredictionsHeading: PredictionsHeading,
		Predictions:        make([]Paragraph, 0, len(lines)),
	}

	for _, l := range lines {
		if l.IsSection() {
			r.Predictions = append(r.Predictions, Paragraph{Runs: []Run{
				{Text: l.Label + sections.Delimiter, Bold: true},
				{Text: l.Description},
			}})
			continue
		}
		r.Predictions = append(r.Predictions, Paragraph{Runs: []Run{{Text: l.Text}}})
	}

	return r
}

// Blocks flattens the report into document order
func (r *Report) Blocks() []Block {
	blocks := make([]Block, 0, len(r.Predictions)+4)

	blocks = append(blocks,
		Block{Heading: &Heading{Level: 1, Text: r.Title}},
		Block{Heading: &Heading{Level: 2, Text: r.CaseHeading}},
	)
	c := r.Case
	blocks = append(blocks,
		Block{Paragraph: &c},
		Block{Heading: &Heading{Level: 2, Text: r.PredictionsHeading}},
	)
	for i := range r.Predictions {
		blocks = append(blocks, Block{Paragraph: &r.Predictions[i]})
	}

	return blocks
}
