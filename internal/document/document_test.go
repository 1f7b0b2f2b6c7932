package document

import (
	"testing"

	"github.com/sant0-9/firpredict/internal/sections"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleReply = "Section 101: Attempt to cause grievous hurt with a dangerous weapon.\n" +
	"Section 103: Voluntarily causing hurt with intent to disable.\n" +
	"\n" +
	"Section 112 malformed\n" +
	"Verify with counsel."

func TestBuildLayout(t *testing.T) {
	r := Build("A person was attacked with a knife.", sections.Parse(sampleReply))

	assert.Equal(t, ReportTitle, r.Title)
	assert.Equal(t, CaseHeading, r.CaseHeading)
	assert.Equal(t, PredictionsHeading, r.PredictionsHeading)
	assert.Equal(t, "A person was attacked with a knife.", r.Case.Text())
	require.Len(t, r.Predictions, 5)

	assert.Equal(t, []Run{
		{Text: "Section 101: ", Bold: true},
		{Text: "Attempt to cause grievous hurt with a dangerous weapon."},
	}, r.Predictions[0].Runs)
	assert.Equal(t, []Run{{Text: ""}}, r.Predictions[2].Runs)
	assert.Equal(t, []Run{{Text: "Section 112 malformed"}}, r.Predictions[3].Runs)
	assert.Equal(t, "Verify with counsel.", r.Predictions[4].Text())
}

func TestBuildParagraphCountMatchesLines(t *testing.T) {
	replies := []string{
		"",
		"\n",
		"single line",
		sampleReply,
		"\n\n\nSection 1: a\n\n",
	}

	for _, raw := range replies {
		lines := sections.Parse(raw)
		r := Build("case", lines)
		assert.Len(t, r.Predictions, len(lines), "reply %q", raw)

		var paragraphs, headings int
		for _, b := range r.Blocks() {
			if b.IsHeading() {
				headings++
			} else {
				paragraphs++
			}
		}
		assert.Equal(t, 3, headings)
		// one paragraph holds the case text
		assert.Equal(t, len(lines)+1, paragraphs)
	}
}

func TestBlocksOrder(t *testing.T) {
	r := Build("case text", sections.Parse("Section 1: a"))
	blocks := r.Blocks()

	require.Len(t, blocks, 5)
	assert.Equal(t, &Heading{Level: 1, Text: ReportTitle}, blocks[0].Heading)
	assert.Equal(t, &Heading{Level: 2, Text: CaseHeading}, blocks[1].Heading)
	assert.Equal(t, "case text", blocks[2].Paragraph.Text())
	assert.Equal(t, &Heading{Level: 2, Text: PredictionsHeading}, blocks[3].Heading)
	assert.Equal(t, "Section 1: a", blocks[4].Paragraph.Text())
}

func TestBuildKeepsCaseVerbatim(t *testing.T) {
	text := "  line one\nline two  "
	r := Build(text, nil)
	assert.Equal(t, text, r.Case.Text())
	assert.Empty(t, r.Predictions)
}
