package sections

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDisplay(t *testing.T) {
	lines := Parse("Predicted:\nSection 101: Attempt to cause grievous hurt.\n\nSection 9 broken")
	units := ToDisplay(lines)

	require.Len(t, units, len(lines))

	assert.Equal(t, DisplayUnit{Text: "Predicted:"}, units[0])
	assert.Equal(t, DisplayUnit{
		Emphasized: true,
		Label:      "Section 101",
		Text:       "Attempt to cause grievous hurt.",
	}, units[1])
	assert.Equal(t, DisplayUnit{Text: ""}, units[2])
	assert.Equal(t, DisplayUnit{Text: "Section 9 broken"}, units[3])
}

func TestToDisplayEmpty(t *testing.T) {
	assert.Empty(t, ToDisplay(Parse("")))
}

func TestDisplayUnitString(t *testing.T) {
	units := ToDisplay(Parse("Section 101: Attempt to cause grievous hurt.\nplain"))

	assert.Equal(t, "Section 101: Attempt to cause grievous hurt.", units[0].String())
	assert.Equal(t, "plain", units[1].String())
}

func TestMarkdown(t *testing.T) {
	units := ToDisplay(Parse("Section 101: Attempt.\nnote"))

	assert.Equal(t, "**Section 101:** Attempt.\n\nnote", Markdown(units))
	assert.Equal(t, "", Markdown(nil))
}

func TestMarkdownKeepsBlankUnits(t *testing.T) {
	units := ToDisplay(Parse("Section 101: Attempt.\n\nnote"))
	require.Len(t, units, 3)

	assert.Equal(t, "**Section 101:** Attempt.\n\n\u00a0\n\nnote", Markdown(units))
}

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "a phone was stolen", "a phone was stolen"},
		{"heading", "# not a heading", "\\# not a heading"},
		{"list", "- not a list", "\\- not a list"},
		{"indented quote", "  > quoted", "  \\> quoted"},
		{"ordered", "1. first", "1\\. first"},
		{"number mid text", "12 people", "12 people"},
		{"multi line", "intro\n# not a heading\n- not a list", "intro\\\n\\# not a heading\\\n\\- not a list"},
		{"paragraph break", "one\n\ntwo", "one\n\ntwo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeMarkdown(tt.in))
		})
	}
}

func TestRenderKeepsLiteralMarkers(t *testing.T) {
	r, err := NewRenderer(80, "notty")
	require.NoError(t, err)

	out := Render(ToDisplay(Parse("# not a heading\n- not a list")), r)
	assert.Contains(t, out, "# not a heading")
	assert.Contains(t, out, "- not a list")
}

func TestRenderWithoutRenderer(t *testing.T) {
	units := ToDisplay(Parse("Section 101: Attempt."))
	assert.Equal(t, Markdown(units), Render(units, nil))
}

func TestRenderNoTTY(t *testing.T) {
	r, err := NewRenderer(80, "notty")
	require.NoError(t, err)

	out := Render(ToDisplay(Parse("Section 101: Attempt to cause grievous hurt.")), r)
	assert.True(t, strings.Contains(out, "Section 101"))
	assert.True(t, strings.Contains(out, "Attempt to cause grievous hurt."))
}
