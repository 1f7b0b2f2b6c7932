package sections

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClassification(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantKind Kind
		label    string
		desc     string
	}{
		{
			name:     "well formed section",
			line:     "Section 101: Attempt to cause grievous hurt.",
			wantKind: KindSection,
			label:    "Section 101",
			desc:     "Attempt to cause grievous hurt.",
		},
		{
			name:     "missing delimiter",
			line:     "Section 101 malformed",
			wantKind: KindText,
		},
		{
			name:     "two delimiters",
			line:     "SectionXYZ: a: b",
			wantKind: KindText,
		},
		{
			name:     "colon without space",
			line:     "Section 101:Murder",
			wantKind: KindText,
		},
		{
			name:     "empty description",
			line:     "Section 101: ",
			wantKind: KindText,
		},
		{
			name:     "marker not at start",
			line:     "  Section 101: Murder",
			wantKind: KindText,
		},
		{
			name:     "lowercase marker",
			line:     "section 101: Murder",
			wantKind: KindText,
		},
		{
			name:     "markdown bold is plain text",
			line:     "**Section 101**: Murder",
			wantKind: KindText,
		},
		{
			name:     "plain prose",
			line:     "These sections may apply:",
			wantKind: KindText,
		},
		{
			name:     "blank line",
			line:     "",
			wantKind: KindText,
		},
		{
			name:     "crlf line",
			line:     "Section 303: Theft.\r",
			wantKind: KindSection,
			label:    "Section 303",
			desc:     "Theft.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := Parse(tt.line)
			if tt.line == "" {
				assert.Empty(t, lines)
				return
			}
			require.Len(t, lines, 1)
			got := lines[0]
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.line, got.Text)
			assert.Equal(t, tt.label, got.Label)
			assert.Equal(t, tt.desc, got.Description)
		})
	}
}

func TestParseEmpty(t *testing.T) {
	assert.Empty(t, Parse(""))
	assert.Equal(t, "", Join(Parse("")))
}

func TestParseKeepsOrderAndBlankLines(t *testing.T) {
	raw := "Relevant sections:\n\nSection 101: Attempt to cause grievous hurt.\nSection 103: Voluntarily causing hurt.\n"
	lines := Parse(raw)

	require.Len(t, lines, 5)
	assert.Equal(t, KindText, lines[0].Kind)
	assert.Equal(t, KindText, lines[1].Kind)
	assert.Equal(t, "", lines[1].Text)
	assert.Equal(t, "Section 101", lines[2].Label)
	assert.Equal(t, "Section 103", lines[3].Label)
	assert.Equal(t, KindText, lines[4].Kind)
	assert.Equal(t, "", lines[4].Text)
}

func TestJoinRoundTrip(t *testing.T) {
	replies := []string{
		"",
		"\n",
		"\n\n\n",
		"Section 101: Attempt to cause grievous hurt.",
		"Section 101: a\nSection 101 malformed\nSectionXYZ: a: b\n",
		"intro\r\nSection 1: x\r\n\r\noutro",
		"  leading and trailing spaces  \n\tSection 2: tab",
		"unicode ✓ ज़मानत\nSection 318: Cheating — ठगी",
	}

	for _, raw := range replies {
		assert.Equal(t, raw, Join(Parse(raw)), "round trip of %q", raw)
	}
}

func TestSections(t *testing.T) {
	lines := Parse("intro\nSection 1: a\nnoise\nSection 2: b")
	got := Sections(lines)

	require.Len(t, got, 2)
	assert.Equal(t, "Section 1", got[0].Label)
	assert.Equal(t, "Section 2", got[1].Label)
	assert.Empty(t, Sections(Parse("no sections here")))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "section", KindSection.String())
	assert.Equal(t, "text", KindText.String())
}

func TestLineJSON(t *testing.T) {
	data, err := json.Marshal(Parse("Section 303: Theft\nnote"))
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"kind":"section","text":"Section 303: Theft","label":"Section 303","description":"Theft"},
		{"kind":"text","text":"note"}
	]`, string(data))

	var back []Line
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, Parse("Section 303: Theft\nnote"), back)

	var k Kind
	assert.Error(t, k.UnmarshalText([]byte("heading")))
}
