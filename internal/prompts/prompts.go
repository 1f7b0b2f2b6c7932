package prompts

import (
	_ "embed"
	"strings"
)

//go:embed sections.md
var SectionBase string

// BuildSectionPrompt constructs the BNS section prediction prompt for a case.
// The case text is passed through verbatim.
func BuildSectionPrompt(caseText string) string {
	return strings.TrimSpace(SectionBase) + "\n\nCase: " + caseText
}
