package prompt

import (
	"fmt"
	"strings"
)

// Analysis is the parsed model response.
type Analysis struct {
	Summary     string
	Description string
}

// ResponseTemplate is written alongside a saved prompt so an offline
// session response can be pasted under the separator and ingested later.
func ResponseTemplate(ticketID string) string {
	return fmt.Sprintf(`# Analysis Response for Ticket #%s

Paste the model's response below this line:
---

SUMMARY:

DESCRIPTION:

`, ticketID)
}

// ParseResponse extracts the SUMMARY and DESCRIPTION sections from a model
// response or a filled-in response template. A template header ending in a
// --- separator is stripped, a code fence wrapping the whole response is
// removed, and stray LABELS:/IMPACT_SCORE: lines are dropped from the
// description.
func ParseResponse(content string) (Analysis, error) {
	// Only a --- that precedes the SUMMARY line is a template separator.
	// Later runs of dashes are table rules or horizontal rules inside the
	// description and must survive.
	if sum := strings.Index(content, "SUMMARY:"); sum >= 0 {
		if idx := strings.Index(content[:sum], "---"); idx >= 0 {
			content = strings.TrimSpace(content[idx+3:])
		}
	}
	content = stripOuterFence(content)

	var a Analysis
	var desc []string
	inDescription := false

	for _, line := range strings.Split(content, "\n") {
		switch {
		case strings.HasPrefix(line, "SUMMARY:"):
			a.Summary = strings.TrimSpace(strings.TrimPrefix(line, "SUMMARY:"))
			inDescription = false
		case strings.HasPrefix(line, "DESCRIPTION:"):
			inDescription = true
		case strings.HasPrefix(line, "LABELS:"), strings.HasPrefix(line, "IMPACT_SCORE:"):
			// metadata lines belong to the footer, never the description
		case inDescription:
			desc = append(desc, line)
		}
	}
	a.Description = strings.TrimSpace(strings.Join(desc, "\n"))

	if a.Summary == "" {
		return Analysis{}, fmt.Errorf("prompt.ParseResponse: no SUMMARY line found")
	}
	if a.Description == "" {
		return Analysis{}, fmt.Errorf("prompt.ParseResponse: no DESCRIPTION section found")
	}
	return a, nil
}

// stripOuterFence removes a code fence wrapping the entire response, which
// models emit when they copy the fenced output-format example verbatim.
// Fences inside the response (log excerpts, command output) are kept.
func stripOuterFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return content
	}
	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 || strings.TrimSpace(lines[len(lines)-1]) != "```" {
		return content
	}
	return strings.Join(lines[1:len(lines)-1], "\n")
}
