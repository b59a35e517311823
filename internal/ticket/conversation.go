package ticket

import (
	"regexp"
	"strings"
)

// Zendesk PDF exports interleave the conversation with portal chrome, bot
// annotations, and ticket-list sidebars. These patterns mark lines to drop.
// "SLA Package:" and account-manager lines are deliberately kept; the
// classifier needs them for customer-tier detection.
var zendeskNoisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^Problem Summary \*SF`),
	regexp.MustCompile(`^Focus Score`),
	regexp.MustCompile(`^Ticket Location`),
	regexp.MustCompile(`^Ticket Clusters`),
	regexp.MustCompile(`Support Bot Agent`),
	regexp.MustCompile(`^Analyzer Bot`),
	regexp.MustCompile(`^File uploaded to SFTP`),
	regexp.MustCompile(`^Package.*successfully analyzed`),
	regexp.MustCompile(`^Parsed Logs`),
	regexp.MustCompile(`^Health check`),
	regexp.MustCompile(`^Total Open Tickets:`),
	regexp.MustCompile(`^Organization Notes:`),
	regexp.MustCompile(`^\*\*\*`),
	regexp.MustCompile(`^EOF$`),
	regexp.MustCompile(`^Ticket ID$`),
	regexp.MustCompile(`^Status$`),
	regexp.MustCompile(`^Assignee$`),
	regexp.MustCompile(`^Subject$`),
	regexp.MustCompile(`^\d+/\d+$`), // page numbers
	regexp.MustCompile(`\.zendesk\.com`),
	regexp.MustCompile(`^https?://files\.`),
	regexp.MustCompile(`^@\w+$`), // bare mentions
	regexp.MustCompile(`^\d{6}$`),
	regexp.MustCompile(`^Support Software by Zendesk`),
}

var (
	conversationStart = regexp.MustCompile(`(?i)(Problem Summary|[\w\s]+ \w+ \d+, \d{4} at \d+:\d+)`)
	commentHeader     = regexp.MustCompile(`[\w\s]+ \w+ \d+, \d{4} at \d+:\d+`)
	ticketListEntry   = regexp.MustCompile(`^#\d{5,7}$`)
)

// cleanZendeskConversation extracts the ticket conversation from export
// text, keeping human comments and substantive lines while dropping the
// noise patterns above. Comment headers are bolded so the result reads as
// a threaded transcript.
func cleanZendeskConversation(raw string) string {
	loc := conversationStart.FindStringIndex(raw)
	if loc == nil {
		return head(raw, 1000)
	}

	lines := strings.Split(raw[loc[0]:], "\n")
	var cleaned []string
	skip := 0
	prevBlank := false

	for _, line := range lines {
		s := strings.TrimSpace(line)

		if skip > 0 {
			skip--
			continue
		}

		if matchesNoise(s) {
			if strings.Contains(s, "Bot") {
				skip = 10 // bot annotations span several lines
			}
			continue
		}

		// Related-ticket sidebar entries: #NNNNNN then status lines.
		if ticketListEntry.MatchString(s) {
			skip = 3
			continue
		}

		if commentHeader.MatchString(s) {
			if len(cleaned) > 0 && cleaned[len(cleaned)-1] != "" {
				cleaned = append(cleaned, "")
			}
			cleaned = append(cleaned, "**"+s+"**", "")
			prevBlank = true
			continue
		}

		if len(s) > 2 {
			cleaned = append(cleaned, s)
			prevBlank = false
		} else if s == "" && !prevBlank && len(cleaned) > 0 {
			cleaned = append(cleaned, "")
			prevBlank = true
		}
	}

	for len(cleaned) > 0 && cleaned[len(cleaned)-1] == "" {
		cleaned = cleaned[:len(cleaned)-1]
	}
	if len(cleaned) == 0 {
		return head(raw, 1000)
	}
	return strings.Join(cleaned, "\n")
}

func matchesNoise(line string) bool {
	for _, p := range zendeskNoisePatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}
