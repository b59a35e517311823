// Package prompt builds the LLM prompt for ticket analysis and parses the
// structured response.
package prompt

import (
	"fmt"
	"strings"

	"github.com/jalvord/tickettriage/internal/ticket"
)

// BuildOpts configures prompt construction.
type BuildOpts struct {
	Ticket  *ticket.Ticket
	Product string
}

// Build assembles the ticket-analysis prompt. The model is asked for a
// one-line engineering summary and a structured description in the exact
// SUMMARY:/DESCRIPTION: format that ParseResponse expects, so the same
// prompt works over the API or pasted into a chat session.
func Build(opts BuildOpts) string {
	t := opts.Ticket
	customer := t.Customer
	if customer == "" {
		customer = "Unknown"
	}
	product := opts.Product
	if product == "" {
		product = "Unknown"
	}

	var b strings.Builder

	b.WriteString("I need you to analyze this support ticket and create an engineering bug report.\n\n")
	fmt.Fprintf(&b, "**Ticket #%s**\n", t.ID)
	fmt.Fprintf(&b, "**Customer:** %s\n", customer)
	fmt.Fprintf(&b, "**Product:** %s\n\n", product)
	fmt.Fprintf(&b, "**Full Ticket Conversation:**\n```\n%s\n```\n\n---\n\n", t.Description)

	b.WriteString(`**Your Task:**

Analyze this conversation and generate:

1. **Summary (one-line title)**
   - Concise, technical summary of the ACTUAL issue, not the original ticket title
   - Format: "[Customer] - [Component/ROOT CAUSE] [specific technical issue] causing [PRIMARY IMPACT]"
   - Focus on ROOT CAUSE and PRIMARY IMPACT, not secondary symptoms
   - If the ticket evolved, use the evolved issue

2. **Structured Description**

Use this format with markdown headers (##):

## Customer Context
| Field | Value |
|-------|-------|
| Customer | [Company name] |
| Account # | [Account ID if available] |
| Product | [Product edition] |
| Region(s) | [Regions affected] |

## Problem Statement
[2-3 sentence overview of the issue and its impact]

## Issue Observed
[Specific error messages, symptoms, or anomalies - use code blocks for logs]

## Impact
[Bullet points: service state, data risk, customer operations]

## Preliminary Analysis
[If known: technical explanation distinguishing ROOT CAUSE, PRIMARY EFFECT, SECONDARY CONSEQUENCES]
[If unknown: state that the root cause requires engineering investigation]

## Reproduction Steps
[Numbered steps with exact commands and outputs, if provided; otherwise skip this section]

## Technical Details
[Versions, cluster/node IDs, error codes, config settings - use code blocks]

## Ask From R&D
[Numbered investigation questions, then potential workarounds and improvements as bullet lists]

---

**Important Guidelines:**
- Extract the NARRATIVE from the conversation (Problem, then Investigation, then Solution)
- Use technical precision: exact error messages, version numbers, component names
- Use code blocks for logs, commands, output
- Be concise; focus on facts for engineering, not the support conversation flow
- If the ticket is still under investigation, say so explicitly
- Use professional, measured language (prefer "affects" over "blocks", "may" over "will")
- Do NOT include internal metadata (chat threads, account-manager names, similar ticket references)

**Output Format:**

Please provide your response in this exact format:

`)
	b.WriteString("```\nSUMMARY: [one-line summary here]\n\nDESCRIPTION:\n[structured description here]\n```\n")

	return b.String()
}
