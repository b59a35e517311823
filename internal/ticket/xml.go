package ticket

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// xmlFields maps Jira XML element names onto ticket fields. The first
// occurrence of each element wins, matching the find-anywhere semantics of
// Jira's RSS-style export where fields nest under channel/item.
var xmlFields = map[string]bool{
	"key": true, "summary": true, "description": true,
	"priority": true, "status": true, "assignee": true, "labels": true,
}

// parseXML reads a Jira XML export by walking the token stream and
// capturing the first occurrence of each known element.
func parseXML(data []byte) (*Ticket, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = false

	found := map[string]string{}
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ticket.parseXML: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		name := strings.ToLower(start.Name.Local)
		if !xmlFields[name] || found[name] != "" {
			continue
		}

		var text string
		if err := dec.DecodeElement(&text, &start); err != nil {
			return nil, fmt.Errorf("ticket.parseXML: element %s: %w", name, err)
		}
		found[name] = strings.TrimSpace(text)
	}

	if found["key"] == "" && found["summary"] == "" {
		return nil, fmt.Errorf("ticket.parseXML: no ticket fields found")
	}

	t := &Ticket{
		Source:      SourceJira,
		ID:          found["key"],
		Summary:     found["summary"],
		Description: found["description"],
		Priority:    found["priority"],
		Status:      found["status"],
		Assignee:    found["assignee"],
	}
	if found["labels"] != "" {
		for _, l := range strings.Split(found["labels"], ",") {
			if l = strings.TrimSpace(l); l != "" {
				t.Labels = append(t.Labels, l)
			}
		}
	}
	t.Raw = t.Summary + "\n" + t.Description
	return t, nil
}
