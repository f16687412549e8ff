package cardmark

import (
	"fmt"
	"strings"
)

// FormatCaptures formats journal entries for terminal display, one block
// per capture separated by blank lines.
func FormatCaptures(captures []*Capture) string {
	if len(captures) == 0 {
		return ""
	}

	parts := make([]string, 0, len(captures))
	for _, c := range captures {
		var b strings.Builder
		title := c.Title
		if title == "" {
			title = c.Src
		}
		fmt.Fprintf(&b, "%s  %s  %s\n", c.CapturedAt.Format("2006-01-02 15:04"), formatOutcome(c), title)
		fmt.Fprintf(&b, "    %s", c.Src)
		if c.Error != "" {
			fmt.Fprintf(&b, "\n    error: %s", c.Error)
		}
		parts = append(parts, b.String())
	}

	return strings.Join(parts, "\n\n")
}

func formatOutcome(c *Capture) string {
	out := c.Outcome
	if c.Outcome == OutcomeRejected {
		out = fmt.Sprintf("%s(%d)", c.Outcome, c.Status)
	}
	if c.Degraded {
		out += "*"
	}
	return out
}
