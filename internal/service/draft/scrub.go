package draft

import "strings"

// scrubDescription removes free-text references to the delegate bot from a
// record description before it becomes authoritative. Whole lines mentioning
// the bot's display name are dropped; the audit log keeps the provenance.
func scrubDescription(description, botName string) string {
	if botName == "" {
		return description
	}

	needle := strings.ToLower(botName)
	lines := strings.Split(description, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.Contains(strings.ToLower(line), needle) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
