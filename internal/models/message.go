package models

type ChatRole int

const (
	User ChatRole = iota
	Assistant
)

// ChatEntry is one chat bubble. Entries are never modified once appended.
type ChatEntry struct {
	Role ChatRole
	Text string
}

// ChatLog is the append-only chat transcript.
type ChatLog struct {
	entries  []ChatEntry
	revision int
}

func (c *ChatLog) Append(role ChatRole, text string) {
	c.entries = append(c.entries, ChatEntry{Role: role, Text: text})
	c.revision++
}

func (c *ChatLog) Entries() []ChatEntry {
	return c.entries
}

// Revision changes whenever the log does; views use it to auto-scroll.
func (c *ChatLog) Revision() int {
	return c.revision
}
