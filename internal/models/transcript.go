package models

import "github.com/google/uuid"

// PendingStatus is shown on a terminal entry until the host answers.
const PendingStatus = "Выполняется..."

// TerminalEntry is created as a placeholder and resolved in place once the
// host responds.
type TerminalEntry struct {
	ID         string
	Command    string
	Stdout     string
	Stderr     string
	ExitCode   *int
	CurrentDir string
	Status     string
}

func (e TerminalEntry) Pending() bool {
	return e.Status != ""
}

// TerminalLog is the ordered terminal transcript.
type TerminalLog struct {
	entries  []TerminalEntry
	revision int
}

// Begin appends a pending entry for command and returns its id.
func (t *TerminalLog) Begin(command string) string {
	id := uuid.NewString()
	t.entries = append(t.entries, TerminalEntry{ID: id, Command: command, Status: PendingStatus})
	t.revision++
	return id
}

// Resolve fills in the entry created by Begin. It returns false when the
// entry is gone, e.g. after clear.
func (t *TerminalLog) Resolve(id string, result CommandResult) bool {
	for i := range t.entries {
		if t.entries[i].ID != id {
			continue
		}
		e := &t.entries[i]
		e.Stdout = result.Stdout
		e.Stderr = result.Stderr
		e.ExitCode = result.ExitCode
		e.CurrentDir = result.CurrentDir
		e.Status = ""
		t.revision++
		return true
	}
	return false
}

// Fail resolves the entry with an error message as its stderr.
func (t *TerminalLog) Fail(id string, err error) bool {
	return t.Resolve(id, CommandResult{Stderr: err.Error()})
}

func (t *TerminalLog) Clear() {
	t.entries = nil
	t.revision++
}

func (t *TerminalLog) Entries() []TerminalEntry {
	return t.entries
}

func (t *TerminalLog) Revision() int {
	return t.revision
}
