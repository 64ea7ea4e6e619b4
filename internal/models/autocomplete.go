package models

import (
	"regexp"
	"strings"
)

type CompletionKind int

const (
	PathCompletion CompletionKind = iota
	CommandCompletion
)

// AutocompleteSkip is the jump used by left/right in the autocomplete menu.
const AutocompleteSkip = 5

// TerminalCommands is the static vocabulary for command-name completion.
var TerminalCommands = []string{
	"cd", "ls", "pwd", "tree",
	"cat", "touch", "mkdir", "rm", "cp", "mv", "chmod", "chown",
	"find", "grep", "locate",
	"nano", "vim", "vi",
	"ps", "top", "kill", "df", "du", "free", "uname",
	"git status", "git add", "git commit", "git push", "git pull", "git log", "git diff", "git branch", "git checkout", "git merge",
	"npm install", "npm run", "npm start", "npm test", "npm build", "node",
	"go build", "go run", "go test", "go vet", "go mod tidy",
	"cargo build", "cargo run", "cargo test", "cargo check", "cargo clean",
	"echo", "clear", "history", "man", "which", "whereis",
}

var pathCommandPattern = regexp.MustCompile(`^(cd|pushd|ls|tree)\s+(.*)$`)

// ParsePathCommand splits input such as "cd src/in" into the command and the
// partial path. ok is false when the input is not a path-taking command.
func ParsePathCommand(input string) (command, partial string, ok bool) {
	matches := pathCommandPattern.FindStringSubmatch(input)
	if matches == nil {
		return "", "", false
	}
	return matches[1], matches[2], true
}

// MatchCommands returns the vocabulary entries starting with input,
// compared case-insensitively, in vocabulary order.
func MatchCommands(vocabulary []string, input string) []string {
	prefix := strings.ToLower(input)
	var matches []string
	for _, cmd := range vocabulary {
		if strings.HasPrefix(cmd, prefix) {
			matches = append(matches, cmd)
		}
	}
	return matches
}

// ResolveCompletion replaces the last partial segment of basePath with
// name. A base ending in "/" gets name appended.
func ResolveCompletion(basePath, name string) string {
	if basePath == "" || strings.HasSuffix(basePath, "/") {
		return basePath + name
	}
	i := strings.LastIndex(basePath, "/")
	return basePath[:i+1] + name
}

// Autocomplete is the state of the autocomplete menu.
type Autocomplete struct {
	Kind      CompletionKind
	Command   string // path-taking command the menu completes for
	BasePath  string // prefix last queried
	items     []string
	selection Selection
}

// Open replaces the items and selects the first one.
func (a *Autocomplete) Open(kind CompletionKind, command, basePath string, items []string) {
	a.Kind = kind
	a.Command = command
	a.BasePath = basePath
	a.items = append([]string(nil), items...)
	a.selection.Reset(len(a.items))
}

func (a *Autocomplete) Clear() {
	a.Kind = PathCompletion
	a.Command = ""
	a.BasePath = ""
	a.items = nil
	a.selection.Reset(0)
}

func (a *Autocomplete) Move(delta int) {
	a.selection.Move(delta)
}

func (a *Autocomplete) Select(i int) bool {
	return a.selection.Set(i)
}

func (a *Autocomplete) Selected() (string, bool) {
	i := a.selection.Index()
	if i < 0 {
		return "", false
	}
	return a.items[i], true
}

func (a *Autocomplete) Items() []string {
	return a.items
}

func (a *Autocomplete) SelectionIndex() int {
	return a.selection.Index()
}
