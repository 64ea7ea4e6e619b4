package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/Rorical/RoriShell/internal/models"
)

var cdPattern = regexp.MustCompile(`^cd(?:\s+(?P<target>.+))?$`)

const (
	defaultShell = "/bin/sh"
	cdTreeDepth  = 2
	waitDelay    = 2 * time.Second
)

// ShellTool runs terminal commands in the workspace directory. "cd" is
// handled by the host itself since a child shell cannot move its parent.
type ShellTool struct {
	workspace Workspace
	shell     string
}

// NewShellTool uses $SHELL, or /bin/sh when it is unset.
func NewShellTool(workspace Workspace) *ShellTool {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = defaultShell
	}
	return &ShellTool{workspace: workspace, shell: shell}
}

func (s *ShellTool) Name() string {
	return models.CmdRunTerminalCommand
}

func (s *ShellTool) Description() string {
	return "Execute a shell command in the current directory, or change directory"
}

func (s *ShellTool) Execute(ctx context.Context, payload json.RawMessage) (any, error) {
	var req models.CommandRequest
	if err := decode(payload, &req); err != nil {
		return nil, err
	}

	command := strings.TrimSpace(req.Command)
	if command == "" {
		return nil, ErrEmptyCommand
	}

	if m := cdPattern.FindStringSubmatch(command); m != nil {
		return s.changeDirectory(strings.TrimSpace(m[cdPattern.SubexpIndex("target")]))
	}
	return s.run(ctx, command)
}

func (s *ShellTool) changeDirectory(target string) (models.CommandResult, error) {
	path, err := resolvePath(s.workspace.CurrentDir(), target)
	if err != nil {
		return models.CommandResult{}, fmt.Errorf("не удалось определить путь: %w", err)
	}

	dir, err := canonicalize(path)
	if err != nil {
		return models.CommandResult{}, fmt.Errorf("не удалось перейти в %s: %w", target, err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return models.CommandResult{}, fmt.Errorf("не удалось перейти в %s: %w", target, err)
	}
	if !info.IsDir() {
		return models.CommandResult{}, ErrNotADirectory
	}

	s.workspace.ChangeDir(dir)

	tree, err := BuildFileTree(dir, cdTreeDepth)
	if err != nil {
		tree = []models.FileNode{}
	}
	return models.CommandResult{
		Stdout:     "Перешли в " + dir,
		CurrentDir: dir,
		FileTree:   tree,
	}, nil
}

func (s *ShellTool) run(ctx context.Context, command string) (models.CommandResult, error) {
	cwd := s.workspace.CurrentDir()

	cmd := exec.CommandContext(ctx, s.shell, "-c", command)
	cmd.Dir = cwd
	cmd.WaitDelay = waitDelay
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return models.CommandResult{}, fmt.Errorf("команда прервана: %w", ctxErr)
	}

	code := 0
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return models.CommandResult{}, fmt.Errorf("не удалось выполнить команду: %w", err)
		}
		code = exitErr.ExitCode()
	}

	return models.CommandResult{
		Stdout:     strings.TrimSpace(stdout.String()),
		Stderr:     strings.TrimSpace(stderr.String()),
		ExitCode:   &code,
		CurrentDir: cwd,
	}, nil
}
