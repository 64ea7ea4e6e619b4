package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/Rorical/RoriShell/internal/models"
)

const maxFileSize = 2 << 20

// FileReadTool returns the text of a file below the current directory.
type FileReadTool struct {
	workspace Workspace
}

func NewFileReadTool(workspace Workspace) *FileReadTool {
	return &FileReadTool{workspace: workspace}
}

func (f *FileReadTool) Name() string {
	return models.CmdReadFile
}

func (f *FileReadTool) Description() string {
	return "Read a UTF-8 text file inside the current directory"
}

func (f *FileReadTool) Execute(ctx context.Context, payload json.RawMessage) (any, error) {
	var req models.PathRequest
	if err := decode(payload, &req); err != nil {
		return nil, err
	}

	cwd, err := canonicalize(f.workspace.CurrentDir())
	if err != nil {
		return nil, fmt.Errorf("не удалось определить текущий каталог: %w", err)
	}

	path := req.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}
	path, err = canonicalize(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть файл: %w", err)
	}
	if !within(path, cwd) {
		return nil, ErrAccessDenied
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть файл: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть файл: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("не удалось открыть файл: %s является каталогом", req.Path)
	}
	if info.Size() > maxFileSize {
		return nil, ErrFileTooLarge
	}

	// The size can change between Stat and the read.
	content, err := io.ReadAll(io.LimitReader(file, maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать файл: %w", err)
	}
	if len(content) > maxFileSize {
		return nil, ErrFileTooLarge
	}
	if !utf8.Valid(content) {
		return nil, ErrBinaryFile
	}
	return string(content), nil
}
