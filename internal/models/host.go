package models

// Host bridge operations.
const (
	CmdGetSettings        = "get_settings"
	CmdUpdateSettings     = "update_settings"
	CmdRunTerminalCommand = "run_terminal_command"
	CmdQueryOllama        = "query_ollama"
	CmdReadFile           = "read_file"
	CmdGetDirectories     = "get_directories"
	CmdGetDirectoryTree   = "get_directory_tree"
)

type OllamaSettings struct {
	Model       string  `json:"model"`
	Temperature float32 `json:"temperature"`
	BaseURL     string  `json:"base_url,omitempty"`
}

// Settings is the persisted user configuration owned by the host.
type Settings struct {
	ThemeID    string         `json:"theme_id"`
	FontFamily string         `json:"font_family"`
	FontSize   int            `json:"font_size"`
	Mode       Mode           `json:"mode"`
	Ollama     OllamaSettings `json:"ollama"`
}

type OllamaSettingsPatch struct {
	Model       *string  `json:"model,omitempty"`
	Temperature *float32 `json:"temperature,omitempty"`
	BaseURL     *string  `json:"base_url,omitempty"`
}

// SettingsPatch is a partial update; nil fields are left unchanged.
type SettingsPatch struct {
	ThemeID    *string              `json:"theme_id,omitempty"`
	FontFamily *string              `json:"font_family,omitempty"`
	FontSize   *int                 `json:"font_size,omitempty"`
	Mode       *Mode                `json:"mode,omitempty"`
	Ollama     *OllamaSettingsPatch `json:"ollama,omitempty"`
}

// FileNode is a file tree entry as reported by the host. Children is nil
// when the host did not list the directory, and empty when it did and
// found nothing.
type FileNode struct {
	Name     string     `json:"name"`
	Path     string     `json:"path"`
	IsDir    bool       `json:"is_dir"`
	Children []FileNode `json:"children"`
}

type CommandRequest struct {
	Command string `json:"command"`
}

// CommandResult is the outcome of a terminal command. FileTree is set only
// when the command changed directory.
type CommandResult struct {
	Stdout     string     `json:"stdout"`
	Stderr     string     `json:"stderr"`
	ExitCode   *int       `json:"exit_code,omitempty"`
	CurrentDir string     `json:"current_dir,omitempty"`
	FileTree   []FileNode `json:"file_tree"`
}

type ChatRequest struct {
	Prompt      string  `json:"prompt"`
	Mode        Mode    `json:"mode"`
	Model       string  `json:"model"`
	Temperature float32 `json:"temperature"`
}

type ChatResponse struct {
	Message string `json:"message"`
}

type PathRequest struct {
	Path string `json:"path"`
}

type PrefixRequest struct {
	Prefix string `json:"prefix"`
}
