package tools

// RegisterHostTools registers every bridge operation the UI relies on.
func RegisterHostTools(registry *Registry, workspace Workspace, settings SettingsStore) {
	registry.Register(NewShellTool(workspace))
	registry.Register(NewDirectoriesTool(workspace))
	registry.Register(NewDirectoryTreeTool(workspace))
	registry.Register(NewFileReadTool(workspace))
	registry.Register(NewGetSettingsTool(settings))
	registry.Register(NewUpdateSettingsTool(settings))
	registry.Register(NewOllamaTool(settings))
}
