package tools

import (
	"context"
	"encoding/json"

	"github.com/Rorical/RoriShell/internal/models"
)

type GetSettingsTool struct {
	store SettingsStore
}

func NewGetSettingsTool(store SettingsStore) *GetSettingsTool {
	return &GetSettingsTool{store: store}
}

func (g *GetSettingsTool) Name() string {
	return models.CmdGetSettings
}

func (g *GetSettingsTool) Description() string {
	return "Return the saved user settings"
}

func (g *GetSettingsTool) Execute(ctx context.Context, payload json.RawMessage) (any, error) {
	return g.store.Get(), nil
}

// UpdateSettingsTool merges a partial update into the settings and saves them.
type UpdateSettingsTool struct {
	store SettingsStore
}

func NewUpdateSettingsTool(store SettingsStore) *UpdateSettingsTool {
	return &UpdateSettingsTool{store: store}
}

func (u *UpdateSettingsTool) Name() string {
	return models.CmdUpdateSettings
}

func (u *UpdateSettingsTool) Description() string {
	return "Apply a partial settings update and persist it"
}

func (u *UpdateSettingsTool) Execute(ctx context.Context, payload json.RawMessage) (any, error) {
	var patch models.SettingsPatch
	if err := decode(payload, &patch); err != nil {
		return nil, err
	}
	return u.store.Update(patch)
}
