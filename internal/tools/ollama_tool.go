package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/Rorical/RoriShell/internal/models"
)

const (
	agentPrompt   = "Ты выступаешь в роли технического помощника, который предлагает шаги и команды для решения задач разработки."
	idePrompt     = "Ты помогаешь разрабатывать и улучшать код, предлагая изменения и объяснения."
	defaultPrompt = "Ты дружелюбный помощник, отвечающий кратко и по существу."

	// Ollama ignores the key but the client requires one.
	ollamaAPIKey = "ollama"
)

var ErrEmptyReply = errors.New("Ollama вернула пустой ответ")

// SystemPrompt returns the instruction sent ahead of a prompt in mode.
func SystemPrompt(mode models.Mode) string {
	switch mode {
	case models.Agent:
		return agentPrompt
	case models.Ide:
		return idePrompt
	default:
		return defaultPrompt
	}
}

// OllamaTool sends one prompt to Ollama's OpenAI-compatible endpoint. The
// server address comes from the saved settings on every call.
type OllamaTool struct {
	settings SettingsStore
}

func NewOllamaTool(settings SettingsStore) *OllamaTool {
	return &OllamaTool{settings: settings}
}

func (o *OllamaTool) Name() string {
	return models.CmdQueryOllama
}

func (o *OllamaTool) Description() string {
	return "Ask the local Ollama model a question"
}

func (o *OllamaTool) client() *openai.Client {
	baseURL := strings.TrimRight(o.settings.Get().Ollama.BaseURL, "/")
	clientConfig := openai.DefaultConfig(ollamaAPIKey)
	clientConfig.BaseURL = baseURL + "/v1"
	return openai.NewClientWithConfig(clientConfig)
}

func (o *OllamaTool) Execute(ctx context.Context, payload json.RawMessage) (any, error) {
	var req models.ChatRequest
	if err := decode(payload, &req); err != nil {
		return nil, err
	}

	model := req.Model
	if strings.TrimSpace(model) == "" {
		model = o.settings.Get().Ollama.Model
	}

	resp, err := o.client().CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt(req.Mode)},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		Temperature: requestTemperature(req.Temperature),
	})
	if err != nil {
		return nil, ollamaError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, ErrEmptyReply
	}
	return models.ChatResponse{Message: resp.Choices[0].Message.Content}, nil
}

// requestTemperature keeps a zero temperature in the request body, where the
// client would otherwise omit it and the server would use its default.
func requestTemperature(t float32) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return t
}

func ollamaError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		return fmt.Errorf("Ollama вернула статус %d: %w", apiErr.HTTPStatusCode, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		return fmt.Errorf("Ollama вернула статус %d: %w", reqErr.HTTPStatusCode, err)
	}
	return fmt.Errorf("ошибка Ollama: %w", err)
}
