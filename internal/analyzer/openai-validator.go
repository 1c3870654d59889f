package analyzer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	openai "github.com/sashabaranov/go-openai"

	"github.com/BerylCAtieno/document-validator-api/internal/models"
	"github.com/BerylCAtieno/document-validator-api/internal/utils"
)

const DefaultModel = "gpt-4o"

// ErrInputTooLarge is returned before any remote call when the document
// text and rules together exceed the configured bound.
var ErrInputTooLarge = errors.New("document text and rules exceed the prompt size limit")

// TransportError wraps every failure of the remote call: network, auth,
// rate limiting and malformed or empty responses.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "Error with OpenAI API: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Validator checks extracted text against free-text rules.
type Validator interface {
	Evaluate(ctx context.Context, text, rules string) (*models.ValidationReport, error)
}

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	// MaxPromptChars bounds len(text)+len(rules) in runes; 0 disables it.
	MaxPromptChars int
	// Timeout applies per call; 0 leaves the request context in charge.
	Timeout time.Duration
}

type openAIValidator struct {
	api            *openai.Client
	model          string
	maxPromptChars int
	timeout        time.Duration
	logger         *utils.Logger
}

func NewOpenAIValidator(cfg Config, logger *utils.Logger) (Validator, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("analyzer: API key is required")
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	if cfg.MaxPromptChars < 0 {
		return nil, fmt.Errorf("analyzer: max prompt chars must not be negative")
	}

	openaiCfg := openai.DefaultConfig(apiKey)
	if baseURL := strings.TrimSpace(cfg.BaseURL); baseURL != "" {
		openaiCfg.BaseURL = baseURL
	}

	return &openAIValidator{
		api:            openai.NewClientWithConfig(openaiCfg),
		model:          model,
		maxPromptChars: cfg.MaxPromptChars,
		timeout:        cfg.Timeout,
		logger:         logger,
	}, nil
}

func (v *openAIValidator) Evaluate(ctx context.Context, text, rules string) (*models.ValidationReport, error) {
	size := utf8.RuneCountInString(text) + utf8.RuneCountInString(rules)
	if v.maxPromptChars > 0 && size > v.maxPromptChars {
		return nil, fmt.Errorf("%w: %d characters, limit %d", ErrInputTooLarge, size, v.maxPromptChars)
	}

	if v.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, v.timeout)
		defer cancel()
	}

	req := openai.ChatCompletionRequest{
		Model: v.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(text, rules)},
		},
	}

	v.logger.Debug("Sending validation request", "model", v.model, "prompt_chars", size)

	resp, err := v.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	if len(resp.Choices) == 0 {
		return nil, &TransportError{Err: errors.New("no choices in response")}
	}

	return &models.ValidationReport{
		Text:  strings.TrimSpace(resp.Choices[0].Message.Content),
		Model: v.model,
	}, nil
}
