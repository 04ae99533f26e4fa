package llm

import (
	"context"
	"errors"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/autocareer/autocareer/internal/ai"
)

// DefaultTimeout bounds a single completion call; expiry is treated as a
// transport failure and routed through the fallback policy
const DefaultTimeout = 30 * time.Second

// CompletionRequest describes a single chat completion
type CompletionRequest struct {
	System      string
	Prompt      string
	Model       string
	Temperature float64
	MaxTokens   int64
	Timeout     time.Duration
}

// Completer produces text from a prompt. Implementations never return raw
// transport errors; they classify them into Outcome statuses.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) ai.Outcome[string]
}

// Client wraps the OpenAI chat completions API
type Client struct {
	client *openai.Client
}

// NewClient creates a completion client. An empty API key yields a client
// whose calls always resolve to Fallback, keeping degraded mode uniform.
func NewClient(apiKey string) *Client {
	if apiKey == "" {
		return &Client{}
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &Client{client: &client}
}

// Complete runs a chat completion with a bounded timeout
func (c *Client) Complete(ctx context.Context, req CompletionRequest) ai.Outcome[string] {
	if c.client == nil {
		return ai.Fallback[string]("no reasoning service credential configured")
	}
	if req.Prompt == "" {
		return ai.Fallback[string]("empty prompt")
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	model := req.Model
	if model == "" {
		model = openai.ChatModelGPT4oMini
	}

	messages := []openai.ChatCompletionMessageParamUnion{}
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	messages = append(messages, openai.UserMessage(req.Prompt))

	params := openai.ChatCompletionNewParams{
		Messages:    messages,
		Model:       model,
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(req.MaxTokens)
	}

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		// Rate limits, auth failures, and timeouts all degrade the same way
		if errors.Is(err, context.Canceled) {
			return ai.Fatal[string](err)
		}
		return ai.Fallback[string]("reasoning service unavailable: " + err.Error())
	}

	if len(completion.Choices) == 0 {
		return ai.Fallback[string]("no response from reasoning service")
	}

	return ai.Ok(completion.Choices[0].Message.Content)
}
