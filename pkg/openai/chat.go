package openai

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"os"

	"WellCommand/pkg/nlp"

	"github.com/sashabaranov/go-openai"
)

var ErrMissingAPIKey = errors.New("openai API key is required")

type IChatGPT interface {
	nlp.Completer
}

type chatGPTService struct {
	client *openai.Client
	model  string
}

func NewChatGPT() (IChatGPT, error) {
	return NewChatGPTWithConfig(
		os.Getenv("OPENAI_API_KEY"),
		os.Getenv("OPENAI_CHAT_MODEL"),
		os.Getenv("OPENAI_BASE_URL"),
	)
}

func NewChatGPTWithConfig(apiKey, model, baseURL string) (IChatGPT, error) {
	if nlp.IsPlaceholderCredential(apiKey) {
		return nil, ErrMissingAPIKey
	}

	if model == "" {
		model = openai.GPT4oMini
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return &chatGPTService{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}, nil
}

func (c *chatGPTService) Provider() string {
	return "openai"
}

func (c *chatGPTService) Complete(ctx context.Context, instruction string, query string) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: instruction,
		},
		{
			Role:    openai.ChatMessageRoleUser,
			Content: query,
		},
	}

	// a literal 0 temperature is dropped by omitempty and the server default applies
	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       c.model,
			Messages:    messages,
			Temperature: math.SmallestNonzeroFloat32,
			MaxTokens:   300,
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		},
	)
	if err != nil {
		return "", classifyError(err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no response from ChatGPT", nlp.ErrRemoteMalformed)
	}

	return resp.Choices[0].Message.Content, nil
}

func classifyError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == http.StatusTooManyRequests || apiErr.Type == "insufficient_quota" {
			return fmt.Errorf("%w: %v", nlp.ErrRemoteQuota, err)
		}
		return fmt.Errorf("%w: %v", nlp.ErrRemoteTransport, err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %v", nlp.ErrRemoteQuota, err)
	}

	return fmt.Errorf("%w: %v", nlp.ErrRemoteTransport, err)
}
