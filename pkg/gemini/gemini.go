package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"WellCommand/pkg/nlp"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

var ErrMissingAPIKey = errors.New("gemini API key is required")

type IGemini interface {
	nlp.Completer
	Close()
}

type geminiClient struct {
	apiKey    string
	modelName string
	client    *genai.Client
}

func NewGeminiClient() (IGemini, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")

	modelName := os.Getenv("GEMINI_MODEL_NAME")
	if nlp.IsPlaceholderCredential(apiKey) {
		return nil, ErrMissingAPIKey
	}

	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	return &geminiClient{
		apiKey:    apiKey,
		modelName: modelName,
		client:    client,
	}, nil
}

func (g *geminiClient) Provider() string {
	return "gemini"
}

func (g *geminiClient) Complete(ctx context.Context, instruction string, query string) (string, error) {
	model := g.client.GenerativeModel(g.modelName)
	model.SetTemperature(0)
	model.ResponseMIMEType = "application/json"
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(instruction)},
	}

	res, err := model.GenerateContent(ctx, genai.Text(query))
	if err != nil {
		return "", classifyError(err)
	}

	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil || len(res.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no candidates in Gemini response", nlp.ErrRemoteMalformed)
	}

	var sb strings.Builder
	for _, part := range res.Candidates[0].Content.Parts {
		text, ok := part.(genai.Text)
		if !ok {
			return "", fmt.Errorf("%w: unexpected part %T from Gemini API", nlp.ErrRemoteMalformed, part)
		}
		sb.WriteString(string(text))
	}

	return sb.String(), nil
}

func (g *geminiClient) Close() {
	if g.client != nil {
		g.client.Close()
	}
}

func classifyError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %v", nlp.ErrRemoteQuota, err)
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "resource_exhausted") || strings.Contains(msg, "quota") || strings.Contains(msg, "rate limit") {
		return fmt.Errorf("%w: %v", nlp.ErrRemoteQuota, err)
	}

	return fmt.Errorf("%w: %v", nlp.ErrRemoteTransport, err)
}
