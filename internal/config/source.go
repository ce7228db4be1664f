package config

import (
	"os"
	"strings"

	"WellCommand/pkg/gemini"
	"WellCommand/pkg/nlp"
	"WellCommand/pkg/openai"

	"github.com/sirupsen/logrus"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// newCompleter picks the remote backend named by ASSISTANT_PROVIDER. A nil
// completer leaves the remote interpreter not configured, which is not an
// error: every query is then answered locally.
func newCompleter(log *logrus.Logger) (nlp.Completer, func()) {
	provider := strings.ToLower(strings.TrimSpace(os.Getenv("ASSISTANT_PROVIDER")))

	switch provider {
	case ProviderGemini:
		client, err := gemini.NewGeminiClient()
		if err != nil {
			log.WithField("provider", provider).Warnf("Remote assistant disabled: %v", err)
			return nil, func() {}
		}
		return client, client.Close
	case ProviderOpenAI:
		client, err := openai.NewChatGPT()
		if err != nil {
			log.WithField("provider", provider).Warnf("Remote assistant disabled: %v", err)
			return nil, func() {}
		}
		return client, func() {}
	case "", "none", "local":
		log.Info("No remote assistant provider configured, interpreting locally")
		return nil, func() {}
	default:
		log.WithField("provider", provider).Warn("Unknown assistant provider, interpreting locally")
		return nil, func() {}
	}
}
