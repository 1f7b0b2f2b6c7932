package llm

import (
	"fmt"
	"strings"

	"github.com/sant0-9/firpredict/internal/config"
)

type builder func(cfg *config.Config) (Provider, error)

// builders maps a config provider ID to its client constructor
var builders = map[string]builder{
	"gemini": func(c *config.Config) (Provider, error) {
		return NewGeminiProvider(c.APIKey, c.Model)
	},
	"openai": func(c *config.Config) (Provider, error) {
		return NewOpenAIProvider(c.APIKey, c.Model), nil
	},
	"anthropic": func(c *config.Config) (Provider, error) {
		return NewAnthropicProvider(c.APIKey, c.Model), nil
	},
	"groq": func(c *config.Config) (Provider, error) {
		return NewGroqProvider(c.APIKey, c.Model), nil
	},
	"openrouter": func(c *config.Config) (Provider, error) {
		return NewOpenRouterProvider(c.APIKey, c.Model), nil
	},
	"ollama": func(c *config.Config) (Provider, error) {
		return NewOllamaProvider(c.BaseURL, c.Model), nil
	},
	"custom": func(c *config.Config) (Provider, error) {
		if c.BaseURL == "" {
			return nil, fmt.Errorf("custom provider requires base_url")
		}
		return NewCustomProvider(c.BaseURL, c.APIKey, c.Model), nil
	},
}

// NewProvider creates the client named by cfg.Provider. Providers that
// need a key fail early, naming the environment variables that supply one.
func NewProvider(cfg *config.Config) (Provider, error) {
	build, ok := builders[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}

	if info := config.GetProvider(cfg.Provider); info != nil && info.NeedsAPIKey && cfg.APIKey == "" {
		if len(info.EnvKeys) == 0 {
			return nil, fmt.Errorf("%s requires an API key", info.ID)
		}
		return nil, fmt.Errorf("%s requires an API key (set %s)", info.ID, strings.Join(info.EnvKeys, " or "))
	}
	return build(cfg)
}
