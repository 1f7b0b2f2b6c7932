package config

type ProviderInfo struct {
	ID           string
	Name         string
	Description  string
	NeedsAPIKey  bool
	SignupURL    string
	EnvKeys      []string
	Models       []string
	DefaultModel string
}

var Providers = []ProviderInfo{
	{
		ID:           "gemini",
		Name:         "Gemini",
		Description:  "Google, fast and free tier",
		NeedsAPIKey:  true,
		SignupURL:    "https://aistudio.google.com/app/apikey",
		EnvKeys:      []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"},
		Models:       []string{"gemini-2.0-flash", "gemini-2.5-flash", "gemini-2.5-pro"},
		DefaultModel: "gemini-2.0-flash",
	},
	{
		ID:           "openai",
		Name:         "OpenAI",
		Description:  "GPT-4o, most capable",
		NeedsAPIKey:  true,
		SignupURL:    "https://platform.openai.com/api-keys",
		EnvKeys:      []string{"OPENAI_API_KEY"},
		Models:       []string{"gpt-4o", "gpt-4o-mini", "gpt-4-turbo"},
		DefaultModel: "gpt-4o-mini",
	},
	{
		ID:           "anthropic",
		Name:         "Anthropic",
		Description:  "Claude, careful reasoning",
		NeedsAPIKey:  true,
		SignupURL:    "https://console.anthropic.com/",
		EnvKeys:      []string{"ANTHROPIC_API_KEY"},
		Models:       []string{"claude-sonnet-4-20250514", "claude-3-5-haiku-latest"},
		DefaultModel: "claude-sonnet-4-20250514",
	},
	{
		ID:           "groq",
		Name:         "Groq",
		Description:  "Very fast, cheap",
		NeedsAPIKey:  true,
		SignupURL:    "https://console.groq.com/keys",
		EnvKeys:      []string{"GROQ_API_KEY"},
		Models:       []string{"llama-3.3-70b-versatile", "llama-3.1-8b-instant"},
		DefaultModel: "llama-3.3-70b-versatile",
	},
	{
		ID:           "openrouter",
		Name:         "OpenRouter",
		Description:  "Access all models",
		NeedsAPIKey:  true,
		SignupURL:    "https://openrouter.ai/keys",
		EnvKeys:      []string{"OPENROUTER_API_KEY"},
		Models:       []string{"google/gemini-2.0-flash-001", "anthropic/claude-3.5-sonnet", "openai/gpt-4o"},
		DefaultModel: "google/gemini-2.0-flash-001",
	},
	{
		ID:           "ollama",
		Name:         "Ollama",
		Description:  "Local, free, private",
		NeedsAPIKey:  false,
		Models:       []string{"llama3.1:8b", "qwen2.5:7b", "mistral:7b"},
		DefaultModel: "llama3.1:8b",
	},
}

func GetProvider(id string) *ProviderInfo {
	for _, p := range Providers {
		if p.ID == id {
			return &p
		}
	}
	return nil
}
