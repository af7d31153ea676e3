package httpapi

import "time"

// Config contains AgenticLetters API connection parameters. The API key is
// not read from the environment here; key resolution (env var plus secrets
// file fallback) happens in the config package and the resolved key is
// injected by the caller.
type Config struct {
	BaseURL string        `envconfig:"AGENTIC_LETTERS_API_BASE" default:"https://agentic-letters.com/api"`
	Timeout time.Duration `envconfig:"AGENTIC_LETTERS_TIMEOUT" default:"60s"`

	APIKey string `ignored:"true"`
}
