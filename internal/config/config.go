// Package config resolves everything the CLI needs from the environment:
// client settings via envconfig and the API key, which additionally falls
// back to a KEY=value secrets file under the user's home directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"

	"github.com/EiSiMo/agentic-letters-skill/internal/clierr"
	"github.com/EiSiMo/agentic-letters-skill/internal/letters/httpapi"
	"github.com/EiSiMo/agentic-letters-skill/internal/logger"
)

// EnvVar is the environment variable holding the API key.
const EnvVar = "AGENTIC_LETTERS_API_KEY"

const buyURL = "https://agentic-letters.com/buy"

// Config aggregates the settings of every component the CLI wires up.
type Config struct {
	API httpapi.Config
	Log logger.Config
}

// Load populates Config from the environment. The API key is resolved
// separately via LoadAPIKey because of the secrets-file fallback.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, errors.Wrap(err, "failed to envconfig.Process")
	}

	return cfg, nil
}

// SecretsFile returns the default secrets file location,
// ~/.openclaw/secrets/agentic_letters.env.
func SecretsFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".openclaw", "secrets", "agentic_letters.env")
}

// LoadAPIKey resolves the API key: the environment variable wins, then the
// secrets file (KEY=value lines, quotes stripped). A missing key is a local
// error telling the user both places to put one.
func LoadAPIKey(secretsFile string) (string, error) {
	if key := strings.TrimSpace(os.Getenv(EnvVar)); key != "" {
		return key, nil
	}

	if secretsFile != "" {
		if values, err := godotenv.Read(secretsFile); err == nil {
			if key := strings.TrimSpace(values[EnvVar]); key != "" {
				return key, nil
			}
		}
	}

	return "", clierr.Local("No API key found").WithDetail(fmt.Sprintf(
		"Set %s in environment or in %s. Get a key at %s",
		EnvVar, secretsFile, buyURL))
}
