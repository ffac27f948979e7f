package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	tokenEnvVar   = "TELEGRAM_BOT_TOKEN"
	tokenFileName = ".teleword_token"

	endpointEnvVar = "TELEGRAM_API_ENDPOINT"
)

// AppConfig holds all configuration for the application.
type AppConfig struct {
	Token string
	// APIEndpoint overrides the Bot API base URL when set (self-hosted
	// Bot API servers). Empty means the default endpoint.
	APIEndpoint string
}

// Load resolves the configuration. The token is discovered with the
// precedence flag > environment variable > token file; a config with an
// empty token is never returned.
func Load(flagToken string) (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't
	// exist. godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	token := flagToken
	if token == "" {
		token = os.Getenv(tokenEnvVar)
	}
	if token == "" {
		token = tokenFromFile()
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("bot API token was not provided as an argument, environment variable or via %s file", tokenFileName)
	}

	return &AppConfig{
		Token:       token,
		APIEndpoint: os.Getenv(endpointEnvVar),
	}, nil
}

// tokenFromFile reads the token from .teleword_token in the working
// directory, then in the user's home directory. Missing files are not an
// error; an empty string means no file provided a token.
func tokenFromFile() string {
	paths := []string{tokenFileName}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, tokenFileName))
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		return string(data)
	}
	return ""
}
