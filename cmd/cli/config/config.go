package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultAPIURL = "http://localhost:5000"
	tokenFileName = ".cyberpeers_token"
)

// APIURL returns the base URL for the API, overridable with CYBERPEERS_API_URL.
func APIURL() string {
	if v := os.Getenv("CYBERPEERS_API_URL"); v != "" {
		return strings.TrimRight(v, "/")
	}
	return defaultAPIURL
}

// DefaultEmail is used when a command is run without --email.
func DefaultEmail() string {
	return os.Getenv("CYBERPEERS_EMAIL")
}

// TokenPath is where the bearer token is stored, CYBERPEERS_TOKEN_FILE or ~/.cyberpeers_token.
func TokenPath() string {
	if v := os.Getenv("CYBERPEERS_TOKEN_FILE"); v != "" {
		return v
	}
	dir, _ := os.UserHomeDir()
	return filepath.Join(dir, tokenFileName)
}

func SaveToken(token string) error {
	return os.WriteFile(TokenPath(), []byte(token), 0600)
}

// LoadToken prefers CYBERPEERS_TOKEN, then the token file.
func LoadToken() (string, error) {
	if v := os.Getenv("CYBERPEERS_TOKEN"); v != "" {
		return v, nil
	}
	data, err := os.ReadFile(TokenPath())
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func RemoveToken() error {
	return os.Remove(TokenPath())
}
