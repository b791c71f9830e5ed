package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cyberpeers/cyberpeers-server/cmd/cli/config"
	"github.com/spf13/cobra"
)

var httpClient = &http.Client{Timeout: 30 * time.Second}

// Options are the flags shared by every API command.
type Options struct {
	Email string
	JSON  bool
}

// BindFlags registers --email and --json on cmd.
func BindFlags(cmd *cobra.Command, o *Options) {
	cmd.Flags().StringVar(&o.Email, "email", config.DefaultEmail(), "Email of the acting user (default $CYBERPEERS_EMAIL)")
	cmd.Flags().BoolVar(&o.JSON, "json", false, "Print raw JSON")
}

// APIError is a non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.Status, e.Message)
}

// Do calls the API with the stored bearer token. email, when set, is sent as
// the email query parameter; out, when set, receives the decoded body.
func Do(method, path, email string, payload, out interface{}) error {
	token, err := config.LoadToken()
	if err != nil {
		return fmt.Errorf("no token found, run `cyberpeers token` first: %w", err)
	}

	u := config.APIURL() + path
	if email != "" {
		u += "?email=" + url.QueryEscape(email)
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, u, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var msg struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &msg) != nil || msg.Message == "" {
			msg.Message = string(data)
		}
		return &APIError{Status: resp.StatusCode, Message: msg.Message}
	}

	if out != nil {
		return json.Unmarshal(data, out)
	}
	return nil
}
