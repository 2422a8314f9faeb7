package common

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

// Translator fills the missing side of a bilingual field pair before a card
// is committed. Implementations are expected to be slow and unreliable, so
// callers treat a failed translation as "use the source text".
type Translator interface {
	Translate(ctx context.Context, text string, targetLang string) (string, error)
}

// HTTPTranslator calls an external machine-translation endpoint.
type HTTPTranslator struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewHTTPTranslator creates a new instance, reading config from environment variables.
// Returns nil when TRANSLATOR_URL is unset; callers fall back to NoopTranslator.
func NewHTTPTranslator() *HTTPTranslator {
	baseURL := os.Getenv("TRANSLATOR_URL")
	if baseURL == "" {
		return nil
	}
	apiKey := os.Getenv("TRANSLATOR_API_KEY")
	client := &http.Client{Timeout: 10 * time.Second}
	return &HTTPTranslator{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  client,
	}
}

type translateRequest struct {
	Text       string `json:"text"`
	TargetLang string `json:"target_lang"`
}

type translateResponse struct {
	Text string `json:"text"`
}

// Translate posts the text to the translation endpoint. targetLang is "am"
// or "en".
func (svc *HTTPTranslator) Translate(ctx context.Context, text string, targetLang string) (string, error) {
	if text == "" {
		return "", nil
	}

	body, err := json.Marshal(translateRequest{Text: text, TargetLang: targetLang})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", svc.BaseURL+"/translate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if svc.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+svc.APIKey)
	}

	resp, err := svc.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var result translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	return result.Text, nil
}

// NoopTranslator returns the source text unchanged. Used when no external
// translator is configured.
type NoopTranslator struct{}

func (NoopTranslator) Translate(_ context.Context, text string, _ string) (string, error) {
	return text, nil
}
