package gemini

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/Abhi-engg/farmstand-backend/pkg/config"
	"github.com/go-resty/resty/v2"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// ErrNotConfigured signals that no API key was injected from the environment.
var ErrNotConfigured = fmt.Errorf("gemini api key is not configured")

// ErrEmptyResponse signals the model returned no usable text.
var ErrEmptyResponse = fmt.Errorf("gemini returned no text")

// Client calls the Generative Language REST API.
type Client struct {
	http    *resty.Client
	apiKey  string
	baseURL string
}

// Option customizes the client, mainly for tests.
type Option func(*Client)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// New builds a client from configuration. The API key comes from the
// environment only; there is no baked-in fallback.
func New(cfg config.GeminiConfig, opts ...Option) *Client {
	client := &Client{
		http:    resty.New().SetTimeout(60 * time.Second),
		apiKey:  cfg.APIKey,
		baseURL: defaultBaseURL,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *apiError `json:"error"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// ExtractTextFromImage sends the image to the named model with an OCR prompt
// and returns the extracted text.
func (c *Client) ExtractTextFromImage(ctx context.Context, model, prompt, mimeType string, image []byte) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}
	if model == "" {
		return "", fmt.Errorf("model is required")
	}
	if len(image) == 0 {
		return "", fmt.Errorf("image payload is empty")
	}

	body := generateRequest{
		Contents: []content{{
			Parts: []part{
				{Text: prompt},
				{InlineData: &inlineData{
					MimeType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(image),
				}},
			},
		}},
	}

	var parsed generateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-goog-api-key", c.apiKey).
		SetBody(body).
		SetResult(&parsed).
		SetError(&parsed).
		Post(fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, model))
	if err != nil {
		return "", fmt.Errorf("calling gemini model %s: %w", model, err)
	}

	if resp.IsError() {
		if parsed.Error != nil {
			return "", fmt.Errorf("gemini model %s: %s (%s)", model, parsed.Error.Message, parsed.Error.Status)
		}
		return "", fmt.Errorf("gemini model %s: unexpected status %d", model, resp.StatusCode())
	}

	text := collectText(parsed)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func collectText(resp generateResponse) string {
	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		for _, p := range candidate.Content.Parts {
			builder.WriteString(p.Text)
		}
	}
	return strings.TrimSpace(builder.String())
}
