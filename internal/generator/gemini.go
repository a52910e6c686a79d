// Copyright (C) 2020  Lukas Dietrich <lukas@lukasdietrich.com>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package generator

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiClient calls the Google Generative Language api.
type GeminiClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// NewGeminiClient creates a new GeminiClient. An api key is required.
func NewGeminiClient(opts Options) (*GeminiClient, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%w: gemini api key required", ErrUnavailable)
	}

	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}

	return &GeminiClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   strings.TrimPrefix(strings.TrimSpace(opts.Model), "models/"),
		client:  &http.Client{Timeout: opts.Timeout},
	}, nil
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents          []geminiContent `json:"contents"`
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// GenerateText implements TextGenerator using the generateContent endpoint.
func (c *GeminiClient) GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	req := geminiRequest{
		Contents: []geminiContent{
			{
				Role:  "user",
				Parts: []geminiPart{{Text: userPrompt}},
			},
		},
	}

	if strings.TrimSpace(systemPrompt) != "" {
		req.SystemInstruction = &geminiContent{
			Parts: []geminiPart{{Text: systemPrompt}},
		}
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, url.PathEscape(c.model))

	// The key never goes into the url, because url errors quote the full url.
	header := make(http.Header)
	header.Set("x-goog-api-key", c.apiKey)

	var res geminiResponse
	if err := postJSON(ctx, c.client, endpoint, header, req, &res); err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}

	if len(res.Candidates) == 0 {
		return "", fmt.Errorf("gemini: %w", errEmptyResponse)
	}

	var text strings.Builder
	for _, part := range res.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}

	if strings.TrimSpace(text.String()) == "" {
		return "", fmt.Errorf("gemini: %w", errEmptyResponse)
	}

	return text.String(), nil
}
