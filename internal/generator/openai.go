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
	"strings"
)

// OpenAICompatClient calls any endpoint compatible with the OpenAI chat completions api.
type OpenAICompatClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// NewOpenAICompatClient creates a new OpenAICompatClient. The base url should include the version
// prefix, e.g. "http://localhost:8000/v1". The api key may be empty for local models.
func NewOpenAICompatClient(opts Options) (*OpenAICompatClient, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("%w: openai base url required", ErrUnavailable)
	}

	model := strings.TrimSpace(opts.Model)
	if model == "" {
		return nil, fmt.Errorf("%w: openai model required", ErrUnavailable)
	}

	return &OpenAICompatClient{
		apiKey:  strings.TrimSpace(opts.APIKey),
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: opts.Timeout},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// GenerateText implements TextGenerator using the chat completions endpoint.
func (c *OpenAICompatClient) GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	messages := make([]chatMessage, 0, 2)

	if strings.TrimSpace(systemPrompt) != "" {
		messages = append(messages, chatMessage{Role: "system", Content: systemPrompt})
	}

	messages = append(messages, chatMessage{Role: "user", Content: userPrompt})

	header := make(http.Header)
	if c.apiKey != "" {
		header.Set("Authorization", "Bearer "+c.apiKey)
	}

	var res chatResponse
	req := chatRequest{Model: c.model, Messages: messages}

	if err := postJSON(ctx, c.client, c.baseURL+"/chat/completions", header, req, &res); err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}

	if len(res.Choices) == 0 || strings.TrimSpace(res.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("openai: %w", errEmptyResponse)
	}

	return res.Choices[0].Message.Content, nil
}
