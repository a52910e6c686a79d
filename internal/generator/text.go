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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// TextGenerator generates text from a system prompt and a user prompt.
type TextGenerator interface {
	GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// NewTextGenerator creates the TextGenerator selected by opts.Provider. Missing credentials or an
// unknown provider result in ErrUnavailable.
func NewTextGenerator(opts Options) (TextGenerator, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Provider)) {
	case ProviderGemini:
		return NewGeminiClient(opts)
	case ProviderOpenAI:
		return NewOpenAICompatClient(opts)
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", ErrUnavailable, opts.Provider)
	}
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// postJSON sends payload to url and decodes the response into out. Error responses are turned
// into errors carrying the api message, if there is one.
func postJSON(
	ctx context.Context,
	client *http.Client,
	url string,
	header http.Header,
	payload, out interface{},
) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}

	for key, values := range header {
		req.Header[key] = values
	}

	req.Header.Set("Content-Type", "application/json")

	res, err := client.Do(req)
	if err != nil {
		return err
	}

	defer res.Body.Close()

	if res.StatusCode >= 400 {
		var errRes apiError
		_ = json.NewDecoder(res.Body).Decode(&errRes)

		if errRes.Error.Message != "" {
			return fmt.Errorf("api error (%s): %s", res.Status, errRes.Error.Message)
		}

		return fmt.Errorf("api error: %s", res.Status)
	}

	return json.NewDecoder(res.Body).Decode(out)
}

var errEmptyResponse = errors.New("empty response")
