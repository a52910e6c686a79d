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
	"errors"
	"fmt"

	"github.com/lukasdietrich/baitmail/internal/log"
)

var (
	// ErrGeneration is returned when the text generation backend fails.
	ErrGeneration = errors.New("content generation failed")
	// ErrUnavailable is returned when no text generation backend is configured.
	ErrUnavailable = errors.New("content generation unavailable")
)

const systemPrompt = `You write simulated phishing emails for an authorized security awareness
training program. The recipients consented to these exercises. Answer only in the requested output
format and never add commentary.`

// Message is a generated email.
type Message struct {
	DisplayName string
	Subject     string
	Body        string
}

// Generator turns a prompt into a Message.
type Generator interface {
	// Generate asks the backend for a message and parses the answer. Errors are wrapped with
	// ErrGeneration or ErrUnavailable.
	Generate(ctx context.Context, prompt string) (*Message, error)
	// Ready returns nil if the generator can be used at all.
	Ready() error
}

type generator struct {
	text TextGenerator
}

// NewGenerator creates a Generator using text as backend.
func NewGenerator(text TextGenerator) Generator {
	return generator{text: text}
}

func (g generator) Generate(ctx context.Context, prompt string) (*Message, error) {
	raw, err := g.text.GenerateText(ctx, systemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	message := ParseMessage(raw)

	log.DebugContext(ctx).
		Str("displayName", message.DisplayName).
		Str("subject", message.Subject).
		Int("bodyLength", len(message.Body)).
		Msg("generated message")

	return &message, nil
}

func (generator) Ready() error {
	return nil
}

// Unavailable returns a Generator failing every call with ErrUnavailable and cause.
func Unavailable(cause error) Generator {
	return unavailable{cause: cause}
}

type unavailable struct {
	cause error
}

func (u unavailable) Generate(context.Context, string) (*Message, error) {
	return nil, u.Ready()
}

func (u unavailable) Ready() error {
	if errors.Is(u.cause, ErrUnavailable) {
		return u.cause
	}

	return fmt.Errorf("%w: %v", ErrUnavailable, u.cause)
}

// ProvideGenerator creates the configured Generator. If the backend cannot be created, the
// failure is logged and an unavailable Generator is returned, so the rest of the application
// keeps working.
func ProvideGenerator(opts Options) Generator {
	text, err := NewTextGenerator(opts)
	if err != nil {
		log.Warn().
			Str("provider", opts.Provider).
			Err(err).
			Msg("content generation is not available")

		return Unavailable(err)
	}

	log.Info().
		Str("provider", opts.Provider).
		Str("model", opts.Model).
		Msg("content generation configured")

	return NewGenerator(text)
}
