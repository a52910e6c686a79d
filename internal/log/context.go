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

package log

import (
	"context"

	"github.com/rs/zerolog"
)

type fieldOrigin struct{}
type fieldCommand struct{}
type fieldRequest struct{}
type fieldCampaign struct{}
type fieldUser struct{}

// WithOrigin adds the origin of processing to the context.
func WithOrigin(ctx context.Context, origin string) context.Context {
	return context.WithValue(ctx, fieldOrigin{}, origin)
}

// WithCommand adds the command name to the context.
func WithCommand(ctx context.Context, command string) context.Context {
	return context.WithValue(ctx, fieldCommand{}, command)
}

// WithRequest adds the id of an http request to the context.
func WithRequest(ctx context.Context, request string) context.Context {
	return context.WithValue(ctx, fieldRequest{}, request)
}

// WithCampaign adds the id of the campaign being processed to the context.
func WithCampaign(ctx context.Context, campaign int64) context.Context {
	return context.WithValue(ctx, fieldCampaign{}, campaign)
}

// WithUser adds the id of the user being processed to the context.
func WithUser(ctx context.Context, user int64) context.Context {
	return context.WithValue(ctx, fieldUser{}, user)
}

// appendContextFields adds defined fields in the context to the log event.
func appendContextFields(ctx context.Context, event *zerolog.Event) *zerolog.Event {
	if request, ok := ctx.Value(fieldRequest{}).(string); ok {
		event.Str("request", request)
	}

	if origin, ok := ctx.Value(fieldOrigin{}).(string); ok {
		event.Str("origin", origin)
	}

	if command, ok := ctx.Value(fieldCommand{}).(string); ok {
		event.Str("command", command)
	}

	if campaign, ok := ctx.Value(fieldCampaign{}).(int64); ok {
		event.Int64("campaign", campaign)
	}

	if user, ok := ctx.Value(fieldUser{}).(int64); ok {
		event.Int64("user", user)
	}

	return event
}
