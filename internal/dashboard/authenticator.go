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

package dashboard

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/viper"

	"github.com/lukasdietrich/baitmail/internal/log"
	"github.com/lukasdietrich/baitmail/internal/models"
	"github.com/lukasdietrich/baitmail/internal/roster"
)

var (
	// ErrUnknownUser is returned when an address is invalid or does not belong to a user.
	ErrUnknownUser = errors.New("unknown user")
)

func init() {
	viper.SetDefault("security.auth.minDuration", "1s")
}

// Authenticator identifies dashboard users by their address.
type Authenticator interface {
	// Login searches for the user with the given address. Unknown or invalid addresses result in
	// ErrUnknownUser. Every attempt takes at least the configured minimum duration.
	Login(ctx context.Context, email string) (*models.UserEntity, error)
}

type authenticator struct {
	roster roster.Roster

	minDuration time.Duration
}

// NewAuthenticator creates a new Authenticator.
func NewAuthenticator(roster roster.Roster) Authenticator {
	return &authenticator{
		roster: roster,

		minDuration: viper.GetDuration("security.auth.minDuration"),
	}
}

func (a *authenticator) Login(ctx context.Context, email string) (*models.UserEntity, error) {
	startTime := time.Now()
	defer a.ensureMinDuration(startTime)

	user, err := a.roster.FindUserByEmail(ctx, email)
	if err != nil {
		if isErrInvalidAddress(err) {
			log.WarnContext(ctx).
				Str("email", email).
				Msg("failed login attempt: invalid address")

			return nil, ErrUnknownUser
		}

		return nil, err
	}

	if user == nil {
		log.WarnContext(ctx).
			Str("email", email).
			Msg("failed login attempt: unknown address")

		return nil, ErrUnknownUser
	}

	return user, nil
}

func (a *authenticator) ensureMinDuration(start time.Time) {
	elapsed := time.Since(start)
	remaining := a.minDuration - elapsed

	if remaining > 0 {
		time.Sleep(remaining)
	}
}

func isErrInvalidAddress(err error) bool {
	return errors.Is(err, models.ErrInvalidAddressFormat) ||
		errors.Is(err, models.ErrPathTooLong)
}
