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

package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"io"

	"github.com/google/uuid"
)

const tokenByteLength = 18

// IDGenerator is a service to generate unique string IDs, suitable as file names.
type IDGenerator interface {
	// GenerateID generates a new id.
	GenerateID() (string, error)
}

// TokenGenerator is a service to generate unguessable tokens, suitable as url query values.
type TokenGenerator interface {
	// GenerateToken generates a new token.
	GenerateToken() (string, error)
}

// NewIDGenerator creates a new id generator.
func NewIDGenerator() IDGenerator {
	return randomSource{random: rand.Reader}
}

// NewTokenGenerator creates a new token generator.
func NewTokenGenerator() TokenGenerator {
	return randomSource{random: rand.Reader}
}

type randomSource struct {
	random io.Reader
}

// GenerateID returns a random (version 4) uuid.
func (r randomSource) GenerateID() (string, error) {
	id, err := uuid.NewRandomFromReader(r.random)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

// GenerateToken returns 18 random bytes as unpadded url-safe base64.
func (r randomSource) GenerateToken() (string, error) {
	b, err := r.readRandomBytes(tokenByteLength)
	if err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}

func (r randomSource) readRandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	_, err := io.ReadFull(r.random, b)
	return b, err
}
