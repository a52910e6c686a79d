// Copyright (C) 2019  Lukas Dietrich <lukas@lukasdietrich.com>
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

package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmptyAddress(t *testing.T) {
	addr, err := Parse("")
	assert.Equal(t, ErrInvalidAddressFormat, err)
	assert.Zero(t, addr)
}

func TestInvalidAddress(t *testing.T) {
	for _, raw := range []string{"no-at-sign", "@example.com", "someone@", "   "} {
		addr, err := Parse(raw)
		assert.Equal(t, ErrInvalidAddressFormat, err, raw)
		assert.Zero(t, addr)
	}
}

func TestParseTrimsWhitespace(t *testing.T) {
	addr, err := Parse("  someone@example.com\n")
	assert.NoError(t, err)
	assert.Equal(t, "someone@example.com", addr.String())
}

func TestTooLongAddress(t *testing.T) {
	for _, raw := range []string{
		longString(200) + "@" + longString(200),
		"a@" + longString(256),
		longString(65) + "@a",
		longString(64) + "@" + longString(192),
	} {
		addr, err := Parse(raw)
		assert.Equal(t, ErrPathTooLong, err)
		assert.Zero(t, addr)
	}
}

func TestValidAddress(t *testing.T) {
	for _, raw := range []string{
		longString(64) + "@" + longString(100),
		"a@" + longString(254),
		longString(10) + "@" + longString(245),
	} {
		addr, err := Parse(raw)
		assert.NoError(t, err)
		assert.NotZero(t, addr)
		assert.Equal(t, raw, addr.String())
	}
}

func longString(n int) string {
	r := make([]rune, n)
	for i := 0; i < n; i++ {
		r[i] = 'a'
	}

	return string(r)
}

func TestDomainToASCII(t *testing.T) {
	for domain, expected := range map[string]string{
		"example.com":     "example.com",
		"dömäin.example":  "xn--dmin-moa0i.example",
		"DÖMÄIN.example":  "xn--dmin-moa0i.example",
		"äaaa.example":    "xn--aaa-pla.example",
		"déjà.vu.example": "xn--dj-kia8a.vu.example",
		"fußball.example": "xn--fuball-cta.example",
	} {
		actual, err := DomainToASCII(domain)
		assert.NoError(t, err)
		assert.Equal(t, expected, actual)
	}
}

func TestDomainToUnicode(t *testing.T) {
	for domain, expected := range map[string]string{
		"example.com":             "example.com",
		"xn--dmin-moa0i.example":  "dömäin.example",
		"xn--aaa-pla.example":     "äaaa.example",
		"xn--dj-kia8a.vu.example": "déjà.vu.example",
		"fussball.example":        "fussball.example",
		"xn--fuball-cta.example":  "fußball.example",
	} {
		actual, err := DomainToUnicode(domain)
		assert.NoError(t, err)
		assert.Equal(t, expected, actual)
	}
}

func TestFoldLocalPart(t *testing.T) {
	for localPart, expected := range map[string]string{
		"user+suffix":  "user+suffix",
		"fußball":      "fussball",
		"ÄÖÜ":          "äöü",
		"\u0041\u030A": "\u00e5",
	} {
		actual := FoldLocalPart(localPart)
		assert.Equal(t, expected, actual)
	}
}

func TestParseUnicode(t *testing.T) {
	actual, err := ParseUnicode("someone@xn--dmin-moa0i.example")
	assert.NoError(t, err)
	assert.Equal(t, "someone@dömäin.example", actual.String())
	assert.Equal(t, "someone", actual.LocalPart())
	assert.Equal(t, "dömäin.example", actual.Domain())
}

func TestParseIdentity(t *testing.T) {
	actual, err := ParseIdentity("Some.One+Tag@EXAMPLE.com")
	assert.NoError(t, err)
	assert.Equal(t, "some.one+tag@example.com", actual.String())
	assert.Equal(t, "some.one+tag", actual.LocalPart())
	assert.Equal(t, "example.com", actual.Domain())
}

func TestASCII(t *testing.T) {
	original, err := Parse("someone@dömäin.example")
	assert.NoError(t, err)

	ascii, err := original.ASCII()
	assert.NoError(t, err)
	assert.Equal(t, "someone@xn--dmin-moa0i.example", ascii.String())
	assert.Equal(t, "someone@dömäin.example", original.String())
}

func TestJSON(t *testing.T) {
	var target struct {
		Email Address `json:"email"`
	}

	assert.NoError(t, json.Unmarshal([]byte(`{"email":"someone@example.com"}`), &target))
	assert.Equal(t, "someone", target.Email.LocalPart())

	b, err := json.Marshal(target)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"email":"someone@example.com"}`, string(b))

	assert.Error(t, json.Unmarshal([]byte(`{"email":"nope"}`), &target))
}

func TestImplementsScanner(t *testing.T) {
	addr := new(Address)
	var scanner sql.Scanner = addr

	assert.NoError(t, scanner.Scan("someone@example.com"))
	assert.Equal(t, "someone", addr.LocalPart())
	assert.Equal(t, "example.com", addr.Domain())
}

func TestImplementsValuer(t *testing.T) {
	addr, err := Parse("someone@example.com")
	assert.NoError(t, err)

	var valuer driver.Valuer = addr

	value, err := valuer.Value()
	assert.NoError(t, err)
	assert.Equal(t, "someone@example.com", value)
}
