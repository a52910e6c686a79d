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

package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var (
	// ErrInvalidAddressFormat is used for addresses without an "@" sign or with an empty
	// local-part or domain.
	ErrInvalidAddressFormat = errors.New("address: invalid format")

	// ErrPathTooLong is used for addresses, that are too long or contain a path
	// that is too long according to RFC#5321.
	ErrPathTooLong = errors.New("address: path too long")

	// ZeroAddress is an invalid, zero value Address.
	ZeroAddress Address
)

// Address is a string of the form "local-part@domain".
type Address struct {
	raw string
	at  int
}

// ParseIdentity parses an address used to identify a user. The domain is converted to unicode
// and the local-part is folded, so that "User@EXAMPLE.com" and "user@example.com" are equal.
func ParseIdentity(raw string) (Address, error) {
	addr, err := ParseUnicode(raw)
	if err != nil {
		return addr, err
	}

	localPart := FoldLocalPart(addr.LocalPart())
	if localPart != addr.LocalPart() {
		addr.raw = localPart + "@" + addr.Domain()
		addr.at = len(localPart)
	}

	return addr, nil
}

// ParseUnicode calls Parse and transforms the domain part of the address using DomainToUnicode.
func ParseUnicode(raw string) (Address, error) {
	addr, err := Parse(raw)
	if err != nil {
		return addr, err
	}

	domain, err := DomainToUnicode(addr.Domain())
	if err != nil {
		return ZeroAddress, err
	}

	if domain != addr.Domain() {
		addr.raw = addr.LocalPart() + "@" + domain
	}

	return addr, nil
}

// Parse trims surrounding whitespace, splits an address at the last "@" sign and checks for size
// limits.
func Parse(raw string) (Address, error) {
	raw = strings.TrimSpace(raw)

	at := strings.LastIndex(raw, "@")
	if at < 1 || at == len(raw)-1 {
		return ZeroAddress, ErrInvalidAddressFormat
	}

	// see RFC#5321 4.5.3.1
	if at > 64 || len(raw)-at > 256 || len(raw) > 256 {
		return ZeroAddress, ErrPathTooLong
	}

	return Address{raw, at}, nil
}

// String returns the raw address.
func (a Address) String() string {
	return a.raw
}

// IsZero reports whether a is the zero value.
func (a Address) IsZero() bool {
	return a.raw == ""
}

// LocalPart returns the part left of the "@" sign (exclusive).
func (a Address) LocalPart() string {
	return a.raw[:a.at]
}

// Domain return the part right of the "@" sign (exclusive).
func (a Address) Domain() string {
	return a.raw[a.at+1:]
}

// ASCII returns a copy of a with the domain converted to punycode, as required for smtp
// envelopes.
func (a Address) ASCII() (Address, error) {
	domain, err := DomainToASCII(a.Domain())
	if err != nil {
		return ZeroAddress, err
	}

	return Address{raw: a.LocalPart() + "@" + domain, at: a.at}, nil
}

// Scan implements the sql.Scanner interface.
func (a *Address) Scan(src interface{}) error {
	s, err := driver.String.ConvertValue(src)
	if err != nil {
		return err
	}

	v, err := Parse(s.(string))
	if err != nil {
		return err
	}

	*a = v
	return nil
}

// Value implements the sql/driver.Valuer interface.
func (a Address) Value() (driver.Value, error) {
	return a.raw, nil
}

// MarshalJSON encodes the address as a plain string.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.raw)
}

// UnmarshalJSON decodes and parses a plain string.
func (a *Address) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	v, err := Parse(raw)
	if err != nil {
		return err
	}

	*a = v
	return nil
}

// DomainToUnicode normalizes a punycode domain to unicode and applies the
// NFC normal form.
func DomainToUnicode(domain string) (string, error) {
	mapped, err := idna.Lookup.ToUnicode(domain)
	if err != nil {
		return domain, err
	}

	return norm.NFC.String(mapped), nil
}

// DomainToASCII transforms a unicode domain to punycode.
func DomainToASCII(domain string) (string, error) {
	mapped, err := DomainToUnicode(domain)
	if err != nil {
		return domain, err
	}

	return idna.Lookup.ToASCII(mapped)
}

var fold = cases.Fold()

// FoldLocalPart case-folds the local-part and applies NFKC, so that equal looking addresses
// identify the same user.
func FoldLocalPart(localPart string) string {
	return norm.NFKC.String(fold.String(localPart))
}
