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
	"fmt"
	"strings"
)

// TrainingLinks is an ordered list of training resource urls. It is stored as a json array.
type TrainingLinks []string

// ParseTrainingLinks splits raw at newlines and commas, dropping blank entries.
func ParseTrainingLinks(raw string) TrainingLinks {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '\n' || r == ','
	})

	links := make(TrainingLinks, 0, len(fields))

	for _, field := range fields {
		if link := strings.TrimSpace(field); link != "" {
			links = append(links, link)
		}
	}

	return links
}

// Scan implements the sql.Scanner interface. NULL and empty values scan to an empty list.
func (l *TrainingLinks) Scan(src interface{}) error {
	var raw []byte

	switch v := src.(type) {
	case nil:
		*l = TrainingLinks{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("training links: cannot scan %T", src)
	}

	if len(raw) == 0 {
		*l = TrainingLinks{}
		return nil
	}

	var links TrainingLinks
	if err := json.Unmarshal(raw, &links); err != nil {
		return fmt.Errorf("training links: %w", err)
	}

	if links == nil {
		links = TrainingLinks{}
	}

	*l = links
	return nil
}

// Value implements the sql/driver.Valuer interface.
func (l TrainingLinks) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}

	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}

	return string(b), nil
}
