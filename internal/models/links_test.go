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
	"database/sql"
	"database/sql/driver"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrainingLinksRoundTrip(t *testing.T) {
	links := TrainingLinks{
		"https://training.example/b",
		"https://training.example/a",
		"https://training.example/c",
	}

	var valuer driver.Valuer = links
	value, err := valuer.Value()
	assert.NoError(t, err)
	assert.Equal(t, `["https://training.example/b","https://training.example/a","https://training.example/c"]`, value)

	var scanned TrainingLinks
	var scanner sql.Scanner = &scanned
	assert.NoError(t, scanner.Scan(value))
	assert.Equal(t, links, scanned)

	assert.NoError(t, scanner.Scan([]byte(value.(string))))
	assert.Equal(t, links, scanned)
}

func TestTrainingLinksEmpty(t *testing.T) {
	value, err := TrainingLinks(nil).Value()
	assert.NoError(t, err)
	assert.Equal(t, "[]", value)

	for _, src := range []interface{}{nil, "", "[]", "null"} {
		var links TrainingLinks
		assert.NoError(t, links.Scan(src))
		assert.NotNil(t, links)
		assert.Empty(t, links)
	}
}

func TestTrainingLinksScanInvalid(t *testing.T) {
	var links TrainingLinks
	assert.Error(t, links.Scan("not json"))
	assert.Error(t, links.Scan(42))
}

func TestParseTrainingLinks(t *testing.T) {
	actual := ParseTrainingLinks(" https://a.example \n\n, https://b.example,https://c.example\n")
	assert.Equal(t, TrainingLinks{"https://a.example", "https://b.example", "https://c.example"}, actual)
	assert.Empty(t, ParseTrainingLinks(" , \n"))
}
