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

package campaigns

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestOptionsFromViper(t *testing.T) {
	viper.Set("tracking.baseurl", "https://phish.example.com/t")
	viper.Set("tracking.parameter", "id")
	viper.Set("dispatch.from", "it@example.com")

	defer viper.Reset()

	assert.Equal(t, Options{
		TrackingBaseURL:   "https://phish.example.com/t",
		TrackingParameter: "id",
		DefaultFrom:       "it@example.com",
	}, OptionsFromViper())
}

func TestTrackingLink(t *testing.T) {
	for _, tc := range []struct {
		base     string
		expected string
	}{
		{"http://localhost:8080/track", "http://localhost:8080/track?clicked=abc-_1"},
		{"http://localhost:8080/track?src=mail", "http://localhost:8080/track?src=mail&clicked=abc-_1"},
		{"http://localhost:8080/track?", "http://localhost:8080/track?clicked=abc-_1"},
	} {
		opts := Options{TrackingBaseURL: tc.base, TrackingParameter: "clicked"}
		assert.Equal(t, tc.expected, opts.TrackingLink("abc-_1"))
	}
}
