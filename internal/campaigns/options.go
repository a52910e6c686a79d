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
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

func init() {
	viper.SetDefault("tracking.baseurl", "http://localhost:8080/track")
	viper.SetDefault("tracking.parameter", "clicked")
	viper.SetDefault("dispatch.from", "")
}

// Options configure the Dispatcher.
type Options struct {
	// TrackingBaseURL is the url recipients are sent to. The tracking token is appended as query
	// parameter.
	TrackingBaseURL string
	// TrackingParameter is the name of the query parameter carrying the tracking token.
	TrackingParameter string
	// DefaultFrom is the sender address used when a dispatch does not name one.
	DefaultFrom string
}

// OptionsFromViper reads Options from `tracking.baseurl`, `tracking.parameter` and
// `dispatch.from`.
func OptionsFromViper() Options {
	return Options{
		TrackingBaseURL:   viper.GetString("tracking.baseurl"),
		TrackingParameter: viper.GetString("tracking.parameter"),
		DefaultFrom:       viper.GetString("dispatch.from"),
	}
}

// TrackingLink returns the link identifying a single campaign result. Existing query parameters
// of the base url are kept.
func (o Options) TrackingLink(token string) string {
	base := o.TrackingBaseURL
	separator := "?"

	if strings.Contains(base, "?") {
		separator = "&"
		if strings.HasSuffix(base, "?") || strings.HasSuffix(base, "&") {
			separator = ""
		}
	}

	return base + separator + url.QueryEscape(o.TrackingParameter) + "=" + url.QueryEscape(token)
}
