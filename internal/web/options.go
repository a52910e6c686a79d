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

package web

import (
	"time"

	"github.com/spf13/viper"
)

func init() {
	viper.SetDefault("http.address", ":8080")
	viper.SetDefault("http.shutdowntimeout", "10s")
	viper.SetDefault("http.uploadlimit", "32mb")
}

// Options configure the Server.
type Options struct {
	// Address is the tcp address to listen on.
	Address string
	// ShutdownTimeout is the time in-flight requests get to finish on shutdown.
	ShutdownTimeout time.Duration
	// UploadLimit is the maximum size of a request body.
	UploadLimit int64
}

// OptionsFromViper reads Options from `http.address`, `http.shutdowntimeout` and
// `http.uploadlimit`.
func OptionsFromViper() Options {
	return Options{
		Address:         viper.GetString("http.address"),
		ShutdownTimeout: viper.GetDuration("http.shutdowntimeout"),
		UploadLimit:     int64(viper.GetSizeInBytes("http.uploadlimit")),
	}
}
