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

package transport

import (
	"time"

	"github.com/spf13/viper"
)

func init() {
	viper.SetDefault("transport.smtp.host", "")
	viper.SetDefault("transport.smtp.port", "587")
	viper.SetDefault("transport.smtp.username", "")
	viper.SetDefault("transport.smtp.password", "")
	viper.SetDefault("transport.smtp.starttls", true)
	viper.SetDefault("transport.smtp.hostname", "localhost")
	viper.SetDefault("transport.smtp.timeout", "30s")
}

// Options configure the smtp submission server.
type Options struct {
	Host     string
	Port     string
	Username string
	Password string
	// StartTLS upgrades the connection, if the server offers it.
	StartTLS bool
	// Hostname is sent with EHLO.
	Hostname string
	Timeout  time.Duration
}

// OptionsFromViper reads Options from the `transport.smtp.*` keys.
func OptionsFromViper() Options {
	return Options{
		Host:     viper.GetString("transport.smtp.host"),
		Port:     viper.GetString("transport.smtp.port"),
		Username: viper.GetString("transport.smtp.username"),
		Password: viper.GetString("transport.smtp.password"),
		StartTLS: viper.GetBool("transport.smtp.starttls"),
		Hostname: viper.GetString("transport.smtp.hostname"),
		Timeout:  viper.GetDuration("transport.smtp.timeout"),
	}
}
