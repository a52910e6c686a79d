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

package log

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

func init() {
	viper.SetDefault("log.level", "debug")
	viper.SetDefault("log.pretty", false)
}

// Options configure the global Logger.
type Options struct {
	Level  string
	Pretty bool
}

// OptionsFromViper reads Options from `log.level` and `log.pretty`.
func OptionsFromViper() Options {
	return Options{
		Level:  viper.GetString("log.level"),
		Pretty: viper.GetBool("log.pretty"),
	}
}

// Configure replaces the global Logger according to opts.
func Configure(opts Options) error {
	return configure(os.Stderr, opts)
}

func configure(w io.Writer, opts Options) error {
	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil {
		return err
	}

	if opts.Pretty {
		w = zerolog.ConsoleWriter{Out: w}
	}

	Logger = zerolog.New(w).Level(level).With().Timestamp().Caller().Logger()
	return nil
}
