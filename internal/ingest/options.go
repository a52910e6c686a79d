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

package ingest

import (
	"github.com/spf13/viper"
)

func init() {
	viper.SetDefault("ingest.maxsize", "10mb")
}

// Options configure the Parser.
type Options struct {
	// MaxSize is the largest accepted file in bytes.
	MaxSize int64
}

// OptionsFromViper reads Options from `ingest.maxsize`.
func OptionsFromViper() Options {
	return Options{
		MaxSize: int64(viper.GetSizeInBytes("ingest.maxsize")),
	}
}
