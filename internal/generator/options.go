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

package generator

import (
	"time"

	"github.com/spf13/viper"
)

const (
	// ProviderGemini selects the Google Generative Language api.
	ProviderGemini = "gemini"
	// ProviderOpenAI selects any api compatible with the OpenAI chat completions endpoint.
	ProviderOpenAI = "openai"
)

func init() {
	viper.SetDefault("generator.provider", ProviderGemini)
	viper.SetDefault("generator.apikey", "")
	viper.SetDefault("generator.model", "gemini-2.0-flash")
	viper.SetDefault("generator.baseurl", "")
	viper.SetDefault("generator.timeout", "60s")
}

// Options configure the text generation backend.
type Options struct {
	Provider string
	APIKey   string
	Model    string
	// BaseURL overrides the default endpoint of the provider. It is required for ProviderOpenAI.
	BaseURL string
	Timeout time.Duration
}

// OptionsFromViper reads Options from the `generator.*` keys.
func OptionsFromViper() Options {
	return Options{
		Provider: viper.GetString("generator.provider"),
		APIKey:   viper.GetString("generator.apikey"),
		Model:    viper.GetString("generator.model"),
		BaseURL:  viper.GetString("generator.baseurl"),
		Timeout:  viper.GetDuration("generator.timeout"),
	}
}
