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

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lukasdietrich/baitmail/internal/log"
)

const usageText = `
Usage:
  baitmail [OPTIONS] COMMAND

  Run phishing awareness campaigns.

Version:
  %s

Commands:
  start     Start the http server
  shell     Start an interactive administration shell

Options:
%s
`

var (
	// Version is set at compile-time.
	Version string
)

func main() {
	var (
		configFilename string
		envFilename    string
	)

	flags := pflag.NewFlagSet("baitmail", pflag.ContinueOnError)
	flags.StringVarP(&configFilename, "config", "c", "", "Path to a configuration file")
	flags.StringVarP(&envFilename, "env", "e", ".env", "Path to a dotenv file with secrets")
	flags.Usage = printUsage(flags)

	if err := flags.Parse(os.Args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}

		log.Fatal().Err(err).Msg("could not parse flags")
	}

	switch commandName := flags.Arg(1); commandName {
	case "start", "shell":
		loadEnv(envFilename)
		setupConfig(configFilename)
		setupLogger()
		printConfig()
		runCommand(commandName)
	default:
		flags.Usage()
	}
}

type command interface {
	run() error
}

func runCommand(commandName string) {
	var (
		cmd command
		err error
	)

	switch commandName {
	case "start":
		cmd, err = newStartCommand()
	case "shell":
		cmd, err = newShellCommand()
	}

	if err != nil {
		log.Fatal().Err(err).Msg("could not initialize the application")
	}

	if err := cmd.run(); err != nil {
		log.Fatal().Err(err).Str("command", commandName).Msg("command failed")
	}
}

func printUsage(flags *pflag.FlagSet) func() {
	return func() {
		fmt.Fprintf(os.Stderr, usageText,
			Version,
			flags.FlagUsages())
	}
}

// loadEnv copies the variables of a dotenv file into the environment. Variables already set
// take precedence.
func loadEnv(filename string) {
	if err := godotenv.Load(filename); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug().Str("filename", filename).Msg("no dotenv file found")
		} else {
			log.Fatal().Err(err).Str("filename", filename).Msg("could not load dotenv file")
		}
	}
}

func setupLogger() {
	if err := log.Configure(log.OptionsFromViper()); err != nil {
		log.Fatal().Err(err).Msg("could not configure logger")
	}
}

func setupConfig(filename string) {
	viper.SetTypeByDefaultValue(true)
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.SetEnvPrefix("BAITMAIL")

	if filename != "" {
		readConfig(filename)
	} else {
		log.Info().Msg("no config file provided. using environment only")
	}
}

func readConfig(filename string) {
	log.Info().Str("filename", filename).Msg("loading configuration")
	viper.SetConfigFile(filename)

	if err := viper.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn().Err(err).Msg("configuration file missing")
		} else {
			log.Fatal().Err(err).Msg("could not load configuration")
		}
	}
}

var secretKeys = []string{
	"generator.apikey",
	"transport.smtp.password",
}

func printConfig() {
	keys := viper.AllKeys()
	sort.Strings(keys)

	for _, key := range keys {
		value := viper.Get(key)
		if isSecret(key) && viper.GetString(key) != "" {
			value = "***"
		}

		v, _ := json.Marshal(value)
		log.Debug().Str("key", key).RawJSON("value", v).Msg("configuration")
	}
}

func isSecret(key string) bool {
	for _, secret := range secretKeys {
		if key == secret {
			return true
		}
	}

	return false
}
