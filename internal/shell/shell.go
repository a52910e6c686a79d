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

package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/afero"

	"github.com/lukasdietrich/baitmail/internal/campaigns"
	"github.com/lukasdietrich/baitmail/internal/log"
	"github.com/lukasdietrich/baitmail/internal/roster"
	"github.com/lukasdietrich/baitmail/internal/tracking"
)

// Shell is an interactive shell to manage users, sample emails and campaigns.
type Shell struct {
	roster     roster.Roster
	tracker    tracking.Tracker
	dispatcher campaigns.Dispatcher
	fs         afero.Fs
	finder     finder
	commands   cmdSlice
}

// NewShell creates a new shell instance.
func NewShell(
	roster roster.Roster,
	tracker tracking.Tracker,
	dispatcher campaigns.Dispatcher,
	fs afero.Fs,
) *Shell {
	return &Shell{
		roster:     roster,
		tracker:    tracker,
		dispatcher: dispatcher,
		fs:         fs,
		finder:     fuzzyFinder,
		commands: cmdSlice{
			{
				name: "user",
				help: "Manage the users receiving simulated phishing mails.",
				children: cmdSlice{
					{
						name:   "add",
						help:   "Add a new user.",
						action: addUser,
					},
					{
						name:   "delete",
						help:   "Delete a user with all samples and results.",
						action: deleteUser,
					},
					{
						name:   "info",
						help:   "Show samples, results and score of a user.",
						action: infoUser,
					},
					{
						name:   "import",
						help:   "Import a sample email (.eml, .txt, .msg) for a user.",
						action: importSample,
					},
				},
			},
			{
				name: "campaign",
				help: "Manage and send campaigns.",
				children: cmdSlice{
					{
						name:   "add",
						help:   "Add a new campaign.",
						action: addCampaign,
					},
					{
						name:   "edit",
						help:   "Edit name, template and training links of a campaign.",
						action: editCampaign,
					},
					{
						name:   "delete",
						help:   "Delete a campaign. Results are kept.",
						action: deleteCampaign,
					},
					{
						name:   "info",
						help:   "Show a campaign.",
						action: infoCampaign,
					},
					{
						name:   "send",
						help:   "Send a campaign to selected users.",
						action: sendCampaign,
					},
					{
						name:   "results",
						help:   "Show the results of a campaign.",
						action: campaignResults,
					},
				},
			},
			{
				name:   "stats",
				help:   "Show totals over all campaigns.",
				action: showStats,
			},
		},
	}
}

// Run starts the shell read loop.
func (s *Shell) Run() error {
	config := readline.Config{
		AutoComplete: readline.NewPrefixCompleter(s.commands.buildCompleters()...),
	}

	rl, err := readline.NewEx(&config)
	if err != nil {
		return err
	}

	defer rl.Close()

	for {
		rl.SetPrompt(">>> ")

		line, err := rl.Readline()
		if err != nil {
			if isUnimportantError(err) {
				return nil
			}

			return err
		}

		args := strings.Fields(line)
		if err := s.handleCommand(rl, args); err != nil && !isUnimportantError(err) {
			fmt.Printf("\nERROR:\n  %s\n\n", err)
		}
	}
}

func isUnimportantError(err error) bool {
	return errors.Is(err, fuzzyfinder.ErrAbort) ||
		errors.Is(err, readline.ErrInterrupt) ||
		errors.Is(err, io.EOF)
}

type cmdFunc func(*cmdContext) error

type cmdSlice []cmdDef

func (s cmdSlice) lookup(args []string) (cmdDef, bool) {
	if len(s) > 0 && len(args) > 0 {
		var (
			head = args[0]
			tail = args[1:]
		)

		for _, cmd := range s {
			if head == cmd.name {
				if len(tail) > 0 {
					return cmd.children.lookup(tail)
				}

				return cmd, true
			}
		}
	}

	return cmdDef{}, false
}

func (s cmdSlice) buildCompleters() []readline.PrefixCompleterInterface {
	var completers []readline.PrefixCompleterInterface

	for _, cmd := range s {
		cmdCompleter := readline.PcItem(cmd.name, cmd.children.buildCompleters()...)
		completers = append(completers, cmdCompleter)
	}

	return completers
}

type cmdDef struct {
	name     string
	help     string
	action   cmdFunc
	children cmdSlice
}

type prompter interface {
	SetPrompt(string)
	ReadlineWithDefault(string) (string, error)
	HistoryDisable()
	HistoryEnable()
}

type cmdContext struct {
	context.Context
	*Shell

	rl        prompter
	infoLines []string
}

func (c *cmdContext) info(format string, v ...any) {
	text := fmt.Sprintf(format, v...)
	c.infoLines = append(c.infoLines, text)
}

func (c *cmdContext) ask(prompt string) (string, error) {
	return c.askWithDefault(prompt, "")
}

func (c *cmdContext) askWithDefault(prompt, defaultValue string) (string, error) {
	for {
		answer, err := c.askOptional(prompt, defaultValue)
		if err != nil || len(answer) > 0 {
			return answer, err
		}
	}
}

// askOptional accepts an empty answer.
func (c *cmdContext) askOptional(prompt, defaultValue string) (string, error) {
	c.rl.HistoryDisable()
	defer c.rl.HistoryEnable()

	c.rl.SetPrompt(prompt)

	answer, err := c.rl.ReadlineWithDefault(defaultValue)
	return strings.TrimSpace(answer), err
}

func (s *Shell) handleCommand(rl prompter, args []string) error {
	cmd, ok := s.commands.lookup(args)
	if ok {
		if cmd.action != nil {
			return s.executeCommand(rl, cmd, args)
		}

		printCommandHelp(cmd)
	} else {
		printCommandUnknown(s.commands, args)
	}

	return nil
}

func (s *Shell) executeCommand(rl prompter, cmd cmdDef, args []string) error {
	ctx := log.WithOrigin(context.Background(), "shell")
	ctx = log.WithCommand(ctx, strings.Join(args, " "))

	cmdCtx := cmdContext{
		Context: ctx,
		Shell:   s,
		rl:      rl,
	}

	if err := cmd.action(&cmdCtx); err != nil {
		return err
	}

	if len(cmdCtx.infoLines) > 0 {
		fmt.Println()

		for _, infoLine := range cmdCtx.infoLines {
			fmt.Print("  ")
			fmt.Println(infoLine)
		}

		fmt.Println()
	}

	return nil
}

func printCommandUnknown(cmds cmdSlice, args []string) {
	fmt.Printf("\n  Unknown command %q\n", strings.Join(args, " "))
	printCommandUsage(cmds)
}

func printCommandHelp(cmd cmdDef) {
	fmt.Printf("\n  %s\n", cmd.help)
	printCommandUsage(cmd.children)
}

func printCommandUsage(cmds cmdSlice) {
	if len(cmds) > 0 {
		fmt.Println()
		fmt.Println("Commands:")

		for _, cmd := range cmds {
			fmt.Printf("  %-10s  %s\n", cmd.name, cmd.help)
		}
	}

	fmt.Println()
}
