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
	"strings"
)

const (
	defaultDisplayName = "Security Team"
	defaultSubject     = "Important Account Notice"

	tagDisplayName = "DISPLAY_NAME:"
	tagSubject     = "SUBJECT:"
	tagBody        = "BODY:"
)

// ParseMessage extracts a Message from tagged text of the form
//
//	DISPLAY_NAME: <sender display name>
//	SUBJECT: <subject line>
//	BODY:
//	<body lines...>
//
// Tags are matched case-insensitively at the start of a trimmed line. The body is the rest of the
// BODY line followed by every subsequent line. Missing parts fall back to defaults, so parsing never
// fails.
func ParseMessage(raw string) Message {
	message := Message{
		DisplayName: defaultDisplayName,
		Subject:     defaultSubject,
	}

	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		if value, ok := cutTag(trimmed, tagDisplayName); ok {
			if value != "" {
				message.DisplayName = value
			}

			continue
		}

		if value, ok := cutTag(trimmed, tagSubject); ok {
			if value != "" {
				message.Subject = value
			}

			continue
		}

		if value, ok := cutTag(trimmed, tagBody); ok {
			bodyLines := append([]string{value}, lines[i+1:]...)
			message.Body = strings.TrimSpace(strings.Join(bodyLines, "\n"))
			break
		}
	}

	return message
}

func cutTag(line, tag string) (string, bool) {
	if len(line) < len(tag) || !strings.EqualFold(line[:len(tag)], tag) {
		return "", false
	}

	return strings.TrimSpace(line[len(tag):]), true
}
