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
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

const (
	defaultSubject = "No Subject"
	maxDepth       = 8
)

var errNoTextBody = errors.New("message has no text/plain body")

var wordDecoder = mime.WordDecoder{
	CharsetReader: charsetReader,
}

func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, fmt.Errorf("charset %q: %w", charset, err)
	}

	return enc.NewDecoder().Reader(input), nil
}

// parseMessage extracts the decoded subject and the first text/plain part of a message.
func parseMessage(r io.Reader) (*Sample, error) {
	msg, err := mail.ReadMessage(r)
	if err != nil {
		return nil, err
	}

	subject, err := wordDecoder.DecodeHeader(msg.Header.Get("Subject"))
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(subject) == "" {
		subject = defaultSubject
	}

	body, err := textBody(
		msg.Header.Get("Content-Type"),
		msg.Header.Get("Content-Transfer-Encoding"),
		msg.Body,
		0)
	if err != nil {
		return nil, err
	}

	return &Sample{Subject: subject, Body: body}, nil
}

func textBody(contentType, transferEncoding string, r io.Reader, depth int) (string, error) {
	if depth > maxDepth {
		return "", errNoTextBody
	}

	mediaType := "text/plain"
	params := map[string]string{}

	if contentType != "" {
		var err error
		if mediaType, params, err = mime.ParseMediaType(contentType); err != nil {
			return "", err
		}
	}

	switch {
	case strings.HasPrefix(mediaType, "multipart/"):
		return multipartTextBody(params["boundary"], r, depth)

	case mediaType == "text/plain":
		return decodeText(transferEncoding, params["charset"], r)

	default:
		return "", errNoTextBody
	}
}

func multipartTextBody(boundary string, r io.Reader, depth int) (string, error) {
	if boundary == "" {
		return "", errors.New("multipart message without boundary")
	}

	mr := multipart.NewReader(r, boundary)

	for {
		part, err := mr.NextRawPart()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", errNoTextBody
			}

			return "", err
		}

		if part.FileName() != "" {
			continue
		}

		body, err := textBody(
			part.Header.Get("Content-Type"),
			part.Header.Get("Content-Transfer-Encoding"),
			part,
			depth+1)
		if errors.Is(err, errNoTextBody) {
			continue
		}

		return body, err
	}
}

func decodeText(transferEncoding, charset string, r io.Reader) (string, error) {
	switch strings.ToLower(strings.TrimSpace(transferEncoding)) {
	case "quoted-printable":
		r = quotedprintable.NewReader(r)
	case "base64":
		r = base64.NewDecoder(base64.StdEncoding, r)
	}

	switch strings.ToLower(charset) {
	case "", "utf-8", "utf8", "us-ascii":
	default:
		var err error
		if r, err = charsetReader(charset, r); err != nil {
			return "", err
		}
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	return strings.ToValidUTF8(text, "\uFFFD"), nil
}
