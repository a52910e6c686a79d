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
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/lukasdietrich/baitmail/internal/log"
	"github.com/lukasdietrich/baitmail/internal/storage"
)

var (
	// ErrUnsupportedFile is returned for files that are neither mails nor plain text.
	ErrUnsupportedFile = errors.New("unsupported file type")
	// ErrFileTooLarge is returned for files exceeding the configured size limit.
	ErrFileTooLarge = errors.New("file too large")
)

var supportedExtensions = map[string]bool{
	".eml": true,
	".txt": true,
	".msg": true,
}

// Sample is the subject and plain text body extracted from an uploaded file.
type Sample struct {
	Subject string
	Body    string
}

// Parser extracts samples from uploaded files.
type Parser interface {
	// Parse reads a whole file. Files ending in .eml are parsed as RFC 5322 messages. Other
	// supported files, and messages that cannot be parsed, use the filename as subject and the
	// content as body. Invalid UTF-8 is replaced, never rejected.
	Parse(ctx context.Context, filename string, r io.Reader) (*Sample, error)
}

type parser struct {
	cache   storage.Cache
	maxSize int64
}

// NewParser creates a new Parser buffering uploads in cache.
func NewParser(cache storage.Cache, opts Options) Parser {
	return &parser{
		cache:   cache,
		maxSize: opts.MaxSize,
	}
}

// IsSupported reports whether filename has an accepted extension.
func IsSupported(filename string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

func (p *parser) Parse(ctx context.Context, filename string, r io.Reader) (*Sample, error) {
	if !IsSupported(filename) {
		return nil, ErrUnsupportedFile
	}

	entry, err := p.cache.Write(ctx, io.LimitReader(r, p.maxSize+1))
	if err != nil {
		return nil, err
	}

	defer func() {
		if err := entry.Release(ctx); err != nil {
			log.WarnContext(ctx).Err(err).Msg("could not release cached upload")
		}
	}()

	if entry.Size() > p.maxSize {
		return nil, ErrFileTooLarge
	}

	if strings.EqualFold(filepath.Ext(filename), ".eml") {
		sample, err := p.parseMessage(entry)
		if err == nil {
			return sample, nil
		}

		log.DebugContext(ctx).
			Str("filename", filename).
			Err(err).
			Msg("could not parse message, storing raw content")
	}

	return p.parseRaw(filename, entry)
}

func (p *parser) parseMessage(entry storage.CacheEntry) (*Sample, error) {
	r, err := entry.Reader()
	if err != nil {
		return nil, err
	}

	return parseMessage(r)
}

func (p *parser) parseRaw(filename string, entry storage.CacheEntry) (*Sample, error) {
	r, err := entry.Reader()
	if err != nil {
		return nil, err
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return &Sample{
		Subject: filepath.Base(filename),
		Body:    strings.ToValidUTF8(string(content), "\uFFFD"),
	}, nil
}
