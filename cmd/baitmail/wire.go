//go:build wireinject
// +build wireinject

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
	"github.com/google/wire"

	"github.com/lukasdietrich/baitmail/internal/campaigns"
	"github.com/lukasdietrich/baitmail/internal/crypto"
	"github.com/lukasdietrich/baitmail/internal/dashboard"
	"github.com/lukasdietrich/baitmail/internal/database"
	"github.com/lukasdietrich/baitmail/internal/generator"
	"github.com/lukasdietrich/baitmail/internal/ingest"
	"github.com/lukasdietrich/baitmail/internal/roster"
	"github.com/lukasdietrich/baitmail/internal/shell"
	"github.com/lukasdietrich/baitmail/internal/storage"
	"github.com/lukasdietrich/baitmail/internal/tracking"
	"github.com/lukasdietrich/baitmail/internal/transport"
	"github.com/lukasdietrich/baitmail/internal/web"
)

var serviceSet = wire.NewSet(
	database.WireSet,
	crypto.WireSet,
	storage.WireSet,
	ingest.WireSet,
	generator.WireSet,
	transport.WireSet,
	campaigns.WireSet,
	tracking.WireSet,
	roster.WireSet,
)

func newStartCommand() (*startCommand, error) {
	panic(wire.Build(
		wire.Struct(new(startCommand), "*"),
		serviceSet,
		dashboard.WireSet,
		web.WireSet,
	))
}

func newShellCommand() (*shellCommand, error) {
	panic(wire.Build(
		wire.Struct(new(shellCommand), "*"),
		serviceSet,
		shell.WireSet,
	))
}
