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

// Package dbtest opens throwaway in-memory databases for tests of packages depending on the store.
package dbtest

import (
	"context"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/lukasdietrich/baitmail/internal/database"
)

// Open opens a new in-memory database with all changesets applied. The connection is closed when
// the test finishes.
func Open(t testing.TB) database.Conn {
	t.Helper()

	viper.Set("storage.database.filename", ":memory:")
	viper.Set("storage.database.journalmode", "memory")

	conn, err := database.OpenConnection()
	require.NoError(t, err)

	t.Cleanup(func() {
		conn.Close()
	})

	return conn
}

// Exec runs one or more statements and fails the test on error.
func Exec(t testing.TB, conn database.Conn, query string, args ...any) {
	t.Helper()

	_, err := conn.ExecContext(context.Background(), query, args...)
	require.NoError(t, err)
}

// Count returns the number of rows in table.
func Count(t testing.TB, conn database.Conn, table string) int {
	t.Helper()

	var count int
	err := conn.QueryRowxContext(context.Background(), `select count(*) from "`+table+`" ;`).Scan(&count)
	require.NoError(t, err)

	return count
}
