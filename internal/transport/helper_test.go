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

package transport

import (
	"net"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeSession records what a client sent during one smtp session.
type fakeSession struct {
	helo string
	auth string
	from string
	to   string
	data string
}

// fakeServer is a minimal smtp server accepting a single session.
type fakeServer struct {
	listener  net.Listener
	authReply string
	rcptReply string
	sessions  chan fakeSession
}

func startFakeServer(t *testing.T) *fakeServer {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	server := &fakeServer{
		listener:  listener,
		authReply: "235 2.7.0 Authentication successful",
		rcptReply: "250 2.1.5 Ok",
		sessions:  make(chan fakeSession, 1),
	}

	t.Cleanup(func() { listener.Close() })
	return server
}

func (f *fakeServer) hostPort() (string, string) {
	host, port, _ := net.SplitHostPort(f.listener.Addr().String())
	return host, port
}

func (f *fakeServer) serve() {
	conn, err := f.listener.Accept()
	if err != nil {
		return
	}

	defer conn.Close()

	var (
		tp      = textproto.NewConn(conn)
		session fakeSession
	)

	defer func() { f.sessions <- session }()

	_ = tp.PrintfLine("220 localhost ESMTP fake")

	for {
		line, err := tp.ReadLine()
		if err != nil {
			return
		}

		verb, arg, _ := strings.Cut(line, " ")

		switch strings.ToUpper(verb) {
		case "EHLO":
			session.helo = arg
			_ = tp.PrintfLine("250-localhost")
			_ = tp.PrintfLine("250-AUTH PLAIN")
			_ = tp.PrintfLine("250 8BITMIME")

		case "AUTH":
			session.auth = arg
			_ = tp.PrintfLine(f.authReply)

		case "*":
			_ = tp.PrintfLine("501 5.7.0 Authentication aborted")

		case "MAIL":
			session.from = arg
			_ = tp.PrintfLine("250 2.1.0 Ok")

		case "RCPT":
			session.to = arg
			_ = tp.PrintfLine(f.rcptReply)

		case "DATA":
			_ = tp.PrintfLine("354 End data with <CR><LF>.<CR><LF>")

			data, err := tp.ReadDotBytes()
			if err != nil {
				return
			}

			session.data = string(data)
			_ = tp.PrintfLine("250 2.0.0 Ok: queued")

		case "QUIT":
			_ = tp.PrintfLine("221 2.0.0 Bye")
			return

		default:
			_ = tp.PrintfLine("502 5.5.2 Error: command not recognized")
		}
	}
}
