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

package web

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/lukasdietrich/baitmail/internal/log"
)

const readHeaderTimeout = 10 * time.Second

// Server serves the http api until its context is cancelled.
type Server struct {
	opts    Options
	handler http.Handler
}

// NewServer creates a new Server. It has to be started explicitly afterwards.
func NewServer(opts Options, handler http.Handler) *Server {
	return &Server{
		opts:    opts,
		handler: handler,
	}
}

// ListenAndServe binds the configured address and serves requests until ctx is done. In-flight
// requests get the configured shutdown timeout to finish.
func (s *Server) ListenAndServe(ctx context.Context) error {
	l, err := net.Listen("tcp", s.opts.Address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, l)
}

// Serve serves requests on l until ctx is done.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	server := http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return log.WithOrigin(context.Background(), "http")
		},
	}

	errc := make(chan error, 1)

	go func() {
		log.Info().
			Str("address", l.Addr().String()).
			Msg("http server listening")

		errc <- server.Serve(l)
	}()

	select {
	case err := <-errc:
		return err

	case <-ctx.Done():
		log.Info().Msg("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}

		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	}
}
