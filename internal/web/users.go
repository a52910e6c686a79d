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
	"errors"
	"net/http"

	"github.com/lukasdietrich/baitmail/internal/models"
	"github.com/lukasdietrich/baitmail/internal/roster"
)

type addUserBody struct {
	Email string `json:"email"`
}

func (a *api) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := a.Roster.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	if users == nil {
		users = []models.UserEntity{}
	}

	writeJSON(w, r, http.StatusOK, users)
}

func (a *api) addUser(w http.ResponseWriter, r *http.Request) {
	var body addUserBody
	if !decodeJSON(w, r, &body) {
		return
	}

	user, err := a.Roster.AddUser(r.Context(), body.Email)
	if err != nil {
		switch {
		case errors.Is(err, roster.ErrDuplicateUser):
			writeError(w, r, http.StatusConflict, err)
		case errors.Is(err, models.ErrInvalidAddressFormat), errors.Is(err, models.ErrPathTooLong):
			writeError(w, r, http.StatusBadRequest, err)
		default:
			writeError(w, r, http.StatusInternalServerError, err)
		}

		return
	}

	writeJSON(w, r, http.StatusCreated, user)
}

func (a *api) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	deleted, err := a.Roster.DeleteUser(r.Context(), id)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	if !deleted {
		writeError(w, r, http.StatusNotFound, roster.ErrUnknownUser)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *api) listSamples(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	samples, err := a.Roster.ListSamples(r.Context(), id)
	if err != nil {
		writeSampleError(w, r, err)
		return
	}

	if samples == nil {
		samples = []models.SampleEmailEntity{}
	}

	writeJSON(w, r, http.StatusOK, samples)
}

type addSampleBody struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (a *api) addSample(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var body addSampleBody
	if !decodeJSON(w, r, &body) {
		return
	}

	sample, err := a.Roster.AddSample(r.Context(), id, body.Subject, body.Body)
	if err != nil {
		writeSampleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, sample)
}
