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
	"mime"
	"net/http"

	"github.com/lukasdietrich/baitmail/internal/dashboard"
	"github.com/lukasdietrich/baitmail/internal/ingest"
	"github.com/lukasdietrich/baitmail/internal/models"
	"github.com/lukasdietrich/baitmail/internal/roster"
)

const multipartMemory = 1 << 20

type loginBody struct {
	Email string `json:"email"`
}

type overviewBody struct {
	User    *models.UserEntity         `json:"user"`
	Score   models.Score               `json:"score"`
	Results []resultView               `json:"results"`
	Samples []models.SampleEmailEntity `json:"samples"`
}

// authenticate logs the user in or writes an error response.
func (a *api) authenticate(w http.ResponseWriter, r *http.Request, email string) (*models.UserEntity, bool) {
	user, err := a.Authenticator.Login(r.Context(), email)
	if err != nil {
		if errors.Is(err, dashboard.ErrUnknownUser) {
			writeError(w, r, http.StatusUnauthorized, err)
			return nil, false
		}

		writeError(w, r, http.StatusInternalServerError, err)
		return nil, false
	}

	return user, true
}

func (a *api) login(w http.ResponseWriter, r *http.Request) {
	var body loginBody
	if !decodeJSON(w, r, &body) {
		return
	}

	user, ok := a.authenticate(w, r, body.Email)
	if !ok {
		return
	}

	overview, err := a.Dashboard.Overview(r.Context(), user)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	samples := overview.Samples
	if samples == nil {
		samples = []models.SampleEmailEntity{}
	}

	writeJSON(w, r, http.StatusOK, overviewBody{
		User:    overview.User,
		Score:   overview.Score,
		Results: newResultViews(overview.Results),
		Samples: samples,
	})
}

func (a *api) completeTraining(w http.ResponseWriter, r *http.Request) {
	resultID, ok := idParam(w, r)
	if !ok {
		return
	}

	var body loginBody
	if !decodeJSON(w, r, &body) {
		return
	}

	user, ok := a.authenticate(w, r, body.Email)
	if !ok {
		return
	}

	completed, err := a.Dashboard.CompleteTraining(r.Context(), user, resultID)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	if !completed {
		writeError(w, r, http.StatusNotFound, errors.New("result not found"))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type sampleBody struct {
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type uploadBody struct {
	Samples []models.SampleEmailEntity `json:"samples"`
	Errors  []string                   `json:"errors"`
}

// uploadSamples accepts either a json encoded manual sample or a multipart form with an "email"
// field and any number of "files".
func (a *api) uploadSamples(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.uploadLimit)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		a.uploadSampleFiles(w, r)
		return
	}

	var body sampleBody
	if !decodeJSON(w, r, &body) {
		return
	}

	user, ok := a.authenticate(w, r, body.Email)
	if !ok {
		return
	}

	sample, err := a.Roster.AddSample(r.Context(), user.ID, body.Subject, body.Body)
	if err != nil {
		writeSampleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, sample)
}

func (a *api) uploadSampleFiles(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	defer r.MultipartForm.RemoveAll()

	user, ok := a.authenticate(w, r, r.FormValue("email"))
	if !ok {
		return
	}

	body := uploadBody{
		Samples: []models.SampleEmailEntity{},
		Errors:  []string{},
	}

	for _, header := range r.MultipartForm.File["files"] {
		file, err := header.Open()
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err)
			return
		}

		sample, err := a.Roster.ImportSample(r.Context(), user.ID, header.Filename, file)
		file.Close()

		if err != nil {
			if !isSampleError(err) {
				writeError(w, r, http.StatusInternalServerError, err)
				return
			}

			body.Errors = append(body.Errors, header.Filename+": "+err.Error())
			continue
		}

		body.Samples = append(body.Samples, *sample)
	}

	writeJSON(w, r, http.StatusCreated, body)
}

func isSampleError(err error) bool {
	return errors.Is(err, ingest.ErrUnsupportedFile) ||
		errors.Is(err, ingest.ErrFileTooLarge) ||
		errors.Is(err, roster.ErrEmptySample)
}

func writeSampleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, roster.ErrUnknownUser):
		writeError(w, r, http.StatusNotFound, err)
	case isSampleError(err):
		writeError(w, r, http.StatusBadRequest, err)
	default:
		writeError(w, r, http.StatusInternalServerError, err)
	}
}
