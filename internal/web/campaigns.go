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
	"net/http"

	"github.com/lukasdietrich/baitmail/internal/models"
	"github.com/lukasdietrich/baitmail/internal/roster"
)

var (
	errUnknownCampaign = errors.New("campaign not found")
	errNoRecipients    = errors.New("no recipients given")
)

type createCampaignBody struct {
	Name          string               `json:"name"`
	TemplateText  string               `json:"templateText"`
	TrainingLinks models.TrainingLinks `json:"trainingLinks"`
}

func (a *api) listCampaigns(w http.ResponseWriter, r *http.Request) {
	campaignSlice, err := a.Roster.ListCampaigns(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	if campaignSlice == nil {
		campaignSlice = []models.CampaignEntity{}
	}

	writeJSON(w, r, http.StatusOK, campaignSlice)
}

func (a *api) createCampaign(w http.ResponseWriter, r *http.Request) {
	var body createCampaignBody
	if !decodeJSON(w, r, &body) {
		return
	}

	campaign, err := a.Roster.CreateCampaign(r.Context(), body.Name, body.TemplateText, body.TrainingLinks)
	if err != nil {
		writeCampaignError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, campaign)
}

func (a *api) getCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	campaign, err := a.Roster.FindCampaign(r.Context(), id)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	if campaign == nil {
		writeError(w, r, http.StatusNotFound, errUnknownCampaign)
		return
	}

	writeJSON(w, r, http.StatusOK, campaign)
}

func (a *api) updateCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var patch roster.CampaignPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	updated, err := a.Roster.UpdateCampaign(r.Context(), id, patch)
	if err != nil {
		writeCampaignError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, struct {
		Updated bool `json:"updated"`
	}{updated})
}

func (a *api) deleteCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	deleted, err := a.Roster.DeleteCampaign(r.Context(), id)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	if !deleted {
		writeError(w, r, http.StatusNotFound, errUnknownCampaign)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type dispatchBody struct {
	Recipients []int64 `json:"recipients"`
	All        bool    `json:"all"`
	From       string  `json:"from"`
}

// dispatch runs synchronously. Per recipient failures are part of the outcome, so the response
// is 200 even if nothing could be sent.
func (a *api) dispatch(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var body dispatchBody
	if !decodeJSON(w, r, &body) {
		return
	}

	from := models.ZeroAddress
	if body.From != "" {
		var err error
		if from, err = models.Parse(body.From); err != nil {
			writeError(w, r, http.StatusBadRequest, err)
			return
		}
	}

	recipients := body.Recipients
	if body.All {
		users, err := a.Roster.ListUsers(r.Context())
		if err != nil {
			writeError(w, r, http.StatusInternalServerError, err)
			return
		}

		recipients = make([]int64, len(users))
		for i, user := range users {
			recipients[i] = user.ID
		}
	}

	if len(recipients) == 0 {
		writeError(w, r, http.StatusBadRequest, errNoRecipients)
		return
	}

	// A started dispatch runs to the end, even if the client goes away.
	outcome := a.Dispatcher.Dispatch(context.WithoutCancel(r.Context()), id, recipients, from)
	if outcome.Errors == nil {
		outcome.Errors = []string{}
	}

	writeJSON(w, r, http.StatusOK, outcome)
}

func (a *api) campaignResults(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	results, err := a.Tracker.CampaignResults(r.Context(), id)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, r, http.StatusOK, newResultViews(results))
}

func writeCampaignError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, roster.ErrInvalidCampaign) {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	writeError(w, r, http.StatusInternalServerError, err)
}
