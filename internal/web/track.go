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

	"github.com/lukasdietrich/baitmail/internal/database"
	"github.com/lukasdietrich/baitmail/internal/models"
	"github.com/lukasdietrich/baitmail/internal/tracking"
)

const phishedNotice = "You've been phished! This was a simulated phishing email sent as part of a " +
	"security awareness training. No harm was done. Please review the training resources below."

type resultView struct {
	models.CampaignResultEntity
	Email         models.Address       `json:"email"`
	CampaignName  *string              `json:"campaignName"`
	TrainingLinks models.TrainingLinks `json:"trainingLinks"`
}

func newResultView(details *database.ResultDetails) resultView {
	view := resultView{
		CampaignResultEntity: details.CampaignResultEntity,
		Email:                details.Email,
		TrainingLinks:        details.TrainingLinks,
	}

	if view.TrainingLinks == nil {
		view.TrainingLinks = models.TrainingLinks{}
	}

	if details.CampaignName.Valid {
		view.CampaignName = &details.CampaignName.String
	}

	return view
}

func newResultViews(details []database.ResultDetails) []resultView {
	views := make([]resultView, len(details))
	for i := range details {
		views[i] = newResultView(&details[i])
	}

	return views
}

type landingBody struct {
	Notice        string               `json:"notice"`
	ResultID      int64                `json:"resultId"`
	CampaignName  *string              `json:"campaignName"`
	TrainingLinks models.TrainingLinks `json:"trainingLinks"`
}

func (a *api) track(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get(a.trackParameter)
	if token == "" {
		writeError(w, r, http.StatusNotFound, tracking.ErrUnknownToken)
		return
	}

	details, err := a.Tracker.Click(r.Context(), token)
	if err != nil {
		if errors.Is(err, tracking.ErrUnknownToken) {
			writeError(w, r, http.StatusNotFound, err)
			return
		}

		writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	view := newResultView(details)

	writeJSON(w, r, http.StatusOK, landingBody{
		Notice:        phishedNotice,
		ResultID:      view.ID,
		CampaignName:  view.CampaignName,
		TrainingLinks: view.TrainingLinks,
	})
}
