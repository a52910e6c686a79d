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
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lukasdietrich/baitmail/internal/campaigns"
	"github.com/lukasdietrich/baitmail/internal/dashboard"
	"github.com/lukasdietrich/baitmail/internal/generator"
	"github.com/lukasdietrich/baitmail/internal/roster"
	"github.com/lukasdietrich/baitmail/internal/tracking"
	"github.com/lukasdietrich/baitmail/internal/transport"
)

const defaultTrackPath = "/track"

// Services are the application services exposed over http.
type Services struct {
	Roster        roster.Roster
	Tracker       tracking.Tracker
	Dispatcher    campaigns.Dispatcher
	Authenticator dashboard.Authenticator
	Dashboard     dashboard.Dashboard
	Generator     generator.Generator
	Sender        transport.Sender
}

type api struct {
	Services

	trackParameter string
	uploadLimit    int64
}

// NewRouter creates the http handler of all routes. The tracking route is mounted at the path of
// the configured tracking base url.
func NewRouter(services Services, trackingOpts campaigns.Options, opts Options) http.Handler {
	a := api{
		Services:       services,
		trackParameter: trackingOpts.TrackingParameter,
		uploadLimit:    opts.UploadLimit,
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get(trackPath(trackingOpts.TrackingBaseURL), a.track)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", a.health)
		r.Get("/stats", a.stats)

		r.Route("/dashboard", func(r chi.Router) {
			r.Post("/login", a.login)
			r.Post("/results/{id}/training", a.completeTraining)
			r.Post("/samples", a.uploadSamples)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", a.listUsers)
			r.Post("/", a.addUser)
			r.Delete("/{id}", a.deleteUser)
			r.Get("/{id}/samples", a.listSamples)
			r.Post("/{id}/samples", a.addSample)
		})

		r.Route("/campaigns", func(r chi.Router) {
			r.Get("/", a.listCampaigns)
			r.Post("/", a.createCampaign)
			r.Get("/{id}", a.getCampaign)
			r.Patch("/{id}", a.updateCampaign)
			r.Delete("/{id}", a.deleteCampaign)
			r.Post("/{id}/dispatch", a.dispatch)
			r.Get("/{id}/results", a.campaignResults)
		})
	})

	return r
}

func trackPath(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Path == "" {
		return defaultTrackPath
	}

	return u.Path
}

type healthBody struct {
	Generator string `json:"generator"`
	Transport string `json:"transport"`
}

func readiness(err error) string {
	if err != nil {
		return err.Error()
	}

	return "ready"
}

func (a *api) health(w http.ResponseWriter, r *http.Request) {
	generatorErr := a.Generator.Ready()
	senderErr := a.Sender.Ready()

	status := http.StatusOK
	if generatorErr != nil || senderErr != nil {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, r, status, healthBody{
		Generator: readiness(generatorErr),
		Transport: readiness(senderErr),
	})
}

func (a *api) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.Tracker.Stats(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, r, http.StatusOK, stats)
}
