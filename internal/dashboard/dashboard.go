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

package dashboard

import (
	"context"

	"github.com/lukasdietrich/baitmail/internal/database"
	"github.com/lukasdietrich/baitmail/internal/log"
	"github.com/lukasdietrich/baitmail/internal/models"
	"github.com/lukasdietrich/baitmail/internal/roster"
	"github.com/lukasdietrich/baitmail/internal/tracking"
)

// Overview is everything a user sees on their dashboard.
type Overview struct {
	User    *models.UserEntity
	Score   models.Score
	Results []database.ResultDetails
	Samples []models.SampleEmailEntity
}

// Dashboard is the self service of a single user.
type Dashboard interface {
	// Overview collects results, score and sample emails of a user.
	Overview(ctx context.Context, user *models.UserEntity) (*Overview, error)
	// CompleteTraining marks the training of one of the user's own results as completed. It
	// reports whether such a result exists.
	CompleteTraining(ctx context.Context, user *models.UserEntity, resultID int64) (bool, error)
}

type dashboard struct {
	roster  roster.Roster
	tracker tracking.Tracker
}

// NewDashboard creates a new Dashboard.
func NewDashboard(roster roster.Roster, tracker tracking.Tracker) Dashboard {
	return &dashboard{
		roster:  roster,
		tracker: tracker,
	}
}

func (d *dashboard) Overview(ctx context.Context, user *models.UserEntity) (*Overview, error) {
	results, err := d.tracker.UserResults(ctx, user)
	if err != nil {
		return nil, err
	}

	samples, err := d.roster.ListSamples(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &Overview{
		User:    user,
		Score:   tracking.ScoreOf(results),
		Results: results,
		Samples: samples,
	}, nil
}

func (d *dashboard) CompleteTraining(
	ctx context.Context,
	user *models.UserEntity,
	resultID int64,
) (bool, error) {
	ctx = log.WithUser(ctx, user.ID)

	results, err := d.tracker.UserResults(ctx, user)
	if err != nil {
		return false, err
	}

	for _, result := range results {
		if result.ID == resultID {
			return d.tracker.RecordTrainingComplete(ctx, resultID)
		}
	}

	log.WarnContext(ctx).
		Int64("result", resultID).
		Msg("training completion for a foreign or unknown result")

	return false, nil
}
