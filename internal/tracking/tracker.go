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

package tracking

import (
	"context"
	"errors"

	"github.com/lukasdietrich/baitmail/internal/database"
	"github.com/lukasdietrich/baitmail/internal/log"
	"github.com/lukasdietrich/baitmail/internal/models"
)

var (
	// ErrUnknownToken is returned when a tracking token does not belong to any campaign result.
	ErrUnknownToken = errors.New("unknown tracking token")
)

// Tracker records recipient behaviour and aggregates it.
type Tracker interface {
	// RecordClick marks a result as clicked. Recording a click twice is harmless. It reports
	// whether the result exists.
	RecordClick(context.Context, int64) (bool, error)
	// RecordTrainingComplete marks the training of a result as completed. It reports whether the
	// result exists.
	RecordTrainingComplete(context.Context, int64) (bool, error)
	// Click resolves a tracking token and records the click.
	Click(context.Context, string) (*database.ResultDetails, error)
	// Stats returns the totals over all campaigns.
	Stats(context.Context) (*models.Stats, error)
	// CampaignResults returns the results of a campaign, most recent first.
	CampaignResults(context.Context, int64) ([]database.ResultDetails, error)
	// UserResults returns the results of a user, most recent first.
	UserResults(context.Context, *models.UserEntity) ([]database.ResultDetails, error)
}

type tracker struct {
	db        database.Conn
	resultDao database.ResultDao
	statsDao  database.StatsDao
}

// NewTracker creates a new Tracker.
func NewTracker(db database.Conn, resultDao database.ResultDao, statsDao database.StatsDao) Tracker {
	return &tracker{
		db:        db,
		resultDao: resultDao,
		statsDao:  statsDao,
	}
}

func (t *tracker) RecordClick(ctx context.Context, resultID int64) (bool, error) {
	ok, err := t.resultDao.MarkClicked(ctx, t.db, resultID)
	if err != nil {
		return false, err
	}

	if !ok {
		log.DebugContext(ctx).Int64("result", resultID).Msg("click for unknown result")
	}

	return ok, nil
}

func (t *tracker) RecordTrainingComplete(ctx context.Context, resultID int64) (bool, error) {
	ok, err := t.resultDao.MarkTrainingCompleted(ctx, t.db, resultID)
	if err != nil {
		return false, err
	}

	if !ok {
		log.DebugContext(ctx).Int64("result", resultID).Msg("training completion for unknown result")
	}

	return ok, nil
}

func (t *tracker) Click(ctx context.Context, token string) (*database.ResultDetails, error) {
	result, err := t.resultDao.FindByToken(ctx, t.db, token)
	if err != nil {
		if database.IsErrNoRows(err) {
			log.WarnContext(ctx).Msg("click with unknown tracking token")
			return nil, ErrUnknownToken
		}

		return nil, err
	}

	ctx = log.WithCampaign(log.WithUser(ctx, result.UserID), result.CampaignID)

	if _, err := t.RecordClick(ctx, result.ID); err != nil {
		return nil, err
	}

	details, err := t.resultDao.FindDetails(ctx, t.db, result.ID)
	if err != nil {
		return nil, err
	}

	log.InfoContext(ctx).Int64("result", result.ID).Msg("recorded click")

	return details, nil
}

func (t *tracker) Stats(ctx context.Context) (*models.Stats, error) {
	counts, err := t.statsDao.Count(ctx, t.db)
	if err != nil {
		return nil, err
	}

	stats := models.NewStats(*counts)
	return &stats, nil
}

func (t *tracker) CampaignResults(ctx context.Context, campaignID int64) ([]database.ResultDetails, error) {
	return t.resultDao.FindByCampaign(ctx, t.db, campaignID)
}

func (t *tracker) UserResults(ctx context.Context, user *models.UserEntity) ([]database.ResultDetails, error) {
	return t.resultDao.FindByUser(ctx, t.db, user)
}

// ScoreOf summarizes the results of a single user.
func ScoreOf(results []database.ResultDetails) models.Score {
	entities := make([]models.CampaignResultEntity, len(results))
	for i, result := range results {
		entities[i] = result.CampaignResultEntity
	}

	return models.NewScore(entities)
}
