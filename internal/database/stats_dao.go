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

package database

import (
	"context"

	"github.com/lukasdietrich/baitmail/internal/models"
)

// StatsDao aggregates totals over all tables.
type StatsDao interface {
	// Count returns the totals of users, campaigns, sent mails, clicks and completed trainings.
	Count(context.Context, Queryer) (*models.Counts, error)
}

type statsDao struct{}

// NewStatsDao creates a new StatsDao.
func NewStatsDao() StatsDao {
	return statsDao{}
}

func (statsDao) Count(ctx context.Context, q Queryer) (*models.Counts, error) {
	const query = `
		select
			( select count(*) from "users" ) as "total_users" ,
			( select count(*) from "campaigns" ) as "total_campaigns" ,
			( select count(*) from "campaign_results" ) as "total_sent" ,
			( select count(*) from "campaign_results" where "clicked" = 1 ) as "total_clicks" ,
			( select count(*) from "campaign_results" where "completed_training" = 1 ) as "total_completed" ;
	`

	var counts models.Counts

	if err := selectOne(ctx, q, &counts, query); err != nil {
		return nil, err
	}

	return &counts, nil
}
