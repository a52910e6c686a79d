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
	"database/sql"

	"github.com/lukasdietrich/baitmail/internal/models"
)

// ResultDetails is a campaign result joined with the recipient address and the campaign. The
// campaign columns are null, if the campaign has been deleted since.
type ResultDetails struct {
	models.CampaignResultEntity
	Email         models.Address       `db:"email"`
	CampaignName  sql.NullString       `db:"campaign_name"`
	TrainingLinks models.TrainingLinks `db:"training_links"`
}

// ResultDao is a data access object for all campaign result related queries.
type ResultDao interface {
	// Insert inserts a new result.
	Insert(context.Context, Queryer, *models.CampaignResultEntity) error
	// MarkClicked sets the clicked flag. It reports whether a row was affected.
	MarkClicked(context.Context, Queryer, int64) (bool, error)
	// MarkTrainingCompleted sets the training flag. It reports whether a row was affected.
	MarkTrainingCompleted(context.Context, Queryer, int64) (bool, error)
	// DeleteByUser deletes all results of a user.
	DeleteByUser(context.Context, Queryer, *models.UserEntity) error
	// FindByToken returns the result with the given tracking token.
	FindByToken(context.Context, Queryer, string) (*models.CampaignResultEntity, error)
	// FindDetails returns a single result with details.
	FindDetails(context.Context, Queryer, int64) (*ResultDetails, error)
	// FindByCampaign returns all results of a campaign, most recent first.
	FindByCampaign(context.Context, Queryer, int64) ([]ResultDetails, error)
	// FindByUser returns all results of a user, most recent first.
	FindByUser(context.Context, Queryer, *models.UserEntity) ([]ResultDetails, error)
}

type resultDao struct{}

// NewResultDao creates a new ResultDao.
func NewResultDao() ResultDao {
	return resultDao{}
}

const selectResultDetails = `
	select "campaign_results".* ,
	       "users"."email" as "email" ,
	       "campaigns"."name" as "campaign_name" ,
	       "campaigns"."training_links" as "training_links"
	from "campaign_results"
		inner join "users" on "users"."id" = "campaign_results"."user_id"
		left join "campaigns" on "campaigns"."id" = "campaign_results"."campaign_id"
`

func (resultDao) Insert(ctx context.Context, q Queryer, result *models.CampaignResultEntity) error {
	const query = `
		insert into "campaign_results" (
			"campaign_id" ,
			"user_id" ,
			"tracking_token" ,
			"sent_at" ,
			"clicked" ,
			"completed_training"
		) values (
			:campaign_id ,
			:user_id ,
			:tracking_token ,
			:sent_at ,
			:clicked ,
			:completed_training
		) ;
	`

	sqlResult, err := execNamed(ctx, q, query, result)
	if err != nil {
		return err
	}

	if err := ensureRowsAffected(sqlResult); err != nil {
		return err
	}

	result.ID, err = sqlResult.LastInsertId()
	return err
}

func (resultDao) MarkClicked(ctx context.Context, q Queryer, id int64) (bool, error) {
	const query = `
		update "campaign_results"
		set "clicked" = 1
		where "id" = $1 ;
	`

	result, err := execPositional(ctx, q, query, id)
	if err != nil {
		return false, err
	}

	return anyRowsAffected(result)
}

func (resultDao) MarkTrainingCompleted(ctx context.Context, q Queryer, id int64) (bool, error) {
	const query = `
		update "campaign_results"
		set "completed_training" = 1
		where "id" = $1 ;
	`

	result, err := execPositional(ctx, q, query, id)
	if err != nil {
		return false, err
	}

	return anyRowsAffected(result)
}

func (resultDao) DeleteByUser(ctx context.Context, q Queryer, user *models.UserEntity) error {
	const query = `
		delete from "campaign_results"
		where "user_id" = $1 ;
	`

	_, err := execPositional(ctx, q, query, user.ID)
	return err
}

func (resultDao) FindByToken(
	ctx context.Context,
	q Queryer,
	token string,
) (*models.CampaignResultEntity, error) {
	const query = `
		select *
		from "campaign_results"
		where "tracking_token" = $1
		limit 1 ;
	`

	var result models.CampaignResultEntity

	if err := selectOne(ctx, q, &result, query, token); err != nil {
		return nil, err
	}

	return &result, nil
}

func (resultDao) FindDetails(ctx context.Context, q Queryer, id int64) (*ResultDetails, error) {
	const query = selectResultDetails + `
		where "campaign_results"."id" = $1
		limit 1 ;
	`

	var details ResultDetails

	if err := selectOne(ctx, q, &details, query, id); err != nil {
		return nil, err
	}

	return &details, nil
}

func (resultDao) FindByCampaign(ctx context.Context, q Queryer, campaignID int64) ([]ResultDetails, error) {
	const query = selectResultDetails + `
		where "campaign_results"."campaign_id" = $1
		order by "campaign_results"."sent_at" desc , "campaign_results"."id" desc ;
	`

	var detailsSlice []ResultDetails

	if err := selectSlice(ctx, q, &detailsSlice, query, campaignID); err != nil {
		return nil, err
	}

	return detailsSlice, nil
}

func (resultDao) FindByUser(
	ctx context.Context,
	q Queryer,
	user *models.UserEntity,
) ([]ResultDetails, error) {
	const query = selectResultDetails + `
		where "campaign_results"."user_id" = $1
		order by "campaign_results"."sent_at" desc , "campaign_results"."id" desc ;
	`

	var detailsSlice []ResultDetails

	if err := selectSlice(ctx, q, &detailsSlice, query, user.ID); err != nil {
		return nil, err
	}

	return detailsSlice, nil
}
