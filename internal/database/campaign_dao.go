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

// CampaignDao is a data access object for all campaign related queries.
type CampaignDao interface {
	// Insert inserts a new campaign.
	Insert(context.Context, Queryer, *models.CampaignEntity) error
	// Update overwrites name, template and training links of an existing campaign.
	Update(context.Context, Queryer, *models.CampaignEntity) error
	// Delete deletes an existing campaign. Results referencing the campaign are kept.
	Delete(context.Context, Queryer, *models.CampaignEntity) error
	// FindAll returns all campaigns, newest first.
	FindAll(context.Context, Queryer) ([]models.CampaignEntity, error)
	// FindByID returns the campaign with the given id.
	FindByID(context.Context, Queryer, int64) (*models.CampaignEntity, error)
}

type campaignDao struct{}

// NewCampaignDao creates a new CampaignDao.
func NewCampaignDao() CampaignDao {
	return campaignDao{}
}

func (campaignDao) Insert(ctx context.Context, q Queryer, campaign *models.CampaignEntity) error {
	const query = `
		insert into "campaigns" (
			"name" ,
			"template_text" ,
			"training_links" ,
			"created_at"
		) values (
			:name ,
			:template_text ,
			:training_links ,
			:created_at
		) ;
	`

	result, err := execNamed(ctx, q, query, campaign)
	if err != nil {
		return err
	}

	if err := ensureRowsAffected(result); err != nil {
		return err
	}

	campaign.ID, err = result.LastInsertId()
	return err
}

func (campaignDao) Update(ctx context.Context, q Queryer, campaign *models.CampaignEntity) error {
	const query = `
		update "campaigns"
		set "name" = :name ,
		    "template_text" = :template_text ,
		    "training_links" = :training_links
		where "id" = :id ;
	`

	result, err := execNamed(ctx, q, query, campaign)
	if err != nil {
		return err
	}

	return ensureRowsAffected(result)
}

func (campaignDao) Delete(ctx context.Context, q Queryer, campaign *models.CampaignEntity) error {
	const query = `
		delete from "campaigns"
		where "id" = :id ;
	`

	result, err := execNamed(ctx, q, query, campaign)
	if err != nil {
		return err
	}

	return ensureRowsAffected(result)
}

func (campaignDao) FindAll(ctx context.Context, q Queryer) ([]models.CampaignEntity, error) {
	const query = `
		select *
		from "campaigns"
		order by "created_at" desc , "id" desc ;
	`

	var campaignSlice []models.CampaignEntity

	if err := selectSlice(ctx, q, &campaignSlice, query); err != nil {
		return nil, err
	}

	return campaignSlice, nil
}

func (campaignDao) FindByID(ctx context.Context, q Queryer, id int64) (*models.CampaignEntity, error) {
	const query = `
		select *
		from "campaigns"
		where "id" = $1
		limit 1 ;
	`

	var campaign models.CampaignEntity

	if err := selectOne(ctx, q, &campaign, query, id); err != nil {
		return nil, err
	}

	return &campaign, nil
}
