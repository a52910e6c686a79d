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

// SampleEmailDao is a data access object for all sample email related queries.
type SampleEmailDao interface {
	// Insert inserts a new sample email.
	Insert(context.Context, Queryer, *models.SampleEmailEntity) error
	// DeleteByUser deletes all sample emails of a user.
	DeleteByUser(context.Context, Queryer, *models.UserEntity) error
	// FindByUser returns all sample emails of a user, most recent first.
	FindByUser(context.Context, Queryer, *models.UserEntity) ([]models.SampleEmailEntity, error)
	// FindLatestByUser returns at most limit sample emails of a user, most recent first.
	FindLatestByUser(context.Context, Queryer, *models.UserEntity, int) ([]models.SampleEmailEntity, error)
}

type sampleEmailDao struct{}

// NewSampleEmailDao creates a new SampleEmailDao.
func NewSampleEmailDao() SampleEmailDao {
	return sampleEmailDao{}
}

func (sampleEmailDao) Insert(ctx context.Context, q Queryer, sample *models.SampleEmailEntity) error {
	const query = `
		insert into "sample_emails" (
			"user_id" ,
			"subject" ,
			"body" ,
			"uploaded_at"
		) values (
			:user_id ,
			:subject ,
			:body ,
			:uploaded_at
		) ;
	`

	result, err := execNamed(ctx, q, query, sample)
	if err != nil {
		return err
	}

	if err := ensureRowsAffected(result); err != nil {
		return err
	}

	sample.ID, err = result.LastInsertId()
	return err
}

func (sampleEmailDao) DeleteByUser(ctx context.Context, q Queryer, user *models.UserEntity) error {
	const query = `
		delete from "sample_emails"
		where "user_id" = $1 ;
	`

	_, err := execPositional(ctx, q, query, user.ID)
	return err
}

func (d sampleEmailDao) FindByUser(
	ctx context.Context,
	q Queryer,
	user *models.UserEntity,
) ([]models.SampleEmailEntity, error) {
	return d.FindLatestByUser(ctx, q, user, -1)
}

func (sampleEmailDao) FindLatestByUser(
	ctx context.Context,
	q Queryer,
	user *models.UserEntity,
	limit int,
) ([]models.SampleEmailEntity, error) {
	// a negative limit is unlimited in sqlite
	const query = `
		select *
		from "sample_emails"
		where "user_id" = $1
		order by "uploaded_at" desc , "id" desc
		limit $2 ;
	`

	var sampleSlice []models.SampleEmailEntity

	if err := selectSlice(ctx, q, &sampleSlice, query, user.ID, limit); err != nil {
		return nil, err
	}

	return sampleSlice, nil
}
