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

// UserDao is a data access object for all user related queries.
type UserDao interface {
	// Insert inserts a new user. A duplicate email results in a unique constraint error.
	Insert(context.Context, Queryer, *models.UserEntity) error
	// Delete deletes an existing user. Dependent rows must be deleted beforehand.
	Delete(context.Context, Queryer, *models.UserEntity) error
	// FindAll returns all users, newest first.
	FindAll(context.Context, Queryer) ([]models.UserEntity, error)
	// FindByID returns the user with the given id.
	FindByID(context.Context, Queryer, int64) (*models.UserEntity, error)
	// FindByEmail returns the user with the given email address.
	FindByEmail(context.Context, Queryer, models.Address) (*models.UserEntity, error)
}

// userDao is the sqlite implementation of UserDao.
type userDao struct{}

// NewUserDao creates a new UserDao.
func NewUserDao() UserDao {
	return userDao{}
}

func (userDao) Insert(ctx context.Context, q Queryer, user *models.UserEntity) error {
	const query = `
		insert into "users" (
			"email" ,
			"created_at"
		) values (
			:email ,
			:created_at
		) ;
	`

	result, err := execNamed(ctx, q, query, user)
	if err != nil {
		return err
	}

	if err := ensureRowsAffected(result); err != nil {
		return err
	}

	user.ID, err = result.LastInsertId()
	return err
}

func (userDao) Delete(ctx context.Context, q Queryer, user *models.UserEntity) error {
	const query = `
		delete from "users"
		where "id" = :id ;
	`

	result, err := execNamed(ctx, q, query, user)
	if err != nil {
		return err
	}

	return ensureRowsAffected(result)
}

func (userDao) FindAll(ctx context.Context, q Queryer) ([]models.UserEntity, error) {
	const query = `
		select *
		from "users"
		order by "created_at" desc , "id" desc ;
	`

	var userSlice []models.UserEntity

	if err := selectSlice(ctx, q, &userSlice, query); err != nil {
		return nil, err
	}

	return userSlice, nil
}

func (userDao) FindByID(ctx context.Context, q Queryer, id int64) (*models.UserEntity, error) {
	const query = `
		select *
		from "users"
		where "id" = $1
		limit 1 ;
	`

	var user models.UserEntity

	if err := selectOne(ctx, q, &user, query, id); err != nil {
		return nil, err
	}

	return &user, nil
}

func (userDao) FindByEmail(
	ctx context.Context,
	q Queryer,
	email models.Address,
) (*models.UserEntity, error) {
	const query = `
		select *
		from "users"
		where "email" = $1
		limit 1 ;
	`

	var user models.UserEntity

	if err := selectOne(ctx, q, &user, query, email); err != nil {
		return nil, err
	}

	return &user, nil
}
