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

package roster

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/lukasdietrich/baitmail/internal/database"
	"github.com/lukasdietrich/baitmail/internal/ingest"
	"github.com/lukasdietrich/baitmail/internal/log"
	"github.com/lukasdietrich/baitmail/internal/models"
)

var (
	// ErrDuplicateUser is returned when a user with the same address already exists.
	ErrDuplicateUser = errors.New("user already exists")
	// ErrUnknownUser is returned when samples are added to a user that does not exist.
	ErrUnknownUser = errors.New("user not found")
	// ErrEmptySample is returned for samples without a body.
	ErrEmptySample = errors.New("sample email requires a body")
	// ErrInvalidCampaign is returned for campaigns without name or template.
	ErrInvalidCampaign = errors.New("campaign requires a name and a template")
)

// CampaignPatch is a partial update of a campaign. Nil fields are left unchanged.
type CampaignPatch struct {
	Name          *string               `json:"name"`
	TemplateText  *string               `json:"templateText"`
	TrainingLinks *models.TrainingLinks `json:"trainingLinks"`
}

// IsEmpty reports whether the patch changes nothing.
func (p CampaignPatch) IsEmpty() bool {
	return p.Name == nil && p.TemplateText == nil && p.TrainingLinks == nil
}

func (p CampaignPatch) apply(campaign *models.CampaignEntity) {
	if p.Name != nil {
		campaign.Name = strings.TrimSpace(*p.Name)
	}

	if p.TemplateText != nil {
		campaign.TemplateText = *p.TemplateText
	}

	if p.TrainingLinks != nil {
		campaign.TrainingLinks = *p.TrainingLinks
	}
}

// Roster manages users, their sample emails and campaigns.
type Roster interface {
	// AddUser creates a user. The address is normalized first.
	AddUser(ctx context.Context, email string) (*models.UserEntity, error)
	// DeleteUser deletes a user together with sample emails and campaign results. It reports
	// whether the user existed.
	DeleteUser(ctx context.Context, id int64) (bool, error)
	// FindUser returns the user or nil.
	FindUser(ctx context.Context, id int64) (*models.UserEntity, error)
	// FindUserByEmail returns the user or nil.
	FindUserByEmail(ctx context.Context, email string) (*models.UserEntity, error)
	// ListUsers returns all users, newest first.
	ListUsers(ctx context.Context) ([]models.UserEntity, error)

	// AddSample stores a manually entered sample email.
	AddSample(ctx context.Context, userID int64, subject, body string) (*models.SampleEmailEntity, error)
	// ImportSample parses an uploaded file and stores it as sample email.
	ImportSample(ctx context.Context, userID int64, filename string, r io.Reader) (*models.SampleEmailEntity, error)
	// ListSamples returns all sample emails of a user, newest first.
	ListSamples(ctx context.Context, userID int64) ([]models.SampleEmailEntity, error)

	// CreateCampaign creates a campaign.
	CreateCampaign(ctx context.Context, name, template string, links models.TrainingLinks) (*models.CampaignEntity, error)
	// UpdateCampaign applies a patch. It reports whether anything was updated.
	UpdateCampaign(ctx context.Context, id int64, patch CampaignPatch) (bool, error)
	// DeleteCampaign deletes a campaign, but keeps its results. It reports whether the campaign
	// existed.
	DeleteCampaign(ctx context.Context, id int64) (bool, error)
	// FindCampaign returns the campaign or nil.
	FindCampaign(ctx context.Context, id int64) (*models.CampaignEntity, error)
	// ListCampaigns returns all campaigns, newest first.
	ListCampaigns(ctx context.Context) ([]models.CampaignEntity, error)
}

type roster struct {
	db          database.Conn
	userDao     database.UserDao
	sampleDao   database.SampleEmailDao
	campaignDao database.CampaignDao
	resultDao   database.ResultDao
	parser      ingest.Parser
	now         func() time.Time
}

// NewRoster creates a new Roster.
func NewRoster(
	db database.Conn,
	userDao database.UserDao,
	sampleDao database.SampleEmailDao,
	campaignDao database.CampaignDao,
	resultDao database.ResultDao,
	parser ingest.Parser,
) Roster {
	return &roster{
		db:          db,
		userDao:     userDao,
		sampleDao:   sampleDao,
		campaignDao: campaignDao,
		resultDao:   resultDao,
		parser:      parser,
		now:         time.Now,
	}
}

func (r *roster) AddUser(ctx context.Context, email string) (*models.UserEntity, error) {
	addr, err := models.ParseIdentity(email)
	if err != nil {
		return nil, err
	}

	user := models.UserEntity{
		Email:     addr,
		CreatedAt: r.now().Unix(),
	}

	if err := r.userDao.Insert(ctx, r.db, &user); err != nil {
		if database.IsErrUnique(err) {
			return nil, ErrDuplicateUser
		}

		return nil, err
	}

	log.InfoContext(log.WithUser(ctx, user.ID)).
		Stringer("email", user.Email).
		Msg("added user")

	return &user, nil
}

func (r *roster) DeleteUser(ctx context.Context, id int64) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, err
	}

	defer tx.Rollback()

	user, err := r.userDao.FindByID(ctx, tx, id)
	if err != nil {
		if database.IsErrNoRows(err) {
			return false, nil
		}

		return false, err
	}

	if err := r.sampleDao.DeleteByUser(ctx, tx, user); err != nil {
		return false, err
	}

	if err := r.resultDao.DeleteByUser(ctx, tx, user); err != nil {
		return false, err
	}

	if err := r.userDao.Delete(ctx, tx, user); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}

	log.InfoContext(log.WithUser(ctx, id)).Msg("deleted user")
	return true, nil
}

func (r *roster) FindUser(ctx context.Context, id int64) (*models.UserEntity, error) {
	return nilIfMissing(r.userDao.FindByID(ctx, r.db, id))
}

func (r *roster) FindUserByEmail(ctx context.Context, email string) (*models.UserEntity, error) {
	addr, err := models.ParseIdentity(email)
	if err != nil {
		return nil, err
	}

	return nilIfMissing(r.userDao.FindByEmail(ctx, r.db, addr))
}

func (r *roster) ListUsers(ctx context.Context) ([]models.UserEntity, error) {
	return r.userDao.FindAll(ctx, r.db)
}

func (r *roster) AddSample(
	ctx context.Context,
	userID int64,
	subject, body string,
) (*models.SampleEmailEntity, error) {
	if strings.TrimSpace(body) == "" {
		return nil, ErrEmptySample
	}

	if strings.TrimSpace(subject) == "" {
		subject = "No Subject"
	}

	return r.insertSample(ctx, userID, subject, body)
}

func (r *roster) ImportSample(
	ctx context.Context,
	userID int64,
	filename string,
	content io.Reader,
) (*models.SampleEmailEntity, error) {
	if _, err := r.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	sample, err := r.parser.Parse(ctx, filename, content)
	if err != nil {
		return nil, err
	}

	return r.insertSample(ctx, userID, sample.Subject, sample.Body)
}

func (r *roster) insertSample(
	ctx context.Context,
	userID int64,
	subject, body string,
) (*models.SampleEmailEntity, error) {
	sample := models.SampleEmailEntity{
		UserID:     userID,
		Subject:    subject,
		Body:       body,
		UploadedAt: r.now().Unix(),
	}

	if err := r.sampleDao.Insert(ctx, r.db, &sample); err != nil {
		if database.IsErrForeignKey(err) {
			return nil, ErrUnknownUser
		}

		return nil, err
	}

	log.InfoContext(log.WithUser(ctx, userID)).
		Str("subject", subject).
		Msg("added sample email")

	return &sample, nil
}

func (r *roster) ListSamples(ctx context.Context, userID int64) ([]models.SampleEmailEntity, error) {
	user, err := r.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return r.sampleDao.FindByUser(ctx, r.db, user)
}

func (r *roster) requireUser(ctx context.Context, userID int64) (*models.UserEntity, error) {
	user, err := r.userDao.FindByID(ctx, r.db, userID)
	if err != nil {
		if database.IsErrNoRows(err) {
			return nil, ErrUnknownUser
		}

		return nil, err
	}

	return user, nil
}

func (r *roster) CreateCampaign(
	ctx context.Context,
	name, template string,
	links models.TrainingLinks,
) (*models.CampaignEntity, error) {
	if links == nil {
		links = models.TrainingLinks{}
	}

	campaign := models.CampaignEntity{
		Name:          strings.TrimSpace(name),
		TemplateText:  template,
		TrainingLinks: links,
		CreatedAt:     r.now().Unix(),
	}

	if err := validateCampaign(&campaign); err != nil {
		return nil, err
	}

	if err := r.campaignDao.Insert(ctx, r.db, &campaign); err != nil {
		return nil, err
	}

	log.InfoContext(log.WithCampaign(ctx, campaign.ID)).
		Str("name", campaign.Name).
		Msg("created campaign")

	return &campaign, nil
}

func (r *roster) UpdateCampaign(ctx context.Context, id int64, patch CampaignPatch) (bool, error) {
	if patch.IsEmpty() {
		return false, nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, err
	}

	defer tx.Rollback()

	campaign, err := r.campaignDao.FindByID(ctx, tx, id)
	if err != nil {
		if database.IsErrNoRows(err) {
			return false, nil
		}

		return false, err
	}

	patch.apply(campaign)

	if err := validateCampaign(campaign); err != nil {
		return false, err
	}

	if err := r.campaignDao.Update(ctx, tx, campaign); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}

	log.InfoContext(log.WithCampaign(ctx, id)).Msg("updated campaign")
	return true, nil
}

func (r *roster) DeleteCampaign(ctx context.Context, id int64) (bool, error) {
	err := r.campaignDao.Delete(ctx, r.db, &models.CampaignEntity{ID: id})
	if err != nil {
		if database.IsErrNoRows(err) {
			return false, nil
		}

		return false, err
	}

	log.InfoContext(log.WithCampaign(ctx, id)).Msg("deleted campaign, results are kept")
	return true, nil
}

func (r *roster) FindCampaign(ctx context.Context, id int64) (*models.CampaignEntity, error) {
	return nilIfMissing(r.campaignDao.FindByID(ctx, r.db, id))
}

func (r *roster) ListCampaigns(ctx context.Context) ([]models.CampaignEntity, error) {
	return r.campaignDao.FindAll(ctx, r.db)
}

func validateCampaign(campaign *models.CampaignEntity) error {
	if campaign.Name == "" || strings.TrimSpace(campaign.TemplateText) == "" {
		return ErrInvalidCampaign
	}

	if campaign.TrainingLinks == nil {
		campaign.TrainingLinks = models.TrainingLinks{}
	}

	return nil
}

func nilIfMissing[T any](entity *T, err error) (*T, error) {
	if err != nil {
		if database.IsErrNoRows(err) {
			return nil, nil
		}

		return nil, err
	}

	return entity, nil
}
