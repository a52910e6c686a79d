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

package campaigns

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lukasdietrich/baitmail/internal/crypto"
	"github.com/lukasdietrich/baitmail/internal/database"
	"github.com/lukasdietrich/baitmail/internal/generator"
	"github.com/lukasdietrich/baitmail/internal/log"
	"github.com/lukasdietrich/baitmail/internal/models"
	"github.com/lukasdietrich/baitmail/internal/transport"
)

var errNoSender = errors.New("no sender address configured")

// Outcome is the summary of a dispatch. SuccessCount + FailureCount always equals the number of
// recipients.
type Outcome struct {
	SuccessCount int      `json:"successCount"`
	FailureCount int      `json:"failureCount"`
	Errors       []string `json:"errors"`
}

func (o *Outcome) succeed() {
	o.SuccessCount++
}

func (o *Outcome) fail(err error) {
	o.FailureCount++
	o.Errors = append(o.Errors, err.Error())
}

// failAll marks every recipient as failed with a single error.
func failAll(recipientIDs []int64, err error) Outcome {
	return Outcome{
		FailureCount: len(recipientIDs),
		Errors:       []string{err.Error()},
	}
}

// Dispatcher sends personalized campaign mails.
type Dispatcher interface {
	// Dispatch generates and sends one mail per recipient, strictly in order. Failures are
	// isolated per recipient and reported in the Outcome, never returned. A zero from address
	// falls back to the configured default sender.
	Dispatch(ctx context.Context, campaignID int64, recipientIDs []int64, from models.Address) Outcome
}

type dispatcher struct {
	db          database.Conn
	userDao     database.UserDao
	sampleDao   database.SampleEmailDao
	campaignDao database.CampaignDao
	resultDao   database.ResultDao
	tokenGen    crypto.TokenGenerator
	generator   generator.Generator
	sender      transport.Sender
	opts        Options
	now         func() time.Time
}

// NewDispatcher creates a new Dispatcher.
func NewDispatcher(
	db database.Conn,
	userDao database.UserDao,
	sampleDao database.SampleEmailDao,
	campaignDao database.CampaignDao,
	resultDao database.ResultDao,
	tokenGen crypto.TokenGenerator,
	generator generator.Generator,
	sender transport.Sender,
	opts Options,
) Dispatcher {
	return &dispatcher{
		db:          db,
		userDao:     userDao,
		sampleDao:   sampleDao,
		campaignDao: campaignDao,
		resultDao:   resultDao,
		tokenGen:    tokenGen,
		generator:   generator,
		sender:      sender,
		opts:        opts,
		now:         time.Now,
	}
}

func (d *dispatcher) Dispatch(
	ctx context.Context,
	campaignID int64,
	recipientIDs []int64,
	from models.Address,
) Outcome {
	ctx = log.WithCampaign(ctx, campaignID)

	campaign, err := d.campaignDao.FindByID(ctx, d.db, campaignID)
	if err != nil {
		if database.IsErrNoRows(err) {
			err = fmt.Errorf("Campaign %d not found", campaignID)
		} else {
			err = fmt.Errorf("Campaign %d could not be loaded: %w", campaignID, err)
		}

		log.WarnContext(ctx).Err(err).Msg("cannot dispatch campaign")
		return failAll(recipientIDs, err)
	}

	if err := d.ready(); err != nil {
		log.WarnContext(ctx).Err(err).Msg("cannot dispatch campaign")
		return failAll(recipientIDs, err)
	}

	from, err = d.resolveSender(from)
	if err != nil {
		return failAll(recipientIDs, err)
	}

	log.InfoContext(ctx).
		Str("name", campaign.Name).
		Int("recipients", len(recipientIDs)).
		Msg("dispatching campaign")

	var outcome Outcome

	for _, userID := range recipientIDs {
		userCtx := log.WithUser(ctx, userID)

		if err := d.dispatchTo(userCtx, campaign, userID, from); err != nil {
			log.WarnContext(userCtx).Err(err).Msg("dispatch to recipient failed")
			outcome.fail(err)
			continue
		}

		log.InfoContext(userCtx).Msg("dispatched to recipient")
		outcome.succeed()
	}

	log.InfoContext(ctx).
		Int("success", outcome.SuccessCount).
		Int("failure", outcome.FailureCount).
		Msg("campaign dispatch completed")

	return outcome
}

func (d *dispatcher) ready() error {
	if err := d.generator.Ready(); err != nil {
		return err
	}

	return d.sender.Ready()
}

func (d *dispatcher) resolveSender(from models.Address) (models.Address, error) {
	if !from.IsZero() {
		return from, nil
	}

	if d.opts.DefaultFrom == "" {
		return models.ZeroAddress, errNoSender
	}

	from, err := models.Parse(d.opts.DefaultFrom)
	if err != nil {
		return models.ZeroAddress, fmt.Errorf("invalid sender address %q: %w", d.opts.DefaultFrom, err)
	}

	return from, nil
}

// dispatchTo handles a single recipient. The result row is created before anything is generated,
// so every attempt that gets this far is recorded, even if generation or sending fails.
func (d *dispatcher) dispatchTo(
	ctx context.Context,
	campaign *models.CampaignEntity,
	userID int64,
	from models.Address,
) error {
	user, err := d.userDao.FindByID(ctx, d.db, userID)
	if err != nil {
		if database.IsErrNoRows(err) {
			return fmt.Errorf("User %d not found", userID)
		}

		return fmt.Errorf("User %d could not be loaded: %w", userID, err)
	}

	if err := d.send(ctx, campaign, user, from); err != nil {
		return fmt.Errorf("Failed to send to %s: %w", user.Email, err)
	}

	return nil
}

func (d *dispatcher) send(
	ctx context.Context,
	campaign *models.CampaignEntity,
	user *models.UserEntity,
	from models.Address,
) error {
	token, err := d.tokenGen.GenerateToken()
	if err != nil {
		return err
	}

	result := models.CampaignResultEntity{
		CampaignID:    campaign.ID,
		UserID:        user.ID,
		TrackingToken: token,
		SentAt:        d.now().Unix(),
	}

	if err := d.resultDao.Insert(ctx, d.db, &result); err != nil {
		return err
	}

	link := d.opts.TrackingLink(result.TrackingToken)

	samples, err := d.sampleDao.FindLatestByUser(ctx, d.db, user, sampleLimit)
	if err != nil {
		return err
	}

	prompt := buildPrompt(campaign, user.Email, samples, link)

	message, err := d.generator.Generate(ctx, prompt)
	if err != nil {
		return err
	}

	return d.sender.Send(ctx, &transport.Message{
		From:        from,
		DisplayName: message.DisplayName,
		To:          user.Email,
		Subject:     message.Subject,
		Body:        ensureTrackingLink(message.Body, link),
	})
}
