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

package shell

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/lukasdietrich/baitmail/internal/models"
	"github.com/lukasdietrich/baitmail/internal/roster"
	"github.com/lukasdietrich/baitmail/internal/tracking"
)

var (
	errNoUsers     = errors.New("there are no users")
	errNoCampaigns = errors.New("there are no campaigns")
	errNotDeleted  = errors.New("deletion aborted")
)

// finder selects entries from a list of n labeled items.
type finder struct {
	one   func(n int, label func(int) string) (int, error)
	multi func(n int, label func(int) string) ([]int, error)
}

var fuzzyFinder = finder{
	one: func(n int, label func(int) string) (int, error) {
		return fuzzyfinder.Find(make([]struct{}, n), label)
	},
	multi: func(n int, label func(int) string) ([]int, error) {
		return fuzzyfinder.FindMulti(make([]struct{}, n), label)
	},
}

func addUser(ctx *cmdContext) error {
	email, err := ctx.ask("Email address: ")
	if err != nil {
		return err
	}

	user, err := ctx.roster.AddUser(ctx, email)
	if err != nil {
		return fmt.Errorf("could not add user %q: %w", email, err)
	}

	ctx.info("User %q added with id=%d.", user.Email, user.ID)
	return nil
}

func deleteUser(ctx *cmdContext) error {
	user, err := selectOneUser(ctx)
	if err != nil {
		return err
	}

	if err := confirm(ctx, user.Email.String()); err != nil {
		return err
	}

	if _, err := ctx.roster.DeleteUser(ctx, user.ID); err != nil {
		return fmt.Errorf("could not delete user %q: %w", user.Email, err)
	}

	ctx.info("User %q deleted with all samples and results.", user.Email)
	return nil
}

func infoUser(ctx *cmdContext) error {
	user, err := selectOneUser(ctx)
	if err != nil {
		return err
	}

	samples, err := ctx.roster.ListSamples(ctx, user.ID)
	if err != nil {
		return err
	}

	results, err := ctx.tracker.UserResults(ctx, user)
	if err != nil {
		return err
	}

	score := tracking.ScoreOf(results)

	ctx.info("ID:      %d", user.ID)
	ctx.info("Email:   %s", user.Email)
	ctx.info("Created: %s", formatTime(user.CreatedAt))
	ctx.info("Score:   %.2f%% passed (%d sent, %d clicked, %d trained)",
		score.PassRate, score.TotalSent, score.TotalClicked, score.TrainingCompleted)
	ctx.info("")
	ctx.info("(%d) Samples", len(samples))

	for _, sample := range samples {
		ctx.info("  %s  %q", formatTime(sample.UploadedAt), sample.Subject)
	}

	ctx.info("")
	ctx.info("(%d) Results", len(results))

	for _, result := range results {
		ctx.info("  %s  %-20s  clicked=%v trained=%v",
			formatTime(result.SentAt),
			campaignName(result.CampaignName.String, result.CampaignName.Valid),
			result.Clicked,
			result.CompletedTraining)
	}

	return nil
}

func importSample(ctx *cmdContext) error {
	user, err := selectOneUser(ctx)
	if err != nil {
		return err
	}

	filename, err := ctx.ask("File: ")
	if err != nil {
		return err
	}

	file, err := ctx.fs.Open(filename)
	if err != nil {
		return err
	}

	defer file.Close()

	sample, err := ctx.roster.ImportSample(ctx, user.ID, filepath.Base(filename), file)
	if err != nil {
		return fmt.Errorf("could not import %q: %w", filename, err)
	}

	ctx.info("Sample %q added to user %q.", sample.Subject, user.Email)
	return nil
}

func addCampaign(ctx *cmdContext) error {
	name, err := ctx.ask("Name: ")
	if err != nil {
		return err
	}

	template, err := ctx.ask("Template: ")
	if err != nil {
		return err
	}

	links, err := ctx.askOptional("Training links (comma separated): ", "")
	if err != nil {
		return err
	}

	campaign, err := ctx.roster.CreateCampaign(ctx, name, template, models.ParseTrainingLinks(links))
	if err != nil {
		return fmt.Errorf("could not add campaign %q: %w", name, err)
	}

	ctx.info("Campaign %q added with id=%d.", campaign.Name, campaign.ID)
	return nil
}

func editCampaign(ctx *cmdContext) error {
	campaign, err := selectOneCampaign(ctx)
	if err != nil {
		return err
	}

	name, err := ctx.askWithDefault("Name: ", campaign.Name)
	if err != nil {
		return err
	}

	template, err := ctx.askWithDefault("Template: ", campaign.TemplateText)
	if err != nil {
		return err
	}

	rawLinks, err := ctx.askOptional("Training links (comma separated): ",
		strings.Join(campaign.TrainingLinks, ", "))
	if err != nil {
		return err
	}

	links := models.ParseTrainingLinks(rawLinks)

	updated, err := ctx.roster.UpdateCampaign(ctx, campaign.ID, patchOf(campaign, name, template, links))
	if err != nil {
		return fmt.Errorf("could not edit campaign %q: %w", campaign.Name, err)
	}

	if updated {
		ctx.info("Campaign %q updated.", name)
	} else {
		ctx.info("Campaign %q unchanged.", campaign.Name)
	}

	return nil
}

func deleteCampaign(ctx *cmdContext) error {
	campaign, err := selectOneCampaign(ctx)
	if err != nil {
		return err
	}

	if err := confirm(ctx, campaign.Name); err != nil {
		return err
	}

	if _, err := ctx.roster.DeleteCampaign(ctx, campaign.ID); err != nil {
		return fmt.Errorf("could not delete campaign %q: %w", campaign.Name, err)
	}

	ctx.info("Campaign %q deleted. Its results are kept.", campaign.Name)
	return nil
}

func infoCampaign(ctx *cmdContext) error {
	campaign, err := selectOneCampaign(ctx)
	if err != nil {
		return err
	}

	ctx.info("ID:       %d", campaign.ID)
	ctx.info("Name:     %q", campaign.Name)
	ctx.info("Created:  %s", formatTime(campaign.CreatedAt))
	ctx.info("Template: %s", campaign.TemplateText)
	ctx.info("")
	ctx.info("(%d) Training links", len(campaign.TrainingLinks))

	for i, link := range campaign.TrainingLinks {
		ctx.info("  %d. %s", i+1, link)
	}

	return nil
}

func sendCampaign(ctx *cmdContext) error {
	campaign, err := selectOneCampaign(ctx)
	if err != nil {
		return err
	}

	users, err := selectMultipleUsers(ctx)
	if err != nil {
		return err
	}

	rawFrom, err := ctx.askOptional("Sender address (empty for default): ", "")
	if err != nil {
		return err
	}

	from := models.ZeroAddress
	if rawFrom != "" {
		if from, err = models.Parse(rawFrom); err != nil {
			return fmt.Errorf("invalid sender address %q: %w", rawFrom, err)
		}
	}

	recipients := make([]int64, len(users))
	for i, user := range users {
		recipients[i] = user.ID
	}

	outcome := ctx.dispatcher.Dispatch(ctx, campaign.ID, recipients, from)

	ctx.info("Campaign %q sent: %d succeeded, %d failed.",
		campaign.Name, outcome.SuccessCount, outcome.FailureCount)

	for _, message := range outcome.Errors {
		ctx.info("  %s", message)
	}

	return nil
}

func campaignResults(ctx *cmdContext) error {
	campaign, err := selectOneCampaign(ctx)
	if err != nil {
		return err
	}

	results, err := ctx.tracker.CampaignResults(ctx, campaign.ID)
	if err != nil {
		return err
	}

	ctx.info("(%d) Results of %q", len(results), campaign.Name)

	for _, result := range results {
		ctx.info("  %s  %-30s  clicked=%v trained=%v",
			formatTime(result.SentAt),
			result.Email,
			result.Clicked,
			result.CompletedTraining)
	}

	return nil
}

func showStats(ctx *cmdContext) error {
	stats, err := ctx.tracker.Stats(ctx)
	if err != nil {
		return err
	}

	ctx.info("Users:      %d", stats.TotalUsers)
	ctx.info("Campaigns:  %d", stats.TotalCampaigns)
	ctx.info("Sent:       %d", stats.TotalSent)
	ctx.info("Clicked:    %d (%.2f%%)", stats.TotalClicks, stats.ClickRate)
	ctx.info("Trained:    %d (%.2f%%)", stats.TotalCompleted, stats.CompletionRate)
	return nil
}

func confirm(ctx *cmdContext, name string) error {
	answer, err := ctx.askOptional(fmt.Sprintf("Type %q to confirm: ", name), "")
	if err != nil {
		return err
	}

	if answer != name {
		return errNotDeleted
	}

	return nil
}

func patchOf(campaign *models.CampaignEntity, name, template string, links models.TrainingLinks) roster.CampaignPatch {
	var patch roster.CampaignPatch

	if name != campaign.Name {
		patch.Name = &name
	}

	if template != campaign.TemplateText {
		patch.TemplateText = &template
	}

	if strings.Join(links, "\n") != strings.Join(campaign.TrainingLinks, "\n") {
		patch.TrainingLinks = &links
	}

	return patch
}

func selectOneUser(ctx *cmdContext) (*models.UserEntity, error) {
	users, err := ctx.roster.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	if len(users) == 0 {
		return nil, errNoUsers
	}

	index, err := ctx.finder.one(len(users), mapUserSearch(users))
	if err != nil {
		return nil, err
	}

	return &users[index], nil
}

func selectMultipleUsers(ctx *cmdContext) ([]models.UserEntity, error) {
	users, err := ctx.roster.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	if len(users) == 0 {
		return nil, errNoUsers
	}

	indices, err := ctx.finder.multi(len(users), mapUserSearch(users))
	if err != nil {
		return nil, err
	}

	selectedUsers := make([]models.UserEntity, len(indices))
	for i, index := range indices {
		selectedUsers[i] = users[index]
	}

	return selectedUsers, nil
}

func selectOneCampaign(ctx *cmdContext) (*models.CampaignEntity, error) {
	campaignSlice, err := ctx.roster.ListCampaigns(ctx)
	if err != nil {
		return nil, err
	}

	if len(campaignSlice) == 0 {
		return nil, errNoCampaigns
	}

	index, err := ctx.finder.one(len(campaignSlice), mapCampaignSearch(campaignSlice))
	if err != nil {
		return nil, err
	}

	return &campaignSlice[index], nil
}

func mapUserSearch(users []models.UserEntity) func(int) string {
	return func(i int) string {
		return users[i].Email.String()
	}
}

func mapCampaignSearch(campaignSlice []models.CampaignEntity) func(int) string {
	return func(i int) string {
		return campaignSlice[i].Name
	}
}

func campaignName(name string, valid bool) string {
	if !valid {
		return "(deleted campaign)"
	}

	return name
}

func formatTime(unix int64) string {
	return time.Unix(unix, 0).Format("2006-01-02 15:04")
}
