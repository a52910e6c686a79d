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
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/suite"

	"github.com/lukasdietrich/baitmail/internal/crypto"
	"github.com/lukasdietrich/baitmail/internal/database"
	"github.com/lukasdietrich/baitmail/internal/database/dbtest"
	"github.com/lukasdietrich/baitmail/internal/ingest"
	"github.com/lukasdietrich/baitmail/internal/models"
	"github.com/lukasdietrich/baitmail/internal/storage"
)

func TestRosterTestSuite(t *testing.T) {
	suite.Run(t, new(RosterTestSuite))
}

type RosterTestSuite struct {
	suite.Suite

	ctx    context.Context
	conn   database.Conn
	roster *roster
}

func (s *RosterTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.conn = dbtest.Open(s.T())

	cache, err := storage.NewCache(afero.NewMemMapFs(), crypto.NewIDGenerator(), storage.CacheOptions{
		Foldername:  "cache",
		MemoryLimit: 1024,
	})
	s.Require().NoError(err)

	s.roster = NewRoster(
		s.conn,
		database.NewUserDao(),
		database.NewSampleEmailDao(),
		database.NewCampaignDao(),
		database.NewResultDao(),
		ingest.NewParser(cache, ingest.Options{MaxSize: 1 << 20}),
	).(*roster)

	s.roster.now = func() time.Time {
		return time.Unix(1600000000, 0)
	}
}

func (s *RosterTestSuite) count(table string) int {
	return dbtest.Count(s.T(), s.conn, table)
}

func (s *RosterTestSuite) TestAddUser() {
	user, err := s.roster.AddUser(s.ctx, "  Jane.Doe@Example.COM ")
	s.Require().NoError(err)

	s.Assert().NotZero(user.ID)
	s.Assert().Equal("jane.doe@example.com", user.Email.String())
	s.Assert().EqualValues(1600000000, user.CreatedAt)
}

func (s *RosterTestSuite) TestAddUserDuplicate() {
	_, err := s.roster.AddUser(s.ctx, "jane@example.com")
	s.Require().NoError(err)

	user, err := s.roster.AddUser(s.ctx, "JANE@example.com")
	s.Assert().Nil(user)
	s.Assert().ErrorIs(err, ErrDuplicateUser)
	s.Assert().Equal(1, s.count("users"))
}

func (s *RosterTestSuite) TestAddUserInvalid() {
	user, err := s.roster.AddUser(s.ctx, "not-an-address")
	s.Assert().Nil(user)
	s.Assert().ErrorIs(err, models.ErrInvalidAddressFormat)
	s.Assert().Equal(0, s.count("users"))
}

func (s *RosterTestSuite) TestFindUser() {
	added, err := s.roster.AddUser(s.ctx, "jane@example.com")
	s.Require().NoError(err)

	user, err := s.roster.FindUser(s.ctx, added.ID)
	s.Assert().NoError(err)
	s.Assert().Equal(added, user)

	user, err = s.roster.FindUserByEmail(s.ctx, "Jane@Example.com")
	s.Assert().NoError(err)
	s.Assert().Equal(added, user)

	user, err = s.roster.FindUser(s.ctx, 999)
	s.Assert().NoError(err)
	s.Assert().Nil(user)

	user, err = s.roster.FindUserByEmail(s.ctx, "john@example.com")
	s.Assert().NoError(err)
	s.Assert().Nil(user)
}

func (s *RosterTestSuite) TestListUsers() {
	first, err := s.roster.AddUser(s.ctx, "first@example.com")
	s.Require().NoError(err)
	second, err := s.roster.AddUser(s.ctx, "second@example.com")
	s.Require().NoError(err)

	users, err := s.roster.ListUsers(s.ctx)
	s.Require().NoError(err)
	s.Assert().Equal([]models.UserEntity{*second, *first}, users)
}

func (s *RosterTestSuite) TestDeleteUser() {
	dbtest.Exec(s.T(), s.conn,
		`
			insert into "users"
				( "id", "email", "created_at" )
			values
				( 1, 'jane@example.com', 1 ) ,
				( 2, 'john@example.com', 1 ) ;

			insert into "sample_emails"
				( "user_id", "subject", "body", "uploaded_at" )
			values
				( 1, 's', 'b', 1 ) ,
				( 2, 's', 'b', 1 ) ;

			insert into "campaign_results"
				( "campaign_id", "user_id", "tracking_token", "sent_at" )
			values
				( 10, 1, 'a', 1 ) ,
				( 10, 2, 'b', 1 ) ;
		`)

	ok, err := s.roster.DeleteUser(s.ctx, 1)
	s.Require().NoError(err)
	s.Assert().True(ok)

	s.Assert().Equal(1, s.count("users"))
	s.Assert().Equal(1, s.count("sample_emails"))
	s.Assert().Equal(1, s.count("campaign_results"))

	ok, err = s.roster.DeleteUser(s.ctx, 1)
	s.Assert().NoError(err)
	s.Assert().False(ok)
}

func (s *RosterTestSuite) TestAddSample() {
	user, err := s.roster.AddUser(s.ctx, "jane@example.com")
	s.Require().NoError(err)

	sample, err := s.roster.AddSample(s.ctx, user.ID, "", "Lunch today?")
	s.Require().NoError(err)
	s.Assert().Equal(&models.SampleEmailEntity{
		ID:         sample.ID,
		UserID:     user.ID,
		Subject:    "No Subject",
		Body:       "Lunch today?",
		UploadedAt: 1600000000,
	}, sample)

	_, err = s.roster.AddSample(s.ctx, user.ID, "Subject", "  ")
	s.Assert().ErrorIs(err, ErrEmptySample)

	_, err = s.roster.AddSample(s.ctx, 999, "Subject", "Body")
	s.Assert().ErrorIs(err, ErrUnknownUser)

	s.Assert().Equal(1, s.count("sample_emails"))
}

func (s *RosterTestSuite) TestImportSample() {
	user, err := s.roster.AddUser(s.ctx, "jane@example.com")
	s.Require().NoError(err)

	sample, err := s.roster.ImportSample(s.ctx, user.ID, "reset.eml",
		strings.NewReader("Subject: Password reset\r\n\r\nClick below."))
	s.Require().NoError(err)
	s.Assert().Equal("Password reset", sample.Subject)
	s.Assert().Equal("Click below.", sample.Body)

	sample, err = s.roster.ImportSample(s.ctx, user.ID, "broken.eml", strings.NewReader("garbage\xff"))
	s.Require().NoError(err)
	s.Assert().Equal("broken.eml", sample.Subject)
	s.Assert().Equal("garbage�", sample.Body)

	_, err = s.roster.ImportSample(s.ctx, user.ID, "photo.png", strings.NewReader(""))
	s.Assert().ErrorIs(err, ingest.ErrUnsupportedFile)

	_, err = s.roster.ImportSample(s.ctx, 999, "reset.eml", strings.NewReader(""))
	s.Assert().ErrorIs(err, ErrUnknownUser)

	samples, err := s.roster.ListSamples(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Assert().Len(samples, 2)
}

func (s *RosterTestSuite) TestListSamplesUnknownUser() {
	samples, err := s.roster.ListSamples(s.ctx, 999)
	s.Assert().Nil(samples)
	s.Assert().ErrorIs(err, ErrUnknownUser)
}

func (s *RosterTestSuite) TestCreateCampaign() {
	links := models.TrainingLinks{"https://b.example", "https://a.example"}

	campaign, err := s.roster.CreateCampaign(s.ctx, " Invoice ", "Pay {amount} now", links)
	s.Require().NoError(err)

	found, err := s.roster.FindCampaign(s.ctx, campaign.ID)
	s.Require().NoError(err)
	s.Assert().Equal(&models.CampaignEntity{
		ID:            campaign.ID,
		Name:          "Invoice",
		TemplateText:  "Pay {amount} now",
		TrainingLinks: links,
		CreatedAt:     1600000000,
	}, found)
}

func (s *RosterTestSuite) TestCreateCampaignWithoutLinks() {
	campaign, err := s.roster.CreateCampaign(s.ctx, "Invoice", "Pay now", nil)
	s.Require().NoError(err)

	found, err := s.roster.FindCampaign(s.ctx, campaign.ID)
	s.Require().NoError(err)
	s.Assert().Equal(models.TrainingLinks{}, found.TrainingLinks)
}

func (s *RosterTestSuite) TestCreateCampaignInvalid() {
	_, err := s.roster.CreateCampaign(s.ctx, "  ", "template", nil)
	s.Assert().ErrorIs(err, ErrInvalidCampaign)

	_, err = s.roster.CreateCampaign(s.ctx, "name", "", nil)
	s.Assert().ErrorIs(err, ErrInvalidCampaign)

	s.Assert().Equal(0, s.count("campaigns"))
}

func (s *RosterTestSuite) TestUpdateCampaign() {
	campaign, err := s.roster.CreateCampaign(s.ctx, "Invoice", "Pay now", models.TrainingLinks{"https://a.example"})
	s.Require().NoError(err)

	name := "Overdue invoice"
	ok, err := s.roster.UpdateCampaign(s.ctx, campaign.ID, CampaignPatch{Name: &name})
	s.Require().NoError(err)
	s.Assert().True(ok)

	found, err := s.roster.FindCampaign(s.ctx, campaign.ID)
	s.Require().NoError(err)
	s.Assert().Equal("Overdue invoice", found.Name)
	s.Assert().Equal("Pay now", found.TemplateText)
	s.Assert().Equal(models.TrainingLinks{"https://a.example"}, found.TrainingLinks)

	links := models.TrainingLinks{"https://c.example", "https://b.example"}
	ok, err = s.roster.UpdateCampaign(s.ctx, campaign.ID, CampaignPatch{TrainingLinks: &links})
	s.Require().NoError(err)
	s.Assert().True(ok)

	found, err = s.roster.FindCampaign(s.ctx, campaign.ID)
	s.Require().NoError(err)
	s.Assert().Equal(links, found.TrainingLinks)
}

func (s *RosterTestSuite) TestUpdateCampaignNoop() {
	campaign, err := s.roster.CreateCampaign(s.ctx, "Invoice", "Pay now", nil)
	s.Require().NoError(err)

	ok, err := s.roster.UpdateCampaign(s.ctx, campaign.ID, CampaignPatch{})
	s.Assert().NoError(err)
	s.Assert().False(ok)

	name := "Other"
	ok, err = s.roster.UpdateCampaign(s.ctx, 999, CampaignPatch{Name: &name})
	s.Assert().NoError(err)
	s.Assert().False(ok)

	empty := ""
	ok, err = s.roster.UpdateCampaign(s.ctx, campaign.ID, CampaignPatch{TemplateText: &empty})
	s.Assert().ErrorIs(err, ErrInvalidCampaign)
	s.Assert().False(ok)
}

func (s *RosterTestSuite) TestDeleteCampaignKeepsResults() {
	campaign, err := s.roster.CreateCampaign(s.ctx, "Invoice", "Pay now", nil)
	s.Require().NoError(err)
	user, err := s.roster.AddUser(s.ctx, "jane@example.com")
	s.Require().NoError(err)

	dbtest.Exec(s.T(), s.conn,
		`
			insert into "campaign_results"
				( "campaign_id", "user_id", "tracking_token", "sent_at" )
			values
				( $1, $2, 'token', 1 ) ;
		`,
		campaign.ID, user.ID)

	ok, err := s.roster.DeleteCampaign(s.ctx, campaign.ID)
	s.Require().NoError(err)
	s.Assert().True(ok)

	s.Assert().Equal(0, s.count("campaigns"))
	s.Assert().Equal(1, s.count("campaign_results"))

	ok, err = s.roster.DeleteCampaign(s.ctx, campaign.ID)
	s.Assert().NoError(err)
	s.Assert().False(ok)

	found, err := s.roster.FindCampaign(s.ctx, campaign.ID)
	s.Assert().NoError(err)
	s.Assert().Nil(found)
}

func (s *RosterTestSuite) TestListCampaigns() {
	first, err := s.roster.CreateCampaign(s.ctx, "First", "t", nil)
	s.Require().NoError(err)
	second, err := s.roster.CreateCampaign(s.ctx, "Second", "t", nil)
	s.Require().NoError(err)

	campaigns, err := s.roster.ListCampaigns(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(campaigns, 2)
	s.Assert().Equal(second.ID, campaigns[0].ID)
	s.Assert().Equal(first.ID, campaigns[1].ID)
}
