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
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/lukasdietrich/baitmail/internal/crypto"
	"github.com/lukasdietrich/baitmail/internal/database"
	"github.com/lukasdietrich/baitmail/internal/database/dbtest"
	"github.com/lukasdietrich/baitmail/internal/generator"
	"github.com/lukasdietrich/baitmail/internal/models"
	"github.com/lukasdietrich/baitmail/internal/transport"
)

func TestDispatcherTestSuite(t *testing.T) {
	suite.Run(t, new(DispatcherTestSuite))
}

type DispatcherTestSuite struct {
	suite.Suite

	ctx  context.Context
	conn database.Conn

	tokenGen  *crypto.MockTokenGenerator
	generator *generator.MockGenerator
	sender    *transport.MockSender

	dispatcher *dispatcher
}

func (s *DispatcherTestSuite) SetupTest() {
	conn := dbtest.Open(s.T())

	s.ctx = context.Background()
	s.conn = conn

	s.tokenGen = new(crypto.MockTokenGenerator)
	s.generator = new(generator.MockGenerator)
	s.sender = new(transport.MockSender)

	s.dispatcher = NewDispatcher(
		conn,
		database.NewUserDao(),
		database.NewSampleEmailDao(),
		database.NewCampaignDao(),
		database.NewResultDao(),
		s.tokenGen,
		s.generator,
		s.sender,
		Options{
			TrackingBaseURL:   "http://localhost:8080/track",
			TrackingParameter: "clicked",
			DefaultFrom:       "security@example.com",
		},
	).(*dispatcher)

	s.dispatcher.now = func() time.Time {
		return time.Unix(1600000000, 0)
	}

	s.requireExec(
		`
			insert into "users"
				( "id", "email", "created_at" )
			values
				( 1, 'jane@example.com', 1 ) ,
				( 2, 'john@example.com', 1 ) ;

			insert into "sample_emails"
				( "user_id", "subject", "body", "uploaded_at" )
			values
				( 1, 'Oldest sample', 'old', 1 ) ,
				( 1, 'Newest sample', 'new', 3 ) ,
				( 1, 'Middle sample', 'mid', 2 ) ;

			insert into "campaigns"
				( "id", "name", "template_text", "training_links", "created_at" )
			values
				( 10, 'Password reset', 'Dear {name}, your password expires.', '[]', 1 ) ;
		`)
}

func (s *DispatcherTestSuite) TearDownTest() {
	mock.AssertExpectationsForObjects(s.T(), s.tokenGen, s.generator, s.sender)
}

func (s *DispatcherTestSuite) requireExec(query string) {
	dbtest.Exec(s.T(), s.conn, query)
}

func (s *DispatcherTestSuite) countResults() int {
	return dbtest.Count(s.T(), s.conn, "campaign_results")
}

func (s *DispatcherTestSuite) expectReady() {
	s.generator.On("Ready").Return(nil)
	s.sender.On("Ready").Return(nil)
}

func (s *DispatcherTestSuite) TestDispatch() {
	s.expectReady()
	s.tokenGen.On("GenerateToken").Return("token-jane", nil).Once()
	s.tokenGen.On("GenerateToken").Return("token-john", nil).Once()

	s.generator.
		On("Generate", mock.Anything, mock.MatchedBy(func(prompt string) bool {
			return strings.Contains(prompt, "Target email: jane@example.com") &&
				strings.Contains(prompt, "http://localhost:8080/track?clicked=token-jane") &&
				strings.Contains(prompt, "Dear {name}, your password expires.")
		})).
		Return(&generator.Message{
			DisplayName: "IT",
			Subject:     "Expiring",
			Body:        "Renew at http://localhost:8080/track?clicked=token-jane today.",
		}, nil).
		Once()

	s.generator.
		On("Generate", mock.Anything, mock.MatchedBy(func(prompt string) bool {
			return strings.Contains(prompt, "Target email: john@example.com")
		})).
		Return(&generator.Message{DisplayName: "IT", Subject: "Expiring", Body: "Renew now."}, nil).
		Once()

	var sent []*transport.Message
	s.sender.
		On("Send", mock.Anything, mock.AnythingOfType("*transport.Message")).
		Run(func(args mock.Arguments) {
			sent = append(sent, args.Get(1).(*transport.Message))
		}).
		Return(nil)

	outcome := s.dispatcher.Dispatch(s.ctx, 10, []int64{1, 2}, models.ZeroAddress)

	s.Assert().Equal(Outcome{SuccessCount: 2}, outcome)
	s.Require().Len(sent, 2)

	s.Assert().Equal("security@example.com", sent[0].From.String())
	s.Assert().Equal("jane@example.com", sent[0].To.String())
	s.Assert().Equal("IT", sent[0].DisplayName)
	s.Assert().Equal("Expiring", sent[0].Subject)
	s.Assert().Equal("Renew at http://localhost:8080/track?clicked=token-jane today.", sent[0].Body)

	s.Assert().Equal("john@example.com", sent[1].To.String())
	s.Assert().Equal(
		"Renew now.\n\nClick here to verify: http://localhost:8080/track?clicked=token-john",
		sent[1].Body)

	s.Assert().Equal(2, s.countResults())
	s.requireResult("token-jane", 10, 1)
	s.requireResult("token-john", 10, 2)
}

func (s *DispatcherTestSuite) requireResult(token string, campaignID, userID int64) {
	result, err := database.NewResultDao().FindByToken(s.ctx, s.conn, token)
	s.Require().NoError(err)
	s.Assert().Equal(campaignID, result.CampaignID)
	s.Assert().Equal(userID, result.UserID)
	s.Assert().EqualValues(1600000000, result.SentAt)
	s.Assert().False(result.Clicked)
	s.Assert().False(result.CompletedTraining)
}

func (s *DispatcherTestSuite) TestDispatchUsesLatestSamples() {
	s.expectReady()
	s.tokenGen.On("GenerateToken").Return("token", nil)

	s.generator.
		On("Generate", mock.Anything, mock.MatchedBy(func(prompt string) bool {
			return strings.Contains(prompt, "Subject: Newest sample") &&
				strings.Contains(prompt, "Subject: Middle sample") &&
				!strings.Contains(prompt, "Oldest sample") &&
				strings.Index(prompt, "Newest sample") < strings.Index(prompt, "Middle sample")
		})).
		Return(&generator.Message{Body: "http://localhost:8080/track?clicked=token"}, nil)

	s.sender.On("Send", mock.Anything, mock.Anything).Return(nil)

	outcome := s.dispatcher.Dispatch(s.ctx, 10, []int64{1}, models.ZeroAddress)
	s.Assert().Equal(1, outcome.SuccessCount)
}

func (s *DispatcherTestSuite) TestDispatchMissingCampaign() {
	outcome := s.dispatcher.Dispatch(s.ctx, 99, []int64{1, 2, 3}, models.ZeroAddress)

	s.Assert().Equal(Outcome{
		SuccessCount: 0,
		FailureCount: 3,
		Errors:       []string{"Campaign 99 not found"},
	}, outcome)
	s.Assert().Equal(0, s.countResults())
}

func (s *DispatcherTestSuite) TestDispatchMissingCampaignWhileUnavailable() {
	// Ready is not expected: the missing campaign is reported before the backends are checked.
	s.dispatcher.opts.DefaultFrom = ""

	outcome := s.dispatcher.Dispatch(s.ctx, 99, []int64{1, 2}, models.ZeroAddress)

	s.Assert().Equal(Outcome{
		FailureCount: 2,
		Errors:       []string{"Campaign 99 not found"},
	}, outcome)
}

func (s *DispatcherTestSuite) TestDispatchMissingUser() {
	s.expectReady()
	s.tokenGen.On("GenerateToken").Return("token", nil).Once()
	s.generator.
		On("Generate", mock.Anything, mock.Anything).
		Return(&generator.Message{Body: "body"}, nil).
		Once()
	s.sender.On("Send", mock.Anything, mock.Anything).Return(nil).Once()

	outcome := s.dispatcher.Dispatch(s.ctx, 10, []int64{1, 999}, models.ZeroAddress)

	s.Assert().Equal(Outcome{
		SuccessCount: 1,
		FailureCount: 1,
		Errors:       []string{"User 999 not found"},
	}, outcome)
	s.Assert().Equal(1, s.countResults())
}

func (s *DispatcherTestSuite) TestDispatchGenerationFailureKeepsResult() {
	s.expectReady()
	s.tokenGen.On("GenerateToken").Return("token", nil).Once()
	s.generator.
		On("Generate", mock.Anything, mock.Anything).
		Return(nil, errors.New("content generation failed: quota exceeded")).
		Once()

	outcome := s.dispatcher.Dispatch(s.ctx, 10, []int64{1}, models.ZeroAddress)

	s.Assert().Equal(Outcome{
		FailureCount: 1,
		Errors:       []string{"Failed to send to jane@example.com: content generation failed: quota exceeded"},
	}, outcome)
	s.Assert().Equal(1, s.countResults())
}

func (s *DispatcherTestSuite) TestDispatchIsolatesTransportFailure() {
	s.expectReady()
	s.tokenGen.On("GenerateToken").Return("token-jane", nil).Once()
	s.tokenGen.On("GenerateToken").Return("token-john", nil).Once()
	s.generator.On("Generate", mock.Anything, mock.Anything).Return(&generator.Message{Body: "body"}, nil)

	s.sender.
		On("Send", mock.Anything, mock.MatchedBy(func(msg *transport.Message) bool {
			return msg.To.String() == "jane@example.com"
		})).
		Return(errors.New("connection refused")).
		Once()
	s.sender.
		On("Send", mock.Anything, mock.MatchedBy(func(msg *transport.Message) bool {
			return msg.To.String() == "john@example.com"
		})).
		Return(nil).
		Once()

	outcome := s.dispatcher.Dispatch(s.ctx, 10, []int64{1, 2}, models.ZeroAddress)

	s.Assert().Equal(Outcome{
		SuccessCount: 1,
		FailureCount: 1,
		Errors:       []string{"Failed to send to jane@example.com: connection refused"},
	}, outcome)
	s.Assert().Equal(2, s.countResults())
}

func (s *DispatcherTestSuite) TestDispatchExplicitSender() {
	s.expectReady()
	s.tokenGen.On("GenerateToken").Return("token", nil)
	s.generator.On("Generate", mock.Anything, mock.Anything).Return(&generator.Message{}, nil)
	s.sender.
		On("Send", mock.Anything, mock.MatchedBy(func(msg *transport.Message) bool {
			return msg.From.String() == "hr@example.org"
		})).
		Return(nil)

	from, err := models.Parse("hr@example.org")
	s.Require().NoError(err)

	outcome := s.dispatcher.Dispatch(s.ctx, 10, []int64{2}, from)
	s.Assert().Equal(1, outcome.SuccessCount)
}

func (s *DispatcherTestSuite) TestDispatchWithoutSender() {
	s.expectReady()
	s.dispatcher.opts.DefaultFrom = ""

	outcome := s.dispatcher.Dispatch(s.ctx, 10, []int64{1, 2}, models.ZeroAddress)

	s.Assert().Equal(failAll([]int64{1, 2}, errNoSender), outcome)
	s.Assert().Equal(0, s.countResults())
}

func (s *DispatcherTestSuite) TestDispatchUnavailable() {
	s.generator.On("Ready").Return(generator.ErrUnavailable)

	outcome := s.dispatcher.Dispatch(s.ctx, 10, []int64{1, 2}, models.ZeroAddress)

	s.Assert().Equal(Outcome{
		FailureCount: 2,
		Errors:       []string{"content generation unavailable"},
	}, outcome)
	s.Assert().Equal(0, s.countResults())
}

func (s *DispatcherTestSuite) TestDispatchNoRecipients() {
	s.expectReady()

	outcome := s.dispatcher.Dispatch(s.ctx, 10, nil, models.ZeroAddress)
	s.Assert().Equal(Outcome{}, outcome)
}
